package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/echokeys/echokeys/internal/gameclient"
	"github.com/echokeys/echokeys/internal/models"
	"github.com/echokeys/echokeys/internal/session"
)

type screen int

const (
	screenLoading screen = iota
	screenDifficulty
	screenTyping
	screenFinished
)

var (
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements the Bubble Tea typing UI backed by the game server.
type Model struct {
	client *gameclient.Client
	scorer *session.Scorer
	sound  bool

	screen   screen
	username string
	stats    models.UserStats
	daily    models.Challenge

	leaderboard     []models.LeaderboardEntry
	showLeaderboard bool

	width  int
	height int

	errMsg string
}

type initLoadedMsg struct {
	data *gameclient.InitData
}

type challengeLoadedMsg struct {
	challenge *models.Challenge
}

type leaderboardLoadedMsg struct {
	entries []models.LeaderboardEntry
}

type fetchFailedMsg struct {
	err error
}

type tickMsg time.Time

// NewModel constructs the client UI. sound reports whether a speech backend
// is available; without one the mute toggle is hidden and inert.
func NewModel(client *gameclient.Client, scorer *session.Scorer, sound bool) *Model {
	return &Model{
		client: client,
		scorer: scorer,
		sound:  sound,
		screen: screenLoading,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.fetchInit()
}

func (m *Model) fetchInit() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		data, err := m.client.Init(ctx)
		if err != nil {
			return fetchFailedMsg{err: err}
		}
		return initLoadedMsg{data: data}
	}
}

func (m *Model) fetchChallenge(d models.Difficulty) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		c, err := m.client.ChallengeByDifficulty(ctx, d)
		if err != nil {
			return fetchFailedMsg{err: err}
		}
		return challengeLoadedMsg{challenge: c}
	}
}

func (m *Model) fetchLeaderboard() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		entries, err := m.client.Leaderboard(ctx)
		if err != nil {
			return fetchFailedMsg{err: err}
		}
		return leaderboardLoadedMsg{entries: entries}
	}
}

func tick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case initLoadedMsg:
		m.username = msg.data.Username
		m.stats = msg.data.UserStats
		m.daily = msg.data.DailyChallenge
		m.screen = screenDifficulty
		return m, nil

	case challengeLoadedMsg:
		m.startSession(*msg.challenge)
		return m, tick()

	case leaderboardLoadedMsg:
		m.leaderboard = msg.entries
		m.showLeaderboard = true
		return m, nil

	case fetchFailedMsg:
		// Degrade rather than crash: show the error and stay put.
		m.errMsg = msg.err.Error()
		if m.screen == screenLoading {
			m.screen = screenDifficulty
		}
		return m, nil

	case tickMsg:
		if m.screen == screenTyping {
			return m, tick()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.screen {
	case screenDifficulty:
		switch msg.String() {
		case "1":
			return m, m.fetchChallenge(models.DifficultyEasy)
		case "2":
			return m, m.fetchChallenge(models.DifficultyMedium)
		case "3":
			return m, m.fetchChallenge(models.DifficultyHard)
		case "d", "enter":
			m.startSession(m.daily)
			return m, tick()
		case "m":
			if m.sound {
				m.scorer.SetMuted(!m.scorer.Muted())
			}
			return m, nil
		}

	case screenTyping:
		switch msg.Type {
		case tea.KeyBackspace, tea.KeyDelete:
			typed := m.scorer.Typed()
			if len(typed) > 0 {
				m.scorer.UpdateInput(string(typed[:len(typed)-1]))
			}
		case tea.KeySpace:
			m.scorer.UpdateInput(string(m.scorer.Typed()) + " ")
		case tea.KeyRunes:
			m.scorer.UpdateInput(string(m.scorer.Typed()) + string(msg.Runes))
		case tea.KeyEscape:
			m.scorer.Reset()
			m.screen = screenDifficulty
			return m, nil
		}
		if m.scorer.Finished() {
			m.screen = screenFinished
		}
		return m, nil

	case screenFinished:
		switch msg.String() {
		case "r":
			m.scorer.Reset()
			m.showLeaderboard = false
			m.screen = screenDifficulty
			return m, nil
		case "l":
			if m.showLeaderboard {
				m.showLeaderboard = false
				return m, nil
			}
			return m, m.fetchLeaderboard()
		case "m":
			if m.sound {
				m.scorer.SetMuted(!m.scorer.Muted())
			}
			return m, nil
		}
	}
	return m, nil
}

func (m *Model) startSession(c models.Challenge) {
	m.errMsg = ""
	m.scorer.SetChallenge(c)
	m.scorer.Start()
	m.screen = screenTyping
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch m.screen {
	case screenLoading:
		content = "Loading challenges..."
	case screenDifficulty:
		content = m.viewDifficulty()
	case screenTyping:
		content = m.viewTyping()
	case screenFinished:
		content = m.viewFinished()
	}

	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) viewDifficulty() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("EchoKeys"))
	b.WriteString("\n\n")
	if m.username != "" {
		b.WriteString(fmt.Sprintf("Hi %s! Best: %.0f wpm at %.0f%% accuracy, %d games played.\n\n",
			m.username, m.stats.BestWPM, m.stats.BestAccuracy, m.stats.TotalGames))
	}
	b.WriteString("[1] easy   [2] medium   [3] hard   [d] daily challenge\n")
	b.WriteString(footerStyle.Render(m.footerHints("[ctrl+c] quit")))
	if m.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(incorrectStyle.Render(m.errMsg))
	}
	return b.String()
}

func (m *Model) viewTyping() string {
	c := m.scorer.Challenge()
	if c == nil {
		return ""
	}
	styled := buildStyledRunes([]rune(c.Text), m.scorer.Typed())

	contentWidth := m.width * 70 / 100
	if contentWidth < 1 {
		contentWidth = 40
	}
	text := wrapStyledRunes(styled, contentWidth)

	footer := footerStyle.Render(fmt.Sprintf("%d wpm  %d%%  %s  [esc] back",
		m.scorer.WPM(), m.scorer.Accuracy(), m.scorer.Elapsed().Round(time.Second)))
	return text + "\n\n" + footer
}

func (m *Model) viewFinished() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Finished!"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%d wpm at %d%% accuracy in %s\n\n",
		m.scorer.WPM(), m.scorer.Accuracy(), m.scorer.Elapsed().Round(time.Millisecond*10)))

	if m.showLeaderboard {
		b.WriteString(m.viewLeaderboard())
		b.WriteString("\n")
	}

	b.WriteString(footerStyle.Render(m.footerHints("[r] try again  [l] leaderboard", "[ctrl+c] quit")))
	if m.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(incorrectStyle.Render(m.errMsg))
	}
	return b.String()
}

// footerHints joins key hints, inserting the mute toggle before the last
// hint only when a speech backend exists.
func (m *Model) footerHints(hints ...string) string {
	if m.sound {
		last := hints[len(hints)-1]
		hints = append(hints[:len(hints)-1], "[m] toggle sound", last)
	}
	return strings.Join(hints, "  ")
}

func (m *Model) viewLeaderboard() string {
	if len(m.leaderboard) == 0 {
		return footerStyle.Render("No scores yet. Be the first!") + "\n"
	}
	var b strings.Builder
	b.WriteString("Top typists:\n")
	for i, e := range m.leaderboard {
		b.WriteString(fmt.Sprintf("%2d. %-20s %4.0f wpm  %3.0f%%  %s\n",
			i+1, e.Username, e.WPM, e.Accuracy, e.Date))
	}
	return b.String()
}
