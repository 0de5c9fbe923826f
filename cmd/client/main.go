// Package main provides the terminal client for the EchoKeys server.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/echokeys/echokeys/internal/gameclient"
	"github.com/echokeys/echokeys/internal/logger"
	"github.com/echokeys/echokeys/internal/session"
	"github.com/echokeys/echokeys/internal/speech"
	"github.com/echokeys/echokeys/internal/tui"
)

const (
	defaultServer = "http://localhost:8080"
	defaultPost   = "local"
)

var (
	serverURL string
	postID    string
	username  string
	mute      bool
	logLevel  string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "echokeys",
		Short:         "Terminal typing game client",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runClientCmd,
	}

	rootCmd.Flags().StringVar(&serverURL, "server", defaultServer, "game server base URL")
	rootCmd.Flags().StringVar(&postID, "post", defaultPost, "post id to play under")
	rootCmd.Flags().StringVar(&username, "user", "", "username for scores (default: anonymous)")
	rootCmd.Flags().BoolVar(&mute, "mute", false, "disable word speech cues")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "ERROR", "log level (DEBUG, INFO, WARN, ERROR)")

	return rootCmd
}

func runClientCmd(_ *cobra.Command, _ []string) error {
	// The TUI owns the terminal, so keep logging quiet unless asked.
	logger.SetDefault(logger.New(
		logger.WithLevel(logger.ParseLevel(logLevel)),
		logger.WithColors(false),
	))

	client := gameclient.New(serverURL, postID, username)
	speaker := speech.New()
	scorer := session.NewScorer(
		session.WithSubmitter(client),
		session.WithSpeaker(speaker),
	)
	scorer.SetMuted(mute)

	model := tui.NewModel(client, scorer, speaker.Supported())
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
