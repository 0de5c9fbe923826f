package challenge

import "github.com/echokeys/echokeys/internal/models"

// fallbackChallenges is the last-resort pool used when neither the embedded
// list nor the challenge directory yields any entries.
var fallbackChallenges = []models.ChallengeText{
	{Text: "Welcome to EchoKeys! Type this simple sentence to get started.", Difficulty: models.DifficultyEasy},
	{Text: "A community is a network of people who share their interests, hobbies and passions with each other.", Difficulty: models.DifficultyMedium},
	{Text: "The quick brown fox jumps over the lazy dog. This pangram contains every letter of the alphabet.", Difficulty: models.DifficultyMedium},
	{Text: "In the world of programming, typing speed and accuracy are crucial skills for developers.", Difficulty: models.DifficultyHard},
	{Text: "Memes are a huge part of internet culture, spreading joy and humor across social platforms.", Difficulty: models.DifficultyMedium},
	{Text: "Interactive posts allow developers to create playable experiences directly inside a discussion thread.", Difficulty: models.DifficultyHard},
	{Text: "Community engagement is key to building successful online platforms and fostering meaningful connections.", Difficulty: models.DifficultyHard},
}
