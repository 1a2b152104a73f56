package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		want  Command
	}{
		{"start", CommandStart},
		{"help", CommandHelp},
		{"diary", CommandDiary},
		{"weekly", CommandWeekly},
		{"settings", CommandUnknown},
		{"", CommandUnknown},
		{"DIARY", CommandUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseCommand(tt.input), "input %q", tt.input)
	}
}

func TestLooksLikeMeal(t *testing.T) {
	meals := []string{
		"I had chicken with rice",
		"just ate a salad",
		"Breakfast was eggs and toast",
	}
	for _, text := range meals {
		assert.True(t, looksLikeMeal(text), "%q should read as a meal", text)
	}

	other := []string{
		"hello there",
		"what week am I in?",
		"thanks!",
	}
	for _, text := range other {
		assert.False(t, looksLikeMeal(text), "%q should not read as a meal", text)
	}
}

func TestLooksLikeQuestion(t *testing.T) {
	questions := []string{
		"What nutrients am I missing?",
		"what should I eat today",
		"which trimester am I in",
		"do I need more iron?",
	}
	for _, text := range questions {
		assert.True(t, looksLikeQuestion(text), "%q should read as a question", text)
	}

	// The question gate runs before the meal gate, so this is answered,
	// not logged.
	assert.True(t, looksLikeQuestion("what should I eat for dinner?"))

	assert.False(t, looksLikeQuestion("I had chicken with rice"))
	assert.False(t, looksLikeQuestion("hello there"))
}
