package ai_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"speechcoach/internal/ai"
)

func TestParseCritique(t *testing.T) {
	t.Parallel()

	transcript := "he go to school yesterday"

	tests := []struct {
		name          string
		output        string
		wantFeedback  string
		wantCorrected string
	}{
		{
			name:          "both sections present",
			output:        "Feedback: Watch subject-verb agreement and past tense.\nCorrected: He went to school yesterday.",
			wantFeedback:  "Watch subject-verb agreement and past tense.",
			wantCorrected: "He went to school yesterday.",
		},
		{
			name:          "markers are case-insensitive",
			output:        "FEEDBACK: Nice try.\nCORRECTED: He went to school yesterday.",
			wantFeedback:  "Nice try.",
			wantCorrected: "He went to school yesterday.",
		},
		{
			name:          "missing feedback section falls back to default",
			output:        "Corrected: He went to school yesterday.",
			wantFeedback:  ai.DefaultFeedback,
			wantCorrected: "He went to school yesterday.",
		},
		{
			name:          "missing corrected section falls back to transcript",
			output:        "Feedback: Good sentence overall.",
			wantFeedback:  "Good sentence overall.",
			wantCorrected: transcript,
		},
		{
			name:          "empty corrected capture falls back to transcript",
			output:        "Feedback: Good sentence overall.\nCorrected:   ",
			wantFeedback:  "Good sentence overall.",
			wantCorrected: transcript,
		},
		{
			name:          "no markers at all",
			output:        "The sentence has some issues with tense.",
			wantFeedback:  ai.DefaultFeedback,
			wantCorrected: transcript,
		},
		{
			name:          "whitespace around captures is trimmed",
			output:        "Feedback:\n  Mind the past tense.  \nCorrected:\n  He went to school yesterday.\n",
			wantFeedback:  "Mind the past tense.",
			wantCorrected: "He went to school yesterday.",
		},
		{
			name:          "empty feedback capture falls back to default",
			output:        "Feedback:\nCorrected: He went to school yesterday.",
			wantFeedback:  ai.DefaultFeedback,
			wantCorrected: "He went to school yesterday.",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ai.ParseCritique(transcript, tt.output)
			assert.Equal(t, tt.wantFeedback, got.Feedback)
			assert.Equal(t, tt.wantCorrected, got.CorrectedText)
			assert.NotEmpty(t, got.CorrectedText)
		})
	}
}
