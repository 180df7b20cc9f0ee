package ai

import "strings"

// DefaultFeedback is used when the model output carries no Feedback section.
const DefaultFeedback = "No specific feedback generated."

const (
	feedbackMarker  = "feedback:"
	correctedMarker = "corrected:"
)

// Critique is the parsed outcome of one feedback-generation call
type Critique struct {
	Feedback      string
	CorrectedText string
}

// ParseCritique extracts the Feedback and Corrected sections from raw model
// output. Markers are matched case-insensitively. A missing Feedback section
// falls back to DefaultFeedback; a missing or empty Corrected section falls
// back to the original transcript, so CorrectedText is never empty.
func ParseCritique(transcript, output string) *Critique {
	lower := strings.ToLower(output)
	fi := strings.Index(lower, feedbackMarker)
	ci := strings.Index(lower, correctedMarker)

	feedback := DefaultFeedback
	if fi >= 0 {
		end := len(output)
		if ci > fi {
			end = ci
		}
		if captured := strings.TrimSpace(output[fi+len(feedbackMarker) : end]); captured != "" {
			feedback = captured
		}
	}

	corrected := transcript
	if ci >= 0 {
		if captured := strings.TrimSpace(output[ci+len(correctedMarker):]); captured != "" {
			corrected = captured
		}
	}

	return &Critique{
		Feedback:      feedback,
		CorrectedText: corrected,
	}
}
