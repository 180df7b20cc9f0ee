package stt

import (
	"errors"
	"fmt"
)

// ErrNoSpeech is returned when the provider recognized the audio but found no
// usable speech in it. It is a user-correctable input problem, not a fault.
var ErrNoSpeech = errors.New("no speech detected in audio")

// AuthError indicates the provider rejected our credentials.
type AuthError struct {
	StatusCode int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("speech-to-text authentication failed (status %d)", e.StatusCode)
}

// APIError is any other non-2xx response from the provider.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("speech-to-text API returned status %d: %s", e.StatusCode, e.Body)
}
