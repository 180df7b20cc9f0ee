package analysis

import (
	"context"
	"errors"
	"fmt"
	"net"

	"speechcoach/internal/stt"
)

// Stage identifies which pipeline step produced a failure
type Stage string

const (
	StageTranscription Stage = "transcription"
	StageFeedback      Stage = "feedback"
	StageSynthesis     Stage = "synthesis"
)

// Kind classifies a pipeline failure for the HTTP layer
type Kind string

const (
	KindNoSpeech  Kind = "no_speech"  // user-correctable input, not a fault
	KindTimeout   Kind = "timeout"    // an external call exceeded its deadline
	KindAuth      Kind = "auth"       // upstream rejected our credentials
	KindSynthesis Kind = "synthesis"  // text-to-speech failed
	KindUpstream  Kind = "upstream"   // any other upstream failure
)

// Error is the classified failure of one pipeline run
type Error struct {
	Stage Stage
	Kind  Kind
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s stage failed (%s): %v", e.Stage, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// stageError classifies err for the given stage
func stageError(stage Stage, err error) *Error {
	return &Error{Stage: stage, Kind: classify(stage, err), Err: err}
}

func classify(stage Stage, err error) Kind {
	if errors.Is(err, stt.ErrNoSpeech) {
		return KindNoSpeech
	}
	if isTimeout(err) {
		return KindTimeout
	}
	var authErr *stt.AuthError
	if errors.As(err, &authErr) {
		return KindAuth
	}
	if stage == StageSynthesis {
		return KindSynthesis
	}
	return KindUpstream
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
