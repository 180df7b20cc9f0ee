package analysis_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"speechcoach/internal/ai"
	"speechcoach/internal/analysis"
	"speechcoach/internal/store"
	"speechcoach/internal/stt"
)

type fakeTranscriber struct {
	result *stt.Result
	err    error
}

func (f *fakeTranscriber) Transcribe(_ context.Context, _ []byte, _ string) (*stt.Result, error) {
	return f.result, f.err
}

type fakeCritic struct {
	critique *ai.Critique
	err      error
}

func (f *fakeCritic) Critique(_ context.Context, _ string) (*ai.Critique, error) {
	return f.critique, f.err
}

type fakeSynthesizer struct {
	audio  []byte
	err    error
	called bool
}

func (f *fakeSynthesizer) Synthesize(_ context.Context, text string) ([]byte, error) {
	f.called = true
	if f.err != nil {
		return nil, f.err
	}
	return f.audio, nil
}

func TestRun(t *testing.T) {
	t.Parallel()

	results := store.New()
	defer results.Close()

	p := analysis.New(
		&fakeTranscriber{result: &stt.Result{Transcript: "he go to school yesterday", Confidence: 0.95}},
		&fakeCritic{critique: &ai.Critique{
			Feedback:      "Watch the past tense.",
			CorrectedText: "He went to school yesterday.",
		}},
		&fakeSynthesizer{audio: []byte{0xFF, 0xFB}},
		results,
	)

	rec, err := p.Run(context.Background(), []byte("fake audio"), "audio/wav")
	require.NoError(t, err)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "he go to school yesterday", rec.Transcript)
	assert.Equal(t, "Watch the past tense.", rec.Feedback)
	assert.Equal(t, "He went to school yesterday.", rec.CorrectedText)
	assert.Equal(t, []byte{0xFF, 0xFB}, rec.Audio)
	assert.False(t, rec.CreatedAt.IsZero())

	stored, ok := results.Get(rec.ID)
	require.True(t, ok)
	assert.Equal(t, rec, stored)
	assert.Equal(t, 1, results.Len())
}

func TestRunNoSpeech(t *testing.T) {
	t.Parallel()

	results := store.New()
	defer results.Close()

	synth := &fakeSynthesizer{}
	p := analysis.New(
		&fakeTranscriber{err: stt.ErrNoSpeech},
		&fakeCritic{},
		synth,
		results,
	)

	_, err := p.Run(context.Background(), []byte("silence"), "audio/wav")

	var perr *analysis.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, analysis.StageTranscription, perr.Stage)
	assert.Equal(t, analysis.KindNoSpeech, perr.Kind)
	assert.False(t, synth.called)
	assert.Equal(t, 0, results.Len())
}

func TestRunErrorClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		transcriber *fakeTranscriber
		critic      *fakeCritic
		synthesizer *fakeSynthesizer
		wantStage   analysis.Stage
		wantKind    analysis.Kind
	}{
		{
			name:        "transcription timeout",
			transcriber: &fakeTranscriber{err: context.DeadlineExceeded},
			critic:      &fakeCritic{},
			synthesizer: &fakeSynthesizer{},
			wantStage:   analysis.StageTranscription,
			wantKind:    analysis.KindTimeout,
		},
		{
			name:        "transcription auth failure",
			transcriber: &fakeTranscriber{err: &stt.AuthError{StatusCode: 401}},
			critic:      &fakeCritic{},
			synthesizer: &fakeSynthesizer{},
			wantStage:   analysis.StageTranscription,
			wantKind:    analysis.KindAuth,
		},
		{
			name:        "transcription upstream failure",
			transcriber: &fakeTranscriber{err: &stt.APIError{StatusCode: 502, Body: "bad gateway"}},
			critic:      &fakeCritic{},
			synthesizer: &fakeSynthesizer{},
			wantStage:   analysis.StageTranscription,
			wantKind:    analysis.KindUpstream,
		},
		{
			name:        "feedback timeout",
			transcriber: &fakeTranscriber{result: &stt.Result{Transcript: "hello"}},
			critic:      &fakeCritic{err: context.DeadlineExceeded},
			synthesizer: &fakeSynthesizer{},
			wantStage:   analysis.StageFeedback,
			wantKind:    analysis.KindTimeout,
		},
		{
			name:        "feedback upstream failure",
			transcriber: &fakeTranscriber{result: &stt.Result{Transcript: "hello"}},
			critic:      &fakeCritic{err: errors.New("completion failed")},
			synthesizer: &fakeSynthesizer{},
			wantStage:   analysis.StageFeedback,
			wantKind:    analysis.KindUpstream,
		},
		{
			name:        "synthesis failure",
			transcriber: &fakeTranscriber{result: &stt.Result{Transcript: "hello"}},
			critic:      &fakeCritic{critique: &ai.Critique{Feedback: "ok", CorrectedText: "Hello."}},
			synthesizer: &fakeSynthesizer{err: errors.New("voice unavailable")},
			wantStage:   analysis.StageSynthesis,
			wantKind:    analysis.KindSynthesis,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			results := store.New()
			defer results.Close()

			p := analysis.New(tt.transcriber, tt.critic, tt.synthesizer, results)
			_, err := p.Run(context.Background(), []byte("fake audio"), "audio/wav")

			var perr *analysis.Error
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.wantStage, perr.Stage)
			assert.Equal(t, tt.wantKind, perr.Kind)

			// No partial record is ever stored.
			assert.Equal(t, 0, results.Len())
		})
	}
}
