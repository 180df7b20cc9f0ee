package analysis

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"speechcoach/internal/ai"
	"speechcoach/internal/store"
	"speechcoach/internal/stt"
)

// RetentionWindow is how long a completed result stays retrievable
const RetentionWindow = time.Hour

// Transcriber converts audio bytes into a transcript
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (*stt.Result, error)
}

// Critic produces tutor feedback and a corrected rewrite for a transcript
type Critic interface {
	Critique(ctx context.Context, transcript string) (*ai.Critique, error)
}

// Synthesizer converts corrected text into audio bytes
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Pipeline runs the three external stages in order and stores the composed
// result. Stages are strictly sequential; any failure short-circuits the rest
// and nothing partial is ever stored.
type Pipeline struct {
	transcriber Transcriber
	critic      Critic
	synthesizer Synthesizer
	results     *store.Store
	ttl         time.Duration
}

// New creates a pipeline writing completed records into results
func New(transcriber Transcriber, critic Critic, synthesizer Synthesizer, results *store.Store) *Pipeline {
	return &Pipeline{
		transcriber: transcriber,
		critic:      critic,
		synthesizer: synthesizer,
		results:     results,
		ttl:         RetentionWindow,
	}
}

// Run analyzes one uploaded audio buffer end to end. On success the returned
// record is already inserted into the result store under a fresh id.
func (p *Pipeline) Run(ctx context.Context, audio []byte, mimeType string) (*store.Record, error) {
	start := time.Now()

	res, err := p.transcriber.Transcribe(ctx, audio, mimeType)
	if err != nil {
		return nil, stageError(StageTranscription, err)
	}
	log.Printf("[pipeline] transcript: %d chars, confidence=%.2f", len(res.Transcript), res.Confidence)

	critique, err := p.critic.Critique(ctx, res.Transcript)
	if err != nil {
		return nil, stageError(StageFeedback, err)
	}

	// CorrectedText falls back to the transcript in parsing, so it is
	// always non-empty here.
	speech, err := p.synthesizer.Synthesize(ctx, critique.CorrectedText)
	if err != nil {
		return nil, stageError(StageSynthesis, err)
	}

	rec := &store.Record{
		ID:            uuid.New().String(),
		Transcript:    res.Transcript,
		Feedback:      critique.Feedback,
		CorrectedText: critique.CorrectedText,
		Audio:         speech,
		CreatedAt:     time.Now(),
	}
	p.results.Put(rec, p.ttl)

	log.Printf("[pipeline] analysis %s completed in %.1fs", rec.ID, time.Since(start).Seconds())
	return rec, nil
}
