package tts

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/sashabaranov/go-openai"
)

// Synthesizer converts corrected text into MP3 audio bytes
type Synthesizer struct {
	client *openai.Client
	voice  openai.SpeechVoice
}

// NewSynthesizer creates a new speech synthesizer on top of an OpenAI API
// client. voice is fixed per deployment (config), not per request.
func NewSynthesizer(c *openai.Client, voice string) *Synthesizer {
	return &Synthesizer{
		client: c,
		voice:  openai.SpeechVoice(voice),
	}
}

// Synthesize produces an encoded MP3 buffer for the given text. The byte
// slice is the only contract surface; nothing is left on disk.
func (s *Synthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("empty text for synthesis")
	}

	resp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.TTSModel1,
		Input:          text,
		Voice:          s.voice,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, fmt.Errorf("speech synthesis: %w", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read synthesized audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("synthesis returned no audio")
	}

	log.Printf("[tts] synthesized %d bytes for %d characters of text", len(audio), len(text))
	return audio, nil
}
