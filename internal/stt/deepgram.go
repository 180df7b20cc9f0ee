package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.deepgram.com"

// Transcription options are fixed for this service; they are not exposed as
// request parameters.
const queryParams = "model=nova-2&smart_format=true&punctuate=true&diarize=false"

// Client implements speech-to-text using the Deepgram REST API
type Client struct {
	apiKey     string
	language   string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Deepgram transcription client
func NewClient(apiKey, language string) *Client {
	return &Client{
		apiKey:   apiKey,
		language: language,
		baseURL:  defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// deepgramResponse represents the Deepgram pre-recorded transcription response
type deepgramResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string  `json:"transcript"`
				Confidence float64 `json:"confidence"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

// Transcribe sends raw audio bytes to Deepgram and returns the transcript of
// the best alternative on the first channel. A response without a usable
// alternative yields ErrNoSpeech.
func (c *Client) Transcribe(ctx context.Context, audio []byte, mimeType string) (*Result, error) {
	if len(audio) == 0 {
		return nil, fmt.Errorf("empty audio buffer")
	}
	if mimeType == "" {
		mimeType = "audio/wav"
	}

	url := fmt.Sprintf("%s/v1/listen?%s&language=%s", c.baseURL, queryParams, c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(audio))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", mimeType)

	log.Printf("[deepgram] transcribing %d bytes (%s)", len(audio), mimeType)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("deepgram request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		log.Printf("[deepgram] auth error: status %d", resp.StatusCode)
		return nil, &AuthError{StatusCode: resp.StatusCode}
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("[deepgram] API error: status %d, body: %s", resp.StatusCode, preview(body))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var parsed deepgramResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse deepgram response: %w", err)
	}

	if len(parsed.Results.Channels) == 0 || len(parsed.Results.Channels[0].Alternatives) == 0 {
		log.Printf("[deepgram] no alternatives in response")
		return nil, ErrNoSpeech
	}

	alt := parsed.Results.Channels[0].Alternatives[0]
	transcript := strings.TrimSpace(alt.Transcript)
	if transcript == "" {
		log.Printf("[deepgram] empty transcript returned")
		return nil, ErrNoSpeech
	}

	log.Printf("[deepgram] transcription successful: confidence=%.2f, length=%d",
		alt.Confidence, len(transcript))

	return &Result{
		Transcript: transcript,
		Confidence: alt.Confidence,
	}, nil
}

// preview truncates a response body for logging
func preview(body []byte) string {
	s := string(body)
	if len(s) > 500 {
		s = s[:500] + "..."
	}
	return s
}
