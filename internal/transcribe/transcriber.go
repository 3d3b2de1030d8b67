// Package transcribe turns recorded call audio into tagged transcripts.
// The tag format is shared with the scorer, which strips it before
// keyword matching.
package transcribe

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// NoSpeechToken marks audio with no usable speech. Downstream stages
// treat it as an empty transcript.
const NoSpeechToken = "NO_SPEECH_FOUND"

// Transcriber converts an audio file into a language-tagged transcript
type Transcriber interface {
	// Transcribe returns "[Language: xx]\n<text>" or NoSpeechToken
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// ImageTextExtractor pulls call text out of a screenshot (chat captures,
// scam SMS photos). Implementations live with the OCR backend; the
// pipeline only consumes the extracted text.
type ImageTextExtractor interface {
	ExtractText(ctx context.Context, imagePath string) (string, error)
}

// Config holds transcription settings
type Config struct {
	// APIKey for the Whisper API
	APIKey string

	// BaseURL for custom endpoints
	BaseURL string

	// Model defaults to whisper-1
	Model string

	// Timeout for one transcription call
	Timeout int // seconds
}

// WhisperTranscriber implements Transcriber using OpenAI's Whisper API
type WhisperTranscriber struct {
	client *openai.Client
	config Config
}

// NewWhisperTranscriber creates a Whisper-backed transcriber
func NewWhisperTranscriber(config Config) (*WhisperTranscriber, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Whisper API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &WhisperTranscriber{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Transcribe sends the audio file to Whisper and tags the detected
// language. Scam calls in this corpus mix English, Hindi and Kannada;
// the tag lets reviewers see which one Whisper heard.
func (t *WhisperTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if _, err := os.Stat(audioPath); err != nil {
		return "", fmt.Errorf("audio file not accessible: %w", err)
	}

	model := t.config.Model
	if model == "" {
		model = openai.Whisper1
	}

	timeout := time.Duration(t.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 2 * time.Minute
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := t.client.CreateTranscription(ctxWithTimeout, openai.AudioRequest{
		Model:    model,
		FilePath: audioPath,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return "", fmt.Errorf("whisper transcription failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return NoSpeechToken, nil
	}

	language := resp.Language
	if language == "" {
		language = "unknown"
	}

	return fmt.Sprintf("[Language: %s]\n%s", language, text), nil
}
