package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Vovarama1992/human_translator/internal/apiclient"
	"github.com/Vovarama1992/human_translator/internal/error_notificator"
)

var (
	ErrEmptyText = errors.New("text cannot be empty")
	ErrNoAudio   = errors.New("no audio provided")
)

// Audio is an uploaded recording held in memory.
type Audio struct {
	Filename string
	Data     []byte
	// Language is a hint for recognition; empty means auto-detect.
	Language string
}

func (a Audio) Size() int { return len(a.Data) }

type Transcript struct {
	Text     string
	Language string
}

type Speech struct {
	URL      string
	Language string
	Duration *float64
}

// Service covers both directions: speech → text and text → speech.
type Service struct {
	stt      STTClient
	tts      TTSClient
	notifier error_notificator.Notificator
}

func NewService(stt STTClient, tts TTSClient, n error_notificator.Notificator) *Service {
	return &Service{
		stt:      stt,
		tts:      tts,
		notifier: n,
	}
}

func (s *Service) Transcribe(ctx context.Context, audio Audio) (Transcript, error) {
	if len(audio.Data) == 0 {
		return Transcript{}, ErrNoAudio
	}

	resp, err := s.stt.SpeechToText(ctx, apiclient.SpeechToTextRequest{
		Audio:    bytes.NewReader(audio.Data),
		Filename: audio.Filename,
		Language: audio.Language,
	})
	if err != nil {
		s.notify(ctx, "speech-to-text", err, fmt.Sprintf("file=%q size=%d", audio.Filename, audio.Size()))
		return Transcript{}, fmt.Errorf("transcribe: %w", err)
	}

	lang := resp.Language
	if lang == "" {
		lang = audio.Language
	}
	return Transcript{Text: resp.Text, Language: lang}, nil
}

func (s *Service) Synthesize(ctx context.Context, text, lang string) (Speech, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Speech{}, ErrEmptyText
	}

	resp, err := s.tts.TextToSpeech(ctx, apiclient.TextToSpeechRequest{Text: text, Language: lang})
	if err != nil {
		s.notify(ctx, "text-to-speech", err, fmt.Sprintf("lang=%s, %d chars", lang, len(text)))
		return Speech{}, fmt.Errorf("synthesize: %w", err)
	}

	return Speech{
		URL:      s.tts.ResolveURL(resp.AudioURL),
		Language: lang,
		Duration: resp.Duration,
	}, nil
}

func (s *Service) notify(ctx context.Context, op string, err error, details string) {
	if s.notifier != nil {
		_ = s.notifier.Notify(ctx, op, err, details)
	}
}
