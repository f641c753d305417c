package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/Vovarama1992/human_translator/internal/apiclient"
	"github.com/Vovarama1992/human_translator/internal/error_notificator"
	"github.com/Vovarama1992/human_translator/internal/ports"
)

// MaxBatchSize mirrors the API limit for /api/batch-translate.
const MaxBatchSize = 100

type TranslateInput struct {
	Text string
	// Source may be empty to let the API detect the language.
	Source string
	Target string
}

type Translation struct {
	Text       string
	Source     string
	Target     string
	Confidence float64
}

type BatchResult struct {
	Original string
	Text     string
	Source   string
	Error    string
}

func (r BatchResult) OK() bool { return r.Error == "" }

type TranslationService struct {
	api      ports.TranslatorAPI
	notifier error_notificator.Notificator
}

func NewTranslationService(api ports.TranslatorAPI, n error_notificator.Notificator) *TranslationService {
	return &TranslationService{api: api, notifier: n}
}

// Translate validates the input before any request is made. langs may be nil
// to skip code validation.
func (s *TranslationService) Translate(ctx context.Context, langs Languages, in TranslateInput) (Translation, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return Translation{}, ErrEmptyText
	}

	source, target, err := checkCodes(langs, in.Source, in.Target)
	if err != nil {
		return Translation{}, err
	}

	resp, err := s.api.Translate(ctx, apiclient.TranslateRequest{Text: text, Source: source, Target: target})
	if err != nil {
		s.notify(ctx, err, fmt.Sprintf("%s->%s, %d chars", orAuto(source), target, len(text)))
		return Translation{}, fmt.Errorf("translate: %w", err)
	}

	out := Translation{
		Text:       resp.TranslatedText,
		Source:     resp.SourceLanguage,
		Target:     resp.TargetLanguage,
		Confidence: resp.Confidence,
	}
	if out.Source == "" {
		out.Source = source
	}
	if out.Target == "" {
		out.Target = target
	}
	return out, nil
}

// TranslateBatch sends texts as is; empty entries come back as per-item errors.
func (s *TranslationService) TranslateBatch(ctx context.Context, langs Languages, texts []string, source, target string) ([]BatchResult, error) {
	switch {
	case len(texts) == 0:
		return nil, ErrEmptyBatch
	case len(texts) > MaxBatchSize:
		return nil, ErrBatchTooLarge
	}

	source, target, err := checkCodes(langs, source, target)
	if err != nil {
		return nil, err
	}

	resp, err := s.api.BatchTranslate(ctx, apiclient.BatchTranslateRequest{Texts: texts, Source: source, Target: target})
	if err != nil {
		s.notify(ctx, err, fmt.Sprintf("batch of %d to %s", len(texts), target))
		return nil, fmt.Errorf("translate batch: %w", err)
	}

	out := make([]BatchResult, 0, len(resp.Results))
	for _, item := range resp.Results {
		res := BatchResult{
			Original: item.OriginalText,
			Text:     item.TranslatedText,
			Source:   item.DetectedLanguage,
			Error:    item.Error,
		}
		if !item.Success && res.Error == "" {
			res.Error = "translation failed"
		}
		out = append(out, res)
	}
	return out, nil
}

func checkCodes(langs Languages, source, target string) (string, string, error) {
	source = NormalizeCode(source)
	target = NormalizeCode(target)
	if source == "auto" {
		source = ""
	}
	if target == "" {
		return "", "", &UnsupportedLanguageError{Code: target}
	}
	if langs == nil {
		return source, target, nil
	}
	if !langs.Has(target) {
		return "", "", &UnsupportedLanguageError{Code: target}
	}
	if source != "" && !langs.Has(source) {
		return "", "", &UnsupportedLanguageError{Code: source}
	}
	return source, target, nil
}

func orAuto(code string) string {
	if code == "" {
		return "auto"
	}
	return code
}

func (s *TranslationService) notify(ctx context.Context, err error, details string) {
	if s.notifier != nil {
		_ = s.notifier.Notify(ctx, "translate", err, details)
	}
}
