package webui

import (
	"context"

	"github.com/Vovarama1992/human_translator/internal/domain"
	"github.com/Vovarama1992/human_translator/internal/speech"
)

type HealthChecker interface {
	Check(ctx context.Context) domain.Health
}

type LanguageLoader interface {
	Load(ctx context.Context) (domain.Languages, error)
}

type Translator interface {
	Translate(ctx context.Context, langs domain.Languages, in domain.TranslateInput) (domain.Translation, error)
}

type Speaker interface {
	Transcribe(ctx context.Context, audio speech.Audio) (speech.Transcript, error)
	Synthesize(ctx context.Context, text, lang string) (speech.Speech, error)
}
