package ports

import (
	"context"

	"github.com/Vovarama1992/human_translator/internal/apiclient"
)

type HealthAPI interface {
	Health(ctx context.Context) (*apiclient.HealthResponse, error)
}

type LanguageAPI interface {
	Languages(ctx context.Context) (*apiclient.LanguagesResponse, error)
}

type TranslatorAPI interface {
	Translate(ctx context.Context, req apiclient.TranslateRequest) (*apiclient.TranslateResponse, error)
	BatchTranslate(ctx context.Context, req apiclient.BatchTranslateRequest) (*apiclient.BatchTranslateResponse, error)
}
