package speech

import (
	"context"

	"github.com/Vovarama1992/human_translator/internal/apiclient"
)

type STTClient interface {
	SpeechToText(ctx context.Context, req apiclient.SpeechToTextRequest) (*apiclient.SpeechToTextResponse, error)
}

type TTSClient interface {
	TextToSpeech(ctx context.Context, req apiclient.TextToSpeechRequest) (*apiclient.TextToSpeechResponse, error)
	// ResolveURL turns the audio reference returned by the API into an absolute URL.
	ResolveURL(ref string) string
}
