package domain

import (
	"context"
	"errors"

	"github.com/Vovarama1992/human_translator/internal/apiclient"
)

type fakeAPI struct {
	health    *apiclient.HealthResponse
	languages *apiclient.LanguagesResponse
	translate *apiclient.TranslateResponse
	batch     *apiclient.BatchTranslateResponse
	err       error

	calls       int
	lastRequest apiclient.TranslateRequest
	lastBatch   apiclient.BatchTranslateRequest
}

func (f *fakeAPI) Health(context.Context) (*apiclient.HealthResponse, error) {
	f.calls++
	return f.health, f.err
}

func (f *fakeAPI) Languages(context.Context) (*apiclient.LanguagesResponse, error) {
	f.calls++
	return f.languages, f.err
}

func (f *fakeAPI) Translate(_ context.Context, req apiclient.TranslateRequest) (*apiclient.TranslateResponse, error) {
	f.calls++
	f.lastRequest = req
	return f.translate, f.err
}

func (f *fakeAPI) BatchTranslate(_ context.Context, req apiclient.BatchTranslateRequest) (*apiclient.BatchTranslateResponse, error) {
	f.calls++
	f.lastBatch = req
	return f.batch, f.err
}

type recordingNotifier struct {
	ops []string
}

func (n *recordingNotifier) Notify(_ context.Context, op string, _ error, _ string) error {
	n.ops = append(n.ops, op)
	return nil
}

var errDown = errors.New("connection refused")
