package main

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/human_translator/internal/stubapi"
)

func stubURL(t *testing.T, cfg *stubapi.Config) string {
	t.Helper()
	srv := httptest.NewServer(stubapi.New(cfg, nil).Handler())
	t.Cleanup(srv.Close)
	return srv.URL
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestHealthCmd(t *testing.T) {
	out, err := run(t, "--api-url", stubURL(t, nil), "health")
	require.NoError(t, err)
	assert.Contains(t, out, "API Online")
	assert.Contains(t, out, "v1.0.0")
}

func TestHealthCmd_Degraded(t *testing.T) {
	cfg := stubapi.DefaultConfig()
	cfg.Unhealthy = true

	out, err := run(t, "--api-url", stubURL(t, cfg), "health")
	require.Error(t, err)
	assert.Contains(t, out, "API Offline")
	assert.Contains(t, out, "degraded")
}

func TestClientCmd_NeedsURL(t *testing.T) {
	t.Setenv("API_BASE_URL", "")

	_, err := run(t, "health")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_BASE_URL")
}

func TestLanguagesCmd(t *testing.T) {
	cfg := stubapi.DefaultConfig()
	cfg.Languages = map[string]string{"fr": "French", "en": "English"}

	out, err := run(t, "--api-url", stubURL(t, cfg), "languages")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "en"))
	assert.True(t, strings.HasPrefix(lines[1], "fr"))
	assert.Contains(t, lines[2], "2 languages available")
}

func TestTranslateCmd(t *testing.T) {
	out, err := run(t, "--api-url", stubURL(t, nil), "translate", "--to", "fr", "Hello world")
	require.NoError(t, err)
	assert.Contains(t, out, "Bonjour le monde")
	assert.Contains(t, out, "en → fr (95%)")
}

func TestTranslateCmd_Batch(t *testing.T) {
	out, err := run(t, "--api-url", stubURL(t, nil), "translate", "--from", "en", "--to", "es", "Good morning", "How are you?")
	require.NoError(t, err)
	assert.Equal(t, "Buenos días\n¿Cómo estás?\n", out)
}

func TestTranslateCmd_BatchItemFailure(t *testing.T) {
	out, err := run(t, "--api-url", stubURL(t, nil), "translate", "--to", "es", "Good morning", " ")
	require.Error(t, err)
	assert.Contains(t, out, "Buenos días")
	assert.Contains(t, out, "Empty text")
}

func TestTranslateCmd_UnsupportedTarget(t *testing.T) {
	_, err := run(t, "--api-url", stubURL(t, nil), "translate", "--to", "xx", "Hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xx")
}

func TestSpeakCmd(t *testing.T) {
	base := stubURL(t, nil)

	out, err := run(t, "--api-url", base, "speak", "--lang", "en", "Hello")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, base+"/audio/"))
}

func TestTranscribeCmd(t *testing.T) {
	cfg := stubapi.DefaultConfig()
	cfg.Transcript = "Good morning"

	path := filepath.Join(t.TempDir(), "clip.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF0000WAVE"), 0o600))

	out, err := run(t, "--api-url", stubURL(t, cfg), "transcribe", "--lang", "en", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Good morning")
	assert.Contains(t, out, "en, 12 B")
}
