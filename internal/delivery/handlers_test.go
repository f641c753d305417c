package delivery_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/human_translator/internal/apiclient"
	"github.com/Vovarama1992/human_translator/internal/delivery"
	"github.com/Vovarama1992/human_translator/internal/domain"
	"github.com/Vovarama1992/human_translator/internal/speech"
	"github.com/Vovarama1992/human_translator/internal/stubapi"
	"github.com/Vovarama1992/human_translator/internal/webui"
)

type app struct {
	srv      *httptest.Server
	apiPosts *atomic.Int32
}

func newApp(t *testing.T, cfg *stubapi.Config) *app {
	t.Helper()

	posts := &atomic.Int32{}
	stub := stubapi.New(cfg, nil).Handler()
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			posts.Add(1)
		}
		stub.ServeHTTP(w, r)
	}))
	t.Cleanup(api.Close)

	client, err := apiclient.New(api.URL)
	require.NoError(t, err)

	msgs, err := webui.NewMessages("en")
	require.NoError(t, err)

	ctrl := webui.NewController(
		domain.NewHealthService(client, nil),
		domain.NewLanguageService(client, nil, nil),
		domain.NewTranslationService(client, nil),
		speech.NewService(client, client, nil),
		msgs,
		webui.Defaults{Source: "en", Target: "ar"},
	)

	h, err := delivery.NewHandler(ctrl, nil, time.Second)
	require.NoError(t, err)

	r := chi.NewRouter()
	delivery.RegisterRoutes(r, h, 0, nil)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &app{srv: srv, apiPosts: posts}
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func (a *app) submit(t *testing.T, form url.Values) (int, string) {
	t.Helper()
	resp, err := http.PostForm(a.srv.URL+"/", form)
	require.NoError(t, err)
	return resp.StatusCode, body(t, resp)
}

func TestIndex_RendersSelectorsAndBadge(t *testing.T) {
	a := newApp(t, nil)

	resp, err := http.Get(a.srv.URL + "/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	html := body(t, resp)
	assert.Contains(t, html, `<option value="en" selected>English</option>`)
	assert.Contains(t, html, `<option value="ar" selected>Arabic</option>`)
	assert.Contains(t, html, `class="badge online"`)
	assert.Contains(t, html, "API Online")
	assert.Contains(t, html, "11 languages available")
	assert.Regexp(t, `setInterval\(poll, +1000 *\)`, html)
}

func TestIndex_QueryPreselects(t *testing.T) {
	a := newApp(t, nil)

	resp, err := http.Get(a.srv.URL + "/?source=fr&target=es")
	require.NoError(t, err)
	html := body(t, resp)
	assert.Contains(t, html, `<option value="fr" selected>French</option>`)
	assert.Contains(t, html, `<option value="es" selected>Spanish</option>`)
}

func TestSubmit_Translate(t *testing.T) {
	a := newApp(t, nil)

	code, html := a.submit(t, url.Values{
		"action":      {"translate"},
		"source":      {"en"},
		"target":      {"fr"},
		"source_text": {"Hello world"},
	})
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, html, "Bonjour le monde")
	assert.Contains(t, html, "Detected: English (en) → French (fr)")
	assert.Equal(t, int32(1), a.apiPosts.Load())
}

func TestSubmit_EmptyTextPromptsWithoutRequest(t *testing.T) {
	a := newApp(t, nil)

	_, html := a.submit(t, url.Values{
		"action":      {"translate"},
		"source":      {"en"},
		"target":      {"fr"},
		"source_text": {"  "},
	})
	assert.Contains(t, html, "alert-prompt")
	assert.Contains(t, html, "Please enter text to translate")
	assert.Zero(t, a.apiPosts.Load())
}

func TestSubmit_ServerErrorShown(t *testing.T) {
	cfg := stubapi.DefaultConfig()
	cfg.FailWith = map[string]string{"text-to-speech": "TTS engine is down"}
	a := newApp(t, cfg)

	_, html := a.submit(t, url.Values{
		"action":      {"speak_source"},
		"source":      {"en"},
		"target":      {"fr"},
		"source_text": {"Hello"},
	})
	assert.Contains(t, html, "alert-error")
	assert.Contains(t, html, "TTS engine is down")
	assert.NotContains(t, html, `<audio`)
}

func TestSubmit_SpeakRendersAudio(t *testing.T) {
	a := newApp(t, nil)

	_, html := a.submit(t, url.Values{
		"action":          {"speak_target"},
		"source":          {"en"},
		"target":          {"fr"},
		"translated_text": {"Bonjour"},
	})
	assert.Contains(t, html, `<audio id="audio"`)
	assert.Contains(t, html, "/audio/")
}

func TestSubmit_Swap(t *testing.T) {
	a := newApp(t, nil)

	_, html := a.submit(t, url.Values{
		"action":          {"swap"},
		"source":          {"en"},
		"target":          {"fr"},
		"source_text":     {"Hello"},
		"translated_text": {"Bonjour"},
	})
	assert.Contains(t, html, `<option value="fr" selected>French</option>`)
	assert.Contains(t, html, `<option value="en" selected>English</option>`)
	assert.Contains(t, html, `<textarea name="source_text" id="source_text">Bonjour</textarea>`)
	assert.Contains(t, html, `<textarea name="translated_text" id="translated_text">Hello</textarea>`)
	assert.Zero(t, a.apiPosts.Load())
}

func TestSubmit_UnsupportedLanguage(t *testing.T) {
	a := newApp(t, nil)

	_, html := a.submit(t, url.Values{
		"action":      {"translate"},
		"source":      {"en"},
		"target":      {"xx"},
		"source_text": {"Hello"},
	})
	assert.Contains(t, html, "Unsupported language: xx")
	assert.Zero(t, a.apiPosts.Load())
}

func TestSubmit_UnknownAction(t *testing.T) {
	a := newApp(t, nil)

	code, _ := a.submit(t, url.Values{"action": {"delete"}})
	assert.Equal(t, http.StatusBadRequest, code)
}

func multipartForm(t *testing.T, fields map[string]string, file []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		fw, err := mw.CreateFormFile("audio", "clip.wav")
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestSubmit_Transcribe(t *testing.T) {
	cfg := stubapi.DefaultConfig()
	cfg.Transcript = "Good morning"
	a := newApp(t, cfg)

	buf, ct := multipartForm(t, map[string]string{"action": "transcribe", "source": "en", "target": "fr"}, []byte("RIFF0000WAVE"))
	resp, err := http.Post(a.srv.URL+"/", ct, buf)
	require.NoError(t, err)

	html := body(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, html, `<textarea name="source_text" id="source_text">Good morning</textarea>`)
	assert.Contains(t, html, "Transcribed 12 B of audio (English (en))")
}

func TestSubmit_TranscribeWithoutFile(t *testing.T) {
	a := newApp(t, nil)

	buf, ct := multipartForm(t, map[string]string{"action": "transcribe", "source": "en", "target": "fr"}, nil)
	resp, err := http.Post(a.srv.URL+"/", ct, buf)
	require.NoError(t, err)

	html := body(t, resp)
	assert.Contains(t, html, "Please choose an audio file")
	assert.Zero(t, a.apiPosts.Load())
}

func TestSubmit_TranscribeFromPlainForm(t *testing.T) {
	a := newApp(t, nil)

	code, html := a.submit(t, url.Values{"action": {"transcribe"}, "source": {"en"}, "target": {"fr"}})
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, html, "Please choose an audio file")
	assert.Zero(t, a.apiPosts.Load())
}

func TestSubmit_OversizedAudioKeepsForm(t *testing.T) {
	a := newApp(t, nil)

	buf, ct := multipartForm(t, map[string]string{
		"action":      "transcribe",
		"source":      "en",
		"target":      "fr",
		"source_text": "Keep this text",
	}, make([]byte, 20<<20+1))
	resp, err := http.Post(a.srv.URL+"/", ct, buf)
	require.NoError(t, err)

	html := body(t, resp)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, html, "alert-error")
	assert.Contains(t, html, "Audio file is too large (limit 20 MiB)")
	assert.Contains(t, html, `<textarea name="source_text" id="source_text">Keep this text</textarea>`)
	assert.Contains(t, html, `<option value="fr" selected>French</option>`)
	assert.Zero(t, a.apiPosts.Load())
}

func TestSubmit_MalformedFormStillRendersPage(t *testing.T) {
	a := newApp(t, nil)

	resp, err := http.Post(a.srv.URL+"/", "multipart/form-data; boundary=xyz", strings.NewReader("not a multipart body"))
	require.NoError(t, err)

	html := body(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, html, "alert-error")
	assert.Contains(t, html, "The form could not be read, please try again")
	assert.Contains(t, html, `<option value="en" selected>English</option>`)
	assert.Zero(t, a.apiPosts.Load())
}

func TestBadge(t *testing.T) {
	cfg := stubapi.DefaultConfig()
	cfg.Unhealthy = true
	a := newApp(t, cfg)

	resp, err := http.Get(a.srv.URL + "/badge")
	require.NoError(t, err)
	defer resp.Body.Close()

	var got struct {
		Healthy bool   `json:"healthy"`
		Label   string `json:"label"`
		Status  string `json:"status"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.False(t, got.Healthy)
	assert.Equal(t, "API Offline", got.Label)
	assert.Equal(t, "degraded", got.Status)
}

func TestBadge_ArabicLocale(t *testing.T) {
	a := newApp(t, nil)

	req, err := http.NewRequest(http.MethodGet, a.srv.URL+"/badge", nil)
	require.NoError(t, err)
	req.Header.Set("Accept-Language", "ar")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	assert.True(t, strings.Contains(body(t, resp), "الخدمة متصلة"))
}

func TestHealthz(t *testing.T) {
	a := newApp(t, nil)

	resp, err := http.Get(a.srv.URL + "/healthz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body(t, resp))
}
