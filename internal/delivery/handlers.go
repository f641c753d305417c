package delivery

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"

	"github.com/Vovarama1992/human_translator/internal/speech"
	"github.com/Vovarama1992/human_translator/internal/webui"
)

const (
	// maxUpload bounds the audio file.
	maxUpload = 20 << 20
	// maxBody leaves room past maxUpload so an oversized file still parses
	// and the rest of the form survives.
	maxBody    = maxUpload + 2<<20
	formMemory = 8 << 20
)

var errAudioTooLarge = errors.New("audio file too large")

//go:embed templates/*.html
var templateFS embed.FS

type Handler struct {
	ctrl *webui.Controller
	tmpl *template.Template
	log  *logger.ZapLogger
	poll time.Duration
}

func NewHandler(ctrl *webui.Controller, log *logger.ZapLogger, poll time.Duration) (*Handler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	if poll <= 0 {
		poll = 30 * time.Second
	}
	return &Handler{ctrl: ctrl, tmpl: tmpl, log: log, poll: poll}, nil
}

type view struct {
	*webui.Page
	PollMillis int64
}

// Index renders a fresh page. ?source= and ?target= preselect languages.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	p := h.ctrl.NewPage(r.Header.Get("Accept-Language"))
	p.Source = r.URL.Query().Get("source")
	p.Target = r.URL.Query().Get("target")

	h.ctrl.Load(r.Context(), p)
	h.render(w, p, http.StatusOK)
}

// Submit dispatches one form action and renders the resulting page.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	parseErr := r.ParseMultipartForm(formMemory)
	if errors.Is(parseErr, http.ErrNotMultipart) {
		parseErr = nil
	}

	// r.Form holds whatever parsed before a failure; it may be nil.
	form := r.Form
	p := h.ctrl.NewPage(r.Header.Get("Accept-Language"))
	p.Source = form.Get("source")
	p.Target = form.Get("target")
	p.SourceText = form.Get("source_text")
	p.TranslatedText = form.Get("translated_text")

	if parseErr != nil {
		h.warn("invalid form", parseErr)
		h.uploadFailed(w, r, p, parseErr)
		return
	}

	action := form.Get("action")
	switch action {
	case "translate", "speak_source", "speak_target", "transcribe", "swap":
	default:
		http.Error(w, "unknown action: "+action, http.StatusBadRequest)
		return
	}

	if !h.ctrl.Load(r.Context(), p) {
		h.render(w, p, http.StatusOK)
		return
	}

	switch action {
	case "translate":
		h.ctrl.Translate(r.Context(), p)
	case "speak_source":
		h.ctrl.Speak(r.Context(), p, webui.SideSource)
	case "speak_target":
		h.ctrl.Speak(r.Context(), p, webui.SideTarget)
	case "transcribe":
		audio, err := readAudio(r)
		if err != nil {
			h.warn("bad audio upload", err)
			h.uploadFailed(w, r, p, err)
			return
		}
		h.ctrl.Transcribe(r.Context(), p, audio)
	case "swap":
		h.ctrl.Swap(p)
	}

	h.render(w, p, http.StatusOK)
}

// uploadFailed renders the page with the submitted values and an upload alert.
func (h *Handler) uploadFailed(w http.ResponseWriter, r *http.Request, p *webui.Page, err error) {
	h.ctrl.Load(r.Context(), p)

	var tooLarge *http.MaxBytesError
	if errors.Is(err, errAudioTooLarge) || errors.As(err, &tooLarge) {
		h.ctrl.Reject(p, "error_upload_too_large", map[string]any{"Limit": humanize.IBytes(maxUpload)})
		h.render(w, p, http.StatusRequestEntityTooLarge)
		return
	}
	h.ctrl.Reject(p, "error_upload", nil)
	h.render(w, p, http.StatusBadRequest)
}

// Badge answers the page's health poll.
func (h *Handler) Badge(w http.ResponseWriter, r *http.Request) {
	p := h.ctrl.NewPage(r.Header.Get("Accept-Language"))
	h.ctrl.Badge(r.Context(), p)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"healthy": p.Badge.Healthy,
		"label":   p.Badge.Label,
		"status":  p.Badge.Status,
	})
}

func (h *Handler) render(w http.ResponseWriter, p *webui.Page, status int) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "index.html", view{Page: p, PollMillis: h.poll.Milliseconds()}); err != nil {
		if h.log != nil {
			h.log.Log(logger.LogEntry{Level: "error", Message: "render failed", Error: err})
		}
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) warn(msg string, err error) {
	if h.log != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: msg, Error: err})
	}
}

// readAudio returns an empty Audio when no file was chosen or the form was
// not multipart.
func readAudio(r *http.Request) (speech.Audio, error) {
	file, header, err := r.FormFile("audio")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return speech.Audio{}, nil
	}
	if err != nil {
		return speech.Audio{}, err
	}
	defer file.Close()

	if header.Size > maxUpload {
		return speech.Audio{}, errAudioTooLarge
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return speech.Audio{}, fmt.Errorf("read audio: %w", err)
	}
	return speech.Audio{Filename: header.Filename, Data: data}, nil
}
