// Package stubapi is an in-process stand-in for the translation API. It speaks
// the same HTTP contract with deterministic answers and is used by tests and
// for local development of the front end.
package stubapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/goccy/go-json"
)

const (
	version      = "1.0.0"
	maxBatchSize = 100
	maxUpload    = 32 << 20
)

type Server struct {
	engine *engine
	audio  *audioStore
	log    *logger.ZapLogger
	router chi.Router
}

func New(cfg *Config, log *logger.ZapLogger) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	s := &Server{
		engine: &engine{cfg: cfg},
		audio:  newAudioStore(),
		log:    log,
	}
	s.router = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(
		httputil.RecoverMiddleware,
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		}),
	)

	r.Get("/", s.info)
	r.Get("/audio/{name}", s.serveAudio)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", s.health)
		api.Get("/languages", s.languages)
		api.Post("/translate", s.translate)
		api.Post("/batch-translate", s.batchTranslate)
		api.Post("/speech-to-text", s.speechToText)
		api.Post("/text-to-speech", s.textToSpeech)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error":   "Endpoint not found",
			"message": "The requested endpoint does not exist",
		})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{
			"error":   "Method not allowed",
			"message": "The request method is not allowed for this endpoint",
		})
	})
	return r
}

func (s *Server) info(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "HumanTranslator API Server",
		"version": version,
		"endpoints": map[string]string{
			"/api/translate":       "POST - Translate text",
			"/api/batch-translate": "POST - Translate multiple texts",
			"/api/languages":       "GET - Get supported languages",
			"/api/speech-to-text":  "POST - Convert speech to text",
			"/api/text-to-speech":  "POST - Convert text to speech",
			"/api/health":          "GET - Health check",
		},
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	status := "healthy"
	if s.engine.cfg.Unhealthy {
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   version,
	})
}

func (s *Server) languages(w http.ResponseWriter, _ *http.Request) {
	if msg, fail := s.engine.failure("languages"); fail {
		if msg == "" {
			msg = "Failed to get languages"
		}
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": msg})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"languages": s.engine.cfg.Languages,
		"total":     len(s.engine.cfg.Languages),
	})
}

func (s *Server) translate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text   *string `json:"text"`
		Source string  `json:"source"`
		Target *string `json:"target"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == nil || req.Target == nil {
		badRequest(w, "Missing required fields: text and target")
		return
	}

	text := strings.TrimSpace(*req.Text)
	target := normalizeCode(*req.Target)
	source := normalizeCode(req.Source)
	if source == "" {
		source = "auto"
	}

	switch {
	case text == "":
		badRequest(w, "Text cannot be empty")
		return
	case !s.engine.validLanguage(target):
		badRequest(w, "Invalid target language code")
		return
	case source != "auto" && !s.engine.validLanguage(source):
		badRequest(w, "Invalid source language code")
		return
	}

	if msg, fail := s.engine.failure("translate"); fail {
		failed(w, msg)
		return
	}

	translated, detected := s.engine.translate(text, source, target)
	s.logEntry("translation served", detected+"->"+target)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"original_text":   text,
		"translated_text": translated,
		"source_language": detected,
		"target_language": target,
		"confidence":      0.95,
	})
}

func (s *Server) batchTranslate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Texts  []string `json:"texts"`
		Source string   `json:"source"`
		Target *string  `json:"target"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Texts == nil || req.Target == nil {
		badRequest(w, "Missing required fields: texts and target")
		return
	}

	target := normalizeCode(*req.Target)
	source := normalizeCode(req.Source)
	if source == "" {
		source = "auto"
	}

	switch {
	case len(req.Texts) == 0:
		badRequest(w, "texts must be a non-empty list")
		return
	case len(req.Texts) > maxBatchSize:
		badRequest(w, "Maximum 100 texts per batch")
		return
	case !s.engine.validLanguage(target):
		badRequest(w, "Invalid target language code")
		return
	}

	if msg, fail := s.engine.failure("batch-translate"); fail {
		failed(w, msg)
		return
	}

	results := make([]map[string]any, 0, len(req.Texts))
	successful := 0
	for _, text := range req.Texts {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			results = append(results, map[string]any{
				"success":       false,
				"error":         "Empty text",
				"original_text": text,
			})
			continue
		}
		translated, detected := s.engine.translate(trimmed, source, target)
		results = append(results, map[string]any{
			"success":           true,
			"original_text":     text,
			"translated_text":   translated,
			"detected_language": detected,
		})
		successful++
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"results":    results,
		"total":      len(results),
		"successful": successful,
	})
}

func (s *Server) speechToText(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		badRequest(w, "No audio file provided")
		return
	}
	file, header, err := r.FormFile("audio")
	if err != nil {
		badRequest(w, "No audio file provided")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		badRequest(w, "No file selected")
		return
	}

	if msg, fail := s.engine.failure("speech-to-text"); fail {
		failed(w, msg)
		return
	}

	lang := normalizeCode(r.FormValue("language"))
	if lang == "" || lang == "auto" {
		lang = s.engine.cfg.DetectedLanguage
	}

	s.logEntry("transcription served", header.Filename)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"text":       s.engine.cfg.Transcript,
		"language":   lang,
		"confidence": 0.9,
	})
}

func (s *Server) textToSpeech(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text     *string `json:"text"`
		Language *string `json:"language"`
		Slow     bool    `json:"slow"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == nil || req.Language == nil {
		badRequest(w, "Missing required fields: text and language")
		return
	}

	text := strings.TrimSpace(*req.Text)
	lang := normalizeCode(*req.Language)
	switch {
	case text == "":
		badRequest(w, "Text cannot be empty")
		return
	case !s.engine.validLanguage(lang):
		badRequest(w, "Invalid language code")
		return
	}

	if msg, fail := s.engine.failure("text-to-speech"); fail {
		failed(w, msg)
		return
	}

	name := s.audio.put(text, lang)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"audio_url": "/audio/" + name,
		"duration":  s.engine.cfg.SpeechDuration,
		"language":  lang,
	})
}

func (s *Server) serveAudio(w http.ResponseWriter, r *http.Request) {
	clip, ok := s.audio.get(chi.URLParam(r, "name"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "Audio not found"})
		return
	}
	w.Header().Set("Content-Type", "audio/mpeg")
	_, _ = w.Write(clip)
}

func (s *Server) logEntry(msg, details string) {
	if s.log == nil {
		return
	}
	s.log.Log(logger.LogEntry{Level: "info", Message: msg + ": " + details, Service: "stubapi"})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]any{"error": msg})
}

func failed(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
