package stubapi

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Config drives the deterministic behaviour of the stub.
type Config struct {
	// Unhealthy makes /api/health report "degraded".
	Unhealthy bool
	// Languages is the map served by /api/languages and used for validation.
	Languages map[string]string
	// Dictionary maps [targetLang][sourceText] to a translation. Anything
	// else is returned as "[target] text".
	Dictionary map[string]map[string]string
	// DetectedLanguage is reported when the caller asks for auto-detection.
	DetectedLanguage string
	// Transcript is returned for every uploaded audio file.
	Transcript string
	// SpeechDuration is reported by /api/text-to-speech; nil is sent as null.
	SpeechDuration *float64
	// FailWith makes an endpoint answer success:false with the given error.
	// Keys are endpoint names such as "translate" or "text-to-speech".
	FailWith map[string]string
}

// DefaultConfig returns the language list of the production API and a
// small phrase dictionary.
func DefaultConfig() *Config {
	return &Config{
		Languages: map[string]string{
			"en":    "English",
			"ar":    "Arabic",
			"fr":    "French",
			"es":    "Spanish",
			"de":    "German",
			"it":    "Italian",
			"tr":    "Turkish",
			"ru":    "Russian",
			"zh-cn": "Chinese (Simplified)",
			"ja":    "Japanese",
			"ko":    "Korean",
		},
		Dictionary: map[string]map[string]string{
			"fr": {
				"Hello world":         "Bonjour le monde",
				"Good morning":        "Bonjour",
				"How are you?":        "Comment allez-vous ?",
				"Thank you very much": "Merci beaucoup",
			},
			"es": {
				"Hello world":         "Hola mundo",
				"Good morning":        "Buenos días",
				"How are you?":        "¿Cómo estás?",
				"Thank you very much": "Muchas gracias",
			},
			"ar": {
				"Hello world":  "مرحبا بالعالم",
				"Good morning": "صباح الخير",
				"How are you?": "كيف حالك؟",
			},
		},
		DetectedLanguage: "en",
		Transcript:       "Hello world",
	}
}

type engine struct {
	cfg *Config
}

func (e *engine) validLanguage(code string) bool {
	_, ok := e.cfg.Languages[normalizeCode(code)]
	return ok
}

// translate returns the translation and the effective source language.
func (e *engine) translate(text, source, target string) (string, string) {
	detected := source
	if detected == "" || detected == "auto" {
		detected = e.cfg.DetectedLanguage
	}
	if detected == target {
		return text, detected
	}
	if byText, ok := e.cfg.Dictionary[target]; ok {
		if translated, ok := byText[text]; ok {
			return translated, detected
		}
	}
	return fmt.Sprintf("[%s] %s", target, text), detected
}

func (e *engine) failure(endpoint string) (string, bool) {
	msg, ok := e.cfg.FailWith[endpoint]
	return msg, ok
}

func normalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// audioStore keeps synthesized clips in memory, keyed by file name.
type audioStore struct {
	mu    sync.RWMutex
	clips map[string][]byte
}

func newAudioStore() *audioStore {
	return &audioStore{clips: make(map[string][]byte)}
}

func (s *audioStore) put(text, lang string) string {
	name := strings.ReplaceAll(uuid.NewString(), "-", "") + ".mp3"
	clip := append([]byte("ID3"), []byte(lang+":"+text)...)

	s.mu.Lock()
	s.clips[name] = clip
	s.mu.Unlock()
	return name
}

func (s *audioStore) get(name string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clip, ok := s.clips[name]
	return clip, ok
}
