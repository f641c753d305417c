package apiclient

import "io"

// Wire types of the translation API.

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp,omitempty"`
	Version   string `json:"version,omitempty"`
}

type LanguagesResponse struct {
	Languages map[string]string `json:"languages"`
	Total     int               `json:"total"`
}

type TranslateRequest struct {
	Text   string `json:"text"`
	Source string `json:"source,omitempty"`
	Target string `json:"target"`
}

type TranslateResponse struct {
	Success        bool    `json:"success"`
	OriginalText   string  `json:"original_text,omitempty"`
	TranslatedText string  `json:"translated_text"`
	SourceLanguage string  `json:"source_language"`
	TargetLanguage string  `json:"target_language"`
	Confidence     float64 `json:"confidence,omitempty"`
	Error          string  `json:"error,omitempty"`
}

type BatchTranslateRequest struct {
	Texts  []string `json:"texts"`
	Source string   `json:"source,omitempty"`
	Target string   `json:"target"`
}

type BatchItem struct {
	Success          bool   `json:"success"`
	OriginalText     string `json:"original_text"`
	TranslatedText   string `json:"translated_text,omitempty"`
	DetectedLanguage string `json:"detected_language,omitempty"`
	Error            string `json:"error,omitempty"`
}

type BatchTranslateResponse struct {
	Success    bool        `json:"success"`
	Results    []BatchItem `json:"results"`
	Total      int         `json:"total"`
	Successful int         `json:"successful"`
	Error      string      `json:"error,omitempty"`
}

// SpeechToTextRequest is sent as multipart/form-data, not JSON.
type SpeechToTextRequest struct {
	Audio    io.Reader
	Filename string
	Language string
}

type SpeechToTextResponse struct {
	Success    bool    `json:"success"`
	Text       string  `json:"text"`
	Language   string  `json:"language,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	Error      string  `json:"error,omitempty"`
}

type TextToSpeechRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Slow     bool   `json:"slow,omitempty"`
}

type TextToSpeechResponse struct {
	Success  bool     `json:"success"`
	AudioURL string   `json:"audio_url"`
	Duration *float64 `json:"duration"`
	Language string   `json:"language,omitempty"`
	Error    string   `json:"error,omitempty"`
}
