package webui

import "github.com/Vovarama1992/human_translator/internal/domain"

type AlertKind string

const (
	AlertError  AlertKind = "error"
	AlertPrompt AlertKind = "prompt"
	AlertInfo   AlertKind = "info"
)

type Alert struct {
	Kind AlertKind
	Text string
}

type Badge struct {
	Healthy bool
	Label   string
	Status  string
}

// Side selects which text box a speech action works on.
type Side int

const (
	SideSource Side = iota
	SideTarget
)

// Page is the state of one rendered translator page. It lives for a single
// request; the browser carries it between requests in the form fields.
type Page struct {
	Source         string
	Target         string
	SourceText     string
	TranslatedText string

	Options       []domain.Language
	LanguagesLine string
	Badge         Badge
	Alert         *Alert
	LanguageInfo  string
	AudioURL      string

	Lang  *Localizer
	langs domain.Languages
}

func (p *Page) alert(kind AlertKind, text string) {
	p.Alert = &Alert{Kind: kind, Text: text}
}
