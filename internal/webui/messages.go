package webui

import (
	"embed"
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed locales/active.*.toml
var localeFS embed.FS

var localeFiles = []string{"locales/active.en.toml", "locales/active.ar.toml"}

// Messages holds the UI strings for every supported locale.
type Messages struct {
	bundle          *i18n.Bundle
	defaultLanguage language.Tag
}

// NewMessages loads the embedded bundles. defaultLocale is used when the
// browser asks for nothing we have.
func NewMessages(defaultLocale string) (*Messages, error) {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		tag = language.English
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	for _, file := range localeFiles {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			return nil, fmt.Errorf("i18n: load %s: %w", file, err)
		}
	}

	return &Messages{bundle: bundle, defaultLanguage: tag}, nil
}

// For returns a localizer for an Accept-Language header value.
func (m *Messages) For(acceptLanguage string) *Localizer {
	langs := []string{}
	if acceptLanguage != "" {
		langs = append(langs, acceptLanguage)
	}
	langs = append(langs, m.defaultLanguage.String())
	return &Localizer{loc: i18n.NewLocalizer(m.bundle, langs...)}
}

type Localizer struct {
	loc *i18n.Localizer
}

// T renders message id. Missing messages fall back to English, then to the id.
func (l *Localizer) T(id string, data map[string]any) string {
	msg, _ := l.loc.Localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
	if msg == "" {
		return id
	}
	return msg
}

// Label is T without template data, for use from templates.
func (l *Localizer) Label(id string) string {
	return l.T(id, nil)
}
