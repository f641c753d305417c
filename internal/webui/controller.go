package webui

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/Vovarama1992/human_translator/internal/apiclient"
	"github.com/Vovarama1992/human_translator/internal/domain"
	"github.com/Vovarama1992/human_translator/internal/speech"
)

// Defaults are the language codes preselected on a fresh page.
type Defaults struct {
	Source string
	Target string
}

// Controller turns user actions into API calls and reflects the outcome into
// a Page. Every action is one request; nothing is retried.
type Controller struct {
	health     HealthChecker
	languages  LanguageLoader
	translator Translator
	speech     Speaker
	messages   *Messages
	defaults   Defaults
}

func NewController(
	health HealthChecker,
	languages LanguageLoader,
	translator Translator,
	speech Speaker,
	messages *Messages,
	defaults Defaults,
) *Controller {
	if defaults.Source == "" {
		defaults.Source = "en"
	}
	return &Controller{
		health:     health,
		languages:  languages,
		translator: translator,
		speech:     speech,
		messages:   messages,
		defaults:   defaults,
	}
}

// NewPage returns an empty page localized for the Accept-Language value.
func (c *Controller) NewPage(acceptLanguage string) *Page {
	return &Page{Lang: c.messages.For(acceptLanguage)}
}

// Load refreshes the badge and the language list, then settles the selected
// codes. It returns false when no action should run on this page: the
// languages failed to load or a submitted code is not in the list.
func (c *Controller) Load(ctx context.Context, p *Page) bool {
	var (
		health  domain.Health
		langs   domain.Languages
		langErr error
	)

	var g errgroup.Group
	g.Go(func() error {
		health = c.health.Check(ctx)
		return nil
	})
	g.Go(func() error {
		langs, langErr = c.languages.Load(ctx)
		return nil
	})
	_ = g.Wait()

	c.setBadge(p, health)

	if langErr != nil {
		p.langs = nil
		p.Options = nil
		c.fail(p, "error_languages", langErr)
		return false
	}

	p.langs = langs
	p.Options = langs.Options()
	p.LanguagesLine = p.Lang.T("info_languages_total", map[string]any{"Total": humanize.Comma(int64(len(p.Options)))})

	ok := true
	p.Source = domain.NormalizeCode(p.Source)
	p.Target = domain.NormalizeCode(p.Target)

	if p.Source != "" && !langs.Has(p.Source) {
		c.unsupported(p, p.Source)
		p.Source = ""
		ok = false
	}
	if p.Source == "" {
		p.Source = langs.Pick(c.defaults.Source, "")
	}

	if p.Target != "" && !langs.Has(p.Target) {
		c.unsupported(p, p.Target)
		p.Target = ""
		ok = false
	}
	if p.Target == "" {
		p.Target = langs.Pick(c.defaults.Target, p.Source)
	}

	return ok
}

// Badge refreshes only the health indicator.
func (c *Controller) Badge(ctx context.Context, p *Page) {
	c.setBadge(p, c.health.Check(ctx))
}

func (c *Controller) Translate(ctx context.Context, p *Page) {
	tr, err := c.translator.Translate(ctx, p.langs, domain.TranslateInput{
		Text:   p.SourceText,
		Source: p.Source,
		Target: p.Target,
	})

	var unsupported *domain.UnsupportedLanguageError
	switch {
	case errors.Is(err, domain.ErrEmptyText):
		p.alert(AlertPrompt, p.Lang.Label("prompt_translate_text"))
	case errors.As(err, &unsupported):
		c.unsupported(p, unsupported.Code)
	case err != nil:
		c.fail(p, "error_translate", err)
	default:
		p.TranslatedText = tr.Text
		p.LanguageInfo = p.Lang.T("info_language", map[string]any{
			"Source": c.languageLabel(p, tr.Source),
			"Target": c.languageLabel(p, tr.Target),
		})
		p.alert(AlertInfo, p.Lang.Label("info_translated"))
	}
}

// Speak synthesizes the text box on the given side in that side's language.
func (c *Controller) Speak(ctx context.Context, p *Page, side Side) {
	text, lang := p.SourceText, p.Source
	if side == SideTarget {
		text, lang = p.TranslatedText, p.Target
	}

	sp, err := c.speech.Synthesize(ctx, text, lang)
	switch {
	case errors.Is(err, speech.ErrEmptyText):
		p.alert(AlertPrompt, p.Lang.Label("prompt_speak_text"))
	case err != nil:
		c.fail(p, "error_text_to_speech", err)
	default:
		p.AudioURL = sp.URL
		if sp.Duration != nil && *sp.Duration > 0 {
			p.alert(AlertInfo, p.Lang.T("info_audio_ready_duration", map[string]any{
				"Seconds": strconv.FormatFloat(*sp.Duration, 'f', 1, 64),
			}))
			return
		}
		p.alert(AlertInfo, p.Lang.Label("info_audio_ready"))
	}
}

// Transcribe fills the source text box with the recognized speech.
func (c *Controller) Transcribe(ctx context.Context, p *Page, audio speech.Audio) {
	if audio.Language == "" {
		audio.Language = p.Source
	}

	tr, err := c.speech.Transcribe(ctx, audio)
	switch {
	case errors.Is(err, speech.ErrNoAudio):
		p.alert(AlertPrompt, p.Lang.Label("prompt_audio_file"))
	case err != nil:
		c.fail(p, "error_speech_to_text", err)
	default:
		p.SourceText = tr.Text
		p.LanguageInfo = p.Lang.T("info_transcribed", map[string]any{
			"Size":     humanize.Bytes(uint64(audio.Size())),
			"Language": c.languageLabel(p, tr.Language),
		})
	}
}

// Swap exchanges the languages and the two text boxes.
func (c *Controller) Swap(p *Page) {
	p.Source, p.Target = p.Target, p.Source
	p.SourceText, p.TranslatedText = p.TranslatedText, p.SourceText
	p.LanguageInfo = ""
}

// Reject shows a localized error for a request that never reached the API.
func (c *Controller) Reject(p *Page, messageID string, data map[string]any) {
	p.alert(AlertError, p.Lang.T(messageID, data))
}

func (c *Controller) setBadge(p *Page, h domain.Health) {
	p.Badge = Badge{Healthy: h.Healthy, Status: h.Status}
	if h.Healthy {
		p.Badge.Label = p.Lang.Label("badge_online")
	} else {
		p.Badge.Label = p.Lang.Label("badge_offline")
	}
}

// fail shows the server's error verbatim, or the localized fallback when the
// request never produced one.
func (c *Controller) fail(p *Page, fallbackID string, err error) {
	msg := apiclient.ServerMessage(err)
	if msg == "" {
		msg = p.Lang.Label(fallbackID)
	}
	p.alert(AlertError, msg)
}

func (c *Controller) unsupported(p *Page, code string) {
	p.alert(AlertError, p.Lang.T("error_unsupported_language", map[string]any{"Code": code}))
}

func (c *Controller) languageLabel(p *Page, code string) string {
	if p.langs == nil || !p.langs.Has(code) {
		return code
	}
	return fmt.Sprintf("%s (%s)", p.langs.Name(code), code)
}
