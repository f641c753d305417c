package domain

import (
	"cmp"
	"slices"
	"strings"
)

type Language struct {
	Code string
	Name string
}

// Languages maps lower-case language codes to display names.
type Languages map[string]string

func NormalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

func (l Languages) Has(code string) bool {
	_, ok := l[NormalizeCode(code)]
	return ok
}

func (l Languages) Name(code string) string {
	if name, ok := l[NormalizeCode(code)]; ok {
		return name
	}
	return code
}

// Options returns the languages ordered by display name.
func (l Languages) Options() []Language {
	out := make([]Language, 0, len(l))
	for code, name := range l {
		out = append(out, Language{Code: code, Name: name})
	}
	slices.SortFunc(out, func(a, b Language) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.Code, b.Code)
	})
	return out
}

// Pick returns preferred when it is loaded and differs from avoid, otherwise
// the first option that differs from avoid. With a single language loaded
// that language is returned even if it equals avoid.
func (l Languages) Pick(preferred, avoid string) string {
	preferred = NormalizeCode(preferred)
	avoid = NormalizeCode(avoid)

	if l.Has(preferred) && preferred != avoid {
		return preferred
	}
	opts := l.Options()
	for _, opt := range opts {
		if opt.Code != avoid {
			return opt.Code
		}
	}
	if l.Has(preferred) {
		return preferred
	}
	if len(opts) > 0 {
		return opts[0].Code
	}
	return ""
}

func newLanguages(raw map[string]string) Languages {
	out := make(Languages, len(raw))
	for code, name := range raw {
		code = NormalizeCode(code)
		if code == "" {
			continue
		}
		if strings.TrimSpace(name) == "" {
			name = code
		}
		out[code] = name
	}
	return out
}
