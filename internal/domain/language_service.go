package domain

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/Vovarama1992/human_translator/internal/error_notificator"
	"github.com/Vovarama1992/human_translator/internal/ports"
)

type LanguageService struct {
	api      ports.LanguageAPI
	cache    ports.LanguageCache
	notifier error_notificator.Notificator

	mu   sync.RWMutex
	last Languages
}

// NewLanguageService builds the loader. cache may be nil.
func NewLanguageService(api ports.LanguageAPI, cache ports.LanguageCache, n error_notificator.Notificator) *LanguageService {
	return &LanguageService{api: api, cache: cache, notifier: n}
}

// Load returns the language map, preferring a fresh cache entry. When the API
// fails, the last map seen by this process is served instead.
func (s *LanguageService) Load(ctx context.Context) (Languages, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			s.notify(ctx, err, "language cache read")
		case ok && len(cached) > 0:
			return newLanguages(cached), nil
		}
	}

	resp, err := s.api.Languages(ctx)
	if err == nil && len(resp.Languages) == 0 {
		err = ErrNoLanguages
	}
	if err != nil {
		if stale := s.lastKnown(); stale != nil {
			s.notify(ctx, err, "serving stale language list")
			return stale, nil
		}
		return nil, fmt.Errorf("load languages: %w", err)
	}

	langs := newLanguages(resp.Languages)

	s.mu.Lock()
	s.last = langs
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.Set(ctx, langs); err != nil {
			s.notify(ctx, err, "language cache write")
		}
	}
	return langs, nil
}

func (s *LanguageService) lastKnown() Languages {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return nil
	}
	return maps.Clone(s.last)
}

func (s *LanguageService) notify(ctx context.Context, err error, details string) {
	if s.notifier != nil {
		_ = s.notifier.Notify(ctx, "languages", err, details)
	}
}
