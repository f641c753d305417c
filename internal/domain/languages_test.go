package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/human_translator/internal/apiclient"
)

func TestLanguages_Options(t *testing.T) {
	langs := Languages{"fr": "French", "en": "English", "ar": "Arabic"}

	assert.Equal(t, []Language{
		{Code: "ar", Name: "Arabic"},
		{Code: "en", Name: "English"},
		{Code: "fr", Name: "French"},
	}, langs.Options())
}

func TestLanguages_Pick(t *testing.T) {
	langs := Languages{"en": "English", "fr": "French"}

	assert.Equal(t, "en", langs.Pick("en", ""))
	assert.Equal(t, "fr", langs.Pick("ar", "en"))
	assert.Equal(t, "fr", langs.Pick("en", "en"))
	assert.Equal(t, "en", langs.Pick("EN ", "fr"))
	assert.Equal(t, "en", Languages{"en": "English"}.Pick("en", "en"))
	assert.Equal(t, "", Languages{}.Pick("en", ""))
}

func TestLanguages_HasAndName(t *testing.T) {
	langs := newLanguages(map[string]string{"EN": "English", "zh-CN": "Chinese (Simplified)", " ": "blank"})

	assert.True(t, langs.Has("en"))
	assert.True(t, langs.Has("zh-cn"))
	assert.False(t, langs.Has(""))
	assert.Equal(t, "Chinese (Simplified)", langs.Name("ZH-CN"))
	assert.Equal(t, "xx", langs.Name("xx"))
}

type mapCache struct {
	langs map[string]string
	sets  int
}

func (c *mapCache) Get(context.Context) (map[string]string, bool, error) {
	return c.langs, c.langs != nil, nil
}

func (c *mapCache) Set(_ context.Context, langs map[string]string) error {
	c.langs = langs
	c.sets++
	return nil
}

func TestLanguageService_LoadCachesResult(t *testing.T) {
	api := &fakeAPI{languages: &apiclient.LanguagesResponse{
		Languages: map[string]string{"en": "English", "fr": "French"},
		Total:     2,
	}}
	cache := &mapCache{}
	svc := NewLanguageService(api, cache, nil)

	langs, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Languages{"en": "English", "fr": "French"}, langs)
	assert.Equal(t, 1, cache.sets)

	_, err = svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, api.calls, "second load should be served from cache")
}

func TestLanguageService_StaleFallback(t *testing.T) {
	api := &fakeAPI{languages: &apiclient.LanguagesResponse{Languages: map[string]string{"en": "English"}}}
	n := &recordingNotifier{}
	svc := NewLanguageService(api, nil, n)

	_, err := svc.Load(context.Background())
	require.NoError(t, err)

	api.err = errDown
	langs, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Languages{"en": "English"}, langs)
	assert.Equal(t, []string{"languages"}, n.ops)
}

func TestLanguageService_FailsWithoutHistory(t *testing.T) {
	svc := NewLanguageService(&fakeAPI{err: errDown}, nil, nil)

	_, err := svc.Load(context.Background())
	assert.ErrorIs(t, err, errDown)
}

func TestLanguageService_EmptyListIsAnError(t *testing.T) {
	svc := NewLanguageService(&fakeAPI{languages: &apiclient.LanguagesResponse{}}, nil, nil)

	_, err := svc.Load(context.Background())
	assert.ErrorIs(t, err, ErrNoLanguages)
}
