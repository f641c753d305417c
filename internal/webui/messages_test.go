package webui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessages(t *testing.T) {
	msgs, err := NewMessages("en")
	require.NoError(t, err)

	en := msgs.For("")
	assert.Equal(t, "Translate", en.Label("button_translate"))
	assert.Equal(t, "Unsupported language: xx", en.T("error_unsupported_language", map[string]any{"Code": "xx"}))
	assert.Equal(t, "no_such_message", en.Label("no_such_message"))

	ar := msgs.For("ar-EG")
	assert.Equal(t, "ترجم", ar.Label("button_translate"))
	assert.Equal(t, "ar", ar.Label("meta_lang"))

	// unknown browser locale falls back to the configured default
	fallback, err := NewMessages("ar")
	require.NoError(t, err)
	assert.Equal(t, "rtl", fallback.For("ja").Label("meta_dir"))
}
