package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messages(c *Copy, acceptLanguage string) Messages {
	_, m := c.For(acceptLanguage)
	return m
}

func TestCopy(t *testing.T) {
	c, err := NewCopy("it", nil)
	require.NoError(t, err)

	assert.Equal(t, "errore 403 - Accesso Negato", messages(c, "").Get("forbidden"))
	assert.Equal(t, "errore 404 - File non trovato", messages(c, "fr-FR").Get("not-found"))
	assert.Equal(t, "error 500 - Internal server error", messages(c, "en-US,en;q=0.8").Get("internal-error"))
	assert.Equal(t, "unknown-key", messages(c, "").Get("unknown-key"))
}

func TestCopyOverrides(t *testing.T) {
	c, err := NewCopy("en", map[string]string{"forbidden": "Go away"})
	require.NoError(t, err)

	assert.Equal(t, "Go away", messages(c, "").Get("forbidden"))
	assert.Equal(t, "Go away", messages(c, "it").Get("forbidden"))
	assert.Equal(t, "error 404 - File not found", messages(c, "").Get("not-found"))
}

func TestCopyUnknownDefault(t *testing.T) {
	c, err := NewCopy("de", nil)
	require.NoError(t, err)
	assert.Equal(t, "error 403 - Access denied", messages(c, "").Get("forbidden"))

	_, err = NewCopy("not a language tag!", nil)
	assert.Error(t, err)
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	for tag, catalog := range builtinCopy {
		for otherTag, other := range builtinCopy {
			for key := range catalog {
				_, ok := other[key]
				assert.True(t, ok, "%s has %q, %s hasn't", tag, key, otherTag)
			}
		}
	}
}
