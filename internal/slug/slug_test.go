package slug

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noneTaken(string) (bool, error) { return false, nil }

func TestMakeTransliteratesTitle(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Заголовок", "zagolovok"},
		{"Новая заметка", "novaia-zametka"},
		{"Hello, World!", "hello-world"},
		{"  spaced   out  ", "spaced-out"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Make(tc.title), "title %q", tc.title)
	}
}

func TestResolveEmptySlugDerivesFromTitle(t *testing.T) {
	got, err := Resolve("Заголовок", "", func(string) (bool, error) {
		t.Fatal("derived slugs must not be pre-checked")
		return false, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "zagolovok", got)
}

func TestResolveKeepsExplicitSlugVerbatim(t *testing.T) {
	got, err := Resolve("Заголовок", "Slug", noneTaken)
	require.NoError(t, err)
	assert.Equal(t, "Slug", got)
}

func TestResolveRejectsDuplicate(t *testing.T) {
	_, err := Resolve("Заголовок", "New-slug", func(s string) (bool, error) {
		return s == "New-slug", nil
	})
	var ferr *FieldError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "slug", ferr.Field)
	assert.Equal(t, "New-slug"+Warning, ferr.Message)
}

func TestResolveRejectsUnsafeSlug(t *testing.T) {
	for _, bad := range []string{"про заметку", "a/b", "слаг", "a.b"} {
		_, err := Resolve("Заголовок", bad, noneTaken)
		var ferr *FieldError
		require.ErrorAs(t, err, &ferr, "slug %q", bad)
		assert.Equal(t, "slug", ferr.Field)
	}
}

func TestResolvePropagatesLookupError(t *testing.T) {
	boom := errors.New("db down")
	_, err := Resolve("Заголовок", "ok-slug", func(string) (bool, error) {
		return false, boom
	})
	require.ErrorIs(t, err, boom)
}
