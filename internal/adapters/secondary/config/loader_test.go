package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harvey-slides/harvey/internal/adapters/secondary/yamlsource"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_Load(t *testing.T) {
	t.Run("valid deck file", func(t *testing.T) {
		registry := yamlsource.NewRegistry()
		loader := NewLoader(registry)

		path := writeFile(t, t.TempDir(), "talk.yaml", `
slides:
  - intro.slides
styles:
  - talk.css
meta:
  ratio: "16:9"
`)

		deck, err := loader.Load(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"intro.slides"}, deck.Slides)
		assert.Equal(t, []string{"talk.css"}, deck.Styles)

		// The load went through the provenance-tagged entry point.
		require.Equal(t, 1, registry.Len())
		assert.Equal(t, path, registry.Describe(0))
	})

	t.Run("missing file", func(t *testing.T) {
		loader := NewLoader(yamlsource.NewRegistry())

		_, err := loader.Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "deck file not found")
	})

	t.Run("duplicate keys rejected", func(t *testing.T) {
		loader := NewLoader(yamlsource.NewRegistry())

		path := writeFile(t, t.TempDir(), "talk.yaml", "slides: [a.slides]\nslides: [b.slides]\n")
		_, err := loader.Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate mapping key")
	})

	t.Run("deck without slides is invalid", func(t *testing.T) {
		loader := NewLoader(yamlsource.NewRegistry())

		path := writeFile(t, t.TempDir(), "talk.yaml", "styles: [a.css]\n")
		_, err := loader.Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least one slide file")
	})
}

func TestLoader_LoadWithDefaults(t *testing.T) {
	t.Run("defaults fill unset fields", func(t *testing.T) {
		registry := yamlsource.NewRegistry()
		loader := NewLoader(registry)
		dir := t.TempDir()

		deckPath := writeFile(t, dir, "talk.yaml", "slides: [intro.slides]\n")
		defaultsPath := writeFile(t, dir, "defaults.yaml", "styles: [default.css]\nscripts: [default.js]\n")

		deck, err := loader.LoadWithDefaults(deckPath, defaultsPath)
		require.NoError(t, err)
		assert.Equal(t, []string{"intro.slides"}, deck.Slides)
		assert.Equal(t, []string{"default.css"}, deck.Styles)
		assert.Equal(t, []string{"default.js"}, deck.Scripts)

		// Both documents were registered.
		assert.Equal(t, 2, registry.Len())
	})

	t.Run("absent defaults file is fine", func(t *testing.T) {
		loader := NewLoader(yamlsource.NewRegistry())
		dir := t.TempDir()

		deckPath := writeFile(t, dir, "talk.yaml", "slides: [intro.slides]\n")
		deck, err := loader.LoadWithDefaults(deckPath, filepath.Join(dir, "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, []string{"intro.slides"}, deck.Slides)
	})

	t.Run("empty defaults path skips merging", func(t *testing.T) {
		loader := NewLoader(yamlsource.NewRegistry())

		deckPath := writeFile(t, t.TempDir(), "talk.yaml", "slides: [intro.slides]\n")
		deck, err := loader.LoadWithDefaults(deckPath, "")
		require.NoError(t, err)
		assert.Empty(t, deck.Styles)
	})
}
