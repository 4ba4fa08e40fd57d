package harvey

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestHarvey_LoadDeck(t *testing.T) {
	h, err := New()
	require.NoError(t, err)
	defer func() { _ = h.Close() }()

	dir := t.TempDir()
	writeFile(t, dir, "intro.slides", "---\ntitle: Hello\n\n# Welcome\n***\nSecond fragment\n???\nGreet the audience\n")
	deckPath := writeFile(t, dir, "talk.yaml", `
slides:
  - intro.slides
meta:
  ratio: "16:9"
`)

	deck, err := h.LoadDeck(context.Background(), deckPath)
	require.NoError(t, err)

	slides := deck.Slides()
	require.Len(t, slides, 1)
	assert.Equal(t, []string{"# Welcome\n", "Second fragment\n"}, slides[0].Fragments)
	assert.Equal(t, "Greet the audience\n", slides[0].Notes)

	// The metadata's origin is recoverable from its handle alone.
	desc := h.DescribeOrigin(slides[0].Metadata.Handle)
	assert.Contains(t, desc, "intro.slides")
	assert.Contains(t, desc, "slide 1")
}

func TestHarvey_ParseSlideFile(t *testing.T) {
	h, err := New()
	require.NoError(t, err)
	defer func() { _ = h.Close() }()

	path := writeFile(t, t.TempDir(), "solo.slides", "---\na: 1\n\nbody\n")
	deck, err := h.ParseSlideFile(path)
	require.NoError(t, err)
	require.Len(t, deck.Slides, 1)

	var errs LoadErrors
	_, err = h.ParseSlideFile(writeFile(t, t.TempDir(), "broken.slides", "no delimiter\n"))
	require.ErrorAs(t, err, &errs)
}

func TestHarvey_Resources(t *testing.T) {
	h, err := New()
	require.NoError(t, err)
	defer func() { _ = h.Close() }()

	_, content, err := h.Resources().Get("slides.css")
	require.NoError(t, err)
	assert.NotEmpty(t, content)
}
