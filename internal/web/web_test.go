package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{WelcomePage, CatalogPage, ViewerPage, ManagePage, ScanPage} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestViewerRendersImageOrFrame(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, ViewerPage, map[string]any{
		"Filename": "kab_sov.webp", "AssetURL": "/vinery/description/kab_sov.webp", "IsImage": true,
	}))
	assert.Contains(t, buf.String(), `<img class="card" src="/vinery/description/kab_sov.webp"`)

	buf.Reset()
	require.NoError(t, tmpl.ExecuteTemplate(&buf, ViewerPage, map[string]any{
		"Filename": "kab_sov.pdf", "AssetURL": "/vinery/description/kab_sov.pdf", "IsImage": false,
	}))
	assert.Contains(t, buf.String(), `<iframe class="frame" src="/vinery/description/kab_sov.pdf"`)
}

func TestDict(t *testing.T) {
	m, err := dict("a", 1, "b", "x")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1, "b": "x"}, m)

	_, err = dict("a")
	assert.Error(t, err)
	_, err = dict(1, 2)
	assert.Error(t, err)
}
