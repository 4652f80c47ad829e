package assets

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"winelink/internal/models"
	"winelink/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocator(t *testing.T) (*Locator, string) {
	t.Helper()
	root := t.TempDir()
	store, err := storage.NewLocalStorage(storage.Config{BasePath: root})
	require.NoError(t, err)
	return NewLocator(store, Dirs{Pdf: "pdfs", Webp: "webp", LegacyWebp: "webps", Bottles: "bottles"}), root
}

func touch(t *testing.T, root string, rel ...string) {
	t.Helper()
	for _, r := range rel {
		p := filepath.Join(root, filepath.FromSlash(r))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
}

func TestBuildBottleLookupMissingDir(t *testing.T) {
	l, _ := newTestLocator(t)

	scan := l.Bottles(context.Background())
	assert.False(t, scan.Exists)
	assert.Empty(t, scan.Lookup)
	assert.Empty(t, scan.Collisions)
}

func TestBuildBottleLookupFiltersAndLowercases(t *testing.T) {
	l, root := newTestLocator(t)
	touch(t, root, "bottles/Kab_Sov.PNG", "bottles/notes.txt", "bottles/khvanchkara.webp")

	lookup := l.BuildBottleLookup(context.Background(), "bottles")
	assert.Equal(t, BottleLookup{
		"kab_sov":     "Kab_Sov.PNG",
		"khvanchkara": "khvanchkara.webp",
	}, lookup)
	assert.True(t, lookup.Has("Kab_Sov.PNG"))
	assert.False(t, lookup.Has("notes.txt"))
	assert.False(t, lookup.Has("kab_sov.png"))
}

func TestBottleCollisionSmallestNameWins(t *testing.T) {
	l, root := newTestLocator(t)
	touch(t, root, "bottles/kab_sov.png", "bottles/kab_sov.jpg")

	scan := l.Bottles(context.Background())
	assert.Equal(t, "kab_sov.jpg", scan.Lookup["kab_sov"])
	require.Len(t, scan.Collisions, 1)
	assert.Equal(t, []string{"kab_sov.jpg", "kab_sov.png"}, scan.Collisions["kab_sov"])
}

func TestNewBottleScanOrderIndependent(t *testing.T) {
	a := NewBottleScan([]string{"b.png", "a.svg", "b.gif"})
	b := NewBottleScan([]string{"b.gif", "b.png", "a.svg"})
	assert.Equal(t, a, b)
	assert.Equal(t, "b.gif", a.Lookup["b"])
}

func TestNormalizeDescriptionName(t *testing.T) {
	tests := []struct {
		in, name, ext string
	}{
		{"kab_sov.pdf", "kab_sov.pdf", ".pdf"},
		{"../../etc/kab_sov.PDF", "kab_sov.PDF", ".pdf"},
		{"card.web", "card.webp", ".webp"},
		{"card", "card.webp", ".webp"},
		{"a\\b\\card.webp", "card.webp", ".webp"},
	}
	for _, tt := range tests {
		name, ext := NormalizeDescriptionName(tt.in)
		assert.Equal(t, tt.name, name, tt.in)
		assert.Equal(t, tt.ext, ext, tt.in)
	}
}

func TestResolveDescriptionLegacyWebpDir(t *testing.T) {
	l, root := newTestLocator(t)
	ctx := context.Background()

	d := l.ResolveDescription(ctx, "card")
	assert.Equal(t, "webp", d.Dir, "primary dir when neither exists")

	touch(t, root, "webps/card.webp")
	d = l.ResolveDescription(ctx, "card")
	assert.Equal(t, "webps/card.webp", d.Path())

	touch(t, root, "webp/other.webp")
	d = l.ResolveDescription(ctx, "card.web")
	assert.Equal(t, "webp/card.webp", d.Path())

	d = l.ResolveDescription(ctx, "kab_sov.pdf")
	assert.Equal(t, "pdfs", d.Dir)
}

func TestInferActiveExtension(t *testing.T) {
	l, root := newTestLocator(t)
	ctx := context.Background()

	wines := []models.Wine{{PdfFile: ""}, {PdfFile: "noext"}, {PdfFile: "Card.WEBP"}}
	assert.Equal(t, ".webp", l.InferActiveExtension(ctx, wines))

	assert.Equal(t, ".pdf", l.InferActiveExtension(ctx, nil))
	touch(t, root, "webp/a.webp")
	assert.Equal(t, ".webp", l.InferActiveExtension(ctx, nil))
}

func TestDescriptionDirFor(t *testing.T) {
	l, _ := newTestLocator(t)
	assert.Equal(t, "webp", l.DescriptionDirFor(".WEBP"))
	assert.Equal(t, "pdfs", l.DescriptionDirFor(".pdf"))
	assert.Equal(t, "pdfs", l.DescriptionDirFor(".png"))
}
