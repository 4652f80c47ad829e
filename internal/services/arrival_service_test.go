package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"winelink/internal/services/dto"
	"winelink/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrivalName(t *testing.T) {
	assert.Equal(t, "kab_sov.pdf", ArrivalName("Kab Sov.PDF"))
	assert.Equal(t, "kindzmarauli.webp", ArrivalName("Киндзмараули.webp"))
	assert.Equal(t, "wine.pdf", ArrivalName("!!!.pdf"))
}

func TestArrivalImport(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.MkdirAll(filepath.Join(env.root, "pdfs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(env.root, "pdfs", "tsinandali.pdf"), []byte("old"), 0o644))

	intake := t.TempDir()
	for name, content := range map[string]string{
		"Kab Sov.PDF":       "kab",
		"notes.txt":         "notes",
		"tsinandali.pdf":    "new",
		"Киндзмараули.webp": "card",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(intake, name), []byte(content), 0o644))
	}
	src, err := storage.NewLocalStorage(storage.Config{BasePath: intake})
	require.NoError(t, err)

	results, err := NewArrivalService(env.locator).Import(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, []dto.ArrivalResult{
		{Source: "Kab Sov.PDF", Target: "pdfs/kab_sov.pdf", Status: dto.ArrivalImported},
		{Source: "notes.txt", Status: dto.ArrivalUnsupported},
		{Source: "tsinandali.pdf", Target: "pdfs/tsinandali.pdf", Status: dto.ArrivalExists},
		{Source: "Киндзмараули.webp", Target: "webp/kindzmarauli.webp", Status: dto.ArrivalImported},
	}, results)

	got, err := os.ReadFile(filepath.Join(env.root, "pdfs", "tsinandali.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(got), "existing names are never overwritten")

	got, err = os.ReadFile(filepath.Join(env.root, "pdfs", "kab_sov.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "kab", string(got))
	assert.True(t, env.exists("webp/kindzmarauli.webp"))

	again, err := NewArrivalService(env.locator).Import(context.Background(), src)
	require.NoError(t, err)
	for _, r := range again {
		assert.NotEqual(t, dto.ArrivalImported, r.Status, r.Source)
	}
}

func TestArrivalImportMissingFolder(t *testing.T) {
	env := newTestEnv(t)
	src, err := storage.NewLocalStorage(storage.Config{BasePath: filepath.Join(t.TempDir(), "absent")})
	require.NoError(t, err)

	_, err = NewArrivalService(env.locator).Import(context.Background(), src)
	assert.Error(t, err)
}
