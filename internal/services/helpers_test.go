package services

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"winelink/internal/assets"
	"winelink/internal/models"
	"winelink/internal/storage"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db      *gorm.DB
	root    string
	locator *assets.Locator
}

// newTestEnv uses a file database so transactions see the same data as
// plain queries.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()

	db, err := gorm.Open(sqlite.Open(filepath.Join(dir, "vines.db")), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Wine{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	root := filepath.Join(dir, "assets")
	require.NoError(t, os.MkdirAll(root, 0o755))
	store, err := storage.NewLocalStorage(storage.Config{BasePath: root})
	require.NoError(t, err)

	return &testEnv{
		db:      db,
		root:    root,
		locator: assets.NewLocator(store, assets.Dirs{Pdf: "pdfs", Webp: "webp", LegacyWebp: "webps", Bottles: "bottles"}),
	}
}

func (e *testEnv) touch(t *testing.T, rel ...string) {
	t.Helper()
	for _, r := range rel {
		p := filepath.Join(e.root, filepath.FromSlash(r))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
}

func (e *testEnv) exists(rel string) bool {
	_, err := os.Stat(filepath.Join(e.root, filepath.FromSlash(rel)))
	return err == nil
}

func (e *testEnv) listDir(t *testing.T, rel string) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(e.root, filepath.FromSlash(rel)))
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func (e *testEnv) addWine(t *testing.T, w models.Wine) models.Wine {
	t.Helper()
	if w.Color == "" {
		w.Color = models.ColorRed
	}
	if w.Sugar == "" {
		w.Sugar = models.SugarDry
	}
	if w.Country == "" {
		w.Country = "Georgia"
	}
	if w.Sparkling == "" {
		w.Sparkling = models.FlagNo
	}
	if w.Bokal == "" {
		w.Bokal = models.FlagNo
	}
	require.NoError(t, e.db.Create(&w).Error)
	return w
}

// fileHeader builds a multipart.FileHeader the way a real form post would.
func fileHeader(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	t.Cleanup(func() { req.MultipartForm.RemoveAll() })

	files := req.MultipartForm.File[field]
	require.Len(t, files, 1)
	return files[0]
}
