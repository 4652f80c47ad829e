package database

import (
	"path/filepath"
	"testing"

	"winelink/internal/config"
	"winelink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	cfg := config.Defaults()
	cfg.Database.DSN = filepath.Join(t.TempDir(), "instance", "vines.db")
	return cfg
}

func TestOpenMigratesAndSeeds(t *testing.T) {
	cfg := testConfig(t)

	db, err := Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	require.NoError(t, Ping(db))

	n, err := SeedIfEmpty(db)
	require.NoError(t, err)
	assert.Equal(t, len(starterWines()), n)

	again, err := SeedIfEmpty(db)
	require.NoError(t, err)
	assert.Zero(t, again)

	var stored models.Wine
	require.NoError(t, db.Where("pdf_file = ?", "khvanchkara.pdf").First(&stored).Error)
	assert.Equal(t, []string{"Alexandrouli", "Mujuretuli"}, stored.Grapes())
}

func TestReadOnlyOpenRejectsWrites(t *testing.T) {
	cfg := testConfig(t)

	rw, err := Open(cfg)
	require.NoError(t, err)
	_, err = SeedIfEmpty(rw)
	require.NoError(t, err)
	require.NoError(t, Close(rw))

	cfg.Database.ReadOnly = true
	ro, err := Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(ro) })

	var count int64
	require.NoError(t, ro.Model(&models.Wine{}).Count(&count).Error)
	assert.Positive(t, count)

	err = ro.Create(&models.Wine{Name: "x", Color: models.ColorRed, Sugar: models.SugarDry, Country: "x", PdfFile: "x.pdf"}).Error
	assert.Error(t, err)
}

func TestSqliteDSN(t *testing.T) {
	cfg := config.Defaults()
	cfg.Database.DSN = ":memory:"
	assert.Equal(t, ":memory:", sqliteDSN(cfg))

	cfg.Database.DSN = "instance/vines.db"
	cfg.Database.ReadOnly = true
	assert.Equal(t, "file:instance/vines.db?mode=ro", sqliteDSN(cfg))
}
