package services

import (
	"bytes"
	"context"
	"math/rand"
	"testing"

	"winelink/internal/assets"
	"winelink/internal/models"
	"winelink/internal/repositories"
	"winelink/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func refIDs(refs []dto.WineRef) []uint {
	ids := make([]uint, 0, len(refs))
	for _, r := range refs {
		ids = append(ids, r.ID)
	}
	return ids
}

func sampleWines() []models.Wine {
	return []models.Wine{
		{ID: 1, Name: "Kab Sov", Color: "red", Sugar: "dry", Sparkling: "no", Country: "Georgia", PdfFile: "kab_sov.pdf", Grape: strPtr(`["Saperavi"]`)},
		{ID: 2, Name: "Tsinandali", Color: "white", Sugar: "dry", Sparkling: "no", Country: "Georgia", PdfFile: "tsinandali.pdf", Grape: strPtr(`["Rkatsiteli","Mtsvane"]`)},
		{ID: 3, Name: "Blank", Color: "pink", Sugar: "brut", Sparkling: "yes", Country: "France", PdfFile: "  "},
		{ID: 4, Name: "Copy", Color: "red", Sugar: "sweet", Sparkling: "no", Country: "Italy", PdfFile: "tsinandali.pdf", Grape: strPtr("Saperavi")},
	}
}

func TestBuildReportKabSovMissing(t *testing.T) {
	desc := DescriptionListing{Ext: ".pdf", Dir: "pdfs", Exists: true, Files: []string{"tsinandali.pdf", "old.pdf"}}
	bottles := assets.NewBottleScan([]string{"kab_sov.png", "kab_sov.jpg", "orphan.webp"})

	r := BuildReport(sampleWines(), desc, bottles)

	assert.True(t, r.OK)
	assert.Equal(t, 4, r.TotalWines)
	assert.Equal(t, []uint{3}, refIDs(r.MissingDescriptionField))
	assert.Equal(t, []uint{1}, refIDs(r.MissingOnDisk))
	assert.Equal(t, "kab_sov.pdf", r.MissingOnDisk[0].PdfFile)
	assert.Equal(t, []uint{2, 4}, refIDs(r.MissingBottleImage))
	assert.Equal(t, []string{"old.pdf"}, r.UnusedDescriptionFiles)
	assert.Equal(t, []string{"orphan.webp"}, r.UnusedBottleFiles)

	require.Len(t, r.DuplicateDescriptionReferences, 1)
	assert.Equal(t, "tsinandali.pdf", r.DuplicateDescriptionReferences[0].PdfFile)
	assert.Equal(t, []uint{2, 4}, refIDs(r.DuplicateDescriptionReferences[0].Wines))

	require.Len(t, r.DuplicateBottleStems, 1)
	assert.Equal(t, dto.BottleDuplicate{Stem: "kab_sov", Files: []string{"kab_sov.jpg", "kab_sov.png"}}, r.DuplicateBottleStems[0])
}

func TestBuildReportAggregates(t *testing.T) {
	r := BuildReport(sampleWines(), DescriptionListing{}, assets.NewBottleScan(nil))

	assert.Equal(t, []dto.FrequencyRow{{Label: "red", Count: 2}, {Label: "pink", Count: 1}, {Label: "white", Count: 1}}, r.Aggregates.ByColor)
	assert.Equal(t, []dto.FrequencyRow{{Label: "dry", Count: 2}, {Label: "brut", Count: 1}, {Label: "sweet", Count: 1}}, r.Aggregates.BySugar)
	assert.Equal(t, []dto.FrequencyRow{{Label: "no", Count: 3}, {Label: "yes", Count: 1}}, r.Aggregates.BySparkling)
	assert.Equal(t, []dto.FrequencyRow{{Label: "Georgia", Count: 2}, {Label: "France", Count: 1}, {Label: "Italy", Count: 1}}, r.Aggregates.ByCountry)
	assert.Equal(t, []dto.FrequencyRow{{Label: "Saperavi", Count: 2}, {Label: "Mtsvane", Count: 1}, {Label: "Rkatsiteli", Count: 1}}, r.Aggregates.ByGrape)
}

func TestBuildReportSkipsMissingOnDiskWithoutDirectory(t *testing.T) {
	r := BuildReport(sampleWines(), DescriptionListing{Ext: ".pdf", Dir: "pdfs"}, assets.NewBottleScan(nil))
	assert.Empty(t, r.MissingOnDisk)
	assert.Empty(t, r.UnusedDescriptionFiles)
}

func TestBuildReportIsIdempotentAndOrderIndependent(t *testing.T) {
	wines := sampleWines()
	files := []string{"tsinandali.pdf", "old.pdf", "a.pdf", "kab_sov.pdf"}
	listing := []string{"kab_sov.png", "kab_sov.jpg", "orphan.webp", "x.svg"}

	first := BuildReport(wines, DescriptionListing{Exists: true, Files: files}, assets.NewBottleScan(listing))
	again := BuildReport(wines, DescriptionListing{Exists: true, Files: files}, assets.NewBottleScan(listing))
	assert.Equal(t, first, again)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		w := append([]models.Wine(nil), wines...)
		f := append([]string(nil), files...)
		l := append([]string(nil), listing...)
		rng.Shuffle(len(w), func(a, b int) { w[a], w[b] = w[b], w[a] })
		rng.Shuffle(len(f), func(a, b int) { f[a], f[b] = f[b], f[a] })
		rng.Shuffle(len(l), func(a, b int) { l[a], l[b] = l[b], l[a] })

		shuffled := BuildReport(w, DescriptionListing{Exists: true, Files: f}, assets.NewBottleScan(l))
		assert.Equal(t, first, shuffled)
	}
}

func TestUnusedDescriptionFilesPartitionDisk(t *testing.T) {
	wines := sampleWines()
	files := []string{"tsinandali.pdf", "old.pdf", "a.pdf", "b.webp"}

	r := BuildReport(wines, DescriptionListing{Exists: true, Files: files}, assets.NewBottleScan(nil))

	referenced := map[string]bool{}
	for _, w := range wines {
		referenced[w.PdfFile] = true
	}
	var referencedOnDisk []string
	for _, f := range files {
		if referenced[f] {
			referencedOnDisk = append(referencedOnDisk, f)
		}
	}

	union := append(append([]string{}, r.UnusedDescriptionFiles...), referencedOnDisk...)
	assert.ElementsMatch(t, files, union)
	for _, u := range r.UnusedDescriptionFiles {
		assert.NotContains(t, referencedOnDisk, u)
	}
}

func TestScanAndStatusAgainstDisk(t *testing.T) {
	env := newTestEnv(t)
	env.touch(t, "pdfs/tsinandali.pdf", "pdfs/extra.pdf", "bottles/kab_sov.png", "bottles/kab_sov.jpg")
	env.addWine(t, models.Wine{Name: "Kab Sov", PdfFile: "kab_sov.pdf"})
	env.addWine(t, models.Wine{Name: "Tsinandali", Color: models.ColorWhite, PdfFile: "tsinandali.pdf"})

	svc := NewReconcileService(repositories.NewWineRepository(), env.locator, ReconcileOptions{Environment: "local"})
	ctx := context.Background()

	report := svc.Scan(ctx, env.db)
	require.True(t, report.OK)
	assert.Equal(t, ".pdf", report.DescriptionExt)
	assert.Equal(t, "pdfs", report.DescriptionDir)
	require.Len(t, report.MissingOnDisk, 1)
	assert.Equal(t, "kab_sov.pdf", report.MissingOnDisk[0].PdfFile)
	assert.Len(t, report.DuplicateBottleStems, 1)
	assert.Equal(t, 2, report.BottleFiles)

	status := svc.Status(ctx, env.db)
	require.True(t, status.OK)
	assert.Equal(t, "local", status.Environment)
	assert.Equal(t, StoreModeReadWrite, status.StoreMode)
	assert.EqualValues(t, 2, status.WineCount)
	assert.Equal(t, []string{"kab_sov.pdf"}, status.Missing)
	assert.Equal(t, []string{"extra.pdf"}, status.Extra)
	assert.Equal(t, 2, status.DescriptionFiles)
	assert.Equal(t, 1, status.BottleFiles)
}

func TestScanReportsStoreFailure(t *testing.T) {
	env := newTestEnv(t)
	sqlDB, err := env.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	svc := NewReconcileService(repositories.NewWineRepository(), env.locator, ReconcileOptions{Environment: "vercel", ReadOnly: true})

	report := svc.Scan(context.Background(), env.db)
	assert.False(t, report.OK)
	assert.NotEmpty(t, report.Error)

	status := svc.Status(context.Background(), env.db)
	assert.False(t, status.OK)
	assert.NotEmpty(t, status.Error)
	assert.Equal(t, StoreModeReadOnly, status.StoreMode)
}

func TestWriteReportText(t *testing.T) {
	r := BuildReport(sampleWines(), DescriptionListing{Ext: ".pdf", Dir: "pdfs", Exists: true, Files: []string{"tsinandali.pdf"}}, assets.NewBottleScan(nil))

	var buf bytes.Buffer
	require.NoError(t, WriteReportText(&buf, r))
	out := buf.String()
	assert.Contains(t, out, "wines: 4")
	assert.Contains(t, out, "missing on disk (1)")
	assert.Contains(t, out, `#1 Kab Sov "kab_sov.pdf"`)
	assert.Contains(t, out, "bottle images: 0 in  [directory missing]")

	buf.Reset()
	require.NoError(t, WriteReportText(&buf, &dto.ScanReport{Error: "boom"}))
	assert.Equal(t, "scan failed: boom\n", buf.String())
}
