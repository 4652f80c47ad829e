package services

import (
	"context"
	"sort"
	"strings"

	"winelink/internal/assets"
	"winelink/internal/logger"
	"winelink/internal/models"
	"winelink/internal/repositories"
	"winelink/internal/services/dto"

	"gorm.io/gorm"
)

const (
	StoreModeReadOnly  = "read-only"
	StoreModeReadWrite = "read-write"
)

// ReconcileService compares database references with the files on disk.
// Neither method returns an error: a failing store yields OK == false.
type ReconcileService interface {
	Scan(ctx context.Context, db *gorm.DB) *dto.ScanReport
	Status(ctx context.Context, db *gorm.DB) *dto.StatusSummary
}

type ReconcileOptions struct {
	Environment string
	ReadOnly    bool
}

type reconcileService struct {
	wineRepo repositories.WineRepository
	locator  *assets.Locator
	opts     ReconcileOptions
}

func NewReconcileService(wineRepo repositories.WineRepository, locator *assets.Locator, opts ReconcileOptions) ReconcileService {
	return &reconcileService{
		wineRepo: wineRepo,
		locator:  locator,
		opts:     opts,
	}
}

// DescriptionListing is the state of the active description directory.
type DescriptionListing struct {
	Ext    string
	Dir    string
	Exists bool
	Files  []string
}

func (s *reconcileService) describe(ctx context.Context, wines []models.Wine) DescriptionListing {
	ext := s.locator.InferActiveExtension(ctx, wines)
	dir := s.locator.DescriptionDirForReading(ctx, ext)
	files, exists := s.locator.ListDescriptions(ctx, dir)
	return DescriptionListing{Ext: ext, Dir: dir, Exists: exists, Files: files}
}

func (s *reconcileService) Scan(ctx context.Context, db *gorm.DB) *dto.ScanReport {
	wines, err := s.wineRepo.FindAll(db.WithContext(ctx))
	if err != nil {
		logger.CtxWithError(ctx, "scan: failed to load wines", err)
		return &dto.ScanReport{OK: false, Error: err.Error()}
	}

	return BuildReport(wines, s.describe(ctx, wines), s.locator.Bottles(ctx))
}

func (s *reconcileService) Status(ctx context.Context, db *gorm.DB) *dto.StatusSummary {
	summary := &dto.StatusSummary{
		Environment: s.opts.Environment,
		StoreMode:   StoreModeReadWrite,
		Missing:     []string{},
		Extra:       []string{},
	}
	if s.opts.ReadOnly {
		summary.StoreMode = StoreModeReadOnly
	}

	wines, err := s.wineRepo.FindAll(db.WithContext(ctx))
	if err != nil {
		logger.CtxWithError(ctx, "status: failed to load wines", err)
		summary.Error = err.Error()
		return summary
	}

	listing := s.describe(ctx, wines)
	onDisk := toSet(listing.Files)
	referenced := referencedNames(wines)

	summary.OK = true
	summary.WineCount = int64(len(wines))
	summary.DescriptionExt = listing.Ext
	summary.DescriptionDir = listing.Dir
	summary.DescriptionFiles = len(listing.Files)
	summary.BottleFiles = len(s.locator.Bottles(ctx).Lookup)
	summary.Missing = sortedKeys(difference(referenced, onDisk))
	summary.Extra = sortedKeys(difference(onDisk, referenced))
	return summary
}

// BuildReport is a pure function of its inputs; shuffling wines or listings
// gives the same report.
func BuildReport(wines []models.Wine, desc DescriptionListing, bottles assets.BottleScan) *dto.ScanReport {
	sorted := make([]models.Wine, len(wines))
	copy(sorted, wines)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	report := &dto.ScanReport{
		OK:                             true,
		TotalWines:                     len(sorted),
		DescriptionExt:                 desc.Ext,
		DescriptionDir:                 desc.Dir,
		DescriptionDirExists:           desc.Exists,
		DescriptionFiles:               len(desc.Files),
		BottleDir:                      bottles.Dir,
		BottleDirExists:                bottles.Exists,
		BottleFiles:                    len(bottles.Files),
		MissingDescriptionField:        []dto.WineRef{},
		MissingOnDisk:                  []dto.WineRef{},
		MissingBottleImage:             []dto.WineRef{},
		DuplicateDescriptionReferences: []dto.DescriptionDuplicate{},
		DuplicateBottleStems:           []dto.BottleDuplicate{},
	}

	onDisk := toSet(desc.Files)
	referenced := referencedNames(sorted)
	usedStems := make(map[string]struct{})
	byReference := make(map[string][]dto.WineRef)

	for i := range sorted {
		w := &sorted[i]
		ref := wineRef(w)

		if strings.TrimSpace(w.PdfFile) == "" {
			report.MissingDescriptionField = append(report.MissingDescriptionField, ref)
			continue
		}

		byReference[w.PdfFile] = append(byReference[w.PdfFile], ref)

		if desc.Exists {
			if _, ok := onDisk[w.PdfFile]; !ok {
				report.MissingOnDisk = append(report.MissingOnDisk, ref)
			}
		}

		stem := w.AssetStem()
		usedStems[stem] = struct{}{}
		if _, ok := bottles.Lookup[stem]; !ok {
			report.MissingBottleImage = append(report.MissingBottleImage, ref)
		}
	}

	report.UnusedDescriptionFiles = sortedKeys(difference(onDisk, referenced))

	unusedBottles := []string{}
	for stem, file := range bottles.Lookup {
		if _, ok := usedStems[stem]; !ok {
			unusedBottles = append(unusedBottles, file)
		}
	}
	sort.Strings(unusedBottles)
	report.UnusedBottleFiles = unusedBottles

	for _, file := range sortedKeys(toSetFromMap(byReference)) {
		if refs := byReference[file]; len(refs) > 1 {
			report.DuplicateDescriptionReferences = append(report.DuplicateDescriptionReferences,
				dto.DescriptionDuplicate{PdfFile: file, Wines: refs})
		}
	}

	stems := make([]string, 0, len(bottles.Collisions))
	for stem := range bottles.Collisions {
		stems = append(stems, stem)
	}
	sort.Strings(stems)
	for _, stem := range stems {
		files := append([]string(nil), bottles.Collisions[stem]...)
		sort.Strings(files)
		report.DuplicateBottleStems = append(report.DuplicateBottleStems, dto.BottleDuplicate{Stem: stem, Files: files})
	}

	report.Aggregates = aggregate(sorted)
	return report
}

func aggregate(wines []models.Wine) dto.Aggregates {
	colors := map[string]int{}
	sugars := map[string]int{}
	sparkling := map[string]int{}
	countries := map[string]int{}
	grapes := map[string]int{}

	for i := range wines {
		w := &wines[i]
		count(colors, string(w.Color))
		count(sugars, string(w.Sugar))
		count(sparkling, w.Sparkling)
		count(countries, w.Country)

		seen := map[string]struct{}{}
		for _, g := range w.Grapes() {
			g = strings.TrimSpace(g)
			if _, dup := seen[g]; dup {
				continue
			}
			seen[g] = struct{}{}
			count(grapes, g)
		}
	}

	return dto.Aggregates{
		ByColor:     frequencyTable(colors),
		BySugar:     frequencyTable(sugars),
		BySparkling: frequencyTable(sparkling),
		ByCountry:   frequencyTable(countries),
		ByGrape:     frequencyTable(grapes),
	}
}

func count(table map[string]int, label string) {
	label = strings.TrimSpace(label)
	if label == "" {
		return
	}
	table[label]++
}

// frequencyTable orders by count descending, then label ascending.
func frequencyTable(table map[string]int) []dto.FrequencyRow {
	rows := make([]dto.FrequencyRow, 0, len(table))
	for label, n := range table {
		rows = append(rows, dto.FrequencyRow{Label: label, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Label < rows[j].Label
	})
	return rows
}

func wineRef(w *models.Wine) dto.WineRef {
	return dto.WineRef{ID: w.ID, Name: w.Name, PdfFile: w.PdfFile}
}

func referencedNames(wines []models.Wine) map[string]struct{} {
	set := make(map[string]struct{}, len(wines))
	for i := range wines {
		if strings.TrimSpace(wines[i].PdfFile) != "" {
			set[wines[i].PdfFile] = struct{}{}
		}
	}
	return set
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

func toSetFromMap[V any](m map[string]V) map[string]struct{} {
	set := make(map[string]struct{}, len(m))
	for k := range m {
		set[k] = struct{}{}
	}
	return set
}

// difference returns a minus b.
func difference(a, b map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	for k := range a {
		if _, ok := b[k]; !ok {
			out[k] = struct{}{}
		}
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
