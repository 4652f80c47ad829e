package assets

import (
	"context"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"winelink/internal/models"
	"winelink/internal/storage"
)

const (
	ExtPDF  = ".pdf"
	ExtWebp = ".webp"
)

// BottleExtensions are the image types accepted in the bottle directory.
var BottleExtensions = []string{".png", ".jpg", ".jpeg", ".webp", ".gif", ".svg"}

// DescriptionExtensions are the types a description card may be uploaded as.
var DescriptionExtensions = []string{ExtPDF, ExtWebp}

func IsBottleExtension(ext string) bool {
	return contains(BottleExtensions, strings.ToLower(ext))
}

func IsDescriptionExtension(ext string) bool {
	return contains(DescriptionExtensions, strings.ToLower(ext))
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// Dirs names the asset directories relative to the storage root.
type Dirs struct {
	Pdf        string
	Webp       string
	LegacyWebp string
	Bottles    string
}

// Locator finds description cards and bottle images by filename convention.
// Nothing is cached: every call looks at the directories as they are now.
type Locator struct {
	store storage.Storage
	dirs  Dirs
}

func NewLocator(store storage.Storage, dirs Dirs) *Locator {
	return &Locator{store: store, dirs: dirs}
}

func (l *Locator) Storage() storage.Storage {
	return l.store
}

func (l *Locator) Dirs() Dirs {
	return l.dirs
}

// BottleLookup maps a lowercased stem to the bottle filename carrying it.
type BottleLookup map[string]string

// Has reports whether filename is one of the lookup's values.
func (b BottleLookup) Has(filename string) bool {
	return b[models.Stem(filename)] == filename && filename != ""
}

// Files returns the lookup values sorted.
func (b BottleLookup) Files() []string {
	files := make([]string, 0, len(b))
	for _, f := range b {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// BottleScan is one pass over the bottle directory.
type BottleScan struct {
	Dir    string
	Exists bool
	Lookup BottleLookup
	// Files holds every image file found, sorted.
	Files []string
	// Collisions groups files sharing a lowercased stem; only groups of two or more.
	Collisions map[string][]string
}

// NewBottleScan builds the lookup from a raw directory listing. When several
// files share a stem the lexicographically smallest filename wins.
func NewBottleScan(listing []string) BottleScan {
	scan := BottleScan{
		Lookup:     BottleLookup{},
		Files:      []string{},
		Collisions: map[string][]string{},
	}

	groups := make(map[string][]string)
	for _, name := range listing {
		if !IsBottleExtension(filepath.Ext(name)) {
			continue
		}
		stem := models.Stem(name)
		groups[stem] = append(groups[stem], name)
		scan.Files = append(scan.Files, name)
	}
	sort.Strings(scan.Files)

	for stem, files := range groups {
		sort.Strings(files)
		scan.Lookup[stem] = files[0]
		if len(files) > 1 {
			scan.Collisions[stem] = files
		}
	}
	return scan
}

// ScanBottles lists dir and builds the lookup. A missing or unreadable
// directory yields an empty scan.
func (l *Locator) ScanBottles(ctx context.Context, dir string) BottleScan {
	listing, exists := l.list(ctx, dir)
	scan := NewBottleScan(listing)
	scan.Dir = dir
	scan.Exists = exists
	return scan
}

// BuildBottleLookup maps lowercased stem to filename for the images in dir.
func (l *Locator) BuildBottleLookup(ctx context.Context, dir string) BottleLookup {
	return l.ScanBottles(ctx, dir).Lookup
}

// Bottles scans the configured bottle directory.
func (l *Locator) Bottles(ctx context.Context) BottleScan {
	return l.ScanBottles(ctx, l.dirs.Bottles)
}

// BottlePath is the storage path of a bottle file.
func (l *Locator) BottlePath(filename string) string {
	return path.Join(l.dirs.Bottles, filename)
}

// DescriptionDirFor picks where a description with ext is written.
func (l *Locator) DescriptionDirFor(ext string) string {
	if strings.ToLower(ext) == ExtWebp {
		return l.dirs.Webp
	}
	return l.dirs.Pdf
}

// DescriptionDirForReading is DescriptionDirFor with the legacy webp
// directory used when the primary one is absent.
func (l *Locator) DescriptionDirForReading(ctx context.Context, ext string) string {
	dir := l.DescriptionDirFor(ext)
	if strings.ToLower(ext) == ExtWebp && !l.store.DirExists(ctx, dir) &&
		l.dirs.LegacyWebp != "" && l.store.DirExists(ctx, l.dirs.LegacyWebp) {
		return l.dirs.LegacyWebp
	}
	return dir
}

// Description is a resolved request for a description card.
type Description struct {
	Name string
	Dir  string
	Ext  string
}

func (d Description) Path() string {
	return path.Join(d.Dir, d.Name)
}

// NormalizeDescriptionName strips directory components and repairs the
// extension: ".web" becomes ".webp" and a missing extension means ".webp".
func NormalizeDescriptionName(name string) (string, string) {
	safe := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if safe == "." || safe == "/" || safe == ".." {
		safe = ""
	}

	ext := strings.ToLower(path.Ext(safe))
	switch ext {
	case ".web":
		safe = strings.TrimSuffix(safe, path.Ext(safe)) + ExtWebp
		ext = ExtWebp
	case "":
		safe += ExtWebp
		ext = ExtWebp
	}
	return safe, ext
}

func (l *Locator) ResolveDescription(ctx context.Context, name string) Description {
	safe, ext := NormalizeDescriptionName(name)
	return Description{
		Name: safe,
		Dir:  l.DescriptionDirForReading(ctx, ext),
		Ext:  ext,
	}
}

// InferActiveExtension returns the extension of the first record with a
// description reference, falling back to whichever directory exists.
func (l *Locator) InferActiveExtension(ctx context.Context, wines []models.Wine) string {
	for _, w := range wines {
		if strings.TrimSpace(w.PdfFile) == "" {
			continue
		}
		if ext := strings.ToLower(path.Ext(w.PdfFile)); ext != "" {
			return ext
		}
	}
	if l.store.DirExists(ctx, l.dirs.Webp) {
		return ExtWebp
	}
	return ExtPDF
}

// ListDescriptions lists the description directory; exists is false when
// the directory is missing or could not be read.
func (l *Locator) ListDescriptions(ctx context.Context, dir string) (files []string, exists bool) {
	return l.list(ctx, dir)
}

func (l *Locator) list(ctx context.Context, dir string) ([]string, bool) {
	if !l.store.DirExists(ctx, dir) {
		return []string{}, false
	}
	names, err := l.store.List(ctx, dir)
	if err != nil {
		return []string{}, false
	}
	return names, true
}
