package dto

// WineRef identifies a record inside a report.
type WineRef struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	PdfFile string `json:"pdf_file"`
}

type DescriptionDuplicate struct {
	PdfFile string    `json:"pdf_file"`
	Wines   []WineRef `json:"wines"`
}

type BottleDuplicate struct {
	Stem  string   `json:"stem"`
	Files []string `json:"files"`
}

type FrequencyRow struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type Aggregates struct {
	ByColor     []FrequencyRow `json:"by_color"`
	BySugar     []FrequencyRow `json:"by_sugar"`
	BySparkling []FrequencyRow `json:"by_sparkling"`
	ByCountry   []FrequencyRow `json:"by_country"`
	ByGrape     []FrequencyRow `json:"by_grape"`
}

// ScanReport is the database versus filesystem reconciliation.
// When OK is false only Error is meaningful.
type ScanReport struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`

	TotalWines           int    `json:"total_wines"`
	DescriptionExt       string `json:"description_ext"`
	DescriptionDir       string `json:"description_dir"`
	DescriptionDirExists bool   `json:"description_dir_exists"`
	DescriptionFiles     int    `json:"description_files"`
	BottleDir            string `json:"bottle_dir"`
	BottleDirExists      bool   `json:"bottle_dir_exists"`
	BottleFiles          int    `json:"bottle_files"`

	MissingDescriptionField        []WineRef              `json:"missing_description_field"`
	MissingOnDisk                  []WineRef              `json:"missing_on_disk"`
	MissingBottleImage             []WineRef              `json:"missing_bottle_image"`
	UnusedDescriptionFiles         []string               `json:"unused_description_files"`
	UnusedBottleFiles              []string               `json:"unused_bottle_files"`
	DuplicateDescriptionReferences []DescriptionDuplicate `json:"duplicate_description_references"`
	DuplicateBottleStems           []BottleDuplicate      `json:"duplicate_bottle_stems"`

	Aggregates Aggregates `json:"aggregates"`
}

// StatusSummary backs /status.json.
type StatusSummary struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`

	Environment      string   `json:"environment"`
	StoreMode        string   `json:"store_mode"`
	WineCount        int64    `json:"wine_count"`
	DescriptionExt   string   `json:"description_ext"`
	DescriptionDir   string   `json:"description_dir"`
	DescriptionFiles int      `json:"description_files"`
	BottleFiles      int      `json:"bottle_files"`
	Missing          []string `json:"missing"`
	Extra            []string `json:"extra"`
}
