package dto

// CatalogEntry is one display-ready row of the catalog page.
type CatalogEntry struct {
	ID        uint     `json:"id"`
	Name      string   `json:"name"`
	Color     string   `json:"color"`
	Country   string   `json:"country"`
	Region    string   `json:"region,omitempty"`
	Grape     []string `json:"grape"`
	Sugar     string   `json:"sugar"`
	PdfFile   string   `json:"pdf_file"`
	Sparkling string   `json:"sparkling"`
	Bokal     string   `json:"bokal"`
	Price     string   `json:"price,omitempty"`
	ImageURL  string   `json:"image_url,omitempty"`
}

// CatalogView carries the entries plus the filter object the client sent,
// handed back to the page untouched.
type CatalogView struct {
	Wines          []CatalogEntry `json:"wines"`
	AppliedFilters map[string]any `json:"applyed_filters"`
}
