package models

import (
	"encoding/json"
	"path/filepath"
	"strings"
)

// Wine is one catalog row. The table name and column names match the
// database file the catalog has been shipped with since its first version.
type Wine struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"size:100;not null" json:"name"`
	Color     WineColor  `gorm:"size:50;not null" json:"color"`
	Sparkling string     `gorm:"size:50;not null;default:no" json:"sparkling"`
	Bokal     string     `gorm:"size:50;not null;default:no" json:"bokal"`
	Country   string     `gorm:"size:100;not null" json:"country"`
	Region    *string    `gorm:"size:100" json:"region"`
	Grape     *string    `gorm:"size:200" json:"-"` // JSON list; legacy rows hold a bare string
	Sugar     SugarLevel `gorm:"size:50;not null" json:"sugar"`
	PdfFile   string     `gorm:"column:pdf_file;size:200;not null" json:"pdf_file"`
	Price     *string    `gorm:"size:100" json:"price"`
}

func (Wine) TableName() string {
	return "vine"
}

// Grapes decodes the grape column, see DecodeGrapes.
func (w *Wine) Grapes() []string {
	if w.Grape == nil {
		return []string{}
	}
	return DecodeGrapes(*w.Grape)
}

// SetGrapes stores the list in its serialized form; an empty list clears the column.
func (w *Wine) SetGrapes(grapes []string) {
	w.Grape = EncodeGrapes(grapes)
}

// AssetStem is the lowercased description filename without extension,
// the key used to find the bottle image.
func (w *Wine) AssetStem() string {
	return Stem(w.PdfFile)
}

func (w *Wine) RegionValue() string {
	if w.Region == nil {
		return ""
	}
	return *w.Region
}

func (w *Wine) PriceValue() string {
	if w.Price == nil {
		return ""
	}
	return *w.Price
}

// DecodeGrapes never fails: a JSON list is returned as is, a JSON string as a
// single element, and anything else as a single element holding the raw value.
func DecodeGrapes(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}

	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		if list == nil {
			return []string{}
		}
		return list
	}

	var single string
	if err := json.Unmarshal([]byte(raw), &single); err == nil {
		return []string{single}
	}

	return []string{raw}
}

func EncodeGrapes(grapes []string) *string {
	cleaned := make([]string, 0, len(grapes))
	for _, g := range grapes {
		if g = strings.TrimSpace(g); g != "" {
			cleaned = append(cleaned, g)
		}
	}
	if len(cleaned) == 0 {
		return nil
	}
	raw, _ := json.Marshal(cleaned)
	s := string(raw)
	return &s
}

// Stem returns the lowercased base name of filename without its extension.
func Stem(filename string) string {
	base := filepath.Base(filename)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}

// StringPtr returns nil for blank input.
func StringPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
