package qrcode

import (
	"fmt"
	"net/url"
	"strings"

	qr "github.com/skip2/go-qrcode"
)

const (
	// CatalogPage is the marker name whose code points at the site root.
	CatalogPage = "catalog-page"

	DefaultBaseURL = "https://vinelink.lavroovich.fun/"

	// Negative size means pixels per module in go-qrcode.
	moduleSize = -10
)

// Generator renders QR codes linking to viewer pages.
type Generator struct {
	baseURL string
}

func NewGenerator(baseURL string) *Generator {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Generator{baseURL: baseURL}
}

// Link returns the URL encoded for name.
func (g *Generator) Link(name string) string {
	if name == CatalogPage {
		return g.baseURL
	}
	return g.baseURL + "vinery/" + url.PathEscape(name)
}

// Generate returns PNG bytes: error correction L, 10 px modules, 4 module quiet zone.
func (g *Generator) Generate(name string) ([]byte, error) {
	code, err := qr.New(g.Link(name), qr.Low)
	if err != nil {
		return nil, fmt.Errorf("failed to build qr code: %w", err)
	}
	png, err := code.PNG(moduleSize)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	return png, nil
}
