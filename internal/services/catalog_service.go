package services

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"winelink/internal/assets"
	"winelink/internal/logger"
	"winelink/internal/models"
	"winelink/internal/repositories"
	"winelink/internal/services/dto"
	"winelink/pkg/apperrors"

	"gorm.io/gorm"
)

const BottleURLPrefix = "/vinery/bottles/"

type CatalogService interface {
	// Catalog lists every wine in id order with its bottle image, echoing
	// the raw applyed_filters JSON back as an opaque object.
	Catalog(ctx context.Context, db *gorm.DB, rawFilters string) (*dto.CatalogView, error)
}

type catalogService struct {
	wineRepo repositories.WineRepository
	locator  *assets.Locator
}

func NewCatalogService(wineRepo repositories.WineRepository, locator *assets.Locator) CatalogService {
	return &catalogService{
		wineRepo: wineRepo,
		locator:  locator,
	}
}

func (s *catalogService) Catalog(ctx context.Context, db *gorm.DB, rawFilters string) (*dto.CatalogView, error) {
	filters, err := DecodeFilters(rawFilters)
	if err != nil {
		logger.CtxWarn(ctx, "ignoring malformed applyed_filters", "error", err)
	}

	wines, err := s.wineRepo.FindAll(db.WithContext(ctx))
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}

	lookup := s.locator.BuildBottleLookup(ctx, s.locator.Dirs().Bottles)

	return &dto.CatalogView{
		Wines:          AssembleCatalog(wines, lookup),
		AppliedFilters: filters,
	}, nil
}

// AssembleCatalog keeps the order of wines. An entry gets an image URL only
// when its description stem is a lookup key.
func AssembleCatalog(wines []models.Wine, lookup assets.BottleLookup) []dto.CatalogEntry {
	entries := make([]dto.CatalogEntry, 0, len(wines))
	for i := range wines {
		w := &wines[i]
		entry := dto.CatalogEntry{
			ID:        w.ID,
			Name:      w.Name,
			Color:     string(w.Color),
			Country:   w.Country,
			Region:    w.RegionValue(),
			Grape:     w.Grapes(),
			Sugar:     string(w.Sugar),
			PdfFile:   w.PdfFile,
			Sparkling: w.Sparkling,
			Bokal:     w.Bokal,
			Price:     w.PriceValue(),
		}
		if strings.TrimSpace(w.PdfFile) != "" {
			if file, ok := lookup[w.AssetStem()]; ok {
				entry.ImageURL = BottleURL(file)
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

func BottleURL(filename string) string {
	return BottleURLPrefix + url.PathEscape(filename)
}

// DecodeFilters parses the applyed_filters query value. The result is never
// nil; anything but a JSON object yields an empty map and an error.
func DecodeFilters(raw string) (map[string]any, error) {
	filters := map[string]any{}
	if strings.TrimSpace(raw) == "" {
		return filters, nil
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return filters, err
	}
	if decoded == nil {
		return filters, nil
	}
	return decoded, nil
}
