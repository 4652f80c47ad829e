package services

import (
	"context"
	"fmt"
	"path"
	"strings"

	"winelink/internal/assets"
	"winelink/internal/logger"
	"winelink/internal/services/dto"
	"winelink/internal/storage"
)

type ArrivalService interface {
	// Import copies every description card found in src into the
	// description directories under a slugged name. Existing names are
	// never overwritten.
	Import(ctx context.Context, src storage.Storage) ([]dto.ArrivalResult, error)
}

type arrivalService struct {
	locator *assets.Locator
}

func NewArrivalService(locator *assets.Locator) ArrivalService {
	return &arrivalService{locator: locator}
}

func (s *arrivalService) Import(ctx context.Context, src storage.Storage) ([]dto.ArrivalResult, error) {
	names, err := src.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list intake folder: %w", err)
	}

	results := make([]dto.ArrivalResult, 0, len(names))
	for _, name := range names {
		res, err := s.importOne(ctx, src, name)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *arrivalService) importOne(ctx context.Context, src storage.Storage, name string) (dto.ArrivalResult, error) {
	ext := strings.ToLower(path.Ext(name))
	if !assets.IsDescriptionExtension(ext) {
		return dto.ArrivalResult{Source: name, Status: dto.ArrivalUnsupported}, nil
	}

	target := ArrivalName(name)
	dst := path.Join(s.locator.DescriptionDirFor(ext), target)
	res := dto.ArrivalResult{Source: name, Target: dst}

	store := s.locator.Storage()
	exists, err := store.Exists(ctx, dst)
	if err != nil {
		return res, fmt.Errorf("failed to check %s: %w", dst, err)
	}
	if exists {
		res.Status = dto.ArrivalExists
		return res, nil
	}

	f, err := src.Open(ctx, name)
	if err != nil {
		return res, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	if err := store.Save(ctx, dst, f); err != nil {
		logger.FileLog("arrival", dst, err)
		return res, err
	}
	logger.FileLog("arrival", dst, nil)

	res.Status = dto.ArrivalImported
	return res, nil
}

// ArrivalName is the slugged stem of name plus its lowercased extension.
func ArrivalName(name string) string {
	ext := path.Ext(name)
	return Slugify(strings.TrimSuffix(name, ext)) + strings.ToLower(ext)
}
