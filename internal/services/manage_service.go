package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"

	"winelink/internal/assets"
	"winelink/internal/imageprocessor"
	"winelink/internal/logger"
	"winelink/internal/models"
	"winelink/internal/repositories"
	"winelink/internal/services/dto"
	"winelink/internal/validator"
	"winelink/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	FieldDescriptionFile = "pdf_file"
	FieldBottleImage     = "bottle_image"

	ManagePath = "/winery/manage"
)

// ManageService backs the create/edit form.
type ManageService interface {
	ReadOnly() bool
	Get(ctx context.Context, db *gorm.DB, id uint) (*models.Wine, error)
	// Save validates everything, writes uploads, then persists the record in
	// one transaction. Files written before a failed commit stay on disk.
	Save(ctx context.Context, db *gorm.DB, req *dto.ManageRequest) (*dto.ManageResult, error)
}

type ManageConfig struct {
	ReadOnly    bool
	MaxFileSize int64 // per uploaded file, 0 means unlimited
}

type manageService struct {
	wineRepo  repositories.WineRepository
	locator   *assets.Locator
	validator *validator.Validator
	images    *imageprocessor.Processor
	cfg       ManageConfig
}

func NewManageService(
	wineRepo repositories.WineRepository,
	locator *assets.Locator,
	v *validator.Validator,
	images *imageprocessor.Processor,
	cfg ManageConfig,
) ManageService {
	return &manageService{
		wineRepo:  wineRepo,
		locator:   locator,
		validator: v,
		images:    images,
		cfg:       cfg,
	}
}

func (s *manageService) ReadOnly() bool {
	return s.cfg.ReadOnly
}

func (s *manageService) Get(ctx context.Context, db *gorm.DB, id uint) (*models.Wine, error) {
	wine, err := s.wineRepo.FindByID(db.WithContext(ctx), id)
	if err != nil {
		return nil, handleWineError(err)
	}
	return wine, nil
}

// pendingUpload is a validated upload that has not been written yet.
type pendingUpload struct {
	ext    string
	header *multipart.FileHeader
	data   []byte // set when the content was already read (bottles)
}

func (s *manageService) Save(ctx context.Context, db *gorm.DB, req *dto.ManageRequest) (*dto.ManageResult, error) {
	if s.cfg.ReadOnly {
		return nil, apperrors.ErrReadOnly
	}

	if err := s.validator.Validate(req); err != nil {
		var verr *validator.ValidationError
		if errors.As(err, &verr) {
			return nil, apperrors.ValidationError(verr.Errors)
		}
		return nil, apperrors.InternalError(err)
	}

	var existing *models.Wine
	if req.ID != 0 {
		ctx = logger.WithWineID(ctx, req.ID)
		wine, err := s.Get(ctx, db, req.ID)
		if err != nil {
			return nil, err
		}
		existing = wine
	}

	description, err := s.checkDescription(req.DescriptionFile, existing == nil)
	if err != nil {
		return nil, err
	}
	bottle, err := s.checkBottle(req.BottleImage)
	if err != nil {
		return nil, err
	}

	// Nothing has been written up to this point.

	stem := ""
	if existing != nil && strings.TrimSpace(existing.PdfFile) != "" {
		stem = fileStem(existing.PdfFile)
	}
	if stem == "" {
		stem = NewRecordSlug(req.Name)
	}

	wine := &models.Wine{}
	if existing != nil {
		wine.ID = existing.ID
		wine.PdfFile = existing.PdfFile
	}
	applyRequest(wine, req)

	var staleDescription string
	if description != nil {
		newName := stem + description.ext
		// An existing legacy webp directory stays the target, so cards already
		// in it keep resolving.
		newPath := path.Join(s.locator.DescriptionDirForReading(ctx, description.ext), newName)

		// Resolved before saving: the save may create the directory the old name resolves to.
		var oldPath string
		if existing != nil && strings.TrimSpace(existing.PdfFile) != "" {
			oldPath = s.locator.ResolveDescription(ctx, existing.PdfFile).Path()
		}

		if err := s.saveUpload(ctx, newPath, description); err != nil {
			return nil, err
		}

		if oldPath != "" && oldPath != newPath {
			staleDescription = oldPath
		}
		wine.PdfFile = newName
	}

	var bottleFile string
	if bottle != nil {
		bottleFile, err = s.replaceBottle(ctx, stem, bottle)
		if err != nil {
			return nil, err
		}
	}

	if err := s.persist(ctx, db, wine, existing == nil); err != nil {
		return nil, err
	}

	if staleDescription != "" {
		err := s.locator.Storage().Delete(ctx, staleDescription)
		logger.FileLog("delete", staleDescription, err)
	}

	logger.CtxInfo(logger.WithWineID(ctx, wine.ID), "wine saved", "created", existing == nil, "pdf_file", wine.PdfFile)

	return &dto.ManageResult{
		ID:          wine.ID,
		Created:     existing == nil,
		PdfFile:     wine.PdfFile,
		BottleFile:  bottleFile,
		RedirectURL: fmt.Sprintf("%s?id=%d&saved=1", ManagePath, wine.ID),
	}, nil
}

func (s *manageService) checkDescription(fh *multipart.FileHeader, required bool) (*pendingUpload, error) {
	if fh == nil || fh.Filename == "" {
		if required {
			return nil, apperrors.ErrDescriptionRequired
		}
		return nil, nil
	}

	ext := strings.ToLower(path.Ext(fh.Filename))
	if !assets.IsDescriptionExtension(ext) {
		return nil, apperrors.ErrExtensionNotAllowed(FieldDescriptionFile, ext, assets.DescriptionExtensions)
	}
	if err := s.checkSize(fh); err != nil {
		return nil, err
	}
	return &pendingUpload{ext: ext, header: fh}, nil
}

// checkBottle reads the whole image so PNG/JPEG can be decoded and
// downscaled before anything touches the disk.
func (s *manageService) checkBottle(fh *multipart.FileHeader) (*pendingUpload, error) {
	if fh == nil || fh.Filename == "" {
		return nil, nil
	}

	ext := strings.ToLower(path.Ext(fh.Filename))
	if !assets.IsBottleExtension(ext) {
		return nil, apperrors.ErrExtensionNotAllowed(FieldBottleImage, ext, assets.BottleExtensions)
	}
	if err := s.checkSize(fh); err != nil {
		return nil, err
	}

	data, err := readUpload(fh)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	switch ext {
	case ".png", ".jpg", ".jpeg":
		fitted, resized, err := s.images.Fit(data)
		if err != nil {
			return nil, apperrors.ValidationError(map[string]string{FieldBottleImage: "not a valid image"})
		}
		if resized {
			logger.Debug("bottle image downscaled", "file", fh.Filename, "from", len(data), "to", len(fitted))
		}
		data = fitted
	case ".gif", ".webp":
		if !imageprocessor.IsValidImage(bytes.NewReader(data)) {
			return nil, apperrors.ValidationError(map[string]string{FieldBottleImage: "not a valid image"})
		}
	}

	return &pendingUpload{ext: ext, header: fh, data: data}, nil
}

func (s *manageService) checkSize(fh *multipart.FileHeader) error {
	if s.cfg.MaxFileSize > 0 && fh.Size > s.cfg.MaxFileSize {
		return apperrors.ErrFileTooLarge
	}
	return nil
}

func (s *manageService) saveUpload(ctx context.Context, dst string, up *pendingUpload) error {
	var src io.Reader
	if up.data != nil {
		src = bytes.NewReader(up.data)
	} else {
		f, err := up.header.Open()
		if err != nil {
			return apperrors.InternalError(fmt.Errorf("failed to open uploaded file: %w", err))
		}
		defer f.Close()
		src = f
	}

	err := s.locator.Storage().Save(ctx, dst, src)
	logger.FileLog("save", dst, err)
	if err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// replaceBottle removes every bottle sharing stem, then writes the new one.
func (s *manageService) replaceBottle(ctx context.Context, stem string, up *pendingUpload) (string, error) {
	scan := s.locator.Bottles(ctx)
	key := strings.ToLower(stem)
	for _, file := range scan.Files {
		if models.Stem(file) != key {
			continue
		}
		p := s.locator.BottlePath(file)
		err := s.locator.Storage().Delete(ctx, p)
		logger.FileLog("delete", p, err)
		if err != nil {
			return "", apperrors.InternalError(err)
		}
	}

	name := stem + up.ext
	if err := s.saveUpload(ctx, s.locator.BottlePath(name), up); err != nil {
		return "", err
	}
	return name, nil
}

func (s *manageService) persist(ctx context.Context, db *gorm.DB, wine *models.Wine, create bool) error {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	var err error
	if create {
		err = s.wineRepo.Create(tx, wine)
	} else {
		err = s.wineRepo.Update(tx, wine)
	}
	if err != nil {
		logger.CtxWithError(ctx, "failed to persist wine", err)
		return handleWineError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func applyRequest(wine *models.Wine, req *dto.ManageRequest) {
	wine.Name = strings.TrimSpace(req.Name)
	wine.Color = models.WineColor(req.Color)
	wine.Sugar = models.SugarLevel(req.Sugar)
	wine.Sparkling = flagOrNo(req.Sparkling)
	wine.Bokal = flagOrNo(req.Bokal)
	wine.Country = strings.TrimSpace(req.Country)
	wine.Region = models.StringPtr(req.Region)
	wine.Price = models.StringPtr(req.Price)
	wine.SetGrapes(strings.Split(req.Grape, ","))
}

func flagOrNo(v string) string {
	if v == models.FlagYes {
		return models.FlagYes
	}
	return models.FlagNo
}

// fileStem keeps the case of the stored name.
func fileStem(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

func handleWineError(err error) error {
	if errors.Is(err, repositories.ErrWineNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrWineNotFound.WithError(err)
	}
	return apperrors.InternalError(err)
}
