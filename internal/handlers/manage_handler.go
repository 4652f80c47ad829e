package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"winelink/internal/logger"
	"winelink/internal/models"
	"winelink/internal/services"
	"winelink/internal/services/dto"
	"winelink/internal/web"
	"winelink/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// multipart overhead allowed on top of the per-file limit
const formOverhead = 1 << 20

type ManageHandler struct {
	*BaseHandler
	manageService services.ManageService
	maxBodySize   int64
}

func NewManageHandler(base *BaseHandler, manageService services.ManageService, maxUploadSize int64) *ManageHandler {
	maxBody := int64(0)
	if maxUploadSize > 0 {
		// two files plus the text fields
		maxBody = 2*maxUploadSize + formOverhead
	}
	return &ManageHandler{
		BaseHandler:   base,
		manageService: manageService,
		maxBodySize:   maxBody,
	}
}

func (h *ManageHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET(services.ManagePath, h.Form)
	r.POST(services.ManagePath, h.Submit)
}

// wineForm is what the inputs are filled with.
type wineForm struct {
	ID        uint
	Name      string
	Color     string
	Sugar     string
	Sparkling string
	Bokal     string
	Country   string
	Region    string
	Grape     string
	Price     string
	PdfFile   string
}

type manageView struct {
	Wine        wineForm
	Colors      []string
	SugarLevels []string
	ReadOnly    bool
	Saved       bool
	Error       string
	FieldErrors map[string]string
}

func (h *ManageHandler) newView(c *gin.Context) *manageView {
	colors := make([]string, 0, len(models.WineColors))
	for _, v := range models.WineColors {
		colors = append(colors, string(v))
	}
	sugars := make([]string, 0, len(models.SugarLevels))
	for _, v := range models.SugarLevels {
		sugars = append(sugars, string(v))
	}
	return &manageView{
		Colors:      colors,
		SugarLevels: sugars,
		ReadOnly:    h.IsReadOnly(c) || h.manageService.ReadOnly(),
		FieldErrors: map[string]string{},
	}
}

func formFromWine(w *models.Wine) wineForm {
	return wineForm{
		ID:        w.ID,
		Name:      w.Name,
		Color:     string(w.Color),
		Sugar:     string(w.Sugar),
		Sparkling: w.Sparkling,
		Bokal:     w.Bokal,
		Country:   w.Country,
		Region:    w.RegionValue(),
		Grape:     strings.Join(w.Grapes(), ", "),
		Price:     w.PriceValue(),
		PdfFile:   w.PdfFile,
	}
}

func formFromRequest(req *dto.ManageRequest, pdfFile string) wineForm {
	return wineForm{
		ID:        req.ID,
		Name:      req.Name,
		Color:     req.Color,
		Sugar:     req.Sugar,
		Sparkling: req.Sparkling,
		Bokal:     req.Bokal,
		Country:   req.Country,
		Region:    req.Region,
		Grape:     req.Grape,
		Price:     req.Price,
		PdfFile:   pdfFile,
	}
}

// Form shows an empty form, or the record named by ?id= for editing.
func (h *ManageHandler) Form(c *gin.Context) {
	id, err := ParseQueryUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	view := h.newView(c)
	view.Saved = ParseQueryBool(c, "saved")
	view.Wine = wineForm{Sparkling: models.FlagNo, Bokal: models.FlagNo}

	if id != 0 {
		ctx := logger.WithWineID(c.Request.Context(), id)
		wine, err := h.manageService.Get(ctx, h.GetDB(c), id)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		view.Wine = formFromWine(wine)
	}

	c.HTML(http.StatusOK, web.ManagePage, view)
}

// Submit saves the form and redirects back to it (post/redirect/get).
// Rejected submissions re-render the form with the entered values.
func (h *ManageHandler) Submit(c *gin.Context) {
	if h.maxBodySize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodySize)
	}

	var req dto.ManageRequest
	if err := c.ShouldBind(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.rejectForm(c, &req, apperrors.ErrFileTooLarge)
			return
		}
		h.rejectForm(c, &req, apperrors.NewBadRequestError("Invalid form: "+err.Error()))
		return
	}

	if req.ID == 0 {
		id, err := ParseQueryUint(c, "id")
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		req.ID = id
	}

	req.DescriptionFile = optionalFile(c, services.FieldDescriptionFile)
	req.BottleImage = optionalFile(c, services.FieldBottleImage)

	result, err := h.manageService.Save(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		appErr, ok := apperrors.AsAppError(err)
		if !ok || appErr.HTTPCode >= http.StatusInternalServerError || appErr.Code == apperrors.CodeNotFound {
			h.metrics.RecordWineSaved("failed")
			h.HandleServiceError(c, err)
			return
		}
		h.rejectForm(c, &req, appErr)
		return
	}

	outcome := "updated"
	if result.Created {
		outcome = "created"
	}
	h.metrics.RecordWineSaved(outcome)
	c.Redirect(http.StatusSeeOther, result.RedirectURL)
}

func (h *ManageHandler) rejectForm(c *gin.Context, req *dto.ManageRequest, appErr *apperrors.AppError) {
	h.metrics.RecordWineSaved("rejected")
	logger.CtxWarn(c.Request.Context(), "management form rejected", "code", appErr.Code, "error", appErr.Message)

	view := h.newView(c)
	view.Wine = formFromRequest(req, "")
	view.Error = appErr.Message
	if details, ok := appErr.Details.(map[string]string); ok {
		view.FieldErrors = details
	}

	if req.ID != 0 {
		if wine, err := h.manageService.Get(c.Request.Context(), h.GetDB(c), req.ID); err == nil {
			view.Wine.PdfFile = wine.PdfFile
		}
	}

	c.HTML(appErr.HTTPCode, web.ManagePage, view)
}

func optionalFile(c *gin.Context, field string) *multipart.FileHeader {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil
	}
	return fh
}
