package apperrors

import (
	"fmt"
	"net/http"
	"strings"
)

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound) into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// --- catalog ---

var ErrWineNotFound = NewNotFoundError("catalog", "Wine not found")

var ErrAssetNotFound = NewNotFoundError("assets", "Asset not found")

// --- management form ---

// ErrReadOnly is returned for any submission while the store is opened read-only.
var ErrReadOnly = New(
	CodeReadOnly,
	"validation",
	"Editing is disabled: the catalog is running in read-only mode",
	http.StatusBadRequest,
)

var ErrDescriptionRequired = New(
	CodeFileRequired,
	"validation",
	"A description file (PDF or WEBP) is required for a new wine",
	http.StatusBadRequest,
)

var ErrFileTooLarge = New(
	CodeFileTooLarge,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

// ErrExtensionNotAllowed is the validation error for an upload whose extension is outside allowed.
func ErrExtensionNotAllowed(field, ext string, allowed []string) *AppError {
	if ext == "" {
		ext = "(none)"
	}
	return New(
		CodeInvalidFileType,
		"validation",
		fmt.Sprintf("File extension %s is not allowed for %s; allowed: %s", ext, field, strings.Join(allowed, ", ")),
		http.StatusBadRequest,
	).WithDetails(map[string]string{field: "extension not allowed"})
}
