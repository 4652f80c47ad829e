package apperrors

type ErrorCode string

const (
	CodeInternalError    ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError    ErrorCode = "DATABASE_ERROR"
	CodeStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"

	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeReadOnly         ErrorCode = "READ_ONLY"
	CodeInvalidFileType  ErrorCode = "INVALID_FILE_TYPE"
	CodeFileRequired     ErrorCode = "FILE_REQUIRED"
	CodeFileTooLarge     ErrorCode = "FILE_TOO_LARGE"
)
