package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
	// ErrCodeValidationRange is used when a value is out of range
	ErrCodeValidationRange = "ERR_VALIDATION_RANGE"
	// ErrCodeValidationLength is used when a field length is invalid
	ErrCodeValidationLength = "ERR_VALIDATION_LENGTH"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodePayloadTooLarge is used when the request body exceeds its limit
	ErrCodePayloadTooLarge = "ERR_PAYLOAD_TOO_LARGE"
)

// Rate limiting error codes
const (
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// Availability error codes
const (
	// ErrCodeServiceUnavailable is used when a dependency is down or a capacity limit is hit
	ErrCodeServiceUnavailable = "ERR_SERVICE_UNAVAILABLE"
)

// Content error codes are returned verbatim from the domain so that clients
// can tell the editor rules apart.
const (
	CodeDuplicateStaticSection    = "DUPLICATE_STATIC_SECTION"
	CodeHeroSectionUndeletable    = "HERO_SECTION_UNDELETABLE"
	CodeHeroSectionNotReorderable = "HERO_SECTION_NOT_REORDERABLE"
	CodeUnknownTemplate           = "UNKNOWN_TEMPLATE"
	CodeTemplateNotAllowed        = "TEMPLATE_NOT_ALLOWED"
	CodeInvalidReorder            = "INVALID_REORDER"
	CodeInvalidSectionContent     = "INVALID_SECTION_CONTENT"
	CodePageHasNoSections         = "PAGE_HAS_NO_SECTIONS"
	CodeInvalidPageKind           = "INVALID_PAGE_KIND"
	CodeInvalidSlug               = "INVALID_SLUG"
	CodeUnknownSettings           = "UNKNOWN_SETTINGS"
)

// Media error codes
const (
	CodeFileTooLarge           = "FILE_TOO_LARGE"
	CodeEmptyFile              = "EMPTY_FILE"
	CodeUnsupportedImageType   = "UNSUPPORTED_IMAGE_TYPE"
	CodeCropNotSupported       = "CROP_NOT_SUPPORTED"
	CodeIconBillingDisabled    = "ICON_BILLING_DISABLED"
	CodeIconGenerationDisabled = "ICON_GENERATION_DISABLED"
	CodeIconGenerationFailed   = "ICON_GENERATION_FAILED"
	CodeUploadFailed           = "UPLOAD_FAILED"
)

// Account error codes
const (
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeAccountLocked      = "ACCOUNT_LOCKED"
	CodeInvalidInviteCode  = "INVALID_INVITE_CODE"
	CodeSignUpDisabled     = "SIGN_UP_DISABLED"
	CodeEmailTaken         = "EMAIL_TAKEN"
	CodeInvalidEmail       = "INVALID_EMAIL"
	CodeInvalidPassword    = "INVALID_PASSWORD"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,
	ErrCodeValidationRange:    http.StatusBadRequest,
	ErrCodeValidationLength:   http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	// Resource errors
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState: http.StatusUnprocessableEntity,
	ErrCodeBusinessRule: http.StatusUnprocessableEntity,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodePayloadTooLarge: http.StatusRequestEntityTooLarge,

	// Rate limiting -> 429 Too Many Requests
	ErrCodeRateLimited: http.StatusTooManyRequests,

	// Availability -> 503 Service Unavailable
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,

	// Content rules
	CodeDuplicateStaticSection:    http.StatusConflict,
	CodeHeroSectionUndeletable:    http.StatusUnprocessableEntity,
	CodeHeroSectionNotReorderable: http.StatusUnprocessableEntity,
	CodeUnknownTemplate:           http.StatusBadRequest,
	CodeTemplateNotAllowed:        http.StatusUnprocessableEntity,
	CodeInvalidReorder:            http.StatusBadRequest,
	CodeInvalidSectionContent:     http.StatusBadRequest,
	CodePageHasNoSections:         http.StatusUnprocessableEntity,
	CodeInvalidPageKind:           http.StatusBadRequest,
	CodeInvalidSlug:               http.StatusBadRequest,
	CodeUnknownSettings:           http.StatusNotFound,

	// Media
	CodeFileTooLarge:           http.StatusRequestEntityTooLarge,
	CodeEmptyFile:              http.StatusBadRequest,
	CodeUnsupportedImageType:   http.StatusUnsupportedMediaType,
	CodeCropNotSupported:       http.StatusUnprocessableEntity,
	CodeIconBillingDisabled:    http.StatusPaymentRequired,
	CodeIconGenerationDisabled: http.StatusServiceUnavailable,
	CodeIconGenerationFailed:   http.StatusBadGateway,
	CodeUploadFailed:           http.StatusBadGateway,

	// Accounts
	CodeInvalidCredentials: http.StatusUnauthorized,
	CodeAccountLocked:      http.StatusLocked,
	CodeInvalidInviteCode:  http.StatusForbidden,
	CodeSignUpDisabled:     http.StatusForbidden,
	CodeEmailTaken:         http.StatusConflict,
	CodeInvalidEmail:       http.StatusBadRequest,
	CodeInvalidPassword:    http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// LegacyErrorCodeMapping maps the generic domain codes to the ERR_ format
var LegacyErrorCodeMapping = map[string]string{
	"NOT_FOUND":        ErrCodeNotFound,
	"ALREADY_EXISTS":   ErrCodeAlreadyExists,
	"INVALID_INPUT":    ErrCodeInvalidInput,
	"INVALID_STATE":    ErrCodeInvalidState,
	"UNAUTHORIZED":     ErrCodeUnauthorized,
	"FORBIDDEN":        ErrCodeForbidden,
	"VALIDATION_ERROR": ErrCodeValidation,
	"BAD_REQUEST":      ErrCodeBadRequest,
	"INTERNAL_ERROR":   ErrCodeInternal,
}

// NormalizeErrorCode converts a legacy error code to the standardized format
// If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := LegacyErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
