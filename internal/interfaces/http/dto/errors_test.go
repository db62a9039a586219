package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeUnknown, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodePayloadTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{CodeDuplicateStaticSection, http.StatusConflict},
		{CodeHeroSectionUndeletable, http.StatusUnprocessableEntity},
		{CodeHeroSectionNotReorderable, http.StatusUnprocessableEntity},
		{CodeInvalidSectionContent, http.StatusBadRequest},
		{CodeFileTooLarge, http.StatusRequestEntityTooLarge},
		{CodeCropNotSupported, http.StatusUnprocessableEntity},
		{CodeIconBillingDisabled, http.StatusPaymentRequired},
		{CodeIconGenerationFailed, http.StatusBadGateway},
		{CodeInvalidCredentials, http.StatusUnauthorized},
		{CodeEmailTaken, http.StatusConflict},
		// Unknown code should return 500
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"NOT_FOUND", ErrCodeNotFound},
		{"INVALID_INPUT", ErrCodeInvalidInput},
		{"VALIDATION_ERROR", ErrCodeValidation},
		{"INTERNAL_ERROR", ErrCodeInternal},
		// Domain rule codes pass through unchanged
		{CodeDuplicateStaticSection, CodeDuplicateStaticSection},
		{CodeIconBillingDisabled, CodeIconBillingDisabled},
		{ErrCodeNotFound, ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.input))
		})
	}
}

func TestDomainErrorsHaveStatus(t *testing.T) {
	// every code raised by the content and media layers must map to a non-500 status
	codes := []string{
		CodeDuplicateStaticSection, CodeHeroSectionUndeletable, CodeHeroSectionNotReorderable,
		CodeUnknownTemplate, CodeTemplateNotAllowed, CodeInvalidReorder, CodeInvalidSectionContent,
		CodePageHasNoSections, CodeInvalidPageKind, CodeInvalidSlug, CodeUnknownSettings,
		CodeFileTooLarge, CodeEmptyFile, CodeUnsupportedImageType, CodeCropNotSupported, CodeIconBillingDisabled,
		CodeIconGenerationDisabled, CodeIconGenerationFailed, CodeUploadFailed,
		CodeInvalidCredentials, CodeAccountLocked, CodeInvalidInviteCode, CodeSignUpDisabled,
		CodeEmailTaken, CodeInvalidEmail, CodeInvalidPassword,
	}
	for _, code := range codes {
		t.Run(code, func(t *testing.T) {
			_, ok := ErrorCodeHTTPStatus[code]
			assert.True(t, ok)
		})
	}
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("NOT_FOUND", "Resource not found")

	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "Resource not found", resp.Error.Message)
	assert.NotZero(t, resp.Error.Timestamp)
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{
		{Field: "email", Message: "Invalid email format"},
		{Field: "type", Message: "type is required"},
	}

	resp := NewValidationErrorResponse("Validation failed", "req-789", details)

	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-789", resp.Error.RequestID)
	assert.Len(t, resp.Error.Details, 2)
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a"}, 41, 2, 20)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 3, resp.Meta.TotalPages)

	resp = NewSuccessResponseWithMeta(nil, 10, 1, 0)
	assert.Equal(t, 0, resp.Meta.TotalPages)
}

func TestNewPaginatedResponse(t *testing.T) {
	p := shared.NewPaginated[string](nil, 0, 1, 20)
	resp := NewPaginatedResponse(&p)

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"data":[]`)
	assert.Contains(t, string(data), `"total":0`)
}
