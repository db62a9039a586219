package media

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/genai"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/storage"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultMaxUploadBytes is the upload limit when none is configured
const DefaultMaxUploadBytes = 5 << 20

// Upload outcomes recorded in metrics
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Media errors
var (
	ErrFileTooLarge         = shared.NewDomainError("FILE_TOO_LARGE", "File exceeds the 5MB limit")
	ErrEmptyFile            = shared.NewDomainError("EMPTY_FILE", "File is empty")
	ErrUnsupportedImageType = shared.NewDomainError("UNSUPPORTED_IMAGE_TYPE", "Only JPEG, PNG, GIF and WebP images are accepted")
	ErrCropNotSupported     = shared.NewDomainError("CROP_NOT_SUPPORTED", "Only JPEG and PNG images can be cropped")
	ErrIconBillingDisabled  = shared.NewDomainError("ICON_BILLING_DISABLED", "Icon generation requires billing on the provider account")
	ErrIconGenerationOff    = shared.NewDomainError("ICON_GENERATION_DISABLED", "Icon generation is not configured")
	ErrIconGenerationFailed = shared.NewDomainError("ICON_GENERATION_FAILED", "Icon generation failed")
	ErrUploadFailed         = shared.NewDomainError("UPLOAD_FAILED", "Upload failed")
)

// allowedImageTypes maps sniffed content types to themselves
var allowedImageTypes = map[string]bool{
	storage.ContentTypeJPEG: true,
	storage.ContentTypePNG:  true,
	storage.ContentTypeGIF:  true,
	storage.ContentTypeWebP: true,
}

// ImageStore hosts uploaded files and returns their public HTTPS URL
type ImageStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// IconGenerator produces an icon image for a service name
type IconGenerator interface {
	Generate(ctx context.Context, serviceName string) (*genai.Icon, error)
}

// UploadImageInput is a file received from the editor
type UploadImageInput struct {
	Filename string
	Data     []byte
	// Width and Height request a center crop when both are set
	Width  int
	Height int
}

// GenerateIconRequest asks for an icon for a service
type GenerateIconRequest struct {
	ServiceName string `json:"serviceName" binding:"required,min=2,max=120"`
}

// UploadResponse carries the hosted URL, stored verbatim in content documents
type UploadResponse struct {
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	Size        int    `json:"size"`
}

// MediaService uploads images and generates service icons
type MediaService struct {
	store     ImageStore
	optimizer *storage.ImageOptimizer
	icons     IconGenerator
	maxBytes  int
	metrics   *telemetry.ContentMetrics
	logger    *zap.Logger
}

// NewMediaService creates a MediaService. icons may be nil when generation is not configured.
func NewMediaService(
	store ImageStore,
	optimizer *storage.ImageOptimizer,
	icons IconGenerator,
	maxBytes int,
	metrics *telemetry.ContentMetrics,
	logger *zap.Logger,
) *MediaService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	if optimizer == nil {
		optimizer = storage.NewImageOptimizer(0, 0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MediaService{
		store:     store,
		optimizer: optimizer,
		icons:     icons,
		maxBytes:  maxBytes,
		metrics:   metrics,
		logger:    logger,
	}
}

// MaxBytes returns the upload size limit
func (s *MediaService) MaxBytes() int {
	return s.maxBytes
}

// UploadImage checks, optimizes and hosts an image. The content type is
// sniffed from the bytes; the client's claim is ignored.
func (s *MediaService) UploadImage(ctx context.Context, in UploadImageInput) (*UploadResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "media", "upload_image", telemetry.SpanAttrCount, len(in.Data))
	defer span.End()

	if len(in.Data) == 0 {
		s.metrics.RecordUpload(ctx, OutcomeRejected, 0)
		return nil, ErrEmptyFile
	}
	if len(in.Data) > s.maxBytes {
		s.metrics.RecordUpload(ctx, OutcomeRejected, len(in.Data))
		return nil, ErrFileTooLarge
	}
	contentType := DetectImageType(in.Data)
	if !allowedImageTypes[contentType] {
		s.metrics.RecordUpload(ctx, OutcomeRejected, len(in.Data))
		return nil, ErrUnsupportedImageType.WithMessage(
			fmt.Sprintf("Unsupported file type %s; only JPEG, PNG, GIF and WebP images are accepted", contentType))
	}

	processed, err := s.optimizer.Optimize(in.Data, contentType, storage.Crop{Width: in.Width, Height: in.Height})
	if err != nil {
		s.metrics.RecordUpload(ctx, OutcomeRejected, len(in.Data))
		if errors.Is(err, storage.ErrCropUnsupported) {
			return nil, ErrCropNotSupported
		}
		return nil, ErrUnsupportedImageType.WithMessage("Image could not be decoded")
	}

	url, err := s.store.Put(ctx, objectKey("images", processed.Extension()), processed.Data, processed.ContentType)
	if err != nil {
		telemetry.RecordError(span, err)
		s.metrics.RecordUpload(ctx, OutcomeFailed, len(processed.Data))
		s.logger.Error("Failed to store image", zap.String("filename", in.Filename), zap.Error(err))
		return nil, ErrUploadFailed
	}

	s.metrics.RecordUpload(ctx, OutcomeOK, len(processed.Data))
	s.logger.Info("Image uploaded",
		zap.String("url", url),
		zap.Int("original_size", len(in.Data)),
		zap.Int("stored_size", len(processed.Data)))
	return &UploadResponse{
		URL:         url,
		ContentType: processed.ContentType,
		Width:       processed.Width,
		Height:      processed.Height,
		Size:        len(processed.Data),
	}, nil
}

// GenerateIcon asks the generative provider for an icon and re-hosts it.
// A billing refusal upstream is reported as ICON_BILLING_DISABLED; every
// other provider failure is generic.
func (s *MediaService) GenerateIcon(ctx context.Context, req GenerateIconRequest) (*UploadResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "media", "generate_icon")
	defer span.End()

	if s.icons == nil {
		return nil, ErrIconGenerationOff
	}
	name := strings.TrimSpace(req.ServiceName)
	if name == "" {
		return nil, shared.ErrValidation.WithMessage("serviceName is required")
	}

	icon, err := s.icons.Generate(ctx, name)
	if err != nil {
		telemetry.RecordError(span, err)
		switch {
		case genai.IsBillingDisabled(err):
			return nil, ErrIconBillingDisabled
		case errors.Is(err, genai.ErrDisabled):
			return nil, ErrIconGenerationOff
		}
		s.logger.Error("Icon generation failed", zap.String("service", name), zap.Error(err))
		return nil, ErrIconGenerationFailed
	}

	contentType := DetectImageType(icon.Data)
	if !allowedImageTypes[contentType] {
		contentType = icon.ContentType
	}
	processed, err := s.optimizer.Optimize(icon.Data, contentType, storage.Crop{})
	if err != nil {
		s.logger.Error("Generated icon could not be decoded", zap.Error(err))
		return nil, ErrIconGenerationFailed
	}

	url, err := s.store.Put(ctx, objectKey("icons", processed.Extension()), processed.Data, processed.ContentType)
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("Failed to store generated icon", zap.Error(err))
		return nil, ErrUploadFailed
	}

	s.logger.Info("Icon generated", zap.String("service", name), zap.String("url", url))
	return &UploadResponse{
		URL:         url,
		ContentType: processed.ContentType,
		Width:       processed.Width,
		Height:      processed.Height,
		Size:        len(processed.Data),
	}, nil
}

// DetectImageType sniffs the content type of the first bytes
func DetectImageType(data []byte) string {
	ct := http.DetectContentType(data)
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return ct
}

func objectKey(prefix, ext string) string {
	return fmt.Sprintf("%s/%s/%s%s", prefix, time.Now().UTC().Format("2006/01"), uuid.New().String(), ext)
}
