package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atedres/boldnet-sub000/internal/infrastructure/config"
	"go.uber.org/zap"
	googleai "google.golang.org/genai"
)

// DefaultModel is the image model used when none is configured
const DefaultModel = "imagen-4.0-generate-001"

var (
	// ErrBillingDisabled is returned when the provider refuses image
	// generation because the project has no billing account
	ErrBillingDisabled = errors.New("image generation requires billing on the provider account")

	// ErrDisabled is returned when icon generation is switched off
	ErrDisabled = errors.New("icon generation is disabled")

	// ErrNoImage is returned when the provider answers without an image
	ErrNoImage = errors.New("provider returned no image")
)

// imageModel is the slice of the SDK the generator uses
type imageModel interface {
	GenerateImages(ctx context.Context, model, prompt string, cfg *googleai.GenerateImagesConfig) (*googleai.GenerateImagesResponse, error)
}

// Icon is a generated image ready to be re-hosted
type Icon struct {
	Data        []byte
	ContentType string
}

// IconGenerator turns a service name into a flat square icon
type IconGenerator struct {
	models imageModel
	model  string
	logger *zap.Logger
}

// NewIconGenerator creates a generator backed by the Gemini API
func NewIconGenerator(ctx context.Context, cfg config.GenAIConfig, logger *zap.Logger) (*IconGenerator, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	client, err := googleai.NewClient(ctx, &googleai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: googleai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return newIconGenerator(client.Models, cfg.Model, logger), nil
}

func newIconGenerator(models imageModel, model string, logger *zap.Logger) *IconGenerator {
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IconGenerator{models: models, model: model, logger: logger}
}

// Prompt builds the generation prompt for a service name
func Prompt(serviceName string) string {
	return fmt.Sprintf(
		"A minimalist flat vector icon representing %q for a digital agency website. "+
			"Single centered symbol, solid colors, plain white background, no text.",
		strings.TrimSpace(serviceName))
}

// Generate returns one PNG icon for the service name
func (g *IconGenerator) Generate(ctx context.Context, serviceName string) (*Icon, error) {
	resp, err := g.models.GenerateImages(ctx, g.model, Prompt(serviceName), &googleai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    "1:1",
		OutputMIMEType: "image/png",
	})
	if err != nil {
		if IsBillingDisabled(err) {
			g.logger.Warn("Icon generation refused: billing disabled", zap.Error(err))
			return nil, ErrBillingDisabled
		}
		return nil, fmt.Errorf("GenAI image generation failed: %w", err)
	}
	if resp == nil || len(resp.GeneratedImages) == 0 {
		return nil, ErrNoImage
	}

	generated := resp.GeneratedImages[0]
	if generated.Image == nil || len(generated.Image.ImageBytes) == 0 {
		if generated.RAIFilteredReason != "" {
			return nil, fmt.Errorf("%w: %s", ErrNoImage, generated.RAIFilteredReason)
		}
		return nil, ErrNoImage
	}

	contentType := generated.Image.MIMEType
	if contentType == "" {
		contentType = "image/png"
	}
	return &Icon{Data: generated.Image.ImageBytes, ContentType: contentType}, nil
}

// IsBillingDisabled reports whether err is the provider's refusal to serve
// an account without billing
func IsBillingDisabled(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrBillingDisabled) {
		return true
	}
	msg := err.Error()
	var apiErr googleai.APIError
	if errors.As(err, &apiErr) {
		msg = apiErr.Status + " " + apiErr.Message
	}
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "billed users") ||
		strings.Contains(msg, "billing") && (strings.Contains(msg, "disabled") || strings.Contains(msg, "enable") || strings.Contains(msg, "required"))
}
