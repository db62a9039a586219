package genai

import (
	"context"
	"errors"
	"testing"

	"github.com/atedres/boldnet-sub000/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	googleai "google.golang.org/genai"
)

type fakeModels struct {
	resp   *googleai.GenerateImagesResponse
	err    error
	model  string
	prompt string
	cfg    *googleai.GenerateImagesConfig
}

func (f *fakeModels) GenerateImages(ctx context.Context, model, prompt string, cfg *googleai.GenerateImagesConfig) (*googleai.GenerateImagesResponse, error) {
	f.model, f.prompt, f.cfg = model, prompt, cfg
	return f.resp, f.err
}

func TestIconGenerator_Generate(t *testing.T) {
	fake := &fakeModels{resp: &googleai.GenerateImagesResponse{
		GeneratedImages: []*googleai.GeneratedImage{
			{Image: &googleai.Image{ImageBytes: []byte{0x89, 'P', 'N', 'G'}, MIMEType: "image/png"}},
		},
	}}
	g := newIconGenerator(fake, "", nil)

	icon, err := g.Generate(context.Background(), "  SEO audit ")
	require.NoError(t, err)
	assert.Equal(t, "image/png", icon.ContentType)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, icon.Data)
	assert.Equal(t, DefaultModel, fake.model)
	assert.Contains(t, fake.prompt, `"SEO audit"`)
	assert.Equal(t, int32(1), fake.cfg.NumberOfImages)
}

func TestIconGenerator_EmptyResponse(t *testing.T) {
	g := newIconGenerator(&fakeModels{resp: &googleai.GenerateImagesResponse{}}, "m", nil)
	_, err := g.Generate(context.Background(), "Branding")
	assert.ErrorIs(t, err, ErrNoImage)

	g = newIconGenerator(&fakeModels{resp: &googleai.GenerateImagesResponse{
		GeneratedImages: []*googleai.GeneratedImage{{RAIFilteredReason: "blocked"}},
	}}, "m", nil)
	_, err = g.Generate(context.Background(), "Branding")
	assert.ErrorIs(t, err, ErrNoImage)
	assert.Contains(t, err.Error(), "blocked")
}

func TestIconGenerator_BillingDisabled(t *testing.T) {
	apiErr := googleai.APIError{
		Code:    400,
		Status:  "INVALID_ARGUMENT",
		Message: "Imagen API is only accessible to billed users at this time.",
	}
	g := newIconGenerator(&fakeModels{err: apiErr}, "m", nil)

	_, err := g.Generate(context.Background(), "Ads")
	assert.ErrorIs(t, err, ErrBillingDisabled)
}

func TestIconGenerator_OtherErrorsAreGeneric(t *testing.T) {
	g := newIconGenerator(&fakeModels{err: errors.New("deadline exceeded")}, "m", nil)

	_, err := g.Generate(context.Background(), "Ads")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBillingDisabled)
}

func TestIsBillingDisabled(t *testing.T) {
	assert.False(t, IsBillingDisabled(nil))
	assert.True(t, IsBillingDisabled(ErrBillingDisabled))
	assert.True(t, IsBillingDisabled(errors.New("Billing is disabled for this project")))
	assert.False(t, IsBillingDisabled(errors.New("quota exceeded")))
}

func TestNewIconGenerator_Config(t *testing.T) {
	_, err := NewIconGenerator(context.Background(), config.GenAIConfig{}, nil)
	assert.ErrorIs(t, err, ErrDisabled)

	_, err = NewIconGenerator(context.Background(), config.GenAIConfig{Enabled: true}, nil)
	assert.Error(t, err)
}

func TestPrompt(t *testing.T) {
	assert.Contains(t, Prompt("Web design"), `"Web design"`)
	assert.Contains(t, Prompt("Web design"), "no text")
}
