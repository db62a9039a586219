package section

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"github.com/go-playground/validator/v10"
)

// Content is the typed view of a section payload
type Content interface {
	SectionType() string
}

// HeroContent is the payload of the hero banner
type HeroContent struct {
	Title           string `json:"title" validate:"required,max=200"`
	Subtitle        string `json:"subtitle" validate:"max=500"`
	CTALabel        string `json:"ctaLabel" validate:"max=80"`
	CTAHref         string `json:"ctaHref" validate:"required_with=CTALabel,max=500"`
	BackgroundImage string `json:"backgroundImage" validate:"omitempty,url"`
}

// FeatureColumn is one column of a feature grid
type FeatureColumn struct {
	Icon        string `json:"icon" validate:"max=500"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// FeatureGridContent is the payload of a feature-grid section
type FeatureGridContent struct {
	Title   string          `json:"title" validate:"max=200"`
	Columns []FeatureColumn `json:"columns" validate:"max=12,dive"`
}

// CTAContent is the payload of a call-to-action section
type CTAContent struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	ButtonText  string `json:"buttonText" validate:"max=80"`
	ButtonLink  string `json:"buttonLink" validate:"required_with=ButtonText,max=500"`
}

// TextImageContent is the payload of a text-image section; Body is markdown
type TextImageContent struct {
	Title         string `json:"title" validate:"max=200"`
	Body          string `json:"body" validate:"max=20000"`
	ImageURL      string `json:"imageUrl" validate:"omitempty,url"`
	ImagePosition string `json:"imagePosition" validate:"omitempty,oneof=left right"`
}

// Video is one entry of a YouTube gallery
type Video struct {
	YouTubeURL  string `json:"youtubeUrl" validate:"required,youtube"`
	Title       string `json:"title" validate:"max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// YouTubeGalleryContent is the payload of a youtube-gallery section
type YouTubeGalleryContent struct {
	Title  string  `json:"title" validate:"max=200"`
	Videos []Video `json:"videos" validate:"max=24,dive"`
}

// StaticContent is the payload shared by static sections whose body is
// rendered from other collections (services, testimonials, team, ...)
type StaticContent struct {
	Type     string `json:"-"`
	Title    string `json:"title" validate:"max=200"`
	Subtitle string `json:"subtitle" validate:"max=500"`
}

func (HeroContent) SectionType() string           { return TypeHero }
func (FeatureGridContent) SectionType() string    { return TypeFeatureGrid }
func (CTAContent) SectionType() string            { return TypeCTA }
func (TextImageContent) SectionType() string      { return TypeTextImage }
func (YouTubeGalleryContent) SectionType() string { return TypeYouTubeGallery }
func (c StaticContent) SectionType() string       { return c.Type }

// ErrInvalidContent is returned when a payload does not match its section type
var ErrInvalidContent = shared.NewDomainError("INVALID_SECTION_CONTENT", "Section content does not match its type")

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func contentValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = shared.NewValidator()
		_ = validate.RegisterValidation("youtube", func(fl validator.FieldLevel) bool {
			_, ok := YouTubeID(fl.Field().String())
			return ok
		})
	})
	return validate
}

func newVariant(sectionType string) (Content, bool) {
	switch sectionType {
	case TypeHero:
		return &HeroContent{}, true
	case TypeFeatureGrid:
		return &FeatureGridContent{}, true
	case TypeCTA:
		return &CTAContent{}, true
	case TypeTextImage:
		return &TextImageContent{}, true
	case TypeYouTubeGallery:
		return &YouTubeGalleryContent{}, true
	}
	if t, ok := registry[sectionType]; ok && t.IsStatic {
		return &StaticContent{Type: sectionType}, true
	}
	return nil, false
}

// Parse decodes a stored payload into its typed variant without validating it.
// Unknown fields are ignored so that older documents still render.
func Parse(sectionType string, payload map[string]interface{}) (Content, error) {
	v, ok := newVariant(sectionType)
	if !ok {
		return nil, ErrUnknownTemplate.WithMessage(fmt.Sprintf("Unknown section type %q", sectionType))
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode content: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return nil, ErrInvalidContent.WithMessage(err.Error())
	}
	return deref(v), nil
}

// ValidateContent checks a payload against the typed variant of its section type.
// Fields the variant does not declare are rejected.
func ValidateContent(sectionType string, payload map[string]interface{}) error {
	v, ok := newVariant(sectionType)
	if !ok {
		return ErrUnknownTemplate.WithMessage(fmt.Sprintf("Unknown section type %q", sectionType))
	}
	if payload == nil {
		return ErrInvalidContent.WithMessage("content is required")
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return ErrInvalidContent.WithMessage(err.Error())
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return ErrInvalidContent.WithMessage(fmt.Sprintf("%s content: %v", sectionType, err))
	}
	if err := contentValidator().Struct(v); err != nil {
		return ErrInvalidContent.WithMessage(fmt.Sprintf("%s content: %s", sectionType, shared.DescribeValidation(err)))
	}
	return nil
}

func deref(c Content) Content {
	switch v := c.(type) {
	case *HeroContent:
		return *v
	case *FeatureGridContent:
		return *v
	case *CTAContent:
		return *v
	case *TextImageContent:
		return *v
	case *YouTubeGalleryContent:
		return *v
	case *StaticContent:
		return *v
	}
	return c
}

// YouTubeID extracts the video id from the usual YouTube URL shapes
func YouTubeID(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return "", false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	host = strings.TrimPrefix(host, "m.")
	var id string
	switch host {
	case "youtu.be":
		id = strings.Trim(u.Path, "/")
	case "youtube.com", "youtube-nocookie.com":
		switch {
		case u.Path == "/watch":
			id = u.Query().Get("v")
		case strings.HasPrefix(u.Path, "/embed/"):
			id = strings.TrimPrefix(u.Path, "/embed/")
		case strings.HasPrefix(u.Path, "/shorts/"):
			id = strings.TrimPrefix(u.Path, "/shorts/")
		}
	default:
		return "", false
	}
	if id == "" || strings.ContainsAny(id, "/?&") {
		return "", false
	}
	return id, true
}
