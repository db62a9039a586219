package site

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/atedres/boldnet-sub000/internal/domain/shared"
)

// Singleton collections; each holds exactly one document with id SingletonID
const (
	SingletonTheme            = "theme_settings"
	SingletonFooter           = "footer_settings"
	SingletonSite             = "site_settings"
	SingletonPersonalBranding = "personal_branding_pages"
	SingletonHero             = "hero_content"

	SingletonID = "main"
)

// ErrUnknownSingleton is returned for collections outside the singleton list
var ErrUnknownSingleton = shared.NewDomainError("UNKNOWN_SETTINGS", "Unknown settings document")

// Singleton is a global configuration document
type Singleton struct {
	Collection string
	ID         string
	Data       map[string]interface{}
	UpdatedAt  time.Time
}

// NewSingleton returns an empty document for a known collection
func NewSingleton(collection string) (*Singleton, error) {
	if !IsSingleton(collection) {
		return nil, ErrUnknownSingleton.WithMessage(fmt.Sprintf("Unknown settings document %q", collection))
	}
	return &Singleton{
		Collection: collection,
		ID:         SingletonID,
		Data:       map[string]interface{}{},
	}, nil
}

// IsSingleton reports whether the collection is a singleton collection
func IsSingleton(collection string) bool {
	switch collection {
	case SingletonTheme, SingletonFooter, SingletonSite, SingletonPersonalBranding, SingletonHero:
		return true
	}
	return false
}

// Merge applies a partial update. Nested objects merge key by key, any other
// value replaces what was stored, and keys absent from the patch are kept.
// The merged document must still satisfy the collection's rules; on failure
// the stored data is left unchanged.
func (s *Singleton) Merge(patch map[string]interface{}) error {
	merged := DeepMerge(cloneMap(s.Data), patch)
	if err := validateSingleton(s.Collection, merged); err != nil {
		return err
	}
	s.Data = merged
	s.UpdatedAt = time.Now()
	return nil
}

// DeepMerge merges src into dst and returns dst
func DeepMerge(dst, src map[string]interface{}) map[string]interface{} {
	if dst == nil {
		dst = map[string]interface{}{}
	}
	for k, v := range src {
		srcMap, srcIsMap := v.(map[string]interface{})
		dstMap, dstIsMap := dst[k].(map[string]interface{})
		if srcIsMap && dstIsMap {
			dst[k] = DeepMerge(dstMap, srcMap)
			continue
		}
		if srcIsMap {
			dst[k] = DeepMerge(map[string]interface{}{}, srcMap)
			continue
		}
		dst[k] = v
	}
	return dst
}

func cloneMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]interface{}); ok {
			out[k] = cloneMap(nested)
			continue
		}
		out[k] = v
	}
	return out
}

// ThemeSettings is the typed view of theme_settings/main
type ThemeSettings struct {
	PrimaryColor    string `json:"primaryColor" validate:"omitempty,hexcolor"`
	SecondaryColor  string `json:"secondaryColor" validate:"omitempty,hexcolor"`
	AccentColor     string `json:"accentColor" validate:"omitempty,hexcolor"`
	BackgroundColor string `json:"backgroundColor" validate:"omitempty,hexcolor"`
	TextColor       string `json:"textColor" validate:"omitempty,hexcolor"`
	FontFamily      string `json:"fontFamily" validate:"max=120"`
	LogoURL         string `json:"logoUrl" validate:"omitempty,url"`
}

// FooterLink is a link column entry of the footer
type FooterLink struct {
	Label string `json:"label" validate:"required,max=80"`
	Href  string `json:"href" validate:"required,max=500"`
}

// FooterSettings is the typed view of footer_settings/main
type FooterSettings struct {
	CompanyName string            `json:"companyName" validate:"max=120"`
	Tagline     string            `json:"tagline" validate:"max=300"`
	Email       string            `json:"email" validate:"omitempty,email"`
	Phone       string            `json:"phone" validate:"max=40"`
	Address     string            `json:"address" validate:"max=300"`
	Links       []FooterLink      `json:"links" validate:"max=30,dive"`
	Socials     map[string]string `json:"socials" validate:"max=12,dive,url"`
	Copyright   string            `json:"copyright" validate:"max=200"`
}

// SiteSettings is the typed view of site_settings/main
type SiteSettings struct {
	SiteName           string `json:"siteName" validate:"max=120"`
	DefaultTitle       string `json:"defaultTitle" validate:"max=200"`
	DefaultDescription string `json:"defaultDescription" validate:"max=500"`
	FaviconURL         string `json:"faviconUrl" validate:"omitempty,url"`
	Currency           string `json:"currency" validate:"omitempty,len=3"`
	AnalyticsID        string `json:"analyticsId" validate:"max=40"`
}

// HeroSettings is the typed view of hero_content/main
type HeroSettings struct {
	Title           string `json:"title" validate:"max=200"`
	Subtitle        string `json:"subtitle" validate:"max=500"`
	CTALabel        string `json:"ctaLabel" validate:"max=80"`
	CTAHref         string `json:"ctaHref" validate:"max=500"`
	BackgroundImage string `json:"backgroundImage" validate:"omitempty,url"`
}

func typedView(collection string) interface{} {
	switch collection {
	case SingletonTheme:
		return &ThemeSettings{}
	case SingletonFooter:
		return &FooterSettings{}
	case SingletonSite:
		return &SiteSettings{}
	case SingletonHero:
		return &HeroSettings{}
	}
	return nil
}

func validateSingleton(collection string, data map[string]interface{}) error {
	view := typedView(collection)
	if view == nil {
		return nil
	}
	if err := Decode(data, view); err != nil {
		return shared.ErrValidation.WithMessage(fmt.Sprintf("%s: %v", collection, err))
	}
	return shared.ValidateStruct(view)
}

// Decode converts a document into a typed view; unknown keys are ignored
func Decode(data map[string]interface{}, out interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// SingletonRepository persists singleton documents
type SingletonRepository interface {
	// Find returns the document, or shared.ErrNotFound when never written
	Find(ctx context.Context, collection string) (*Singleton, error)

	// Save upserts the document
	Save(ctx context.Context, s *Singleton) error
}
