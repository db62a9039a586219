package web

import (
	"context"
	"html/template"
	"strings"

	"github.com/atedres/boldnet-sub000/internal/domain/section"
	"github.com/atedres/boldnet-sub000/internal/domain/site"
	"github.com/shopspring/decimal"
)

// ContactEndpoint receives the contact form rendered by contact-form sections
const ContactEndpoint = "/api/v1/public/contact"

type videoView struct {
	EmbedURL    string
	Title       string
	Description string
}

type textImageView struct {
	Title         string
	Body          template.HTML
	ImageURL      string
	ImagePosition string
}

type galleryView struct {
	Title  string
	Videos []videoView
}

type serviceCard struct {
	Title   string
	Summary string
	IconURL string
	Path    string
	Price   string
}

type staticView struct {
	Title        string
	Subtitle     string
	Endpoint     string
	Services     []serviceCard
	Testimonials []*site.Testimonial
	Clients      []*site.Client
	Team         []*site.TeamMember
	Portfolio    []*site.PortfolioItem
	Steps        []*site.FunnelStep
}

func defaultViews() map[string]sectionView {
	return map[string]sectionView{
		section.TypeHero:             heroView,
		section.TypeFeatureGrid:      typedView[section.FeatureGridContent],
		section.TypeCTA:              typedView[section.CTAContent],
		section.TypeTextImage:        textImage,
		section.TypeYouTubeGallery:   youtubeGallery,
		section.TypeServicesOverview: staticWith(loadServices),
		section.TypeTestimonials:     staticWith(loadTestimonials),
		section.TypeClients:          staticWith(loadClients),
		section.TypeTeam:             staticWith(loadTeam),
		section.TypePortfolio:        staticWith(loadPortfolio),
		section.TypeFunnel:           staticWith(loadFunnel),
		section.TypeContactForm: staticWith(func(_ context.Context, _ *pageSources, v *staticView) error {
			v.Endpoint = ContactEndpoint
			return nil
		}),
	}
}

// typedView decodes the stored payload leniently; stored documents may
// predate the current validation rules.
func typedView[T any](_ context.Context, _ *Renderer, _ *pageSources, s section.Section) (any, error) {
	var v T
	if err := site.Decode(s.Content, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// heroView overlays the non-empty fields of hero_content/main on the
// homepage hero
func heroView(ctx context.Context, _ *Renderer, src *pageSources, s section.Section) (any, error) {
	var hero section.HeroContent
	if err := site.Decode(s.Content, &hero); err != nil {
		return nil, err
	}
	if !src.home {
		return hero, nil
	}
	overlay, err := src.hero(ctx)
	if err != nil {
		return nil, err
	}
	override(&hero.Title, overlay.Title)
	override(&hero.Subtitle, overlay.Subtitle)
	override(&hero.CTALabel, overlay.CTALabel)
	override(&hero.CTAHref, overlay.CTAHref)
	override(&hero.BackgroundImage, overlay.BackgroundImage)
	return hero, nil
}

func override(dst *string, v string) {
	if strings.TrimSpace(v) != "" {
		*dst = v
	}
}

func textImage(_ context.Context, r *Renderer, _ *pageSources, s section.Section) (any, error) {
	var c section.TextImageContent
	if err := site.Decode(s.Content, &c); err != nil {
		return nil, err
	}
	return textImageView{
		Title:         c.Title,
		Body:          r.Markdown(c.Body),
		ImageURL:      c.ImageURL,
		ImagePosition: c.ImagePosition,
	}, nil
}

func youtubeGallery(_ context.Context, _ *Renderer, _ *pageSources, s section.Section) (any, error) {
	var c section.YouTubeGalleryContent
	if err := site.Decode(s.Content, &c); err != nil {
		return nil, err
	}
	view := galleryView{Title: c.Title, Videos: make([]videoView, 0, len(c.Videos))}
	for _, v := range c.Videos {
		id, ok := section.YouTubeID(v.YouTubeURL)
		if !ok {
			continue
		}
		view.Videos = append(view.Videos, videoView{
			EmbedURL:    "https://www.youtube-nocookie.com/embed/" + id,
			Title:       v.Title,
			Description: v.Description,
		})
	}
	return view, nil
}

// staticWith renders a static section whose body comes from a collection
func staticWith(load func(ctx context.Context, src *pageSources, v *staticView) error) sectionView {
	return func(ctx context.Context, _ *Renderer, src *pageSources, s section.Section) (any, error) {
		var heading section.StaticContent
		if err := site.Decode(s.Content, &heading); err != nil {
			return nil, err
		}
		v := &staticView{Title: heading.Title, Subtitle: heading.Subtitle}
		if err := load(ctx, src, v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

func loadServices(ctx context.Context, src *pageSources, v *staticView) error {
	services, err := src.content.Services.All(ctx)
	if err != nil {
		return err
	}
	settings, err := src.site(ctx)
	if err != nil {
		return err
	}
	for _, svc := range services {
		v.Services = append(v.Services, serviceCard{
			Title:   svc.Title,
			Summary: svc.Summary,
			IconURL: svc.IconURL,
			Path:    svc.PublicPath(),
			Price:   formatPrice(svc.StartingPrice, settings.Currency),
		})
	}
	return nil
}

func loadTestimonials(ctx context.Context, src *pageSources, v *staticView) (err error) {
	v.Testimonials, err = src.content.Testimonials.All(ctx)
	return err
}

func loadClients(ctx context.Context, src *pageSources, v *staticView) (err error) {
	v.Clients, err = src.content.Clients.All(ctx)
	return err
}

func loadTeam(ctx context.Context, src *pageSources, v *staticView) (err error) {
	v.Team, err = src.content.TeamMembers.All(ctx)
	return err
}

func loadPortfolio(ctx context.Context, src *pageSources, v *staticView) (err error) {
	v.Portfolio, err = src.content.PortfolioItems.All(ctx)
	return err
}

func loadFunnel(ctx context.Context, src *pageSources, v *staticView) (err error) {
	v.Steps, err = src.content.FunnelSteps.All(ctx)
	return err
}

// formatPrice renders a starting price; zero means "on request" and renders nothing
func formatPrice(price decimal.Decimal, currency string) string {
	if price.IsZero() {
		return ""
	}
	amount := price.StringFixed(2)
	amount = strings.TrimSuffix(amount, ".00")
	if currency == "" {
		return amount
	}
	return amount + " " + strings.ToUpper(currency)
}
