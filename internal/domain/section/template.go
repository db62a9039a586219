package section

import "sort"

// Section types known to the catalog
const (
	TypeHero             = "hero"
	TypeFeatureGrid      = "feature-grid"
	TypeCTA              = "cta"
	TypeTextImage        = "text-image"
	TypeYouTubeGallery   = "youtube-gallery"
	TypeServicesOverview = "services-overview"
	TypeTestimonials     = "testimonials"
	TypeClients          = "clients"
	TypeTeam             = "team"
	TypePortfolio        = "portfolio"
	TypeFunnel           = "funnel"
	TypeContactForm      = "contact-form"
)

// Surface identifies an editor that offers a subset of the catalog
type Surface string

const (
	SurfaceHomepage    Surface = "homepage"
	SurfaceLandingPage Surface = "landing_page"
	SurfaceBlogPost    Surface = "blog_post"
)

// Template describes a section type: its display metadata, default content
// and the structural constraints enforced on its instances.
type Template struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	// IsStatic templates may exist at most once per parent
	IsStatic bool `json:"isStatic"`
	// IsHero templates are never deleted and never reordered
	IsHero bool `json:"isHero"`
	// Rank is the position in the catalog listing
	Rank int `json:"-"`

	defaults func() map[string]interface{}
}

// DefaultContent returns a fresh copy of the template's default payload
func (t Template) DefaultContent() map[string]interface{} {
	if t.defaults == nil {
		return map[string]interface{}{}
	}
	return t.defaults()
}

func staticDefaults(title, subtitle string) func() map[string]interface{} {
	return func() map[string]interface{} {
		return map[string]interface{}{
			"title":    title,
			"subtitle": subtitle,
		}
	}
}

var registry = map[string]Template{
	TypeHero: {
		Type:        TypeHero,
		Name:        "Hero",
		Description: "Full-width banner at the top of the page",
		Icon:        "layout-template",
		IsStatic:    true,
		IsHero:      true,
		Rank:        0,
		defaults: func() map[string]interface{} {
			return map[string]interface{}{
				"title":           "Grow your business online",
				"subtitle":        "Websites, campaigns and branding that convert.",
				"ctaLabel":        "Get a quote",
				"ctaHref":         "/#contact",
				"backgroundImage": "",
			}
		},
	},
	TypeFeatureGrid: {
		Type:        TypeFeatureGrid,
		Name:        "Feature grid",
		Description: "Columns of icon, title and description",
		Icon:        "layout-grid",
		Rank:        1,
		defaults: func() map[string]interface{} {
			return map[string]interface{}{
				"title": "Why choose us",
				"columns": []interface{}{
					map[string]interface{}{"icon": "zap", "title": "Fast", "description": "Launch in weeks, not months."},
					map[string]interface{}{"icon": "shield", "title": "Reliable", "description": "Hosting and support included."},
					map[string]interface{}{"icon": "trending-up", "title": "Measurable", "description": "Every campaign is tracked."},
				},
			}
		},
	},
	TypeCTA: {
		Type:        TypeCTA,
		Name:        "Call to action",
		Description: "Headline with a single button",
		Icon:        "megaphone",
		Rank:        2,
		defaults: func() map[string]interface{} {
			return map[string]interface{}{
				"title":       "Ready to start?",
				"description": "Tell us about your project and get a proposal within 48 hours.",
				"buttonText":  "Contact us",
				"buttonLink":  "/#contact",
			}
		},
	},
	TypeTextImage: {
		Type:        TypeTextImage,
		Name:        "Text and image",
		Description: "Markdown text next to an image",
		Icon:        "image",
		Rank:        3,
		defaults: func() map[string]interface{} {
			return map[string]interface{}{
				"title":         "About us",
				"body":          "Write something about your company.",
				"imageUrl":      "",
				"imagePosition": "right",
			}
		},
	},
	TypeYouTubeGallery: {
		Type:        TypeYouTubeGallery,
		Name:        "YouTube gallery",
		Description: "Grid of embedded YouTube videos",
		Icon:        "youtube",
		Rank:        4,
		defaults: func() map[string]interface{} {
			return map[string]interface{}{
				"title":  "Watch our work",
				"videos": []interface{}{},
			}
		},
	},
	TypeServicesOverview: {
		Type: TypeServicesOverview, Name: "Services overview", Description: "Cards for every published service",
		Icon: "briefcase", IsStatic: true, Rank: 5,
		defaults: staticDefaults("Our services", "Everything you need to grow"),
	},
	TypeTestimonials: {
		Type: TypeTestimonials, Name: "Testimonials", Description: "Quotes from customers",
		Icon: "message-square-quote", IsStatic: true, Rank: 6,
		defaults: staticDefaults("What our clients say", ""),
	},
	TypeClients: {
		Type: TypeClients, Name: "Clients", Description: "Logo wall of clients",
		Icon: "building", IsStatic: true, Rank: 7,
		defaults: staticDefaults("They trust us", ""),
	},
	TypeTeam: {
		Type: TypeTeam, Name: "Team", Description: "Team members in manual order",
		Icon: "users", IsStatic: true, Rank: 8,
		defaults: staticDefaults("Meet the team", ""),
	},
	TypePortfolio: {
		Type: TypePortfolio, Name: "Portfolio", Description: "Portfolio items in manual order",
		Icon: "folder-kanban", IsStatic: true, Rank: 9,
		defaults: staticDefaults("Recent work", ""),
	},
	TypeFunnel: {
		Type: TypeFunnel, Name: "Process", Description: "Funnel steps explaining how you work",
		Icon: "list-ordered", IsStatic: true, Rank: 10,
		defaults: staticDefaults("How we work", ""),
	},
	TypeContactForm: {
		Type: TypeContactForm, Name: "Contact form", Description: "Contact and quote request form",
		Icon: "mail", IsStatic: true, Rank: 11,
		defaults: staticDefaults("Get in touch", "We answer within one business day"),
	},
}

// The landing page surface offers youtube-gallery as well: the catalog is shared.
var surfaces = map[Surface][]string{
	SurfaceHomepage: {
		TypeHero, TypeFeatureGrid, TypeCTA, TypeTextImage, TypeYouTubeGallery,
		TypeServicesOverview, TypeTestimonials, TypeClients, TypeTeam, TypePortfolio,
		TypeFunnel, TypeContactForm,
	},
	SurfaceLandingPage: {
		TypeFeatureGrid, TypeCTA, TypeTextImage, TypeYouTubeGallery,
		TypeTestimonials, TypeClients, TypeContactForm,
	},
	SurfaceBlogPost: {
		TypeTextImage, TypeCTA, TypeFeatureGrid, TypeYouTubeGallery,
	},
}

// Lookup returns the template registered for a type
func Lookup(sectionType string) (Template, bool) {
	t, ok := registry[sectionType]
	return t, ok
}

// Templates returns the whole catalog in display order
func Templates() []Template {
	list := make([]Template, 0, len(registry))
	for _, t := range registry {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Rank < list[j].Rank })
	return list
}

// TemplatesFor returns the templates a surface offers, in display order
func TemplatesFor(surface Surface) []Template {
	types := surfaces[surface]
	list := make([]Template, 0, len(types))
	for _, typ := range types {
		if t, ok := registry[typ]; ok {
			list = append(list, t)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Rank < list[j].Rank })
	return list
}

// Allowed reports whether a surface offers the given type
func Allowed(surface Surface, sectionType string) bool {
	for _, typ := range surfaces[surface] {
		if typ == sectionType {
			return true
		}
	}
	return false
}

// IsHeroType reports whether the type belongs to a hero template.
// Types missing from the catalog are never hero.
func IsHeroType(sectionType string) bool {
	t, ok := registry[sectionType]
	return ok && t.IsHero
}
