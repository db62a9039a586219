package web

import (
	"html/template"
	"regexp"
	"strings"

	"github.com/atedres/boldnet-sub000/internal/domain/site"
)

// Theme defaults used for colors the editor has not set
var defaultTheme = site.ThemeSettings{
	PrimaryColor:    "#2563eb",
	SecondaryColor:  "#1e293b",
	AccentColor:     "#f59e0b",
	BackgroundColor: "#ffffff",
	TextColor:       "#0f172a",
	FontFamily:      "system-ui, sans-serif",
}

var (
	hexColor   = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	fontFamily = regexp.MustCompile(`^[A-Za-z0-9 ,'"-]+$`)
)

// ThemeCSS turns theme settings into CSS custom properties on :root.
// Values that are not plain colors or font names fall back to the defaults.
func ThemeCSS(theme site.ThemeSettings) template.CSS {
	vars := []struct {
		name, value, fallback string
		valid                 *regexp.Regexp
	}{
		{"--color-primary", theme.PrimaryColor, defaultTheme.PrimaryColor, hexColor},
		{"--color-secondary", theme.SecondaryColor, defaultTheme.SecondaryColor, hexColor},
		{"--color-accent", theme.AccentColor, defaultTheme.AccentColor, hexColor},
		{"--color-background", theme.BackgroundColor, defaultTheme.BackgroundColor, hexColor},
		{"--color-text", theme.TextColor, defaultTheme.TextColor, hexColor},
		{"--font-family", theme.FontFamily, defaultTheme.FontFamily, fontFamily},
	}

	var b strings.Builder
	b.WriteString(":root{")
	for _, v := range vars {
		value := strings.TrimSpace(v.value)
		if !v.valid.MatchString(value) {
			value = v.fallback
		}
		b.WriteString(v.name)
		b.WriteByte(':')
		b.WriteString(value)
		b.WriteByte(';')
	}
	b.WriteString("}")
	return template.CSS(b.String())
}
