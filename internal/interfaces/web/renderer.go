// Package web renders the public marketing site from stored content.
package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/atedres/boldnet-sub000/internal/domain/section"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// sectionView builds the template data of one section type
type sectionView func(ctx context.Context, r *Renderer, src *pageSources, s section.Section) (any, error)

// Renderer turns sections and pages into HTML
type Renderer struct {
	tmpl   *template.Template
	md     goldmark.Markdown
	views  map[string]sectionView
	logger *zap.Logger
}

// NewRenderer parses the embedded templates
func NewRenderer(logger *zap.Logger) (*Renderer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	tmpl, err := template.New("site").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse site templates: %w", err)
	}
	return &Renderer{
		tmpl: tmpl,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
		),
		views:  defaultViews(),
		logger: logger,
	}, nil
}

// Markdown converts markdown to HTML. Raw HTML in the source is escaped.
func (r *Renderer) Markdown(src string) template.HTML {
	if src == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		r.logger.Warn("Markdown conversion failed", zap.Error(err))
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

// Sections renders the visible children in order. Types without a view are
// skipped, as are sections whose data could not be loaded.
func (r *Renderer) Sections(ctx context.Context, src *pageSources, children []section.Section) []template.HTML {
	visible := section.Renderable(children)
	out := make([]template.HTML, 0, len(visible))
	for _, s := range visible {
		view, ok := r.views[s.Type]
		if !ok {
			r.logger.Debug("Skipping section without renderer", zap.String("type", s.Type))
			continue
		}
		data, err := view(ctx, r, src, s)
		if err != nil {
			r.logger.Warn("Skipping section that failed to load",
				zap.String("type", s.Type),
				zap.String("section_id", s.ID.String()),
				zap.Error(err))
			continue
		}
		html, err := r.partial("section-"+s.Type, data)
		if err != nil {
			r.logger.Error("Section template failed", zap.String("type", s.Type), zap.Error(err))
			continue
		}
		out = append(out, html)
	}
	return out
}

// Page writes a full document: the named page template wrapped in the layout
func (r *Renderer) Page(w io.Writer, name string, data any, chrome Chrome) error {
	body, err := r.partial(name, data)
	if err != nil {
		return err
	}
	chrome.Body = body
	return r.tmpl.ExecuteTemplate(w, "layout", chrome)
}

func (r *Renderer) partial(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("execute %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}
