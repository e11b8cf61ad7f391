package render

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"maps"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/goliatone/go-deck/internal/logging"
	"github.com/goliatone/go-deck/internal/slides"
	"github.com/goliatone/go-deck/internal/tokens"
	"github.com/goliatone/go-deck/pkg/interfaces"
)

const deckTemplateName = "deck.html"

//go:embed templates/*.html
var templateFS embed.FS

var ErrNoSlides = errors.New("render: no slides to render")

// HTMLRenderer renders slides into a single self-contained HTML document.
type HTMLRenderer struct {
	tmpl        *template.Template
	templateDir string
	sanitize    bool
	logoURL     string
	title       string
	logger      interfaces.Logger
}

// HTMLOption customises an HTMLRenderer.
type HTMLOption func(*HTMLRenderer)

// WithTemplateDir loads deck.html from dir instead of the embedded template.
func WithTemplateDir(dir string) HTMLOption {
	return func(r *HTMLRenderer) {
		r.templateDir = strings.TrimSpace(dir)
	}
}

// WithSanitize toggles sanitisation of rendered body HTML.
func WithSanitize(enabled bool) HTMLOption {
	return func(r *HTMLRenderer) {
		r.sanitize = enabled
	}
}

// WithLogoURL sets the logo shown in every slide footer.
func WithLogoURL(url string) HTMLOption {
	return func(r *HTMLRenderer) {
		r.logoURL = strings.TrimSpace(url)
	}
}

// WithDocumentTitle sets the HTML document title.
func WithDocumentTitle(title string) HTMLOption {
	return func(r *HTMLRenderer) {
		r.title = strings.TrimSpace(title)
	}
}

// WithHTMLLogger sets the renderer logger.
func WithHTMLLogger(logger interfaces.Logger) HTMLOption {
	return func(r *HTMLRenderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewHTMLRenderer parses the deck template. Sanitisation is on by default.
func NewHTMLRenderer(opts ...HTMLOption) (*HTMLRenderer, error) {
	r := &HTMLRenderer{
		sanitize: true,
		title:    "Presentation",
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	var (
		tmpl *template.Template
		err  error
	)
	if r.templateDir != "" {
		tmpl, err = template.ParseFiles(filepath.Join(r.templateDir, deckTemplateName))
	} else {
		tmpl, err = template.ParseFS(templateFS, "templates/"+deckTemplateName)
	}
	if err != nil {
		return nil, fmt.Errorf("render: parse template: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

type deckView struct {
	Title   string
	Layout  tokens.LayoutSpec
	Vars    []template.CSS
	Zones   []zoneView
	Slides  []slideView
	Total   int
	LogoURL template.URL
}

type zoneView struct {
	Name   string
	X      float64
	Y      float64
	Width  float64
	Height float64
}

type slideView struct {
	Number   int
	Layout   string
	Title    string
	Accent   string
	Subtitle string
	Body     []template.HTML
	Factoids []factoidView
}

type factoidView struct {
	Number   string
	Label    string
	Sublabel string
	Color    template.CSS
}

// Render executes the deck template for the given slides and tokens.
func (r *HTMLRenderer) Render(ctx context.Context, deck []slides.Slide, design tokens.DesignTokens) ([]byte, error) {
	if len(deck) == 0 {
		return nil, ErrNoSlides
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	view, err := r.buildView(deck, design)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, deckTemplateName, view); err != nil {
		return nil, fmt.Errorf("render: execute template: %w", err)
	}
	r.logger.Debug("render.html.completed", "slides", len(deck), "bytes", buf.Len())
	return buf.Bytes(), nil
}

func (r *HTMLRenderer) buildView(deck []slides.Slide, design tokens.DesignTokens) (deckView, error) {
	inline := newInlineRenderer(r.sanitize)
	defaults := tokens.Defaults()

	layout := design.Layout
	if layout.SlideWidth <= 0 || layout.SlideHeight <= 0 {
		layout = tokens.DefaultLayout()
	}

	view := deckView{
		Title:  r.title,
		Layout: layout,
		Vars:   cssVariables(design, defaults),
		Zones:  zoneViews(design.Zones),
		Total:  len(deck),
	}
	if r.logoURL != "" {
		view.LogoURL = template.URL(r.logoURL)
	}

	for i, slide := range deck {
		sv := slideView{
			Number:   i + 1,
			Layout:   string(slide.Layout),
			Title:    slide.Title,
			Accent:   slide.TitleAccent,
			Subtitle: slide.Subtitle,
		}
		for _, line := range slide.Body {
			rendered, err := inline.Render(line)
			if err != nil {
				return deckView{}, err
			}
			sv.Body = append(sv.Body, rendered)
		}
		for _, factoid := range slide.Factoids {
			sv.Factoids = append(sv.Factoids, factoidView{
				Number:   factoid.Number,
				Label:    factoid.Label,
				Sublabel: factoid.Sublabel,
				Color:    template.CSS(cssValue(factoidColor(design, defaults, factoid.Color))),
			})
		}
		view.Slides = append(view.Slides, sv)
	}
	return view, nil
}

// factoidColor resolves factoid_<name>, falling back to the default palette.
func factoidColor(design, defaults tokens.DesignTokens, name string) string {
	key := "factoid_" + name
	return design.Color(key, defaults.Color(key, defaults.Colors["accent_primary"]))
}

func cssVariables(design, defaults tokens.DesignTokens) []template.CSS {
	colors := maps.Clone(defaults.Colors)
	maps.Copy(colors, design.Colors)
	typography := maps.Clone(defaults.Typography)
	maps.Copy(typography, design.Typography)

	vars := make([]template.CSS, 0, len(colors)+len(typography)*5)
	for _, name := range slices.Sorted(maps.Keys(colors)) {
		vars = append(vars, cssVar("color-"+cssIdent(name), cssValue(colors[name])))
	}
	for _, name := range slices.Sorted(maps.Keys(typography)) {
		spec := typography[name]
		prefix := "font-" + cssIdent(name)
		vars = append(vars,
			cssVar(prefix+"-family", cssFontFamily(spec.Family)),
			cssVar(prefix+"-weight", strconv.Itoa(spec.Weight)),
			cssVar(prefix+"-size", formatFloat(spec.Size)+"px"),
			cssVar(prefix+"-line-height", formatFloat(spec.LineHeight)),
			cssVar(prefix+"-letter-spacing", formatFloat(spec.LetterSpacing)+"px"),
		)
	}
	return vars
}

func zoneViews(zones map[string]tokens.Zone) []zoneView {
	out := make([]zoneView, 0, len(zones))
	for _, name := range slices.Sorted(maps.Keys(zones)) {
		zone := zones[name]
		out = append(out, zoneView{
			Name:   cssIdent(name),
			X:      zone.X,
			Y:      zone.Y,
			Width:  zone.Width,
			Height: zone.Height,
		})
	}
	return out
}

func cssVar(name, value string) template.CSS {
	return template.CSS("--" + name + ": " + value + ";")
}

// cssIdent keeps letters, digits, underscores and dashes.
func cssIdent(value string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return -1
		}
	}, value)
}

// cssValue strips characters that could terminate a declaration.
func cssValue(value string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '<', '>', '"', '\'', '\\', '\n', '\r':
			return -1
		default:
			return r
		}
	}, value)
	return strings.TrimSpace(cleaned)
}

func cssFontFamily(family string) string {
	family = strings.TrimSpace(cssValue(family))
	if family == "" {
		family = "Inter"
	}
	return `"` + family + `", sans-serif`
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
