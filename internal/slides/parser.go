package slides

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-deck/pkg/interfaces"
)

var (
	layoutOverridePattern = regexp.MustCompile(`^---\s*layout:\s*([\p{L}\p{N}_]+)\s*---`)
	factoidPattern        = regexp.MustCompile(`^\*\*([^*]+)\*\*\s*[—–-]\s*(.+?)(?:\s*[—–-]\s*(.+))?$`)
	accentPattern         = regexp.MustCompile(`\{accent\}(.+?)\{/accent\}`)
)

const (
	layoutPrefix   = "---"
	titlePrefix    = "# "
	subtitlePrefix = "## "
)

// Parser converts deck Markdown into slides. The zero value is ready to use.
type Parser struct {
	logger interfaces.Logger
}

// ParserOption customises a Parser.
type ParserOption func(*Parser)

// WithLogger attaches a logger used for per-parse debug summaries.
func WithLogger(logger interfaces.Logger) ParserOption {
	return func(p *Parser) {
		p.logger = logger
	}
}

// NewParser constructs a Parser.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Parse converts markdown into slides using a default Parser.
func Parse(markdown string) []Slide {
	return NewParser().Parse(markdown)
}

// Parse splits markdown into slides. Blank input yields no slides; any other
// input yields at least one. Every returned slide has a resolved layout and
// every factoid a color.
func (p *Parser) Parse(markdown string) []Slide {
	trimmed := strings.TrimSpace(markdown)
	if trimmed == "" {
		return nil
	}

	state := &parseState{}
	for _, raw := range strings.Split(trimmed, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		for _, rule := range lineRules {
			if rule.apply(state, line) {
				break
			}
		}
	}

	if len(state.slides) == 0 {
		// only layout markers were present
		state.slides = append(state.slides, &Slide{Layout: LayoutAuto})
	}

	out := make([]Slide, 0, len(state.slides))
	for _, slide := range state.slides {
		finalize(slide)
		out = append(out, *slide)
	}

	if p != nil && p.logger != nil {
		stats := Summarize(out)
		p.logger.Debug("slides.parse.completed",
			"slides", stats.Slides,
			"factoids", stats.Factoids,
		)
	}
	return out
}

type parseState struct {
	slides  []*Slide
	current *Slide
}

func (s *parseState) open(slide *Slide) *Slide {
	s.slides = append(s.slides, slide)
	s.current = slide
	return slide
}

// ensureCurrent returns the current slide, opening an untitled one when the
// document has not started a slide yet.
func (s *parseState) ensureCurrent() *Slide {
	if s.current == nil {
		return s.open(&Slide{Layout: LayoutAuto})
	}
	return s.current
}

// lineRule classifies a single trimmed, non-blank line. apply reports
// whether the line was consumed.
type lineRule struct {
	name  string
	apply func(state *parseState, line string) bool
}

// lineRules are evaluated in order; the first rule that consumes a line wins.
var lineRules = []lineRule{
	{name: "layout", apply: applyLayoutOverride},
	{name: "title", apply: applyTitle},
	{name: "subtitle", apply: applySubtitle},
	{name: "factoid", apply: applyFactoid},
	{name: "body", apply: applyBody},
}

func applyLayoutOverride(state *parseState, line string) bool {
	if !strings.HasPrefix(line, layoutPrefix) {
		return false
	}
	if match := layoutOverridePattern.FindStringSubmatch(line); match != nil && state.current != nil {
		state.current.Layout = Layout(match[1])
	}
	return true
}

func applyTitle(state *parseState, line string) bool {
	if !strings.HasPrefix(line, titlePrefix) {
		return false
	}
	title, accent := splitAccent(strings.TrimSpace(line[len(titlePrefix):]))
	state.open(&Slide{
		Title:       title,
		TitleAccent: accent,
		Layout:      LayoutAuto,
	})
	return true
}

func applySubtitle(state *parseState, line string) bool {
	if !strings.HasPrefix(line, subtitlePrefix) {
		return false
	}
	state.ensureCurrent().Subtitle = strings.TrimSpace(line[len(subtitlePrefix):])
	return true
}

func applyFactoid(state *parseState, line string) bool {
	match := factoidPattern.FindStringSubmatch(line)
	if match == nil {
		return false
	}
	slide := state.ensureCurrent()
	slide.Factoids = append(slide.Factoids, Factoid{
		Number:   match[1],
		Label:    match[2],
		Sublabel: match[3],
	})
	return true
}

func applyBody(state *parseState, line string) bool {
	slide := state.ensureCurrent()
	slide.Body = append(slide.Body, line)
	return true
}

// splitAccent extracts the first {accent}...{/accent} span from a raw title.
// Later spans are left as literal text.
func splitAccent(raw string) (title, accent string) {
	loc := accentPattern.FindStringSubmatchIndex(raw)
	if loc == nil {
		return raw, ""
	}
	accent = raw[loc[2]:loc[3]]
	title = strings.TrimSpace(raw[:loc[0]] + raw[loc[1]:])
	return title, accent
}
