package slides

// Layout names the presentation template a slide is rendered with.
type Layout string

const (
	// LayoutAuto marks a slide whose layout is inferred after parsing. It is
	// never present on returned slides.
	LayoutAuto      Layout = "auto"
	LayoutDefault   Layout = "default"
	LayoutTitleHero Layout = "title_hero"
	LayoutFactoid   Layout = "factoid"
)

// String implements fmt.Stringer.
func (l Layout) String() string { return string(l) }

// IsBuiltin reports whether the layout is one of the inferred layouts rather
// than a custom override.
func (l Layout) IsBuiltin() bool {
	switch l {
	case LayoutDefault, LayoutTitleHero, LayoutFactoid:
		return true
	default:
		return false
	}
}

// FactoidColors is the palette factoids cycle through by position.
var FactoidColors = [...]string{"red", "yellow", "cyan", "green", "purple"}

// Slide is one presentation unit.
type Slide struct {
	Title       string    `json:"title"`
	TitleAccent string    `json:"title_accent,omitempty"`
	Subtitle    string    `json:"subtitle,omitempty"`
	Body        []string  `json:"body,omitempty"`
	Factoids    []Factoid `json:"factoids,omitempty"`
	Layout      Layout    `json:"layout"`
}

// Factoid is a highlighted statistic within a slide.
type Factoid struct {
	Number   string `json:"number"`
	Label    string `json:"label"`
	Sublabel string `json:"sublabel,omitempty"`
	Color    string `json:"color"`
}

// FactoidColor returns the palette color for the factoid at index.
func FactoidColor(index int) string {
	if index < 0 {
		index = -index
	}
	return FactoidColors[index%len(FactoidColors)]
}
