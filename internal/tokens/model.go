package tokens

import "maps"

// DesignTokens is the flat token table consumed by rendering.
type DesignTokens struct {
	Colors     map[string]string         `json:"colors"`
	Typography map[string]TypographySpec `json:"typography"`
	Layout     LayoutSpec                `json:"layout"`
	Zones      map[string]Zone           `json:"zones"`
}

// TypographySpec describes one named text style.
type TypographySpec struct {
	Family        string  `json:"family"`
	Weight        int     `json:"weight"`
	Size          float64 `json:"size"`
	LineHeight    float64 `json:"line_height"`
	LetterSpacing float64 `json:"letter_spacing"`
}

// LayoutSpec holds slide dimensions in pixels.
type LayoutSpec struct {
	SlideWidth   float64 `json:"slide_width"`
	SlideHeight  float64 `json:"slide_height"`
	Margin       float64 `json:"margin"`
	FooterHeight float64 `json:"footer_height,omitempty"`
	FooterY      float64 `json:"footer_y,omitempty"`
}

// Zone is a named absolute region of a slide.
type Zone struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Clone returns a deep copy of the token table.
func (t DesignTokens) Clone() DesignTokens {
	return DesignTokens{
		Colors:     cloneOrEmpty(t.Colors),
		Typography: cloneOrEmpty(t.Typography),
		Layout:     t.Layout,
		Zones:      cloneOrEmpty(t.Zones),
	}
}

// Color returns the named color, or fallback when it is not defined.
func (t DesignTokens) Color(name, fallback string) string {
	if value, ok := t.Colors[name]; ok && value != "" {
		return value
	}
	return fallback
}

func cloneOrEmpty[V any](in map[string]V) map[string]V {
	if in == nil {
		return map[string]V{}
	}
	return maps.Clone(in)
}

// DefaultLayout returns the fixed slide geometry.
func DefaultLayout() LayoutSpec {
	return LayoutSpec{
		SlideWidth:   1920,
		SlideHeight:  1080,
		Margin:       64,
		FooterHeight: 40,
		FooterY:      1016,
	}
}

// DefaultColors returns the palette used when a document yields no named colors.
func DefaultColors() map[string]string {
	return map[string]string{
		"background":     "#2c2c2c",
		"text_primary":   "#f5f5f5",
		"text_muted":     "rgba(255,255,255,0.6)",
		"border":         "#383838",
		"accent_primary": "#4F9EF8",
		"factoid_red":    "#E85D5D",
		"factoid_yellow": "#F0A500",
		"factoid_cyan":   "#4DD0E1",
	}
}

// DefaultTypography returns the text styles used when a document yields none.
func DefaultTypography() map[string]TypographySpec {
	return map[string]TypographySpec{
		"title_hero":     {Family: "Inter", Weight: 800, Size: 88, LineHeight: 1.1, LetterSpacing: -2.5},
		"subtitle":       {Family: "Inter", Weight: 400, Size: 26, LineHeight: 1.55, LetterSpacing: 0},
		"body":           {Family: "Inter", Weight: 400, Size: 16, LineHeight: 1.4, LetterSpacing: 0},
		"factoid_number": {Family: "Inter", Weight: 800, Size: 72, LineHeight: 1.0, LetterSpacing: -2},
		"factoid_label":  {Family: "Inter", Weight: 500, Size: 18, LineHeight: 1.4, LetterSpacing: 0},
	}
}

// Defaults returns the complete token table used when no design document is
// available. Its palette also covers the green and purple factoid colors.
func Defaults() DesignTokens {
	colors := DefaultColors()
	colors["factoid_green"] = "#14ae5c"
	colors["factoid_purple"] = "#A78BFA"
	return DesignTokens{
		Colors:     colors,
		Typography: DefaultTypography(),
		Layout:     DefaultLayout(),
		Zones:      map[string]Zone{},
	}
}
