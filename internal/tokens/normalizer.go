package tokens

import (
	"fmt"
	"math"
	"strings"
)

const (
	zonePrefix = "Zone/"

	defaultFontFamily        = "Inter"
	defaultFontWeight        = 400
	defaultFontSize          = 16
	defaultLineHeightPercent = 140
)

var styleNameReplacer = strings.NewReplacer("/", "_", " ", "_")

// Normalize walks the document tree rooted at root and extracts named colors,
// text styles and layout zones. Empty color and typography tables are filled
// with defaults; Layout is always DefaultLayout.
func Normalize(root *Node, styles map[string]PublishedStyle) DesignTokens {
	out := DesignTokens{
		Colors:     map[string]string{},
		Typography: map[string]TypographySpec{},
		Layout:     DefaultLayout(),
		Zones:      map[string]Zone{},
	}

	walk(root, func(node *Node) {
		collectZone(out.Zones, node)
		collectColors(out.Colors, node, styles)
		collectTypography(out.Typography, node, styles)
	})

	if len(out.Colors) == 0 {
		out.Colors = DefaultColors()
	}
	if len(out.Typography) == 0 {
		out.Typography = DefaultTypography()
	}
	return out
}

// walk visits the tree depth first in pre-order using an explicit stack.
func walk(root *Node, visit func(*Node)) {
	if root == nil {
		return
	}
	stack := []*Node{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		visit(node)

		for i := len(node.Children) - 1; i >= 0; i-- {
			if child := node.Children[i]; child != nil {
				stack = append(stack, child)
			}
		}
	}
}

func collectZone(zones map[string]Zone, node *Node) {
	if node.Type != NodeTypeFrame || !strings.HasPrefix(node.Name, zonePrefix) {
		return
	}
	name := strings.TrimPrefix(node.Name, zonePrefix)
	if idx := strings.IndexByte(name, '/'); idx >= 0 {
		name = name[:idx]
	}

	var zone Zone
	if box := node.AbsoluteBoundingBox; box != nil {
		zone = Zone{X: box.X, Y: box.Y, Width: box.Width, Height: box.Height}
	}
	zones[strings.ToLower(name)] = zone
}

func collectColors(colors map[string]string, node *Node, styles map[string]PublishedStyle) {
	if len(node.Fills) == 0 {
		return
	}
	name := resolveStyleName(styles, node.Styles.Fill)
	if name == "" {
		return
	}
	for _, paint := range node.Fills {
		if paint.Type != PaintSolid {
			continue
		}
		colors[name] = HexColor(paint.Color)
	}
}

func collectTypography(typography map[string]TypographySpec, node *Node, styles map[string]PublishedStyle) {
	if node.Type != NodeTypeText || node.Style == nil {
		return
	}
	name := resolveStyleName(styles, node.Styles.Text)
	if name == "" {
		return
	}
	typography[name] = typographyFromStyle(node.Style)
}

func typographyFromStyle(style *TextStyle) TypographySpec {
	spec := TypographySpec{
		Family:     defaultFontFamily,
		Weight:     defaultFontWeight,
		Size:       defaultFontSize,
		LineHeight: defaultLineHeightPercent / 100.0,
	}
	if style.FontFamily != nil {
		spec.Family = *style.FontFamily
	}
	if style.FontWeight != nil {
		spec.Weight = int(math.Round(*style.FontWeight))
	}
	if style.FontSize != nil {
		spec.Size = *style.FontSize
	}
	if style.LineHeightPercentFontSize != nil {
		spec.LineHeight = *style.LineHeightPercentFontSize / 100
	}
	if style.LetterSpacing != nil {
		spec.LetterSpacing = *style.LetterSpacing
	}
	return spec
}

// resolveStyleName looks up a published style and returns its normalised
// name, or "" when the reference is missing or unnamed.
func resolveStyleName(styles map[string]PublishedStyle, id string) string {
	if id == "" {
		return ""
	}
	style, ok := styles[id]
	if !ok {
		return ""
	}
	return NormalizeStyleName(style.Name)
}

// NormalizeStyleName lowercases a style name and replaces slashes and spaces
// with underscores.
func NormalizeStyleName(name string) string {
	return styleNameReplacer.Replace(strings.ToLower(name))
}

// HexColor converts normalised RGB channels into a lowercase #rrggbb string.
// A nil color is black.
func HexColor(c *Color) string {
	if c == nil {
		return "#000000"
	}
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

func channel(value float64) int {
	if math.IsNaN(value) {
		return 0
	}
	v := math.Round(value * 255)
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return int(v)
	}
}
