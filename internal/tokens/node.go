package tokens

// Node is one element of a design document tree. Optional data is modelled
// with nil pointers and empty values; JSON tags follow the Figma file API.
type Node struct {
	ID                  string       `json:"id,omitempty"`
	Name                string       `json:"name"`
	Type                string       `json:"type"`
	Fills               []Paint      `json:"fills,omitempty"`
	Style               *TextStyle   `json:"style,omitempty"`
	Styles              StyleRefs    `json:"styles,omitempty"`
	AbsoluteBoundingBox *BoundingBox `json:"absoluteBoundingBox,omitempty"`
	Children            []*Node      `json:"children,omitempty"`
}

// Node types the normaliser reacts to.
const (
	NodeTypeFrame = "FRAME"
	NodeTypeText  = "TEXT"
	PaintSolid    = "SOLID"
)

// Paint is a fill descriptor.
type Paint struct {
	Type  string `json:"type"`
	Color *Color `json:"color,omitempty"`
}

// Color holds normalised [0,1] channels.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// TextStyle is inline text formatting. Absent fields stay nil.
type TextStyle struct {
	FontFamily                *string  `json:"fontFamily,omitempty"`
	FontWeight                *float64 `json:"fontWeight,omitempty"`
	FontSize                  *float64 `json:"fontSize,omitempty"`
	LineHeightPercentFontSize *float64 `json:"lineHeightPercentFontSize,omitempty"`
	LetterSpacing             *float64 `json:"letterSpacing,omitempty"`
}

// StyleRefs references published styles by role. Empty strings mean no reference.
type StyleRefs struct {
	Fill string `json:"fill,omitempty"`
	Text string `json:"text,omitempty"`
}

// BoundingBox is an absolute rectangle.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PublishedStyle is a named reusable style referenced from nodes.
type PublishedStyle struct {
	Key         string `json:"key,omitempty"`
	Name        string `json:"name"`
	StyleType   string `json:"styleType,omitempty"`
	Description string `json:"description,omitempty"`
}
