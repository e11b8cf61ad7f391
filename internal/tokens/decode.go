package tokens

import "encoding/json"

// Design documents are decoded field by field. A field whose JSON type does
// not match keeps its zero value, so one odd node never discards the tree.

// UnmarshalJSON decodes a node leniently. Children and fills that are not
// JSON objects are dropped.
func (n *Node) UnmarshalJSON(data []byte) error {
	fields, ok := objectFields(data)
	if !ok {
		return nil
	}
	*n = Node{}
	decodeField(fields, "id", &n.ID)
	decodeField(fields, "name", &n.Name)
	decodeField(fields, "type", &n.Type)
	decodeField(fields, "styles", &n.Styles)
	if raw, ok := fields["style"]; ok {
		if _, isObject := objectFields(raw); isObject {
			style := &TextStyle{}
			_ = style.UnmarshalJSON(raw)
			n.Style = style
		}
	}
	if raw, ok := fields["absoluteBoundingBox"]; ok {
		if _, isObject := objectFields(raw); isObject {
			box := &BoundingBox{}
			_ = box.UnmarshalJSON(raw)
			n.AbsoluteBoundingBox = box
		}
	}
	for _, raw := range rawArray(fields["fills"]) {
		if _, isObject := objectFields(raw); !isObject {
			continue
		}
		var paint Paint
		_ = paint.UnmarshalJSON(raw)
		n.Fills = append(n.Fills, paint)
	}
	for _, raw := range rawArray(fields["children"]) {
		if _, isObject := objectFields(raw); !isObject {
			continue
		}
		child := &Node{}
		_ = child.UnmarshalJSON(raw)
		n.Children = append(n.Children, child)
	}
	return nil
}

// UnmarshalJSON decodes a paint, zeroing fields of the wrong type.
func (p *Paint) UnmarshalJSON(data []byte) error {
	fields, ok := objectFields(data)
	if !ok {
		return nil
	}
	*p = Paint{}
	decodeField(fields, "type", &p.Type)
	if raw, ok := fields["color"]; ok {
		if _, isObject := objectFields(raw); isObject {
			color := &Color{}
			_ = color.UnmarshalJSON(raw)
			p.Color = color
		}
	}
	return nil
}

// UnmarshalJSON decodes colour channels, zeroing channels of the wrong type.
func (c *Color) UnmarshalJSON(data []byte) error {
	fields, ok := objectFields(data)
	if !ok {
		return nil
	}
	*c = Color{}
	decodeField(fields, "r", &c.R)
	decodeField(fields, "g", &c.G)
	decodeField(fields, "b", &c.B)
	decodeField(fields, "a", &c.A)
	return nil
}

// UnmarshalJSON decodes text style fields. Mistyped fields stay nil.
func (s *TextStyle) UnmarshalJSON(data []byte) error {
	fields, ok := objectFields(data)
	if !ok {
		return nil
	}
	*s = TextStyle{}
	s.FontFamily = optionalField[string](fields, "fontFamily")
	s.FontWeight = optionalField[float64](fields, "fontWeight")
	s.FontSize = optionalField[float64](fields, "fontSize")
	s.LineHeightPercentFontSize = optionalField[float64](fields, "lineHeightPercentFontSize")
	s.LetterSpacing = optionalField[float64](fields, "letterSpacing")
	return nil
}

// UnmarshalJSON decodes style references, ignoring non-string ids.
func (r *StyleRefs) UnmarshalJSON(data []byte) error {
	fields, ok := objectFields(data)
	if !ok {
		return nil
	}
	*r = StyleRefs{}
	decodeField(fields, "fill", &r.Fill)
	decodeField(fields, "text", &r.Text)
	return nil
}

// UnmarshalJSON decodes a rectangle, zeroing fields of the wrong type.
func (b *BoundingBox) UnmarshalJSON(data []byte) error {
	fields, ok := objectFields(data)
	if !ok {
		return nil
	}
	*b = BoundingBox{}
	decodeField(fields, "x", &b.X)
	decodeField(fields, "y", &b.Y)
	decodeField(fields, "width", &b.Width)
	decodeField(fields, "height", &b.Height)
	return nil
}

func objectFields(data []byte) (map[string]json.RawMessage, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return nil, false
	}
	return fields, true
}

func rawArray(data json.RawMessage) []json.RawMessage {
	if len(data) == 0 {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}
	return items
}

func decodeField[T any](fields map[string]json.RawMessage, key string, dst *T) {
	raw, ok := fields[key]
	if !ok {
		return
	}
	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		return
	}
	*dst = value
}

func optionalField[T any](fields map[string]json.RawMessage, key string) *T {
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return nil
	}
	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil
	}
	return &value
}
