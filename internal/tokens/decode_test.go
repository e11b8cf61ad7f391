package tokens

import (
	"encoding/json"
	"testing"
)

func TestNodeDecodeToleratesMistypedFields(t *testing.T) {
	const document = `{
		"name": "Document",
		"type": "DOCUMENT",
		"children": [
			{
				"name": "Zone/header",
				"type": "FRAME",
				"absoluteBoundingBox": {"x": 0, "y": 0, "width": 1920, "height": 120}
			},
			{
				"name": "Heading",
				"type": "TEXT",
				"styles": {"text": 7},
				"style": {"fontWeight": "bold", "fontSize": 48}
			},
			{
				"name": "Swatch",
				"type": "RECTANGLE",
				"fills": ["solid", {"type": "SOLID", "color": {"r": "max", "g": 1, "b": 0, "a": 1}}]
			},
			{
				"name": ["not", "a", "string"],
				"type": "FRAME",
				"absoluteBoundingBox": "wide",
				"children": [{"name": "Zone/footer", "type": "FRAME", "absoluteBoundingBox": {"width": 1920, "height": 80}}]
			},
			"stray",
			null
		]
	}`

	var root Node
	if err := json.Unmarshal([]byte(document), &root); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	if len(root.Children) != 4 {
		t.Fatalf("expected non-object children to be dropped, got %d", len(root.Children))
	}

	heading := root.Children[1]
	if heading.Style == nil || heading.Style.FontWeight != nil || heading.Style.FontSize == nil || *heading.Style.FontSize != 48 {
		t.Fatalf("unexpected heading style %#v", heading.Style)
	}
	if heading.Styles.Text != "" {
		t.Fatalf("expected mistyped style ref to be ignored, got %q", heading.Styles.Text)
	}

	swatch := root.Children[2]
	if len(swatch.Fills) != 1 || swatch.Fills[0].Color == nil || swatch.Fills[0].Color.R != 0 || swatch.Fills[0].Color.G != 1 {
		t.Fatalf("unexpected swatch fills %#v", swatch.Fills)
	}

	odd := root.Children[3]
	if odd.Name != "" || odd.AbsoluteBoundingBox != nil || len(odd.Children) != 1 {
		t.Fatalf("unexpected odd node %#v", odd)
	}

	zones := Normalize(&root, nil).Zones
	if zones["header"] != (Zone{Width: 1920, Height: 120}) || zones["footer"] != (Zone{Width: 1920, Height: 80}) {
		t.Fatalf("expected zones from well-formed nodes, got %#v", zones)
	}
}
