package slides

import (
	"reflect"
	"strings"
	"testing"
)

const sampleDeck = `# Africa's {accent}$120 Billion{/accent} Dollar Crisis
## The structural USD liquidity deficit

The structural USD liquidity deficit blocking
Sub-Saharan Africa's growth.

**$120B** — Trade finance — gap annually
**34.2%** — CBR decline — (2011-2022)
**$4T** — Trapped in — prefunding

# The Problem
## Why traditional banking fails Africa

Sub-Saharan Africa faces a chronic dollar shortage.

# Our Solution
`

func TestParseSampleDeck(t *testing.T) {
	got := Parse(sampleDeck)
	if len(got) != 3 {
		t.Fatalf("expected 3 slides, got %d", len(got))
	}

	first := got[0]
	if first.Title != "Africa's  Dollar Crisis" {
		t.Fatalf("unexpected title %q", first.Title)
	}
	if first.TitleAccent != "$120 Billion" {
		t.Fatalf("unexpected accent %q", first.TitleAccent)
	}
	if first.Subtitle != "The structural USD liquidity deficit" {
		t.Fatalf("unexpected subtitle %q", first.Subtitle)
	}
	wantBody := []string{"The structural USD liquidity deficit blocking", "Sub-Saharan Africa's growth."}
	if !reflect.DeepEqual(first.Body, wantBody) {
		t.Fatalf("unexpected body %#v", first.Body)
	}
	wantFactoids := []Factoid{
		{Number: "$120B", Label: "Trade finance", Sublabel: "gap annually", Color: "red"},
		{Number: "34.2%", Label: "CBR decline", Sublabel: "(2011-2022)", Color: "yellow"},
		{Number: "$4T", Label: "Trapped in", Sublabel: "prefunding", Color: "cyan"},
	}
	if !reflect.DeepEqual(first.Factoids, wantFactoids) {
		t.Fatalf("unexpected factoids %#v", first.Factoids)
	}
	if first.Layout != LayoutFactoid {
		t.Fatalf("expected factoid layout, got %q", first.Layout)
	}

	if got[1].Layout != LayoutDefault {
		t.Fatalf("expected default layout for body slide, got %q", got[1].Layout)
	}
	if got[2].Title != "Our Solution" || got[2].Layout != LayoutTitleHero {
		t.Fatalf("expected title hero for bare title slide, got %#v", got[2])
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n\t\n"} {
		if got := Parse(input); len(got) != 0 {
			t.Fatalf("expected no slides for %q, got %d", input, len(got))
		}
	}
}

func TestParseAccentTitle(t *testing.T) {
	got := Parse("# Hello {accent}World{/accent}")
	if len(got) != 1 {
		t.Fatalf("expected 1 slide, got %d", len(got))
	}
	if got[0].Title != "Hello" || got[0].TitleAccent != "World" {
		t.Fatalf("unexpected title split: %q / %q", got[0].Title, got[0].TitleAccent)
	}
}

func TestParseOnlyFirstAccentPairIsHonoured(t *testing.T) {
	got := Parse("# {accent}One{/accent} and {accent}Two{/accent}")
	if got[0].TitleAccent != "One" {
		t.Fatalf("expected first accent, got %q", got[0].TitleAccent)
	}
	if got[0].Title != "and {accent}Two{/accent}" {
		t.Fatalf("expected second pair to stay literal, got %q", got[0].Title)
	}
}

func TestParseImplicitSlideFromFactoid(t *testing.T) {
	got := Parse("**$120B** — Trade finance — gap annually")
	if len(got) != 1 {
		t.Fatalf("expected implicit slide, got %d slides", len(got))
	}
	want := Factoid{Number: "$120B", Label: "Trade finance", Sublabel: "gap annually", Color: "red"}
	if len(got[0].Factoids) != 1 || got[0].Factoids[0] != want {
		t.Fatalf("unexpected factoids %#v", got[0].Factoids)
	}
	if got[0].Title != "" {
		t.Fatalf("expected untitled implicit slide, got %q", got[0].Title)
	}
}

func TestParseImplicitSlideIsSharedByLeadingContent(t *testing.T) {
	got := Parse("## Sub\nbody line\n**1** - one\n# Next")
	if len(got) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(got))
	}
	if got[0].Subtitle != "Sub" || len(got[0].Body) != 1 || len(got[0].Factoids) != 1 {
		t.Fatalf("expected leading content on one implicit slide, got %#v", got[0])
	}
}

func TestParseFactoidWithoutSublabel(t *testing.T) {
	got := Parse("**42** – Answers")
	f := got[0].Factoids[0]
	if f.Number != "42" || f.Label != "Answers" || f.Sublabel != "" {
		t.Fatalf("unexpected factoid %#v", f)
	}
}

func TestParseMalformedFactoidFallsBackToBody(t *testing.T) {
	lines := []string{
		"**$120B** Trade finance",
		"$120B — Trade finance",
		"**** — empty number",
	}
	got := Parse(strings.Join(lines, "\n"))
	if len(got[0].Factoids) != 0 {
		t.Fatalf("expected no factoids, got %#v", got[0].Factoids)
	}
	if !reflect.DeepEqual(got[0].Body, lines) {
		t.Fatalf("expected lines to become body text, got %#v", got[0].Body)
	}
}

func TestParseFactoidColorsCycle(t *testing.T) {
	var b strings.Builder
	b.WriteString("# Numbers\n")
	for i := 0; i < 12; i++ {
		b.WriteString("**1** — label\n")
	}
	got := Parse(b.String())
	for i, f := range got[0].Factoids {
		if f.Color != FactoidColors[i%5] {
			t.Fatalf("factoid %d: expected %s, got %s", i, FactoidColors[i%5], f.Color)
		}
	}
}

func TestParseLayoutOverride(t *testing.T) {
	input := strings.Join([]string{
		"--- layout: ignored ---",
		"# First",
		"--- layout: quote ---",
		"# Second",
		"Some text",
		"---",
		"# Third",
		"---layout:hero_image---",
	}, "\n")
	got := Parse(input)
	if len(got) != 3 {
		t.Fatalf("expected 3 slides, got %d", len(got))
	}
	if got[0].Layout != "quote" {
		t.Fatalf("expected override on first slide, got %q", got[0].Layout)
	}
	if got[1].Layout != LayoutDefault {
		t.Fatalf("expected bare separator to be ignored, got %q", got[1].Layout)
	}
	if got[2].Layout != "hero_image" {
		t.Fatalf("expected compact override, got %q", got[2].Layout)
	}
}

func TestParseOverrideBeforeAnySlideDoesNotCreateSlide(t *testing.T) {
	got := Parse("--- layout: factoid ---\nBody")
	if len(got) != 1 {
		t.Fatalf("expected a single implicit slide, got %d", len(got))
	}
	if got[0].Layout != LayoutDefault {
		t.Fatalf("expected dropped override, got %q", got[0].Layout)
	}
}

func TestParseMarkerOnlyDocumentStillYieldsSlide(t *testing.T) {
	got := Parse("---\n--- layout: factoid ---")
	if len(got) != 1 {
		t.Fatalf("expected one slide for non-empty input, got %d", len(got))
	}
	if got[0].Layout != LayoutTitleHero {
		t.Fatalf("expected untouched title hero slide, got %q", got[0].Layout)
	}
}

func TestParseSubtitleLastWins(t *testing.T) {
	got := Parse("# T\n## one\n## two")
	if got[0].Subtitle != "two" {
		t.Fatalf("expected last subtitle to win, got %q", got[0].Subtitle)
	}
}

func TestParseHeadingVariantsFallThrough(t *testing.T) {
	got := Parse("# T\n### deeper\n#nospace\n#")
	want := []string{"### deeper", "#nospace", "#"}
	if !reflect.DeepEqual(got[0].Body, want) {
		t.Fatalf("unexpected body %#v", got[0].Body)
	}
}

func TestParseNeverReturnsAutoLayout(t *testing.T) {
	inputs := []string{
		sampleDeck,
		"plain",
		"# only title",
		"## only subtitle",
		"--- layout: auto ---",
		"# t\n--- layout: auto ---",
		"\r\n# windows\r\nline\r\n",
	}
	for _, input := range inputs {
		for _, slide := range Parse(input) {
			if slide.Layout == LayoutAuto || slide.Layout == "" {
				t.Fatalf("unresolved layout for input %q: %#v", input, slide)
			}
		}
	}
}

func TestParseReturnsIndependentSlices(t *testing.T) {
	first := Parse("# T\nline")
	first[0].Body[0] = "mutated"
	second := Parse("# T\nline")
	if second[0].Body[0] != "line" {
		t.Fatalf("expected fresh slides per parse, got %q", second[0].Body[0])
	}
}

func TestSummarize(t *testing.T) {
	stats := Summarize(Parse(sampleDeck))
	if stats.Slides != 3 || stats.Factoids != 3 {
		t.Fatalf("unexpected stats %#v", stats)
	}
	if stats.Layouts[LayoutFactoid] != 1 || stats.Layouts[LayoutDefault] != 1 || stats.Layouts[LayoutTitleHero] != 1 {
		t.Fatalf("unexpected layout counts %#v", stats.Layouts)
	}
}

func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"   \n\t\n",
		sampleDeck,
		"---\n--- layout: factoid ---",
		"--- layout: auto ---\n# Auto",
		"**$1** — a — b\n**2** - c",
		"# {accent}x{/accent}\n## y\nbody",
		"  ",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, in string) {
		out := Parse(in)
		if blank := strings.TrimSpace(in) == ""; blank != (len(out) == 0) {
			t.Fatalf("input %q: blank=%v but got %d slides", in, blank, len(out))
		}
		for i, slide := range out {
			if slide.Layout == LayoutAuto || slide.Layout == "" {
				t.Fatalf("input %q: slide %d has unresolved layout %q", in, i, slide.Layout)
			}
			for j, factoid := range slide.Factoids {
				if factoid.Color == "" {
					t.Fatalf("input %q: slide %d factoid %d has no color", in, i, j)
				}
			}
		}
	})
}
