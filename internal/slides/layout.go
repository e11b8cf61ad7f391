package slides

// textHeavyThreshold is the body length, in characters, above which a slide
// counts as text heavy. Text heavy slides currently resolve to the default
// layout like every other body slide.
const textHeavyThreshold = 500

// ResolveLayout infers the layout for a slide whose layout was not
// overridden.
func ResolveLayout(slide Slide) Layout {
	if len(slide.Factoids) > 0 {
		return LayoutFactoid
	}
	if len(slide.Body) == 0 && slide.Subtitle == "" {
		return LayoutTitleHero
	}
	if bodyLength(slide.Body) > textHeavyThreshold {
		return LayoutDefault
	}
	return LayoutDefault
}

func bodyLength(body []string) int {
	total := 0
	for _, line := range body {
		total += len(line)
	}
	return total
}

// finalize resolves auto layouts and assigns factoid colors in place.
func finalize(slide *Slide) {
	if slide.Layout == LayoutAuto || slide.Layout == "" {
		slide.Layout = ResolveLayout(*slide)
	}
	for i := range slide.Factoids {
		slide.Factoids[i].Color = FactoidColor(i)
	}
}
