package slides

// Stats summarises a parsed deck.
type Stats struct {
	Slides   int            `json:"slides"`
	Factoids int            `json:"factoids"`
	Layouts  map[Layout]int `json:"layouts"`
}

// Summarize counts slides, factoids and slides per layout.
func Summarize(slides []Slide) Stats {
	stats := Stats{
		Slides:  len(slides),
		Layouts: make(map[Layout]int),
	}
	for _, slide := range slides {
		stats.Factoids += len(slide.Factoids)
		stats.Layouts[slide.Layout]++
	}
	return stats
}
