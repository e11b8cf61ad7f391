package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/mattn/go-runewidth"

	"github.com/goliatone/go-deck/internal/slides"
)

const summaryTitleWidth = 40

// writeSummary prints one row per slide with display-width aware columns.
func writeSummary(w io.Writer, deck []slides.Slide) {
	header := []string{"#", "LAYOUT", "TITLE", "FACTOIDS"}
	rows := make([][]string, 0, len(deck))
	for i, slide := range deck {
		title := slide.Title
		if slide.TitleAccent != "" {
			title += " " + slide.TitleAccent
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			slide.Layout.String(),
			runewidth.Truncate(title, summaryTitleWidth, "…"),
			strconv.Itoa(len(slide.Factoids)),
		})
	}

	widths := make([]int, len(header))
	for i, cell := range header {
		widths[i] = runewidth.StringWidth(cell)
	}
	for _, row := range rows {
		for i, cell := range row {
			if width := runewidth.StringWidth(cell); width > widths[i] {
				widths[i] = width
			}
		}
	}

	printRow := func(row []string) {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(w, "  ")
			}
			if i == len(row)-1 {
				fmt.Fprint(w, cell)
				continue
			}
			fmt.Fprint(w, runewidth.FillRight(cell, widths[i]))
		}
		fmt.Fprintln(w)
	}

	printRow(header)
	for _, row := range rows {
		printRow(row)
	}
	stats := slides.Summarize(deck)
	fmt.Fprintf(w, "%d slides, %d factoids\n", stats.Slides, stats.Factoids)
}
