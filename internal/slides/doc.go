// Package slides turns the deck Markdown dialect into an ordered list of
// slides.
//
// The dialect is line oriented:
//
//	# Title with {accent}emphasis{/accent}   starts a slide
//	## Subtitle                              sets the current slide subtitle
//	**$120B** — Label — sublabel             appends a factoid
//	--- layout: factoid ---                  overrides the current slide layout
//	anything else                            appends a body line
//
// Parsing never fails. Lines that do not match a stronger form fall through
// to body text, and content that arrives before the first title opens an
// untitled slide.
package slides
