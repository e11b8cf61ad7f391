// Package deck orchestrates deck generation: it strips front matter, resolves
// design tokens, parses slides and hands both to the renderers.
package deck
