// Package render turns parsed slides and design tokens into an HTML deck and
// rasterises that deck into a PDF through headless Chrome.
package render
