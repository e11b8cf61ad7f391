// Package tokens normalises a design document tree into the flat token table
// used for rendering, and memoises token tables per document.
//
// Normalize never fails. Nodes of unexpected shape contribute nothing and the
// walk continues into their children; empty color or typography tables are
// replaced with built-in defaults.
package tokens
