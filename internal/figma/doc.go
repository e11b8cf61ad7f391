// Package figma fetches design documents from the Figma REST API and turns
// them into design tokens. Source layers the token cache on top of Client and
// downgrades every fetch failure to the built-in defaults.
package figma
