// Package http exposes deck generation over HTTP using a chi router.
//
// Routes:
//   - GET  /                  upload form
//   - POST /generate          markdown form field (or JSON body) to PDF or HTML
//   - POST /preview           parsed slides, stats and tokens as JSON
//   - POST /tokens/invalidate drop cached design tokens (204)
//   - GET  /healthz           liveness probe
//   - GET  /static/*          files from the configured static directory
package http
