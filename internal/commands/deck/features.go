package deckcmd

// FeatureGates exposes runtime feature toggles required by deck command handlers.
// Callers supply closures that read from the runtime config so handlers stay
// decoupled from configuration.
type FeatureGates struct {
	PDFEnabled func() bool
}

func (g FeatureGates) pdfEnabled() bool {
	if g.PDFEnabled == nil {
		return true
	}
	return g.PDFEnabled()
}
