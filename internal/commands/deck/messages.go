package deckcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-deck/internal/deck"
)

const (
	generateDeckMessageType     = "deck.generate"
	invalidateTokensMessageType = "deck.tokens.invalidate"
)

// GenerateDeckCommand renders Markdown into an HTML or PDF deck.
type GenerateDeckCommand struct {
	// Markdown is the deck source, optionally opening with YAML front matter.
	Markdown string `json:"markdown"`
	// FileKey selects the design document. Empty uses the configured default.
	FileKey string `json:"file_key,omitempty"`
	// Format is "pdf" (default) or "html".
	Format string `json:"format,omitempty"`
	// Result receives the generated deck when non-nil.
	Result *deck.Result `json:"-"`
}

// Type implements command.Message.
func (GenerateDeckCommand) Type() string { return generateDeckMessageType }

// Validate ensures Markdown is present and the format is supported.
func (cmd GenerateDeckCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Markdown, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("deck.generate.markdown_required", "markdown is required")
			}
			return nil
		})),
		validation.Field(&cmd.Format, validation.By(func(value any) error {
			if _, err := deck.ParseFormat(value.(string)); err != nil {
				return validation.NewError("deck.generate.format_invalid", "format must be pdf or html")
			}
			return nil
		})),
	)
}

// InvalidateTokensCommand drops cached design tokens. An empty FileKeys list
// clears the whole cache.
type InvalidateTokensCommand struct {
	FileKeys []string `json:"file_keys,omitempty"`
}

// Type implements command.Message.
func (InvalidateTokensCommand) Type() string { return invalidateTokensMessageType }

// Validate rejects blank keys.
func (cmd InvalidateTokensCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.FileKeys, validation.Each(validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("deck.tokens.invalidate.key_blank", "file keys cannot be blank")
			}
			return nil
		}))),
	)
}
