package commands

import (
	"strings"

	"github.com/goliatone/go-deck/internal/logging"
	"github.com/goliatone/go-deck/pkg/interfaces"
)

const commandModuleRoot = "deck.commands"

// CommandLogger returns the logger for a command group, named
// deck.commands.<group>. An empty group logs under deck.commands.
func CommandLogger(provider interfaces.LoggerProvider, group string) interfaces.Logger {
	name := commandModuleRoot
	fields := map[string]any{"component": "command"}
	if group = strings.TrimSpace(group); group != "" {
		name += "." + group
		fields["command_group"] = group
	}
	return logging.WithFields(logging.ModuleLogger(provider, name), fields)
}
