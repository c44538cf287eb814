package cli

import (
	apperrors "github.com/agbru/eulercalc/internal/errors"
	"github.com/agbru/eulercalc/internal/ui"
)

var _ apperrors.ColorProvider = CLIColorProvider{}

// CLIColorProvider implements apperrors.ColorProvider with the active theme.
type CLIColorProvider struct{}

// Yellow returns the warning colour.
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }

// Reset returns the reset code.
func (CLIColorProvider) Reset() string { return ui.ColorReset() }
