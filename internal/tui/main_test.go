package tui

import (
	"os"
	"testing"

	"github.com/agbru/eulercalc/internal/ui"
)

func TestMain(m *testing.M) {
	ui.SetTheme("none")
	initTUIStyles()
	os.Exit(m.Run())
}
