package cli

import (
	"os"
	"testing"

	"github.com/agbru/eulercalc/internal/ui"
)

func TestMain(m *testing.M) {
	ui.SetTheme("none")
	os.Exit(m.Run())
}
