package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/agbru/eulercalc/internal/config"
	"github.com/agbru/eulercalc/internal/euler"
)

func TestPrintExecutionConfig(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		cfg  config.AppConfig
		want []string
	}{
		{"Compute", config.AppConfig{Digits: 5000, Timeout: time.Minute}, []string{"to 5,000 decimal places (truncated)", "1m0s", "logical processors"}},
		{"Rounded", config.AppConfig{Digits: 10, Round: true, Timeout: time.Minute}, []string{"(rounded)"}},
		{"Sweep", config.AppConfig{Digits: 10, SweepTo: 5000, Timeout: time.Minute}, []string{"from 1 to 5,000 decimal places"}},
		{"Details", config.AppConfig{Digits: 10, Timeout: time.Minute, Details: true}, []string{"CPU: "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			PrintExecutionConfig(tt.cfg, &buf)
			for _, s := range tt.want {
				if !strings.Contains(buf.String(), s) {
					t.Errorf("output should contain %q:\n%s", s, buf.String())
				}
			}
		})
	}
}

func TestPrintExecutionMode(t *testing.T) {
	t.Parallel()
	single := []euler.Calculator{euler.NewCalculator(&euler.SeriesCalculator{})}
	all := append(single, euler.NewCalculator(&euler.BinarySplittingCalculator{}))

	var buf bytes.Buffer
	PrintExecutionMode(single, &buf)
	if !strings.Contains(buf.String(), "Single calculation with the Taylor Series (digit array) algorithm") {
		t.Errorf("output = %q", buf.String())
	}

	buf.Reset()
	PrintExecutionMode(all, &buf)
	if !strings.Contains(buf.String(), "Parallel comparison") {
		t.Errorf("output = %q", buf.String())
	}

	buf.Reset()
	PrintExecutionMode(nil, &buf)
	if !strings.Contains(buf.String(), "No algorithm selected") {
		t.Errorf("output = %q", buf.String())
	}
}
