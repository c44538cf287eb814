package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agbru/eulercalc/internal/reference"
)

// GoldenData represents a single test case in the golden file
type GoldenData struct {
	Places int    `json:"places"`
	Round  bool   `json:"round"`
	Result string `json:"result"`
}

// targets covers the first digits, the precisions where rounding carries
// over several nines (35, 47..51, 117, 225, 300) and a few larger ones.
var targets = []int{
	1, 2, 3, 5, 10, 35, 47, 48, 49, 51,
	100, 117, 225, 300, 500, 1000,
}

func main() {
	outputDir := flag.String("out", "internal/euler/testdata", "Output directory for the golden file")
	referencePath := flag.String("reference", "", "Control file with the reference expansion (default: embedded)")
	flag.Parse()

	data, err := generate(reference.NewOracle(reference.SourceFor(*referencePath)), targets)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating golden data: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}
	filename := filepath.Join(*outputDir, "euler_golden.json")
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully generated golden file at %s\n", filename)
}

// generate builds the truncated and rounded expansions of every target from
// the reference alone, without any calculator.
func generate(oracle *reference.Oracle, places []int) ([]GoldenData, error) {
	data := make([]GoldenData, 0, 2*len(places))
	for _, p := range places {
		// One extra digit decides the rounding: e is irrational, so the
		// tail after it is never exactly zero.
		s, err := oracle.Fetch(p + 3)
		if err != nil {
			return nil, err
		}
		truncated := s[:p+2]
		data = append(data,
			GoldenData{Places: p, Round: false, Result: truncated},
			GoldenData{Places: p, Round: true, Result: roundHalfUp(truncated, s[p+2])},
		)
	}
	return data, nil
}

// roundHalfUp rounds the decimal string s using the next digit.
func roundHalfUp(s string, next byte) string {
	if next < '5' {
		return s
	}
	b := []byte(s)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] == '.' {
			continue
		}
		if b[i] < '9' {
			b[i]++
			return string(b)
		}
		b[i] = '0'
	}
	return "1" + string(b)
}
