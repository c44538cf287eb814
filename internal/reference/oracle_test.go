package reference

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	apperrors "github.com/agbru/eulercalc/internal/errors"
)

const e30 = "2.718281828459045235360287471352"

// countingSource serves text split into lines and counts Open calls.
type countingSource struct {
	text  string
	opens atomic.Int32
}

func (s *countingSource) Open() (io.ReadCloser, error) {
	s.opens.Add(1)
	return io.NopCloser(strings.NewReader(s.text)), nil
}

func (s *countingSource) Name() string { return "test" }

func lines(s string, width int) string {
	var b strings.Builder
	for len(s) > width {
		b.WriteString(s[:width])
		b.WriteByte('\n')
		s = s[width:]
	}
	b.WriteString(s)
	b.WriteByte('\n')
	return b.String()
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "e.txt")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFetchStripsLineBreaks(t *testing.T) {
	t.Parallel()
	o := NewOracle(FileSource{Path: writeTemp(t, lines(e30, 7))})
	for _, n := range []int{1, 2, 3, 7, 8, 15, len(e30)} {
		got, err := o.Fetch(n)
		if err != nil {
			t.Fatalf("Fetch(%d): %v", n, err)
		}
		if got != e30[:n] {
			t.Errorf("Fetch(%d) = %q, want %q", n, got, e30[:n])
		}
	}
}

func TestFetchHandlesCRLF(t *testing.T) {
	t.Parallel()
	o := NewOracle(FileSource{Path: writeTemp(t, strings.ReplaceAll(lines(e30, 10), "\n", "\r\n"))})
	got, err := o.Fetch(len(e30))
	if err != nil {
		t.Fatal(err)
	}
	if got != e30 {
		t.Errorf("Fetch = %q, want %q", got, e30)
	}
}

func TestFetchSingleLongLine(t *testing.T) {
	t.Parallel()
	flat := strings.ReplaceAll(embeddedExpansion, "\n", "")
	long := flat[:200_002]
	o := NewOracle(&countingSource{text: long + "\r\n"})

	got, err := o.Fetch(100)
	if err != nil {
		t.Fatalf("Fetch(100) error = %v", err)
	}
	if got != flat[:100] {
		t.Errorf("Fetch(100) = %q, want %q", got, flat[:100])
	}
	got, err = o.Fetch(len(long))
	if err != nil {
		t.Fatalf("Fetch(%d) error = %v", len(long), err)
	}
	if got != long {
		t.Error("Fetch of the whole line does not match the source")
	}
	if _, err := o.Fetch(len(long) + 1); !errors.Is(err, apperrors.ErrOutOfRange) {
		t.Errorf("Fetch past the line error = %v, want ErrOutOfRange", err)
	}
}

func TestFetchOutOfRange(t *testing.T) {
	t.Parallel()
	o := NewOracle(&countingSource{text: lines(e30, 8)})
	for _, n := range []int{0, -1, len(e30) + 1} {
		_, err := o.Fetch(n)
		if !errors.Is(err, apperrors.ErrOutOfRange) {
			t.Errorf("Fetch(%d) error = %v, want ErrOutOfRange", n, err)
		}
		if errors.Is(err, apperrors.ErrReferenceUnavailable) {
			t.Errorf("Fetch(%d) should not report ErrReferenceUnavailable", n)
		}
	}
}

func TestFetchUnavailable(t *testing.T) {
	t.Parallel()
	o := NewOracle(FileSource{Path: filepath.Join(t.TempDir(), "missing.txt")})
	_, err := o.Fetch(10)
	if !errors.Is(err, apperrors.ErrReferenceUnavailable) {
		t.Fatalf("error = %v, want ErrReferenceUnavailable", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error = %v, want it to wrap fs.ErrNotExist", err)
	}
	if errors.Is(err, apperrors.ErrOutOfRange) {
		t.Error("a missing file is not ErrOutOfRange")
	}
}

func TestFetchMalformed(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"empty":          "",
		"wrong integer":  "3.1415926\n",
		"missing point":  "27182818\n",
		"separator":      "2.718 281\n",
		"letter in body": "2.71828\n18x84\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			o := NewOracle(&countingSource{text: content})
			_, err := o.Fetch(12)
			if !errors.Is(err, apperrors.ErrReferenceUnavailable) {
				t.Errorf("error = %v, want ErrReferenceUnavailable", err)
			}
		})
	}
}

func TestCacheNeverTruncatesLongerRequest(t *testing.T) {
	t.Parallel()
	src := &countingSource{text: lines(e30, 5)}
	o := NewOracle(src)

	short, err := o.Fetch(3)
	if err != nil {
		t.Fatal(err)
	}
	if short != "2.7" {
		t.Fatalf("Fetch(3) = %q", short)
	}
	if src.opens.Load() != 1 {
		t.Fatalf("opens = %d, want 1", src.opens.Load())
	}

	// Served from the first line already cached.
	if got, _ := o.Fetch(5); got != e30[:5] || src.opens.Load() != 1 {
		t.Errorf("Fetch(5) = %q with %d opens", got, src.opens.Load())
	}

	long, err := o.Fetch(22)
	if err != nil {
		t.Fatal(err)
	}
	if long != e30[:22] {
		t.Errorf("Fetch(22) = %q, want %q", long, e30[:22])
	}
	if src.opens.Load() != 2 {
		t.Errorf("opens = %d, want 2", src.opens.Load())
	}

	// A shorter request after a longer one is a cache hit and still exact.
	if got, _ := o.Fetch(12); got != e30[:12] || src.opens.Load() != 2 {
		t.Errorf("Fetch(12) = %q with %d opens", got, src.opens.Load())
	}
}

func TestAvailable(t *testing.T) {
	t.Parallel()
	src := &countingSource{text: lines(e30, 9)}
	o := NewOracle(src)
	n, err := o.Available()
	if err != nil {
		t.Fatal(err)
	}
	if n != len(e30) {
		t.Errorf("Available() = %d, want %d", n, len(e30))
	}
	digits, _ := o.AvailableDigits()
	if digits != len(e30)-2 {
		t.Errorf("AvailableDigits() = %d", digits)
	}

	// Once complete, out-of-range requests do not reopen the source.
	opens := src.opens.Load()
	if _, err := o.Fetch(len(e30) + 5); !errors.Is(err, apperrors.ErrOutOfRange) {
		t.Errorf("error = %v, want ErrOutOfRange", err)
	}
	if src.opens.Load() != opens {
		t.Error("complete cache should answer without reading")
	}
}

func TestIsCorrect(t *testing.T) {
	t.Parallel()
	o := Default()
	ok, err := o.IsCorrect("2.71828")
	if err != nil || !ok {
		t.Errorf("IsCorrect(2.71828) = %v, %v", ok, err)
	}
	ok, err = o.IsCorrect("2.71829")
	if err != nil || ok {
		t.Errorf("IsCorrect(2.71829) = %v, %v", ok, err)
	}
	if _, err := o.IsCorrect(""); !errors.Is(err, apperrors.ErrOutOfRange) {
		t.Errorf("IsCorrect(\"\") error = %v, want ErrOutOfRange", err)
	}
}

func TestFirstCorrectPrefix(t *testing.T) {
	t.Parallel()
	o := NewOracle(&countingSource{text: lines(e30, 10)})
	tests := []struct {
		candidate string
		want      string
	}{
		{e30, e30},
		{e30[:len(e30)-1] + "9", e30[:len(e30)-1]},
		{"2.7182X", "2.7182"},
		{"3.14", ""},
		{"", ""},
	}
	for _, tt := range tests {
		got, err := o.FirstCorrectPrefix(tt.candidate)
		if err != nil {
			t.Fatalf("FirstCorrectPrefix(%q): %v", tt.candidate, err)
		}
		if got != tt.want {
			t.Errorf("FirstCorrectPrefix(%q) = %q, want %q", tt.candidate, got, tt.want)
		}
	}
}

func TestEmbeddedExpansion(t *testing.T) {
	t.Parallel()
	o := Default()
	digits, err := o.AvailableDigits()
	if err != nil {
		t.Fatal(err)
	}
	if digits != EmbeddedDigits {
		t.Errorf("embedded expansion has %d digits, want %d", digits, EmbeddedDigits)
	}
	got, err := o.Fetch(len(e30))
	if err != nil {
		t.Fatal(err)
	}
	if got != e30 {
		t.Errorf("Fetch = %q, want %q", got, e30)
	}
}

func TestWarmAndConcurrentFetch(t *testing.T) {
	t.Parallel()
	src := &countingSource{text: embeddedExpansion}
	o := NewOracle(src)
	flat := strings.ReplaceAll(embeddedExpansion, "\n", "")
	if err := o.Warm(5002); err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n := i * 100
			got, err := o.Fetch(n)
			if err != nil {
				t.Errorf("Fetch(%d): %v", n, err)
				return
			}
			if got != flat[:n] {
				t.Errorf("Fetch(%d) mismatch", n)
			}
		}()
	}
	wg.Wait()
	if src.opens.Load() != 1 {
		t.Errorf("opens = %d, want 1 after warming", src.opens.Load())
	}
}

func TestSourceFor(t *testing.T) {
	t.Parallel()
	if SourceFor("").Name() != "embedded" {
		t.Error("empty path should select the embedded source")
	}
	if got := SourceFor("/tmp/e.txt").Name(); got != "/tmp/e.txt" {
		t.Errorf("Name() = %q", got)
	}
}
