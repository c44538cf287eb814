package reference

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	apperrors "github.com/agbru/eulercalc/internal/errors"
)

// Oracle answers questions about the true expansion of e. It reads its
// Source on demand and keeps the longest prefix read so far; a request longer
// than the cache re-reads the source from the start. It is safe for
// concurrent use.
type Oracle struct {
	source Source

	mu     sync.Mutex
	cached string
	// complete is set once the source has been read to its end, so that
	// cached holds the whole expansion.
	complete bool
}

// NewOracle creates an oracle over source.
func NewOracle(source Source) *Oracle {
	return &Oracle{source: source}
}

// Default returns an oracle over the embedded expansion.
func Default() *Oracle {
	return NewOracle(EmbeddedSource())
}

// Source returns the oracle's source.
func (o *Oracle) Source() Source { return o.source }

// Fetch returns the first length characters of the expansion, "2." included.
// It fails with an error matching apperrors.ErrOutOfRange when length is not
// positive or exceeds the expansion, and apperrors.ErrReferenceUnavailable
// when the source cannot be read or is malformed.
func (o *Oracle) Fetch(length int) (string, error) {
	if length <= 0 {
		return "", o.outOfRange("fetch", fmt.Errorf("length %d is not positive", length))
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.cached) >= length {
		return o.cached[:length], nil
	}
	if o.complete {
		return "", o.outOfRange("fetch", fmt.Errorf("length %d exceeds the %d available characters", length, len(o.cached)))
	}
	if err := o.load(length); err != nil {
		return "", err
	}
	if len(o.cached) < length {
		return "", o.outOfRange("fetch", fmt.Errorf("length %d exceeds the %d available characters", length, len(o.cached)))
	}
	return o.cached[:length], nil
}

// IsCorrect reports whether candidate is a prefix of the expansion.
func (o *Oracle) IsCorrect(candidate string) (bool, error) {
	ref, err := o.Fetch(len(candidate))
	if err != nil {
		return false, err
	}
	return ref == candidate, nil
}

// FirstCorrectPrefix returns the longest leading part of candidate that
// matches the expansion. It is empty when the first character differs.
func (o *Oracle) FirstCorrectPrefix(candidate string) (string, error) {
	if candidate == "" {
		return "", nil
	}
	ref, err := o.Fetch(len(candidate))
	if err != nil {
		return "", err
	}
	i := 0
	for i < len(candidate) && candidate[i] == ref[i] {
		i++
	}
	return candidate[:i], nil
}

// Warm reads at least length characters into the cache.
func (o *Oracle) Warm(length int) error {
	_, err := o.Fetch(length)
	return err
}

// Available returns the total number of characters in the expansion, "2."
// included. The first call reads the whole source.
func (o *Oracle) Available() (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.complete {
		if err := o.load(-1); err != nil {
			return 0, err
		}
	}
	return len(o.cached), nil
}

// AvailableDigits returns Available minus the "2." prefix.
func (o *Oracle) AvailableDigits() (int, error) {
	n, err := o.Available()
	if err != nil {
		return 0, err
	}
	return n - 2, nil
}

// load reads the source from the start until at least want characters are
// collected, or to the end when want is negative. It must be called with mu
// held.
func (o *Oracle) load(want int) error {
	rc, err := o.source.Open()
	if err != nil {
		return o.unavailable("open", err)
	}
	defer rc.Close()

	var b strings.Builder
	if want > 0 {
		b.Grow(want)
	}
	r := bufio.NewReader(rc)
	complete := true
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return o.unavailable("read", err)
		}
		line := string(chunk)
		if !isPrefix {
			line = strings.TrimRight(line, "\r")
		}
		if err := validateLine(line, b.Len()); err != nil {
			return o.unavailable("read", err)
		}
		b.WriteString(line)
		if want > 0 && b.Len() >= want {
			complete = false
			break
		}
	}
	if b.Len() < 2 {
		return o.unavailable("read", errors.New("missing \"2.\" prefix"))
	}

	// A read that stopped at a line boundary exactly at the end still counts
	// as incomplete; the next longer request finds out.
	if b.Len() > len(o.cached) {
		o.cached = b.String()
	}
	o.complete = o.complete || complete
	return nil
}

// validateLine checks a line that will be appended at offset.
func validateLine(line string, offset int) error {
	for i := 0; i < len(line); i++ {
		pos := offset + i
		c := line[i]
		switch {
		case pos == 0 && c != '2':
			return fmt.Errorf("expansion starts with %q, want \"2.\"", c)
		case pos == 1 && c != '.':
			return fmt.Errorf("expansion starts with \"2%c\", want \"2.\"", c)
		case pos > 1 && (c < '0' || c > '9'):
			return fmt.Errorf("unexpected character %q at offset %d", c, pos)
		}
	}
	return nil
}

func (o *Oracle) outOfRange(op string, cause error) error {
	return &apperrors.ReferenceError{Op: op, Source: o.source.Name(), Kind: apperrors.ErrOutOfRange, Err: cause}
}

func (o *Oracle) unavailable(op string, cause error) error {
	return &apperrors.ReferenceError{Op: op, Source: o.source.Name(), Kind: apperrors.ErrReferenceUnavailable, Err: cause}
}
