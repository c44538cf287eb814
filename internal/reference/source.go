package reference

import (
	_ "embed"
	"io"
	"os"
	"strings"
)

//go:embed data/e.txt
var embeddedExpansion string

// EmbeddedDigits is the number of decimal places in the bundled expansion.
const EmbeddedDigits = 1_000_000

// Source opens the reference text.
type Source interface {
	// Open returns a reader positioned at the start of the text. The caller
	// closes it.
	Open() (io.ReadCloser, error)
	// Name identifies the source in errors and logs.
	Name() string
}

// FileSource reads the reference from a file on disk.
type FileSource struct {
	Path string
}

// Open implements Source.
func (s FileSource) Open() (io.ReadCloser, error) {
	return os.Open(s.Path)
}

// Name implements Source.
func (s FileSource) Name() string { return s.Path }

type embeddedSource struct{}

// EmbeddedSource returns the Source compiled into the binary.
func EmbeddedSource() Source { return embeddedSource{} }

func (embeddedSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(embeddedExpansion)), nil
}

func (embeddedSource) Name() string { return "embedded" }

// SourceFor returns a FileSource for path, or the embedded source when path
// is empty.
func SourceFor(path string) Source {
	if path == "" {
		return EmbeddedSource()
	}
	return FileSource{Path: path}
}
