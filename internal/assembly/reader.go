package assembly

import (
	"errors"
	"log/slog"

	peparser "github.com/saferwall/pe"
)

// Reader reads assembly identities from files on disk. The zero value is
// ready to use.
type Reader struct {
	// Strict turns unreadable metadata into an error instead of falling back
	// to a file-name identity.
	Strict bool
	Logger *slog.Logger
}

// NewReader creates a lenient Reader that logs fallbacks to logger.
func NewReader(logger *slog.Logger) *Reader {
	return &Reader{Logger: logger}
}

// ReadIdentity opens path and returns the identity recorded in its Assembly
// metadata table. Files that are not managed PE images fall back to an
// identity named after the file unless the reader is strict.
func (r *Reader) ReadIdentity(path string) (Identity, error) {
	id, err := readIdentity(path)
	if err == nil {
		return id, nil
	}
	if r.Strict {
		return Identity{}, err
	}
	if r.Logger != nil {
		r.Logger.Debug("Falling back to file-name assembly identity.", "path", path, "reason", err)
	}
	return FileIdentity(path), nil
}

func readIdentity(path string) (Identity, error) {
	f, err := peparser.New(path, &peparser.Options{})
	if err != nil {
		return Identity{}, &FormatError{Path: path, Reason: err.Error()}
	}
	defer f.Close()

	if err := f.Parse(); err != nil {
		return Identity{}, &FormatError{Path: path, Reason: err.Error()}
	}

	id, err := identityFromCLR(&f.CLR)
	if err != nil {
		var fe *FormatError
		if errors.As(err, &fe) && fe.Path == "" {
			fe.Path = path
		}
		return Identity{}, err
	}
	return id, nil
}
