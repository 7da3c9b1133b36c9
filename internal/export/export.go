// Package export writes assembled spells to disk as indented JSON.
package export

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/KirkDiggler/bloodbond/internal/domain/spell"
	dnderr "github.com/KirkDiggler/bloodbond/internal/errors"
)

const indent = "    "

// ToWriter encodes s as 4-space indented JSON
func ToWriter(w io.Writer, s *spell.Spell) error {
	if s == nil {
		return dnderr.InvalidArgument("spell cannot be nil")
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", indent)
	if err := enc.Encode(s); err != nil {
		return dnderr.IOf(err, "failed to encode spell %s", s.ID)
	}
	return nil
}

// ToFile writes s to path, creating parent directories as needed
func ToFile(path string, s *spell.Spell) (err error) {
	if path == "" {
		return dnderr.InvalidParameter("path", path, "export path cannot be empty")
	}
	if s == nil {
		return dnderr.InvalidArgument("spell cannot be nil")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return dnderr.IOf(err, "failed to create directory for %s", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return dnderr.IOf(err, "failed to write spell to file %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = dnderr.IOf(cerr, "failed to close %s", path)
		}
	}()

	return ToWriter(f, s)
}
