// Package upload stores user-submitted photos on disk. Filenames are reduced
// to a safe basename and prefixed with a generated ID so two uploads sharing
// a name never overwrite each other.
package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/xid"

	"foundling/internal/imaging"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// Sanitize collapses a client-supplied filename to a safe basename: path
// separators and unsafe characters become underscores, and leading dots are
// stripped so the result can never escape the upload directory.
func Sanitize(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.ReplaceAll(name, "/", "_")
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._-")
	if name == "" {
		return "file"
	}
	return name
}

// Store writes an uploaded file into dir and returns the stored filename, or
// ("", nil) when no file was submitted. Photos that sniff as JPEG or PNG are
// downscaled and re-encoded before writing; other files are stored verbatim.
func Store(dir, filename string, r io.Reader) (string, error) {
	if filename == "" {
		return "", nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading upload: %w", err)
	}

	base := Sanitize(filename)
	if imaging.IsImage(data) {
		processed, err := imaging.Process(data)
		if err != nil {
			return "", fmt.Errorf("processing photo: %w", err)
		}
		data = processed
		base = strings.TrimSuffix(base, filepath.Ext(base)) + ".jpg"
	}

	name := xid.New().String() + "_" + base
	if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		return "", fmt.Errorf("writing upload: %w", err)
	}
	return name, nil
}
