package common

import (
	"errors"
	"path"
	"regexp"
	"strings"
)

var (
	ErrEmptyFileName = errors.New("file name cannot be empty")
	unsafeNameChars  = regexp.MustCompile(`[^A-Za-z0-9_.]+`)
	repeatedUnders   = regexp.MustCompile(`_+`)
)

const maxFileNameLen = 120

// SafeFileName reduces an uploaded file name to characters that are safe in an object key.
// Directory components are dropped and runs of anything else collapse to a single underscore.
func SafeFileName(input, fallback string) (string, error) {
	name := safeFileName(input)
	if name == "" {
		name = safeFileName(fallback)
	}
	if name == "" {
		return "", ErrEmptyFileName
	}
	return name, nil
}

func safeFileName(s string) string {
	base := path.Base(strings.ReplaceAll(strings.TrimSpace(s), `\`, "/"))
	if base == "." || base == "/" {
		return ""
	}
	name := unsafeNameChars.ReplaceAllString(base, "_")
	name = repeatedUnders.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_.")
	if len(name) > maxFileNameLen {
		name = name[len(name)-maxFileNameLen:]
	}
	return name
}
