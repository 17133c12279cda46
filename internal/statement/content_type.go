package statement

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DetectContentType determines the content type of an upload. Generic
// results are refined using the file extension.
func DetectContentType(contents []byte, filename string) string {
	detected := mimetype.Detect(contents).String()

	// mimetype appends parameters such as "; charset=utf-8".
	base, _, _ := strings.Cut(detected, ";")
	base = strings.TrimSpace(base)

	if base == "application/octet-stream" || base == "text/plain" {
		switch strings.ToLower(filepath.Ext(filename)) {
		case ".csv":
			return "text/csv"
		case ".tsv":
			return "text/tab-separated-values"
		}
	}

	return base
}

// IsCSV reports whether contentType can be parsed as a CSV export.
func IsCSV(contentType string) bool {
	switch contentType {
	case "text/csv", "text/plain":
		return true
	default:
		return false
	}
}
