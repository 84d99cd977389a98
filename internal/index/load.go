package index

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"FileHashValidator/internal/logger"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// FormatOf picks the manifest format from the file extension.
func FormatOf(manifestPath string) (Format, error) {
	switch strings.ToLower(filepath.Ext(manifestPath)) {
	case ".json":
		return FormatJSON, nil
	case ".xml":
		return FormatXML, nil
	default:
		return "", &ManifestError{Path: manifestPath, Op: "detect format", Err: ErrUnsupportedFormat}
	}
}

// Load reads a JSON or XML manifest and returns its records in manifest order.
// Relative entry paths are resolved against workdir.
func Load(manifestPath, workdir string) ([]Record, error) {
	format, err := FormatOf(manifestPath)
	if err != nil {
		return nil, err
	}

	var records []Record
	switch format {
	case FormatJSON:
		records, err = LoadJSON(manifestPath, workdir)
	case FormatXML:
		records, err = LoadXML(manifestPath, workdir)
	}
	if err != nil {
		return nil, err
	}

	logger.LogDebug("manifest loaded", map[string]interface{}{
		"manifest": manifestPath,
		"format":   string(format),
		"records":  len(records),
		"workdir":  workdir,
	})
	return records, nil
}

func readManifest(manifestPath string) ([]byte, error) {
	data, err := os.ReadFile(manifestPath) // #nosec G304
	if err != nil {
		return nil, &ManifestError{Path: manifestPath, Op: "read", Err: err}
	}
	return bytes.TrimPrefix(data, utf8BOM), nil
}
