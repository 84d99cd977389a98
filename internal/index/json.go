package index

import (
	"encoding/json"
	"fmt"
)

const jsonList = "files"

// LoadJSON loads a manifest of the form {"files": [{"path", "hash_type", "hash"}, ...]}.
// An empty "files" array is valid and yields no records.
func LoadJSON(manifestPath, workdir string) ([]Record, error) {
	data, err := readManifest(manifestPath)
	if err != nil {
		return nil, err
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ManifestError{Path: manifestPath, Op: "decode", Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	root, ok := doc.(map[string]any)
	if !ok {
		return nil, &ValidationError{Err: ErrInvalidRoot, Detail: fmt.Sprintf("JSON root must be an object, got %s", describe(doc))}
	}

	files, ok := root[jsonList]
	if !ok || files == nil {
		return nil, &ValidationError{Err: ErrMissingFiles}
	}
	items, ok := files.([]any)
	if !ok {
		return nil, &ValidationError{Err: ErrFilesNotList, Detail: fmt.Sprintf("got %s", describe(files))}
	}

	records := make([]Record, 0, len(items))
	for i, item := range items {
		rec, err := Normalize(item, workdir)
		if err != nil {
			return nil, atEntry(err, jsonList, i+1)
		}
		records = append(records, rec)
	}
	return records, nil
}
