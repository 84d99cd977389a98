package index

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	def "FileHashValidator/definitions"
)

// LoadXML loads a manifest of the form <files><file><path/><hash_type/><hash/></file>...</files>.
// Unlike the JSON format, at least one <file> entry is required.
func LoadXML(manifestPath, workdir string) ([]Record, error) {
	data, err := readManifest(manifestPath)
	if err != nil {
		return nil, err
	}

	var doc def.Files
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = passthroughCharset
	if err := dec.Decode(&doc); err != nil {
		return nil, &ManifestError{Path: manifestPath, Op: "decode", Err: fmt.Errorf("invalid XML: %w", err)}
	}

	if doc.XMLName.Local != def.RootTag {
		return nil, &ValidationError{Err: ErrInvalidRoot,
			Detail: fmt.Sprintf("XML root element must be <%s>, got <%s>", def.RootTag, doc.XMLName.Local)}
	}
	if len(doc.Entries) == 0 {
		return nil, &ValidationError{Err: ErrNoEntries}
	}

	records := make([]Record, 0, len(doc.Entries))
	for i, entry := range doc.Entries {
		rec, err := xmlRecord(entry, workdir)
		if err != nil {
			return nil, atEntry(err, def.EntryTag, i+1)
		}
		records = append(records, rec)
	}
	return records, nil
}

// passthroughCharset ignores the encoding named in the XML declaration:
// manifests are always read as UTF-8 text.
func passthroughCharset(_ string, input io.Reader) (io.Reader, error) {
	return input, nil
}

func xmlRecord(entry def.File, workdir string) (Record, error) {
	raw, err := entryFields(entry)
	if err != nil {
		return Record{}, err
	}
	return Normalize(raw, workdir)
}

// entryFields converts a <file> element into the field map consumed by Normalize.
func entryFields(entry def.File) (map[string]any, error) {
	raw := make(map[string]any, 3)
	for _, tag := range []string{def.PathTag, def.HashTypeTag, def.HashTag} {
		value, present := entry.Field(tag)
		if !present {
			return nil, &ValidationError{Field: "<" + tag + ">", Err: ErrMissingElement}
		}
		if value == "" {
			return nil, &ValidationError{Field: "<" + tag + ">", Err: ErrEmptyElement}
		}
		raw[tag] = value
	}
	return raw, nil
}
