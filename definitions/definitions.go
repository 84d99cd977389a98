package definitions

import (
	"encoding/xml"
	"strings"
)

// Element names of the XML manifest.
const (
	RootTag     = "files"
	EntryTag    = "file"
	PathTag     = "path"
	HashTypeTag = "hash_type"
	HashTag     = "hash"
)

// Files is the root of an XML manifest:
//
//	<files>
//	  <file><path>a.txt</path><hash_type>md5</hash_type><hash>...</hash></file>
//	</files>
type Files struct {
	XMLName xml.Name
	Entries []File
}

func (f *Files) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	*f = Files{XMLName: start.Name}

	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != EntryTag {
				if err := d.Skip(); err != nil {
					return err
				}
				continue
			}
			var entry File
			if err := d.DecodeElement(&entry, &t); err != nil {
				return err
			}
			f.Entries = append(f.Entries, entry)
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return nil
			}
		}
	}
}

// Text is the character data of a child element.
type Text struct {
	Value string `xml:",chardata"`
}

// File is one <file> entry. A nil field means the child element is absent.
// Only the first occurrence of each child element is kept.
type File struct {
	Path     *Text
	HashType *Text
	Hash     *Text
}

func (e *File) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	*e = File{}

	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			var slot **Text
			switch t.Name.Local {
			case PathTag:
				slot = &e.Path
			case HashTypeTag:
				slot = &e.HashType
			case HashTag:
				slot = &e.Hash
			}
			if slot == nil || *slot != nil {
				if err := d.Skip(); err != nil {
					return err
				}
				continue
			}
			var txt Text
			if err := d.DecodeElement(&txt, &t); err != nil {
				return err
			}
			*slot = &txt
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return nil
			}
		}
	}
}

// Field returns the trimmed text of the named child element and whether the
// element was present at all.
func (e File) Field(tag string) (value string, present bool) {
	var txt *Text
	switch tag {
	case PathTag:
		txt = e.Path
	case HashTypeTag:
		txt = e.HashType
	case HashTag:
		txt = e.Hash
	}
	if txt == nil {
		return "", false
	}
	return strings.TrimSpace(txt.Value), true
}
