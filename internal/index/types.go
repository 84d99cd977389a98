package index

import "FileHashValidator/internal/checksum"

// Keys of a raw manifest entry, shared by both manifest formats.
const (
	FieldPath     = "path"
	FieldHashType = "hash_type"
	FieldHash     = "hash"
)

// Record is one normalized verification unit.
type Record struct {
	Path      string
	Algorithm checksum.Algorithm
	Expected  string // lowercase hex, exactly Algorithm.HexLen() characters
}

type Format string

const (
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)
