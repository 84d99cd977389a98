package index

import (
	"fmt"
	"path/filepath"
	"strings"

	"FileHashValidator/internal/checksum"
)

// Normalize validates one raw manifest entry and converts it into a Record.
// Both manifest formats feed their entries through here as a map keyed by
// FieldPath, FieldHashType and FieldHash.
func Normalize(raw any, workdir string) (Record, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return Record{}, invalid("", ErrNotObject, fmt.Sprintf("got %s", describe(raw)))
	}

	for _, f := range []string{FieldPath, FieldHashType, FieldHash} {
		if _, ok := obj[f]; !ok {
			return Record{}, invalid(f, ErrMissingField, "")
		}
	}

	path, ok := obj[FieldPath].(string)
	if !ok || strings.TrimSpace(path) == "" {
		return Record{}, invalid(FieldPath, ErrInvalidField, "must be a non-empty string")
	}

	algToken, ok := obj[FieldHashType].(string)
	if !ok {
		return Record{}, invalid(FieldHashType, ErrInvalidField, "must be a string")
	}
	alg, err := checksum.ParseAlgorithm(algToken)
	if err != nil {
		return Record{}, invalid(FieldHashType, ErrUnknownAlgorithm,
			fmt.Sprintf("%q, must be one of: %s", strings.TrimSpace(algToken), checksum.AlgorithmNames()))
	}

	sumToken, ok := obj[FieldHash].(string)
	if !ok {
		return Record{}, invalid(FieldHash, ErrInvalidField, "must be a string")
	}
	expected, err := NormalizeChecksum(alg, sumToken)
	if err != nil {
		return Record{}, err
	}

	return Record{
		Path:      ResolvePath(strings.TrimSpace(path), workdir),
		Algorithm: alg,
		Expected:  expected,
	}, nil
}

// ResolvePath joins a relative manifest path with workdir. Absolute paths are returned unchanged.
func ResolvePath(p, workdir string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(workdir, p)
}

// NormalizeChecksum lowercases and validates an expected checksum for alg.
// CRC32 values may be shorter than 8 digits and are left-padded with zeros.
func NormalizeChecksum(alg checksum.Algorithm, value string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(value))

	if s == "" {
		return "", invalid(FieldHash, ErrInvalidChecksum, "must not be empty")
	}
	if !isHex(s) {
		return "", invalid(FieldHash, ErrInvalidChecksum, "must be hex (0-9, a-f)")
	}

	want := alg.HexLen()
	switch alg {
	case checksum.MD5, checksum.SHA256:
		if len(s) != want {
			return "", invalid(FieldHash, ErrInvalidChecksum,
				fmt.Sprintf("%s expects %d hex characters, got %d", alg, want, len(s)))
		}
		return s, nil
	case checksum.CRC32:
		if len(s) > want {
			return "", invalid(FieldHash, ErrInvalidChecksum,
				fmt.Sprintf("%s expects 1-%d hex characters, got %d", alg, want, len(s)))
		}
		return strings.Repeat("0", want-len(s)) + s, nil
	}

	return "", invalid(FieldHashType, ErrUnknownAlgorithm, fmt.Sprintf("%q", string(alg)))
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
