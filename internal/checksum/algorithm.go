package checksum

import (
	"crypto/md5" // #nosec G501 -- used for file integrity verification only
	"crypto/sha256"
	"errors"
	"fmt"
	"hash"
	"hash/crc32"
	"strings"
)

type Algorithm string

const (
	CRC32  Algorithm = "crc32"
	MD5    Algorithm = "md5"
	SHA256 Algorithm = "sha256"
)

var ErrInvalidAlgorithm = errors.New("unsupported algorithm")

type algorithmSpec struct {
	hexLen  int
	newHash func() hash.Hash
}

var algorithms = map[Algorithm]algorithmSpec{
	CRC32:  {hexLen: 8, newHash: func() hash.Hash { return crc32.NewIEEE() }},
	MD5:    {hexLen: 32, newHash: md5.New}, // #nosec G401 -- used for file integrity verification only
	SHA256: {hexLen: 64, newHash: sha256.New},
}

// Algorithms returns the supported algorithms in canonical order.
func Algorithms() []Algorithm {
	return []Algorithm{CRC32, MD5, SHA256}
}

// AlgorithmNames is the comma separated list of canonical tokens, used in messages.
func AlgorithmNames() string {
	names := make([]string, 0, len(algorithms))
	for _, a := range Algorithms() {
		names = append(names, string(a))
	}
	return strings.Join(names, ", ")
}

func ParseAlgorithm(token string) (Algorithm, error) {
	a := Algorithm(strings.ToLower(strings.TrimSpace(token)))
	if _, ok := algorithms[a]; !ok {
		return "", fmt.Errorf("%w: %q (allowed: %s)", ErrInvalidAlgorithm, token, AlgorithmNames())
	}
	return a, nil
}

func (a Algorithm) String() string { return string(a) }

func (a Algorithm) Valid() bool {
	_, ok := algorithms[a]
	return ok
}

// HexLen is the exact length of a lowercase hex digest for a, or 0 when a is unknown.
func (a Algorithm) HexLen() int {
	return algorithms[a].hexLen
}

func newHasher(a Algorithm) (hash.Hash, error) {
	spec, ok := algorithms[a]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAlgorithm, string(a))
	}
	return spec.newHash(), nil
}
