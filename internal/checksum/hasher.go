package checksum

import (
	"encoding/hex"
	"io"
	"os"
)

const DefaultChunkSize = 1 << 20 // 1 MiB

// Compute streams the file at path through alg and returns the lowercase hex
// digest. onRead, when non-nil, receives the length of every chunk read.
//
// Failures to stat, open or read the file are returned as *ReadFailure; an
// unknown algorithm yields ErrInvalidAlgorithm.
func Compute(path string, alg Algorithm, chunkSize int, onRead func(n int64)) (string, error) {
	if !alg.Valid() {
		_, err := newHasher(alg)
		return "", err
	}

	info, err := os.Stat(path)
	if err != nil {
		if missing(err) {
			return "", newReadFailure(NotFound, path, err)
		}
		return "", newReadFailure(AccessDenied, path, err)
	}
	if info.IsDir() {
		return "", newReadFailure(IsDirectory, path, nil)
	}

	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return "", newReadFailure(classify(err), path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	sum, err := Sum(f, alg, chunkSize, onRead)
	if err != nil {
		return "", newReadFailure(classify(err), path, err)
	}
	return sum, nil
}

// ComputeToken is Compute for an algorithm given by its textual token.
func ComputeToken(path string, token string, chunkSize int, onRead func(n int64)) (string, error) {
	alg, err := ParseAlgorithm(token)
	if err != nil {
		return "", err
	}
	return Compute(path, alg, chunkSize, onRead)
}

// Sum reads r to EOF in chunks of chunkSize bytes and returns the digest.
func Sum(r io.Reader, alg Algorithm, chunkSize int, onRead func(n int64)) (string, error) {
	h, err := newHasher(alg)
	if err != nil {
		return "", err
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	buf := make([]byte, chunkSize)
	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			if _, werr := h.Write(buf[:n]); werr != nil {
				return "", werr
			}
			if onRead != nil {
				onRead(int64(n))
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return "", rerr
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
