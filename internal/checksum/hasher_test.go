package checksum

import (
	"bytes"
	"crypto/md5" // #nosec G401
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectedHex(alg Algorithm, content []byte) string {
	switch alg {
	case CRC32:
		return fmt.Sprintf("%08x", crc32.ChecksumIEEE(content))
	case MD5:
		h := md5.Sum(content)
		return hex.EncodeToString(h[:])
	case SHA256:
		h := sha256.Sum256(content)
		return hex.EncodeToString(h[:])
	}
	return ""
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, data, 0o600))
	return p
}

func TestCompute_KnownVectors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		alg     Algorithm
		content []byte
		want    string
	}{
		{"crc32 check value", CRC32, []byte("123456789"), "cbf43926"},
		{"md5 hello", MD5, []byte("hello"), "5d41402abc4b2a76b9719d911017c592"},
		{"sha256 empty", SHA256, []byte{}, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"crc32 empty is zero padded", CRC32, []byte{}, "00000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeFile(t, dir, strings.ReplaceAll(tt.name, " ", "_")+".bin", tt.content)

			got, err := Compute(p, tt.alg, 0, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompute_TableDriven(t *testing.T) {
	dir := t.TempDir()

	contentSmall := []byte("hello world")
	contentLarge := bytes.Repeat([]byte("A"), 2<<20+17) // just over 2 MiB

	tests := []struct {
		name    string
		alg     Algorithm
		content []byte
	}{
		{"sha256 small", SHA256, contentSmall},
		{"sha256 large", SHA256, contentLarge},
		{"md5 small", MD5, contentSmall},
		{"md5 large", MD5, contentLarge},
		{"crc32 small", CRC32, contentSmall},
		{"crc32 large", CRC32, contentLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeFile(t, dir, strings.ReplaceAll(tt.name, " ", "_")+".bin", tt.content)

			var progressed int64
			var calls int
			got, err := Compute(p, tt.alg, 0, func(n int64) {
				require.Greater(t, n, int64(0))
				progressed += n
				calls++
			})
			require.NoError(t, err)

			assert.Equal(t, expectedHex(tt.alg, tt.content), got)
			assert.Equal(t, int64(len(tt.content)), progressed)
			assert.GreaterOrEqual(t, calls, (len(tt.content)+DefaultChunkSize-1)/DefaultChunkSize)
		})
	}
}

func TestCompute_ChunkSizeInvariant(t *testing.T) {
	dir := t.TempDir()
	data := append(bytes.Repeat([]byte("abc"), 200_000), bytes.Repeat([]byte("xyz"), 200_000)...)
	p := writeFile(t, dir, "big.bin", data)

	for _, alg := range Algorithms() {
		t.Run(string(alg), func(t *testing.T) {
			ref, err := Compute(p, alg, DefaultChunkSize, nil)
			require.NoError(t, err)

			for _, size := range []int{1 << 10, 7, 4096, 64 << 10, len(data) + 1} {
				got, err := Compute(p, alg, size, nil)
				require.NoError(t, err)
				assert.Equal(t, ref, got, "chunk size %d", size)
			}
		})
	}
}

func TestCompute_ChunkSizeOneByte(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "small.bin", []byte("123456789"))

	var calls int
	got, err := Compute(p, CRC32, 1, func(n int64) {
		assert.Equal(t, int64(1), n)
		calls++
	})
	require.NoError(t, err)
	assert.Equal(t, "cbf43926", got)
	assert.Equal(t, 9, calls)
}

func TestCompute_ObserverDoesNotAffectDigest(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "data.bin", bytes.Repeat([]byte{0x5a, 0x00, 0xff}, 100_000))

	for _, alg := range Algorithms() {
		without, err := Compute(p, alg, 4096, nil)
		require.NoError(t, err)

		var seen int64
		with, err := Compute(p, alg, 4096, func(n int64) { seen += n })
		require.NoError(t, err)

		assert.Equal(t, without, with, string(alg))
		assert.Equal(t, int64(300_000), seen)
	}
}

func TestCompute_Errors(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "somedir")
	require.NoError(t, os.Mkdir(sub, 0o755))
	good := writeFile(t, dir, "x.bin", []byte("hello"))

	tests := []struct {
		name     string
		path     string
		alg      Algorithm
		wantKind FailureKind
		wantAlg  bool
	}{
		{name: "file missing", path: filepath.Join(dir, "missing.bin"), alg: MD5, wantKind: NotFound},
		{name: "directory instead of file", path: sub, alg: SHA256, wantKind: IsDirectory},
		{name: "parent is a regular file", path: filepath.Join(good, "b.txt"), alg: MD5, wantKind: NotFound},
		{name: "unsupported algorithm", path: good, alg: Algorithm("sha1"), wantAlg: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.path, tt.alg, 0, nil)
			require.Error(t, err)

			if tt.wantAlg {
				assert.ErrorIs(t, err, ErrInvalidAlgorithm)
				var rf *ReadFailure
				assert.False(t, errors.As(err, &rf), "algorithm errors are not read failures")
				return
			}

			var rf *ReadFailure
			require.True(t, errors.As(err, &rf))
			assert.Equal(t, tt.wantKind, rf.Kind)
			assert.Equal(t, tt.path, rf.Path)
		})
	}
}

func TestCompute_SymlinkLoopIsNotFound(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need extra privileges on windows")
	}
	dir := t.TempDir()
	loop := filepath.Join(dir, "loop")
	require.NoError(t, os.Symlink(loop, loop))

	_, err := Compute(loop, CRC32, 0, nil)
	var rf *ReadFailure
	require.True(t, errors.As(err, &rf))
	assert.Equal(t, NotFound, rf.Kind)
}

func TestCompute_NotFoundKeepsCause(t *testing.T) {
	_, err := Compute(filepath.Join(t.TempDir(), "nope"), CRC32, 0, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "file not found")
}

func TestCompute_PermissionDenied(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("chmod based permission checks are unreliable on windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root ignores file permissions")
	}

	dir := t.TempDir()
	p := writeFile(t, dir, "secret.bin", []byte("secret"))
	require.NoError(t, os.Chmod(p, 0o000))
	t.Cleanup(func() { _ = os.Chmod(p, 0o600) })

	_, err := Compute(p, SHA256, 0, nil)
	require.Error(t, err)

	var rf *ReadFailure
	require.True(t, errors.As(err, &rf))
	assert.Equal(t, PermissionDenied, rf.Kind)
	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestComputeToken(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "hello.txt", []byte("hello"))

	got, err := ComputeToken(p, "  MD5 ", 0, nil)
	require.NoError(t, err)
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", got)

	_, err = ComputeToken(p, "sha1", 0, nil)
	assert.ErrorIs(t, err, ErrInvalidAlgorithm)
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestSum_PropagatesReadError(t *testing.T) {
	boom := errors.New("device gone")
	_, err := Sum(failingReader{err: boom}, SHA256, 0, nil)
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, IOError, classify(boom))
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		token   string
		want    Algorithm
		wantErr bool
	}{
		{"crc32", CRC32, false},
		{" SHA256 ", SHA256, false},
		{"Md5", MD5, false},
		{"sha1", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseAlgorithm(tt.token)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidAlgorithm, tt.token)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	assert.Equal(t, 8, CRC32.HexLen())
	assert.Equal(t, 32, MD5.HexLen())
	assert.Equal(t, 64, SHA256.HexLen())
	assert.Equal(t, "crc32, md5, sha256", AlgorithmNames())
}
