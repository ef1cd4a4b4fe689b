package hashutil_test

import (
	"encoding/hex"
	"testing"

	"github.com/rohmanhakim/flowmap/pkg/hashutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/blake3"
)

func TestHashBytes_KnownVectors(t *testing.T) {
	tests := []struct {
		name     string
		algo     hashutil.HashAlgo
		input    string
		expected string
	}{
		{
			name:     "sha256 empty",
			algo:     hashutil.HashAlgoSHA256,
			input:    "",
			expected: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:     "sha256 abc",
			algo:     hashutil.HashAlgoSHA256,
			input:    "abc",
			expected: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
		{
			name:     "blake3 empty",
			algo:     hashutil.HashAlgoBLAKE3,
			input:    "",
			expected: "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := hashutil.HashBytes([]byte(tt.input), tt.algo)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestHashBytes_BLAKE3MatchesLibrary(t *testing.T) {
	data := []byte("https://docs.example.com")
	sum := blake3.Sum256(data)

	result, err := hashutil.HashBytes(data, hashutil.HashAlgoBLAKE3)
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(sum[:]), result)
}

func TestHashBytes_UnsupportedAlgorithm(t *testing.T) {
	result, err := hashutil.HashBytes([]byte("test data"), "md5")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported hash algorithm")
	assert.Empty(t, result)
}

func TestParseHashAlgo(t *testing.T) {
	algo, err := hashutil.ParseHashAlgo("blake3")
	require.NoError(t, err)
	assert.Equal(t, hashutil.HashAlgoBLAKE3, algo)

	algo, err = hashutil.ParseHashAlgo("sha256")
	require.NoError(t, err)
	assert.Equal(t, hashutil.HashAlgoSHA256, algo)

	_, err = hashutil.ParseHashAlgo("crc32")
	assert.Error(t, err)
}

func TestFingerprint(t *testing.T) {
	full, err := hashutil.HashBytes([]byte("https://example.com"), hashutil.HashAlgoBLAKE3)
	require.NoError(t, err)

	short, err := hashutil.Fingerprint("https://example.com", hashutil.HashAlgoBLAKE3, 12)
	require.NoError(t, err)
	assert.Len(t, short, 12)
	assert.Equal(t, full[:12], short)

	again, err := hashutil.Fingerprint("https://example.com", hashutil.HashAlgoBLAKE3, 12)
	require.NoError(t, err)
	assert.Equal(t, short, again)

	whole, err := hashutil.Fingerprint("https://example.com", hashutil.HashAlgoBLAKE3, 0)
	require.NoError(t, err)
	assert.Equal(t, full, whole)

	other, err := hashutil.Fingerprint("https://example.org", hashutil.HashAlgoBLAKE3, 12)
	require.NoError(t, err)
	assert.NotEqual(t, short, other)
}
