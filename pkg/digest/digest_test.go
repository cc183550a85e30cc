package digest_test

import (
	"testing"

	"github.com/arthur-debert/dirsum/pkg/digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCopiesValue(t *testing.T) {
	raw := []byte{0x01, 0x02, 0x03}
	d := digest.New("sha256", raw)

	// Mutating the input must not change the digest.
	raw[0] = 0xff
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, d.Value())

	// Mutating the output copy must not change the digest either.
	out := d.Value()
	out[1] = 0xff
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, d.Value())
}

func TestStringAndParse(t *testing.T) {
	d := digest.New("blake3", []byte{0xde, 0xad, 0xbe, 0xef})
	assert.Equal(t, "blake3:deadbeef", d.String())
	assert.Equal(t, "deadbeef", d.Hex())
	assert.Equal(t, 4, d.Size())

	parsed, err := digest.Parse("blake3:deadbeef")
	require.NoError(t, err)
	assert.True(t, d.Equal(parsed))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing_separator", "deadbeef"},
		{"bad_hex", "sha256:zzzz"},
		{"empty_value", "sha256:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := digest.Parse(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestEqual(t *testing.T) {
	a := digest.New("sha256", []byte{1, 2})
	b := digest.New("sha256", []byte{1, 2})
	c := digest.New("md5", []byte{1, 2})
	d := digest.New("sha256", []byte{1, 3})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c), "same bytes under a different algorithm are not equal")
	assert.False(t, a.Equal(d))
}

func TestSentinel(t *testing.T) {
	s := digest.Sentinel("sha256", 32)
	assert.Equal(t, 32, s.Size())
	assert.True(t, s.IsSentinel())
	assert.False(t, s.IsZero())

	real := digest.New("sha256", []byte{0, 0, 1})
	assert.False(t, real.IsSentinel())

	var zero digest.Digest
	assert.True(t, zero.IsZero())
	assert.False(t, zero.IsSentinel())
}
