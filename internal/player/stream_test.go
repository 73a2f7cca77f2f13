package player

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkipID3v2_NoTag(t *testing.T) {
	data := []byte("fLaC and then some stream data following the marker")
	r := bytes.NewReader(data)

	require.NoError(t, skipID3v2(r))

	pos, err := r.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pos, "reader should be rewound to the start")
}

func TestSkipID3v2_WithTag(t *testing.T) {
	// ID3v2 header with a 100-byte tag body. The size field is
	// syncsafe: 7 bits per byte.
	header := []byte{'I', 'D', '3', 4, 0, 0, 0, 0, 0, 100}
	body := make([]byte, 100)
	audio := []byte("fLaC")
	data := append(append(header, body...), audio...)
	r := bytes.NewReader(data)

	require.NoError(t, skipID3v2(r))

	pos, err := r.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(110), pos, "reader should point past header and tag body")

	rest := make([]byte, 4)
	_, err = io.ReadFull(r, rest)
	require.NoError(t, err)
	assert.Equal(t, "fLaC", string(rest))
}

func TestSkipID3v2_SyncsafeSize(t *testing.T) {
	// Size bytes 0x01 0x00 decode to 128, not 256
	header := []byte{'I', 'D', '3', 3, 0, 0, 0, 0, 1, 0}
	body := make([]byte, 128)
	data := append(header, body...)
	r := bytes.NewReader(data)

	require.NoError(t, skipID3v2(r))

	pos, err := r.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(138), pos)
}

func TestSkipID3v2_ShortFile(t *testing.T) {
	r := bytes.NewReader([]byte("ID3"))

	require.NoError(t, skipID3v2(r))

	pos, err := r.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pos)
}
