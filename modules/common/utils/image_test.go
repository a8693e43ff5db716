package utils

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func sampleJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestStripDataURL(t *testing.T) {
	assert.Equal(t, "QUJD", StripDataURL("data:image/png;base64,QUJD"))
	assert.Equal(t, "QUJD", StripDataURL("  QUJD\n"))
	assert.Equal(t, "data:text/plain,hello", StripDataURL("data:text/plain,hello"))
}

func TestDecodeBase64Image(t *testing.T) {
	raw := sampleJPEG(t)
	encoded := base64.StdEncoding.EncodeToString(raw)

	t.Run("plain", func(t *testing.T) {
		got, err := DecodeBase64Image(encoded)
		require.NoError(t, err)
		assert.Equal(t, raw, got)
	})

	t.Run("data url", func(t *testing.T) {
		got, err := DecodeBase64Image("data:image/jpeg;base64," + encoded)
		require.NoError(t, err)
		assert.Equal(t, raw, got)
	})

	t.Run("unpadded", func(t *testing.T) {
		got, err := DecodeBase64Image(base64.RawStdEncoding.EncodeToString([]byte("ab")))
		require.NoError(t, err)
		assert.Equal(t, []byte("ab"), got)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := DecodeBase64Image("   ")
		assert.ErrorIs(t, err, ErrEmptyImage)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := DecodeBase64Image("not base64 at all!!")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid base64")
	})
}

func TestDetectImageMIME(t *testing.T) {
	assert.Equal(t, "image/png", DetectImageMIME(samplePNG(t)))
	assert.Equal(t, "image/jpeg", DetectImageMIME(sampleJPEG(t)))
	assert.Equal(t, DefaultInputMIME, DetectImageMIME([]byte("plain text, not an image")))
}

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage(samplePNG(t)))
	assert.True(t, IsImage(sampleJPEG(t)))
	assert.False(t, IsImage([]byte("%PDF-1.4\n")))
	assert.False(t, IsImage([]byte("hello")))
}

func TestEncodeBase64(t *testing.T) {
	assert.Equal(t, "aGk=", EncodeBase64([]byte("hi")))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "abc...", TruncateString("abcdef", 3))
	assert.Equal(t, "해변...", TruncateString("해변에서", 2))
}
