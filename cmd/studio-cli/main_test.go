package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studio-photo-server/modules/scene"
)

func writePNG(t *testing.T, dir string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	path := filepath.Join(dir, "product.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestSceneKey(t *testing.T) {
	key, err := sceneKey("marble-surface", nil)
	require.NoError(t, err)
	assert.Equal(t, "marble-surface", key)

	_, err = sceneKey("moon-base", nil)
	assert.Error(t, err)

	custom := "  on a mossy rock "
	key, err = sceneKey(scene.DefaultID, &custom)
	require.NoError(t, err)
	assert.Equal(t, "custom:on a mossy rock", key)
	assert.Equal(t, "on a mossy rock", scene.Resolve(key))

	blank := "   "
	_, err = sceneKey(scene.DefaultID, &blank)
	assert.ErrorIs(t, err, errEmptyCustom)
}

func TestReadImageFile(t *testing.T) {
	dir := t.TempDir()

	b64, err := readImageFile(writePNG(t, dir))
	require.NoError(t, err)
	_, err = base64.StdEncoding.DecodeString(b64)
	assert.NoError(t, err)

	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("hello world"), 0o644))
	_, err = readImageFile(txt)
	assert.ErrorIs(t, err, errNotImage)
	assert.EqualError(t, err, "Please upload an image file")

	_, err = readImageFile(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}

func TestDefaultOutputName(t *testing.T) {
	assert.Equal(t, "studio-1700000000123.png", defaultOutputName(time.UnixMilli(1700000000123)))
}

func TestPrintScenes(t *testing.T) {
	var out bytes.Buffer
	printScenes(&out, scene.Presets())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, len(scene.Presets())+1)
	assert.Contains(t, lines[0], "ID")
	assert.Contains(t, lines[1], scene.DefaultID)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(lines[1]), "*"))
}

func TestComposeCommand(t *testing.T) {
	result := []byte("\x89PNG\r\n\x1a\nresult")
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"image": base64.StdEncoding.EncodeToString(result)})
	}))
	defer srv.Close()

	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.png")

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{
		"compose",
		"--server", srv.URL,
		"--image", writePNG(t, dir),
		"--custom", "a beach at sunset",
		"--out", outPath,
	})
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, "a beach at sunset", got["backgroundPrompt"])
	assert.NotEmpty(t, got["image"])

	written, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, result, written)
	assert.Contains(t, stdout.String(), outPath)
}
