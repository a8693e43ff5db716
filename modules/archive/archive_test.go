package archive

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studio-photo-server/modules/common/config"
)

type fakeSupabase struct {
	mu          sync.Mutex
	uploads     map[string][]byte
	uploadAuth  string
	uploadType  string
	rows        []map[string]interface{}
	failUpload  bool
	failInserts bool
}

func (f *fakeSupabase) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case strings.HasPrefix(r.URL.Path, "/storage/v1/object/"):
		if f.failUpload {
			http.Error(w, `{"error":"bucket not found"}`, http.StatusNotFound)
			return
		}
		body, _ := io.ReadAll(r.Body)
		f.uploads[strings.TrimPrefix(r.URL.Path, "/storage/v1/object/")] = body
		f.uploadAuth = r.Header.Get("Authorization")
		f.uploadType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"Key":"ok"}`))
	case r.URL.Path == "/rest/v1/"+tableCompositions:
		if f.failInserts {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"relation does not exist","code":"42P01"}`))
			return
		}
		var row map[string]interface{}
		json.NewDecoder(r.Body).Decode(&row)
		f.rows = append(f.rows, row)
		w.WriteHeader(http.StatusCreated)
	default:
		http.NotFound(w, r)
	}
}

func newTestArchiver(t *testing.T, fake *fakeSupabase, storageBase string) *Archiver {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	a, err := NewArchiver(&config.Config{
		SupabaseURL:            srv.URL,
		SupabaseServiceKey:     "service-key",
		SupabaseStorageBaseURL: storageBase,
		ArchiveBucket:          "attachments",
		ArchiveWebPQuality:     90,
	})
	require.NoError(t, err)

	a.convert = func(b []byte, q float32) ([]byte, error) {
		assert.Equal(t, float32(90), q)
		return append([]byte("webp:"), b...), nil
	}
	a.now = func() time.Time { return time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC) }
	return a
}

func TestArchive_UploadsAndRecords(t *testing.T) {
	fake := &fakeSupabase{uploads: map[string][]byte{}}
	a := newTestArchiver(t, fake, "")

	rec, err := a.Archive(context.Background(), []byte("png-bytes"), "a beach at sunset")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rec.FilePath, "studio-photos/2026/03/"))
	assert.True(t, strings.HasSuffix(rec.FilePath, ".webp"))
	assert.Equal(t, int64(len("webp:png-bytes")), rec.FileSize)
	assert.Equal(t, a.supabaseURL+"/storage/v1/object/public/attachments/"+rec.FilePath, rec.URL)

	require.Contains(t, fake.uploads, "attachments/"+rec.FilePath)
	assert.Equal(t, []byte("webp:png-bytes"), fake.uploads["attachments/"+rec.FilePath])
	assert.Equal(t, "Bearer service-key", fake.uploadAuth)
	assert.Equal(t, "image/webp", fake.uploadType)

	require.Len(t, fake.rows, 1)
	assert.Equal(t, rec.ID, fake.rows[0]["composition_id"])
	assert.Equal(t, "a beach at sunset", fake.rows[0]["background_prompt"])
	assert.Equal(t, rec.URL, fake.rows[0]["public_url"])
}

func TestArchive_StorageBaseURL(t *testing.T) {
	fake := &fakeSupabase{uploads: map[string][]byte{}}
	a := newTestArchiver(t, fake, "https://cdn.example.com/")

	rec, err := a.Archive(context.Background(), []byte("png"), "x")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/"+rec.FilePath, rec.URL)
}

func TestArchive_Failures(t *testing.T) {
	t.Run("convert", func(t *testing.T) {
		fake := &fakeSupabase{uploads: map[string][]byte{}}
		a := newTestArchiver(t, fake, "")
		a.convert = func([]byte, float32) ([]byte, error) { return nil, errors.New("bad png") }

		_, err := a.Archive(context.Background(), []byte("png"), "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad png")
		assert.Empty(t, fake.uploads)
	})

	t.Run("upload", func(t *testing.T) {
		fake := &fakeSupabase{uploads: map[string][]byte{}, failUpload: true}
		a := newTestArchiver(t, fake, "")

		_, err := a.Archive(context.Background(), []byte("png"), "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 404")
		assert.Empty(t, fake.rows)
	})

	t.Run("insert", func(t *testing.T) {
		fake := &fakeSupabase{uploads: map[string][]byte{}, failInserts: true}
		a := newTestArchiver(t, fake, "")

		_, err := a.Archive(context.Background(), []byte("png"), "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "composition record")
	})
}
