package archive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"

	"studio-photo-server/modules/common/config"
)

const (
	tableCompositions = "studio_compositions"
	pathPrefix        = "studio-photos"
	contentTypeWebP   = "image/webp"
)

// Record - 아카이브된 합성 결과
type Record struct {
	ID               string
	FilePath         string
	FileSize         int64
	URL              string
	BackgroundPrompt string
	CreatedAt        time.Time
}

// Archiver uploads finished compositions to Supabase Storage and records
// them in the studio_compositions table.
type Archiver struct {
	supabaseURL    string
	serviceKey     string
	storageBaseURL string
	bucket         string
	quality        float32

	db         *supabase.Client
	httpClient *http.Client
	convert    func([]byte, float32) ([]byte, error)
	now        func() time.Time
}

// NewArchiver - Supabase 클라이언트 생성 포함
func NewArchiver(cfg *config.Config) (*Archiver, error) {
	db, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create Supabase client: %w", err)
	}

	log.Println("✅ [Archive] Initialized")
	return &Archiver{
		supabaseURL:    cfg.SupabaseURL,
		serviceKey:     cfg.SupabaseServiceKey,
		storageBaseURL: cfg.SupabaseStorageBaseURL,
		bucket:         cfg.ArchiveBucket,
		quality:        cfg.ArchiveWebPQuality,
		db:             db,
		httpClient:     &http.Client{Timeout: 60 * time.Second},
		convert:        ConvertToWebP,
		now:            time.Now,
	}, nil
}

// Archive - WebP 변환 후 Storage 업로드 + DB 레코드 생성
func (a *Archiver) Archive(ctx context.Context, imageData []byte, backgroundPrompt string) (*Record, error) {
	webpData, err := a.convert(imageData, a.quality)
	if err != nil {
		return nil, fmt.Errorf("failed to convert PNG to WebP: %w", err)
	}

	now := a.now().UTC()
	id := uuid.NewString()
	filePath := fmt.Sprintf("%s/%04d/%02d/%s.webp", pathPrefix, now.Year(), int(now.Month()), id)

	if err := a.upload(ctx, filePath, webpData); err != nil {
		return nil, err
	}

	rec := &Record{
		ID:               id,
		FilePath:         filePath,
		FileSize:         int64(len(webpData)),
		URL:              a.publicURL(filePath),
		BackgroundPrompt: backgroundPrompt,
		CreatedAt:        now,
	}

	if err := a.insertRecord(rec); err != nil {
		return nil, err
	}

	log.Printf("✅ [Archive] Composition archived: %s (%d bytes)", rec.FilePath, rec.FileSize)
	return rec, nil
}

func (a *Archiver) upload(ctx context.Context, filePath string, data []byte) error {
	log.Printf("📤 [Archive] Uploading WebP image to storage: %s", filePath)

	uploadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", a.supabaseURL, a.bucket, filePath)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.serviceKey)
	req.Header.Set("Content-Type", contentTypeWebP)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to upload image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

func (a *Archiver) insertRecord(rec *Record) error {
	row := map[string]interface{}{
		"composition_id":    rec.ID,
		"file_path":         rec.FilePath,
		"file_size":         rec.FileSize,
		"file_type":         contentTypeWebP,
		"public_url":        rec.URL,
		"background_prompt": rec.BackgroundPrompt,
		"storage_type":      "supabase",
		"created_at":        rec.CreatedAt.Format(time.RFC3339),
	}

	_, _, err := a.db.From(tableCompositions).
		Insert(row, false, "", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to insert composition record: %w", err)
	}
	return nil
}

func (a *Archiver) publicURL(filePath string) string {
	if a.storageBaseURL != "" {
		return a.storageBaseURL + filePath
	}
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", a.supabaseURL, a.bucket, filePath)
}
