package processimage

import (
	"context"
	"log"
	"strings"
	"time"

	"google.golang.org/genai"

	"studio-photo-server/modules/archive"
	"studio-photo-server/modules/common/gemini"
	"studio-photo-server/modules/common/metrics"
	"studio-photo-server/modules/common/utils"
	"studio-photo-server/modules/scene"
	"studio-photo-server/modules/stats"
)

const (
	opCompose = "compose"
	opAnalyze = "analyze"
)

// Archiver - 합성 결과 보관 (선택)
type Archiver interface {
	Archive(ctx context.Context, imageData []byte, backgroundPrompt string) (*archive.Record, error)
}

type Service struct {
	generator gemini.Generator
	model     string
	recorder  stats.Recorder
	archiver  Archiver
}

type Option func(*Service)

// WithRecorder - 사용 통계 기록
func WithRecorder(r stats.Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithArchiver - 결과 아카이브
func WithArchiver(a Archiver) Option {
	return func(s *Service) {
		s.archiver = a
	}
}

func NewService(generator gemini.Generator, model string, opts ...Option) *Service {
	s := &Service{
		generator: generator,
		model:     model,
		recorder:  stats.NopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Compose - 제품 이미지를 배경 설명 위에 합성
// 다운스트림 호출 1회, 재시도 없음.
func (s *Service) Compose(ctx context.Context, imageBase64, backgroundPrompt string) (*Composition, error) {
	if strings.TrimSpace(imageBase64) == "" {
		return nil, missing("image", MsgImageRequired)
	}
	if strings.TrimSpace(backgroundPrompt) == "" {
		return nil, missing("backgroundPrompt", MsgBackgroundPromptRequired)
	}

	imageData, mimeType, err := decodeInput(imageBase64)
	if err != nil {
		return nil, err
	}

	log.Printf("🎨 [ProcessImage] Composing: %s, %d bytes, background=%s",
		mimeType, len(imageData), utils.TruncateString(backgroundPrompt, 50))

	content := genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromBytes(imageData, mimeType),
		genai.NewPartFromText(BuildCompositionPrompt(backgroundPrompt)),
	}, genai.RoleUser)

	result, err := s.generate(ctx, opCompose, content, &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
	})
	label := scene.Label(backgroundPrompt)
	if err != nil {
		s.recorder.Record(ctx, stats.Outcome{Scene: label, Success: false})
		return nil, err
	}

	blob := FirstInlineImage(result)
	if blob == nil {
		metrics.RecordGeneration(opCompose, metrics.StatusNoImage)
		s.recorder.Record(ctx, stats.Outcome{Scene: label, Success: false})
		return nil, ErrNoImageGenerated
	}

	log.Printf("✅ [ProcessImage] Image generated: %s, %d bytes", blob.MIMEType, len(blob.Data))
	metrics.RecordGeneration(opCompose, metrics.StatusSuccess)
	s.recorder.Record(ctx, stats.Outcome{Scene: label, Success: true})

	out := &Composition{
		ImageBase64: utils.EncodeBase64(blob.Data),
		MIMEType:    blob.MIMEType,
	}

	if s.archiver != nil {
		// 아카이브 실패해도 Base64로 반환
		if rec, err := s.archiver.Archive(ctx, blob.Data, backgroundPrompt); err != nil {
			log.Printf("⚠️  [ProcessImage] Failed to archive composition: %v", err)
		} else {
			out.ArchiveURL = rec.URL
		}
	}

	return out, nil
}

// Analyze - 제품 이미지를 1~2 문장으로 설명
func (s *Service) Analyze(ctx context.Context, imageBase64 string) (string, error) {
	if strings.TrimSpace(imageBase64) == "" {
		return "", missing("image", MsgImageRequired)
	}

	imageData, mimeType, err := decodeInput(imageBase64)
	if err != nil {
		return "", err
	}

	content := genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromBytes(imageData, mimeType),
		genai.NewPartFromText(analyzePrompt),
	}, genai.RoleUser)

	result, err := s.generate(ctx, opAnalyze, content, nil)
	if err != nil {
		return "", err
	}

	metrics.RecordGeneration(opAnalyze, metrics.StatusSuccess)

	text := strings.TrimSpace(ResponseText(result))
	if text == "" {
		return DefaultProductDescription, nil
	}
	return text, nil
}

func (s *Service) generate(
	ctx context.Context,
	op string,
	content *genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	start := time.Now()
	result, err := s.generator.GenerateContent(ctx, s.model, []*genai.Content{content}, config)
	metrics.ObserveGeneration(op, time.Since(start).Seconds())

	if err != nil {
		status := metrics.StatusError
		if gemini.IsRateLimited(err) {
			status = metrics.StatusRateLimited
		}
		metrics.RecordGeneration(op, status)
		return nil, &GenerationError{Op: op, Err: err}
	}
	return result, nil
}

func decodeInput(imageBase64 string) ([]byte, string, error) {
	imageData, err := utils.DecodeBase64Image(imageBase64)
	if err != nil {
		return nil, "", invalid("image", MsgImageNotBase64)
	}
	return imageData, utils.DetectImageMIME(imageData), nil
}

// FirstInlineImage returns the first part, in response order, that carries
// non-empty inline data. Candidates are scanned in order and parts within a
// candidate in order; the first match wins. Nil when there is none.
func FirstInlineImage(resp *genai.GenerateContentResponse) *genai.Blob {
	if resp == nil {
		return nil
	}
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData
			}
		}
	}
	return nil
}

// ResponseText - 첫 번째 후보의 텍스트 파트 연결
func ResponseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}
