package gemini

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"

	"google.golang.org/genai"

	"studio-photo-server/modules/common/config"
)

// Generator is the slice of the genai Models API the services depend on.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Options - genai 클라이언트 생성 옵션
type Options struct {
	APIKey   string
	Backend  string // config.BackendGemini | config.BackendVertex
	BaseURL  string
	Project  string
	Location string

	CredentialsJSON string
	CredentialsPath string

	HTTPClient *http.Client
}

// OptionsFromConfig - Config에서 Options 생성
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		APIKey:          cfg.GeminiAPIKey,
		Backend:         cfg.GeminiBackend,
		BaseURL:         cfg.GeminiBaseURL,
		Project:         cfg.GeminiProject,
		Location:        cfg.GeminiLocation,
		CredentialsJSON: cfg.VertexCredentialsJSON,
		CredentialsPath: cfg.VertexCredentialsPath,
	}
}

// Provider builds the genai client on first use and reuses it afterwards.
// A failed build is not cached; the next call tries again.
type Provider struct {
	opts Options

	mu     sync.Mutex
	client *genai.Client
}

func NewProvider(opts Options) *Provider {
	return &Provider{opts: opts}
}

// Client - 초기화된 genai 클라이언트 반환 (없으면 생성)
func (p *Provider) Client(ctx context.Context) (*genai.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		return p.client, nil
	}

	cc, err := p.clientConfig(ctx)
	if err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	log.Printf("✅ [Gemini] Client initialized (backend: %s)", p.backend())
	p.client = client
	return client, nil
}

// GenerateContent - Models.GenerateContent 위임 (재시도 없음)
func (p *Provider) GenerateContent(
	ctx context.Context,
	model string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	client, err := p.Client(ctx)
	if err != nil {
		return nil, err
	}

	result, err := client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		if IsRateLimited(err) {
			log.Printf("⚠️  [Gemini] Rate limited (429) on model %s", model)
		}
		return nil, err
	}
	return result, nil
}

func (p *Provider) backend() string {
	if p.opts.Backend == "" {
		return config.BackendGemini
	}
	return p.opts.Backend
}

func (p *Provider) clientConfig(ctx context.Context) (*genai.ClientConfig, error) {
	cc := &genai.ClientConfig{
		HTTPClient: p.opts.HTTPClient,
	}
	if p.opts.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: p.opts.BaseURL}
	}

	switch p.backend() {
	case config.BackendGemini:
		if p.opts.APIKey == "" {
			return nil, fmt.Errorf("gemini API key is not set")
		}
		cc.Backend = genai.BackendGeminiAPI
		cc.APIKey = p.opts.APIKey
	case config.BackendVertex:
		creds, err := loadVertexCredentials(ctx, p.opts.CredentialsJSON, p.opts.CredentialsPath)
		if err != nil {
			return nil, err
		}
		cc.Backend = genai.BackendVertexAI
		cc.Project = p.opts.Project
		cc.Location = p.opts.Location
		cc.Credentials = creds
	default:
		return nil, fmt.Errorf("unknown backend: %s", p.opts.Backend)
	}
	return cc, nil
}

// IsRateLimited - 429 Rate Limit 에러인지 확인
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "quota") ||
		strings.Contains(errStr, "resource_exhausted")
}

var _ Generator = (*Provider)(nil)
