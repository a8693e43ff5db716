package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/auth"
	"cloud.google.com/go/auth/credentials"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// loadVertexCredentials - Vertex AI 인증 정보 로드
// 1. credsJSON (Render 배포용 환경변수)
// 2. credsPath (로컬 테스트용 파일)
// 3. 둘 다 없으면 nil 반환 → SDK가 Application Default Credentials 사용
func loadVertexCredentials(ctx context.Context, credsJSON, credsPath string) (*auth.Credentials, error) {
	var data []byte

	switch {
	case credsJSON != "":
		log.Println("✅ [VertexAI] Using VERTEXAI_CREDENTIALS_JSON from environment")
		data = []byte(credsJSON)
	case credsPath != "":
		log.Printf("✅ [VertexAI] Using credentials from file: %s", credsPath)
		fileData, err := os.ReadFile(credsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
		data = fileData
	default:
		log.Println("⚠️  [VertexAI] No explicit credentials found, using Application Default Credentials")
		return nil, nil
	}

	// JSON 유효성 검사
	var probe map[string]interface{}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("invalid JSON credentials: %w", err)
	}

	creds, err := credentials.DetectDefault(&credentials.DetectOptions{
		Scopes:          []string{cloudPlatformScope},
		CredentialsJSON: data,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load Vertex AI credentials: %w", err)
	}
	return creds, nil
}
