package utils

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultInputMIME is assumed when the uploaded bytes are not a recognized image.
const DefaultInputMIME = "image/jpeg"

var ErrEmptyImage = errors.New("image data is empty")

// 모델에 그대로 전달 가능한 입력 MIME
var supportedInputMIMEs = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/heic": true,
	"image/heif": true,
	"image/gif":  true,
}

// StripDataURL - "data:image/png;base64,..." 형식이면 payload만 반환
func StripDataURL(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "data:") {
		return s
	}
	if idx := strings.Index(s, ";base64,"); idx >= 0 {
		return s[idx+len(";base64,"):]
	}
	return s
}

// DecodeBase64Image - base64 (또는 data URL) 이미지를 바이너리로 디코딩
func DecodeBase64Image(s string) ([]byte, error) {
	payload := StripDataURL(s)
	if payload == "" {
		return nil, ErrEmptyImage
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// 패딩 없는 입력 허용
		if raw, rawErr := base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "=")); rawErr == nil {
			data = raw
		} else {
			return nil, fmt.Errorf("invalid base64 image: %w", err)
		}
	}
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	return data, nil
}

// EncodeBase64 - 이미지 바이너리를 base64로 변환
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DetectImageMIME sniffs the MIME type of image bytes, falling back to
// DefaultInputMIME for anything the model cannot take as an inline image.
func DetectImageMIME(data []byte) string {
	mime := mimetype.Detect(data).String()
	if supportedInputMIMEs[mime] {
		return mime
	}
	return DefaultInputMIME
}

// IsImage - 파일이 이미지인지 확인 (업로드 전 검사용)
func IsImage(data []byte) bool {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "image/") {
			return true
		}
	}
	return false
}

// TruncateString - 로그용 문자열 자르기
func TruncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
