package processimage

// ProcessImageRequest - POST /api/process-image 요청
type ProcessImageRequest struct {
	Image            string `json:"image"`            // base64 (data URL 허용)
	BackgroundPrompt string `json:"backgroundPrompt"` // 해석된 배경 설명
}

// ProcessImageResponse - 합성 결과
type ProcessImageResponse struct {
	Image    string `json:"image"`              // base64 PNG
	ImageURL string `json:"imageUrl,omitempty"` // 아카이브 활성화 시에만
}

// AnalyzeRequest - POST /api/analyze-product 요청
type AnalyzeRequest struct {
	Image string `json:"image"`
}

// AnalyzeResponse - 제품 설명
type AnalyzeResponse struct {
	Description string `json:"description"`
}

// ErrorResponse - 모든 에러 응답
type ErrorResponse struct {
	Error string `json:"error"`
}

// Composition - Compose 결과
type Composition struct {
	ImageBase64 string
	MIMEType    string
	ArchiveURL  string
}

// 클라이언트에 노출되는 에러 메시지
const (
	MsgImageRequired            = "Image is required"
	MsgBackgroundPromptRequired = "Background prompt is required"
	MsgImageNotBase64           = "Image must be base64 encoded"
	MsgInvalidBody              = "Invalid request body"
	MsgBodyTooLarge             = "Request body too large"
	MsgProcessFailed            = "Failed to process image. Please try again."
	MsgAnalyzeFailed            = "Failed to analyze image. Please try again."
)
