package processimage

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

type Handler struct {
	service      *Service
	maxBodyBytes int64
}

func NewHandler(service *Service, maxBodyBytes int64) *Handler {
	return &Handler{
		service:      service,
		maxBodyBytes: maxBodyBytes,
	}
}

// RegisterRoutes - 라우트 등록
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/process-image", h.HandleProcessImage).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/analyze-product", h.HandleAnalyzeProduct).Methods("POST", "OPTIONS")
}

// HandleProcessImage - POST /api/process-image
// 제품 이미지 + 배경 설명 → 합성 이미지 (base64 PNG)
func (h *Handler) HandleProcessImage(w http.ResponseWriter, r *http.Request) {
	var req ProcessImageRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.service.Compose(r.Context(), req.Image, req.BackgroundPrompt)
	if err != nil {
		h.writeServiceError(w, err, MsgProcessFailed)
		return
	}

	writeJSON(w, http.StatusOK, ProcessImageResponse{
		Image:    result.ImageBase64,
		ImageURL: result.ArchiveURL,
	})
}

// HandleAnalyzeProduct - POST /api/analyze-product
func (h *Handler) HandleAnalyzeProduct(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if !h.decode(w, r, &req) {
		return
	}

	description, err := h.service.Analyze(r.Context(), req.Image)
	if err != nil {
		h.writeServiceError(w, err, MsgAnalyzeFailed)
		return
	}

	writeJSON(w, http.StatusOK, AnalyzeResponse{Description: description})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if h.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Printf("❌ [ProcessImage] Request body exceeds %d bytes", tooLarge.Limit)
			writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: MsgBodyTooLarge})
			return false
		}
		log.Printf("❌ [ProcessImage] Invalid request: %v", err)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: MsgInvalidBody})
		return false
	}
	return true
}

// 검증 에러는 메시지 그대로, 나머지는 일반 메시지 (원인은 로그에만)
func (h *Handler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: vErr.Message})
		return
	}

	log.Printf("❌ [ProcessImage] %v", err)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: fallback})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
