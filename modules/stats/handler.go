package stats

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

type Handler struct {
	recorder *RedisRecorder // nil이면 비활성화
}

func NewHandler(recorder *RedisRecorder) *Handler {
	return &Handler{recorder: recorder}
}

// RegisterRoutes - 라우트 등록
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/stats", h.HandleStats).Methods("GET", "OPTIONS")
}

// HandleStats - GET /api/stats
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if h.recorder == nil {
		json.NewEncoder(w).Encode(Snapshot{Enabled: false, Scenes: map[string]int64{}})
		return
	}

	snap, err := h.recorder.Snapshot(r.Context())
	if err != nil {
		log.Printf("❌ [Stats] Snapshot failed: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "Failed to read stats",
		})
		return
	}

	json.NewEncoder(w).Encode(snap)
}
