package scene

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

type Handler struct{}

type ListResponse struct {
	Scenes    []Preset `json:"scenes"`
	DefaultID string   `json:"default"`
}

type ResolveResponse struct {
	Key              string `json:"key"`
	BackgroundPrompt string `json:"backgroundPrompt"`
	Custom           bool   `json:"custom"`
}

func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes - 라우트 등록
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/scenes", h.HandleList).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/scenes/resolve", h.HandleResolve).Methods("GET", "OPTIONS")
}

// HandleList - GET /api/scenes
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListResponse{
		Scenes:    Presets(),
		DefaultID: DefaultID,
	})
}

// HandleResolve - GET /api/scenes/resolve?key=...
func (h *Handler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	key := r.URL.Query().Get("key")
	json.NewEncoder(w).Encode(ResolveResponse{
		Key:              key,
		BackgroundPrompt: Resolve(key),
		Custom:           IsCustom(key),
	})
}
