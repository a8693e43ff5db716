package main

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"studio-photo-server/modules/common/metrics"
	processimage "studio-photo-server/modules/process-image"
	"studio-photo-server/modules/scene"
	"studio-photo-server/modules/stats"
)

const serviceName = "studio-photo-server"

func newRouter(service *processimage.Service, recorder *stats.RedisRecorder, maxBodyBytes int64) *mux.Router {
	r := mux.NewRouter()

	// CORS 미들웨어 적용
	r.Use(enableCORS)
	r.Use(metrics.Middleware)

	r.HandleFunc("/", healthCheck).Methods("GET")
	r.HandleFunc("/health", healthCheck).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	scene.NewHandler().RegisterRoutes(r)
	processimage.NewHandler(service, maxBodyBytes).RegisterRoutes(r)
	stats.NewHandler(recorder).RegisterRoutes(r)

	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// 헬스 체크 엔드포인트
func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": serviceName,
	})
}
