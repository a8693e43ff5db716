package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studio-photo-server/modules/archive"
	"studio-photo-server/modules/common/config"
	"studio-photo-server/modules/common/gemini"
	redisutil "studio-photo-server/modules/common/redis"
	processimage "studio-photo-server/modules/process-image"
	"studio-photo-server/modules/stats"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// 환경변수 로드
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// genai 클라이언트는 첫 요청 시 생성
	provider := gemini.NewProvider(gemini.OptionsFromConfig(cfg))

	var opts []processimage.Option
	var recorder *stats.RedisRecorder

	// 사용 통계 (Redis 설정 시)
	if cfg.StatsEnabled() {
		rdb, err := redisutil.Connect(ctx, cfg)
		if err != nil {
			log.Printf("⚠️  Stats disabled: %v", err)
		} else {
			defer rdb.Close()
			recorder = stats.NewRedisRecorder(rdb)
			opts = append(opts, processimage.WithRecorder(recorder))
		}
	}

	// 결과 아카이브 (Supabase 설정 시)
	if cfg.ArchiveEnabled() {
		archiver, err := archive.NewArchiver(cfg)
		if err != nil {
			log.Printf("⚠️  Archive disabled: %v", err)
		} else {
			opts = append(opts, processimage.WithArchiver(archiver))
		}
	}

	service := processimage.NewService(provider, cfg.GeminiModel, opts...)
	r := newRouter(service, recorder, cfg.MaxRequestBytes)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("🚀 Studio Photo Server starting on port %s (backend=%s, model=%s)",
		cfg.Port, cfg.GeminiBackend, cfg.GeminiModel)
	log.Printf("❤️  Health check: http://localhost:%s/health", cfg.Port)
	log.Printf("🖼️  Process image: POST http://localhost:%s/api/process-image", cfg.Port)
	log.Printf("📊 Metrics: http://localhost:%s/metrics", cfg.Port)

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		log.Println("🛑 Shutting down server...")
	case err := <-errCh:
		if err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Graceful shutdown failed: %v", err)
	}
}
