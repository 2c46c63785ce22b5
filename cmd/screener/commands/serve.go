package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/screener/internal/api"
	"github.com/wonny/screener/internal/api/handlers"
	"github.com/wonny/screener/internal/api/ws"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

이 명령어는:
- HTTP API 서버 시작
- 스크리닝 실행/조회 엔드포인트 제공
- 진행상황 websocket 스트리밍

Endpoints:
  GET  /health           - Health check
  GET  /api/strategies   - 전략 목록
  POST /api/screen       - 스크리닝 실행
  GET  /api/runs         - 실행 이력 (DB 필요)
  GET  /api/runs/{id}    - 실행 상세 (DB 필요)
  GET  /ws/progress      - 수집 진행상황 스트림

Example:
  go run ./cmd/screener serve
  go run ./cmd/screener serve --port 8090`,
	RunE: runServe,
}

var servePort string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", "", "API 서버 포트")
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Screener API Server ===")

	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	if servePort != "" {
		a.cfg.Port = servePort
	}

	hub := ws.NewHub(a.log)
	screenHandler := handlers.NewScreenHandler(a.runner, a.repo, hub, a.log)
	router := api.NewRouter(screenHandler, hub, a.log)
	server := api.New(a.cfg, a.log, router)

	go func() {
		if err := server.Start(); err != nil {
			a.log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("\n✅ Server running on http://localhost:%s\n", a.cfg.Port)
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
