// anheyu-cms/cmd/server/serve.go
package server

import (
	"context"
	"log"
	"os/signal"
	"syscall"
)

// Serve 构建应用并运行，收到 SIGINT/SIGTERM 后优雅退出
func Serve(configPath string, banner bool) error {
	app, cleanup, err := NewApp(configPath)
	if cleanup != nil {
		defer cleanup()
	}
	if err != nil {
		return err
	}
	if banner {
		app.PrintBanner()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- app.Run() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Println("收到退出信号，正在关闭服务...")
	}

	if err := app.Shutdown(context.Background()); err != nil {
		log.Printf("⚠️ HTTP 服务关闭超时: %v", err)
	}
	return <-errCh
}
