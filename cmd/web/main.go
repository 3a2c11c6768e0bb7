// Package main 是面向浏览器的聊天网关入口。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"lucai-go/internal/config"
	"lucai-go/internal/gateway"
	"lucai-go/pkg/log"
)

func main() {
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	if err := log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath); err != nil {
		panic(err)
	}
	defer log.Sync()

	gin.SetMode(cfg.Server.Mode)
	// 网关比后端多留一些时间，让后端自己的超时先生效
	forwarder := gateway.NewForwarder(cfg.Web.BackendURL, cfg.AskService.Timeout+5*time.Second)
	r := gateway.NewRouter(gateway.NewHandler(forwarder, cfg.Server.AllowOrigins()))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Web.Port),
		Handler: r,
	}

	go func() {
		log.Infow("网关启动", "addr", srv.Addr, "backend", cfg.Web.BackendURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭网关...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("网关关闭失败", err)
	}
	log.Info("网关已关闭")
}
