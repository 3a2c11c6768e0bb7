// Package main 是后端 API 服务的入口点。
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
	"lucai-go/internal/repository"
	"lucai-go/internal/router"
	"lucai-go/internal/service"
	"lucai-go/pkg/askservice"
	"lucai-go/pkg/database"
	"lucai-go/pkg/log"
)

func main() {
	startedAt := time.Now()

	// 1. 初始化配置
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. 初始化日志记录器
	if err := log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath); err != nil {
		panic(err)
	}
	defer log.Sync()
	log.Info("日志记录器初始化成功")

	// 3. 初始化数据库并建表
	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal("数据库初始化失败", err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal("数据库迁移失败", err)
	}

	// 4. 初始化 Repository 与 Service
	userRepository := repository.NewUserRepository(db)
	userService := service.NewUserService(userRepository, repository.DefaultSeedUsers())
	if err := userService.EnsureSeeded(context.Background()); err != nil {
		log.Fatal("写入初始用户失败", err)
	}
	askClient := askservice.NewClient(cfg.AskService)
	chatService := service.NewChatService(askClient)

	// 5. 设置 Gin 模式并注册路由
	gin.SetMode(cfg.Server.Mode)
	r := router.New(cfg.Server, userService, chatService, startedAt)

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infow("服务启动",
			"addr", srv.Addr,
			"apiPrefix", cfg.Server.APIPrefix,
			"dbDriver", cfg.Database.Driver,
			"askService", cfg.AskService.BaseURL,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("HTTP 服务器关闭失败", err)
	}
	if err := database.Close(db); err != nil {
		log.Error("关闭数据库失败", err)
	}
	log.Info("服务已优雅关闭")
}
