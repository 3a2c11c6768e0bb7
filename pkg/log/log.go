// Package log 封装了基于 zap 的全局结构化日志记录器。
package log

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// 在 Init 之前使用 no-op logger，保证各个包在测试中可以直接调用日志函数。
var sugar = zap.NewNop().Sugar()

// Init 按配置构建全局 logger。
// format 为 console 时输出带颜色的可读格式，其余取值一律输出 JSON；
// outputPath 非空时额外写入 outputPath/app.log。
func Init(level, format, outputPath string) error {
	zapConfig, err := buildConfig(level, format, outputPath)
	if err != nil {
		return err
	}
	logger, err := zapConfig.Build()
	if err != nil {
		return fmt.Errorf("构建 logger 失败: %w", err)
	}
	sugar = logger.Sugar()
	return nil
}

func buildConfig(level, format, outputPath string) (zap.Config, error) {
	var zapConfig zap.Config
	if format == "console" {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapConfig = zap.NewProductionConfig()
		zapConfig.Encoding = "json"
	}

	// 无法识别的级别回退到 info
	logLevel := zap.NewAtomicLevelAt(zap.InfoLevel)
	_ = logLevel.UnmarshalText([]byte(level))
	zapConfig.Level = logLevel

	zapConfig.OutputPaths = []string{"stdout"}
	if outputPath != "" {
		if err := os.MkdirAll(outputPath, 0o755); err != nil {
			return zap.Config{}, fmt.Errorf("创建日志目录失败: %w", err)
		}
		zapConfig.OutputPaths = append(zapConfig.OutputPaths, filepath.Join(outputPath, "app.log"))
	}
	return zapConfig, nil
}

func Info(msg string) {
	sugar.Info(msg)
}

func Infof(template string, args ...interface{}) {
	sugar.Infof(template, args...)
}

// Infow 使用键值对记录结构化日志，访问日志走这里。
func Infow(msg string, keysAndValues ...interface{}) {
	sugar.Infow(msg, keysAndValues...)
}

func Warnf(template string, args ...interface{}) {
	sugar.Warnf(template, args...)
}

// Error 记录一条 error 日志，err 作为 "error" 字段输出。
func Error(msg string, err error) {
	sugar.Errorw(msg, "error", err)
}

func Errorf(template string, args ...interface{}) {
	sugar.Errorf(template, args...)
}

func Errorw(msg string, keysAndValues ...interface{}) {
	sugar.Errorw(msg, keysAndValues...)
}

// Fatal 记录错误后退出进程。
func Fatal(msg string, err error) {
	sugar.Fatalw(msg, "error", err)
}

func Fatalf(template string, args ...interface{}) {
	sugar.Fatalf(template, args...)
}

// Sync 刷新缓冲的日志。
func Sync() {
	_ = sugar.Sync()
}
