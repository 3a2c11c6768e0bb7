// Package config 负责加载和管理应用程序的配置。
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// 全局配置变量，由 Init 填充，供 main 包使用。
var Conf Config

// Config 是整个应用程序的配置结构体，与 config.yaml 文件结构对应。
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	AskService AskServiceConfig `mapstructure:"ask_service"`
	Web        WebConfig        `mapstructure:"web"`
	Log        LogConfig        `mapstructure:"log"`
}

// ServerConfig 存储后端 API 服务器相关的配置。
type ServerConfig struct {
	Port      string `mapstructure:"port"`
	Mode      string `mapstructure:"mode"`
	APIPrefix string `mapstructure:"api_prefix"`
	// CORSAllowOrigins 为逗号分隔的来源列表。
	// 注意：为空时允许所有来源（反射请求的 Origin 并允许携带凭证），生产环境应显式配置。
	// 非空时列表之外的来源收到 403，请求不会到达处理器；网关的 websocket 握手沿用同一列表。
	CORSAllowOrigins string `mapstructure:"cors_allow_origins"`
}

// DatabaseConfig 存储用户库的连接配置。
type DatabaseConfig struct {
	// Driver 取值 sqlite（默认）或 mysql。
	Driver string `mapstructure:"driver"`
	// Path 是 SQLite 数据库文件路径。
	Path string `mapstructure:"path"`
	// DSN 仅在 Driver 为 mysql 时使用。
	DSN string `mapstructure:"dsn"`
}

// AskServiceConfig 存储上游 ask-service 的配置。
type AskServiceConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// WebConfig 存储面向浏览器的网关配置。
type WebConfig struct {
	Port       string `mapstructure:"port"`
	BackendURL string `mapstructure:"backend_url"`
}

// LogConfig 存储日志相关的配置。
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// AllowOrigins 将逗号分隔的 CORS 来源解析为列表，忽略空白项。
func (c ServerConfig) AllowOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORSAllowOrigins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// envBindings 保留原有部署使用的环境变量名。
var envBindings = map[string]string{
	"server.port":               "PORT",
	"server.mode":               "GIN_MODE",
	"server.api_prefix":         "API_PREFIX",
	"server.cors_allow_origins": "CORS_ALLOW_ORIGINS",
	"database.driver":           "DB_DRIVER",
	"database.path":             "DB_PATH",
	"database.dsn":              "DB_DSN",
	"ask_service.base_url":      "ASK_SERVICE_URL",
	"ask_service.timeout":       "ASK_SERVICE_TIMEOUT",
	"web.port":                  "WEB_PORT",
	"web.backend_url":           "BACKEND_API_URL",
	"log.level":                 "LOG_LEVEL",
	"log.format":                "LOG_FORMAT",
	"log.output_path":           "LOG_OUTPUT_PATH",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.api_prefix", "/api")
	v.SetDefault("server.cors_allow_origins", "")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "data/lucai.db")
	v.SetDefault("database.dsn", "")
	v.SetDefault("ask_service.base_url", "http://ask-service:9000")
	v.SetDefault("ask_service.timeout", 60*time.Second)
	v.SetDefault("web.port", "3000")
	v.SetDefault("web.backend_url", "http://localhost:8080/api")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output_path", "")
}

// Load 读取可选的 YAML 配置文件与环境变量，返回解析后的配置。
// 配置文件不存在时仅使用默认值和环境变量。
func Load(configPath string) (Config, error) {
	// .env 文件是可选的
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("绑定环境变量 %s 失败: %w", env, err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("读取配置文件失败: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("无法将配置解析到结构体中: %w", err)
	}
	cfg.Server.APIPrefix = normalizePrefix(cfg.Server.APIPrefix)
	if cfg.AskService.Timeout <= 0 {
		return Config{}, fmt.Errorf("ask_service.timeout 必须为正数, 当前值: %s", cfg.AskService.Timeout)
	}
	return cfg, nil
}

// Init 初始化配置加载并填充全局 Conf，失败时 panic。
func Init(configPath string) {
	cfg, err := Load(configPath)
	if err != nil {
		panic(err)
	}
	Conf = cfg
}

func normalizePrefix(prefix string) string {
	prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return prefix
}
