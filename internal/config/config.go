// Package config 提供应用程序的配置加载和管理功能
// 使用 TOML 格式的配置文件，支持多路径查找
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// MainConfig 主配置，包含应用基本信息
type MainConfig struct {
	AppName  string `toml:"appName"`  // 应用名称
	Host     string `toml:"host"`     // 监听地址，如 "0.0.0.0"
	Port     int    `toml:"port"`     // 监听端口，如 8000
	Mode     string `toml:"mode"`     // 运行模式：dev / release
	ForceTLS bool   `toml:"forceTLS"` // 是否启用 HTTP -> HTTPS 重定向
	Locale   string `toml:"locale"`   // 参数校验提示语言：en / zh
}

// MysqlConfig 数据库连接配置
// Driver 为 "sqlite" 时 DatabaseName 作为文件路径（":memory:" 为内存库），用于本地开发和测试
type MysqlConfig struct {
	Driver       string `toml:"driver"`       // mysql / sqlite
	Host         string `toml:"host"`         // MySQL 服务器地址
	Port         int    `toml:"port"`         // MySQL 端口，默认 3306
	User         string `toml:"user"`         // 数据库用户名
	Password     string `toml:"password"`     // 数据库密码
	DatabaseName string `toml:"databaseName"` // 数据库名称
}

// RedisConfig Redis 连接配置，Host 为空时使用进程内缓存
type RedisConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Password string `toml:"password"`
	Db       int    `toml:"db"`
}

// LogConfig 日志配置，使用 lumberjack 进行日志轮转
type LogConfig struct {
	LogPath    string `toml:"logPath"`    // 日志文件存储目录
	FileName   string `toml:"fileName"`   // 日志文件名
	MaxSize    int    `toml:"maxSize"`    // 单个日志文件最大大小（MB）
	MaxBackups int    `toml:"maxBackups"` // 保留旧日志文件的最大个数
	MaxAge     int    `toml:"maxAge"`     // 保留旧日志文件的最大天数
	Level      string `toml:"level"`      // 日志级别：debug, info, warn, error
}

// KafkaConfig 实时事件分发配置
type KafkaConfig struct {
	MessageMode string        `toml:"messageMode"` // "channel"（单机）或 "kafka"（多实例）
	HostPort    string        `toml:"hostPort"`    // Kafka 地址，如 "localhost:9092"
	EventTopic  string        `toml:"eventTopic"`  // 实时事件主题
	Timeout     time.Duration `toml:"timeout"`     // 写超时
}

// StorageConfig 对象存储配置
// Bucket 为空时头像写入本地 LocalPath 并通过 /static/avatars 访问
type StorageConfig struct {
	Bucket          string `toml:"bucket"`
	Region          string `toml:"region"`
	Endpoint        string `toml:"endpoint"` // 兼容 S3 协议的自定义地址（如 MinIO），可为空
	AccessKeyID     string `toml:"accessKeyID"`
	SecretAccessKey string `toml:"secretAccessKey"`
	PublicBaseURL   string `toml:"publicBaseURL"` // 对外访问前缀，如 CDN 地址
	LocalPath       string `toml:"localPath"`     // 本地头像目录
}

// MailConfig SMTP 配置，Host 为空时只记录日志不发信
type MailConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	From     string `toml:"from"`
	ResetURL string `toml:"resetURL"` // 前端重置密码页面地址，token 以查询参数追加
}

// JWTConfig JWT 认证配置
type JWTConfig struct {
	Secret             string `toml:"secret"`             // 签名密钥，建议 32 字符以上
	AccessTokenExpiry  int    `toml:"accessTokenExpiry"`  // Access Token 有效期（分钟）
	RefreshTokenExpiry int    `toml:"refreshTokenExpiry"` // Refresh Token 有效期（小时）
}

// RetentionConfig 被忽略请求的保留策略
type RetentionConfig struct {
	IgnoredRequestDays int    `toml:"ignoredRequestDays"` // 保留天数
	SweepSpec          string `toml:"sweepSpec"`          // 清理任务 cron 表达式
}

// SnowflakeConfig 雪花算法配置
type SnowflakeConfig struct {
	MachineID int64 `toml:"machineId"` // 节点 ID，范围 0-1023
}

// Config 应用程序总配置，聚合所有子配置
type Config struct {
	MainConfig      `toml:"mainConfig"`
	MysqlConfig     `toml:"mysqlConfig"`
	RedisConfig     `toml:"redisConfig"`
	LogConfig       `toml:"logConfig"`
	KafkaConfig     `toml:"kafkaConfig"`
	StorageConfig   `toml:"storageConfig"`
	MailConfig      `toml:"mailConfig"`
	JWTConfig       `toml:"jwtConfig"`
	RetentionConfig `toml:"retentionConfig"`
	SnowflakeConfig `toml:"snowflakeConfig"`
}

// config 全局配置单例，延迟加载
var config *Config

// LoadConfig 从多个候选路径加载配置文件，找到第一个可用的即停止
func LoadConfig() error {
	paths := []string{
		"configs/config_local.toml",
		"configs/config.toml",
		"../../configs/config_local.toml", // 从 cmd/venturedeck 运行时
		"../../configs/config.toml",
	}
	for _, path := range paths {
		if _, err := toml.DecodeFile(path, config); err == nil {
			return nil
		}
	}
	return fmt.Errorf("could not find configuration file in any of the search paths")
}

// LoadFile 从指定路径加载配置并补齐默认值
func LoadFile(path string) (*Config, error) {
	cfg := new(Config)
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	cfg.setDefaults()
	return cfg, nil
}

// GetConfig 获取全局配置实例（单例模式）
// 首次调用时会自动加载配置文件，找不到文件时全部使用默认值
func GetConfig() *Config {
	if config == nil {
		config = new(Config)
		_ = LoadConfig()
		config.setDefaults()
	}
	return config
}

func (c *Config) setDefaults() {
	if c.AppName == "" {
		c.AppName = "venturedeck"
	}
	if c.MainConfig.Host == "" {
		c.MainConfig.Host = "0.0.0.0"
	}
	if c.MainConfig.Port == 0 {
		c.MainConfig.Port = 8000
	}
	if c.Mode == "" {
		c.Mode = "dev"
	}
	if c.Locale == "" {
		c.Locale = "en"
	}
	if c.Driver == "" {
		c.Driver = "mysql"
	}
	if c.MessageMode == "" {
		c.MessageMode = "channel"
	}
	if c.EventTopic == "" {
		c.EventTopic = "venturedeck_events"
	}
	if c.KafkaConfig.Timeout == 0 {
		c.KafkaConfig.Timeout = 5 * time.Second
	}
	if c.LocalPath == "" {
		c.LocalPath = "./static/avatars"
	}
	if c.AccessTokenExpiry == 0 {
		c.AccessTokenExpiry = 15
	}
	if c.RefreshTokenExpiry == 0 {
		c.RefreshTokenExpiry = 168
	}
	if c.IgnoredRequestDays == 0 {
		c.IgnoredRequestDays = 30
	}
	if c.SweepSpec == "" {
		c.SweepSpec = "@every 1h"
	}
	if c.MachineID == 0 {
		c.MachineID = 1
	}
}
