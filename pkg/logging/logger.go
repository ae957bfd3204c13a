package logging

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config 日志配置
type Config struct {
	// Filename 日志文件路径，为空时输出到 stderr
	Filename string
	// Level 日志级别：debug/info/warn/error，缺省 info
	Level string
	// MaxSizeMB 单文件最大体积（MB），超过后滚动
	MaxSizeMB int
	// MaxBackups 保留的滚动文件数量
	MaxBackups int
	// MaxAgeDays 滚动文件保留天数
	MaxAgeDays int
	// Compress 是否压缩滚动文件
	Compress bool
}

var (
	defaultLogger *zap.Logger
	loggerMu      sync.RWMutex
)

// Default 获取全局默认日志器
// 未显式配置时输出 JSON 到 stderr，级别 info
// 线程安全，可在多个 goroutine 中并发调用
func Default() *zap.Logger {
	loggerMu.RLock()
	l := defaultLogger
	loggerMu.RUnlock()
	if l != nil {
		return l
	}

	loggerMu.Lock()
	defer loggerMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = New(Config{})
	}
	return defaultLogger
}

// SetDefault 替换全局默认日志器
// 嵌入方在进程初始化阶段调用一次，之后不应再更换
func SetDefault(l *zap.Logger) {
	if l == nil {
		return
	}
	loggerMu.Lock()
	defaultLogger = l
	loggerMu.Unlock()
}

// New 按配置创建日志器
// 指定了 Filename 时通过 lumberjack 写入并滚动，否则写 stderr
func New(cfg Config) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encCfg)

	var sink zapcore.WriteSyncer
	if cfg.Filename != "" {
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    orDefault(cfg.MaxSizeMB, 100),
			MaxBackups: orDefault(cfg.MaxBackups, 3),
			MaxAge:     orDefault(cfg.MaxAgeDays, 28),
			Compress:   cfg.Compress,
		})
	} else {
		sink = zapcore.AddSync(os.Stderr)
	}

	core := zapcore.NewCore(encoder, sink, parseLevel(cfg.Level))
	return zap.New(core)
}

func parseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
