package storage

import (
	"errors"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Config 数据库连接配置
type Config struct {
	// Driver 驱动名：mysql / postgres / sqlite
	Driver string `mapstructure:"driver"`
	// DSN 数据源连接串
	DSN string `mapstructure:"dsn"`
}

var (
	// ErrUnknownDriver 不支持的数据库驱动
	ErrUnknownDriver = errors.New("unknown database driver")

	// ErrEmptyDSN 连接串为空
	ErrEmptyDSN = errors.New("dsn cannot be empty")
)

// Open 按配置打开数据库连接
// 供数据库支撑的验证器（unique/exist）与嵌入方共用
func Open(cfg Config) (*gorm.DB, error) {
	if cfg.DSN == "" {
		return nil, ErrEmptyDSN
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}
	return db, nil
}
