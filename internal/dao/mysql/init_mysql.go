// Package mysql 负责建立数据库连接、自动迁移表结构并构造 Repository 层
package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"venturedeck/internal/config"
	"venturedeck/internal/dao/mysql/repository"
	"venturedeck/internal/model"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	mysqldriver "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// gormLogger 把 gorm 日志接入 zap
// 唯一约束冲突由 Repository 翻译为 CodeConflict，属于正常业务分支，不再作为错误输出
type gormLogger struct {
	logger.Interface
}

func newGormLogger() logger.Interface {
	writer, err := zap.NewStdLogAt(zap.L().Named("gorm"), zap.WarnLevel)
	if err != nil {
		return logger.Discard
	}
	return gormLogger{logger.New(writer, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})}
}

func (l gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return gormLogger{l.Interface.LogMode(level)}
}

func (l gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = nil
	}
	l.Interface.Trace(ctx, begin, fc, err)
}

// Open 按配置打开数据库连接
// driver 为 sqlite 时使用纯 Go 驱动，DatabaseName 即文件路径
func Open(conf config.MysqlConfig) (*gorm.DB, error) {
	gormConf := &gorm.Config{
		// 把唯一约束冲突翻译为 gorm.ErrDuplicatedKey
		TranslateError: true,
		Logger:         newGormLogger(),
	}

	switch conf.Driver {
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(conf.DatabaseName), gormConf)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", conf.DatabaseName, err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// 内存库每个连接是独立的数据库，只能保留一个连接
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	case "", "mysql":
		// 格式：user:password@tcp(host:port)/database?params
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			conf.User, conf.Password, conf.Host, conf.Port, conf.DatabaseName)
		db, err := gorm.Open(mysqldriver.Open(dsn), gormConf)
		if err != nil {
			return nil, fmt.Errorf("open mysql %s:%d: %w", conf.Host, conf.Port, err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", conf.Driver)
	}
}

// Migrate 自动迁移表结构，只增不删
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Profile{},
		&model.ContactRequest{},
		&model.Contact{},
		&model.Conversation{},
		&model.Message{},
		&model.Notification{},
		&model.Post{},
	)
}

// Init 初始化数据库连接并返回 Repository 层实例，失败直接退出进程
func Init(conf config.MysqlConfig) (*gorm.DB, *repository.Repositories) {
	db, err := Open(conf)
	if err != nil {
		zap.L().Fatal("Failed to open database", zap.Error(err))
	}
	if err := Migrate(db); err != nil {
		zap.L().Fatal("Failed to migrate database", zap.Error(err))
	}
	return db, repository.NewRepositories(db)
}
