// Package mysqltest 为测试提供已迁移的内存数据库
package mysqltest

import (
	"testing"

	"venturedeck/internal/config"
	"venturedeck/internal/dao/mysql"
	"venturedeck/internal/dao/mysql/repository"
	"venturedeck/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB 每个测试独立的内存 SQLite，测试结束自动关闭
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := mysql.Open(config.MysqlConfig{Driver: "sqlite", DatabaseName: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, mysql.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewRepositories 基于 NewDB 构造 Repository 聚合
func NewRepositories(t testing.TB) *repository.Repositories {
	return repository.NewRepositories(NewDB(t))
}

// CreateProfile 写入一个测试用户，complete 为 true 时填满目录所需字段
func CreateProfile(t testing.TB, repos *repository.Repositories, uuid, email string, complete bool) *model.Profile {
	t.Helper()
	p := &model.Profile{Uuid: uuid, Email: email, RawPassword: "password123"}
	if complete {
		p.FullName = "Founder " + uuid
		p.Bio = "Building things"
		p.StartupVision = "Climate software"
		p.Skills = "go, sales"
		p.CofounderType = "Technical"
		p.University = "MIT"
	}
	require.NoError(t, repos.Profile.Create(p))
	return p
}
