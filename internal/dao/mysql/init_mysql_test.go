package mysql

import (
	"testing"

	"venturedeck/internal/config"
	"venturedeck/internal/dao/mysql/repository"
	"venturedeck/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestExpectedMissesAndConflictsAreNotLogged(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	db, err := Open(config.MysqlConfig{Driver: "sqlite", DatabaseName: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	repos := repository.NewRepositories(db)

	_, err = repos.Profile.FindByUuid("U_missing")
	require.Error(t, err)

	p := &model.Profile{Uuid: "U_one", Email: "one@example.com", RawPassword: "password123"}
	require.NoError(t, repos.Profile.Create(p))
	dup := &model.Profile{Uuid: "U_two", Email: "one@example.com", RawPassword: "password123"}
	require.Error(t, repos.Profile.Create(dup))

	assert.Zero(t, logs.Len(), "unexpected gorm logs: %v", logs.All())
}
