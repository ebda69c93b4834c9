package service

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

func menuColumns() []string {
	return []string{"id", "parent_id", "name", "path", "icon", "kind", "perm_code", "sort", "enabled"}
}

func userColumns() []string {
	return []string{"id", "username", "nickname", "password", "email", "avatar", "role_id", "status", "create_time", "update_time"}
}

func roleColumns() []string {
	return []string{"id", "name", "code", "description"}
}
