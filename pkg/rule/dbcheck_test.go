package rule

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"katydid-common-record/pkg/record"
	"katydid-common-record/pkg/storage"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := storage.Open(storage.Config{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`CREATE TABLE users (username TEXT, email TEXT)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO users (username, email) VALUES ('alice', 'alice@example.com')`).Error)
	return db
}

func TestUnique(t *testing.T) {
	db := openTestDB(t)
	reg := NewRegistry()
	require.NoError(t, reg.Register("unique", NewUniqueFactory(db)))

	v, err := reg.Build(NewSpec("unique", "users", "username"))
	require.NoError(t, err)

	taken := record.NewMapRecord(record.Attributes{"username": "alice"})
	v.Validate(taken, "username")
	msg, failed := taken.Error("username")
	require.True(t, failed)
	assert.Contains(t, msg, "already been taken")

	free := record.NewMapRecord(record.Attributes{"username": "bob"})
	v.Validate(free, "username")
	assert.False(t, free.Errors().HasErrors())

	// 列名缺省为属性名
	v, err = reg.Build(NewSpec("unique", "users"))
	require.NoError(t, err)
	byAttr := record.NewMapRecord(record.Attributes{"email": "alice@example.com"})
	v.Validate(byAttr, "email")
	assert.True(t, byAttr.Errors().HasErrors())

	// 空值跳过
	blank := record.NewMapRecord(record.Attributes{"username": ""})
	v2, err := reg.Build(NewSpec("unique", "users", "username"))
	require.NoError(t, err)
	v2.Validate(blank, "username")
	assert.False(t, blank.Errors().HasErrors())
}

func TestExist(t *testing.T) {
	db := openTestDB(t)
	reg := NewRegistry()
	require.NoError(t, reg.Register("exist", NewExistFactory(db)))

	v, err := reg.Build(NewSpec("exist", "users", "username"))
	require.NoError(t, err)

	known := record.NewMapRecord(record.Attributes{"username": "alice"})
	v.Validate(known, "username")
	assert.False(t, known.Errors().HasErrors())

	unknown := record.NewMapRecord(record.Attributes{"username": "mallory"})
	v.Validate(unknown, "username")
	msg, failed := unknown.Error("username")
	require.True(t, failed)
	assert.Contains(t, msg, "invalid")
}

func TestDBFactories_参数与句柄校验(t *testing.T) {
	db := openTestDB(t)

	_, err := NewUniqueFactory(db)([]string{})
	assert.True(t, errors.Is(err, ErrInvalidParams))

	_, err = NewUniqueFactory(nil)([]string{"users"})
	assert.True(t, errors.Is(err, ErrNilDB))

	_, err = NewExistFactory(db)([]string{"a", "b", "c"})
	assert.True(t, errors.Is(err, ErrInvalidParams))

	_, err = NewBlocklistFactory(nil)([]string{"banned"})
	assert.True(t, errors.Is(err, ErrNilRedis))

	_, err = NewBlocklistFactory(nil)([]string{})
	assert.True(t, errors.Is(err, ErrInvalidParams))
}
