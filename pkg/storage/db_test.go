package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLiteMemory(t *testing.T) {
	db, err := Open(Config{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	require.NotNil(t, db)

	require.NoError(t, db.Exec(`CREATE TABLE t (v TEXT)`).Error)
}

func TestOpen_InvalidConfig(t *testing.T) {
	_, err := Open(Config{Driver: "oracle", DSN: "x"})
	assert.True(t, errors.Is(err, ErrUnknownDriver))

	_, err = Open(Config{Driver: "sqlite"})
	assert.True(t, errors.Is(err, ErrEmptyDSN))
}
