package repository

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewArchiveRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewArchiveRepository(pool)
	assert.NotNil(t, repo)
}
