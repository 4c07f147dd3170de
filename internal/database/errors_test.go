package database

import (
	"errors"
	"fmt"
	"testing"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.True(t, IsUniqueViolation(&mysqldriver.MySQLError{Number: 1062}))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: clients.email")))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23P01"}))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsExclusionViolation(t *testing.T) {
	assert.True(t, IsExclusionViolation(fmt.Errorf("tx: %w", &pgconn.PgError{Code: "23P01"})))
	assert.False(t, IsExclusionViolation(errors.New("boom")))
}
