package pgerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: CodeUniqueViolation, ConstraintName: "idx_bookings_confirmed_seat"}

	assert.True(t, IsUniqueViolation(fmt.Errorf("insert booking: %w", pgErr)))
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.Equal(t, "idx_bookings_confirmed_seat", ConstraintName(pgErr))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(&pgconn.PgError{Code: CodeSerializationFailure}))
	assert.True(t, IsRetryable(&pgconn.PgError{Code: CodeLockNotAvailable}))
	assert.False(t, IsRetryable(&pgconn.PgError{Code: CodeUniqueViolation}))
}
