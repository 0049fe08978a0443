package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errSeatTaken = New(KindConflict, "SEAT_ALREADY_BOOKED", "seat is already booked")

func TestErrorsIs_MatchesSentinelThroughWrapping(t *testing.T) {
	err := fmt.Errorf("create booking: %w", errSeatTaken.WithDetail("seat A1 is already booked"))

	assert.True(t, errors.Is(err, errSeatTaken))
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, http.StatusConflict, HTTPStatus(err))
}

func TestErrorsIs_DifferentCodeDoesNotMatch(t *testing.T) {
	other := New(KindConflict, "DUPLICATE_GRID_POSITION", "duplicate grid position")
	assert.False(t, errors.Is(other, errSeatTaken))
}

func TestWrap_KeepsCause(t *testing.T) {
	cause := errors.New("duplicate key value violates unique constraint")
	err := errSeatTaken.Wrap(cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, errSeatTaken)
	assert.Contains(t, err.Error(), "duplicate key")
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindNotFound:      http.StatusNotFound,
		KindInvalidState:  http.StatusUnprocessableEntity,
		KindValidation:    http.StatusBadRequest,
		KindLimitExceeded: http.StatusTooManyRequests,
		KindForbidden:     http.StatusForbidden,
		KindUnauthorized:  http.StatusUnauthorized,
	}
	for kind, status := range cases {
		assert.Equal(t, status, HTTPStatus(New(kind, "X", "x")), kind)
	}
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("connection reset")))
}
