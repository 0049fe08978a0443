package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedLayout struct {
	VenueID string `json:"venue_id"`
	Seats   int    `json:"seats"`
}

func TestGet_Hit(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	svc := NewService(db)

	mockRedis.ExpectGet("stagebook:layouts:venue:uuid:v1").SetVal(`{"venue_id":"v1","seats":84}`)

	var got cachedLayout
	err := svc.Get(context.Background(), "stagebook:layouts:venue:uuid:v1", &got)

	require.NoError(t, err)
	assert.Equal(t, cachedLayout{VenueID: "v1", Seats: 84}, got)
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestGet_Miss(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	svc := NewService(db)

	mockRedis.ExpectGet("missing").RedisNil()

	var got cachedLayout
	err := svc.Get(context.Background(), "missing", &got)

	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestGet_RedisError(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	svc := NewService(db)

	mockRedis.ExpectGet("key").SetErr(errors.New("connection refused"))

	var got cachedLayout
	err := svc.Get(context.Background(), "key", &got)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestSet_StoresJSON(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	svc := NewService(db)

	mockRedis.ExpectSet("key", []byte(`{"venue_id":"v1","seats":2}`), time.Hour).SetVal("OK")

	err := svc.Set(context.Background(), "key", cachedLayout{VenueID: "v1", Seats: 2}, time.Hour)

	assert.NoError(t, err)
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	svc := NewService(db)

	mockRedis.ExpectDel("key").SetVal(1)

	assert.NoError(t, svc.Delete(context.Background(), "key"))
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestDeletePattern_ScansUntilCursorIsZero(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	svc := NewService(db)

	mockRedis.ExpectScan(0, "stagebook:layouts:*", scanBatchSize).SetVal([]string{"a", "b"}, 7)
	mockRedis.ExpectDel("a", "b").SetVal(2)
	mockRedis.ExpectScan(7, "stagebook:layouts:*", scanBatchSize).SetVal([]string{"c"}, 0)
	mockRedis.ExpectDel("c").SetVal(1)

	deleted, err := svc.DeletePattern(context.Background(), "stagebook:layouts:*")

	require.NoError(t, err)
	assert.Equal(t, 3, deleted)
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestNewConfig(t *testing.T) {
	assert.Equal(t, "localhost:6379", NewConfig("", "localhost", "6379", "", 0).Address)
	assert.Equal(t, "redis:6380", NewConfig("redis:6380", "localhost", "6379", "", 0).Address)
}
