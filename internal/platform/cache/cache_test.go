package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetOrLoad_NilRedis はRedisがnilの場合に毎回ロード関数が呼ばれることを検証します。
func TestGetOrLoad_NilRedis(t *testing.T) {
	t.Parallel()

	c := New(nil)
	assert.False(t, c.Enabled())

	calls := 0
	load := func(ctx context.Context) ([]byte, error) {
		calls++
		return []byte("v"), nil
	}
	for i := 0; i < 2; i++ {
		b, err := c.GetOrLoad(context.Background(), "k", time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, "v", string(b))
	}
	assert.Equal(t, 2, calls)
}

// TestGetOrLoad_CacheHit はキャッシュヒット時にロード関数を呼ばないことを検証します。
func TestGetOrLoad_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()
	mock.ExpectGet("k").SetVal("cached")

	b, err := New(rdb).GetOrLoad(context.Background(), "k", time.Minute, func(ctx context.Context) ([]byte, error) {
		t.Fatal("load must not be called on a hit")
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "cached", string(b))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestGetOrLoad_CacheMiss はキャッシュミス時にロード結果をTTL付きで保存することを検証します。
func TestGetOrLoad_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()
	mock.ExpectGet("k").RedisNil()
	mock.ExpectSet("k", []byte("fresh"), time.Minute).SetVal("OK")

	b, err := New(rdb).GetOrLoad(context.Background(), "k", time.Minute, func(ctx context.Context) ([]byte, error) {
		return []byte("fresh"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(b))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestGetOrLoad_LoadError はロードエラーを保存せずに返すことを検証します。
func TestGetOrLoad_LoadError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()
	mock.ExpectGet("k").RedisNil()

	wantErr := errors.New("database error")
	_, err := New(rdb).GetOrLoad(context.Background(), "k", time.Minute, func(ctx context.Context) ([]byte, error) {
		return nil, wantErr
	})
	assert.ErrorIs(t, err, wantErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestGetOrLoad_Coalesces は同一キーへの同時ミスが1回のロードにまとめられることを検証します。
func TestGetOrLoad_Coalesces(t *testing.T) {
	t.Parallel()

	c := New(nil)
	var calls atomic.Int32
	gate := make(chan struct{})
	load := func(ctx context.Context) ([]byte, error) {
		calls.Add(1)
		<-gate
		return []byte("v"), nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.GetOrLoad(context.Background(), "k", time.Minute, load)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(gate)
	wg.Wait()

	assert.Less(t, calls.Load(), int32(8))
}

// TestGetOrLoad_LoadSurvivesCallerCancel は最初の呼び出し元がキャンセルしても共有ロードが完了することを検証します。
func TestGetOrLoad_LoadSurvivesCallerCancel(t *testing.T) {
	t.Parallel()

	c := New(nil)
	started := make(chan struct{})
	gate := make(chan struct{})
	var once sync.Once
	var loadCtxErr atomic.Value
	load := func(ctx context.Context) ([]byte, error) {
		once.Do(func() { close(started) })
		<-gate
		loadCtxErr.Store(fmt.Sprint(ctx.Err()))
		return []byte("v"), nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan []byte, 1)
	go func() {
		b, _ := c.GetOrLoad(ctx, "k", time.Minute, load)
		first <- b
	}()
	<-started

	waiter := make(chan []byte, 1)
	go func() {
		b, _ := c.GetOrLoad(context.Background(), "k", time.Minute, load)
		waiter <- b
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	close(gate)

	assert.Equal(t, []byte("v"), <-waiter)
	assert.Equal(t, []byte("v"), <-first)
	assert.Equal(t, "<nil>", loadCtxErr.Load())
}

// TestGetOrLoadJSON_CorruptedCache は破損したキャッシュを削除して再ロードすることを検証します。
func TestGetOrLoadJSON_CorruptedCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()
	mock.ExpectGet("k").SetVal("invalid json")
	mock.ExpectDel("k").SetVal(1)
	mock.ExpectSet("k", []byte("42"), time.Minute).SetVal("OK")

	v, err := GetOrLoadJSON(context.Background(), New(rdb), "k", time.Minute, func(ctx context.Context) (int64, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestDeleteByPattern はSCANで見つかったキーを削除することを検証します。
func TestDeleteByPattern(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()
	mock.ExpectScan(0, "stats:*", 200).SetVal([]string{"stats:count"}, 7)
	mock.ExpectDel("stats:count").SetVal(1)
	mock.ExpectScan(7, "stats:*", 200).SetVal([]string{}, 0)

	require.NoError(t, New(rdb).DeleteByPattern(context.Background(), "stats:*"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
