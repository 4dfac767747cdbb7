package cachemanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockCacheManager is a hand-rolled testify mock for the CacheManager
// interface so the read-through layer can be tested in isolation.
type mockCacheManager[K comparable, V any] struct {
	mock.Mock
}

func (m *mockCacheManager[K, V]) Get(ctx context.Context, key K) (V, bool) {
	args := m.Called(ctx, key)
	return args.Get(0).(V), args.Bool(1)
}

func (m *mockCacheManager[K, V]) GetWithRefresh(ctx context.Context, key K, ttl time.Duration) (V, bool) {
	args := m.Called(ctx, key, ttl)
	return args.Get(0).(V), args.Bool(1)
}

func (m *mockCacheManager[K, V]) Set(ctx context.Context, key K, value V, ttl time.Duration) {
	m.Called(ctx, key, value, ttl)
}

func (m *mockCacheManager[K, V]) Delete(ctx context.Context, keys ...K) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *mockCacheManager[K, V]) Flush(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type rowQuery struct {
	Y int
}

func TestReadThroughCache_Get_WithCacheDisabled(t *testing.T) {
	managerMock := &mockCacheManager[string, []*renderedRow]{}

	readThroughCache := NewReadThroughCache[string, []*renderedRow, rowQuery](
		managerMock,
		func(ctx context.Context, input rowQuery) ([]*renderedRow, error) {
			return []*renderedRow{
				{
					Y: input.Y,
				},
			}, nil
		},
		true,
	)

	rows, err := readThroughCache.Get(
		context.Background(),
		"key",
		rowQuery{
			Y: 1,
		},
		time.Minute)
	require.NoError(t, err)
	require.Equal(t, []*renderedRow{
		{
			Y: 1,
		},
	}, rows)
	managerMock.AssertExpectations(t)
}

func TestReadThroughCache_GetWithRefresh_WithCacheDisabled(t *testing.T) {
	managerMock := &mockCacheManager[string, []*renderedRow]{}

	readThroughCache := NewReadThroughCache[string, []*renderedRow, rowQuery](
		managerMock,
		func(ctx context.Context, input rowQuery) ([]*renderedRow, error) {
			return []*renderedRow{
				{
					Y: input.Y,
				},
			}, nil
		},
		true,
	)

	rows, err := readThroughCache.GetWithRefresh(
		context.Background(),
		"key",
		rowQuery{
			Y: 1,
		},
		time.Minute)
	require.NoError(t, err)
	require.Equal(t, []*renderedRow{
		{
			Y: 1,
		},
	}, rows)
	managerMock.AssertExpectations(t)
}

func TestReadThroughCache_Get_WithValueInCache(t *testing.T) {
	managerMock := &mockCacheManager[string, []*renderedRow]{}
	managerMock.On("Get", mock.Anything, "key").Return([]*renderedRow{
		{
			Y:    1,
			Text: "####",
		},
	}, true)

	readThroughCache := NewReadThroughCache[string, []*renderedRow, rowQuery](
		managerMock,
		func(ctx context.Context, input rowQuery) ([]*renderedRow, error) {
			return []*renderedRow{
				{
					Y: input.Y,
				},
			}, nil
		},
		false,
	)

	rows, err := readThroughCache.Get(
		context.Background(),
		"key",
		rowQuery{
			Y: 1,
		},
		time.Minute)
	require.NoError(t, err)
	require.Equal(t, []*renderedRow{
		{
			Y:    1,
			Text: "####",
		},
	}, rows)
	managerMock.AssertExpectations(t)
}

func TestReadThroughCache_Get_EmptyCache(t *testing.T) {
	managerMock := &mockCacheManager[string, []*renderedRow]{}
	managerMock.On("Get", mock.Anything, "key").Return([]*renderedRow{}, false)
	managerMock.On("Set", mock.Anything, "key", []*renderedRow{
		{
			Y: 1,
		},
	}, mock.Anything).Return()

	readThroughCache := NewReadThroughCache[string, []*renderedRow, rowQuery](
		managerMock,
		func(ctx context.Context, input rowQuery) ([]*renderedRow, error) {
			return []*renderedRow{
				{
					Y: input.Y,
				},
			}, nil
		},
		false,
	)

	rows, err := readThroughCache.Get(
		context.Background(),
		"key",
		rowQuery{
			Y: 1,
		},
		time.Minute)
	require.NoError(t, err)
	require.Equal(t, []*renderedRow{
		{
			Y: 1,
		},
	}, rows)
	managerMock.AssertExpectations(t)
}

func TestReadThroughCache_Get_LoaderError(t *testing.T) {
	managerMock := &mockCacheManager[string, []*renderedRow]{}
	managerMock.On("Get", mock.Anything, "key").Return([]*renderedRow{}, false)

	readThroughCache := NewReadThroughCache[string, []*renderedRow, rowQuery](
		managerMock,
		func(ctx context.Context, input rowQuery) ([]*renderedRow, error) {
			return nil, errors.New("failed to render row")
		},
		false,
	)

	_, err := readThroughCache.Get(
		context.Background(),
		"key",
		rowQuery{
			Y: 1,
		},
		time.Minute)
	require.Error(t, err)
	managerMock.AssertExpectations(t)
}

func TestReadThroughCache_GetWithRefresh_WithValueInCache(t *testing.T) {
	managerMock := &mockCacheManager[string, []*renderedRow]{}
	managerMock.On("GetWithRefresh", mock.Anything, "key", mock.Anything).Return([]*renderedRow{
		{
			Y:    1,
			Text: "####",
		},
	}, true)

	readThroughCache := NewReadThroughCache[string, []*renderedRow, rowQuery](
		managerMock,
		func(ctx context.Context, input rowQuery) ([]*renderedRow, error) {
			return []*renderedRow{
				{
					Y: input.Y,
				},
			}, nil
		},
		false,
	)

	rows, err := readThroughCache.GetWithRefresh(
		context.Background(),
		"key",
		rowQuery{
			Y: 1,
		},
		time.Minute)
	require.NoError(t, err)
	require.Equal(t, []*renderedRow{
		{
			Y:    1,
			Text: "####",
		},
	}, rows)
	managerMock.AssertExpectations(t)
}

func TestReadThroughCache_GetWithRefresh_EmptyCache(t *testing.T) {
	managerMock := &mockCacheManager[string, []*renderedRow]{}
	managerMock.On("GetWithRefresh", mock.Anything, "key", mock.Anything).Return([]*renderedRow{}, false)
	managerMock.On("Set", mock.Anything, "key", []*renderedRow{
		{
			Y: 1,
		},
	}, mock.Anything).Return()

	readThroughCache := NewReadThroughCache[string, []*renderedRow, rowQuery](
		managerMock,
		func(ctx context.Context, input rowQuery) ([]*renderedRow, error) {
			return []*renderedRow{
				{
					Y: input.Y,
				},
			}, nil
		},
		false,
	)

	rows, err := readThroughCache.GetWithRefresh(
		context.Background(),
		"key",
		rowQuery{
			Y: 1,
		},
		time.Minute)
	require.NoError(t, err)
	require.Equal(t, []*renderedRow{
		{
			Y: 1,
		},
	}, rows)
	managerMock.AssertExpectations(t)
}

func TestReadThroughCache_GetWithRefresh_LoaderError(t *testing.T) {
	managerMock := &mockCacheManager[string, []*renderedRow]{}
	managerMock.On("GetWithRefresh", mock.Anything, "key", mock.Anything).Return([]*renderedRow{}, false)

	readThroughCache := NewReadThroughCache[string, []*renderedRow, rowQuery](
		managerMock,
		func(ctx context.Context, input rowQuery) ([]*renderedRow, error) {
			return nil, errors.New("failed to render row")
		},
		false,
	)

	_, err := readThroughCache.GetWithRefresh(
		context.Background(),
		"key",
		rowQuery{
			Y: 1,
		},
		time.Minute)
	require.Error(t, err)
	managerMock.AssertExpectations(t)
}
