package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	apperrors "github.com/cloudfolio/siteops/internal/errors"
	"github.com/cloudfolio/siteops/internal/mocks"
)

func TestNewCounterService_RequiredDependency(t *testing.T) {
	t.Parallel()

	_, err := NewCounterService(CounterServiceOptions{})
	require.Error(t, err)
}

func TestCounterCurrent(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockCounterRepository(ctrl)
	repo.EXPECT().Get(gomock.Any()).Return(int64(41), nil)

	svc, err := NewCounterService(CounterServiceOptions{Repo: repo})
	require.NoError(t, err)

	count, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(41), count)
}

func TestCounterHit(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockCounterRepository(ctrl)
	repo.EXPECT().Increment(gomock.Any()).Return(int64(42), nil)

	svc, err := NewCounterService(CounterServiceOptions{Repo: repo})
	require.NoError(t, err)

	count, err := svc.Hit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), count)
}

func TestCounterHitError(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockCounterRepository(ctrl)
	repo.EXPECT().Increment(gomock.Any()).
		Return(int64(0), apperrors.Throttled("counter store busy"))

	svc, err := NewCounterService(CounterServiceOptions{Repo: repo})
	require.NoError(t, err)

	_, err = svc.Hit(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsThrottled(err))
}

func TestCounterHealth(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockCounterRepository(ctrl)
	gomock.InOrder(
		repo.EXPECT().Ping(gomock.Any()).Return(nil),
		repo.EXPECT().Ping(gomock.Any()).Return(apperrors.Internal("connection refused")),
	)

	svc, err := NewCounterService(CounterServiceOptions{Repo: repo})
	require.NoError(t, err)

	require.NoError(t, svc.Health(context.Background()))
	require.Error(t, svc.Health(context.Background()))
}
