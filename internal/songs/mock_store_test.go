package songs

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) AddSong(ctx context.Context, s Song) (string, error) {
	args := m.Called(ctx, s)
	return args.String(0), args.Error(1)
}

func (m *MockStore) GetSongs(ctx context.Context) ([]SongSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]SongSummary), args.Error(1)
}

func (m *MockStore) GetSongByID(ctx context.Context, id string) (*Song, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Song), args.Error(1)
}

func (m *MockStore) EditSongByID(ctx context.Context, id string, s Song) error {
	return m.Called(ctx, id, s).Error(0)
}

func (m *MockStore) DeleteSongByID(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStore) SongExists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
