package playlist

import (
	"context"
	"strconv"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/handika51/openmusic-api/internal/apperr"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) AddPlaylist(ctx context.Context, name, ownerID string) (string, error) {
	args := m.Called(ctx, name, ownerID)
	return args.String(0), args.Error(1)
}

func (m *MockStore) AddSongToPlaylist(ctx context.Context, entry SongEntry) (int64, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) GetPlaylists(ctx context.Context, userID string) ([]PlaylistSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]PlaylistSummary), args.Error(1)
}

func (m *MockStore) GetPlaylistSongs(ctx context.Context, playlistID string) ([]SongSummary, error) {
	args := m.Called(ctx, playlistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]SongSummary), args.Error(1)
}

func (m *MockStore) DeletePlaylist(ctx context.Context, playlistID string) (int64, error) {
	args := m.Called(ctx, playlistID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) DeletePlaylistSong(ctx context.Context, playlistID, songID string) (int64, error) {
	args := m.Called(ctx, playlistID, songID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) GetPlaylistOwner(ctx context.Context, playlistID string) (string, error) {
	args := m.Called(ctx, playlistID)
	return args.String(0), args.Error(1)
}

type MockCollabs struct {
	mock.Mock
}

func (m *MockCollabs) IsCollaborator(ctx context.Context, playlistID, userID string) (bool, error) {
	args := m.Called(ctx, playlistID, userID)
	return args.Bool(0), args.Error(1)
}

type MockSongs struct {
	mock.Mock
}

func (m *MockSongs) SongExists(ctx context.Context, songID string) (bool, error) {
	args := m.Called(ctx, songID)
	return args.Bool(0), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, eventType string, payload any) {
	m.Called(ctx, eventType, payload)
}

// memStore keeps playlists in memory so whole flows can run without Postgres.
type memStore struct {
	mu        sync.Mutex
	seq       int
	playlists map[string]memPlaylist
	order     []string
	entries   []SongEntry
	catalog   map[string]SongSummary
	collabs   map[string]map[string]bool
}

type memPlaylist struct {
	name  string
	owner string
}

func newMemStore() *memStore {
	return &memStore{
		playlists: map[string]memPlaylist{},
		catalog:   map[string]SongSummary{},
		collabs:   map[string]map[string]bool{},
	}
}

func (s *memStore) addSong(id, title, performer string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog[id] = SongSummary{ID: id, Title: title, Performer: performer}
}

func (s *memStore) addCollaborator(playlistID, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.collabs[playlistID] == nil {
		s.collabs[playlistID] = map[string]bool{}
	}
	s.collabs[playlistID][userID] = true
}

func (s *memStore) removeCollaborator(playlistID, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collabs[playlistID], userID)
}

func (s *memStore) nextID(prefix string) string {
	s.seq++
	return prefix + "-" + strconv.Itoa(s.seq)
}

func (s *memStore) AddPlaylist(_ context.Context, name, ownerID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID("playlist")
	s.playlists[id] = memPlaylist{name: name, owner: ownerID}
	s.order = append(s.order, id)
	return id, nil
}

func (s *memStore) AddSongToPlaylist(_ context.Context, entry SongEntry) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry.ID == "" {
		entry.ID = s.nextID("playlist-song")
	}
	s.entries = append(s.entries, entry)
	return 1, nil
}

func (s *memStore) GetPlaylists(_ context.Context, userID string) ([]PlaylistSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []PlaylistSummary{}
	for _, id := range s.order {
		pl, ok := s.playlists[id]
		if !ok {
			continue
		}
		if pl.owner == userID || s.collabs[id][userID] {
			out = append(out, PlaylistSummary{ID: id, Name: pl.name, Username: pl.owner})
		}
	}
	return out, nil
}

func (s *memStore) GetPlaylistSongs(_ context.Context, playlistID string) ([]SongSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []SongSummary{}
	for _, e := range s.entries {
		if e.PlaylistID == playlistID {
			out = append(out, s.catalog[e.SongID])
		}
	}
	return out, nil
}

func (s *memStore) DeletePlaylist(_ context.Context, playlistID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.playlists[playlistID]; !ok {
		return 0, nil
	}
	delete(s.playlists, playlistID)
	delete(s.collabs, playlistID)
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.PlaylistID != playlistID {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	return 1, nil
}

func (s *memStore) DeletePlaylistSong(_ context.Context, playlistID, songID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.PlaylistID == playlistID && e.SongID == songID {
			n++
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	return n, nil
}

func (s *memStore) GetPlaylistOwner(_ context.Context, playlistID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pl, ok := s.playlists[playlistID]
	if !ok {
		return "", apperr.NotFound("playlist not found")
	}
	return pl.owner, nil
}

func (s *memStore) IsCollaborator(_ context.Context, playlistID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collabs[playlistID][userID], nil
}

func (s *memStore) SongExists(_ context.Context, songID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.catalog[songID]
	return ok, nil
}
