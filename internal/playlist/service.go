package playlist

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/handika51/openmusic-api/internal/access"
	"github.com/handika51/openmusic-api/internal/apperr"
	"github.com/handika51/openmusic-api/internal/events"
)

// CollaborationChecker answers whether a user collaborates on a playlist.
type CollaborationChecker interface {
	IsCollaborator(ctx context.Context, playlistID, userID string) (bool, error)
}

// SongChecker answers whether a song exists in the catalog.
type SongChecker interface {
	SongExists(ctx context.Context, songID string) (bool, error)
}

// EventPublisher receives a notification after every successful mutation.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload any)
}

// Service gates every playlist operation behind the access policy before it
// reaches the store.
//
// Access checks and the mutations they guard do not share a transaction: a
// collaborator removed between the two still completes the in-flight write.
type Service struct {
	store   Store
	collabs CollaborationChecker
	songs   SongChecker
	events  EventPublisher
	logger  *log.Entry
}

func NewService(store Store, collabs CollaborationChecker, songs SongChecker, pub EventPublisher) *Service {
	return &Service{
		store:   store,
		collabs: collabs,
		songs:   songs,
		events:  pub,
		logger:  log.WithFields(log.Fields{"module": "playlist"}),
	}
}

// AddPlaylist creates a playlist owned by ownerID and returns its id.
func (s *Service) AddPlaylist(ctx context.Context, name, ownerID string) (string, error) {
	id, err := s.store.AddPlaylist(ctx, name, ownerID)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", apperr.Invariant("playlist could not be added")
	}

	s.logger.WithFields(log.Fields{"playlist_id": id, "owner": ownerID}).Debug("playlist created")
	s.publish(ctx, events.PlaylistCreated, map[string]any{
		"playlistId": id,
		"name":       name,
		"owner":      ownerID,
	})
	return id, nil
}

// ListPlaylistsFor returns the playlists userID owns or collaborates on.
func (s *Service) ListPlaylistsFor(ctx context.Context, userID string) ([]PlaylistSummary, error) {
	playlists, err := s.store.GetPlaylists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if playlists == nil {
		playlists = []PlaylistSummary{}
	}
	return playlists, nil
}

// VerifyAccess succeeds for the owner and for collaborators.
func (s *Service) VerifyAccess(ctx context.Context, playlistID, userID string) error {
	_, err := s.verdict(ctx, playlistID, userID, true)
	return err
}

// VerifyOwnership succeeds for the owner only.
func (s *Service) VerifyOwnership(ctx context.Context, playlistID, userID string) error {
	_, err := s.verdict(ctx, playlistID, userID, false)
	return err
}

// verdict looks up the owner once and asks the registry only when the
// requester is someone else and collaborators count.
func (s *Service) verdict(ctx context.Context, playlistID, userID string, allowCollaborators bool) (access.Verdict, error) {
	ownerID, err := s.store.GetPlaylistOwner(ctx, playlistID)
	if err != nil {
		return access.Denied, err
	}

	v := access.DecideOwnerOnly(ownerID, userID)
	if v == access.Denied && allowCollaborators && userID != "" {
		isCollab, err := s.collabs.IsCollaborator(ctx, playlistID, userID)
		if err != nil {
			return access.Denied, fmt.Errorf("check collaborator: %w", err)
		}
		v = access.Decide(ownerID, userID, isCollab)
	}

	if !v.Allowed() {
		return access.Denied, apperr.Authorization("you are not allowed to access this playlist")
	}
	return v, nil
}

// AddSongToPlaylist links songID to the playlist. The song is looked up
// before access is checked.
func (s *Service) AddSongToPlaylist(ctx context.Context, playlistID, songID, requesterID string) error {
	exists, err := s.songs.SongExists(ctx, songID)
	if err != nil {
		return fmt.Errorf("check song: %w", err)
	}
	if !exists {
		return apperr.NotFound("song not found")
	}

	if err := s.VerifyAccess(ctx, playlistID, requesterID); err != nil {
		return err
	}

	n, err := s.store.AddSongToPlaylist(ctx, SongEntry{PlaylistID: playlistID, SongID: songID})
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.Invariant("song could not be added to the playlist")
	}

	s.publish(ctx, events.PlaylistSongAdded, map[string]any{
		"playlistId": playlistID,
		"songId":     songID,
		"userId":     requesterID,
	})
	return nil
}

// ListSongsIn returns the playlist's songs; an empty playlist yields an
// empty slice.
func (s *Service) ListSongsIn(ctx context.Context, playlistID, requesterID string) ([]SongSummary, error) {
	if err := s.VerifyAccess(ctx, playlistID, requesterID); err != nil {
		return nil, err
	}

	songs, err := s.store.GetPlaylistSongs(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if songs == nil {
		songs = []SongSummary{}
	}
	return songs, nil
}

// RemoveSongFromPlaylist deletes every entry linking songID to the playlist.
func (s *Service) RemoveSongFromPlaylist(ctx context.Context, playlistID, songID, requesterID string) error {
	if err := s.VerifyAccess(ctx, playlistID, requesterID); err != nil {
		return err
	}

	n, err := s.store.DeletePlaylistSong(ctx, playlistID, songID)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.Invariant("song could not be removed from the playlist")
	}

	s.publish(ctx, events.PlaylistSongRemoved, map[string]any{
		"playlistId": playlistID,
		"songId":     songID,
		"userId":     requesterID,
		"removed":    n,
	})
	return nil
}

// DeletePlaylist removes the playlist with all its entries. Collaborators
// are refused.
func (s *Service) DeletePlaylist(ctx context.Context, playlistID, requesterID string) error {
	if err := s.VerifyOwnership(ctx, playlistID, requesterID); err != nil {
		return err
	}

	n, err := s.store.DeletePlaylist(ctx, playlistID)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.Invariant("playlist could not be deleted")
	}

	s.logger.WithFields(log.Fields{"playlist_id": playlistID}).Debug("playlist deleted")
	s.publish(ctx, events.PlaylistDeleted, map[string]any{"playlistId": playlistID})
	return nil
}

func (s *Service) publish(ctx context.Context, eventType string, payload map[string]any) {
	if s.events == nil {
		return
	}
	s.events.Publish(context.WithoutCancel(ctx), eventType, payload)
}
