package importer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	ytdlpv2 "github.com/ytget/ytdlp/v2"
	"github.com/ytget/reel/internal/model"
)

// Playlist listing settings
const (
	DefaultListTimeout   = 60 * time.Second
	PlaylistParam        = "list="
	ParamSeparator       = "&"
	DefaultPlaylistName  = "Unknown Playlist"
	VideoURLTemplate     = "https://www.youtube.com/watch?v=%s"
	MinPrefixLength      = 10
	PlaylistSuffix       = " Playlist"
	UnlimitedPlaylistLen = 0
)

// PlaylistItem is one listed playlist entry
type PlaylistItem struct {
	VideoID string
	Title   string
}

// PlaylistLister lists the items of a playlist by id
type PlaylistLister interface {
	List(ctx context.Context, playlistID string) ([]PlaylistItem, error)
}

type ytdlpLister struct{}

// NewPlaylistLister returns a lister backed by github.com/ytget/ytdlp/v2
func NewPlaylistLister() PlaylistLister {
	return ytdlpLister{}
}

func (ytdlpLister) List(ctx context.Context, playlistID string) ([]PlaylistItem, error) {
	items, err := ytdlpv2.New().GetPlaylistItemsAll(ctx, playlistID, UnlimitedPlaylistLen)
	if err != nil {
		return nil, err
	}
	out := make([]PlaylistItem, 0, len(items))
	for _, it := range items {
		out = append(out, PlaylistItem{VideoID: it.VideoID, Title: it.Title})
	}
	return out, nil
}

// SetPlaylistLister replaces the playlist backend
func (s *Service) SetPlaylistLister(l PlaylistLister) {
	s.tasksMutex.Lock()
	s.lister = l
	s.tasksMutex.Unlock()
}

// ListPlaylist resolves a playlist URL into a ready playlist of pending entries
func (s *Service) ListPlaylist(ctx context.Context, rawURL string) (*model.Playlist, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}
	playlistID := ExtractPlaylistID(rawURL)
	if playlistID == "" {
		return nil, fmt.Errorf("could not extract playlist ID from URL: %s", rawURL)
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultListTimeout)
	defer cancel()

	s.tasksMutex.RLock()
	lister := s.lister
	s.tasksMutex.RUnlock()

	items, err := lister.List(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	playlist := model.NewPlaylist(rawURL)
	playlist.ID = playlistID
	for _, it := range items {
		if it.VideoID == "" {
			continue
		}
		playlist.AddEntry(&model.PlaylistEntry{
			ID:    it.VideoID,
			Title: it.Title,
			URL:   fmt.Sprintf(VideoURLTemplate, it.VideoID),
		})
	}
	playlist.Title = PlaylistTitle(playlist.Entries)
	playlist.UpdateStatus(model.PlaylistStatusReady)
	return playlist, nil
}

// ImportPlaylist imports every pending entry in order. Entry failures are
// recorded on the playlist; only cancellation aborts the loop.
func (s *Service) ImportPlaylist(ctx context.Context, playlist *model.Playlist) error {
	if playlist == nil {
		return errors.New("playlist is nil")
	}
	playlist.UpdateStatus(model.PlaylistStatusImporting)

	for _, entry := range playlist.Pending() {
		if err := ctx.Err(); err != nil {
			playlist.Error = err.Error()
			playlist.UpdateStatus(model.PlaylistStatusError)
			return err
		}
		task, err := s.Import(ctx, entry.URL)
		outputPath := ""
		if task != nil {
			outputPath = task.OutputPath
		}
		if err != nil {
			log.Printf("Playlist %s: entry %s failed: %v", playlist.ID, entry.ID, err)
		}
		playlist.FinishEntry(entry.ID, outputPath, err)
	}

	if playlist.HasErrors() {
		playlist.UpdateStatus(model.PlaylistStatusError)
	} else {
		playlist.UpdateStatus(model.PlaylistStatusCompleted)
	}
	return nil
}

// IsPlaylistURL reports whether the URL carries a playlist id
func IsPlaylistURL(rawURL string) bool {
	return ExtractPlaylistID(rawURL) != ""
}

// ExtractPlaylistID extracts the playlist ID from the list= query parameter
func ExtractPlaylistID(rawURL string) string {
	_, after, found := strings.Cut(rawURL, PlaylistParam)
	if !found {
		return ""
	}
	id, _, _ := strings.Cut(after, ParamSeparator)
	return id
}

// PlaylistTitle derives a playlist title from its entries
func PlaylistTitle(entries []*model.PlaylistEntry) string {
	if len(entries) == 0 {
		return DefaultPlaylistName
	}
	if len(entries) > 1 {
		prefix := commonPrefix(entries[0].Title, entries[1].Title)
		if len(prefix) > MinPrefixLength {
			return strings.TrimSpace(prefix) + PlaylistSuffix
		}
	}
	return entries[0].Title + PlaylistSuffix
}

func commonPrefix(s1, s2 string) string {
	n := min(len(s1), len(s2))
	for i := 0; i < n; i++ {
		if s1[i] != s2[i] {
			return s1[:i]
		}
	}
	return s1[:n]
}
