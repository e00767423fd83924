package importer

import (
	"context"
	"errors"
	"testing"

	"github.com/ytget/reel/internal/model"
)

type fakeLister struct {
	items []PlaylistItem
	err   error
	gotID string
}

func (f *fakeLister) List(ctx context.Context, playlistID string) ([]PlaylistItem, error) {
	f.gotID = playlistID
	return f.items, f.err
}

func TestNewService(t *testing.T) {
	service := NewService("/tmp")

	if service.dir != "/tmp" {
		t.Errorf("Expected dir to be '/tmp', got '%s'", service.dir)
	}
	if len(service.tasks) != 0 {
		t.Errorf("Expected empty tasks map, got %d items", len(service.tasks))
	}
	if service.lister == nil {
		t.Error("Expected default playlist lister")
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://youtube.com/watch?v=abc", false},
		{"http://example.com/clip.mp4", false},
		{"ftp://example.com/clip.mp4", true},
		{"not a url", true},
		{"", true},
		{"/local/path.mp4", true},
	}

	for _, tt := range tests {
		err := ValidateURL(tt.url)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidURL) {
			t.Errorf("ValidateURL(%q) error = %v, expected ErrInvalidURL", tt.url, err)
		}
	}
}

func TestImportRejectsInvalidURL(t *testing.T) {
	service := NewService(t.TempDir())
	_, err := service.Import(context.Background(), "notaurl")
	if !errors.Is(err, ErrInvalidURL) {
		t.Errorf("Import() error = %v, expected ErrInvalidURL", err)
	}
	if len(service.tasks) != 0 {
		t.Errorf("Expected no task for invalid URL, got %d", len(service.tasks))
	}
}

func TestGetTaskMissing(t *testing.T) {
	service := NewService(t.TempDir())
	if _, ok := service.GetTask("import-missing"); ok {
		t.Error("Expected missing task to be absent")
	}
}

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://www.youtube.com/playlist?list=PL123", "PL123"},
		{"https://www.youtube.com/watch?v=abc&list=PL456&index=2", "PL456"},
		{"https://www.youtube.com/watch?v=abc", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ExtractPlaylistID(tt.url); got != tt.expected {
			t.Errorf("ExtractPlaylistID(%q) = %q, expected %q", tt.url, got, tt.expected)
		}
		if got := IsPlaylistURL(tt.url); got != (tt.expected != "") {
			t.Errorf("IsPlaylistURL(%q) = %v", tt.url, got)
		}
	}
}

func TestPlaylistTitle(t *testing.T) {
	entry := func(title string) *model.PlaylistEntry { return &model.PlaylistEntry{Title: title} }

	tests := []struct {
		name     string
		entries  []*model.PlaylistEntry
		expected string
	}{
		{"empty", nil, DefaultPlaylistName},
		{"single", []*model.PlaylistEntry{entry("Intro")}, "Intro Playlist"},
		{"common prefix", []*model.PlaylistEntry{entry("Editing Basics Part 1"), entry("Editing Basics Part 2")}, "Editing Basics Part Playlist"},
		{"short prefix", []*model.PlaylistEntry{entry("Cats"), entry("Cars")}, "Cats Playlist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlaylistTitle(tt.entries); got != tt.expected {
				t.Errorf("PlaylistTitle() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestListPlaylist(t *testing.T) {
	service := NewService(t.TempDir())
	lister := &fakeLister{items: []PlaylistItem{
		{VideoID: "a1", Title: "Travel Diary Day 1"},
		{VideoID: "", Title: "deleted"},
		{VideoID: "b2", Title: "Travel Diary Day 2"},
	}}
	service.SetPlaylistLister(lister)

	playlist, err := service.ListPlaylist(context.Background(), "https://www.youtube.com/playlist?list=PLx")
	if err != nil {
		t.Fatalf("ListPlaylist() error = %v", err)
	}
	if lister.gotID != "PLx" {
		t.Errorf("lister got id %q, expected PLx", lister.gotID)
	}
	if playlist.ID != "PLx" {
		t.Errorf("ID = %q, expected PLx", playlist.ID)
	}
	if len(playlist.Entries) != 2 {
		t.Fatalf("len(Entries) = %d, expected 2", len(playlist.Entries))
	}
	if playlist.Entries[0].URL != "https://www.youtube.com/watch?v=a1" {
		t.Errorf("URL = %q", playlist.Entries[0].URL)
	}
	if playlist.Entries[1].Status != model.JobStatusPending {
		t.Errorf("Status = %v, expected Pending", playlist.Entries[1].Status)
	}
	if playlist.Status != model.PlaylistStatusReady {
		t.Errorf("playlist Status = %v, expected ready", playlist.Status)
	}
	if playlist.Title != "Travel Diary Day Playlist" {
		t.Errorf("Title = %q", playlist.Title)
	}
}

func TestListPlaylistErrors(t *testing.T) {
	service := NewService(t.TempDir())
	service.SetPlaylistLister(&fakeLister{err: errors.New("boom")})

	if _, err := service.ListPlaylist(context.Background(), "https://www.youtube.com/watch?v=abc"); err == nil {
		t.Error("Expected error for URL without playlist id")
	}
	if _, err := service.ListPlaylist(context.Background(), "https://www.youtube.com/playlist?list=PLx"); err == nil {
		t.Error("Expected lister error to propagate")
	}
}

func TestImportPlaylistCanceled(t *testing.T) {
	service := NewService(t.TempDir())
	playlist := model.NewPlaylist("https://www.youtube.com/playlist?list=PLx")
	playlist.AddEntry(&model.PlaylistEntry{ID: "a1", URL: "https://www.youtube.com/watch?v=a1"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := service.ImportPlaylist(ctx, playlist)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ImportPlaylist() error = %v, expected context.Canceled", err)
	}
	if playlist.Status != model.PlaylistStatusError {
		t.Errorf("Status = %v, expected error", playlist.Status)
	}
	if playlist.Entries[0].Status != model.JobStatusPending {
		t.Errorf("entry Status = %v, expected Pending", playlist.Entries[0].Status)
	}
}

func TestImportPlaylistNil(t *testing.T) {
	service := NewService(t.TempDir())
	if err := service.ImportPlaylist(context.Background(), nil); err == nil {
		t.Error("Expected error for nil playlist")
	}
}
