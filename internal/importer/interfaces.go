package importer

import (
	"context"

	"github.com/ytget/reel/internal/model"
)

// Importer defines the interface for the import service.
type Importer interface {
	SetUpdateCallback(func(*model.ImportTask))
	Import(ctx context.Context, url string) (*model.ImportTask, error)
	GetTask(id string) (*model.ImportTask, bool)
	ListPlaylist(ctx context.Context, url string) (*model.Playlist, error)
	ImportPlaylist(ctx context.Context, playlist *model.Playlist) error
}
