package export

import (
	"context"

	"github.com/ytget/reel/internal/editor"
	"github.com/ytget/reel/internal/model"
)

// Processor runs one linear processing operation
type Processor interface {
	Process(ctx context.Context, req Request) ([]byte, error)
}

// Source is the editor side of an export: state to plan from and the commit
// target for the final output. SetProcessed reports whether the output was
// taken over by the video.
type Source interface {
	State() editor.State
	SetProcessed(videoID, url string, data []byte) bool
}

// Media resolves and issues handles for step inputs and outputs
type Media interface {
	Bytes(url string) ([]byte, error)
	Create(data []byte, name string) (string, error)
	Release(url string)
}

// Recorder persists finished jobs
type Recorder interface {
	Record(ctx context.Context, job *model.ExportJob) error
}

// Exporter defines the interface for the export pipeline
type Exporter interface {
	SetUpdateCallback(func(*model.ExportJob))
	Export(ctx context.Context, videoID string) (*model.ExportJob, error)
	Start(ctx context.Context, videoID string) (*model.ExportJob, error)
	State(videoID string) model.ExportState
}
