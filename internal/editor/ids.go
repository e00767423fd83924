package editor

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ytget/reel/internal/model"
)

// NewID generates a unique id for an entity of the given kind, e.g. "text-<uuid>"
func NewID(kind model.Kind) string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf("%s-%d", kind, time.Now().UnixNano())
	}
	return string(kind) + "-" + id.String()
}
