package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ytget/reel/internal/model"
)

// Overlay flag separators
const (
	anchorSeparator = "@"
	coordSeparator  = ","
	rangeSeparator  = ":"
)

// ImageFlag is a parsed --image flag: path@x,y
type ImageFlag struct {
	Path     string
	Position model.Position
}

// TextFlag is a parsed --text flag: content@x,y
type TextFlag struct {
	Content  string
	Position model.Position
}

// ParseImageFlag parses "path@x,y"; the position defaults to the origin
func ParseImageFlag(raw string) (ImageFlag, error) {
	path, pos, err := splitAnchor(raw)
	if err != nil {
		return ImageFlag{}, err
	}
	if path == "" {
		return ImageFlag{}, fmt.Errorf("image overlay needs a file: %q", raw)
	}
	return ImageFlag{Path: path, Position: pos}, nil
}

// ParseTextFlag parses "content@x,y"; the position defaults to the origin
func ParseTextFlag(raw string) (TextFlag, error) {
	content, pos, err := splitAnchor(raw)
	if err != nil {
		return TextFlag{}, err
	}
	if strings.TrimSpace(content) == "" {
		return TextFlag{}, fmt.Errorf("text overlay needs content: %q", raw)
	}
	return TextFlag{Content: content, Position: pos}, nil
}

// ParseSplit parses "start:end" in seconds
func ParseSplit(raw string) (model.SplitPoint, error) {
	a, b, ok := strings.Cut(raw, rangeSeparator)
	if !ok {
		return model.SplitPoint{}, fmt.Errorf("split must be start:end, got %q", raw)
	}
	start, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
	if err != nil {
		return model.SplitPoint{}, fmt.Errorf("invalid split start %q: %w", a, err)
	}
	end, err := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if err != nil {
		return model.SplitPoint{}, fmt.Errorf("invalid split end %q: %w", b, err)
	}
	sp := model.SplitPoint{StartTime: start, EndTime: end}
	if !sp.Valid() {
		return model.SplitPoint{}, fmt.Errorf("split range %q is empty", raw)
	}
	return sp, nil
}

// splitAnchor cuts "value@x,y" at the last anchor separator
func splitAnchor(raw string) (string, model.Position, error) {
	i := strings.LastIndex(raw, anchorSeparator)
	if i < 0 {
		return raw, model.Position{}, nil
	}
	value, coords := raw[:i], raw[i+1:]
	xs, ys, ok := strings.Cut(coords, coordSeparator)
	if !ok {
		return "", model.Position{}, fmt.Errorf("position must be x,y, got %q", coords)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return "", model.Position{}, fmt.Errorf("invalid x %q: %w", xs, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return "", model.Position{}, fmt.Errorf("invalid y %q: %w", ys, err)
	}
	return value, model.Position{X: x, Y: y}, nil
}
