package model

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ytget/reel/internal/effects"
)

// Kind identifies the category of a placed object
type Kind string

const (
	KindVideo   Kind = "video"
	KindImage   Kind = "image"
	KindText    Kind = "text"
	KindShape   Kind = "shape"
	KindSticker Kind = "sticker"
)

// PlacedKinds lists z-ordered kinds in render order (back to front on equal z).
var PlacedKinds = []Kind{KindImage, KindShape, KindSticker, KindText}

// String returns the string representation of Kind
func (k Kind) String() string {
	return string(k)
}

// VideoItem is an imported clip placed on the canvas and the video track.
// URL is the original source handle and never changes; ProcessedURL and
// ProcessedData cache the most recent export output.
type VideoItem struct {
	ID            string         `json:"id"`
	URL           string         `json:"url"`
	Name          string         `json:"name"`
	Duration      float64        `json:"duration"`
	Position      Position       `json:"position"`
	Size          Size           `json:"size"`
	AppliedFilter effects.Effect `json:"appliedFilter,omitempty"`
	AppliedEffect effects.Effect `json:"appliedEffect,omitempty"`
	ProcessedURL  string         `json:"processedUrl,omitempty"`
	ProcessedData []byte         `json:"-"`
}

// Source returns the handle the preview should play: the processed output when
// one exists, otherwise the original
func (v VideoItem) Source() string {
	if v.ProcessedURL != "" {
		return v.ProcessedURL
	}
	return v.URL
}

// HasProcessed reports whether an export output is cached
func (v VideoItem) HasProcessed() bool {
	return v.ProcessedURL != ""
}

// ImageItem is a still image overlay
type ImageItem struct {
	ID            string         `json:"id"`
	URL           string         `json:"url"`
	Name          string         `json:"name"`
	Position      Position       `json:"position"`
	Size          Size           `json:"size"`
	ZIndex        int            `json:"zIndex"`
	AppliedFilter effects.Effect `json:"appliedFilter,omitempty"`
}

func (i ImageItem) EntityID() string { return i.ID }
func (i ImageItem) Layer() int       { return i.ZIndex }
func (i ImageItem) Bounds() Rect     { return RectAt(i.Position, i.Size) }

func (i ImageItem) WithLayer(z int) ImageItem {
	i.ZIndex = z
	return i
}

func (i ImageItem) WithPosition(p Position) ImageItem {
	i.Position = p
	return i
}

// TextType is the typographic role of a text item
type TextType string

const (
	TextHeading    TextType = "heading"
	TextSubheading TextType = "subheading"
	TextBody       TextType = "body"
)

// ErrInvalidTextType is returned for text roles outside heading|subheading|body
var ErrInvalidTextType = errors.New("unsupported text type")

// ParseTextType converts a user-supplied role name into a TextType
func ParseTextType(raw string) (TextType, error) {
	switch t := TextType(strings.ToLower(strings.TrimSpace(raw))); t {
	case TextHeading, TextSubheading, TextBody:
		return t, nil
	}
	return TextBody, fmt.Errorf("%w: %q", ErrInvalidTextType, raw)
}

// TextStyle holds the font attributes used for preview and drawtext
type TextStyle struct {
	FontSize   float64 `json:"fontSize"`
	Color      string  `json:"color"`
	FontWeight string  `json:"fontWeight"`
}

// DefaultTextStyle returns the preset style for a text role
func DefaultTextStyle(t TextType) TextStyle {
	switch t {
	case TextHeading:
		return TextStyle{FontSize: 32, Color: "#000000", FontWeight: "bold"}
	case TextSubheading:
		return TextStyle{FontSize: 24, Color: "#000000", FontWeight: "600"}
	default:
		return TextStyle{FontSize: 16, Color: "#000000", FontWeight: "normal"}
	}
}

// Text metrics used to approximate font-driven bounds
const (
	TextAdvanceRatio = 0.6
	TextLineRatio    = 1.2
	TextPadding      = 8
)

// TextItem is a text overlay. Only one text may be in editing mode at a time;
// the editor's focus transition enforces this, the store does not.
type TextItem struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Type      TextType  `json:"type"`
	Position  Position  `json:"position"`
	Style     TextStyle `json:"style"`
	IsEditing bool      `json:"isEditing"`
	ZIndex    int       `json:"zIndex"`
}

func (t TextItem) EntityID() string { return t.ID }
func (t TextItem) Layer() int       { return t.ZIndex }

func (t TextItem) WithLayer(z int) TextItem {
	t.ZIndex = z
	return t
}

func (t TextItem) WithPosition(p Position) TextItem {
	t.Position = p
	return t
}

// Bounds approximates the rendered box from the content length and font size
func (t TextItem) Bounds() Rect {
	runes := utf8.RuneCountInString(t.Content)
	if runes == 0 {
		runes = 1
	}
	size := Size{
		Width:  float64(runes)*t.Style.FontSize*TextAdvanceRatio + 2*TextPadding,
		Height: t.Style.FontSize*TextLineRatio + 2*TextPadding,
	}
	return RectAt(t.Position, size)
}

// ShapeType selects one of the built-in vector shapes
type ShapeType string

const (
	ShapeBlob   ShapeType = "blob"
	ShapeWave   ShapeType = "wave"
	ShapeCorner ShapeType = "corner"
	ShapeSwirl  ShapeType = "swirl"
)

// ShapeItem is a decorative vector shape
type ShapeItem struct {
	ID            string         `json:"id"`
	Type          ShapeType      `json:"type"`
	Position      Position       `json:"position"`
	Size          Size           `json:"size"`
	Color         string         `json:"color"`
	ZIndex        int            `json:"zIndex"`
	AppliedFilter effects.Effect `json:"appliedFilter,omitempty"`
}

func (s ShapeItem) EntityID() string { return s.ID }
func (s ShapeItem) Layer() int       { return s.ZIndex }
func (s ShapeItem) Bounds() Rect     { return RectAt(s.Position, s.Size) }

func (s ShapeItem) WithLayer(z int) ShapeItem {
	s.ZIndex = z
	return s
}

func (s ShapeItem) WithPosition(p Position) ShapeItem {
	s.Position = p
	return s
}

// StickerItem is an emoji sticker with a square size
type StickerItem struct {
	ID       string   `json:"id"`
	Emoji    string   `json:"emoji"`
	Position Position `json:"position"`
	Size     float64  `json:"size"`
	ZIndex   int      `json:"zIndex"`
}

func (s StickerItem) EntityID() string { return s.ID }
func (s StickerItem) Layer() int       { return s.ZIndex }

func (s StickerItem) Bounds() Rect {
	return RectAt(s.Position, Size{Width: s.Size, Height: s.Size})
}

func (s StickerItem) WithLayer(z int) StickerItem {
	s.ZIndex = z
	return s
}

func (s StickerItem) WithPosition(p Position) StickerItem {
	s.Position = p
	return s
}
