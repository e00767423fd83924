package editor

import (
	"sync"
	"testing"

	"github.com/ytget/reel/internal/effects"
	"github.com/ytget/reel/internal/model"
)

type countingReleaser struct {
	mu       sync.Mutex
	released map[string]int
}

func newCountingReleaser() *countingReleaser {
	return &countingReleaser{released: make(map[string]int)}
}

func (r *countingReleaser) Release(url string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.released[url]++
}

func (r *countingReleaser) count(url string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.released[url]
}

func newTestEditor(t *testing.T) (*Editor, *countingReleaser) {
	t.Helper()
	rel := newCountingReleaser()
	return New(NewStore(rel, 10), model.DefaultCanvas), rel
}

func TestBringToFrontAcrossKinds(t *testing.T) {
	ed, _ := newTestEditor(t)
	img := ed.AddImage("blob:img", "a.png", model.Position{}, model.Size{Width: 50, Height: 50})
	shape := ed.AddShape(model.ShapeBlob, model.Position{}, model.Size{Width: 50, Height: 50}, "#f00")
	sticker := ed.AddSticker("⭐", model.Position{}, 40)

	if img.ZIndex != 1 || shape.ZIndex != 2 || sticker.ZIndex != 3 {
		t.Fatalf("z-indices = %d,%d,%d, expected 1,2,3", img.ZIndex, shape.ZIndex, sticker.ZIndex)
	}

	ed.Select(model.KindImage, img.ID)

	got, _ := ed.State().Layers.Present.Images.Get(img.ID)
	for _, p := range placedObjects(ed.State().Layers.Present) {
		if p.ID != img.ID && p.Z >= got.ZIndex {
			t.Errorf("%s %s has z %d, expected below %d", p.Kind, p.ID, p.Z, got.ZIndex)
		}
	}
	if SelectActive(ed.State(), model.KindImage) != img.ID {
		t.Errorf("Active image = %q, expected %q", SelectActive(ed.State(), model.KindImage), img.ID)
	}
}

func TestSelectFrontMostStillBumps(t *testing.T) {
	ed, _ := newTestEditor(t)
	only := ed.AddShape(model.ShapeWave, model.Position{}, model.Size{Width: 10, Height: 10}, "#000")
	undoBefore := ed.State().Layers.UndoSize()

	ed.Select(model.KindShape, only.ID)

	got, _ := ed.State().Layers.Present.Shapes.Get(only.ID)
	if got.ZIndex != only.ZIndex+1 {
		t.Errorf("z-index = %d, expected %d", got.ZIndex, only.ZIndex+1)
	}
	if ed.State().Layers.UndoSize() != undoBefore+1 {
		t.Errorf("UndoSize() = %d, expected %d", ed.State().Layers.UndoSize(), undoBefore+1)
	}

	ed.Select(model.KindShape, only.ID)
	got, _ = ed.State().Layers.Present.Shapes.Get(only.ID)
	if got.ZIndex != only.ZIndex+2 {
		t.Errorf("z-index after second select = %d, expected %d", got.ZIndex, only.ZIndex+2)
	}
}

func TestUndoRestoresDeletedShape(t *testing.T) {
	ed, _ := newTestEditor(t)
	shape := ed.AddShape(model.ShapeCorner, model.Position{X: 5, Y: 5}, model.Size{Width: 20, Height: 20}, "#0f0")

	ed.Delete(model.KindShape, shape.ID)
	if len(SelectShapes(ed.State())) != 0 {
		t.Fatal("Expected shape to be deleted")
	}

	ed.Undo()
	shapes := SelectShapes(ed.State())
	if len(shapes) != 1 || shapes[0] != shape {
		t.Fatalf("Undo restored %+v, expected %+v", shapes, shape)
	}

	ed.Redo()
	if len(SelectShapes(ed.State())) != 0 {
		t.Error("Redo should delete the shape again")
	}
}

func TestHistoryLimit(t *testing.T) {
	ed := New(NewStore(nil, 3), model.DefaultCanvas)
	for i := 0; i < 5; i++ {
		ed.AddSticker("🎬", model.Position{}, 30)
	}
	for CanUndo(ed.State()) {
		ed.Undo()
	}
	if n := len(SelectStickers(ed.State())); n != 2 {
		t.Errorf("Oldest reachable state has %d stickers, expected 2", n)
	}
}

func TestDeleteVideoReleasesHandles(t *testing.T) {
	ed, rel := newTestEditor(t)
	v := ed.AddVideo("blob:orig", "clip.mp4", 10, model.Size{Width: 1920, Height: 1080})
	ed.SetProcessed(v.ID, "blob:out", []byte("x"))

	ed.Delete(model.KindVideo, v.ID)
	ed.Delete(model.KindVideo, v.ID)

	if rel.count("blob:orig") != 1 {
		t.Errorf("original released %d times, expected 1", rel.count("blob:orig"))
	}
	if rel.count("blob:out") != 1 {
		t.Errorf("processed output released %d times, expected 1", rel.count("blob:out"))
	}
}

func TestSetProcessedReleasesPreviousOutput(t *testing.T) {
	ed, rel := newTestEditor(t)
	v := ed.AddVideo("blob:orig", "clip.mp4", 10, model.Size{})

	ed.SetProcessed(v.ID, "blob:one", []byte("1"))
	ed.SetProcessed(v.ID, "blob:two", []byte("2"))

	if rel.count("blob:one") != 1 {
		t.Errorf("first output released %d times, expected 1", rel.count("blob:one"))
	}
	if rel.count("blob:orig") != 0 || rel.count("blob:two") != 0 {
		t.Error("Only the replaced output should be released")
	}
	got, _ := SelectVideoByID(ed.State(), v.ID)
	if got.URL != "blob:orig" || got.Source() != "blob:two" {
		t.Errorf("video = %+v, expected original kept and processed source", got)
	}
}

func TestImageHandleSurvivesWhileUndoable(t *testing.T) {
	rel := newCountingReleaser()
	ed := New(NewStore(rel, 2), model.DefaultCanvas)
	img := ed.AddImage("blob:img", "a.png", model.Position{}, model.Size{Width: 10, Height: 10})

	ed.Delete(model.KindImage, img.ID)
	if rel.count("blob:img") != 0 {
		t.Fatal("Image handle released while the delete can still be undone")
	}

	// push the snapshot containing the image out of the bounded past
	ed.AddSticker("a", model.Position{}, 10)
	ed.AddSticker("b", model.Position{}, 10)
	if rel.count("blob:img") != 1 {
		t.Errorf("image handle released %d times, expected 1", rel.count("blob:img"))
	}
}

func TestHitTest(t *testing.T) {
	ed, _ := newTestEditor(t)
	img := ed.AddImage("blob:i", "i.png", model.Position{X: 0, Y: 0}, model.Size{Width: 100, Height: 100})
	shape := ed.AddShape(model.ShapeSwirl, model.Position{X: 50, Y: 50}, model.Size{Width: 100, Height: 100}, "#00f")

	tests := []struct {
		point    model.Position
		expected string
	}{
		{model.Position{X: 10, Y: 10}, img.ID},
		{model.Position{X: 75, Y: 75}, shape.ID},
		{model.Position{X: 140, Y: 140}, shape.ID},
	}
	for _, test := range tests {
		hit, ok := HitTest(ed.State(), test.point)
		if !ok || hit.ID != test.expected {
			t.Errorf("HitTest(%v) = %v, expected %s", test.point, hit.ID, test.expected)
		}
	}
	if _, ok := HitTest(ed.State(), model.Position{X: 500, Y: 500}); ok {
		t.Error("Expected no hit on empty canvas")
	}
}

func TestHitTestTieUsesRenderOrder(t *testing.T) {
	s := NewState()
	s.Layers.Present = LayerState{
		Images: s.Layers.Present.Images.Add(model.ImageItem{ID: "i", Size: model.Size{Width: 10, Height: 10}}, 1),
		Texts:  s.Layers.Present.Texts.Add(model.TextItem{ID: "t", Content: "x", Style: model.DefaultTextStyle(model.TextBody)}, 1),
	}

	hit, ok := HitTest(s, model.Position{X: 2, Y: 2})
	if !ok || hit.Kind != model.KindText {
		t.Errorf("HitTest on a z tie = %v, expected the text", hit)
	}
}

func TestClickAtClearsSelectionOnEmptyCanvas(t *testing.T) {
	ed, _ := newTestEditor(t)
	shape := ed.AddShape(model.ShapeBlob, model.Position{}, model.Size{Width: 20, Height: 20}, "#fff")

	if hit, ok := ed.ClickAt(model.Position{X: 5, Y: 5}); !ok || hit.ID != shape.ID {
		t.Fatalf("ClickAt hit %v, expected %s", hit, shape.ID)
	}
	if _, ok := ed.ClickAt(model.Position{X: 400, Y: 400}); ok {
		t.Fatal("Expected a miss")
	}
	if SelectActive(ed.State(), model.KindShape) != "" {
		t.Error("Expected selection to be cleared")
	}
}

func TestBeginTextEditingKeepsSingleEditor(t *testing.T) {
	ed, _ := newTestEditor(t)
	a := ed.AddText("one", model.TextHeading, model.Position{})
	b := ed.AddText("two", model.TextBody, model.Position{X: 100})
	undoBefore := ed.State().Layers.UndoSize()

	ed.BeginTextEditing(a.ID)
	ed.BeginTextEditing(b.ID)

	editing := 0
	for _, text := range SelectTexts(ed.State()) {
		if text.IsEditing {
			editing++
		}
	}
	if editing != 1 {
		t.Errorf("%d texts in editing mode, expected 1", editing)
	}
	if cur, _ := SelectEditingText(ed.State()); cur.ID != b.ID {
		t.Errorf("Editing text = %s, expected %s", cur.ID, b.ID)
	}
	if ed.State().Layers.UndoSize() != undoBefore {
		t.Error("Editing focus must not be recorded in history")
	}

	ed.EndTextEditing(b.ID, "changed")
	got, _ := ed.State().Layers.Present.Texts.Get(b.ID)
	if got.IsEditing || got.Content != "changed" {
		t.Errorf("After EndTextEditing got %+v", got)
	}
}

func TestAddTextDefaults(t *testing.T) {
	s := Reduce(NewState(), AddText{Text: model.TextItem{ID: "t", Content: "hi", IsEditing: true}})
	text, _ := s.Layers.Present.Texts.Get("t")
	if text.Type != model.TextBody || text.IsEditing {
		t.Errorf("AddText stored %+v, expected body type not editing", text)
	}
	if text.Style != model.DefaultTextStyle(model.TextBody) {
		t.Errorf("Style = %+v, expected body preset", text.Style)
	}
}

func TestMoveClampsToCanvas(t *testing.T) {
	ed, _ := newTestEditor(t)
	sticker := ed.AddSticker("🔥", model.Position{}, 40)

	ed.Move(model.KindSticker, sticker.ID, model.Position{X: 5000, Y: -20})

	got, _ := ed.State().Layers.Present.Stickers.Get(sticker.ID)
	expected := model.Position{X: model.DefaultCanvas.Width - 40, Y: 0}
	if got.Position != expected {
		t.Errorf("Position = %v, expected %v", got.Position, expected)
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	before := Reduce(NewState(), AddVideo{Video: model.VideoItem{ID: "v", URL: "blob:v"}})
	before = Reduce(before, SetActive{Kind: model.KindVideo, ID: "v"})

	after := Reduce(before, SetVideoEffect{ID: "v", Effect: effects.Vintage})
	after = Reduce(after, ClearSelection{})

	if before.Videos.Items[0].AppliedEffect != "" {
		t.Error("Reduce mutated the input video slice")
	}
	if SelectActive(before, model.KindVideo) != "v" {
		t.Error("Reduce mutated the input selection map")
	}
	if after.Videos.Items[0].AppliedEffect != effects.Vintage {
		t.Errorf("AppliedEffect = %s, expected vintage", after.Videos.Items[0].AppliedEffect)
	}
}

func TestPlaybackSpeedAndSplitPoints(t *testing.T) {
	ed, _ := newTestEditor(t)

	if err := ed.SetPlaybackSpeed(model.PlaybackSpeed(3)); err == nil {
		t.Error("Expected error for unsupported speed")
	}
	if err := ed.SetPlaybackSpeed(model.SpeedDouble); err != nil {
		t.Fatalf("SetPlaybackSpeed() error: %v", err)
	}
	if err := ed.AddSplitPoint(model.SplitPoint{StartTime: 3, EndTime: 1}); err == nil {
		t.Error("Expected error for inverted split point")
	}
	_ = ed.AddSplitPoint(model.SplitPoint{StartTime: 0, EndTime: 2})
	_ = ed.AddSplitPoint(model.SplitPoint{StartTime: 1, EndTime: 4})

	s := ed.State()
	if s.Videos.PlaybackSpeed != model.SpeedDouble {
		t.Errorf("PlaybackSpeed = %v, expected 2x", s.Videos.PlaybackSpeed)
	}
	last, ok := SelectLastSplitPoint(s)
	if !ok || last != (model.SplitPoint{StartTime: 1, EndTime: 4}) {
		t.Errorf("SelectLastSplitPoint() = %v, expected 1-4", last)
	}
}

func TestSelectionPrunedAfterDelete(t *testing.T) {
	ed, _ := newTestEditor(t)
	img := ed.AddImage("blob:p", "p.png", model.Position{}, model.Size{Width: 5, Height: 5})
	ed.Select(model.KindImage, img.ID)
	ed.SetClipStart(img.ID, 7)

	ed.Delete(model.KindImage, img.ID)

	s := ed.State()
	if SelectActive(s, model.KindImage) != "" {
		t.Error("Selection should be cleared when the entity is deleted")
	}
	if _, ok := s.Timeline.ClipStarts[img.ID]; ok {
		t.Error("Clip override should be dropped when the entity is deleted")
	}
}

func TestSubscribe(t *testing.T) {
	store := NewStore(nil, 10)
	calls := 0
	unsubscribe := store.Subscribe(func(State) { calls++ })

	store.Dispatch(SetPlaybackSpeed{Speed: model.SpeedHalf})
	unsubscribe()
	store.Dispatch(SetPlaybackSpeed{Speed: model.SpeedNormal})

	if calls != 1 {
		t.Errorf("subscriber called %d times, expected 1", calls)
	}
}

func TestFitSize(t *testing.T) {
	canvas := model.Canvas{Width: 960, Height: 540}
	tests := []struct {
		size     model.Size
		expected model.Size
	}{
		{model.Size{Width: 1920, Height: 1080}, model.Size{Width: 960, Height: 540}},
		{model.Size{Width: 100, Height: 50}, model.Size{Width: 100, Height: 50}},
		{model.Size{Width: 270, Height: 1080}, model.Size{Width: 135, Height: 540}},
		{model.Size{}, model.Size{Width: 960, Height: 540}},
	}
	for _, test := range tests {
		if result := fitSize(test.size, canvas); result != test.expected {
			t.Errorf("fitSize(%v) = %v, expected %v", test.size, result, test.expected)
		}
	}
}

func TestShapeColorAndTextStyleAreUndoable(t *testing.T) {
	ed, _ := newTestEditor(t)
	shape := ed.AddShape(model.ShapeWave, model.Position{}, model.Size{Width: 80, Height: 40}, "#ff0000")
	text := ed.AddText("Hi", model.TextBody, model.Position{})

	ed.SetShapeColor(shape.ID, "#00ff00")
	style := model.TextStyle{FontSize: 40, Color: "#ffffff", FontWeight: "bold"}
	ed.SetTextStyle(text.ID, style)

	gotShape, _ := ed.State().Layers.Present.Shapes.Get(shape.ID)
	gotText, _ := ed.State().Layers.Present.Texts.Get(text.ID)
	if gotShape.Color != "#00ff00" {
		t.Errorf("Color = %s, expected #00ff00", gotShape.Color)
	}
	if gotText.Style != style {
		t.Errorf("Style = %+v, expected %+v", gotText.Style, style)
	}

	ed.Undo()
	gotText, _ = ed.State().Layers.Present.Texts.Get(text.ID)
	if gotText.Style.FontSize != model.DefaultTextStyle(model.TextBody).FontSize {
		t.Errorf("Undo should restore the preset style, got %+v", gotText.Style)
	}
	ed.Undo()
	gotShape, _ = ed.State().Layers.Present.Shapes.Get(shape.ID)
	if gotShape.Color != "#ff0000" {
		t.Errorf("Undo should restore the color, got %s", gotShape.Color)
	}
}

func TestSetProcessedOnMissingVideo(t *testing.T) {
	ed, rel := newTestEditor(t)
	v := ed.AddVideo("blob:orig", "clip.mp4", 10, model.Size{})

	if !ed.SetProcessed(v.ID, "blob:out", []byte("x")) {
		t.Error("SetProcessed() = false, expected true for a live video")
	}
	ed.Delete(model.KindVideo, v.ID)
	if ed.SetProcessed(v.ID, "blob:late", []byte("y")) {
		t.Error("SetProcessed() = true, expected false for a deleted video")
	}
	if rel.count("blob:late") != 0 {
		t.Error("An output that was never taken must be left to the caller")
	}
}

func TestSubscribersRunBeforeRelease(t *testing.T) {
	rel := newCountingReleaser()
	store := NewStore(rel, 10)
	ed := New(store, model.DefaultCanvas)
	v := ed.AddVideo("blob:orig", "clip.mp4", 10, model.Size{})

	releasedDuringNotify := -1
	store.Subscribe(func(State) {
		if releasedDuringNotify < 0 {
			releasedDuringNotify = rel.count("blob:orig")
		}
	})
	ed.Delete(model.KindVideo, v.ID)

	if releasedDuringNotify != 0 {
		t.Errorf("handle released %d times before subscribers ran, expected 0", releasedDuringNotify)
	}
	if rel.count("blob:orig") != 1 {
		t.Errorf("handle released %d times, expected 1", rel.count("blob:orig"))
	}
}
