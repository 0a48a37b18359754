package stagehand

import (
	"errors"
	"strings"
	"testing"
)

func sceneWith(t *testing.T, element string) *Scene {
	t.Helper()
	s, err := NewScene([]Track{{Clips: []Clip{{
		ID:                 "clip",
		StartTimeInSeconds: 0,
		EndTimeInSeconds:   10,
		Element:            element,
	}}}})
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	return s
}

func TestNewSceneDecodesElements(t *testing.T) {
	s := sceneWith(t, "AbsoluteFill;id:root;parentId:null;width:100%;height:100%\nh1;id:t;parentId:root;text:Hi")
	recs := s.Elements("clip")
	if len(recs) != 2 {
		t.Fatalf("decoded %d records, want 2", len(recs))
	}
	if recs[0].ID != "root" || recs[1].ParentID != "root" {
		t.Errorf("records = %+v", recs)
	}
}

func TestNewSceneMalformedElement(t *testing.T) {
	_, err := NewScene([]Track{{Clips: []Clip{{
		ID: "bad", StartTimeInSeconds: 0, EndTimeInSeconds: 1,
		Element: "div;parentId:null",
	}}}})
	if !errors.Is(err, ErrMissingID) {
		t.Errorf("err = %v, want ErrMissingID", err)
	}
}

func TestNewSceneDuplicateElementID(t *testing.T) {
	_, err := NewScene([]Track{{Clips: []Clip{{
		ID: "dup", StartTimeInSeconds: 0, EndTimeInSeconds: 1,
		Element: "div;id:a;parentId:null\ndiv;id:a;parentId:null",
	}}}})
	if !errors.Is(err, ErrDuplicateElementID) {
		t.Errorf("err = %v, want ErrDuplicateElementID", err)
	}
}

func TestNewSceneDuplicateClipID(t *testing.T) {
	clip := Clip{ID: "same", StartTimeInSeconds: 0, EndTimeInSeconds: 1, Element: "div;id:a;parentId:null"}
	_, err := NewScene([]Track{{Clips: []Clip{clip}}, {Clips: []Clip{clip}}})
	if !errors.Is(err, ErrDuplicateClipID) {
		t.Errorf("err = %v, want ErrDuplicateClipID", err)
	}
}

func TestDanglingParentBecomesRoot(t *testing.T) {
	s := sceneWith(t, "div;id:orphan;parentId:ghost;width:100px;height:50px")
	b, ok := s.ClipBounds(s.Clip("clip"), 1000, 1000)
	if !ok {
		t.Fatal("orphan element yielded no bounds")
	}
	assertRectNear(t, "orphan bounds", b, Rect{X: 0, Y: 0, Width: 100, Height: 50})
}

func TestCyclicParentsTolerated(t *testing.T) {
	// a and b reference each other; both degrade to roots and bounds
	// resolution must terminate.
	s := sceneWith(t, "div;id:a;parentId:b;width:100px;height:100px\ndiv;id:b;parentId:a;width:50px;height:50px")
	b, ok := s.ClipBounds(s.Clip("clip"), 1000, 1000)
	if !ok {
		t.Fatal("cyclic elements yielded no bounds")
	}
	assertRectNear(t, "cycle bounds", b, Rect{X: 0, Y: 0, Width: 100, Height: 100})
}

func TestClipTransform(t *testing.T) {
	s := sceneWith(t, "div;id:a;parentId:null;width:10px;height:10px;transform:translate(5px, 6px) scale(2, 2) rotate(30deg)")
	tr := s.ClipTransform("clip")
	assertNear(t, "TranslateX", tr.TranslateX, 5)
	assertNear(t, "ScaleY", tr.ScaleY, 2)
	assertNear(t, "Rotation", tr.Rotation, 30)

	if got := s.ClipTransform("nope"); !got.IsIdentity() {
		t.Errorf("unknown clip transform = %+v, want identity", got)
	}
}

func TestApplyTransformRewritesElement(t *testing.T) {
	s := sceneWith(t, "div;id:a;parentId:null;width:10px;height:10px\nh1;id:b;parentId:a;text:Hi")

	if err := s.ApplyTransform("clip", TranslatePatch(10, 20)); err != nil {
		t.Fatalf("ApplyTransform: %v", err)
	}

	clip := s.Clip("clip")
	lines := strings.Split(clip.Element, "\n")
	if len(lines) != 2 {
		t.Fatalf("rewritten element has %d lines", len(lines))
	}
	if !strings.Contains(lines[0], "transform:translate(10px, 20px) scale(1, 1) rotate(0deg)") {
		t.Errorf("root line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "text:Hi") {
		t.Errorf("child line lost: %q", lines[1])
	}

	// A second patch merges over the previous value, not the default.
	if err := s.ApplyTransform("clip", RotatePatch(45)); err != nil {
		t.Fatalf("ApplyTransform: %v", err)
	}
	tr := s.ClipTransform("clip")
	assertNear(t, "TranslateX", tr.TranslateX, 10)
	assertNear(t, "Rotation", tr.Rotation, 45)
}

func TestApplyTransformUnknownClip(t *testing.T) {
	s := sceneWith(t, "div;id:a;parentId:null;width:10px;height:10px")
	if err := s.ApplyTransform("missing", TranslatePatch(1, 2)); !errors.Is(err, ErrUnknownClip) {
		t.Errorf("err = %v, want ErrUnknownClip", err)
	}
}
