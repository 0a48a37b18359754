package stagehand

import (
	"errors"
	"testing"
)

func TestDecodeElementBasic(t *testing.T) {
	rec, err := DecodeElement("div;id:box;parentId:null;width:100px;height:50px")
	if err != nil {
		t.Fatalf("DecodeElement: %v", err)
	}
	if rec.Tag != "div" || rec.ID != "box" || rec.ParentID != RootParentID {
		t.Errorf("structure = %+v", rec)
	}
	if rec.Properties["width"] != "100px" || rec.Properties["height"] != "50px" {
		t.Errorf("properties = %v", rec.Properties)
	}
	if _, reserved := rec.Properties["id"]; reserved {
		t.Error("id leaked into generic property map")
	}
}

func TestDecodeElementValueWithColonsAndCommas(t *testing.T) {
	rec, err := DecodeElement("div;id:a;parentId:null;background:rgba(0, 0, 0, 0.5);transform:translate(10px, 20px) scale(2, 2) rotate(5deg)")
	if err != nil {
		t.Fatalf("DecodeElement: %v", err)
	}
	if got := rec.Properties["background"]; got != "rgba(0, 0, 0, 0.5)" {
		t.Errorf("background = %q", got)
	}
	if got := rec.Properties["transform"]; got != "translate(10px, 20px) scale(2, 2) rotate(5deg)" {
		t.Errorf("transform = %q", got)
	}
}

func TestDecodeElementSplitsFirstColonOnly(t *testing.T) {
	rec, err := DecodeElement("a;id:x;parentId:null;href:https://example.com/path")
	if err != nil {
		t.Fatalf("DecodeElement: %v", err)
	}
	if got := rec.Properties["href"]; got != "https://example.com/path" {
		t.Errorf("href = %q", got)
	}
}

func TestDecodeElementMissingID(t *testing.T) {
	_, err := DecodeElement("div;parentId:null;width:10px")
	if !errors.Is(err, ErrMissingID) {
		t.Errorf("err = %v, want ErrMissingID", err)
	}
}

func TestDecodeElementMissingParentID(t *testing.T) {
	_, err := DecodeElement("div;id:a;width:10px")
	if !errors.Is(err, ErrMissingParentID) {
		t.Errorf("err = %v, want ErrMissingParentID", err)
	}
}

func TestDecodeElementMissingTag(t *testing.T) {
	_, err := DecodeElement(";id:a;parentId:null")
	if !errors.Is(err, ErrMissingTag) {
		t.Errorf("err = %v, want ErrMissingTag", err)
	}
}

func TestDecodeElementSkipsEmptySegments(t *testing.T) {
	rec, err := DecodeElement("div;id:a;parentId:null;;flag")
	if err != nil {
		t.Fatalf("DecodeElement: %v", err)
	}
	if got, ok := rec.Properties["flag"]; !ok || got != "" {
		t.Errorf("flag = %q, ok = %v", got, ok)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	want := ElementRecord{
		Tag:      "h1",
		ID:       "title",
		ParentID: "root",
		Properties: map[string]string{
			"text":     "Hello",
			"fontSize": "48px",
			"color":    "rgb(255, 0, 0)",
		},
	}
	got, err := DecodeElement(EncodeElement(want))
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if got.Tag != want.Tag || got.ID != want.ID || got.ParentID != want.ParentID {
		t.Errorf("structure = %+v", got)
	}
	for k, v := range want.Properties {
		if got.Properties[k] != v {
			t.Errorf("property %q = %q, want %q", k, got.Properties[k], v)
		}
	}
}

func TestDecodeEncodeRoundTripExact(t *testing.T) {
	// Reserved keys first, remaining properties in sorted key order: encode
	// reproduces such lines byte for byte.
	line := "div;id:a;parentId:null;height:50px;width:100px"
	rec, err := DecodeElement(line)
	if err != nil {
		t.Fatalf("DecodeElement: %v", err)
	}
	if got := EncodeElement(rec); got != line {
		t.Errorf("EncodeElement = %q, want %q", got, line)
	}
}
