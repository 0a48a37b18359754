package stagehand

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// RootParentID is the sentinel parentId value marking a root element.
const RootParentID = "null"

// Decode errors. A missing id or parentId indicates a producer bug and is
// surfaced rather than defaulted: guessing an id could silently merge
// unrelated elements during graph reconstruction.
var (
	ErrMissingTag      = errors.New("missing tag")
	ErrMissingID       = errors.New("missing id")
	ErrMissingParentID = errors.New("missing parentId")
)

// ElementRecord is one decoded element of a clip's scene description.
// ID must be unique within a clip's element list; ParentID is either
// RootParentID or another element's ID. All properties other than the two
// reserved keys stay as opaque string values for downstream consumers.
type ElementRecord struct {
	Tag        string
	ID         string
	ParentID   string
	Properties map[string]string
}

// DecodeElement decodes one encoded element line of the form
//
//	tag;key1:value1;key2:value2;...
//
// The first segment is the tag; every later segment splits on the first colon
// only, so values keep embedded colons and commas (rgba(...), translate(x,y))
// verbatim. Empty segments are skipped; a segment without a colon becomes a
// key with an empty value. The reserved keys id and parentId are extracted
// out of the property map; a line missing either is a hard error.
func DecodeElement(line string) (ElementRecord, error) {
	segments := strings.Split(line, ";")
	tag := strings.TrimSpace(segments[0])
	if tag == "" {
		return ElementRecord{}, fmt.Errorf("decode element %q: %w", line, ErrMissingTag)
	}

	rec := ElementRecord{Tag: tag, Properties: make(map[string]string)}
	for _, seg := range segments[1:] {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		key, value, _ := strings.Cut(seg, ":")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch key {
		case "id":
			rec.ID = value
		case "parentId":
			rec.ParentID = value
		default:
			rec.Properties[key] = value
		}
	}

	if rec.ID == "" {
		return ElementRecord{}, fmt.Errorf("decode element %q: %w", line, ErrMissingID)
	}
	if rec.ParentID == "" {
		return ElementRecord{}, fmt.Errorf("decode element %q: %w", line, ErrMissingParentID)
	}
	return rec, nil
}

// EncodeElement encodes a record back into the element line grammar. The
// reserved keys come first and the remaining properties are written in sorted
// key order so output is deterministic. For any record whose property values
// contain no semicolon, DecodeElement(EncodeElement(r)) reproduces r.
func EncodeElement(rec ElementRecord) string {
	parts := make([]string, 0, len(rec.Properties)+3)
	parts = append(parts, rec.Tag, "id:"+rec.ID, "parentId:"+rec.ParentID)

	keys := make([]string, 0, len(rec.Properties))
	for k := range rec.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, k+":"+rec.Properties[k])
	}
	return strings.Join(parts, ";")
}
