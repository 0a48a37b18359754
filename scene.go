package stagehand

import (
	"errors"
	"fmt"
	"strings"
)

// Scene errors.
var (
	ErrUnknownClip        = errors.New("unknown clip")
	ErrDuplicateClipID    = errors.New("duplicate clip id")
	ErrDuplicateElementID = errors.New("duplicate element id")
	ErrNoRootElement      = errors.New("clip has no root element")
)

// elementGraph is a clip's decoded element list with its parent/child index.
// Records keep declaration order so re-encoding preserves the clip's line
// order.
type elementGraph struct {
	records  []ElementRecord
	byID     map[string]*ElementRecord
	children map[string][]*ElementRecord
	roots    []*ElementRecord
}

// Scene owns the decoded form of a track list. Element strings are decoded
// exactly once here, at the system boundary; every downstream consumer (the
// bounds resolver, the manipulation controller) works on the structured
// records. The track list itself stays owned by the timeline editor.
type Scene struct {
	tracks []Track
	clips  map[string]*Clip
	graphs map[string]*elementGraph
}

// NewScene decodes every clip's element list and indexes the result.
// Malformed element encodings (missing id/parentId, duplicate ids, empty
// tag) are hard failures: they indicate a producer bug, not a scene this
// engine should guess its way through.
func NewScene(tracks []Track) (*Scene, error) {
	s := &Scene{
		tracks: tracks,
		clips:  make(map[string]*Clip),
		graphs: make(map[string]*elementGraph),
	}
	for ti := range tracks {
		clips := tracks[ti].Clips
		for ci := range clips {
			clip := &clips[ci]
			if _, dup := s.clips[clip.ID]; dup {
				return nil, fmt.Errorf("clip %q: %w", clip.ID, ErrDuplicateClipID)
			}
			g, err := decodeElements(clip.Element)
			if err != nil {
				return nil, fmt.Errorf("clip %q: %w", clip.ID, err)
			}
			s.clips[clip.ID] = clip
			s.graphs[clip.ID] = g
		}
	}
	return s, nil
}

// Tracks returns the scene's track list.
func (s *Scene) Tracks() []Track {
	return s.tracks
}

// Clip returns the clip with the given id, or nil.
func (s *Scene) Clip(id string) *Clip {
	return s.clips[id]
}

// VisibleClips returns the clips active at the given frame, in track order.
func (s *Scene) VisibleClips(frame int, fps float64) []VisibleClip {
	return VisibleClips(s.tracks, frame, fps)
}

// Elements returns the decoded element records of a clip in declaration
// order, or nil for an unknown clip.
func (s *Scene) Elements(clipID string) []ElementRecord {
	g := s.graphs[clipID]
	if g == nil {
		return nil
	}
	return g.records
}

// ClipTransform returns the transform carried by the clip's first root
// element, or the identity transform when the clip has no root or no
// transform property.
func (s *Scene) ClipTransform(clipID string) TransformValues {
	g := s.graphs[clipID]
	if g == nil || len(g.roots) == 0 {
		return IdentityTransform()
	}
	return ParseTransform(g.roots[0].Properties["transform"])
}

// ApplyTransform merges a patch over the clip's current transform and
// rewrites the clip's element string. The mutation is a whole-record
// replacement: the patched fields override the previous transform, the rest
// carry over, and the full record is re-encoded into the root element's
// transform property. This is the only scene mutation the engine performs.
func (s *Scene) ApplyTransform(clipID string, patch TransformPatch) error {
	g := s.graphs[clipID]
	clip := s.clips[clipID]
	if g == nil || clip == nil {
		return fmt.Errorf("apply transform to %q: %w", clipID, ErrUnknownClip)
	}
	if len(g.roots) == 0 {
		return fmt.Errorf("apply transform to %q: %w", clipID, ErrNoRootElement)
	}

	root := g.roots[0]
	merged := ParseTransform(root.Properties["transform"]).Apply(patch)
	root.Properties["transform"] = FormatTransform(merged)

	lines := make([]string, len(g.records))
	for i := range g.records {
		lines[i] = EncodeElement(g.records[i])
	}
	clip.Element = strings.Join(lines, "\n")
	return nil
}

// --- Element graph construction ---

// decodeElements decodes a clip's newline-separated element list and builds
// the parent/child index. Dangling or cyclic parentId references are
// tolerated by treating the affected element as a root, so content never
// silently disappears from the selectable set.
func decodeElements(raw string) (*elementGraph, error) {
	g := &elementGraph{
		byID:     make(map[string]*ElementRecord),
		children: make(map[string][]*ElementRecord),
	}

	seen := make(map[string]bool)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rec, err := DecodeElement(line)
		if err != nil {
			return nil, err
		}
		if seen[rec.ID] {
			return nil, fmt.Errorf("element %q: %w", rec.ID, ErrDuplicateElementID)
		}
		seen[rec.ID] = true
		g.records = append(g.records, rec)
	}

	// Pointers into records are taken only once the slice is final, since
	// appending may relocate the backing array.
	for i := range g.records {
		g.byID[g.records[i].ID] = &g.records[i]
	}
	for i := range g.records {
		rec := &g.records[i]
		if rec.ParentID == RootParentID {
			continue
		}
		if parent := g.byID[rec.ParentID]; parent != nil {
			g.children[parent.ID] = append(g.children[parent.ID], rec)
		}
	}
	for i := range g.records {
		rec := &g.records[i]
		if g.isRoot(rec) {
			g.roots = append(g.roots, rec)
		}
	}
	return g, nil
}

// isRoot classifies rec by walking its parent chain. Sentinel parent,
// missing parent, or a chain that cycles back to rec all make it a root; a
// chain that terminates elsewhere (including at some other element's cycle)
// leaves rec an ordinary child.
func (g *elementGraph) isRoot(rec *ElementRecord) bool {
	if rec.ParentID == RootParentID {
		return true
	}
	cur := g.byID[rec.ParentID]
	if cur == nil {
		return true
	}
	if cur.ID == rec.ID {
		// Self-parenting degrades to a root.
		return true
	}

	visited := map[string]bool{rec.ID: true}
	for {
		if visited[cur.ID] {
			// Cycle that does not pass through rec.
			return false
		}
		visited[cur.ID] = true
		if cur.ParentID == RootParentID {
			return false
		}
		next := g.byID[cur.ParentID]
		if next == nil {
			return false
		}
		if next.ID == rec.ID {
			// Chain cycles back to rec itself.
			return true
		}
		cur = next
	}
}
