package stagehand

import (
	"strconv"
	"strings"
)

// Text footprint estimation factors. This is a layout emulation, not a real
// text shaper: the contract is "close enough to be clickable", so a per-char
// width factor against the font size stands in for glyph metrics.
const (
	charWidthFactor     = 0.55
	boldCharWidthFactor = 0.62
	lineHeightFactor    = 1.2
	defaultFontSize     = 16.0
)

// Fallback anchor for elements with neither explicit geometry nor layout
// hints: a deliberately crude fixed position at 25% width, 35% height.
const (
	fallbackAnchorX = 0.25
	fallbackAnchorY = 0.35
)

// ClipBounds computes the selectable bounding rectangle of a clip in
// composition space. The second return value is false when the clip has no
// root element or every discoverable root yields no bounds (a pure empty
// container) — there is nothing to select.
//
// Bounds are recomputed from the decoded element graph on every call; they
// are ephemeral and never cached across frame or scene changes. Only the
// root transform's translation is baked into the reported box (scale and
// rotation are composed by the controller), so overlay boxes track
// drag-translation live without a full affine-bounds recomputation.
func (s *Scene) ClipBounds(clip *Clip, compW, compH float64) (Rect, bool) {
	if clip == nil || compW <= 0 || compH <= 0 {
		return Rect{}, false
	}
	g := s.graphs[clip.ID]
	if g == nil || len(g.roots) == 0 {
		return Rect{}, false
	}

	var out Rect
	found := false
	for _, root := range g.roots {
		b, ok := g.resolveRootBounds(root, compW, compH)
		if !ok {
			continue
		}
		if found {
			out = out.Union(b)
		} else {
			out = b
			found = true
		}
	}
	return out, found
}

// resolveRootBounds computes one root element's box following the layout
// emulation rules: explicit geometry first, full-bleed backgrounds and flex
// containers next, then the content-derived fallback.
func (g *elementGraph) resolveRootBounds(el *ElementRecord, compW, compH float64) (Rect, bool) {
	w, wok := resolveDimension(el.Properties["width"], compW, compW, compH)
	h, hok := resolveDimension(el.Properties["height"], compH, compW, compH)

	fullBleed := wok && hok && approxEq(w, compW) && approxEq(h, compH)

	var box Rect
	switch {
	case fullBleed:
		content, ok := g.contentBounds(el, compW, compH, nil)
		if !ok {
			// Background layer: full-bleed with nothing inside.
			box = Rect{Width: compW, Height: compH}
		} else {
			box = placeFlexContent(el, content, compW, compH)
		}

	case wok && hok:
		x := resolvePosition(el, "left", "right", w, compW, compH)
		y := resolvePosition(el, "top", "bottom", h, compW, compH)
		box = Rect{X: x, Y: y, Width: w, Height: h}

	default:
		content, ok := g.contentBounds(el, compW, compH, nil)
		if !ok {
			return Rect{}, false
		}
		box = Rect{
			X:      fallbackAnchorX * compW,
			Y:      fallbackAnchorY * compH,
			Width:  content.Width,
			Height: content.Height,
		}
	}

	// Bake the transform's translation only.
	if tr := ParseTransform(el.Properties["transform"]); !tr.IsIdentity() {
		box.X += tr.TranslateX
		box.Y += tr.TranslateY
	}
	return box, true
}

// placeFlexContent positions a content box inside a full-bleed flex
// container from its justifyContent (horizontal) and alignItems (vertical)
// properties, then offsets by padding: on the leading edge for
// flex-start/center, on the trailing edge for flex-end. Absent alignment
// properties fall back to center, matching the renderer's container default.
func placeFlexContent(el *ElementRecord, content Rect, compW, compH float64) Rect {
	pad := parsePixels(el.Properties["padding"])

	x := alignOffset(el.Properties["justifyContent"], content.Width, compW, pad)
	y := alignOffset(el.Properties["alignItems"], content.Height, compH, pad)
	return Rect{X: x, Y: y, Width: content.Width, Height: content.Height}
}

func alignOffset(mode string, size, total, pad float64) float64 {
	switch mode {
	case "flex-start":
		return pad
	case "flex-end":
		return total - size - pad
	default: // center
		return (total-size)/2 + pad
	}
}

// --- Recursive content search ---

// contentBounds searches el's children for renderable content and returns
// the enclosing envelope of everything found at this level. Positioning
// containers (display:flex wrappers at full composition size) are
// transparent: the search recurses into their children instead. A child with
// an explicit sub-composition size is used verbatim; a child carrying text
// gets an estimated footprint; anything else is searched recursively.
// visited guards against parent cycles in degraded graphs.
func (g *elementGraph) contentBounds(el *ElementRecord, compW, compH float64, visited map[string]bool) (Rect, bool) {
	if visited == nil {
		visited = make(map[string]bool)
	}
	if visited[el.ID] {
		return Rect{}, false
	}
	visited[el.ID] = true

	var out Rect
	found := false
	merge := func(b Rect) {
		if found {
			out = out.Union(b)
		} else {
			out = b
			found = true
		}
	}

	for _, child := range g.children[el.ID] {
		if isPositioningContainer(child, compW, compH) {
			if b, ok := g.contentBounds(child, compW, compH, visited); ok {
				merge(b)
			}
			continue
		}

		w, wok := resolveDimension(child.Properties["width"], compW, compW, compH)
		h, hok := resolveDimension(child.Properties["height"], compH, compW, compH)
		if wok && hok && !(approxEq(w, compW) && approxEq(h, compH)) {
			x := resolvePosition(child, "left", "right", w, compW, compH)
			y := resolvePosition(child, "top", "bottom", h, compW, compH)
			merge(Rect{X: x, Y: y, Width: w, Height: h})
			continue
		}

		if text := child.Properties["text"]; text != "" {
			merge(textFootprint(child, text, compW, compH))
			continue
		}

		if b, ok := g.contentBounds(child, compW, compH, visited); ok {
			merge(b)
		}
	}
	return out, found
}

// isPositioningContainer reports whether el is a layout-only wrapper: a
// display:flex element spanning the full composition with no visual content
// of its own.
func isPositioningContainer(el *ElementRecord, compW, compH float64) bool {
	if el.Properties["display"] != "flex" {
		return false
	}
	w, wok := resolveDimension(el.Properties["width"], compW, compW, compH)
	h, hok := resolveDimension(el.Properties["height"], compH, compW, compH)
	return wok && hok && approxEq(w, compW) && approxEq(h, compH)
}

// textFootprint estimates a text element's box as
// charFactor × fontSize × longest line by lineCount × fontSize × lineHeight.
// Bold text uses the wider per-character factor.
func textFootprint(el *ElementRecord, text string, compW, compH float64) Rect {
	fontSize := defaultFontSize
	if fs, ok := resolveDimension(el.Properties["fontSize"], compH, compW, compH); ok && fs > 0 {
		fontSize = fs
	}

	factor := charWidthFactor
	if isBold(el.Properties["fontWeight"]) {
		factor = boldCharWidthFactor
	}

	// The element grammar is one line per element, so embedded line breaks
	// arrive as the two-character \n escape.
	lines := strings.Split(strings.ReplaceAll(text, `\n`, "\n"), "\n")
	maxLen := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}

	x := resolvePosition(el, "left", "right", 0, compW, compH)
	y := resolvePosition(el, "top", "bottom", 0, compW, compH)
	return Rect{
		X:      x,
		Y:      y,
		Width:  factor * fontSize * float64(maxLen),
		Height: float64(len(lines)) * fontSize * lineHeightFactor,
	}
}

func isBold(weight string) bool {
	if weight == "bold" || weight == "bolder" {
		return true
	}
	if n, err := strconv.Atoi(weight); err == nil {
		return n >= 600
	}
	return false
}

// --- Unit resolution ---

// resolveDimension parses a declared dimension value. Pixel literals and
// bare numbers resolve as pixels; percentages resolve against the axis the
// property belongs to; vw/vh resolve against the composition width/height.
// Absent or unparsable values resolve to unset (ok=false) — a soft failure.
func resolveDimension(raw string, axis, compW, compH float64) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	switch {
	case strings.HasSuffix(raw, "%"):
		if f, err := strconv.ParseFloat(strings.TrimSuffix(raw, "%"), 64); err == nil {
			return f / 100 * axis, true
		}
	case strings.HasSuffix(raw, "vw"):
		if f, err := strconv.ParseFloat(strings.TrimSuffix(raw, "vw"), 64); err == nil {
			return f / 100 * compW, true
		}
	case strings.HasSuffix(raw, "vh"):
		if f, err := strconv.ParseFloat(strings.TrimSuffix(raw, "vh"), 64); err == nil {
			return f / 100 * compH, true
		}
	case strings.HasSuffix(raw, "px"):
		if f, err := strconv.ParseFloat(strings.TrimSuffix(raw, "px"), 64); err == nil {
			return f, true
		}
	default:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// resolvePosition resolves an element's position on one axis. near/far are
// the property names (left/right or top/bottom). A declared near edge wins;
// otherwise a far edge positions the box at axisSize - far - size; otherwise
// the position defaults to 0.
func resolvePosition(el *ElementRecord, near, far string, size, compW, compH float64) float64 {
	axis := compW
	if near == "top" {
		axis = compH
	}
	if v, ok := resolveDimension(el.Properties[near], axis, compW, compH); ok {
		return v
	}
	if v, ok := resolveDimension(el.Properties[far], axis, compW, compH); ok {
		return axis - v - size
	}
	return 0
}

// parsePixels parses a plain pixel value, returning 0 when absent or
// unparsable.
func parsePixels(raw string) float64 {
	raw = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "px"))
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return f
}
