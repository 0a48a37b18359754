package stagehand

import "math"

// SessionMode identifies the controller's drag state.
type SessionMode uint8

const (
	ModeIdle        SessionMode = iota // no active session
	ModeTranslating                    // body drag, start-relative deltas
	ModeRotating                       // absolute center-to-pointer angle
	ModeScaling                        // corner drag, anchor-preserving
)

// Corner identifies a scale handle.
type Corner uint8

const (
	CornerTopLeft Corner = iota
	CornerTopRight
	CornerBottomLeft
	CornerBottomRight
)

// signs returns the corner's direction from the box center in the element's
// unrotated local frame.
func (c Corner) signs() (float64, float64) {
	switch c {
	case CornerTopLeft:
		return -1, -1
	case CornerTopRight:
		return 1, -1
	case CornerBottomLeft:
		return -1, 1
	default:
		return 1, 1
	}
}

// opposite returns the diagonally opposite corner — the scale anchor.
func (c Corner) opposite() Corner {
	switch c {
	case CornerTopLeft:
		return CornerBottomRight
	case CornerTopRight:
		return CornerBottomLeft
	case CornerBottomLeft:
		return CornerTopRight
	default:
		return CornerTopLeft
	}
}

const (
	// minScaleExtent is the smallest local-axis delta a scale drag can
	// produce, in composition pixels. It keeps the box from collapsing or
	// flipping inside-out across the anchor.
	minScaleExtent = 8.0
	// minScaleFactor floors the emitted scale factors.
	minScaleFactor = 0.05
	// handlePickRadius is the pick distance around a corner handle, in
	// display pixels.
	handlePickRadius = 10.0
)

// ClipGeometry is a visible clip's selectable footprint in composition
// space. Rect is the resolver's bounding box inflated by the clip's current
// scale about its center; Rotation (degrees) is tracked separately so hit
// testing and scale sessions can work in the element's unrotated frame.
type ClipGeometry struct {
	ClipID     string
	TrackIndex int
	Rect       Rect
	Rotation   float64
	Transform  TransformValues
}

// dragSession is the transient state of one press-to-release gesture. It
// lives exactly from pointer down to pointer up and is never shared across
// gestures.
type dragSession struct {
	mode   SessionMode
	clipID string

	// Transform captured at press time. Moves recompute the full delta from
	// the press state, never from the previous move, so uneven event
	// delivery cannot accumulate drift.
	initial TransformValues

	// Translation: press position in composition space.
	pressX, pressY float64

	// Rotation and scaling: element center at press time, composition space.
	centerX, centerY float64

	// Scaling only.
	corner           Corner
	anchorX, anchorY float64 // world position of the opposite corner
	baseW, baseH     float64 // pre-scale size
	rotation         float64 // radians at press time
}

// Controller owns selection and pointer-driven drag sessions for one editor
// instance. All pointer coordinates it receives are display-space; they are
// converted through the current DisplayMetrics before any geometry math.
// The controller is single-threaded and purely computational: malformed
// input (no selection, absent clip, degenerate viewport) makes an operation
// a silent no-op, never a failure — a manipulation gesture must not crash an
// interactive surface.
type Controller struct {
	scene        *Scene
	compW, compH float64
	metrics      DisplayMetrics
	frame        int
	fps          float64

	selected string
	session  *dragSession

	// OnSelect fires on every click resolution with the resolved clip id, or
	// ("", false) for a deselecting click.
	OnSelect func(clipID string, selected bool)

	// OnTransform fires on every drag-move tick with a partial transform.
	// The editor collaborator merges it into the clip's element string
	// (Scene.ApplyTransform) and handles persistence. Updates are emitted in
	// pointer-move order; the engine never batches or reorders them.
	OnTransform func(clipID string, patch TransformPatch)
}

// NewController creates a controller for one editor instance over the given
// scene and fixed composition dimensions. Call SetViewport and SetFrame
// before feeding pointer input.
func NewController(scene *Scene, compW, compH float64) *Controller {
	return &Controller{scene: scene, compW: compW, compH: compH}
}

// SetViewport supplies the live viewport rectangle and recomputes the
// letterbox metrics. Called by the rendering surface collaborator on every
// resize.
func (c *Controller) SetViewport(viewW, viewH float64) {
	c.metrics = FitDisplay(c.compW, c.compH, viewW, viewH)
}

// SetFrame supplies the displayed frame and frame rate from the playback
// clock.
func (c *Controller) SetFrame(frame int, fps float64) {
	c.frame = frame
	c.fps = fps
}

// Metrics returns the current display metrics.
func (c *Controller) Metrics() DisplayMetrics {
	return c.metrics
}

// Selected returns the selected clip id, or "".
func (c *Controller) Selected() string {
	return c.selected
}

// Mode returns the active session mode, or ModeIdle.
func (c *Controller) Mode() SessionMode {
	if c.session == nil {
		return ModeIdle
	}
	return c.session.mode
}

// Deselect clears the selection. External deselection implicitly cancels any
// active session.
func (c *Controller) Deselect() {
	c.selected = ""
	c.session = nil
}

// --- Geometry ---

// VisibleGeometries returns selectable geometry for every clip visible at
// the current frame, in track order. Consumers needing topmost-first order
// iterate in reverse.
func (c *Controller) VisibleGeometries() []ClipGeometry {
	if c.scene == nil || c.compW <= 0 || c.compH <= 0 {
		return nil
	}
	var out []ClipGeometry
	for _, vc := range c.scene.VisibleClips(c.frame, c.fps) {
		b, ok := c.scene.ClipBounds(vc.Clip, c.compW, c.compH)
		if !ok {
			continue
		}
		tr := c.scene.ClipTransform(vc.Clip.ID)
		out = append(out, ClipGeometry{
			ClipID:     vc.Clip.ID,
			TrackIndex: vc.TrackIndex,
			Rect:       inflateByScale(b, tr),
			Rotation:   tr.Rotation,
			Transform:  tr,
		})
	}
	return out
}

// inflateByScale grows the resolver's box by the transform's scale factors
// about the box center. The resolver bakes translation only; the rendered
// footprint is the layout box scaled about its center.
func inflateByScale(b Rect, tr TransformValues) Rect {
	cx, cy := b.Center()
	w := b.Width * tr.ScaleX
	h := b.Height * tr.ScaleY
	return Rect{X: cx - w/2, Y: cy - h/2, Width: w, Height: h}
}

// geometryContains tests a composition-space point against a rotated
// rectangle: translate into the center-relative frame, rotate by the
// negative rotation, then test the axis-aligned half-extents.
func geometryContains(g ClipGeometry, x, y float64) bool {
	cx, cy := g.Rect.Center()
	lx, ly := rotatePoint(x-cx, y-cy, -degToRad(g.Rotation))
	return math.Abs(lx) <= g.Rect.Width/2 && math.Abs(ly) <= g.Rect.Height/2
}

// selectedGeometry returns the selected clip's geometry if it is visible at
// the current frame.
func (c *Controller) selectedGeometry() (ClipGeometry, bool) {
	if c.selected == "" {
		return ClipGeometry{}, false
	}
	for _, g := range c.VisibleGeometries() {
		if g.ClipID == c.selected {
			return g, true
		}
	}
	return ClipGeometry{}, false
}

// displayCorner returns a geometry corner's position in display space.
func (c *Controller) displayCorner(g ClipGeometry, corner Corner) (float64, float64) {
	cx, cy := g.Rect.Center()
	sx, sy := corner.signs()
	dx, dy := rotatePoint(sx*g.Rect.Width/2, sy*g.Rect.Height/2, degToRad(g.Rotation))
	return c.metrics.ToDisplay(cx+dx, cy+dy)
}

// --- Selection ---

// Click resolves a press at display coordinates to a selection. Candidates
// are tested topmost-first (reverse track order) with rotation-aware
// containment; the first match wins, and no match deselects. The resolution
// is reported through OnSelect either way. A click that changes the
// selection cancels any active session.
func (c *Controller) Click(x, y float64) (string, bool) {
	if !c.metrics.Valid() {
		return c.selected, c.selected != ""
	}
	px, py := c.metrics.ToComposition(x, y)

	hit := ""
	geoms := c.VisibleGeometries()
	for i := len(geoms) - 1; i >= 0; i-- {
		if geometryContains(geoms[i], px, py) {
			hit = geoms[i].ClipID
			break
		}
	}

	if hit != c.selected {
		c.session = nil
	}
	c.selected = hit
	if c.OnSelect != nil {
		c.OnSelect(hit, hit != "")
	}
	return hit, hit != ""
}

// HandleAt reports which of the selected clip's corner handles lies under
// the given display-space point, if any.
func (c *Controller) HandleAt(x, y float64) (Corner, bool) {
	g, ok := c.selectedGeometry()
	if !ok || !c.metrics.Valid() {
		return 0, false
	}
	for _, corner := range []Corner{CornerTopLeft, CornerTopRight, CornerBottomLeft, CornerBottomRight} {
		hx, hy := c.displayCorner(g, corner)
		if math.Hypot(x-hx, y-hy) <= handlePickRadius {
			return corner, true
		}
	}
	return 0, false
}

// --- Sessions ---

// BeginTranslate opens a translation session at the given display-space
// press position. Exactly one session may be active at a time; a new press
// is rejected while one is open.
func (c *Controller) BeginTranslate(x, y float64) bool {
	g, ok := c.sessionStart()
	if !ok {
		return false
	}
	px, py := c.metrics.ToComposition(x, y)
	c.session = &dragSession{
		mode:    ModeTranslating,
		clipID:  g.ClipID,
		initial: g.Transform,
		pressX:  px,
		pressY:  py,
	}
	return true
}

// BeginRotate opens a rotation session for the selected clip. Rotation is
// absolute — every move sets the angle from the clip's center to the
// pointer — so no press position is captured.
func (c *Controller) BeginRotate() bool {
	g, ok := c.sessionStart()
	if !ok {
		return false
	}
	cx, cy := g.Rect.Center()
	c.session = &dragSession{
		mode:    ModeRotating,
		clipID:  g.ClipID,
		initial: g.Transform,
		centerX: cx,
		centerY: cy,
	}
	return true
}

// BeginScale opens a corner-scale session. The diagonally opposite corner's
// world position is captured as the anchor that must stay fixed, and the
// pre-scale base size is recovered by dividing the current bounds by the
// current scale factors.
func (c *Controller) BeginScale(corner Corner) bool {
	g, ok := c.sessionStart()
	if !ok {
		return false
	}

	baseW := g.Rect.Width
	baseH := g.Rect.Height
	if g.Transform.ScaleX > 0 {
		baseW /= g.Transform.ScaleX
	}
	if g.Transform.ScaleY > 0 {
		baseH /= g.Transform.ScaleY
	}

	rad := degToRad(g.Rotation)
	cx, cy := g.Rect.Center()
	osx, osy := corner.opposite().signs()
	ax, ay := rotatePoint(osx*g.Rect.Width/2, osy*g.Rect.Height/2, rad)

	c.session = &dragSession{
		mode:     ModeScaling,
		clipID:   g.ClipID,
		initial:  g.Transform,
		centerX:  cx,
		centerY:  cy,
		corner:   corner,
		anchorX:  cx + ax,
		anchorY:  cy + ay,
		baseW:    baseW,
		baseH:    baseH,
		rotation: rad,
	}
	return true
}

// sessionStart gathers the common preconditions for opening a session.
func (c *Controller) sessionStart() (ClipGeometry, bool) {
	if c.session != nil || !c.metrics.Valid() {
		return ClipGeometry{}, false
	}
	return c.selectedGeometry()
}

// PointerMove feeds a pointer position to the active session and emits the
// resulting transform patch. A no-op when no session is active.
func (c *Controller) PointerMove(x, y float64) {
	s := c.session
	if s == nil || !c.metrics.Valid() {
		return
	}

	switch s.mode {
	case ModeTranslating:
		// Full delta from the original press position added to the original
		// transform.
		px, py := c.metrics.ToComposition(x, y)
		c.emit(s.clipID, TranslatePatch(
			s.initial.TranslateX+(px-s.pressX),
			s.initial.TranslateY+(py-s.pressY),
		))

	case ModeRotating:
		// Absolute angle from the center to the pointer, in display space;
		// the handle always points from center to cursor.
		dcx, dcy := c.metrics.ToDisplay(s.centerX, s.centerY)
		c.emit(s.clipID, RotatePatch(radToDeg(math.Atan2(y-dcy, x-dcx))))

	case ModeScaling:
		c.moveScale(s, x, y)
	}
}

// moveScale runs the anchor-preserving scale step: pointer into composition
// space, anchor-to-pointer vector into the element's unrotated local frame,
// per-axis sign/minimum clamp, then new scale factors and the translation
// that keeps the anchor fixed in world space. Rotation is left untouched.
func (c *Controller) moveScale(s *dragSession, x, y float64) {
	px, py := c.metrics.ToComposition(x, y)
	lx, ly := rotatePoint(px-s.anchorX, py-s.anchorY, -s.rotation)

	// Each handle has an expected sign for its local delta; a violating or
	// near-zero value clamps to the minimum magnitude on that axis.
	esx, esy := s.corner.signs()
	if lx*esx < minScaleExtent {
		lx = esx * minScaleExtent
	}
	if ly*esy < minScaleExtent {
		ly = esy * minScaleExtent
	}

	sx := s.initial.ScaleX
	if s.baseW > 0 {
		sx = math.Max(math.Abs(lx)/s.baseW, minScaleFactor)
	}
	sy := s.initial.ScaleY
	if s.baseH > 0 {
		sy = math.Max(math.Abs(ly)/s.baseH, minScaleFactor)
	}

	// New center is the midpoint between the anchor and the dragged corner
	// rotated back into world space.
	wx, wy := rotatePoint(lx, ly, s.rotation)
	ncx := s.anchorX + wx/2
	ncy := s.anchorY + wy/2

	c.emit(s.clipID, ScalePatch(
		s.initial.TranslateX+(ncx-s.centerX),
		s.initial.TranslateY+(ncy-s.centerY),
		sx, sy,
	))
}

// PointerUp closes the active session. The release is unconditional — it
// also covers abnormal releases outside the viewport — so session state can
// never leak across gestures.
func (c *Controller) PointerUp() {
	c.session = nil
}

func (c *Controller) emit(clipID string, patch TransformPatch) {
	if c.OnTransform != nil {
		c.OnTransform(clipID, patch)
	}
}
