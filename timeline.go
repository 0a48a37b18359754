package stagehand

// Clip is one scheduled interval on a track. The timeline editor owns clip
// lifetimes; this engine reads everything except Element, which
// Scene.ApplyTransform may rewrite. Invariant: StartTimeInSeconds <
// EndTimeInSeconds.
type Clip struct {
	ID                 string
	StartTimeInSeconds float64
	EndTimeInSeconds   float64

	// Element is the clip's encoded scene description, one element line per
	// newline-separated entry.
	Element string
}

// Track is an ordered sequence of clips. Track order defines z-order: a
// later track index renders on top.
type Track struct {
	Clips []Clip
}

// VisibleClip pairs an active clip with its track (z-order) index.
type VisibleClip struct {
	Clip       *Clip
	TrackIndex int
}

// VisibleClips returns the clips active at the given frame. A clip is
// visible iff start <= frame/fps < end; the interval is left-closed,
// right-open, so a clip is not visible at its own end instant. The result
// preserves track order; consumers needing topmost-first order iterate in
// reverse. A non-positive fps yields nil.
func VisibleClips(tracks []Track, frame int, fps float64) []VisibleClip {
	if fps <= 0 {
		return nil
	}
	t := float64(frame) / fps

	var out []VisibleClip
	for ti := range tracks {
		clips := tracks[ti].Clips
		for ci := range clips {
			c := &clips[ci]
			if c.StartTimeInSeconds <= t && t < c.EndTimeInSeconds {
				out = append(out, VisibleClip{Clip: c, TrackIndex: ti})
			}
		}
	}
	return out
}
