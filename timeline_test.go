package stagehand

import "testing"

func singleClipTracks(start, end float64) []Track {
	return []Track{{Clips: []Clip{{
		ID:                 "c",
		StartTimeInSeconds: start,
		EndTimeInSeconds:   end,
	}}}}
}

func TestVisibleClipsBoundary(t *testing.T) {
	tracks := singleClipTracks(0, 5)

	if got := VisibleClips(tracks, 0, 1); len(got) != 1 {
		t.Errorf("frame 0 @ 1fps: %d clips, want 1", len(got))
	}
	// The interval is right-open: not visible at the end instant.
	if got := VisibleClips(tracks, 5, 1); len(got) != 0 {
		t.Errorf("frame 5 @ 1fps: %d clips, want 0", len(got))
	}
	if got := VisibleClips(tracks, 4999, 1000); len(got) != 1 {
		t.Errorf("frame 4999 @ 1000fps: %d clips, want 1", len(got))
	}
	if got := VisibleClips(tracks, 5000, 1000); len(got) != 0 {
		t.Errorf("frame 5000 @ 1000fps: %d clips, want 0", len(got))
	}
}

func TestVisibleClipsStartOffset(t *testing.T) {
	tracks := singleClipTracks(2, 4)
	if got := VisibleClips(tracks, 30, 30); len(got) != 0 {
		t.Errorf("t=1s: %d clips, want 0", len(got))
	}
	if got := VisibleClips(tracks, 60, 30); len(got) != 1 {
		t.Errorf("t=2s: %d clips, want 1", len(got))
	}
}

func TestVisibleClipsPreservesTrackOrder(t *testing.T) {
	tracks := []Track{
		{Clips: []Clip{{ID: "bottom", StartTimeInSeconds: 0, EndTimeInSeconds: 10}}},
		{Clips: []Clip{{ID: "middle", StartTimeInSeconds: 0, EndTimeInSeconds: 10}}},
		{Clips: []Clip{{ID: "top", StartTimeInSeconds: 5, EndTimeInSeconds: 10}}},
	}

	got := VisibleClips(tracks, 0, 1)
	if len(got) != 2 {
		t.Fatalf("frame 0: %d clips, want 2", len(got))
	}
	if got[0].Clip.ID != "bottom" || got[0].TrackIndex != 0 {
		t.Errorf("got[0] = %s track %d", got[0].Clip.ID, got[0].TrackIndex)
	}
	if got[1].Clip.ID != "middle" || got[1].TrackIndex != 1 {
		t.Errorf("got[1] = %s track %d", got[1].Clip.ID, got[1].TrackIndex)
	}

	got = VisibleClips(tracks, 5, 1)
	if len(got) != 3 || got[2].Clip.ID != "top" || got[2].TrackIndex != 2 {
		t.Errorf("frame 5 = %v", got)
	}
}

func TestVisibleClipsBadFPS(t *testing.T) {
	tracks := singleClipTracks(0, 5)
	if got := VisibleClips(tracks, 0, 0); got != nil {
		t.Errorf("fps 0: %v, want nil", got)
	}
	if got := VisibleClips(tracks, 0, -30); got != nil {
		t.Errorf("negative fps: %v, want nil", got)
	}
}
