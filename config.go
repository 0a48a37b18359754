package stagehand

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Project validation errors.
var (
	ErrBadComposition = errors.New("composition dimensions and fps must be positive")
	ErrBadClipRange   = errors.New("clip start must be before end")
	ErrEmptyClipID    = errors.New("clip id must not be empty")
)

// Project is a YAML project description: the fixed composition settings from
// the project file plus the track/clip list with inline element blocks.
//
//	composition:
//	  width: 1920
//	  height: 1080
//	  fps: 30
//	tracks:
//	  - clips:
//	      - id: title
//	        start: 0
//	        end: 5
//	        element: |
//	          AbsoluteFill;id:root;parentId:null;width:100%;height:100%
type Project struct {
	Composition CompositionConfig `yaml:"composition"`
	Tracks      []TrackConfig     `yaml:"tracks"`
}

// CompositionConfig holds the fixed composition-space settings.
type CompositionConfig struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	FPS    float64 `yaml:"fps"`
}

// TrackConfig is one track's clip list.
type TrackConfig struct {
	Clips []ClipConfig `yaml:"clips"`
}

// ClipConfig is one clip entry. Element holds the encoded scene description,
// one element per line.
type ClipConfig struct {
	ID      string  `yaml:"id"`
	Start   float64 `yaml:"start"`
	End     float64 `yaml:"end"`
	Element string  `yaml:"element"`
}

// ParseProject parses and validates a YAML project description.
func ParseProject(data []byte) (*Project, error) {
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse project: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadProject reads and parses a project file.
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	return ParseProject(data)
}

// Validate checks the structural invariants the engine relies on.
func (p *Project) Validate() error {
	c := p.Composition
	if c.Width <= 0 || c.Height <= 0 || c.FPS <= 0 {
		return fmt.Errorf("project: %w", ErrBadComposition)
	}
	for ti, track := range p.Tracks {
		for ci, clip := range track.Clips {
			if clip.ID == "" {
				return fmt.Errorf("track %d clip %d: %w", ti, ci, ErrEmptyClipID)
			}
			if clip.Start >= clip.End {
				return fmt.Errorf("clip %q: %w", clip.ID, ErrBadClipRange)
			}
		}
	}
	return nil
}

// TrackList converts the project's clip entries into engine tracks.
func (p *Project) TrackList() []Track {
	tracks := make([]Track, len(p.Tracks))
	for ti, tc := range p.Tracks {
		clips := make([]Clip, len(tc.Clips))
		for ci, cc := range tc.Clips {
			clips[ci] = Clip{
				ID:                 cc.ID,
				StartTimeInSeconds: cc.Start,
				EndTimeInSeconds:   cc.End,
				Element:            cc.Element,
			}
		}
		tracks[ti] = Track{Clips: clips}
	}
	return tracks
}

// Scene decodes the project's tracks into a Scene.
func (p *Project) Scene() (*Scene, error) {
	return NewScene(p.TrackList())
}
