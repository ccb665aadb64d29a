// Package scene loads graphs from YAML scene files.
//
// A scene file looks like this:
//
//	config:
//	  spread_angle: 0.3
//	  snap_to_grid: true
//	anchors:
//	  - {name: a, x: 0, y: 0, radius: 20, label: A, fill: "#fff9c4"}
//	  - {name: b, x: 200, y: 0, radius: 20}
//	connections:
//	  - {from: a, to: b, directed: true, weight: 2, color: "#1565c0"}
//	  - {from: a, to: a, loop_angle: 1.57}
//
// The config block is optional and overrides [edgegeom.DefaultConfig]. With
// snap_to_grid set, anchors are placed on the grid point closest to their
// coordinates.
package scene

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/graphbuilder/edgegeom"
)

var (
	// ErrUnknownAnchor indicates a connection naming an anchor that the scene
	// doesn't declare.
	ErrUnknownAnchor = errors.New("scene: unknown anchor")

	// ErrDuplicateAnchor indicates two anchors with the same name.
	ErrDuplicateAnchor = errors.New("scene: duplicate anchor name")

	// ErrBadColor indicates a color that isn't of the form #rrggbb.
	ErrBadColor = errors.New("scene: bad color")
)

type anchorSpec struct {
	Name   string  `yaml:"name"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
	Label  string  `yaml:"label"`
	Fill   string  `yaml:"fill"`
	Stroke string  `yaml:"stroke"`
}

type connectionSpec struct {
	From      string   `yaml:"from"`
	To        string   `yaml:"to"`
	Directed  bool     `yaml:"directed"`
	Weight    *int     `yaml:"weight"`
	Color     string   `yaml:"color"`
	Label     string   `yaml:"label"`
	LoopAngle *float64 `yaml:"loop_angle"`
}

type file struct {
	Config      edgegeom.Config  `yaml:"config"`
	Anchors     []anchorSpec     `yaml:"anchors"`
	Connections []connectionSpec `yaml:"connections"`
}

// Scene is a loaded scene file.
type Scene struct {
	Graph  *edgegeom.Graph
	Config edgegeom.Config

	// Anchors maps anchor names to IDs.
	Anchors map[string]uuid.UUID
	// Connections holds connection IDs in the order the file lists them.
	Connections []uuid.UUID
}

// Load reads a scene file and builds its graph.
func Load(r io.Reader) (*Scene, error) {
	f := file{Config: edgegeom.DefaultConfig()}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("scene: decoding: %w", err)
	}
	if err := f.Config.Validate(); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	s := &Scene{
		Graph:   edgegeom.NewGraph(),
		Config:  f.Config,
		Anchors: make(map[string]uuid.UUID, len(f.Anchors)),
	}
	for i, as := range f.Anchors {
		if _, ok := s.Anchors[as.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateAnchor, as.Name)
		}
		opts := []edgegeom.AnchorOption{edgegeom.WithAnchorLabel(as.Label)}
		if as.Fill != "" || as.Stroke != "" {
			fill, err := parseOptionalColor(as.Fill)
			if err != nil {
				return nil, fmt.Errorf("scene: anchor %d (%q): %w", i, as.Name, err)
			}
			stroke, err := parseOptionalColor(as.Stroke)
			if err != nil {
				return nil, fmt.Errorf("scene: anchor %d (%q): %w", i, as.Name, err)
			}
			opts = append(opts, edgegeom.WithAnchorColors(fill, stroke))
		}
		center := s.Config.Snap(edgegeom.Pt(as.X, as.Y))
		a, err := s.Graph.AddAnchor(center, as.Radius, opts...)
		if err != nil {
			return nil, fmt.Errorf("scene: anchor %d (%q): %w", i, as.Name, err)
		}
		s.Anchors[as.Name] = a.ID
	}

	for i, cs := range f.Connections {
		from, ok := s.Anchors[cs.From]
		if !ok {
			return nil, fmt.Errorf("scene: connection %d: %w %q", i, ErrUnknownAnchor, cs.From)
		}
		to, ok := s.Anchors[cs.To]
		if !ok {
			return nil, fmt.Errorf("scene: connection %d: %w %q", i, ErrUnknownAnchor, cs.To)
		}
		opts := []edgegeom.ConnectionOption{
			edgegeom.WithDirected(cs.Directed),
			edgegeom.WithLabel(cs.Label),
		}
		if cs.Weight != nil {
			opts = append(opts, edgegeom.WithWeight(*cs.Weight))
		}
		if cs.Color != "" {
			col, err := ParseColor(cs.Color)
			if err != nil {
				return nil, fmt.Errorf("scene: connection %d: %w", i, err)
			}
			opts = append(opts, edgegeom.WithColor(col))
		}
		if cs.LoopAngle != nil {
			opts = append(opts, edgegeom.WithLoopAngle(*cs.LoopAngle))
		}
		c, err := s.Graph.AddConnection(from, to, opts...)
		if err != nil {
			return nil, fmt.Errorf("scene: connection %d: %w", i, err)
		}
		s.Connections = append(s.Connections, c.ID)
	}
	return s, nil
}

// ParseColor parses an opaque color of the form #rrggbb.
func ParseColor(s string) (color.RGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("%w %q", ErrBadColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w %q", ErrBadColor, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// parseOptionalColor is like ParseColor but maps the empty string to the zero
// color.
func parseOptionalColor(s string) (color.RGBA, error) {
	if s == "" {
		return color.RGBA{}, nil
	}
	return ParseColor(s)
}

// SnapAnchors moves every anchor to the grid point closest to it, if the
// scene's config has snapping enabled.
func (s *Scene) SnapAnchors() {
	if !s.Config.SnapToGrid {
		return
	}
	for a := range s.Graph.Anchors() {
		a.Center = s.Config.Snap(a.Center)
	}
}

// AnchorName returns the name of the anchor with the given ID.
func (s *Scene) AnchorName(id uuid.UUID) string {
	for name, aid := range s.Anchors {
		if aid == id {
			return name
		}
	}
	return ""
}

// ConnectionIndex returns the position of a connection in the file, or -1.
func (s *Scene) ConnectionIndex(id uuid.UUID) int {
	for i, cid := range s.Connections {
		if cid == id {
			return i
		}
	}
	return -1
}
