package edgegeom

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"
)

// Config holds the tunable parameters of layout. All angles are in radians.
type Config struct {
	// SpreadAngle is the angle between neighbouring connections of a parallel
	// group, measured at the anchors.
	SpreadAngle float64 `yaml:"spread_angle"`
	// SelfLoopCentralAngle is the arc of the anchor's boundary that lies inside
	// a self-loop.
	SelfLoopCentralAngle float64 `yaml:"self_loop_central_angle"`
	// SelfLoopEdgeAngle is the arc of the self-loop's own circle that lies
	// inside the anchor.
	SelfLoopEdgeAngle float64 `yaml:"self_loop_edge_angle"`
	// ArrowTipScale is the length of an arrow tip per unit of connection weight.
	ArrowTipScale float64 `yaml:"arrow_tip_scale"`
	// SelfLoopBaseAngle is the direction of an anchor's first self-loop when the
	// loop doesn't specify its own. Further loops are spaced evenly around the
	// anchor.
	SelfLoopBaseAngle float64 `yaml:"self_loop_base_angle"`

	// GridSpacing is the distance between neighbouring grid lines.
	GridSpacing float64 `yaml:"grid_spacing"`
	// SnapToGrid makes [Config.Snap] move points onto the grid.
	SnapToGrid bool `yaml:"snap_to_grid"`
}

// DefaultConfig returns the configuration used when nothing else is specified.
func DefaultConfig() Config {
	return Config{
		SpreadAngle:          math.Pi / 8,
		SelfLoopCentralAngle: math.Pi / 3,
		SelfLoopEdgeAngle:    math.Pi / 2,
		ArrowTipScale:        5,
		SelfLoopBaseAngle:    -math.Pi / 2,
		GridSpacing:          30,
	}
}

var (
	// ErrBadConfig is returned by [Config.Validate] for parameters that cannot
	// produce a layout.
	ErrBadConfig = errors.New("edgegeom: bad config")
)

// Validate checks that every parameter is within range.
func (cfg Config) Validate() error {
	check := func(name string, v float64) error {
		if math.IsNaN(v) || v <= 0 || v >= 2*math.Pi {
			return fmt.Errorf("%w: %s must be in (0, 2π), got %g", ErrBadConfig, name, v)
		}
		return nil
	}
	if err := check("spread_angle", cfg.SpreadAngle); err != nil {
		return err
	}
	if err := check("self_loop_central_angle", cfg.SelfLoopCentralAngle); err != nil {
		return err
	}
	if err := check("self_loop_edge_angle", cfg.SelfLoopEdgeAngle); err != nil {
		return err
	}
	if !(cfg.ArrowTipScale > 0) || math.IsInf(cfg.ArrowTipScale, 0) {
		return fmt.Errorf("%w: arrow_tip_scale must be positive, got %g", ErrBadConfig, cfg.ArrowTipScale)
	}
	if math.IsNaN(cfg.SelfLoopBaseAngle) || math.IsInf(cfg.SelfLoopBaseAngle, 0) {
		return fmt.Errorf("%w: self_loop_base_angle must be finite", ErrBadConfig)
	}
	if !(cfg.GridSpacing > 0) || math.IsInf(cfg.GridSpacing, 0) {
		return fmt.Errorf("%w: grid_spacing must be positive, got %g", ErrBadConfig, cfg.GridSpacing)
	}
	return nil
}

// Snap returns the grid point closest to pt if SnapToGrid is set, and pt
// unchanged otherwise.
func (cfg Config) Snap(pt Point) Point {
	if !cfg.SnapToGrid {
		return pt
	}
	return SnapToGrid(pt, cfg.GridSpacing)
}

// SnapToGrid returns the point of the grid with the given spacing that is
// closest to pt. The grid has a point at the origin. Coordinates halfway
// between two grid lines round up.
func SnapToGrid(pt Point, spacing float64) Point {
	snap := func(v float64) float64 {
		return math.Floor(v/spacing+0.5) * spacing
	}
	return Pt(snap(pt.X), snap(pt.Y))
}

// LoadConfig reads a YAML document of overrides on top of [DefaultConfig] and
// validates the result. An empty document yields the defaults.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("edgegeom: decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
