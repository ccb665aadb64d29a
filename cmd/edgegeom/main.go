// Command edgegeom lays out, picks and draws the connections of a scene file.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/graphbuilder/edgegeom"
	"github.com/graphbuilder/edgegeom/internal/scene"
	"github.com/graphbuilder/edgegeom/render"
)

const usage = `edgegeom - edge geometry for graph drawings

Usage:
  edgegeom <command> [options] <scene.yaml>

Commands:
  layout     Print the geometry of every connection
  pick       Print the connection nearest to a point
  render     Draw the scene as SVG or PNG
  path       Print the lightest path between two anchors
  reach      Print the anchors reachable from an anchor

Examples:
  edgegeom layout scene.yaml
  edgegeom pick -x 100 -y 20 -max 10 scene.yaml
  edgegeom render -o scene.png -w 1024 -h 768 scene.yaml
  edgegeom render -o scene.svg -pick 400,300 -grid 25 scene.yaml
  edgegeom path -from a -to d scene.yaml
  edgegeom reach -from a -undirected scene.yaml

Use "edgegeom <command> -h" for more information about a command.
`

func main() {
	log.SetFlags(0)
	log.SetPrefix("edgegeom: ")

	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "layout":
		err = cmdLayout(args)
	case "pick":
		err = cmdPick(args)
	case "render":
		err = cmdRender(args)
	case "path":
		err = cmdPath(args)
	case "reach":
		err = cmdReach(args)
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// gridFlag registers -grid, which snaps the scene's anchors to a grid.
func gridFlag(fs *flag.FlagSet) *float64 {
	return fs.Float64("grid", 0, "snap anchors to a grid with this spacing (0 to keep the scene's setting)")
}

func loadScene(fs *flag.FlagSet, grid float64) (*scene.Scene, error) {
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}
	name := fs.Arg(0)
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := scene.Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	if grid < 0 {
		return nil, fmt.Errorf("bad grid spacing %g", grid)
	}
	if grid > 0 {
		s.Config.GridSpacing = grid
		s.Config.SnapToGrid = true
		s.SnapAnchors()
	}
	return s, nil
}

// lookupAnchor returns the ID of the anchor with the given name.
func lookupAnchor(s *scene.Scene, name string) (uuid.UUID, error) {
	id, ok := s.Anchors[name]
	if !ok {
		return uuid.Nil, fmt.Errorf("%w %q", scene.ErrUnknownAnchor, name)
	}
	return id, nil
}

func newFlagSet(name, synopsis string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: edgegeom %s %s\n", name, synopsis)
		fs.PrintDefaults()
	}
	return fs
}

// describe names a connection by its endpoints and its position in the file.
func describe(s *scene.Scene, id uuid.UUID) string {
	c, err := s.Graph.Connection(id)
	if err != nil {
		return id.String()
	}
	arrow := "--"
	if c.Directed {
		arrow = "->"
	}
	return fmt.Sprintf("#%d %s%s%s", s.ConnectionIndex(id), s.AnchorName(c.From), arrow, s.AnchorName(c.To))
}

func printGeometry(w io.Writer, g edgegeom.Geometry) {
	switch g.Kind {
	case edgegeom.LineKind:
		fmt.Fprintf(w, "line %v %v", g.P0, g.P1)
	case edgegeom.QuadKind:
		fmt.Fprintf(w, "quad %v %v %v", g.P0, g.P1, g.P2)
	case edgegeom.ArcKind:
		fmt.Fprintf(w, "arc center=%v r=%g", g.Center, g.Radius)
	default:
		panic(fmt.Sprintf("unhandled case %v", g.Kind))
	}
	if g.Tip != nil {
		fmt.Fprintf(w, " tip=%v", g.Tip.Tip)
	}
}

func cmdLayout(args []string) error {
	fs := newFlagSet("layout", "[-grid G] <scene.yaml>")
	grid := gridFlag(fs)
	fs.Parse(args)
	s, err := loadScene(fs, *grid)
	if err != nil {
		return err
	}

	l := edgegeom.Compute(s.Graph, s.Config)
	w := bufio.NewWriter(os.Stdout)
	for id, g := range l.All() {
		fmt.Fprintf(w, "%s: ", describe(s, id))
		printGeometry(w, g)
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func cmdPick(args []string) error {
	fs := newFlagSet("pick", "-x X -y Y [-max D] [-grid G] <scene.yaml>")
	x := fs.Float64("x", 0, "x coordinate of the query point")
	y := fs.Float64("y", 0, "y coordinate of the query point")
	maxDist := fs.Float64("max", 0, "ignore connections farther than this (0 for no limit)")
	grid := gridFlag(fs)
	fs.Parse(args)
	s, err := loadScene(fs, *grid)
	if err != nil {
		return err
	}

	l := edgegeom.Compute(s.Graph, s.Config)
	pt := edgegeom.Pt(*x, *y)
	var hit edgegeom.Hit
	var ok bool
	if *maxDist > 0 {
		hit, ok = edgegeom.PickWithin(l, pt, *maxDist)
	} else {
		hit, ok = edgegeom.Pick(l, pt)
	}
	if !ok {
		fmt.Println("no connection")
		return nil
	}
	fmt.Printf("%s at %v, distance %g\n", describe(s, hit.ID), hit.Point, hit.Distance)
	return nil
}

func parsePoint(s string) (edgegeom.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return edgegeom.Point{}, fmt.Errorf("bad point %q, want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return edgegeom.Point{}, fmt.Errorf("bad point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return edgegeom.Point{}, fmt.Errorf("bad point %q: %w", s, err)
	}
	return edgegeom.Pt(x, y), nil
}

func cmdRender(args []string) error {
	opts := render.DefaultOptions()
	fs := newFlagSet("render", "-o out.svg|out.png [-w W] [-h H] [-pick x,y] [-grid G] <scene.yaml>")
	output := fs.String("o", "", "output file, .svg or .png")
	fs.IntVar(&opts.Width, "w", opts.Width, "width in pixels")
	fs.IntVar(&opts.Height, "h", opts.Height, "height in pixels")
	pick := fs.String("pick", "", "highlight the connection nearest to pixel x,y of the output")
	grid := gridFlag(fs)
	fs.Parse(args)
	if *output == "" {
		fs.Usage()
		os.Exit(2)
	}
	s, err := loadScene(fs, *grid)
	if err != nil {
		return err
	}

	l := edgegeom.Compute(s.Graph, s.Config)
	if *pick != "" {
		pt, err := parsePoint(*pick)
		if err != nil {
			return err
		}
		vp := render.FitViewport(l.Bounds(), opts)
		var cur edgegeom.Cursor
		cur.Update(l, vp.ToWorld(pt), true)
		if cur.HasHit {
			opts.Highlight = cur.Hit.ID
			opts.Selected = cur.Hit.ID
			log.Printf("picked %s", describe(s, cur.Hit.ID))
		}
	}

	write := render.WriteSVG
	switch ext := strings.ToLower(filepath.Ext(*output)); ext {
	case ".svg":
	case ".png":
		write = render.WritePNG
	default:
		return fmt.Errorf("unknown output format %q", ext)
	}

	f, err := os.Create(*output)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := write(w, s.Graph, l, opts); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("Written: %s\n", *output)
	return nil
}

func cmdPath(args []string) error {
	fs := newFlagSet("path", "-from A -to B <scene.yaml>")
	fromName := fs.String("from", "", "name of the start anchor")
	toName := fs.String("to", "", "name of the destination anchor")
	fs.Parse(args)
	s, err := loadScene(fs, 0)
	if err != nil {
		return err
	}
	from, err := lookupAnchor(s, *fromName)
	if err != nil {
		return err
	}
	to, err := lookupAnchor(s, *toName)
	if err != nil {
		return err
	}

	p, err := edgegeom.ShortestPath(s.Graph, from, to)
	if errors.Is(err, edgegeom.ErrNoPath) {
		fmt.Printf("no path from %s to %s\n", *fromName, *toName)
		return nil
	}
	if err != nil {
		return err
	}
	w := bufio.NewWriter(os.Stdout)
	printPath(w, s, p)
	return w.Flush()
}

func printPath(w io.Writer, s *scene.Scene, p edgegeom.Path) {
	names := make([]string, len(p.Anchors))
	for i, id := range p.Anchors {
		names[i] = s.AnchorName(id)
	}
	fmt.Fprintf(w, "%s (length %d)\n", strings.Join(names, " "), p.Length)
	for _, id := range p.Connections {
		fmt.Fprintf(w, "  %s\n", describe(s, id))
	}
}

func cmdReach(args []string) error {
	fs := newFlagSet("reach", "-from A [-undirected] <scene.yaml>")
	fromName := fs.String("from", "", "name of the start anchor")
	undirected := fs.Bool("undirected", false, "follow directed connections both ways")
	fs.Parse(args)
	s, err := loadScene(fs, 0)
	if err != nil {
		return err
	}
	from, err := lookupAnchor(s, *fromName)
	if err != nil {
		return err
	}
	reached, err := edgegeom.Reachable(s.Graph, !*undirected, from)
	if err != nil {
		return err
	}
	for _, id := range reached {
		fmt.Println(s.AnchorName(id))
	}
	return nil
}
