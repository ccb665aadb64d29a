// Package edgegeom computes the geometry of drawn graphs: where edges go when
// several of them connect the same pair of nodes, how self-loops sit on a node,
// and which edge is closest to a pointer.
//
// # Anchors, connections, and groups
//
// A [Graph] holds [Anchor] values (circular nodes with a center and a radius)
// and [Connection] values (edges between two anchors, or from an anchor to
// itself). Connections that share the same unordered anchor pair form a
// parallel group. The order of connections inside a group determines where
// each one is placed in the fan.
//
// # Layout
//
// [Compute] turns a graph into a [Layout], a table that maps each connection
// to its [Geometry]. A Geometry is a tagged union over three shapes:
//
//   - [LineKind]: a straight segment between two anchor boundaries
//   - [QuadKind]: a quadratic Bézier bulging away from its neighbours
//   - [ArcKind]: a self-loop, drawn as a full circle that crosses the anchor's
//     boundary twice
//
// Parallel connections are fanned out by rotating each anchor's radius vector
// by a multiple of [Config.SpreadAngle]. The rotated vectors start at the
// anchor boundaries, and the point where their lines cross becomes the
// Bézier's control point. If a group has an odd number of connections, the
// middle one stays straight. Directed connections also carry an [ArrowTip] at
// the target boundary.
//
// A Layout is derived state. It is only valid for the graph as it was when
// Compute ran, so callers recompute it every frame rather than store it on the
// connections.
//
// # Picking
//
// [Pick] finds the connection closest to a point. Every geometry kind answers
// closest-point queries in closed form:
//
//   - segments project the point onto the segment
//   - quadratic Béziers solve the cubic derivative of the squared distance with
//     [CubicRoots]
//   - loops project the point onto the circle
//
// Pointer positions usually arrive in screen coordinates. A [Viewport] maps
// them to the world coordinates that layouts live in.
//
// # Search
//
// [Reachable] and [Connected] answer reachability questions, optionally
// ignoring the direction of directed connections. [ShortestPath] finds the
// path with the least total weight.
//
// # Configuration
//
// All tunable angles and scales live in [Config], which is passed explicitly
// to the layout functions. [LoadConfig] reads overrides from YAML. [Config.Snap]
// places points on a grid when snapping is enabled.
package edgegeom
