package projection

import (
	"context"
	"runtime"

	"github.com/spaghettifunk/tesseract/engine/geometry"
	"github.com/spaghettifunk/tesseract/engine/math"
	"golang.org/x/sync/errgroup"
)

// FloatsPerEdge is the layout of the line buffer: x0 y0 z0 x1 y1 z1.
const FloatsPerEdge = 6

/**
 * @brief A consistent view of the mutable frame state. A projection pass
 * reads exactly one Snapshot, so orientation and position never tear.
 */
type Snapshot struct {
	Orientation math.Mat4
	Observer    math.Vec4
}

func resize(dst []float32, n int) []float32 {
	if cap(dst) < n {
		return make([]float32, n)
	}
	return dst[:n]
}

func projectEdge(out []float32, vertices []math.Vec4, e geometry.Edge, snap Snapshot, mode Mode, params Params) {
	a := Project(math.Apply(snap.Orientation, vertices[e.I]), snap.Observer, mode, params)
	b := Project(math.Apply(snap.Orientation, vertices[e.J]), snap.Observer, mode, params)
	out[0], out[1], out[2] = float32(a.X), float32(a.Y), float32(a.Z)
	out[3], out[4], out[5] = float32(b.X), float32(b.Y), float32(b.Z)
}

// ProjectEdges rotates every vertex by the snapshot orientation, projects
// it and writes one endpoint pair per edge, in edge order, into dst (grown
// if needed). The returned slice has len(edges)*FloatsPerEdge elements.
func ProjectEdges(dst []float32, vertices []math.Vec4, edges []geometry.Edge, snap Snapshot, mode Mode, params Params) []float32 {
	dst = resize(dst, len(edges)*FloatsPerEdge)
	for n, e := range edges {
		projectEdge(dst[n*FloatsPerEdge:(n+1)*FloatsPerEdge], vertices, e, snap, mode, params)
	}
	return dst
}

// ProjectEdgesParallel produces the same buffer as ProjectEdges, splitting
// the edges across up to workers goroutines. Each goroutine writes a
// disjoint range of dst and reads only the snapshot passed in.
func ProjectEdgesParallel(ctx context.Context, dst []float32, vertices []math.Vec4, edges []geometry.Edge, snap Snapshot, mode Mode, params Params, workers int) ([]float32, error) {
	dst = resize(dst, len(edges)*FloatsPerEdge)
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = math.Clamp(workers, 1, max(len(edges), 1))
	if workers == 1 {
		return ProjectEdges(dst, vertices, edges, snap, mode, params), nil
	}

	chunk := (len(edges) + workers - 1) / workers
	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(edges); start += chunk {
		lo, hi := start, start+chunk
		if hi > len(edges) {
			hi = len(edges)
		}
		g.Go(func() error {
			for n := lo; n < hi; n++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				projectEdge(dst[n*FloatsPerEdge:(n+1)*FloatsPerEdge], vertices, edges[n], snap, mode, params)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dst, nil
}
