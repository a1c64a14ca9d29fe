package geometry

import (
	"fmt"

	"github.com/spaghettifunk/tesseract/engine/math"
)

const (
	// HypercubeVertexCount is the number of vertices of a 4D hypercube.
	HypercubeVertexCount = 16
	// HypercubeEdgeCount is the number of edges of a 4D hypercube (16·4/2).
	HypercubeEdgeCount = 32
)

// Edge connects two vertex indices, I < J.
type Edge struct {
	I, J int
}

/**
 * @brief The static topology of a hypercube. Created once at startup
 * and never mutated afterwards.
 */
type Hypercube struct {
	Size     float64
	Vertices []math.Vec4
	Edges    []Edge
}

// NewHypercube builds the topology for the given edge length. Edges come
// from the unit layout, so a zero size still has 32 (collapsed) edges.
func NewHypercube(size float64) *Hypercube {
	return &Hypercube{
		Size:     size,
		Vertices: GenerateVertices(size),
		Edges:    GenerateEdges(GenerateVertices(1)),
	}
}

// GenerateVertices returns the 16 corners of a hypercube centred at the
// origin with the given edge length. Each axis takes {-size/2, +size/2};
// x varies slowest and w fastest, so bit 3 of the index is x, bit 2 is y,
// bit 1 is z and bit 0 is w (set means positive).
func GenerateVertices(size float64) []math.Vec4 {
	if !math.IsFinite(size) {
		panic(fmt.Sprintf("geometry: hypercube size must be finite, got %v", size))
	}
	half := size / 2
	values := [2]float64{-half, half}

	vertices := make([]math.Vec4, 0, HypercubeVertexCount)
	for _, x := range values {
		for _, y := range values {
			for _, z := range values {
				for _, w := range values {
					vertices = append(vertices, math.NewVec4(x, y, z, w))
				}
			}
		}
	}
	return vertices
}

// GenerateEdges returns every vertex pair differing in exactly one
// coordinate, in ascending (i, j) order. The scan is O(n²) over a fixed,
// small vertex set.
func GenerateEdges(vertices []math.Vec4) []Edge {
	edges := make([]Edge, 0, HypercubeEdgeCount)
	for i := 0; i < len(vertices); i++ {
		for j := i + 1; j < len(vertices); j++ {
			if differingAxes(vertices[i], vertices[j]) == 1 {
				edges = append(edges, Edge{I: i, J: j})
			}
		}
	}
	return edges
}

// EdgeAxis returns the axis (0=x .. 3=w) along which the edge runs, or -1
// if the endpoints do not differ in exactly one coordinate.
func EdgeAxis(vertices []math.Vec4, e Edge) int {
	a, b := vertices[e.I], vertices[e.J]
	axis := -1
	for k := 0; k < 4; k++ {
		if a.Component(k) != b.Component(k) {
			if axis != -1 {
				return -1
			}
			axis = k
		}
	}
	return axis
}

func differingAxes(a, b math.Vec4) int {
	count := 0
	for k := 0; k < 4; k++ {
		if a.Component(k) != b.Component(k) {
			count++
		}
	}
	return count
}

// Axes returns EdgeAxis for every edge, in edge order. Computed on the unit
// layout so a collapsed hypercube keeps its axis colouring.
func (h *Hypercube) Axes() []int {
	unit := GenerateVertices(1)
	axes := make([]int, len(h.Edges))
	for i, e := range h.Edges {
		axes[i] = EdgeAxis(unit, e)
	}
	return axes
}
