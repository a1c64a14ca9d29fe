package projection

import (
	"context"
	"errors"
	m "math"
	"testing"

	"github.com/spaghettifunk/tesseract/engine/geometry"
	"github.com/spaghettifunk/tesseract/engine/math"
)

func TestProjectParallelShear(t *testing.T) {
	p := DefaultParams()
	p.Shear = 0.25
	got := Project(math.NewVec4(1, 2, 3, 4), math.NewVec4(0, 1, 0, 2), ModeParallel, p)
	want := math.NewVec3(1.5, 1.5, 3.5)
	if !got.Compare(want, 1e-12) {
		t.Fatalf("parallel: got %+v want %+v", got, want)
	}
}

func TestProjectPerspective(t *testing.T) {
	p := DefaultParams()
	p.FocalDistance = 2
	cases := []struct {
		point math.Vec4
		want  math.Vec3
	}{
		{math.NewVec4(1, 1, 1, 0), math.NewVec3(1, 1, 1)},
		{math.NewVec4(1, -1, 2, 1), math.NewVec3(2, -2, 4)},
		{math.NewVec4(1, 1, 1, -2), math.NewVec3(0.5, 0.5, 0.5)},
	}
	for _, c := range cases {
		got := Project(c.point, math.NewVec4Zero(), ModePerspective, p)
		if !got.Compare(c.want, 1e-12) {
			t.Fatalf("perspective %+v: got %+v want %+v", c.point, got, c.want)
		}
	}
}

func TestProjectPerspectiveUsesObserverAndView(t *testing.T) {
	p := DefaultParams()
	p.FocalDistance = 2
	// observer at w=-1 makes the local w of a w=0 point equal to 1
	got := Project(math.NewVec4(1, 0, 0, 0), math.NewVec4(0, 0, 0, -1), ModePerspective, p)
	if !got.Compare(math.NewVec3(2, 0, 0), 1e-12) {
		t.Fatalf("observer offset: got %+v", got)
	}

	// a view turning x into w pushes the point to the focal plane
	p.View = math.PlaneXW.Rotation(math.K_HALF_PI)
	p.FocalDistance = 1
	got = Project(math.NewVec4(1, 0, 0, 0), math.NewVec4Zero(), ModePerspective, p)
	if !got.IsFinite() {
		t.Fatalf("view rotation produced non-finite output: %+v", got)
	}
}

func TestProjectPerspectiveSingularityGuard(t *testing.T) {
	p := DefaultParams()
	eps := p.Epsilon / 10
	point := math.NewVec4(0.5, -0.25, 1, p.FocalDistance-eps)
	got := Project(point, math.NewVec4Zero(), ModePerspective, p)
	if !got.IsFinite() {
		t.Fatalf("guard failed: %+v", got)
	}
	if want := point.ToVec3(); got != want {
		t.Fatalf("fallback: got %+v want %+v", got, want)
	}

	exact := math.NewVec4(1, 1, 1, p.FocalDistance)
	if got := Project(exact, math.NewVec4Zero(), ModePerspective, p); got != exact.ToVec3() {
		t.Fatalf("exact focal plane: got %+v", got)
	}
}

func TestProjectPerspectiveGuardWithoutEpsilon(t *testing.T) {
	cases := []struct {
		name   string
		point  math.Vec4
		params Params
	}{
		{"focal only, on the focal plane", math.NewVec4(1, 1, 1, 3), Params{FocalDistance: 3}},
		{"zero params at the origin", math.NewVec4Zero(), Params{}},
		{"negative epsilon", math.NewVec4(1, 1, 1, 3), Params{FocalDistance: 3, Epsilon: -1}},
		{"NaN epsilon", math.NewVec4(1, 1, 1, 3), Params{FocalDistance: 3, Epsilon: m.NaN()}},
		{"NaN focal distance", math.NewVec4(1, 2, 3, 0.5), Params{FocalDistance: m.NaN()}},
	}
	for _, c := range cases {
		got := Project(c.point, math.NewVec4Zero(), ModePerspective, c.params)
		if !got.IsFinite() {
			t.Fatalf("%s: non-finite projection %+v", c.name, got)
		}
		if want := c.point.ToVec3(); got != want {
			t.Fatalf("%s: got %+v, want unscaled %+v", c.name, got, want)
		}
	}

	// just outside the default threshold the divide still runs
	p := Params{FocalDistance: 3}
	point := math.NewVec4(1, 0, 0, 3-2*DefaultEpsilon)
	got := Project(point, math.NewVec4Zero(), ModePerspective, p)
	if want := 3 / (2 * DefaultEpsilon); m.Abs(got.X-want)/want > 1e-6 {
		t.Fatalf("x = %g, want %g", got.X, want)
	}
}

func TestProjectIsPure(t *testing.T) {
	p := DefaultParams()
	pt, obs := math.NewVec4(0.3, 0.2, -0.1, 0.7), math.NewVec4(0.1, 0, 0, -0.5)
	a := Project(pt, obs, ModePerspective, p)
	b := Project(pt, obs, ModePerspective, p)
	if a != b || pt != math.NewVec4(0.3, 0.2, -0.1, 0.7) {
		t.Fatal("Project is not deterministic or mutated its input")
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"perspective": ModePerspective, "Parallel": ModeParallel, " shear ": ModeParallel} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseMode("fisheye"); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
	if ModeParallel.String() != "parallel" {
		t.Fatalf("String() = %q", ModeParallel.String())
	}
}

func TestProjectEdgesLayout(t *testing.T) {
	h := geometry.NewHypercube(2)
	snap := Snapshot{Orientation: math.NewMat4Identity(), Observer: math.NewVec4(0, 0, 0, -4)}
	buf := ProjectEdges(nil, h.Vertices, h.Edges, snap, ModePerspective, DefaultParams())
	if len(buf) != len(h.Edges)*FloatsPerEdge {
		t.Fatalf("buffer len = %d", len(buf))
	}
	for n, e := range h.Edges {
		a := Project(h.Vertices[e.I], snap.Observer, ModePerspective, DefaultParams())
		if m.Abs(float64(buf[n*FloatsPerEdge])-a.X) > 1e-6 {
			t.Fatalf("edge %d first endpoint x = %g want %g", n, buf[n*FloatsPerEdge], a.X)
		}
	}

	// the buffer is reused when it is large enough
	again := ProjectEdges(buf, h.Vertices, h.Edges, snap, ModePerspective, DefaultParams())
	if &again[0] != &buf[0] {
		t.Fatal("ProjectEdges reallocated a large enough buffer")
	}
}

func TestProjectEdgesParallelMatchesSerial(t *testing.T) {
	h := geometry.NewHypercube(1.5)
	orientation := math.Compose(math.PlaneXW.Rotation(0.4), math.PlaneYZ.Rotation(-0.9))
	snap := Snapshot{Orientation: orientation, Observer: math.NewVec4(0.1, 0.2, -0.3, -3)}
	for _, mode := range []Mode{ModePerspective, ModeParallel} {
		serial := ProjectEdges(nil, h.Vertices, h.Edges, snap, mode, DefaultParams())
		for _, workers := range []int{0, 1, 3, 8, 64} {
			par, err := ProjectEdgesParallel(context.Background(), nil, h.Vertices, h.Edges, snap, mode, DefaultParams(), workers)
			if err != nil {
				t.Fatalf("workers=%d: %v", workers, err)
			}
			if len(par) != len(serial) {
				t.Fatalf("workers=%d: len %d vs %d", workers, len(par), len(serial))
			}
			for i := range serial {
				if par[i] != serial[i] {
					t.Fatalf("mode %s workers=%d: index %d differs: %g vs %g", mode, workers, i, par[i], serial[i])
				}
			}
		}
	}
}

func TestProjectEdgesParallelCancelled(t *testing.T) {
	h := geometry.NewHypercube(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	snap := Snapshot{Orientation: math.NewMat4Identity()}
	if _, err := ProjectEdgesParallel(ctx, nil, h.Vertices, h.Edges, snap, ModeParallel, DefaultParams(), 4); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestProjectEdgesParallelNoEdges(t *testing.T) {
	snap := Snapshot{Orientation: math.NewMat4Identity()}
	out, err := ProjectEdgesParallel(context.Background(), nil, nil, nil, snap, ModePerspective, DefaultParams(), 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Fatalf("len = %d, want 0", len(out))
	}
}
