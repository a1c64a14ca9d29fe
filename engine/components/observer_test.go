package components

import (
	"testing"

	"github.com/spaghettifunk/tesseract/engine/math"
)

func TestStateResetAndSnapshot(t *testing.T) {
	s := NewStateWithPolicy(8, 1e-9)
	s.Orientation.Rotate(math.PlaneXW.Rotation(0.3))
	s.Move(math.NewVec4(0, 0, 1, 0), 2)

	snap := s.Snapshot()
	if snap.Observer != math.NewVec4(0, 0, 2, 0) {
		t.Fatalf("snapshot observer = %+v", snap.Observer)
	}
	// the snapshot is a copy
	s.Move(math.NewVec4(1, 0, 0, 0), 1)
	if snap.Observer.X != 0 {
		t.Fatal("snapshot aliases state")
	}

	s.Reset()
	if s.Position != math.NewVec4Zero() || !s.Orientation.Matrix.Compare(math.NewMat4Identity(), 0) {
		t.Fatalf("reset state = %+v", s)
	}
	if s.Orientation.RenormalizeEvery != 8 {
		t.Fatal("reset dropped the drift policy")
	}
	if !s.IsFinite() {
		t.Fatal("fresh state not finite")
	}
}
