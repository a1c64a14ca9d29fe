package core

import (
	"errors"
	"testing"

	"github.com/spaghettifunk/tesseract/engine/math"
)

func TestIntentsSet(t *testing.T) {
	s := NewIntents(MoveForward, StrafeRight)
	if !s.Has(MoveForward) || !s.Has(StrafeRight) || s.Has(MoveAna) {
		t.Fatalf("unexpected set %08b", s)
	}
	s = s.Without(MoveForward)
	if s.Has(MoveForward) {
		t.Fatal("Without did not clear intent")
	}
	for i := MoveForward; i < intentCount; i++ {
		got, err := ParseIntent(i.String())
		if err != nil || got != i {
			t.Fatalf("ParseIntent(%q) = %v, %v", i.String(), got, err)
		}
	}
}

func TestInputFrameBindings(t *testing.T) {
	in := NewInput(16, nil)
	for _, e := range []InputEvent{KeyPressed(KEY_W), KeyPressed(KEY_D), KeyPressed(KEY_Q)} {
		if err := in.Push(e); err != nil {
			t.Fatal(err)
		}
	}
	f := in.Frame()
	want := NewIntents(MoveForward, StrafeRight, MoveAna)
	if f.Intents != want {
		t.Fatalf("intents = %08b want %08b", f.Intents, want)
	}

	// held keys persist across frames until released
	_ = in.Push(KeyReleased(KEY_D))
	f = in.Frame()
	if f.Intents != NewIntents(MoveForward, MoveAna) {
		t.Fatalf("after release intents = %08b", f.Intents)
	}
}

func TestInputDragAndModifiers(t *testing.T) {
	in := NewInput(16, nil)
	_ = in.Push(MouseMoved(5, 5)) // not dragging yet
	_ = in.Push(ButtonPressed(BUTTON_LEFT))
	_ = in.Push(MouseMoved(3, -2))
	_ = in.Push(MouseMoved(1, 1))
	_ = in.Push(KeyPressed(KEY_SHIFT))
	f := in.Frame()
	if f.Rotation.Horizontal != 4 || f.Rotation.Vertical != -1 {
		t.Fatalf("rotation = %+v", f.Rotation)
	}
	if f.Rotation.Planes != PlanesHyper {
		t.Fatalf("planes = %v", f.Rotation.Planes)
	}
	h, v := f.Rotation.Planes.Planes()
	if h != math.PlaneXW || v != math.PlaneYW {
		t.Fatalf("hyper planes = %v, %v", h, v)
	}

	// deltas do not carry over into the next frame
	f = in.Frame()
	if f.Rotation.Horizontal != 0 || f.Rotation.Vertical != 0 {
		t.Fatalf("stale rotation = %+v", f.Rotation)
	}
}

func TestInputArrowKeysResetAndQuit(t *testing.T) {
	in := NewInput(8, nil)
	in.ArrowStep = 0.5
	_ = in.Push(KeyPressed(KEY_RIGHT))
	_ = in.Push(KeyPressed(KEY_UP))
	_ = in.Push(KeyPressed(KEY_R))
	f := in.Frame()
	if f.Rotation.Horizontal != 0.5 || f.Rotation.Vertical != -0.5 {
		t.Fatalf("arrow rotation = %+v", f.Rotation)
	}
	if !f.Reset {
		t.Fatal("reset key not reported")
	}
	if f = in.Frame(); f.Reset {
		t.Fatal("reset is edge triggered, got it twice")
	}
	if in.QuitRequested() {
		t.Fatal("quit without request")
	}
	_ = in.Push(KeyPressed(KEY_ESCAPE))
	in.Frame()
	if !in.QuitRequested() {
		t.Fatal("escape did not request quit")
	}
}

func TestInputQueueFull(t *testing.T) {
	in := NewInput(1, nil)
	if err := in.Push(KeyPressed(KEY_W)); err != nil {
		t.Fatal(err)
	}
	if err := in.Push(KeyPressed(KEY_S)); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
}
