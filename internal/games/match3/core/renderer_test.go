package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMultiRendererFansOut(t *testing.T) {
	first, second := &Recorder{}, &Recorder{}
	b, err := NewBoard(Options{Width: 4, Height: 4, PaletteSize: 5, Seed: 3}, MultiRenderer{first, second})
	if err != nil {
		t.Fatalf("NewBoard() failed: %v", err)
	}
	if err := b.Populate(); err != nil {
		t.Fatalf("Populate() failed: %v", err)
	}

	if got := first.Count(EventSpawned); got != 16 {
		t.Errorf("first renderer saw %d spawns, expected 16", got)
	}
	if diff := cmp.Diff(first.Events, second.Events); diff != "" {
		t.Errorf("renderers saw different events (-first +second):\n%s", diff)
	}
}

func TestMultiRendererOrder(t *testing.T) {
	var order []string
	tag := func(name string) Renderer {
		return orderRenderer{name: name, out: &order}
	}

	m := MultiRenderer{tag("a"), tag("b")}
	p := Piece{ID: 1, Type: 0, Pos: C(0, 0)}
	m.Spawned(p, C(0, 2), C(0, 0))
	m.Moved(p, C(0, 0), C(1, 0))
	m.Removed(p)

	want := []string{"a spawned", "b spawned", "a moved", "b moved", "a removed", "b removed"}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Errorf("notification order mismatch (-want +got):\n%s", diff)
	}
}

type orderRenderer struct {
	name string
	out  *[]string
}

func (r orderRenderer) Spawned(Piece, Coord, Coord) { *r.out = append(*r.out, r.name+" spawned") }
func (r orderRenderer) Moved(Piece, Coord, Coord)   { *r.out = append(*r.out, r.name+" moved") }
func (r orderRenderer) Removed(Piece)               { *r.out = append(*r.out, r.name+" removed") }
