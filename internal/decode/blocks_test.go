package decode

import (
	"math"
	"testing"
)

func TestBlockTypes(t *testing.T) {
	cases := []struct {
		name string
		fill func(w *bw)
		want int
	}{
		{"one", func(w *bw) { w.bits(0, 1) }, 1},
		{"two", func(w *bw) { w.bits(1, 1); w.bits(0, 3) }, 2},
		{"nine", func(w *bw) { w.bits(1, 1); w.bits(3, 3); w.bits(0, 3) }, 9},
		{"max", func(w *bw) { w.bits(1, 1); w.bits(7, 3); w.bits(127, 7) }, 256},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var w bw
			tc.fill(&w)
			s := newState(w.buf)
			n, err := s.blockTypes()
			if err != nil {
				t.Fatal(err)
			}
			if n != tc.want {
				t.Fatalf("got %d; want %d", n, tc.want)
			}
		})
	}
}

func TestBlockLength(t *testing.T) {
	var p prefixCode
	p.count[0] = 1

	// symbol 25 has base 16625 and 24 extra bits
	p.symbol[0] = 25
	var w bw
	w.bits(100, 24)
	s := newState(w.buf)
	n, err := s.blockLength(&p)
	if err != nil {
		t.Fatal(err)
	}
	if n != 16725 {
		t.Fatalf("got %d; want 16725", n)
	}

	// symbol 0 has base 1 and 2 extra bits
	p.symbol[0] = 0
	w = bw{}
	w.bits(3, 2)
	s = newState(w.buf)
	if n, _ = s.blockLength(&p); n != 4 {
		t.Fatalf("got %d; want 4", n)
	}
}

func TestSwitchType(t *testing.T) {
	// a single-symbol type-change code makes the switch deterministic;
	// block lengths come from the two extra bits of symbol 0
	newCat := func(typeSym uint16) *blockCategory {
		b := &blockCategory{num: 3, typ: 0, prev: 1}
		b.types.count[0] = 1
		b.types.symbol[0] = typeSym
		b.count.count[0] = 1
		b.count.symbol[0] = 0
		return b
	}

	// symbol 4 names type 2 directly
	b := newCat(4)
	var w bw
	w.bits(0, 2)
	s := newState(w.buf)
	if err := s.switchType(b); err != nil {
		t.Fatal(err)
	}
	if b.typ != 2 || b.prev != 0 || b.left != 1 {
		t.Fatalf("got typ=%d prev=%d left=%d; want 2, 0, 1", b.typ, b.prev, b.left)
	}

	// symbol 1 steps to the next type modulo the count
	b = newCat(1)
	b.typ, b.prev = 2, 0
	w = bw{}
	w.bits(0, 2)
	s = newState(w.buf)
	if err := s.switchType(b); err != nil {
		t.Fatal(err)
	}
	if b.typ != 0 || b.prev != 2 {
		t.Fatalf("got typ=%d prev=%d; want 0, 2", b.typ, b.prev)
	}

	// symbol 0 restores the replaced type
	b = newCat(0)
	b.typ, b.prev = 2, 1
	w = bw{}
	w.bits(0, 2)
	s = newState(w.buf)
	if err := s.switchType(b); err != nil {
		t.Fatal(err)
	}
	if b.typ != 1 || b.prev != 2 {
		t.Fatalf("got typ=%d prev=%d; want 1, 2", b.typ, b.prev)
	}
}

func TestInitCategorySingleType(t *testing.T) {
	var w bw
	w.bits(0, 1)
	s := newState(w.buf)
	var b blockCategory
	if err := s.initCategory(&b); err != nil {
		t.Fatal(err)
	}
	if b.num != 1 || b.left != math.MaxInt {
		t.Fatalf("got num=%d left=%d; want 1 and an unbounded counter", b.num, b.left)
	}
}
