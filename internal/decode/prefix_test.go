package decode

import (
	"errors"
	"testing"
)

func TestConstruct(t *testing.T) {
	var p prefixCode
	construct(&p, []byte{2, 1, 3, 3})

	want := [maxBits + 1]uint16{0, 1, 1, 2}
	if p.count != want {
		t.Fatalf("count = %v; want %v", p.count[:4], want[:4])
	}
	for i, sym := range []uint16{1, 0, 2, 3} {
		if p.symbol[i] != sym {
			t.Fatalf("symbol[%d] = %d; want %d", i, p.symbol[i], sym)
		}
	}

	// decode each codeword of the canonical code: 0, 10, 110, 111
	var w bw
	w.code(0, 1)
	w.code(2, 2)
	w.code(6, 3)
	w.code(7, 3)
	s := newState(w.buf)
	for _, want := range []int{1, 0, 2, 3} {
		sym, err := s.decode(&p)
		if err != nil {
			t.Fatal(err)
		}
		if sym != want {
			t.Fatalf("decoded %d; want %d", sym, want)
		}
	}
}

func TestDecodeZeroLength(t *testing.T) {
	var p prefixCode
	p.count[0] = 1
	p.symbol[0] = 42

	s := newState(nil) // no input needed
	sym, err := s.decode(&p)
	if err != nil || sym != 42 {
		t.Fatalf("got %d, %v; want 42", sym, err)
	}
}

func TestSimplePrefix(t *testing.T) {
	// one symbol, zero bits
	var w bw
	w.bits(1, 2)  // hskip: simple
	w.bits(0, 2)  // nsym - 1
	w.bits(25, 5) // the symbol
	s := newState(w.buf)
	var p prefixCode
	if err := s.prefix(&p, 26); err != nil {
		t.Fatal(err)
	}
	if p.count[0] != 1 || p.symbol[0] != 25 {
		t.Fatalf("got count0=%d symbol0=%d; want single symbol 25", p.count[0], p.symbol[0])
	}
}

func TestSimplePrefixSymbolRange(t *testing.T) {
	var w bw
	w.bits(1, 2)
	w.bits(0, 2)
	w.bits(26, 5) // alphabet has only 0..25
	s := newState(w.buf)
	var p prefixCode
	if err := s.prefix(&p, 26); !errors.Is(err, ErrInvalid) {
		t.Fatalf("got %v; want ErrInvalid", err)
	}
}

func TestSimplePrefixFourSymbols(t *testing.T) {
	// the second four-symbol pattern has lengths 1,2,3,3; the two
	// length-3 symbols arrive unsorted and must be canonicalized
	var w bw
	w.bits(1, 2)
	w.bits(3, 2) // four symbols
	for _, sym := range []uint32{3, 1, 2, 0} {
		w.bits(sym, 3)
	}
	w.bits(1, 1) // select the asymmetric pattern

	// codewords: 0 -> 3, 10 -> 1, 110 -> 0, 111 -> 2
	w.code(0, 1)
	w.code(2, 2)
	w.code(6, 3)
	w.code(7, 3)

	s := newState(w.buf)
	var p prefixCode
	if err := s.prefix(&p, 8); err != nil {
		t.Fatal(err)
	}
	for _, want := range []int{3, 1, 0, 2} {
		sym, err := s.decode(&p)
		if err != nil {
			t.Fatal(err)
		}
		if sym != want {
			t.Fatalf("decoded %d; want %d", sym, want)
		}
	}
}

// writeCLLength writes one code length code length for a complex
// descriptor using the fixed instruction code.  The fixed codewords are
// 00, 01, 10 for lengths 0, 3, 4; 110 for 2; 1110, 1111 for 1, 5.
func writeCLLength(w *bw, length int) {
	switch length {
	case 0:
		w.code(0, 2)
	case 3:
		w.code(1, 2)
	case 4:
		w.code(2, 2)
	case 2:
		w.code(6, 3)
	case 1:
		w.code(14, 4)
	default: // 5
		w.code(15, 4)
	}
}

func TestComplexPrefix(t *testing.T) {
	var w bw
	w.bits(0, 2) // hskip 0
	// code length code: symbols 1 and 2 get length 1 (complete)
	writeCLLength(&w, 1)
	writeCLLength(&w, 1)
	// alphabet lengths 1, 2, 2 via the code just built: 1 -> 0, 2 -> 1
	w.code(0, 1)
	w.code(1, 1)
	w.code(1, 1)
	// decode 0, 1, 2 as codewords 0, 10, 11
	w.code(0, 1)
	w.code(2, 2)
	w.code(3, 2)

	s := newState(w.buf)
	var p prefixCode
	if err := s.prefix(&p, 26); err != nil {
		t.Fatal(err)
	}
	for _, want := range []int{0, 1, 2} {
		sym, err := s.decode(&p)
		if err != nil {
			t.Fatal(err)
		}
		if sym != want {
			t.Fatalf("decoded %d; want %d", sym, want)
		}
	}
}

func TestComplexPrefixRepeat(t *testing.T) {
	var w bw
	w.bits(0, 2)
	// code length code: length 1 for symbols 2 and 16, codewords 0 and 1
	writeCLLength(&w, 0) // symbol 1
	writeCLLength(&w, 1) // symbol 2
	writeCLLength(&w, 0) // symbol 3
	writeCLLength(&w, 0) // symbol 4
	writeCLLength(&w, 0) // symbol 0
	writeCLLength(&w, 0) // symbol 5
	writeCLLength(&w, 0) // symbol 17
	writeCLLength(&w, 0) // symbol 6
	writeCLLength(&w, 1) // symbol 16
	// one length 2, then symbol 16 repeating it three more times
	w.code(0, 1) // length 2
	w.code(1, 1) // repeat
	w.bits(0, 2) // repeat count 3
	// the result codes symbols 0..3 with two bits each
	w.code(0, 2)
	w.code(1, 2)
	w.code(2, 2)
	w.code(3, 2)

	s := newState(w.buf)
	var p prefixCode
	if err := s.prefix(&p, 300); err != nil {
		t.Fatal(err)
	}
	for want := 0; want < 4; want++ {
		sym, err := s.decode(&p)
		if err != nil {
			t.Fatal(err)
		}
		if sym != want {
			t.Fatalf("decoded %d; want %d", sym, want)
		}
	}
}

func TestComplexPrefixZeroRunOverflow(t *testing.T) {
	var w bw
	w.bits(0, 2)
	// code length code: symbol 17 length 1; symbols 0 and 1 length 2
	writeCLLength(&w, 2) // symbol 1
	writeCLLength(&w, 0) // symbol 2
	writeCLLength(&w, 0) // symbol 3
	writeCLLength(&w, 0) // symbol 4
	writeCLLength(&w, 2) // symbol 0
	writeCLLength(&w, 0) // symbol 5
	writeCLLength(&w, 1) // symbol 17
	// a run of 3+7 zeros overruns the four-symbol alphabet
	w.code(0, 1) // symbol 17
	w.bits(7, 3)

	s := newState(w.buf)
	var p prefixCode
	err := s.prefix(&p, 4)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("got %v; want ErrInvalid", err)
	}
}

func TestComplexPrefixOversubscribedLengthCode(t *testing.T) {
	var w bw
	w.bits(0, 2)
	// lengths 1, 3, 2, 2 oversubscribe the five-bit budget
	writeCLLength(&w, 1)
	writeCLLength(&w, 3)
	writeCLLength(&w, 2)
	writeCLLength(&w, 2)

	s := newState(w.buf)
	var p prefixCode
	err := s.prefix(&p, 26)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("got %v; want ErrInvalid", err)
	}
}

func TestComplexPrefixIncompleteLengthCode(t *testing.T) {
	var w bw
	w.bits(0, 2)
	writeCLLength(&w, 2)
	writeCLLength(&w, 2)
	for i := 0; i < 16; i++ {
		writeCLLength(&w, 0)
	}

	s := newState(w.buf)
	var p prefixCode
	err := s.prefix(&p, 26)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("got %v; want ErrInvalid", err)
	}
}

func TestComplexPrefixDegenerateLengthCode(t *testing.T) {
	var w bw
	w.bits(0, 2)
	// only symbol 1 is coded: accepted as a zero-bit code, so the
	// alphabet lengths that follow consume no bits until complete
	writeCLLength(&w, 2) // symbol 1
	for i := 0; i < 17; i++ {
		writeCLLength(&w, 0)
	}
	// two implicit length-1 entries complete the code
	w.code(0, 1)
	w.code(1, 1)

	s := newState(w.buf)
	var p prefixCode
	if err := s.prefix(&p, 26); err != nil {
		t.Fatal(err)
	}
	if sym, _ := s.decode(&p); sym != 0 {
		t.Fatalf("decoded %d; want 0", sym)
	}
	if sym, _ := s.decode(&p); sym != 1 {
		t.Fatalf("decoded %d; want 1", sym)
	}
}

func TestComplexPrefixOversubscribed(t *testing.T) {
	var w bw
	w.bits(0, 2)
	// code length code: symbol 1 length 1; symbols 2 and 3 length 2
	writeCLLength(&w, 1) // symbol 1
	writeCLLength(&w, 2) // symbol 2
	writeCLLength(&w, 2) // symbol 3
	// alphabet lengths 1, 3, 2, 2 oversubscribe the code
	w.code(0, 1)
	w.code(3, 2)
	w.code(2, 2)
	w.code(2, 2)

	s := newState(w.buf)
	var p prefixCode
	err := s.prefix(&p, 26)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("got %v; want ErrInvalid", err)
	}
}
