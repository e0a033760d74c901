// Package decode implements the brotli bit-stream decoder: the meta-block
// state machine, the prefix-code subsystem, the context-modeled literal
// stream, the insert-and-copy command loop, the distance ring buffer, and
// the static-dictionary transform engine.  The decoder is a correctness
// reference: it reads one complete compressed buffer and produces one
// complete output buffer, with no streaming and no internal concurrency.
package decode

import "fmt"

const (
	maxBits    = 15  // longest prefix codeword
	maxSymbols = 704 // largest alphabet (insert-and-copy)
)

// prefixCode is a canonical prefix-code decoding table.  count[n] is the
// number of codewords of length n; symbol holds the coded symbols sorted
// by length, and by symbol value within each length.  count[0] == 1
// marks the degenerate single-symbol code of zero bits.  Every table
// built from the stream satisfies the Kraft equality
//
//	sum(count[n] << (maxBits-n), n=0..maxBits) == 1 << maxBits
type prefixCode struct {
	count  [maxBits + 1]uint16
	symbol [maxSymbols]uint16
}

// blockCategory is the block-switching state for one symbol category
// (literal, insert-and-copy, or distance).
type blockCategory struct {
	num   int        // number of block types, 1..256
	typ   int        // block type in use
	prev  int        // block type most recently replaced
	left  int        // symbols left before a mandatory type change
	types prefixCode // block type change code
	count prefixCode // block length code
}

// state is the decoder state.  One state is created at the start of a
// stream and owned exclusively by the decode call; everything the decoder
// allocates hangs off it.
type state struct {
	// input cursor
	src  []byte
	pos  int    // index of the next unread byte
	hold uint32 // 0..7 residual bits
	left uint   // number of residual bits

	// sliding window
	wbits uint
	wsize int // (1 << wbits) - 16

	// output
	dst     []byte
	got     int
	cmp     []byte // expected output in compare mode
	compare bool

	// block switching, one category each
	lit  blockCategory
	iac  blockCategory
	dist blockCategory

	// distance decoding
	ring    [4]int // last four distances, stream lifetime
	ringPtr int    // most recent slot
	postfix uint   // 0..3, per meta-block
	direct  int    // 0..15<<postfix, per meta-block

	// literal and distance context
	mode    [256]byte      // context mode per literal block type
	litMap  [256 * 64]byte // literal context map
	distMap [256 * 4]byte  // distance context map

	// code banks, rebuilt per meta-block
	litCodes  int
	distCodes int
	litCode   []prefixCode
	iacCode   []prefixCode
	distCode  []prefixCode
}

func newState(src []byte) *state {
	return &state{
		src:     src,
		ring:    [4]int{16, 15, 11, 4},
		ringPtr: 3,
	}
}

// windowBits reads the WBITS value, 10..24.  The single-bit form encodes
// 16; the remaining values use one of two three-bit extensions, with one
// code point (window bits 9) left unused by the format.
func (s *state) windowBits() error {
	b, err := s.bits(1)
	if err != nil {
		return err
	}
	if b == 0 {
		s.wbits = 16
	} else {
		n, err := s.bits(3)
		if err != nil {
			return err
		}
		switch {
		case n != 0:
			s.wbits = 17 + uint(n)
		default:
			m, err := s.bits(3)
			if err != nil {
				return err
			}
			switch {
			case m == 0:
				s.wbits = 17
			case m == 1:
				return invalidf("window bits 9 is an unused code point")
			default:
				s.wbits = 8 + uint(m)
			}
		}
	}
	s.wsize = 1<<s.wbits - 16
	return nil
}

func (s *state) run() error {
	if err := s.windowBits(); err != nil {
		return err
	}
	for {
		last, err := s.metablock()
		if err != nil {
			return err
		}
		if last {
			break
		}
	}
	if s.compare && s.got != len(s.cmp) {
		return fmt.Errorf("%w: produced %d bytes, expected %d", ErrMismatch, s.got, len(s.cmp))
	}
	return nil
}

// Decompress decodes the complete brotli stream in src.  It returns the
// decompressed bytes and the number of input bytes consumed; input past
// the end of the stream is left untouched.
func Decompress(src []byte) ([]byte, int, error) {
	s := newState(src)
	if err := s.run(); err != nil {
		return nil, s.pos, err
	}
	return s.dst, s.pos, nil
}

// Compare decodes the stream in src without returning the output,
// checking each produced byte against expected.  The first divergence,
// including a length difference, is reported as ErrMismatch.
func Compare(src, expected []byte) (int, error) {
	s := newState(src)
	s.cmp = expected
	s.compare = true
	err := s.run()
	return s.pos, err
}

// emit appends one byte to the output, or checks it against the expected
// buffer in compare mode.
func (s *state) emit(b byte) error {
	if s.compare {
		if s.got >= len(s.cmp) || s.cmp[s.got] != b {
			return fmt.Errorf("%w at offset %d", ErrMismatch, s.got)
		}
	}
	s.dst = append(s.dst, b)
	s.got++
	return nil
}
