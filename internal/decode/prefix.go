package decode

import "math/bits"

// codeLengthOrder is the order in which code lengths for the code length
// code are read from a complex descriptor.
var codeLengthOrder = [18]int{1, 2, 3, 4, 0, 5, 17, 6, 16, 7, 8, 9, 10, 11, 12, 13, 14, 15}

// codeLengthCode is the fixed code that encodes the code length code
// lengths themselves: lengths {2, 4, 3, 2, 2, 4} for symbols 0..5.
var codeLengthCode = prefixCode{
	count:  [maxBits + 1]uint16{0, 0, 3, 1, 2},
	symbol: [maxSymbols]uint16{0, 3, 4, 2, 1, 5},
}

// decode reads one symbol from the stream using table p.  Codewords are
// read one bit at a time: a canonical code lets the decoder compare the
// accumulated bits against the first codeword of each length.  The
// zero-length single-symbol code consumes no bits.
func (s *state) decode(p *prefixCode) (int, error) {
	length, first, index, code := 0, 0, 0, 0
	for {
		count := int(p.count[length])
		if code < first+count {
			return int(p.symbol[index+code-first]), nil
		}
		index += count
		first = (first + count) << 1
		length++
		if length > maxBits {
			return 0, invalidf("malformed prefix table")
		}
		b, err := s.bits(1)
		if err != nil {
			return 0, err
		}
		code = code<<1 | int(b)
	}
}

// construct builds the decoding table for the complete prefix code given
// by lengths, where lengths[sym] is the codeword length of sym and zero
// means the symbol is not coded.  Completeness must have been verified by
// the caller.
func construct(p *prefixCode, lengths []byte) {
	for i := range p.count {
		p.count[i] = 0
	}
	for _, l := range lengths {
		if l != 0 {
			p.count[l]++
		}
	}

	var offs [maxBits + 1]int
	for length := 1; length < maxBits; length++ {
		offs[length+1] = offs[length] + int(p.count[length])
	}

	for sym, l := range lengths {
		if l != 0 {
			p.symbol[offs[l]] = uint16(sym)
			offs[l]++
		}
	}
}

func order(list *[4]uint16, i, j int) {
	if list[i] > list[j] {
		list[i], list[j] = list[j], list[i]
	}
}

// simpleCode builds the table for a simple prefix code.  kind is 1 for a
// single zero-length symbol; 2 for two symbols of length 1; 3 for
// lengths 1,2,2; 4 for lengths 2,2,2,2; and 5 for lengths 1,2,3,3.
// Symbols sharing a length are sorted to force the code canonical.
func simpleCode(p *prefixCode, syms [4]uint16, kind int) {
	*p = prefixCode{}
	n := kind
	if n > 4 {
		n = 4
	}
	copy(p.symbol[:n], syms[:n])

	sorted := (*[4]uint16)(p.symbol[:4])
	switch kind {
	case 1:
		p.count[0] = 1
	case 2:
		p.count[1] = 2
		order(sorted, 0, 1)
	case 3:
		p.count[1] = 1
		p.count[2] = 2
		order(sorted, 1, 2)
	case 4:
		p.count[2] = 4
		order(sorted, 0, 1)
		order(sorted, 2, 3)
		order(sorted, 0, 2)
		order(sorted, 1, 3)
		order(sorted, 1, 2)
	case 5:
		p.count[1] = 1
		p.count[2] = 1
		p.count[3] = 2
		order(sorted, 2, 3)
	}
}

// prefix reads a prefix-code descriptor for an alphabet of num symbols
// and builds its decoding table in p.
func (s *state) prefix(p *prefixCode, num int) error {
	hskip, err := s.bits(2)
	if err != nil {
		return err
	}
	if hskip == 1 {
		return s.simplePrefix(p, num)
	}
	return s.complexPrefix(p, num, int(hskip))
}

// simplePrefix reads a simple descriptor: 1..4 explicit symbols, each in
// ceil(log2(num)) bits, with one extra bit distinguishing the two
// four-symbol length patterns.
func (s *state) simplePrefix(p *prefixCode, num int) error {
	abits := uint(bits.Len(uint(num - 1)))

	n, err := s.bits(2)
	if err != nil {
		return err
	}
	nsym := int(n) + 1

	var syms [4]uint16
	for i := 0; i < nsym; i++ {
		v, err := s.bits(abits)
		if err != nil {
			return err
		}
		if int(v) >= num {
			return invalidf("symbol %d out of range for alphabet of %d", v, num)
		}
		syms[i] = uint16(v)
	}

	kind := nsym
	if nsym == 4 {
		b, err := s.bits(1)
		if err != nil {
			return err
		}
		kind += int(b)
	}
	simpleCode(p, syms, kind)
	return nil
}

// complexPrefix reads a length-encoded descriptor.  The code length code
// lengths come first, in codeLengthOrder with the first hskip forced to
// zero, tracked against a 5-bit Kraft budget.  The alphabet code lengths
// follow, with symbol 16 repeating the last non-zero length and symbol 17
// inserting runs of zeros, tracked against the 15-bit budget which must
// come out exactly even.
func (s *state) complexPrefix(p *prefixCode, num, hskip int) error {
	lens := make([]byte, max(18, num))

	// code length code
	left := 1 << 5
	nsym := 0
	for nsym < hskip {
		lens[codeLengthOrder[nsym]] = 0
		nsym++
	}
	for nsym < 18 {
		v, err := s.decode(&codeLengthCode)
		if err != nil {
			return err
		}
		lens[codeLengthOrder[nsym]] = byte(v)
		nsym++
		if v != 0 {
			left -= (1 << 5) >> v
			if left <= 0 {
				break
			}
		}
	}
	if left < 0 {
		return invalidf("oversubscribed code length code")
	}
	for nsym < 18 {
		lens[codeLengthOrder[nsym]] = 0
		nsym++
	}

	var code prefixCode
	if left > 0 {
		// an incomplete code length code is accepted only in the
		// degenerate case of a single coded symbol, which is then read
		// with zero bits
		nz, sym := 0, 0
		for i, l := range lens[:18] {
			if l != 0 {
				nz++
				sym = i
			}
		}
		if nz != 1 {
			return invalidf("incomplete code length code")
		}
		code.count[0] = 1
		code.symbol[0] = uint16(sym)
	} else {
		construct(&code, lens[:18])
	}

	// alphabet code lengths
	left = 1 << maxBits
	last := 8
	rep, zeros := 0, 0
	n := 0
	for left > 0 {
		v, err := s.decode(&code)
		if err != nil {
			return err
		}
		switch {
		case v < 16:
			// literal length; zero means not coded
			if n == num {
				return invalidf("too many symbols")
			}
			lens[n] = byte(v)
			n++
			if v != 0 {
				left -= (1 << maxBits) >> v
				last = v
			}
			rep, zeros = 0, 0
		case v == 16:
			// repeat the last non-zero length (8 if none yet),
			// extending the previous repeat run if there was one
			k := rep
			if rep != 0 {
				rep = (rep - 2) << 2
			}
			e, err := s.bits(2)
			if err != nil {
				return err
			}
			rep += 3 + int(e)
			k = rep - k
			if n+k > num {
				return invalidf("too many symbols")
			}
			left -= k * ((1 << maxBits) >> last)
			if left < 0 {
				break
			}
			for ; k > 0; k-- {
				lens[n] = byte(last)
				n++
			}
			zeros = 0
		default:
			// a run of zeros, extending the previous zero run if
			// there was one
			k := zeros
			if zeros != 0 {
				zeros = (zeros - 2) << 3
			}
			e, err := s.bits(3)
			if err != nil {
				return err
			}
			zeros += 3 + int(e)
			k = zeros - k
			if n+k > num {
				return invalidf("too many symbols")
			}
			for ; k > 0; k-- {
				lens[n] = 0
				n++
			}
			rep = 0
		}
	}
	if left < 0 {
		return invalidf("oversubscribed prefix code")
	}
	construct(p, lens[:n])
	return nil
}
