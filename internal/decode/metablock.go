package decode

import "slices"

// metablock decodes one meta-block, reporting whether it was marked as
// the last of the stream.
func (s *state) metablock() (bool, error) {
	b, err := s.bits(1) // ISLAST
	if err != nil {
		return false, err
	}
	last := b != 0
	if last {
		b, err = s.bits(1) // ISLASTEMPTY
		if err != nil {
			return false, err
		}
		if b != 0 {
			return true, nil
		}
	}

	n, err := s.bits(2) // MNIBBLES - 4
	if err != nil {
		return false, err
	}
	if n == 3 {
		return last, s.metadata()
	}

	mlen, err := s.metablockLength(uint(n))
	if err != nil {
		return false, err
	}
	s.dst = slices.Grow(s.dst, mlen)

	if !last {
		b, err = s.bits(1) // ISUNCOMPRESSED
		if err != nil {
			return false, err
		}
		if b != 0 {
			return false, s.uncompressed(mlen)
		}
	}

	if err := s.metablockHeader(); err != nil {
		return false, err
	}
	if err := s.commands(mlen); err != nil {
		return false, err
	}
	return last, nil
}

// metadata handles a meta-block that carries no output: a reserved bit, a
// skip length of 0..3 bytes stored minimally, byte alignment, and the
// skipped bytes themselves.
func (s *state) metadata() error {
	b, err := s.bits(1)
	if err != nil {
		return err
	}
	if b != 0 {
		return invalidf("reserved bit set in metadata block")
	}
	nbytes, err := s.bits(2) // MSKIPBYTES
	if err != nil {
		return err
	}
	skip := 0
	if nbytes > 0 {
		v, err := s.bits(uint(nbytes) * 8)
		if err != nil {
			return err
		}
		if nbytes > 1 && v>>((nbytes-1)*8) == 0 {
			return invalidf("more metadata skip bytes than needed")
		}
		skip = int(v) + 1
	}
	if err := s.align(); err != nil {
		return err
	}
	if len(s.src)-s.pos < skip {
		return ErrPrematureEOF
	}
	s.pos += skip
	return nil
}

// metablockLength reads MLEN, stored minimally as MLEN-1 in 4+n nibbles.
func (s *state) metablockLength(n uint) (int, error) {
	v, err := s.bits(16)
	if err != nil {
		return 0, err
	}
	mlen := 1 + int(v)
	if n > 0 {
		ext, err := s.bits(n * 4)
		if err != nil {
			return 0, err
		}
		if ext>>((n-1)*4) == 0 {
			return 0, invalidf("more meta-block length nibbles than needed")
		}
		mlen += int(ext) << 16
	}
	return mlen, nil
}

// uncompressed copies mlen raw bytes from the byte-aligned input.
func (s *state) uncompressed(mlen int) error {
	if err := s.align(); err != nil {
		return err
	}
	if len(s.src)-s.pos < mlen {
		return ErrPrematureEOF
	}
	raw := s.src[s.pos : s.pos+mlen]
	s.pos += mlen
	if s.compare {
		for _, b := range raw {
			if err := s.emit(b); err != nil {
				return err
			}
		}
		return nil
	}
	s.dst = append(s.dst, raw...)
	s.got += mlen
	return nil
}

// metablockHeader reads everything between the meta-block length and the
// first command: the three block-switching descriptors, the distance
// parameters, the context modes and maps, and the three code banks.
func (s *state) metablockHeader() error {
	if err := s.initCategory(&s.lit); err != nil {
		return err
	}
	if err := s.initCategory(&s.iac); err != nil {
		return err
	}
	if err := s.initCategory(&s.dist); err != nil {
		return err
	}

	v, err := s.bits(2) // NPOSTFIX
	if err != nil {
		return err
	}
	s.postfix = uint(v)
	v, err = s.bits(4) // NDIRECT >> NPOSTFIX
	if err != nil {
		return err
	}
	s.direct = int(v) << s.postfix
	dists := 16 + s.direct + 48<<s.postfix

	for i := 0; i < s.lit.num; i++ {
		v, err = s.bits(2) // CMODE
		if err != nil {
			return err
		}
		s.mode[i] = byte(v)
	}

	s.litCodes, err = s.blockTypes() // NTREESL
	if err != nil {
		return err
	}
	if s.litCodes > 1 {
		if err := s.contextMap(s.litMap[:s.lit.num<<6], s.litCodes); err != nil {
			return err
		}
	}
	s.distCodes, err = s.blockTypes() // NTREESD
	if err != nil {
		return err
	}
	if s.distCodes > 1 {
		if err := s.contextMap(s.distMap[:s.dist.num<<2], s.distCodes); err != nil {
			return err
		}
	}

	s.litCode = make([]prefixCode, s.litCodes)
	for i := range s.litCode {
		if err := s.prefix(&s.litCode[i], 256); err != nil {
			return err
		}
	}
	s.iacCode = make([]prefixCode, s.iac.num)
	for i := range s.iacCode {
		if err := s.prefix(&s.iacCode[i], maxSymbols); err != nil {
			return err
		}
	}
	s.distCode = make([]prefixCode, s.distCodes)
	for i := range s.distCode {
		if err := s.prefix(&s.distCode[i], dists); err != nil {
			return err
		}
	}
	return nil
}

// commands runs the insert-and-copy loop until exactly mlen bytes have
// been produced.
func (s *state) commands(mlen int) error {
	for mlen > 0 {
		if s.iac.left == 0 {
			if err := s.switchType(&s.iac); err != nil {
				return err
			}
		}
		s.iac.left--

		iacSym, err := s.decode(&s.iacCode[s.iac.typ])
		if err != nil {
			return err
		}
		insert, err := s.insertLength(iacSym)
		if err != nil {
			return err
		}
		copyLen, err := s.copyLength(iacSym)
		if err != nil {
			return err
		}

		if insert > mlen {
			return invalidf("mlen exceeded by insert length")
		}
		mlen -= insert
		for ; insert > 0; insert-- {
			if err := s.literal(); err != nil {
				return err
			}
		}

		// reaching mlen mid-command ends the meta-block; the pending
		// copy length is ignored
		if mlen == 0 {
			break
		}

		max := min(s.got, s.wsize)
		var dist int
		if iacSym < 128 {
			// implicit distance: reuse the most recent ring slot
			// without touching the distance stream or the ring
			dist = s.ring[s.ringPtr]
		} else {
			if s.dist.left == 0 {
				if err := s.switchType(&s.dist); err != nil {
					return err
				}
			}
			s.dist.left--

			code := 0
			if s.distCodes > 1 {
				ctx := min(copyLen-2, 3)
				code = int(s.distMap[s.dist.typ<<2+ctx])
			}
			sym, err := s.decode(&s.distCode[code])
			if err != nil {
				return err
			}
			dist, err = s.distance(sym, max)
			if err != nil {
				return err
			}
		}

		if dist > max {
			word, err := dictionaryRef(dist, max, copyLen)
			if err != nil {
				return err
			}
			if len(word) > mlen {
				return invalidf("mlen exceeded by dictionary word")
			}
			mlen -= len(word)
			for _, b := range word {
				if err := s.emit(b); err != nil {
					return err
				}
			}
		} else {
			if copyLen > mlen {
				return invalidf("mlen exceeded by copy length")
			}
			mlen -= copyLen
			// source and destination may overlap; the byte-by-byte
			// copy is what makes run-length extension work
			for ; copyLen > 0; copyLen-- {
				if err := s.emit(s.dst[s.got-dist]); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// literal decodes one literal, honoring the literal block-switching
// discipline and, when more than one literal code is in play, the
// context map keyed by the last two output bytes.
func (s *state) literal() error {
	if s.lit.left == 0 {
		if err := s.switchType(&s.lit); err != nil {
			return err
		}
	}
	s.lit.left--

	code := 0
	if s.litCodes > 1 {
		var p1, p2 byte
		if s.got > 0 {
			p1 = s.dst[s.got-1]
		}
		if s.got > 1 {
			p2 = s.dst[s.got-2]
		}
		ctx := contextID(p1, p2, s.mode[s.lit.typ])
		code = int(s.litMap[s.lit.typ<<6+ctx])
	}
	lit, err := s.decode(&s.litCode[code])
	if err != nil {
		return err
	}
	return s.emit(byte(lit))
}
