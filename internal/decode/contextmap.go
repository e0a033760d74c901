package decode

// contextMap reads a context map of length entries into m, each entry in
// 0..trees-1.  Runs of zeros may be run-length coded, and the whole map
// may optionally be stored move-to-front transformed.
func (s *state) contextMap(m []byte, trees int) error {
	b, err := s.bits(1)
	if err != nil {
		return err
	}
	rlemax := 0
	if b != 0 {
		v, err := s.bits(4)
		if err != nil {
			return err
		}
		rlemax = 1 + int(v)
	}
	if 1<<rlemax > len(m) {
		return invalidf("rlemax of %d unnecessarily large for map of %d", rlemax, len(m))
	}

	var code prefixCode
	if err := s.prefix(&code, rlemax+trees); err != nil {
		return err
	}

	n := 0
	for n < len(m) {
		sym, err := s.decode(&code)
		if err != nil {
			return err
		}
		switch {
		case sym == 0:
			m[n] = 0
			n++
		case sym <= rlemax:
			e, err := s.bits(uint(sym))
			if err != nil {
				return err
			}
			zeros := 1<<sym + int(e)
			if n+zeros > len(m) {
				return invalidf("context map run length too long")
			}
			for ; zeros > 0; zeros-- {
				m[n] = 0
				n++
			}
		default:
			m[n] = byte(sym - rlemax)
			n++
		}
	}

	b, err = s.bits(1)
	if err != nil {
		return err
	}
	if b != 0 {
		inverseMoveToFront(m, trees)
	}
	return nil
}

// inverseMoveToFront undoes the move-to-front coding of a context map in
// place, over the value alphabet 0..trees-1.
func inverseMoveToFront(m []byte, trees int) {
	table := make([]byte, trees)
	for i := range table {
		table[i] = byte(i)
	}
	for i, v := range m {
		m[i] = table[v]
		for ; v > 0; v-- {
			table[v] = table[v-1]
		}
		table[0] = m[i]
	}
}
