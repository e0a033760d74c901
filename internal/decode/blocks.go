package decode

import "math"

const blockLengthCodes = 26

var blockLengthBase = [blockLengthCodes]int{
	1, 5, 9, 13, 17, 25, 33, 41, 49, 65, 81, 97, 113, 145, 177, 209, 241,
	305, 369, 497, 753, 1265, 2289, 4337, 8433, 16625,
}

var blockLengthExtra = [blockLengthCodes]uint{
	2, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 6, 6, 7, 8, 9, 10, 11,
	12, 13, 24,
}

// blockTypes reads the number of block types for a category, 1..256.
// The count is a leading bit, then a three-bit width, then that many
// extra bits, none of them bit-reversed.
func (s *state) blockTypes() (int, error) {
	b, err := s.bits(1)
	if err != nil {
		return 0, err
	}
	if b == 0 {
		return 1, nil
	}
	k, err := s.bits(3)
	if err != nil {
		return 0, err
	}
	e, err := s.bits(uint(k))
	if err != nil {
		return 0, err
	}
	return 1 + 1<<k + int(e), nil
}

// blockLength reads a block length using code p.
func (s *state) blockLength(p *prefixCode) (int, error) {
	sym, err := s.decode(p)
	if err != nil {
		return 0, err
	}
	e, err := s.bits(blockLengthExtra[sym])
	if err != nil {
		return 0, err
	}
	return blockLengthBase[sym] + int(e), nil
}

// initCategory reads the block-switching descriptor for one category: the
// number of block types and, if more than one, the type-change and
// block-length codes plus the first block length.  A category with a
// single type never switches, so its counter is pinned effectively
// infinite.
func (s *state) initCategory(b *blockCategory) error {
	num, err := s.blockTypes()
	if err != nil {
		return err
	}
	b.num = num
	b.typ = 0
	b.prev = 1
	if num == 1 {
		b.left = math.MaxInt
		return nil
	}
	if err := s.prefix(&b.types, num+2); err != nil {
		return err
	}
	if err := s.prefix(&b.count, blockLengthCodes); err != nil {
		return err
	}
	b.left, err = s.blockLength(&b.count)
	return err
}

// switchType performs a mandatory block-type change for a category whose
// counter has run out.  Symbol 0 restores the previously replaced type,
// symbol 1 steps to the next type modulo the type count, and any other
// symbol names the new type directly.  The type being replaced becomes
// the new previous type.
func (s *state) switchType(b *blockCategory) error {
	sym, err := s.decode(&b.types)
	if err != nil {
		return err
	}
	var next int
	switch {
	case sym > 1:
		next = sym - 2
	case sym == 1:
		next = (b.typ + 1) % b.num
	default:
		next = b.prev
	}
	b.prev = b.typ
	b.typ = next
	b.left, err = s.blockLength(&b.count)
	return err
}
