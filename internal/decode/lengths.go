package decode

// An insert-and-copy symbol in 0..703 jointly encodes an insert-length
// range and a copy-length range.  The upper bits select one of eleven
// cells, mapped by insertMap/copyMap onto the 24-entry base tables;
// symbols below 128 additionally imply that the copy reuses the most
// recent distance without consulting the distance stream.

var insertMap = [11]int{0, 0, 0, 0, 8, 8, 0, 16, 8, 16, 16}
var copyMap = [11]int{0, 8, 0, 8, 0, 8, 16, 0, 16, 8, 16}

var insertBase = [24]int{
	0, 1, 2, 3, 4, 5, 6, 8, 10, 14, 18, 26, 34, 50, 66, 98, 130, 194, 322,
	578, 1090, 2114, 6210, 22594,
}

var insertExtra = [24]uint{
	0, 0, 0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 7, 8, 9, 10, 12, 14,
	24,
}

var copyBase = [24]int{
	2, 3, 4, 5, 6, 7, 8, 9, 10, 12, 14, 18, 22, 30, 38, 54, 70, 102, 134,
	198, 326, 582, 1094, 2118,
}

var copyExtra = [24]uint{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 7, 8, 9, 10,
	24,
}

func (s *state) insertLength(sym int) (int, error) {
	i := insertMap[sym>>6] + (sym>>3)&7
	e, err := s.bits(insertExtra[i])
	if err != nil {
		return 0, err
	}
	return insertBase[i] + int(e), nil
}

func (s *state) copyLength(sym int) (int, error) {
	i := copyMap[sym>>6] + sym&7
	e, err := s.bits(copyExtra[i])
	if err != nil {
		return 0, err
	}
	return copyBase[i] + int(e), nil
}
