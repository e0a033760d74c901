package decode

// Transform operations applied to a dictionary word between its prefix
// and suffix strings.  The omit operations carry a byte count; the
// uppercase operations work on the pseudo-UTF8 rules of the format:
// a one-byte character in 'a'..'z' is XORed with 32, the second byte of
// a two-byte character is XORed with 32, and the third byte of a longer
// character is XORed with 5.
const (
	opIdentity = iota
	opOmitFirst
	opOmitLast
	opUpperFirst
	opUpperAll
)

type transform struct {
	prefix string
	op     int
	n      int // byte count for the omit operations
	suffix string
}

func (t *transform) apply(word []byte) []byte {
	out := make([]byte, 0, len(t.prefix)+len(word)+len(t.suffix))
	out = append(out, t.prefix...)

	switch t.op {
	case opOmitFirst:
		if t.n < len(word) {
			out = append(out, word[t.n:]...)
		}
	case opOmitLast:
		if t.n < len(word) {
			out = append(out, word[:len(word)-t.n]...)
		}
	case opUpperFirst, opUpperAll:
		start := len(out)
		out = append(out, word...)
		for seg := out[start:]; len(seg) > 0; {
			seg = seg[upperChar(seg):]
			if t.op == opUpperFirst {
				break
			}
		}
	default:
		out = append(out, word...)
	}

	return append(out, t.suffix...)
}

// upperChar uppercases the character at the start of b in place and
// returns the number of bytes it spans.
func upperChar(b []byte) int {
	switch {
	case b[0] < 0xc0:
		if b[0] >= 'a' && b[0] <= 'z' {
			b[0] ^= 32
		}
		return 1
	case b[0] < 0xe0:
		if len(b) > 1 {
			b[1] ^= 32
		}
		return min(2, len(b))
	default:
		if len(b) > 2 {
			b[2] ^= 5
		}
		return min(3, len(b))
	}
}

// transforms is the fixed list of 121 word transforms from the brotli
// specification, in transform-number order.
var transforms = [121]transform{
	{"", opIdentity, 0, ""},
	{"", opIdentity, 0, " "},
	{" ", opIdentity, 0, " "},
	{"", opOmitFirst, 1, ""},
	{"", opUpperFirst, 0, " "},
	{"", opIdentity, 0, " the "},
	{" ", opIdentity, 0, ""},
	{"s ", opIdentity, 0, " "},
	{"", opIdentity, 0, " of "},
	{"", opUpperFirst, 0, ""},
	{"", opIdentity, 0, " and "},
	{"", opOmitFirst, 2, ""},
	{"", opOmitLast, 1, ""},
	{", ", opIdentity, 0, " "},
	{"", opIdentity, 0, ", "},
	{" ", opUpperFirst, 0, " "},
	{"", opIdentity, 0, " in "},
	{"", opIdentity, 0, " to "},
	{"e ", opIdentity, 0, " "},
	{"", opIdentity, 0, "\""},
	{"", opIdentity, 0, "."},
	{"", opIdentity, 0, "\">"},
	{"", opIdentity, 0, "\n"},
	{"", opOmitLast, 3, ""},
	{"", opIdentity, 0, "]"},
	{"", opIdentity, 0, " for "},
	{"", opOmitFirst, 3, ""},
	{"", opOmitLast, 2, ""},
	{"", opIdentity, 0, " a "},
	{"", opIdentity, 0, " that "},
	{" ", opUpperFirst, 0, ""},
	{"", opIdentity, 0, ". "},
	{".", opIdentity, 0, ""},
	{" ", opIdentity, 0, ", "},
	{"", opOmitFirst, 4, ""},
	{"", opIdentity, 0, " with "},
	{"", opIdentity, 0, "'"},
	{"", opIdentity, 0, " from "},
	{"", opIdentity, 0, " by "},
	{"", opOmitFirst, 5, ""},
	{"", opOmitFirst, 6, ""},
	{" the ", opIdentity, 0, ""},
	{"", opOmitLast, 4, ""},
	{"", opIdentity, 0, ". The "},
	{"", opUpperAll, 0, ""},
	{"", opIdentity, 0, " on "},
	{"", opIdentity, 0, " as "},
	{"", opIdentity, 0, " is "},
	{"", opOmitLast, 7, ""},
	{"", opOmitLast, 1, "ing "},
	{"", opIdentity, 0, "\n\t"},
	{"", opIdentity, 0, ":"},
	{" ", opIdentity, 0, ". "},
	{"", opIdentity, 0, "ed "},
	{"", opOmitFirst, 9, ""},
	{"", opOmitFirst, 7, ""},
	{"", opOmitLast, 6, ""},
	{"", opIdentity, 0, "("},
	{"", opUpperFirst, 0, ", "},
	{"", opOmitLast, 8, ""},
	{"", opIdentity, 0, " at "},
	{"", opIdentity, 0, "ly "},
	{" the ", opIdentity, 0, " of "},
	{"", opOmitLast, 5, ""},
	{"", opOmitLast, 9, ""},
	{" ", opUpperFirst, 0, ", "},
	{"", opUpperFirst, 0, "\""},
	{".", opIdentity, 0, "("},
	{"", opUpperAll, 0, " "},
	{"", opUpperFirst, 0, "\">"},
	{"", opIdentity, 0, "=\""},
	{" ", opIdentity, 0, "."},
	{".com/", opIdentity, 0, ""},
	{" the ", opIdentity, 0, " of the "},
	{"", opUpperFirst, 0, "'"},
	{"", opIdentity, 0, ". This "},
	{"", opIdentity, 0, ","},
	{".", opIdentity, 0, " "},
	{"", opUpperFirst, 0, "("},
	{"", opUpperFirst, 0, "."},
	{"", opIdentity, 0, " not "},
	{" ", opIdentity, 0, "=\""},
	{"", opIdentity, 0, "er "},
	{" ", opUpperAll, 0, " "},
	{"", opIdentity, 0, "al "},
	{" ", opUpperAll, 0, ""},
	{"", opIdentity, 0, "='"},
	{"", opUpperAll, 0, "\""},
	{"", opUpperFirst, 0, ". "},
	{" ", opIdentity, 0, "("},
	{"", opIdentity, 0, "ful "},
	{" ", opUpperFirst, 0, ". "},
	{"", opIdentity, 0, "ive "},
	{"", opIdentity, 0, "less "},
	{"", opUpperAll, 0, "'"},
	{"", opIdentity, 0, "est "},
	{" ", opUpperFirst, 0, "."},
	{"", opUpperAll, 0, "\">"},
	{" ", opIdentity, 0, "='"},
	{"", opUpperFirst, 0, ","},
	{"", opIdentity, 0, "ize "},
	{"", opUpperAll, 0, "."},
	{"\xc2\xa0", opIdentity, 0, ""},
	{" ", opIdentity, 0, ","},
	{"", opUpperFirst, 0, "=\""},
	{"", opUpperAll, 0, "=\""},
	{"", opIdentity, 0, "ous "},
	{"", opUpperAll, 0, ", "},
	{"", opUpperFirst, 0, "='"},
	{" ", opUpperFirst, 0, ","},
	{" ", opUpperAll, 0, "=\""},
	{" ", opUpperAll, 0, ", "},
	{"", opUpperAll, 0, ","},
	{"", opUpperAll, 0, "("},
	{"", opUpperAll, 0, ". "},
	{" ", opUpperAll, 0, "."},
	{"", opUpperAll, 0, "='"},
	{" ", opUpperAll, 0, ". "},
	{" ", opUpperFirst, 0, "=\""},
	{" ", opUpperAll, 0, "='"},
	{" ", opUpperFirst, 0, "='"},
}
