package decode

import _ "embed"

// The static dictionary holds, for each word length 4..24, exactly
// 1<<dictBits[length] words stored contiguously.  dictionary.bin is the
// 122,784-byte table from the brotli specification, as shipped with the
// reference implementation.
//
//go:embed dictionary.bin
var dictData []byte

const (
	minDictWordLength = 4
	maxDictWordLength = 24
)

var dictBits = [maxDictWordLength + 1]uint{
	0, 0, 0, 0, 10, 10, 11, 11, 10, 10, 10, 10, 10, 9, 9, 8, 7, 7, 8, 7,
	7, 6, 6, 5, 5,
}

// dictOffset[length] is where the words of a given length begin.
var dictOffset [maxDictWordLength + 2]int

func init() {
	pos := 0
	for length := minDictWordLength; length <= maxDictWordLength; length++ {
		dictOffset[length] = pos
		pos += length << dictBits[length]
	}
	dictOffset[maxDictWordLength+1] = pos
}

// dictWord returns the dictionary word of the given length at index.
func dictWord(length, index int) []byte {
	pos := dictOffset[length] + length*index
	return dictData[pos : pos+length]
}

// dictionaryRef resolves a distance beyond the window into a transformed
// dictionary word.  The excess distance encodes a word index in the
// low bits and a transform number in the high bits, split by the word
// count for the requested copy length.
func dictionaryRef(dist, max, length int) ([]byte, error) {
	if length < minDictWordLength || length > maxDictWordLength {
		return nil, invalidf("dictionary word length %d out of range", length)
	}
	id := dist - max - 1
	index := id & (1<<dictBits[length] - 1)
	xform := id >> dictBits[length]
	if xform >= len(transforms) {
		return nil, invalidf("dictionary transform %d out of range", xform)
	}
	word := transforms[xform].apply(dictWord(length, index))
	if len(word) == 0 {
		// an omit transform can swallow a whole word; a command that
		// produces nothing would never advance the meta-block
		return nil, invalidf("dictionary transform produced no output")
	}
	return word, nil
}
