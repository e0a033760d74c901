// Package brotli provides a reference decoder for the brotli compressed
// stream format (RFC 7932).  It favors correctness and clarity over speed:
// the decoder consumes a complete in-memory compressed buffer and produces
// a complete output buffer in a single call.
package brotli

import "github.com/inovacc/brotli/internal/decode"

// Error values returned by Decode and Verify.  Invalid stream errors wrap
// ErrInvalid with a detail message; use errors.Is to classify.
var (
	ErrOutOfMemory  = decode.ErrOutOfMemory
	ErrPrematureEOF = decode.ErrPrematureEOF
	ErrInvalid      = decode.ErrInvalid
	ErrMismatch     = decode.ErrMismatch
)

// Decode decompresses a complete brotli stream.  It returns the
// decompressed bytes and the number of input bytes consumed, which may be
// less than len(compressed) if the stream is followed by trailing data.
func Decode(compressed []byte) ([]byte, int, error) {
	return decode.Decompress(compressed)
}

// Verify decompresses a complete brotli stream and compares the produced
// bytes against expected as they are generated, without returning the
// output.  It reports ErrMismatch on the first divergence, including the
// case where the stream produces more or fewer bytes than expected.  The
// returned count is the number of input bytes consumed.
func Verify(compressed, expected []byte) (int, error) {
	return decode.Compare(compressed, expected)
}
