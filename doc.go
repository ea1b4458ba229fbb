// Package png implements a PNG image decoder and encoder.
//
// It covers the chunk-stream layer of ISO/IEC 15948: the 8-byte file
// signature, chunk framing and CRC validation, the IHDR/PLTE/tRNS/IDAT/IEND
// critical-chunk state machine, zlib inflate/deflate of the concatenated
// IDAT payload, per-scanline filter reversal and selection, Adam7
// de-interlacing, and pixel unpacking/packing across every legal
// (color type, bit depth) pair.
//
// Ancillary-chunk metadata (gAMA, cHRM, tEXt, and so on) is decoded by small
// independent parsers in the internal/ancillary package, invoked once a
// chunk has been framed and validated; the core never interprets their
// payloads itself.
package png
