package png

import "hash/crc32"

// crcOf computes the PNG chunk CRC-32 over a chunk's type and data, per
// spec §4.8: IEEE 802.3 polynomial, initial value and final XOR of
// 0xFFFFFFFF. hash/crc32's IEEE table is bit-identical to the polynomial
// the PNG spec calls for, so the core reuses it: each call creates a fresh
// hash.Hash32 and feeds it Write(type) then Write(data).
func crcOf(typ [4]byte, data []byte) uint32 {
	h := crc32.NewIEEE()
	h.Write(typ[:])
	h.Write(data)
	return h.Sum32()
}
