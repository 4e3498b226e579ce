// Package msgid computes translation-bundle message identifiers.
//
// The hash family is the one used by the Closure Compiler for XTB bundles:
// two 32-bit Jenkins hashes over the UTF-8 bytes of the input, combined into
// a 64-bit fingerprint, optionally folded with a meaning, and masked to 63
// bits so the id stays positive in every consumer.
package msgid

import "encoding/binary"

const (
	hashSeed   = 0x9e3779b9
	loSeed     = 102072
	idMask     = 0x7fffffffffffffff
	hiFallback = 0x130f9bef
	loFallback = 0x94a0a928
)

// Fingerprint returns the 64-bit fingerprint of s.
func Fingerprint(s string) uint64 {
	data := []byte(s)

	hi := hash32(data, 0)
	lo := hash32(data, loSeed)

	if hi == 0 && (lo == 0 || lo == 1) {
		hi ^= hiFallback
		lo ^= loFallback
	}

	return uint64(hi)<<32 | uint64(lo)
}

// MessageID returns the 63-bit id of msg. A non-empty meaning is folded in by
// rotating the message fingerprint left by one bit and adding the meaning's.
func MessageID(msg, meaning string) uint64 {
	fp := Fingerprint(msg)

	if meaning != "" {
		fp = (fp<<1 | fp>>63) + Fingerprint(meaning)
	}

	return fp & idMask
}

func hash32(data []byte, c uint32) uint32 {
	a, b := uint32(hashSeed), uint32(hashSeed)

	i := 0
	for ; i+12 <= len(data); i += 12 {
		a += binary.LittleEndian.Uint32(data[i:])
		b += binary.LittleEndian.Uint32(data[i+4:])
		c += binary.LittleEndian.Uint32(data[i+8:])
		a, b, c = mix(a, b, c)
	}

	c += uint32(len(data))

	// The low byte of c is reserved for the length.
	switch len(data) - i {
	case 11:
		c += uint32(data[i+10]) << 24
		fallthrough
	case 10:
		c += uint32(data[i+9]) << 16
		fallthrough
	case 9:
		c += uint32(data[i+8]) << 8
		fallthrough
	case 8:
		b += uint32(data[i+7]) << 24
		fallthrough
	case 7:
		b += uint32(data[i+6]) << 16
		fallthrough
	case 6:
		b += uint32(data[i+5]) << 8
		fallthrough
	case 5:
		b += uint32(data[i+4])
		fallthrough
	case 4:
		a += uint32(data[i+3]) << 24
		fallthrough
	case 3:
		a += uint32(data[i+2]) << 16
		fallthrough
	case 2:
		a += uint32(data[i+1]) << 8
		fallthrough
	case 1:
		a += uint32(data[i])
	}

	_, _, c = mix(a, b, c)

	return c
}

func mix(a, b, c uint32) (uint32, uint32, uint32) {
	a -= b
	a -= c
	a ^= c >> 13
	b -= c
	b -= a
	b ^= a << 8
	c -= a
	c -= b
	c ^= b >> 13
	a -= b
	a -= c
	a ^= c >> 12
	b -= c
	b -= a
	b ^= a << 16
	c -= a
	c -= b
	c ^= b >> 5
	a -= b
	a -= c
	a ^= c >> 3
	b -= c
	b -= a
	b ^= a << 10
	c -= a
	c -= b
	c ^= b >> 15

	return a, b, c
}
