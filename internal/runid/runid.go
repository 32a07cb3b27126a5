// Package runid generates identifiers for simulation runs. A run ID is
// a UUIDv7 rendered as 26 characters of Crockford base32: sortable by
// creation time, safe in file names, and easy to quote in a bug report
// next to the seed that reproduces the run.
package runid

import (
	"crypto/rand"
	"fmt"
	"time"
)

// Crockford's base32 alphabet (no i, l, o, u).
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// RandSource supplies the random tail of an ID. Production uses
// crypto/rand; tests inject a deterministic source.
type RandSource interface {
	Intn(n int) int
}

// New returns a fresh run ID.
func New() string {
	return NewWithRand(nil)
}

// NewWithRand returns a run ID drawing its random bytes from src, or
// from crypto/rand when src is nil.
func NewWithRand(src RandSource) string {
	return encodeBase32(newUUIDv7(src))
}

// newUUIDv7 builds a 128-bit UUIDv7: 48 bits of millisecond timestamp,
// then version and variant bits over random data.
func newUUIDv7(src RandSource) [16]byte {
	var uuid [16]byte

	now := time.Now().UnixMilli()
	uuid[0] = byte(now >> 40)
	uuid[1] = byte(now >> 32)
	uuid[2] = byte(now >> 24)
	uuid[3] = byte(now >> 16)
	uuid[4] = byte(now >> 8)
	uuid[5] = byte(now)

	if src != nil {
		for i := 6; i < 16; i++ {
			uuid[i] = byte(src.Intn(256))
		}
	} else {
		if _, err := rand.Read(uuid[6:]); err != nil {
			panic("runid: crypto/rand failed: " + err.Error())
		}
	}

	// Version 7, variant 10.
	uuid[6] = (uuid[6] & 0x0f) | 0x70
	uuid[8] = (uuid[8] & 0x3f) | 0x80

	return uuid
}

// encodeBase32 encodes 128 bits as 26 base32 characters, five bits per
// character with the final two bits padded out.
func encodeBase32(data [16]byte) string {
	result := make([]byte, 26)
	for i := 0; i < 26; i++ {
		bitOffset := i * 5
		byteIndex := bitOffset / 8
		bitIndex := bitOffset % 8

		var value uint8
		if byteIndex < 16 {
			if bitIndex <= 3 {
				value = (data[byteIndex] >> (3 - bitIndex)) & 0x1f
			} else {
				value = (data[byteIndex] << (bitIndex - 3)) & 0x1f
				if byteIndex+1 < 16 {
					value |= data[byteIndex+1] >> (11 - bitIndex)
				}
			}
		}
		result[i] = alphabet[value]
	}
	return string(result)
}

// Validate checks that id is a well-formed run ID.
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("run ID must be exactly 26 characters, got %d", len(id))
	}
	// 128 bits in 130 bit positions: the first character carries only
	// three significant bits.
	if id[0] > '7' {
		return fmt.Errorf("run ID first character must be 0-7, got %c", id[0])
	}
	for i, char := range id {
		valid := false
		for _, validChar := range alphabet {
			if char == validChar {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	return nil
}
