package app

import (
	"fmt"
	"strconv"
	"strings"

	"quest-client/internal/domain"
)

const wordHexDigits = 8

// DecodePublicValues splits a proof's public values into big-endian 32-bit words.
// A trailing partial word is ignored.
func DecodePublicValues(hex string) ([]uint32, error) {
	clean := strings.TrimPrefix(strings.TrimSpace(hex), "0x")
	words := make([]uint32, 0, len(clean)/wordHexDigits)
	for i := 0; i+wordHexDigits <= len(clean); i += wordHexDigits {
		chunk := clean[i : i+wordHexDigits]
		v, err := strconv.ParseUint(chunk, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: word %d %q", domain.ErrMalformedHex, i/wordHexDigits, chunk)
		}
		words = append(words, uint32(v))
	}
	return words, nil
}

// DescribePublicValues renders the non-zero words of a proof's public values.
// Decode failures become a placeholder string and are never returned.
func DescribePublicValues(hex string) string {
	words, err := DecodePublicValues(hex)
	if err != nil {
		return "Error decoding hex values"
	}
	var found []string
	for i, v := range words {
		if v != 0 {
			found = append(found, fmt.Sprintf("[pos %d]: %d", i, v))
		}
	}
	if len(found) == 0 {
		return "No non-zero values found"
	}
	return "Found non-zero values: " + strings.Join(found, ", ")
}
