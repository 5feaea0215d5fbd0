package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"quest-client/internal/domain"
)

func TestDecodePublicValues(t *testing.T) {
	words, err := DecodePublicValues("0x0000002B00000000")
	require.NoError(t, err)
	assert.Equal(t, []uint32{43, 0}, words)

	words, err = DecodePublicValues("0000000aFFFFFFFF0001")
	require.NoError(t, err)
	assert.Equal(t, []uint32{10, 0xFFFFFFFF}, words)

	_, err = DecodePublicValues("0xZZZZZZZZ")
	assert.ErrorIs(t, err, domain.ErrMalformedHex)
}

func TestDescribePublicValues(t *testing.T) {
	assert.Equal(t, "Found non-zero values: [pos 0]: 43", DescribePublicValues("0x0000002B00000000"))
	assert.Equal(t, "Found non-zero values: [pos 1]: 1, [pos 2]: 2", DescribePublicValues("0x000000000000000100000002"))
	assert.Equal(t, "No non-zero values found", DescribePublicValues("0x0000000000000000"))
	assert.Equal(t, "No non-zero values found", DescribePublicValues(""))
	assert.Equal(t, "Error decoding hex values", DescribePublicValues("0xnothex!!"))
}
