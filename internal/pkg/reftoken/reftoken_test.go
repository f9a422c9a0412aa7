package reftoken

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestNew_RejectsBadKeyLength(t *testing.T) {
	_, err := New("short")
	assert.Error(t, err)

	_, err = New(testSecret)
	assert.NoError(t, err)
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	c, err := New(testSecret)
	require.NoError(t, err)

	ids := []int64{1, 2, 42, 999, 123456789, math.MaxInt64}
	for _, id := range ids {
		token, err := c.Encode(id)
		require.NoError(t, err)
		assert.Contains(t, token, ":")

		got, err := c.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestEncode_NonDeterministic(t *testing.T) {
	c, err := New(testSecret)
	require.NoError(t, err)

	a, err := c.Encode(77)
	require.NoError(t, err)
	b, err := c.Encode(77)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)

	ida, err := c.Decode(a)
	require.NoError(t, err)
	idb, err := c.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, ida, idb)
}

func TestEncode_RejectsNonPositiveID(t *testing.T) {
	c, err := New(testSecret)
	require.NoError(t, err)

	_, err = c.Encode(0)
	assert.Error(t, err)
	_, err = c.Encode(-5)
	assert.Error(t, err)
}

func TestDecode_Malformed(t *testing.T) {
	c, err := New(testSecret)
	require.NoError(t, err)

	cases := []string{
		"",
		"no-delimiter",
		":",
		"abcd:",
		":abcd",
		"zzzz:abcd",                               // bad hex iv
		"00112233445566778899aabbccddeeff:zz",     // bad hex ciphertext
		"0011:aabb",                               // iv too short
		strings.Repeat("00", 16) + ":" + "",       // empty ciphertext
	}
	for _, tc := range cases {
		_, err := c.Decode(tc)
		assert.ErrorIs(t, err, ErrDecode, "token %q", tc)
	}
}

func TestDecode_WrongKey(t *testing.T) {
	c1, err := New(testSecret)
	require.NoError(t, err)
	c2, err := New("fedcba9876543210fedcba9876543210")
	require.NoError(t, err)

	token, err := c1.Encode(987654321012345)
	require.NoError(t, err)

	_, err = c2.Decode(token)
	assert.True(t, errors.Is(err, ErrDecode))
}
