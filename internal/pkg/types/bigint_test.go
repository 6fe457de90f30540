package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBigInt(t *testing.T) {
	t.Run("should parse values beyond 64 bits", func(t *testing.T) {
		b, err := ParseBigInt("1000000000000000000000000")
		require.NoError(t, err)
		assert.Equal(t, "1000000000000000000000000", b.String())
	})

	t.Run("should parse padded hex words", func(t *testing.T) {
		b, err := ParseBigInt("0x000000000000000000000000000000000000000000000000000000000000002a")
		require.NoError(t, err)
		assert.Equal(t, "42", b.String())

		zero, err := ParseBigInt("0x0000")
		require.NoError(t, err)
		assert.True(t, zero.IsZero())
	})

	t.Run("should treat empty as zero", func(t *testing.T) {
		b, err := ParseBigInt("")
		require.NoError(t, err)
		assert.True(t, b.IsZero())
	})

	t.Run("should reject invalid input", func(t *testing.T) {
		_, err := ParseBigInt("12ab")
		assert.Error(t, err)

		_, err = ParseBigInt("0x")
		assert.Error(t, err)
	})
}

func TestBigInt_Cmp(t *testing.T) {
	assert.Equal(t, -1, NewBigInt(1).Cmp(NewBigInt(2)))
	assert.Equal(t, 0, MustParseBigInt("5").Cmp(NewBigInt(5)))
	assert.Equal(t, 1, MustParseBigInt("0x10").Cmp(NewBigInt(15)))
}

func TestBigInt_JSON(t *testing.T) {
	t.Run("should decode strings, numbers and null", func(t *testing.T) {
		var payload struct {
			Value   BigInt `json:"value"`
			Number  BigInt `json:"number"`
			Missing BigInt `json:"missing"`
			Null    BigInt `json:"null"`
		}

		require.NoError(t, json.Unmarshal([]byte(`{"value":"1500000000000000000","number":7,"null":null}`), &payload))

		assert.Equal(t, "1500000000000000000", payload.Value.String())
		assert.Equal(t, "7", payload.Number.String())
		assert.True(t, payload.Missing.IsZero())
		assert.True(t, payload.Null.IsZero())
	})

	t.Run("should encode as a quoted decimal", func(t *testing.T) {
		out, err := json.Marshal(MustParseBigInt("0xde0b6b3a7640000"))
		require.NoError(t, err)
		assert.Equal(t, `"1000000000000000000"`, string(out))
	})
}
