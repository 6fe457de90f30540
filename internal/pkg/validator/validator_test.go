package validator

import (
	"errors"
	"testing"

	gvalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	type query struct {
		ChainID int    `validate:"required,gt=0"`
		Address string `validate:"omitempty,evm_address"`
		Data    string `validate:"omitempty,hexdata"`
	}

	t.Run("should accept well formed input", func(t *testing.T) {
		err := Validate(query{
			ChainID: 42,
			Address: "0xf01103E5a9909Fc0DBe8166dA7085e0285daDDcA",
			Data:    "0x54f6127f",
		})

		assert.NoError(t, err)
	})

	t.Run("should accept empty calldata", func(t *testing.T) {
		assert.NoError(t, Validate(query{ChainID: 42, Data: "0x"}))
	})

	t.Run("should reject a short address", func(t *testing.T) {
		err := Validate(query{ChainID: 42, Address: "0x1234"})

		assert.ErrorIs(t, err, ErrValidationFailed)
		assert.Contains(t, err.Error(), "'Address': value '0x1234' does not meet the requirements for the 'evm_address' validation")
	})

	t.Run("should reject an unprefixed address", func(t *testing.T) {
		err := Validate(query{ChainID: 42, Address: "f01103E5a9909Fc0DBe8166dA7085e0285daDDcA"})
		assert.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("should reject odd length calldata", func(t *testing.T) {
		err := Validate(query{ChainID: 42, Data: "0x123"})
		assert.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("should report every failing field", func(t *testing.T) {
		err := Validate(query{Address: "nope"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "'ChainID'")
		assert.Contains(t, err.Error(), "'Address'")
	})
}

func TestVar(t *testing.T) {
	t.Run("should validate a single value", func(t *testing.T) {
		assert.NoError(t, Var("0x403bfd53617555295347e0f7725cfda480ab801e", "required,evm_address"))
		assert.ErrorIs(t, Var("", "required,evm_address"), ErrValidationFailed)
	})
}

func TestFormatError(t *testing.T) {
	t.Run("should pass through non validation errors", func(t *testing.T) {
		plain := errors.New("boom")
		assert.Same(t, plain, formatError(plain))
	})

	t.Run("should format go-playground errors", func(t *testing.T) {
		type s struct {
			Name string `validate:"required"`
		}

		err := formatError(gvalidator.New().Struct(s{}))

		assert.ErrorIs(t, err, ErrValidationFailed)
		assert.Contains(t, err.Error(), "'Name': value '' does not meet the requirements for the 'required' validation")
	})
}
