// Package validator wraps go-playground/validator with the rules this module
// needs for EVM data and a uniform error format.
//
// Besides the stock tags it registers:
//
//   - evm_address: a 20-byte 0x-prefixed hex address (any casing)
//   - hexdata:     a 0x-prefixed, even-length hex string ("0x" allowed)
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	gvalidator "github.com/go-playground/validator/v10"
)

// ErrValidationFailed is the first error of the chain returned by Validate.
var ErrValidationFailed = errors.New("struct validation failed")

var validator *gvalidator.Validate

// Example: "'Address': value '0x' does not meet the requirements for the 'evm_address' validation"
const errStringFormat = "'%s': value '%v' does not meet the requirements for the '%s' validation"

func init() {
	validator = gvalidator.New(gvalidator.WithRequiredStructEnabled())

	// Registration only fails on empty tags or nil funcs.
	_ = validator.RegisterValidation("evm_address", isEVMAddress)
	_ = validator.RegisterValidation("hexdata", isHexData)
}

func isEVMAddress(fl gvalidator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}

	s := field.String()
	return strings.HasPrefix(s, "0x") && common.IsHexAddress(s)
}

func isHexData(fl gvalidator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}

	_, err := hexutil.Decode(field.String())
	return err == nil
}

func formatError(err error) error {
	var validationErrors gvalidator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	errs := []error{ErrValidationFailed}
	for _, validationErr := range validationErrors {
		errs = append(errs, fmt.Errorf(errStringFormat,
			validationErr.Field(),
			validationErr.Value(),
			validationErr.Tag(),
		))
	}

	return errors.Join(errs...)
}

// Validate checks v against its `validate` struct tags. On failure the error
// wraps ErrValidationFailed plus one message per offending field.
func Validate(v any) error {
	if err := validator.Struct(v); err != nil {
		return formatError(err)
	}

	return nil
}

// Var validates a single value against tag, e.g. Var(addr, "required,evm_address").
func Var(v any, tag string) error {
	if err := validator.Var(v, tag); err != nil {
		return formatError(err)
	}

	return nil
}
