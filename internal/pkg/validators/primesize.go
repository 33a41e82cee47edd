package validators

import (
	"github.com/go-playground/validator/v10"
)

// Bounds for prime and modulus bit lengths accepted by key generation.
const (
	MinPrimeBits = 16
	MaxPrimeBits = 16384
)

// PrimeBitSizeValidation validates the modulus (or structured p) bit length: even and within bounds.
func PrimeBitSizeValidation(fl validator.FieldLevel) bool {
	bits := fl.Field().Int()
	return bits >= MinPrimeBits && bits <= MaxPrimeBits && bits%2 == 0
}

// SubprimeBitSizeValidation validates the subprime bit length based on the generation mode.
// Independent mode ignores the field, structured mode needs MinPrimeBits <= subprime < ModulusBits.
func SubprimeBitSizeValidation(fl validator.FieldLevel) bool {
	mode := fl.Parent().FieldByName("Mode").String()
	modulusBits := fl.Parent().FieldByName("ModulusBits").Int()
	subprimeBits := fl.Field().Int()

	switch mode {
	case "independent":
		return subprimeBits >= 0
	case "structured":
		return subprimeBits >= MinPrimeBits && subprimeBits < modulusBits
	default:
		return false
	}
}
