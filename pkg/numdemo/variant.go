package numdemo

import (
	"fmt"
	"strings"

	"github.com/ponyatov/kb/pkg/common/err"
)

// Variant selects which form of the loop runs.
type Variant int

const (
	// VariantOff runs no iterations.
	VariantOff Variant = iota
	// VariantParity prints index and parity label only.
	VariantParity
	// VariantAccumulator also reports and updates the accumulator.
	VariantAccumulator
)

const (
	pkgName = "numdemo"

	CodeUnknownVariant = "UNKNOWN_VARIANT"
)

// ErrUnknownVariant is returned by ParseVariant for unrecognized names.
var ErrUnknownVariant = err.New(pkgName, CodeUnknownVariant, "", "unknown demo variant", nil)

// VariantNames lists the accepted spellings, in declaration order.
var VariantNames = []string{"off", "parity", "accumulator"}

func (v Variant) String() string {
	if v < VariantOff || v > VariantAccumulator {
		return fmt.Sprintf("Variant(%d)", int(v))
	}
	return VariantNames[v]
}

// ParseVariant accepts "off", "parity" or "accumulator", case-insensitively.
func ParseVariant(s string) (Variant, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range VariantNames {
		if n == name {
			return Variant(i), nil
		}
	}
	return VariantOff, err.New(pkgName, CodeUnknownVariant, "parse", fmt.Sprintf("%q (want one of %s)", s, strings.Join(VariantNames, ", ")), ErrUnknownVariant)
}
