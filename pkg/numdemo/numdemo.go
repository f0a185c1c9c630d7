// Package numdemo runs a fixed five-step loop that labels each index even
// or odd and, in the accumulator variant, folds it into a running
// single-precision value: s = (s + i)².
package numdemo

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ponyatov/kb/pkg/common/err"
	"github.com/ponyatov/kb/pkg/common/logger"
)

// Iterations is the loop bound: i runs over [0, Iterations).
const Iterations = 5

const CodeWriteFailed = "WRITE_FAILED"

// Step is one iteration's printable record. Acc is the accumulator value
// before that iteration's update.
type Step struct {
	Index  int
	Parity string
	Acc    float32
	HasAcc bool
}

// ParityLabel returns "even" when i is divisible by 2, else "odd".
func ParityLabel(i int) string {
	if i%2 == 0 {
		return "even"
	}
	return "odd"
}

// Square returns x*x in single precision.
func Square(x float32) float32 {
	return x * x
}

// Steps computes the loop for v without printing anything.
func Steps(v Variant) []Step {
	if v == VariantOff {
		return nil
	}

	steps := make([]Step, 0, Iterations)
	var acc float32
	for i := 0; i < Iterations; i++ {
		s := Step{Index: i, Parity: ParityLabel(i)}
		if v == VariantAccumulator {
			s.Acc = acc
			s.HasAcc = true
			acc = Square(acc + float32(i))
		}
		steps = append(steps, s)
	}
	return steps
}

// FormatStep renders a step as space-separated debug values:
// `2 "even" 1.0`, or `2 "even"` without the accumulator.
func FormatStep(s Step) string {
	line := fmt.Sprintf("%d %q", s.Index, s.Parity)
	if s.HasAcc {
		line += " " + FormatFloat32(s.Acc)
	}
	return line
}

// FormatFloat32 gives the shortest representation that round-trips through
// float32. Integral values keep a ".0" suffix. Magnitudes at or above 1e16,
// or below 1e-4, use exponent notation without a plus sign or zero padding
// (1e16, 1.5e-5).
func FormatFloat32(f float32) string {
	x := float64(f)
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}

	// compare in single precision so float32(1e-4) itself stays decimal
	if abs := float32(math.Abs(x)); abs != 0 && (abs >= 1e16 || abs < 1e-4) {
		mant, exp, _ := strings.Cut(strconv.FormatFloat(x, 'e', -1, 32), "e")
		n, _ := strconv.Atoi(exp)
		return mant + "e" + strconv.Itoa(n)
	}

	s := strconv.FormatFloat(x, 'f', -1, 32)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Write prints one FormatStep line per step.
func Write(w io.Writer, steps []Step) error {
	for _, s := range steps {
		if _, e := fmt.Fprintln(w, FormatStep(s)); e != nil {
			return err.New(pkgName, CodeWriteFailed, "write", fmt.Sprintf("step %d", s.Index), e)
		}
	}
	return nil
}

// Run computes the loop for v and writes it to w.
func Run(ctx context.Context, w io.Writer, v Variant) error {
	log := logger.FromContext(ctx)

	steps := Steps(v)
	for _, s := range steps {
		log.Debug("demo step", "index", s.Index, "parity", s.Parity, "acc", s.Acc)
	}
	log.Debug("demo finished", "variant", v.String(), "steps", len(steps))

	return Write(w, steps)
}
