package scaling

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/MacroPower/xamlscale/pkg/xamlerrors"
)

const (
	MinScaling = 100
	MaxScaling = 500

	baseline = 100.0
)

// Operation is the direction of a scaling conversion.
type Operation int

const (
	// NormalizeFrom converts from a non-standard scaling to 100%.
	NormalizeFrom Operation = iota
	// DenormalizeTo converts from 100% to a non-standard scaling.
	DenormalizeTo
)

var (
	operationIdents = []string{
		NormalizeFrom: "NormalizeFrom",
		DenormalizeTo: "DenormalizeTo",
	}

	// Token names, e.g. "normalize_from", keyed by operation.
	operationTokens = func() map[string]Operation {
		m := make(map[string]Operation, len(operationIdents))
		for op, ident := range operationIdents {
			m[strcase.ToSnake(ident)] = Operation(op)
		}

		return m
	}()
)

// String returns the command line token of the operation.
func (o Operation) String() string {
	if int(o) < 0 || int(o) >= len(operationIdents) {
		return fmt.Sprintf("Operation(%d)", int(o))
	}

	return strcase.ToSnake(operationIdents[o])
}

// Operations returns the recognized operation tokens in declaration order.
func Operations() []string {
	ops := make([]string, 0, len(operationIdents))
	for op := range operationIdents {
		ops = append(ops, Operation(op).String())
	}

	return ops
}

// ParseOperation splits a "<name>=<scaling>" token.
//
// It returns an error wrapping [xamlerrors.ErrUsage] if the token is not of
// that shape or names an unknown operation, and an error wrapping
// [xamlerrors.ErrInvalidScaling] if the scaling is not an integer within
// [MinScaling, MaxScaling].
func ParseOperation(token string) (Operation, int, error) {
	parts := strings.Split(token, "=")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q is not of the form <operation>=<scaling>", xamlerrors.ErrUsage, token)
	}

	op, ok := operationTokens[parts[0]]
	if !ok {
		return 0, 0, fmt.Errorf("%w: unknown operation %q, expected one of %s",
			xamlerrors.ErrUsage, parts[0], strings.Join(Operations(), ", "))
	}

	scaling, err := ParseInt(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", xamlerrors.ErrInvalidScaling, err)
	}

	if scaling < MinScaling || scaling > MaxScaling {
		return 0, 0, fmt.Errorf("%w: %d is outside [%d, %d]",
			xamlerrors.ErrInvalidScaling, scaling, MinScaling, MaxScaling)
	}

	return op, int(scaling), nil
}

// Resolve parses token and returns the resulting [Factor].
func Resolve(token string) (Factor, error) {
	op, scaling, err := ParseOperation(token)
	if err != nil {
		return 0, err
	}

	return NewFactor(op, scaling)
}

// ParseInt parses a 32-bit decimal integer. Surrounding whitespace and a
// leading sign are accepted.
func ParseInt(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parse integer: %w", err)
	}

	return v, nil
}

// Factor is the multiplier applied to every rewritten coordinate.
type Factor float64

// NewFactor returns the factor for converting with op at the given scaling.
func NewFactor(op Operation, scaling int) (Factor, error) {
	if scaling < MinScaling || scaling > MaxScaling {
		return 0, fmt.Errorf("%w: %d is outside [%d, %d]",
			xamlerrors.ErrInvalidScaling, scaling, MinScaling, MaxScaling)
	}

	switch op {
	case NormalizeFrom:
		return Factor(baseline / float64(scaling)), nil
	case DenormalizeTo:
		return Factor(float64(scaling) / baseline), nil
	}

	return 0, fmt.Errorf("%w: unknown operation %s", xamlerrors.ErrUsage, op)
}

// Apply scales v and rounds half away from zero.
func (f Factor) Apply(v int64) int64 {
	return int64(math.Round(float64(f) * float64(v)))
}

// String formats the factor with at most three decimals.
func (f Factor) String() string {
	return strconv.FormatFloat(math.Round(float64(f)*1000)/1000, 'f', -1, 64)
}
