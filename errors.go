/*
Copyright © 2026 the IsoCor authors.
This file is part of IsoCor.

IsoCor is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

IsoCor is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with IsoCor.  If not, see <http://www.gnu.org/licenses/>.
*/

package isocor

import "fmt"

// Kind identifies the family of a CorrectionError, so callers can
// discriminate on failure mode without string matching.
type Kind int

const (
	// MalformedFormula means an elemental formula string could not be
	// fully consumed by the parser.
	MalformedFormula Kind = iota
	// UnknownElement means a formula token names an element absent from
	// the isotope table.
	UnknownElement
	// TracerAbsent means the tracer element has a zero count in the
	// metabolite formula.
	TracerAbsent
	// MeasurementTooShort means n*Delta + 1 > M.
	MeasurementTooShort
	// FragmentTooSmall means M > len(mdv) + n*Delta.
	FragmentTooSmall
	// PurityShapeMismatch means len(purity) != k_tracer.
	PurityShapeMismatch
	// PuritySumInvalid means the purity vector does not sum to 1 within
	// tolerance.
	PuritySumInvalid
	// IsotopeTableInvalid means the isotope table is missing an element
	// or holds a non-normalized abundance vector.
	IsotopeTableInvalid
	// SolverDidNotConverge means the NNLS solver stopped without meeting
	// its convergence test: it hit its iteration cap, or a passive-set
	// least-squares subproblem could not be solved. The best-effort result
	// is still returned alongside this error.
	SolverDidNotConverge
	// Cancelled means the caller's cooperative cancellation signal fired
	// between solver iterations.
	Cancelled
	// InternalInvariant means a post-condition the core is supposed to
	// guarantee (e.g. Sum(d) == 1) failed at runtime.
	InternalInvariant
)

func (k Kind) String() string {
	switch k {
	case MalformedFormula:
		return "MalformedFormula"
	case UnknownElement:
		return "UnknownElement"
	case TracerAbsent:
		return "TracerAbsent"
	case MeasurementTooShort:
		return "MeasurementTooShort"
	case FragmentTooSmall:
		return "FragmentTooSmall"
	case PurityShapeMismatch:
		return "PurityShapeMismatch"
	case PuritySumInvalid:
		return "PuritySumInvalid"
	case IsotopeTableInvalid:
		return "IsotopeTableInvalid"
	case SolverDidNotConverge:
		return "SolverDidNotConverge"
	case Cancelled:
		return "Cancelled"
	case InternalInvariant:
		return "InternalInvariant"
	default:
		return "Unknown"
	}
}

// CorrectionError is the caller-visible error type returned by Correct and
// the components it calls. It carries a Kind for programmatic dispatch
// (errors.As) and an optional wrapped cause.
type CorrectionError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *CorrectionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("isocor: %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("isocor: %s: %s", e.Kind, e.Message)
}

func (e *CorrectionError) Unwrap() error { return e.Cause }

// Is reports whether target is a *CorrectionError of the same Kind, so
// errors.Is(err, &CorrectionError{Kind: TracerAbsent}) matches any
// TracerAbsent error regardless of its message or cause.
func (e *CorrectionError) Is(target error) bool {
	t, ok := target.(*CorrectionError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newError(kind Kind, format string, args ...interface{}) *CorrectionError {
	return &CorrectionError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapError(kind Kind, cause error, format string, args ...interface{}) *CorrectionError {
	return &CorrectionError{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}
