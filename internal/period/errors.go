package period

import (
	"errors"
	"fmt"
)

// ErrInvalidPeriodKind is matched by every error returned for a period kind
// outside day, week, month, quarter and year.
var ErrInvalidPeriodKind = errors.New("invalid period kind")

// KindError reports the offending period kind.
type KindError struct {
	Kind string
}

func (e *KindError) Error() string {
	return fmt.Sprintf("%s %q: must be one of %v", ErrInvalidPeriodKind, e.Kind, Kinds())
}

// Is makes errors.Is(err, ErrInvalidPeriodKind) hold for wrapped KindErrors.
func (e *KindError) Is(target error) bool {
	return target == ErrInvalidPeriodKind
}

// IsInvalidKind returns true if err is or wraps an invalid period kind error.
func IsInvalidKind(err error) bool {
	return errors.Is(err, ErrInvalidPeriodKind)
}
