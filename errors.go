package tablescrub

import (
	"errors"
	"fmt"
)

// Standard errors for consistent error handling across the package.
var (
	// ErrMalformedInput indicates a table whose rows do not match the header,
	// or a header with duplicate column names. Surfaced to the caller.
	ErrMalformedInput = errors.New("tablescrub: malformed input table")

	// ErrStructuralIntegrity indicates a post-apply invariant violation.
	// This is a defect in a detector or the resolution policy, not a
	// recoverable runtime condition.
	ErrStructuralIntegrity = errors.New("tablescrub: structural integrity violation")

	// ErrUnknownDetector indicates configuration referencing a detector id
	// that is not registered. Raised at configuration-validation time.
	ErrUnknownDetector = errors.New("tablescrub: unknown detector")

	// ErrInvalidConfig indicates an out-of-range configuration value
	ErrInvalidConfig = errors.New("tablescrub: invalid configuration")

	// ErrEmptyData indicates that the data source contains no records
	ErrEmptyData = errors.New("tablescrub: empty data source")

	// ErrUnsupportedFormat indicates an unsupported file format
	ErrUnsupportedFormat = errors.New("tablescrub: unsupported file format")
)

// newMalformedInputError wraps ErrMalformedInput with details.
func newMalformedInputError(details string) error {
	return fmt.Errorf("%w: %s", ErrMalformedInput, details)
}

// newStructuralIntegrityError wraps ErrStructuralIntegrity with details.
func newStructuralIntegrityError(details string) error {
	return fmt.Errorf("%w: %s", ErrStructuralIntegrity, details)
}
