package supplier

import (
	"errors"
	"fmt"
	"strings"

	"pkg.frost.gg/frostline/model"
)

var (
	// ErrNotFound reports that a required single-value lookup matched no
	// record. Only the non-nil-returning accessor variants produce it; the
	// OrNil variants report absence as a nil record instead.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidArgument reports a precondition violation detected before
	// any store scan or network I/O, such as a non-positive limit.
	ErrInvalidArgument = errors.New("invalid argument")
)

// NotFoundError is the concrete error behind ErrNotFound, naming the entity
// kind and the identifiers that were looked up.
type NotFoundError struct {
	Kind string
	IDs  []model.Snowflake
}

func (e *NotFoundError) Error() string {
	if len(e.IDs) == 0 {
		return fmt.Sprintf("%s not found", e.Kind)
	}
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = model.FormatSnowflake(id)
	}
	return fmt.Sprintf("%s %s not found", e.Kind, strings.Join(ids, "/"))
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// RemoteError reports an irrecoverable failure of the remote accessor. It is
// never produced by the cache-backed supplier, and never converted into a
// fallback trigger.
type RemoteError struct {
	// Status is the HTTP status of the failed request, or zero when the
	// failure happened below the HTTP layer.
	Status int
	Err    error
}

func (e *RemoteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("remote request failed with status %d: %s", e.Status, e.Err)
	}
	return fmt.Sprintf("remote request failed: %s", e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

func errInvalidLimit(limit int) error {
	return fmt.Errorf("%w: at least 1 item should be requested, got %d", ErrInvalidArgument, limit)
}

// require converts an OrNil lookup result into the strict form, mapping
// absence to a NotFoundError for the given kind and identifiers.
func require[T any](v *T, err error, kind string, ids ...model.Snowflake) (*T, error) {
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, &NotFoundError{Kind: kind, IDs: ids}
	}
	return v, nil
}
