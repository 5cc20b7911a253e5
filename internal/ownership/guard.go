package ownership

import (
	"fmt"

	"github.com/rahvarz/bazar/internal/principal"
)

// ErrForbidden is raised when the acting user does not own the resource it is
// trying to mutate, or when a delete is blocked by dependent rows.
type ErrForbidden struct {
	Reason string
}

func (e *ErrForbidden) Error() string {
	if e.Reason == "" {
		return "forbidden"
	}
	return e.Reason
}

// Check fails unless the actor owns the resource. Pure predicate, evaluated
// before any mutation is applied.
func Check(actor principal.Principal, ownerID int64) error {
	if actor.UserID != ownerID {
		return &ErrForbidden{Reason: "you do not own this resource"}
	}
	return nil
}

// NoChildren blocks a delete while dependent child rows exist, naming the
// blocking relation.
func NoChildren(relation string, childCount int64) error {
	if childCount > 0 {
		return &ErrForbidden{Reason: fmt.Sprintf("cannot delete while %s exist", relation)}
	}
	return nil
}
