// Package domain holds the pure assessment rules: the lifecycle state
// machine guards and the dimension scoring engine. Nothing here blocks
// or touches I/O.
package domain

import (
	"errors"
	"fmt"
	"strings"

	"orgair_backend/internal/feature/assessments/domain/entity"
)

// ErrAssessmentLocked is returned when scores are edited outside of
// draft/in_progress.
var ErrAssessmentLocked = errors.New("assessment scores can only be edited in draft or in_progress")

// ValidationError reports an invalid dimension score set. Dimensions
// names the offending dimensions where that is meaningful (missing or
// duplicated entries, out-of-range fields).
type ValidationError struct {
	Reason     string
	Dimensions []entity.Dimension
}

func (e *ValidationError) Error() string {
	if len(e.Dimensions) == 0 {
		return e.Reason
	}
	names := make([]string, 0, len(e.Dimensions))
	for _, d := range e.Dimensions {
		names = append(names, string(d))
	}
	return fmt.Sprintf("%s: %s", e.Reason, strings.Join(names, ", "))
}

// TransitionError reports a status change not present in the
// adjacency table. The assessment is left unchanged.
type TransitionError struct {
	From entity.Status
	To   entity.Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal status transition from %q to %q", e.From, e.To)
}
