package leave

import (
	"strings"

	leaveerrors "go-hrops/internal/leave/errors"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

var statuses = []Status{StatusPending, StatusApproved, StatusRejected}

func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	for _, st := range statuses {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", leaveerrors.ErrInvalidStatus
}

// CanTransition allows exactly one decision per request: Pending to
// Approved or Rejected. Decided requests are immutable.
func CanTransition(current, requested Status) error {
	if requested != StatusApproved && requested != StatusRejected {
		return leaveerrors.ErrInvalidDecision
	}
	if current != StatusPending {
		return leaveerrors.ErrAlreadyProcessed.WithMessage("AlreadyProcessed: " + string(current))
	}
	return nil
}
