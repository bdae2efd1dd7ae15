package payroll

import (
	"strings"

	payrollerrors "go-hrops/internal/payroll/errors"
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusPaid       Status = "Paid"
)

var statuses = []Status{StatusPending, StatusProcessing, StatusPaid}

func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	for _, st := range statuses {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", payrollerrors.ErrInvalidStatus
}

// CanTransition keeps payroll status monotonic: Pending, Processing, Paid.
// Repeating Pending or Processing is a no-op; Paid is terminal.
func CanTransition(current, requested Status) error {
	switch {
	case current == StatusPaid:
		return payrollerrors.ErrAlreadyPaid
	case current == StatusProcessing && requested == StatusPending:
		return payrollerrors.ErrStatusRegression
	default:
		return nil
	}
}
