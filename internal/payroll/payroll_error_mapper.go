package payroll

import (
	"errors"

	payrollerrors "go-hrops/internal/payroll/errors"
	"go-hrops/internal/shared/dbutil"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return payrollerrors.ErrPayrollNotFound
	case dbutil.IsUniqueViolation(err, "uq_payroll_user_month"):
		return payrollerrors.ErrPayrollExists
	default:
		return err
	}
}
