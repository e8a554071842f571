package complaint

import (
	"fmt"
	"labourdesk/backend/internal/apperr"
	"labourdesk/backend/internal/models"
	"labourdesk/backend/internal/validation"
)

// transitions lists the forward moves allowed from each status.
var transitions = map[string][]string{
	models.StatusPending:       {models.StatusInvestigating, models.StatusClosed},
	models.StatusInvestigating: {models.StatusResolved, models.StatusClosed},
	models.StatusResolved:      {models.StatusClosed},
	models.StatusClosed:        {},
}

// CanTransition reports whether a complaint may move from one status to another.
func CanTransition(from, to string) bool {
	return validation.OneOf(to, transitions[from])
}

func checkTransition(from, to string) error {
	if !validation.OneOf(to, models.Statuses) {
		return apperr.FieldValidation("status", "unknown status")
	}
	if from == to {
		return apperr.FieldValidation("status", "status unchanged")
	}
	if !CanTransition(from, to) {
		return apperr.FieldValidation("status", fmt.Sprintf("cannot move from %s to %s", from, to))
	}
	return nil
}
