// Package analysis provides triage hints for incoming complaints. The hints
// are shown to staff in alerts only; submitted complaints always start at
// medium priority.
package analysis

import (
	"labourdesk/backend/internal/config"
	"labourdesk/backend/internal/models"
)

// SuggestedPriority returns the priority staff should consider for a given
// complaint type. It returns medium if the complaint type is not recognized.
func SuggestedPriority(complaintType string) string {
	if p, ok := config.TriagePriorities[complaintType]; ok {
		return p
	}
	return models.PriorityMedium
}
