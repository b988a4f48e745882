// File: services/quota/plans.go
package quota

import "mentorhub/models"

// Monthly session limits per plan tier.
const (
	BaseInterviewLimit     = 5
	BaseGuidanceLimit      = 10
	ElevatedInterviewLimit = 20
	ElevatedGuidanceLimit  = 50
)

// BasePlan returns a fresh base-tier plan state: counters zeroed, base limits,
// no expiry.
func BasePlan() models.PlanState {
	return models.PlanState{
		Tier:            models.TierBase,
		InterviewsUsed:  0,
		GuidanceUsed:    0,
		InterviewsLimit: BaseInterviewLimit,
		GuidanceLimit:   BaseGuidanceLimit,
	}
}
