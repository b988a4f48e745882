package booking

import (
	"sort"
	"strings"
	"time"

	"mentorhub/models"
)

// Scoring weights. Each component is independently capped; the total never
// exceeds 100 or goes negative.
const (
	MaxQualificationPoints     = 40
	PartialQualificationPoints = 20
	MaxLoadPoints              = 30
	LoadPenaltyPerSession      = 5
	MaxSlotFitPoints           = 20
	SlotFitPenaltyPerBlock     = 4
	WasteBlockMinutes          = 30
	MaxExperiencePoints        = 10
)

// Candidate is a provider being evaluated against one booking request.
type Candidate struct {
	Provider models.Provider
	// Windows are the candidate's free windows fully covering the requested interval.
	Windows []models.AvailabilityWindow
	// Upcoming is the candidate's count of scheduled future sessions.
	Upcoming int
}

// ScoredCandidate pairs a candidate with its best-fit window and total score.
type ScoredCandidate struct {
	Candidate
	BestFit models.AvailabilityWindow
	Score   int
}

// QualificationScore rates how well the candidate's supported role tags match
// the requested role. A full match is a case-insensitive substring match in
// either direction; a partial match is any single word of the target appearing
// in a supported tag. A zero score never disqualifies the candidate.
func QualificationScore(targetRole string, supported []string) int {
	target := strings.ToLower(strings.TrimSpace(targetRole))
	if target == "" {
		return 0
	}

	for _, tag := range supported {
		t := strings.ToLower(tag)
		if strings.Contains(t, target) || strings.Contains(target, t) {
			return MaxQualificationPoints
		}
	}

	for _, word := range strings.Fields(target) {
		for _, tag := range supported {
			if strings.Contains(strings.ToLower(tag), word) {
				return PartialQualificationPoints
			}
		}
	}

	return 0
}

// LoadScore deprioritizes busy candidates without ever excluding them.
func LoadScore(upcoming int) int {
	score := MaxLoadPoints - LoadPenaltyPerSession*upcoming
	if score < 0 {
		return 0
	}
	return score
}

// SlotFitScore rewards tight fits: every additional full 30-minute block of
// wasted window time costs points.
func SlotFitScore(wasteMinutes int) int {
	score := MaxSlotFitPoints - SlotFitPenaltyPerBlock*(wasteMinutes/WasteBlockMinutes)
	if score < 0 {
		return 0
	}
	return score
}

// ExperienceScore grants one point per two full years of experience, capped.
// Missing experience counts as zero years.
func ExperienceScore(years *int) int {
	if years == nil || *years <= 0 {
		return 0
	}
	score := *years / 2
	if score > MaxExperiencePoints {
		return MaxExperiencePoints
	}
	return score
}

// ScoreAndRank scores every candidate with at least one qualifying window and
// returns them best-first. Ties break toward the less-loaded candidate, then
// by provider ID so ordering is fully deterministic.
func ScoreAndRank(candidates []Candidate, targetRole string, reqStart, reqEnd time.Time) []ScoredCandidate {
	requested := int(reqEnd.Sub(reqStart) / time.Minute)

	scored := make([]ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		bestFit, ok := BestFitWindow(c.Windows, reqStart, reqEnd)
		if !ok {
			continue
		}
		waste := bestFit.DurationMinutes() - requested

		total := QualificationScore(targetRole, c.Provider.Roles) +
			LoadScore(c.Upcoming) +
			SlotFitScore(waste) +
			ExperienceScore(c.Provider.YearsExperience)

		scored = append(scored, ScoredCandidate{
			Candidate: c,
			BestFit:   bestFit,
			Score:     total,
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if scored[i].Upcoming != scored[j].Upcoming {
			return scored[i].Upcoming < scored[j].Upcoming
		}
		return scored[i].Provider.ID < scored[j].Provider.ID
	})

	return scored
}
