package calculator

import (
	"github.com/KirkDiggler/bloodbond/internal/domain/element"
	"github.com/KirkDiggler/bloodbond/internal/domain/specialty"
	dnderr "github.com/KirkDiggler/bloodbond/internal/errors"
)

// Participant is a caster supporting a ritual
type Participant struct {
	Level     int
	Specialty *specialty.Specialty
}

// RitualParams are the inputs to a ritual
type RitualParams struct {
	LeaderLevel    int
	LeaderAffinity int
	Participants   []Participant
	Target         element.Element
	Difficulty     int
}

// RitualResult is the deterministic outcome of a ritual
type RitualResult struct {
	Success          bool `json:"success"`
	BasePower        int  `json:"base_power"`
	ParticipantBonus int  `json:"participant_bonus"`
	TotalPower       int  `json:"total_power"`
	DurationHours    int  `json:"duration_hours"`
	RangeFeet        int  `json:"range_feet"`
}

// ritualTiers are ordered by descending minimum power
var ritualTiers = []struct {
	minPower int
	hours    int
	feet     int
}{
	{200, 24, 1000},
	{120, 8, 500},
	{80, 4, 300},
	{40, 1, 100},
	{0, 1, 30},
}

// Ritual computes a group casting. It uses no randomness:
//
//	base  = leaderLevel*affinity + leaderLevel
//	bonus = sum(participantLevel*2) + 3 per participant preferring the target
//
// The ritual succeeds when base+bonus exceeds difficulty*10.
func Ritual(p RitualParams) (*RitualResult, error) {
	if p.LeaderLevel < 1 {
		return nil, dnderr.InvalidParameter("leader_level", p.LeaderLevel, "leader level must be at least 1")
	}
	if p.Difficulty < 0 {
		return nil, dnderr.InvalidParameter("difficulty", p.Difficulty, "difficulty cannot be negative")
	}

	result := &RitualResult{
		BasePower: p.LeaderLevel*p.LeaderAffinity + p.LeaderLevel,
	}

	for i, participant := range p.Participants {
		if participant.Level < 1 {
			return nil, dnderr.InvalidParameter("participants", i, "participant %d level must be at least 1", i)
		}
		result.ParticipantBonus += participant.Level * 2
		if participant.Specialty.IsPreferred(p.Target) {
			result.ParticipantBonus += 3
		}
	}

	result.TotalPower = result.BasePower + result.ParticipantBonus
	if result.TotalPower <= p.Difficulty*10 {
		return result, nil
	}

	result.Success = true
	for _, tier := range ritualTiers {
		if result.TotalPower >= tier.minPower {
			result.DurationHours = tier.hours
			result.RangeFeet = tier.feet
			break
		}
	}

	return result, nil
}
