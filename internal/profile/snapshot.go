package profile

import (
	"fmt"

	"github.com/eduardo5010/study-cycle-sub001/internal/difficulty"
	"github.com/eduardo5010/study-cycle-sub001/internal/store"
)

// ToData converts a Profile into its storage form.
func ToData(p *Profile) *store.ProfileData {
	return &store.ProfileData{
		UserID:                 p.UserID,
		BaselineDifficulty:     p.BaselineDifficulty.String(),
		AttentionSpan:          p.AttentionSpan,
		LearningStyle:          string(p.LearningStyle),
		FatigueLevel:           p.FatigueLevel,
		MotivationLevel:        p.MotivationLevel,
		PreferredChallenge:     p.PreferredChallenge,
		CognitiveLoadTolerance: p.CognitiveLoadTolerance,
		LastAssessment:         p.LastAssessment,
	}
}

// FromData restores a Profile from storage. A nil input yields (nil, nil).
func FromData(d *store.ProfileData) (*Profile, error) {
	if d == nil {
		return nil, nil
	}

	level, err := difficulty.ParseLevel(d.BaselineDifficulty)
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", d.UserID, err)
	}
	style, err := ParseLearningStyle(d.LearningStyle)
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", d.UserID, err)
	}

	return &Profile{
		UserID:                 d.UserID,
		BaselineDifficulty:     level,
		AttentionSpan:          d.AttentionSpan,
		LearningStyle:          style,
		FatigueLevel:           d.FatigueLevel,
		MotivationLevel:        d.MotivationLevel,
		PreferredChallenge:     d.PreferredChallenge,
		CognitiveLoadTolerance: d.CognitiveLoadTolerance,
		LastAssessment:         d.LastAssessment,
	}, nil
}
