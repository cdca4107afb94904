package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduardo5010/study-cycle-sub001/internal/difficulty"
	"github.com/eduardo5010/study-cycle-sub001/internal/store"
)

func TestToDataFromData(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	p := Assess("u1", AssessmentResults{
		KeyAccuracy:        0.9,
		KeyAvgResponseTime: 15.0,
	}, now)

	d := ToData(p)
	assert.Equal(t, "very_challenging", d.BaselineDifficulty)
	assert.Equal(t, "visual", d.LearningStyle)

	back, err := FromData(d)
	require.NoError(t, err)
	assert.Equal(t, p, back)
}

func TestFromData_Nil(t *testing.T) {
	p, err := FromData(nil)
	assert.NoError(t, err)
	assert.Nil(t, p)
}

func TestFromData_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data store.ProfileData
	}{
		{"bad level", store.ProfileData{UserID: "u1", BaselineDifficulty: "impossible", LearningStyle: "visual"}},
		{"bad style", store.ProfileData{UserID: "u1", BaselineDifficulty: "easy", LearningStyle: "telepathic"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromData(&tt.data)
			assert.Error(t, err)
		})
	}
}

func TestToData_AllLevels(t *testing.T) {
	for _, l := range difficulty.AllLevels() {
		p := &Profile{UserID: "u", BaselineDifficulty: l, LearningStyle: StyleReading}
		back, err := FromData(ToData(p))
		require.NoError(t, err)
		assert.Equal(t, l, back.BaselineDifficulty)
	}
}
