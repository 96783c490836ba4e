package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyParticipation(t *testing.T) {
	th := DefaultThresholds()

	cases := []struct {
		name        string
		rate        *float64
		wantLabel   string
		wantCaution string
	}{
		{"boundary 70 is high", ptr(70.0), ConfidenceHigh, ""},
		{"just under 70 is moderate", ptr(69.9), ConfidenceModerate, CautionModerate},
		{"boundary 50 is moderate", ptr(50.0), ConfidenceModerate, CautionModerate},
		{"just under 50 is low", ptr(49.9), ConfidenceLow, CautionLow},
		{"full participation", ptr(100.0), ConfidenceHigh, ""},
		{"zero rate", ptr(0.0), ConfidenceLow, CautionLow},
		{"undefined rate treated as low", nil, ConfidenceLow, CautionLow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyParticipation(tc.rate, 0, th)
			assert.Equal(t, tc.wantLabel, got.Label)
			assert.Equal(t, tc.wantCaution, got.Caution)
		})
	}

	t.Run("delta carried but never moves the band", func(t *testing.T) {
		up := ClassifyParticipation(ptr(69.9), 25, th)
		down := ClassifyParticipation(ptr(69.9), -25, th)

		assert.Equal(t, ConfidenceModerate, up.Label)
		assert.Equal(t, ConfidenceModerate, down.Label)
		assert.Equal(t, 25.0, up.Delta)
		assert.Equal(t, -25.0, down.Delta)
	})
}
