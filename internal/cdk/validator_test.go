package cdk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidFormat(t *testing.T) {
	tests := []struct {
		name string
		code string
		want bool
	}{
		{"six upper groups", "AB12-CD34-EF56-GH78-IJ90-KL12", true},
		{"lower case", "ab12-cd34-ef56-gh78-ij90-kl12", true},
		{"digits only", "1234-5678-9012-3456-7890-1234", true},
		{"empty", "", false},
		{"three groups", "AB12-CD34-EF56", false},
		{"five groups", "AB12-CD34-EF56-GH78-IJ90", false},
		{"seven groups", "AB12-CD34-EF56-GH78-IJ90-KL12-MN34", false},
		{"last group too short", "ab12-cd34-ef56-gh78-ij90-kl1", false},
		{"group too long", "AB123-CD34-EF56-GH78-IJ90-KL12", false},
		{"invalid character", "AB12-CD34-EF56-GH78-IJ90-KL1!", false},
		{"underscore separator", "AB12_CD34_EF56_GH78_IJ90_KL12", false},
		{"no separators", "AB12CD34EF56GH78IJ90KL12", false},
		{"trailing hyphen", "AB12-CD34-EF56-GH78-IJ90-KL12-", false},
		{"leading space", " AB12-CD34-EF56-GH78-IJ90-KL12", false},
		{"demo prefix accepted by old check", "DEMO12345", false},
		{"non ascii letter", "ÄB12-CD34-EF56-GH78-IJ90-KL12", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidFormat(tt.code))
		})
	}
}

func TestIsValidFormat_GroupShape(t *testing.T) {
	groups := make([]string, groupCount)
	for i := range groups {
		groups[i] = strings.Repeat("A", groupLen)
	}
	assert.True(t, IsValidFormat(strings.Join(groups, "-")))

	for i := range groups {
		broken := append([]string(nil), groups...)
		broken[i] = strings.Repeat("A", groupLen-1)
		assert.False(t, IsValidFormat(strings.Join(broken, "-")), "group %d shortened", i)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "AB12-CD34-EF56-GH78-IJ90-KL12", Normalize("  ab12-cd34-ef56-gh78-ij90-kl12 "))
}
