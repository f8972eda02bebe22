package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterLaunches(t *testing.T) {
	launches := SampleLaunches()

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"empty query returns all", "", len(launches)},
		{"whitespace query returns all", "   ", len(launches)},
		{"matches agency", "spacex", 2},
		{"matches name case-insensitively", "ARTEMIS", 1},
		{"matches location", "kennedy", 2},
		{"matches mission type", "lunar", 2},
		{"no match", "voyager", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterLaunches(launches, tt.query)
			assert.Len(t, got, tt.want, "FilterLaunches(%q)", tt.query)
		})
	}
}

func TestSampleLaunchesHaveUniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for _, l := range SampleLaunches() {
		assert.False(t, seen[l.ID.String()], "duplicate launch id %s", l.ID)
		seen[l.ID.String()] = true
	}
}
