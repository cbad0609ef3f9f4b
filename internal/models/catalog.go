// ABOUTME: Fixed suggestion lists: sub-types per sport and periodization phases.
// ABOUTME: Suggestions only; free text outside these lists is accepted everywhere.
package models

// SubTypes suggests sub-type labels for each sport.
var SubTypes = map[Sport][]string{
	SportGym: {
		"Full body strength", "Lower body strength", "Upper body strength",
		"Lower body strength-speed", "Full body strength-speed",
		"Push", "Pull", "Legs", "Other",
	},
	SportRunning: {
		"Recovery run", "Easy run", "Chill run", "Endurance run", "Tempo run",
		"Threshold interval run", "VO2max interval run", "Sprint interval run",
		"Repeated sprint run", "Long run", "Race", "Challenge", "Other",
	},
	SportCycling: {
		"Recovery ride", "Chill ride", "Endurance ride", "Tempo ride",
		"Threshold interval ride", "VO2max interval ride", "Sprint interval ride",
		"Repeated sprint ride", "Long ride", "Race", "Challenge", "Other",
	},
	SportFootball: {"Training", "Match", "Other"},
	SportRest:     {"Active Recovery", "Full Rest", "Stretching", "Massage"},
	SportOther:    {"Padel", "Walking", "Swimming", "Yoga", "Pilates", "Hiking", "Tennis"},
}

// PeriodizationOptions suggests week phase labels.
var PeriodizationOptions = []string{
	"Week 1", "Week 2", "Week 3", "Week 4",
	"Deload", "Peak Week", "Hypertrophy", "Strength", "Power", "Other",
}
