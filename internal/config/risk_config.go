package config

import "time"

const (
	// Risk scoring
	CrisisScoreThreshold = 50
	AlertExcerptMaxLen   = 200

	// Room lifecycle
	RoomWaitingExpiryDefault = 24 * time.Hour
	WaitingSweepInterval     = 10 * time.Minute
)

// RiskWeights maps content keywords to a severity contribution. A scan's score
// is the sum of weights for every keyword present; scores at or above
// CrisisScoreThreshold raise a CrisisAlert.
var RiskWeights = map[string]int{
	"hopeless":    10,
	"panic":       10,
	"can't cope":  15,
	"self harm":   50,
	"self-harm":   50,
	"hurt myself": 50,
	"suicide":     75,
	"kill myself": 75,
	"end it all":  60,
	"overdose":    60,
}

// UrgencyWeights maps a triage form's self-reported urgency to a base score.
var UrgencyWeights = map[string]int{
	"LOW":      0,
	"MODERATE": 10,
	"HIGH":     30,
	"CRISIS":   100,
}
