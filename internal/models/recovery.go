package models

import "time"

// BodyRegion is a body area tracked for recovery.
type BodyRegion string

const (
	RegionChest     BodyRegion = "chest"
	RegionBack      BodyRegion = "back"
	RegionShoulders BodyRegion = "shoulders"
	RegionArms      BodyRegion = "arms"
	RegionCore      BodyRegion = "core"
	RegionLegs      BodyRegion = "legs"
	RegionOther     BodyRegion = "other"
)

// AllRegions lists every tracked body region.
var AllRegions = []BodyRegion{
	RegionChest, RegionBack, RegionShoulders, RegionArms,
	RegionCore, RegionLegs, RegionOther,
}

// RecoveryStatus is the fatigue level of a body region.
type RecoveryStatus string

const (
	StatusRecovered        RecoveryStatus = "recovered"
	StatusSlightlyFatigued RecoveryStatus = "slightly_fatigued"
	StatusFatigued         RecoveryStatus = "fatigued"
	StatusSore             RecoveryStatus = "sore"
)

// AfterWorkout returns the status after work is applied. Sore is a ceiling:
// further work while already sore has no additional effect.
func (s RecoveryStatus) AfterWorkout() RecoveryStatus {
	switch s {
	case StatusRecovered:
		return StatusFatigued
	case StatusSlightlyFatigued:
		return StatusSore
	default:
		return StatusSore
	}
}

// AfterRecovery returns the status after the given hours of rest. Elapsed
// time only ever moves a status toward recovered.
func (s RecoveryStatus) AfterRecovery(hours float64) RecoveryStatus {
	switch s {
	case StatusSlightlyFatigued:
		if hours >= 24 {
			return StatusRecovered
		}
	case StatusFatigued:
		if hours >= 48 {
			return StatusRecovered
		}
		if hours >= 24 {
			return StatusSlightlyFatigued
		}
	case StatusSore:
		if hours >= 72 {
			return StatusRecovered
		}
		if hours >= 48 {
			return StatusFatigued
		}
	}
	return s
}

// Score returns the 0–1 recovery score used for the overall percentage.
func (s RecoveryStatus) Score() float64 {
	switch s {
	case StatusRecovered:
		return 1.0
	case StatusSlightlyFatigued:
		return 0.75
	case StatusFatigued:
		return 0.5
	default:
		return 0.25
	}
}

// RecommendedRest returns how long to rest before training the region again.
func (s RecoveryStatus) RecommendedRest() time.Duration {
	switch s {
	case StatusSlightlyFatigued:
		return 24 * time.Hour
	case StatusFatigued:
		return 48 * time.Hour
	case StatusSore:
		return 72 * time.Hour
	default:
		return 0
	}
}

// BodyMapRecovery is the persisted per-region fatigue snapshot. Regions that
// have never been touched are absent and read as recovered.
type BodyMapRecovery struct {
	Regions     map[BodyRegion]RecoveryStatus `json:"regions"`
	LastUpdated time.Time                     `json:"last_updated"`
}
