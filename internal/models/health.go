package models

import "time"

// HealthSummary is a read-only daily summary supplied by an external health
// data provider. The core displays these values, it never computes them.
type HealthSummary struct {
	Date              time.Time `json:"date"`
	Steps             float64   `json:"steps"`
	ActiveEnergyKcal  float64   `json:"active_energy_kcal"`
	DistanceWalkingKm float64   `json:"distance_walking_km"`
	DistanceCyclingKm float64   `json:"distance_cycling_km"`
	RestingHeartRate  *float64  `json:"resting_heart_rate,omitempty"`
	AvgHeartRate      *float64  `json:"avg_heart_rate,omitempty"`
	BodyMassKg        *float64  `json:"body_mass_kg,omitempty"`
	HeightCm          *float64  `json:"height_cm,omitempty"`
}
