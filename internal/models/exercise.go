package models

import "github.com/google/uuid"

// Exercise is a single exercise definition. Immutable once created.
type Exercise struct {
	ID            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	Equipment     Equipment     `json:"equipment"`
	MuscleGroups  []MuscleGroup `json:"muscle_groups"`
	ImageURL      string        `json:"image_url,omitempty"`
}

// NewExercise creates an exercise with a fresh identity.
func NewExercise(name string, equipment Equipment, groups ...MuscleGroup) Exercise {
	return Exercise{
		ID:           uuid.New(),
		Name:         name,
		Equipment:    equipment,
		MuscleGroups: groups,
	}
}

// Equipment categorizes what an exercise requires.
type Equipment string

const (
	EquipmentBarbell    Equipment = "barbell"
	EquipmentDumbbell   Equipment = "dumbbell"
	EquipmentKettlebell Equipment = "kettlebell"
	EquipmentMachine    Equipment = "machine"
	EquipmentCable      Equipment = "cable"
	EquipmentBodyweight Equipment = "bodyweight"
	EquipmentBands      Equipment = "bands"
	EquipmentOther      Equipment = "other"
)

// AllEquipment lists every equipment category.
var AllEquipment = []Equipment{
	EquipmentBarbell, EquipmentDumbbell, EquipmentKettlebell, EquipmentMachine,
	EquipmentCable, EquipmentBodyweight, EquipmentBands, EquipmentOther,
}

// equipmentAlternatives is the fixed substitution adjacency. Directed, not
// necessarily symmetric.
var equipmentAlternatives = map[Equipment][]Equipment{
	EquipmentBarbell:    {EquipmentDumbbell, EquipmentMachine},
	EquipmentDumbbell:   {EquipmentBarbell, EquipmentKettlebell},
	EquipmentKettlebell: {EquipmentDumbbell},
	EquipmentMachine:    {EquipmentBarbell, EquipmentCable},
	EquipmentCable:      {EquipmentMachine, EquipmentBands},
	EquipmentBodyweight: {EquipmentBands},
	EquipmentBands:      {EquipmentCable, EquipmentBodyweight},
	EquipmentOther:      nil,
}

// Alternatives returns substitute equipment for fast swaps, in preference order.
func (e Equipment) Alternatives() []Equipment {
	return equipmentAlternatives[e]
}

// MuscleGroup is a muscle targeted by an exercise.
type MuscleGroup string

const (
	MuscleChest      MuscleGroup = "chest"
	MuscleBack       MuscleGroup = "back"
	MuscleShoulders  MuscleGroup = "shoulders"
	MuscleBiceps     MuscleGroup = "biceps"
	MuscleTriceps    MuscleGroup = "triceps"
	MuscleForearms   MuscleGroup = "forearms"
	MuscleAbs        MuscleGroup = "abs"
	MuscleObliques   MuscleGroup = "obliques"
	MuscleQuads      MuscleGroup = "quads"
	MuscleHamstrings MuscleGroup = "hamstrings"
	MuscleGlutes     MuscleGroup = "glutes"
	MuscleCalves     MuscleGroup = "calves"
	MuscleTraps      MuscleGroup = "traps"
	MuscleLats       MuscleGroup = "lats"
)

// muscleRegions maps each muscle group onto its recovery body region.
var muscleRegions = map[MuscleGroup]BodyRegion{
	MuscleChest:      RegionChest,
	MuscleBack:       RegionBack,
	MuscleLats:       RegionBack,
	MuscleShoulders:  RegionShoulders,
	MuscleTraps:      RegionShoulders,
	MuscleBiceps:     RegionArms,
	MuscleTriceps:    RegionArms,
	MuscleForearms:   RegionArms,
	MuscleAbs:        RegionCore,
	MuscleObliques:   RegionCore,
	MuscleQuads:      RegionLegs,
	MuscleHamstrings: RegionLegs,
	MuscleGlutes:     RegionLegs,
	MuscleCalves:     RegionLegs,
}

// Region returns the body region used for recovery tracking.
func (m MuscleGroup) Region() BodyRegion {
	if r, ok := muscleRegions[m]; ok {
		return r
	}
	return RegionOther
}
