package race

import (
	"fmt"
	"strings"
)

// Compound is a tire choice: outright pace traded against wear rate.
type Compound int

const (
	Soft Compound = iota
	Medium
	Hard
)

func (c Compound) String() string {
	switch c {
	case Soft:
		return "SOFT"
	case Medium:
		return "MEDIUM"
	case Hard:
		return "HARD"
	}
	return fmt.Sprintf("COMPOUND(%d)", int(c))
}

// BaseWearRate is the compound's degradation rate in seconds per lap of age.
func (c Compound) BaseWearRate() float64 {
	switch c {
	case Soft:
		return 0.08
	case Hard:
		return 0.02
	}
	return 0.04
}

// ParseCompound maps a compound name to its enum, defaulting to Medium.
func ParseCompound(name string) Compound {
	switch strings.ToUpper(name) {
	case "SOFT":
		return Soft
	case "HARD":
		return Hard
	}
	return Medium
}

// Compounds lists every dry compound in enum order.
var Compounds = []Compound{Soft, Medium, Hard}

// Oracle predicts the lap-time penalty in seconds caused by tire wear under
// the given conditions. An oracle that reports itself untrained makes the
// environment fall back to its closed-form wear curve. Predictions are
// never negative.
type Oracle interface {
	PredictDegradation(tireAge int, compound Compound, driver, track string, trackTemp float64, lap int, fuelLoad float64) float64
	IsTrained() bool
}

// UntrainedOracle always reports untrained, forcing the environment onto
// its fallback curve. It is the default oracle.
type UntrainedOracle struct{}

var _ Oracle = UntrainedOracle{}

func (UntrainedOracle) PredictDegradation(int, Compound, string, string, float64, int, float64) float64 {
	return 0
}

func (UntrainedOracle) IsTrained() bool {
	return false
}

// ConstantOracle reports a fixed degradation regardless of conditions.
type ConstantOracle struct {
	Penalty float64
}

var _ Oracle = ConstantOracle{}

func (o ConstantOracle) PredictDegradation(int, Compound, string, string, float64, int, float64) float64 {
	if o.Penalty < 0 {
		return 0
	}
	return o.Penalty
}

func (ConstantOracle) IsTrained() bool {
	return true
}

// driverTireSkill rates tire management per driver on a 0-1 scale.
var driverTireSkill = map[string]float64{
	"HAM": 0.95, "VER": 0.92, "LEC": 0.88, "SAI": 0.85,
	"RUS": 0.82, "NOR": 0.87, "PIA": 0.80, "ALO": 0.93,
	"STR": 0.84, "PER": 0.89, "ALB": 0.81, "SAR": 0.78,
	"TSU": 0.79, "LAW": 0.76, "HUL": 0.83, "MAG": 0.80,
	"GAS": 0.85, "OCO": 0.82, "BOT": 0.86, "ZHO": 0.77,
}

// trackWearSeverity rates how hard a circuit is on tires, 0-1 scale.
var trackWearSeverity = map[string]float64{
	"Monaco": 0.3, "Hungary": 0.4, "Singapore": 0.5,
	"Spain": 0.6, "Austria": 0.6, "Netherlands": 0.6,
	"Belgium": 0.7, "Italy": 0.7, "Brazil": 0.7,
	"Britain": 0.8, "Turkey": 0.8, "Abu Dhabi": 0.8,
	"Bahrain": 0.9, "Saudi Arabia": 0.9, "Australia": 0.9,
}

const (
	defaultTireSkill    = 0.8
	defaultWearSeverity = 0.7
)

// DriverTireSkill returns the tire-management rating for a driver code,
// falling back to an average rating for unknown drivers.
func DriverTireSkill(driver string) float64 {
	if skill, ok := driverTireSkill[driver]; ok {
		return skill
	}
	return defaultTireSkill
}

// TrackWearSeverity returns the wear severity for a track name, falling
// back to medium severity for unknown tracks.
func TrackWearSeverity(track string) float64 {
	if severity, ok := trackWearSeverity[track]; ok {
		return severity
	}
	return defaultWearSeverity
}

// CurveOracle is a trained closed-form wear model: the compound wear curve
// scaled by driver tire management, track severity, track temperature and
// fuel load.
type CurveOracle struct{}

var _ Oracle = CurveOracle{}

func (CurveOracle) PredictDegradation(tireAge int, compound Compound, driver, track string, trackTemp float64, lap int, fuelLoad float64) float64 {
	age := float64(tireAge)
	deg := compound.BaseWearRate() * age * (1 + age*0.02)
	deg *= 2 - DriverTireSkill(driver)
	deg *= TrackWearSeverity(track) / defaultWearSeverity
	deg *= 1 + (trackTemp-35.0)*0.01
	deg *= 1 + fuelLoad*0.001
	if deg < 0 {
		return 0
	}
	return deg
}

func (CurveOracle) IsTrained() bool {
	return true
}
