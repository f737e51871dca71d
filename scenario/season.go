package scenario

// seasonRounds is the number of races in a full season.
const seasonRounds = 24

// developmentPhase is one stretch of the season between major car updates.
type developmentPhase struct {
	name     string
	from, to int
	factor   float64
}

var developmentPhases = []developmentPhase{
	{"early_season", 1, 5, 1.00},
	{"first_updates", 6, 9, 1.02},
	{"mid_season", 10, 14, 1.04},
	{"summer_break", 15, 17, 1.06},
	{"championship_fight", 18, 24, 1.08},
}

// SeasonContext describes where in the season a race falls: how developed
// the cars are and how much championship pressure applies.
type SeasonContext struct {
	RaceNumber           int     `json:"race_number"`
	Phase                string  `json:"development_phase"`
	DevelopmentFactor    float64 `json:"development_factor"`
	ChampionshipPressure float64 `json:"championship_pressure"`
	RacesRemaining       int     `json:"races_remaining"`
}

func NewSeasonContext(raceNumber int) SeasonContext {
	phase := developmentPhases[0]
	for _, p := range developmentPhases {
		if raceNumber >= p.from && raceNumber <= p.to {
			phase = p
			break
		}
	}
	pressure := float64(raceNumber) / seasonRounds
	if pressure > 1 {
		pressure = 1
	}
	return SeasonContext{
		RaceNumber:           raceNumber,
		Phase:                phase.name,
		DevelopmentFactor:    phase.factor,
		ChampionshipPressure: pressure,
		RacesRemaining:       seasonRounds - raceNumber,
	}
}

// PitCrewTime is the expected pit stop loss given the crews' practice level
// this deep into the season.
func (c SeasonContext) PitCrewTime() float64 {
	t := 24.0 - (c.DevelopmentFactor-1.0)*10
	if t < 22.0 {
		t = 22.0
	}
	return t
}

// DriverPerformance is a driver's current form: raw pace and tire
// management, both on a 0-1 scale.
type DriverPerformance struct {
	BasePace         float64 `json:"base_pace"`
	TireManagement   float64 `json:"tire_management"`
	SeasonAdaptation float64 `json:"season_adaptation"`
}

type driverForm struct {
	basePace       float64
	tireManagement float64
	trend          float64
}

// driverSeasonForm tracks current-season pace and development direction per
// driver.
var driverSeasonForm = map[string]driverForm{
	"HAM": {0.95, 0.95, 0.02},
	"RUS": {0.90, 0.82, 0.01},
	"VER": {0.98, 0.92, -0.01},
	"PER": {0.88, 0.89, -0.02},
	"LEC": {0.93, 0.88, 0.03},
	"SAI": {0.91, 0.85, 0.01},
	"NOR": {0.92, 0.87, 0.04},
	"PIA": {0.89, 0.80, 0.03},
	"ALO": {0.94, 0.93, 0.00},
	"STR": {0.87, 0.84, 0.01},
}

// DefaultDrivers lists the drivers scenarios are built for when no roster
// is configured.
func DefaultDrivers() []string {
	return []string{"HAM", "VER", "LEC", "NOR", "RUS", "SAI", "PER", "PIA", "ALO", "STR"}
}

// AdjustDriverPerformance projects a driver's form onto one race: the
// season trend compounds as the year progresses. Unknown drivers get a
// midfield default.
func AdjustDriverPerformance(driver string, raceNumber int) DriverPerformance {
	form, ok := driverSeasonForm[driver]
	if !ok {
		return DriverPerformance{BasePace: 0.85, TireManagement: 0.80, SeasonAdaptation: 1.0}
	}
	progress := float64(raceNumber) / seasonRounds
	impact := form.trend * progress
	return DriverPerformance{
		BasePace:         clipForm(form.basePace + impact),
		TireManagement:   clipForm(form.tireManagement + impact*0.5),
		SeasonAdaptation: 1.0 + impact,
	}
}

func clipForm(v float64) float64 {
	if v < 0.7 {
		return 0.7
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}
