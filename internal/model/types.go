package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// StageVector holds population counts for the three age classes. Counts are
// real-valued; fractional individuals are expected and never rounded.
type StageVector struct {
	Juveniles float64 `json:"juveniles" yaml:"juveniles"`
	SubAdults float64 `json:"sub_adults" yaml:"sub_adults"`
	Adults    float64 `json:"adults" yaml:"adults"`
}

// Total is derived from the per-stage counts; it is never tracked separately.
func (v StageVector) Total() float64 {
	return v.Juveniles + v.SubAdults + v.Adults
}

// Point is one entry of a projected time series.
type Point struct {
	Year   int         `json:"year"`
	Stages StageVector `json:"stages"`
}

// Fecundity is the expected offspring per individual of a stage per year.
type Fecundity struct {
	Juvenile float64 `json:"juvenile" yaml:"juvenile"`
	SubAdult float64 `json:"sub_adult" yaml:"sub_adult"`
	Adult    float64 `json:"adult" yaml:"adult"`
}

// Survival holds the per-year stage transition probabilities, applied after
// harvest.
type Survival struct {
	JuvenileToSubAdult float64 `json:"juvenile_to_sub_adult" yaml:"juvenile_to_sub_adult"`
	SubAdultToAdult    float64 `json:"sub_adult_to_adult" yaml:"sub_adult_to_adult"`
	AdultRemain        float64 `json:"adult_remain" yaml:"adult_remain"`
}

// Biology holds the demographic coefficients of a run. Fixed at configuration
// time and immutable while a projection is running.
type Biology struct {
	Initial   StageVector `json:"initial" yaml:"initial"`
	Fecundity Fecundity   `json:"fecundity" yaml:"fecundity"`
	Survival  Survival    `json:"survival" yaml:"survival"`
}

// Scenario is a named, reusable parameter preset: everything needed to
// reproduce a projection, and nothing the projection produced.
type Scenario struct {
	VersionedRecord
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	Biology      Biology    `json:"biology"`
	Mode         string     `json:"mode"`
	Harvest      [3]float64 `json:"harvest"`
	Horizon      int        `json:"horizon"`
	CreatedAtUTC string     `json:"created_at_utc"`
}
