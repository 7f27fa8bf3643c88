package popdyn

// Unit describes how a harvest parameter slot is denominated.
type Unit string

const (
	UnitCount Unit = "count"
	UnitRate  Unit = "rate"
)

// SuggestedQuotaMax caps quota sliders in reference callers. The model itself
// accepts any non-negative quota.
const SuggestedQuotaMax = 800

// SlotSpec describes one harvest parameter slot so callers can label and
// bound their own input widgets.
type SlotSpec struct {
	Label  string  `json:"label"`
	Unit   Unit    `json:"unit"`
	Max    float64 `json:"max"`
	Active bool    `json:"active"`
}

// ModeSpec advertises the parameter shape of a harvest mode.
type ModeSpec struct {
	Mode  Mode        `json:"mode"`
	Slots [3]SlotSpec `json:"slots"`
}

// Spec reports the parameter semantics of the mode: denomination, suggested
// upper bound, and whether each slot has any effect.
func (m Mode) Spec() ModeSpec {
	switch m {
	case ModeConstantQuota:
		return ModeSpec{Mode: m, Slots: [3]SlotSpec{
			{Label: "Harvest # J", Unit: UnitCount, Max: SuggestedQuotaMax, Active: true},
			{Label: "Harvest # S", Unit: UnitCount, Max: SuggestedQuotaMax, Active: true},
			{Label: "Harvest # A", Unit: UnitCount, Max: SuggestedQuotaMax, Active: true},
		}}
	case ModeProportional:
		return ModeSpec{Mode: m, Slots: [3]SlotSpec{
			{Label: "Global Rate", Unit: UnitRate, Max: 1, Active: true},
			{Label: "(Inactive)", Unit: UnitRate, Max: 1},
			{Label: "(Inactive)", Unit: UnitRate, Max: 1},
		}}
	case ModeSelective:
		return ModeSpec{Mode: m, Slots: [3]SlotSpec{
			{Label: "Harvest J %", Unit: UnitRate, Max: 1, Active: true},
			{Label: "Harvest S %", Unit: UnitRate, Max: 1, Active: true},
			{Label: "Harvest A %", Unit: UnitRate, Max: 1, Active: true},
		}}
	default:
		return ModeSpec{Mode: m}
	}
}

// Specs returns the parameter specs of every supported mode.
func Specs() []ModeSpec {
	modes := Modes()
	specs := make([]ModeSpec, 0, len(modes))
	for _, m := range modes {
		specs = append(specs, m.Spec())
	}
	return specs
}
