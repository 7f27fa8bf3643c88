package popdyn

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"harvestsim/internal/model"
)

// Mode selects the policy that converts raw harvest parameters into
// post-harvest survivor counts.
type Mode string

const (
	ModeConstantQuota Mode = "constant_quota"
	ModeProportional  Mode = "proportional"
	ModeSelective     Mode = "selective"
)

// ErrUnknownMode reports a mode outside the closed enumeration. Unknown modes
// are a configuration error and are rejected at selection time.
var ErrUnknownMode = errors.New("unknown harvest mode")

// Modes lists the supported harvest modes in presentation order.
func Modes() []Mode {
	return []Mode{ModeConstantQuota, ModeProportional, ModeSelective}
}

func ParseMode(s string) (Mode, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "constant_quota", "constant-quota", "quota":
		return ModeConstantQuota, nil
	case "proportional", "uniform":
		return ModeProportional, nil
	case "selective", "age_specific", "age-specific":
		return ModeSelective, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

func (m Mode) Valid() bool {
	switch m {
	case ModeConstantQuota, ModeProportional, ModeSelective:
		return true
	default:
		return false
	}
}

func (m Mode) String() string { return string(m) }

// Params are the three raw harvest inputs. Their meaning depends on the mode:
// absolute counts for constant quota, a single global rate in slot 0 for
// proportional, per-stage rates for selective.
type Params [3]float64

// Clamp restricts params to the mode's valid domain. Every boundary this
// repository controls clamps before invoking the model; the model itself does
// not re-validate.
func (m Mode) Clamp(p Params) Params {
	for i := range p {
		if p[i] < 0 {
			p[i] = 0
		}
		// Quotas are absolute counts with no intrinsic upper bound.
		if m != ModeConstantQuota && p[i] > 1 {
			p[i] = 1
		}
	}
	return p
}

// Harvest pairs a mode with clamped parameters. Construct via NewHarvest so
// invalid modes fail fast and params are always in domain.
type Harvest struct {
	Mode   Mode
	Params Params
}

func NewHarvest(mode Mode, params Params) (Harvest, error) {
	if !mode.Valid() {
		return Harvest{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	return Harvest{Mode: mode, Params: mode.Clamp(params)}, nil
}

// NoHarvest is the zero-parameter policy under the given mode. All modes are
// equivalent at zero harvest.
func NoHarvest(mode Mode) Harvest {
	return Harvest{Mode: mode}
}

// Model applies a harvest policy and the fixed demographic transition to a
// stage vector. Pure: methods keep no mutable state and have no side effects.
type Model struct {
	Bio model.Biology
}

func New(bio model.Biology) Model {
	return Model{Bio: bio}
}

// Advance computes next year's stage vector: harvest survivors first, then
// the linear fecundity/survival projection. Population counts never go below
// zero for in-domain parameters.
func (m Model) Advance(v model.StageVector, h Harvest) model.StageVector {
	s := survivors(v, h)
	f := m.Bio.Fecundity
	tr := m.Bio.Survival
	return model.StageVector{
		Juveniles: s.Juveniles*f.Juvenile + s.SubAdults*f.SubAdult + s.Adults*f.Adult,
		SubAdults: s.Juveniles * tr.JuvenileToSubAdult,
		Adults:    s.SubAdults*tr.SubAdultToAdult + s.Adults*tr.AdultRemain,
	}
}

// survivors applies the harvest policy. Unknown modes never reach here
// (NewHarvest rejects them); the default branch leaves the population
// unharvested.
func survivors(v model.StageVector, h Harvest) model.StageVector {
	p := h.Params
	switch h.Mode {
	case ModeConstantQuota:
		return model.StageVector{
			Juveniles: math.Max(0, v.Juveniles-p[0]),
			SubAdults: math.Max(0, v.SubAdults-p[1]),
			Adults:    math.Max(0, v.Adults-p[2]),
		}
	case ModeProportional:
		// Single global rate in slot 0; slots 1 and 2 are ignored.
		r := p[0]
		return model.StageVector{
			Juveniles: v.Juveniles * (1 - r),
			SubAdults: v.SubAdults * (1 - r),
			Adults:    v.Adults * (1 - r),
		}
	case ModeSelective:
		return model.StageVector{
			Juveniles: v.Juveniles * (1 - p[0]),
			SubAdults: v.SubAdults * (1 - p[1]),
			Adults:    v.Adults * (1 - p[2]),
		}
	default:
		return v
	}
}
