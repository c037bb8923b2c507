package models

import (
	"math"
	"strconv"
)

// NewSwimmer returns a swimmer at the start of its lane, heading forward.
func NewSwimmer(name string, speed float64) *Swimmer {
	return &Swimmer{
		Name:              name,
		Speed:             speed,
		Direction:         Forward,
		UpgradeCost:       BaseUpgradeCost,
		UpgradeMultiplier: BaseUpgradeMultiplier,
	}
}

// Stroke is the distance covered in one tick: the speed rounded half away
// from zero.
func (s *Swimmer) Stroke() int {
	return int(math.Round(s.Speed))
}

// Swim advances the swimmer by one tick. Reaching either wall clamps the
// position to it, counts one length and turns the swimmer around.
func (s *Swimmer) Swim() {
	d := s.Stroke()
	s.Progress += d

	if s.Direction == Forward {
		s.Position += d
		if s.Position >= LaneLength {
			s.Position = LaneLength
			s.Lengths++
			s.Direction = Backward
		}
		return
	}

	if s.Position <= d {
		s.Position = 0
		s.Lengths++
		s.Direction = Forward
		return
	}
	s.Position -= d
}

// Upgrade spends UpgradeCost lengths on extra speed. It reports false and
// leaves the swimmer untouched when there are not enough lengths.
func (s *Swimmer) Upgrade() bool {
	if s.Lengths < s.UpgradeCost {
		return false
	}

	s.Lengths -= s.UpgradeCost
	s.Speed += SpeedPerUpgrade
	s.UpgradeCost = int(float64(s.UpgradeCost) * s.UpgradeMultiplier)
	s.UpgradeMultiplier += MultiplierStep
	return true
}

// UpgradeShortfall is how many more lengths the next upgrade needs.
func (s *Swimmer) UpgradeShortfall() int {
	if s.Lengths >= s.UpgradeCost {
		return 0
	}
	return s.UpgradeCost - s.Lengths
}

// DisplaySpeed formats the speed with one decimal place.
func (s *Swimmer) DisplaySpeed() string {
	return strconv.FormatFloat(s.Speed, 'f', 1, 64)
}

func (s *Swimmer) Tier() SpeedTier {
	switch whole := int(s.Speed); {
	case whole <= 1:
		return TierSlow
	case whole <= 3:
		return TierMedium
	default:
		return TierFast
	}
}

// LaneOffset maps the position onto a lane drawn width cells wide.
func (s *Swimmer) LaneOffset(width int) int {
	if width <= 0 {
		return 0
	}
	return s.Position * width / LaneLength
}
