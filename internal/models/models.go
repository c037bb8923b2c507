package models

// LaneLength is the far end of a lane; positions run from 0 to LaneLength.
const LaneLength = 100

const (
	BaseUpgradeCost       = 10
	BaseUpgradeMultiplier = 1.2
	SpeedPerUpgrade       = 0.5
	MultiplierStep        = 0.02
)

// Direction is the way a swimmer is currently heading along the lane.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// SpeedTier buckets a swimmer's speed for display.
type SpeedTier int

const (
	TierSlow SpeedTier = iota
	TierMedium
	TierFast
)

// Swimmer is a single lane occupant.
type Swimmer struct {
	Name              string
	Speed             float64
	Position          int
	Direction         Direction
	Lengths           int // spendable; the first swimmer pays for recruits and may go negative
	Progress          int // total distance swum
	UpgradeCost       int
	UpgradeMultiplier float64
}

// NameCatalog holds the word lists swimmer names are drawn from.
type NameCatalog struct {
	FirstNames []string `yaml:"first_names"`
	LastNames  []string `yaml:"last_names"`
	Nicknames  []string `yaml:"nicknames"`
}
