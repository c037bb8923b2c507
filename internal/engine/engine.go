package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tatianab/swim-idle/internal/models"
)

// Economy holds the tunable numbers behind recruiting.
type Economy struct {
	StartingSpeed      float64
	RecruitSpeed       float64
	RecruitUpgradeCost int
	NewSwimmerCost     int
	NewSwimmerGrowth   float64
}

func DefaultEconomy() Economy {
	return Economy{
		StartingSpeed:      0.7,
		RecruitSpeed:       0.7,
		RecruitUpgradeCost: 10,
		NewSwimmerCost:     25,
		NewSwimmerGrowth:   1.5,
	}
}

func (e Economy) Validate() error {
	switch {
	case e.StartingSpeed <= 0 || e.RecruitSpeed <= 0:
		return fmt.Errorf("swimmer speeds must be positive")
	case e.RecruitUpgradeCost < 1:
		return fmt.Errorf("recruit upgrade cost must be at least 1, got %d", e.RecruitUpgradeCost)
	case e.NewSwimmerCost < 1:
		return fmt.Errorf("new swimmer cost must be at least 1, got %d", e.NewSwimmerCost)
	case e.NewSwimmerGrowth < 1:
		return fmt.Errorf("new swimmer growth must be at least 1, got %v", e.NewSwimmerGrowth)
	}
	return nil
}

// NameSource hands out names for new swimmers.
type NameSource interface {
	GenerateName() string
}

// RecruitResult describes a recruitment attempt.
type RecruitResult struct {
	OK bool
	// Swimmer is the new swimmer on success and the first swimmer, which
	// pays for recruits, on failure.
	Swimmer models.Swimmer
	// Cost is the price that was asked.
	Cost int
	// Shortfall is what the first swimmer still lacks on failure.
	Shortfall int
}

// Session owns every swimmer and the economy counters. It is not safe for
// concurrent use; the loop is its only caller.
type Session struct {
	swimmers       []*models.Swimmer
	selected       int
	newSwimmerCost int
	economy        Economy
	names          NameSource
	log            *zap.Logger
}

// NewSession starts a session with one swimmer.
func NewSession(names NameSource, economy Economy, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	first := models.NewSwimmer(names.GenerateName(), economy.StartingSpeed)
	log.Info("session started", zap.String("swimmer", first.Name))
	return &Session{
		swimmers:       []*models.Swimmer{first},
		newSwimmerCost: economy.NewSwimmerCost,
		economy:        economy,
		names:          names,
		log:            log,
	}
}

func (s *Session) Len() int { return len(s.swimmers) }

func (s *Session) Selected() int { return s.selected }

func (s *Session) NewSwimmerCost() int { return s.newSwimmerCost }

// Swimmer returns a copy of the swimmer at i.
func (s *Session) Swimmer(i int) models.Swimmer { return *s.swimmers[i] }

func (s *Session) TotalLengths() int {
	total := 0
	for _, sw := range s.swimmers {
		total += sw.Lengths
	}
	return total
}

// Tick advances every swimmer by one step.
func (s *Session) Tick() {
	for _, sw := range s.swimmers {
		sw.Swim()
	}
}

func (s *Session) SelectPrevious() {
	if s.selected > 0 {
		s.selected--
	}
}

func (s *Session) SelectNext() {
	if s.selected < len(s.swimmers)-1 {
		s.selected++
	}
}

// UpgradeSelected tries to upgrade the selected swimmer and returns it as it
// is afterwards.
func (s *Session) UpgradeSelected() (models.Swimmer, bool) {
	sw := s.swimmers[s.selected]
	cost := sw.UpgradeCost
	ok := sw.Upgrade()
	if ok {
		s.log.Info("swimmer upgraded",
			zap.String("swimmer", sw.Name),
			zap.Int("cost", cost),
			zap.Float64("speed", sw.Speed),
			zap.Int("next_cost", sw.UpgradeCost))
	} else {
		s.log.Debug("upgrade refused",
			zap.String("swimmer", sw.Name),
			zap.Int("shortfall", sw.UpgradeShortfall()))
	}
	return *sw, ok
}

// RecruitSwimmer buys a new swimmer when the lengths of all swimmers
// together cover the price. The price is always charged to the first
// swimmer alone, so its balance can drop below zero when the others paid
// for most of it.
func (s *Session) RecruitSwimmer() RecruitResult {
	cost := s.newSwimmerCost
	payer := s.swimmers[0]

	if s.TotalLengths() < cost {
		res := RecruitResult{
			Swimmer:   *payer,
			Cost:      cost,
			Shortfall: cost - payer.Lengths,
		}
		s.log.Debug("recruit refused", zap.Int("cost", cost), zap.Int("shortfall", res.Shortfall))
		return res
	}

	payer.Lengths -= cost
	recruit := models.NewSwimmer(s.names.GenerateName(), s.economy.RecruitSpeed)
	recruit.UpgradeCost = s.economy.RecruitUpgradeCost
	s.swimmers = append(s.swimmers, recruit)
	s.newSwimmerCost = int(float64(cost) * s.economy.NewSwimmerGrowth)

	s.log.Info("swimmer recruited",
		zap.String("swimmer", recruit.Name),
		zap.Int("cost", cost),
		zap.Int("next_cost", s.newSwimmerCost),
		zap.Int("swimmers", len(s.swimmers)))
	return RecruitResult{OK: true, Swimmer: *recruit, Cost: cost}
}

// Snapshot copies the state a renderer needs.
func (s *Session) Snapshot() Snapshot {
	swimmers := make([]models.Swimmer, len(s.swimmers))
	for i, sw := range s.swimmers {
		swimmers[i] = *sw
	}
	return Snapshot{
		Swimmers:       swimmers,
		Selected:       s.selected,
		NewSwimmerCost: s.newSwimmerCost,
	}
}
