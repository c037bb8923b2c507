package engine

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tatianab/swim-idle/internal/models"
)

const (
	Title         = "🏊 Swimming Idle Game 🏊"
	Controls      = "Controls: [↑/↓] Select | [Space] Upgrade | [n] New Swimmer | [q] Quit"
	Footer        = " Lengths are your currency: upgrade swimmers or recruit new ones."
	GoodbyeTitle  = "🏊 Thanks for playing Swimming Idle Game! 🏊"
	GoodbyeText   = "Your swimmers will miss you..."
	GoodbyePrompt = "Press any key to exit..."
	LaneDivider   = "· · · · · · · · · · · · · · · · · · · · · · · · · · · · · · ·"
)

var printer = message.NewPrinter(language.English)

// Count formats n with thousands separators.
func Count(n int) string {
	return printer.Sprintf("%d", n)
}

// UpgradeNotice is the message shown after an upgrade attempt.
func UpgradeNotice(s models.Swimmer, ok bool) string {
	if ok {
		return printer.Sprintf("✅ %s upgraded to speed %s!", s.Name, s.DisplaySpeed())
	}
	return printer.Sprintf("❌ Not enough lengths! Need %d more for upgrade.", s.UpgradeShortfall())
}

// RecruitNotice is the message shown after a recruitment attempt.
func RecruitNotice(res RecruitResult) string {
	if res.OK {
		return printer.Sprintf("✅ New swimmer %s joined with speed %s!", res.Swimmer.Name, res.Swimmer.DisplaySpeed())
	}
	return printer.Sprintf("❌ Not enough lengths! Need %d more for a new swimmer.", res.Shortfall)
}

// StatsLine is the per-swimmer summary row.
func StatsLine(s models.Swimmer, selected bool) string {
	marker := " "
	if selected {
		marker = "➤"
	}
	return printer.Sprintf("%s %s | Speed: %s | Lengths: %d | Distance: %d | Next Upgrade: %d lengths",
		marker, s.Name, s.DisplaySpeed(), s.Lengths, s.Progress, s.UpgradeCost)
}

// SwimmerGlyph points the way the swimmer is heading.
func SwimmerGlyph(s models.Swimmer) string {
	if s.Direction == models.Forward {
		return "-→"
	}
	return "←-"
}
