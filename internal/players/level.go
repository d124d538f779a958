package players

import "fmt"

// LevelDescription renders a 1-10 skill level as the label shown next to a
// player. Out-of-range values fall back to the mid-level label.
func LevelDescription(level int) string {
	labels := map[int]string{
		1:  "Muy Bajo",
		2:  "Bajo",
		3:  "Bajo/Medio",
		4:  "Medio",
		5:  "Medio/Alto",
		6:  "Alto",
		7:  "Muy Alto",
		8:  "Experto",
		9:  "Profesional",
		10: "Profesional Experto",
	}
	label, ok := labels[level]
	if !ok {
		return "5 (Medio/Alto)"
	}
	return fmt.Sprintf("%d (%s)", level, label)
}
