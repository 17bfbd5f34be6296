// Package spawning turns a capped level and a floor number into a
// difficulty budget and a concrete enemy selection that fits it.
package spawning

import "sort"

// Kind identifies an enemy type.
type Kind string

// Built-in enemy kinds, cheapest first. Configs may add more.
const (
	KindBlue   Kind = "blue"
	KindYellow Kind = "yellow"
	KindGreen  Kind = "green"
	KindRed    Kind = "red"
)

// Weights maps enemy kinds to their relative spawn probability.
type Weights map[Kind]float64

// Total returns the sum of all weights.
func (w Weights) Total() float64 {
	total := 0.0
	for _, v := range w {
		total += v
	}
	return total
}

// Kinds returns the kinds present in the table, sorted by name.
func (w Weights) Kinds() []Kind {
	kinds := make([]Kind, 0, len(w))
	for k := range w {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Share returns the normalized probability of a kind (0 if the table is empty).
func (w Weights) Share(k Kind) float64 {
	total := w.Total()
	if total <= 0 {
		return 0
	}
	return w[k] / total
}

// Count tallies a selection by kind.
func Count(enemies []Kind) map[Kind]int {
	counts := make(map[Kind]int)
	for _, e := range enemies {
		counts[e]++
	}
	return counts
}
