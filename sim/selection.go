package sim

// rouletteSelect draws r in [0, sum) and returns the first index whose
// running fitness total exceeds r. If rounding leaves the walk short of r,
// the last index is returned.
func rouletteSelect(fitnesses []float64, sum float64, rng Rand) int {
	r := rng.Float64() * sum
	var running float64
	for i, f := range fitnesses {
		running += f
		if running > r {
			return i
		}
	}
	return len(fitnesses) - 1
}
