package sim

// mutate replaces each gene of every dot except index 0 with a fresh random
// step, independently with probability rate. Index 0 is the elite and is
// never changed.
func mutate(dots []Dot, rate, stepSize float64, rng Rand) {
	for i := 1; i < len(dots); i++ {
		d := &dots[i]
		for j := range d.genome {
			if rng.Float64() < rate {
				d.setGene(j, randomStep(rng, stepSize))
			}
		}
	}
}
