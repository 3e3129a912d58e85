package flow

import "github.com/aryarajalves/zapflow/pkg/domain"

func weightSum(paths []domain.RandomizerPath) int {
	sum := 0
	for _, p := range paths {
		sum += p.Percent
	}
	return sum
}

// DistributeEvenly returns the percentages of an explicit "distribute
// evenly" action over n paths: base = floor(100/n) per path, with the whole
// remainder added to the first. This is a user action, never an implicit
// correction of unbalanced weights.
func DistributeEvenly(n int) []int {
	if n <= 0 {
		return nil
	}
	base := 100 / n
	out := make([]int, n)
	for i := range out {
		out[i] = base
	}
	out[0] += 100 - base*n
	return out
}

// Distribute applies DistributeEvenly to a randomizer's paths, returning a
// new path slice with rewritten percentages.
func Distribute(cfg domain.RandomizerConfig) domain.RandomizerConfig {
	percents := DistributeEvenly(len(cfg.Paths))
	out := domain.RandomizerConfig{Paths: make([]domain.RandomizerPath, len(cfg.Paths))}
	copy(out.Paths, cfg.Paths)
	for i := range out.Paths {
		out.Paths[i].Percent = percents[i]
	}
	return out
}
