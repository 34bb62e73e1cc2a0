package nb2html

import "runtime"

// Worker count bounds for batch rendering.
const (
	// MinWorkers ensures at least one worker is available.
	MinWorkers = 1

	// MaxWorkers caps parallel renders; rendering is CPU bound and a
	// Converter is shared, so more workers than cores gains nothing.
	MaxWorkers = 32
)

// ResolveWorkers determines the number of batch workers.
// Priority: explicit workers > GOMAXPROCS (adjusted by automaxprocs for containers).
// Exported for use by servers and CLIs.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return min(workers, MaxWorkers)
	}

	n := runtime.GOMAXPROCS(0)
	return max(MinWorkers, min(n, MaxWorkers))
}
