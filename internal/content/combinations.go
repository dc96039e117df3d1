package content

import "iter"

// Combination is one (service, area, template) triple and its position in
// enumeration order.
type Combination[S, A, T any] struct {
	Index    int
	Service  S
	Area     A
	Template T
}

// Product yields the cartesian product with services outermost and templates
// innermost. The sequence is lazy and can be ranged over any number of times.
func Product[S, A, T any](services []S, areas []A, templates []T) iter.Seq[Combination[S, A, T]] {
	return func(yield func(Combination[S, A, T]) bool) {
		idx := 0
		for _, s := range services {
			for _, a := range areas {
				for _, t := range templates {
					if !yield(Combination[S, A, T]{Index: idx, Service: s, Area: a, Template: t}) {
						return
					}
					idx++
				}
			}
		}
	}
}

// Count is the number of combinations Product will yield.
func Count(services, areas, templates int) int {
	return services * areas * templates
}
