package seq

import (
	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/exp/slices"
)

// mergeInto transfers every item from src that isn't already reflected in
// dest's version vector, integrating each one as soon as it becomes
// causally ready (§4.10). The missing set is tracked with a mapset.Set
// rather than a hand-rolled slice-dedup, mirroring the set usage the
// teacher's own checkout logic reaches for.
func mergeInto[T any](dest, src *Document[T], algo Algorithm[T]) error {
	missing := mapset.NewSet[int]()
	for idx, it := range src.Content {
		if it.Content == nil {
			continue
		}
		if dest.Version.Contains(it.ID) {
			continue
		}
		missing.Add(idx)
	}

	for missing.Cardinality() > 0 {
		progressed := false

		candidates := missing.ToSlice()
		slices.Sort(candidates)

		for _, idx := range candidates {
			it := src.Content[idx]
			if !CanInsertNow(it, dest) {
				continue
			}
			if err := algo.Integrate(dest, it, -1); err != nil {
				return err
			}
			missing.Remove(idx)
			progressed = true
		}

		if !progressed {
			return errUnresolvableDependency(missing.Cardinality())
		}
	}
	return nil
}
