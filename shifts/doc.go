/*
Package shifts expands cyclic shift rotations into concrete calendar
occurrences.

A rotation describes a repeating cycle of CycleWeeks weeks, each slot pinned
to a (week index, weekday) position with a wall-clock time range. An
assignment anchors the cycle to a user and a start date. Expanding a window
walks every day once per assignment and emits an occurrence for each
matching slot:

	expander := shifts.NewExpander(directory, logger)
	occurrences := expander.Expand(rotations, settings, shifts.DefaultWindow(time.Now()))

Expansion is pure and deterministic: the same rotations, settings and window
always produce byte-identical occurrence ids and timestamps, so callers may
re-expand on every sync tick and diff results. The optional Cache memoizes
results under that guarantee:

	cache := shifts.NewCache(shifts.DefaultCacheConfig)
	defer cache.Close()
	occurrences = expander.ExpandCached(cache, rotations, settings, window)
*/
package shifts
