package schedule

import "strings"

// StationName resolves a station code to its display name, falling back to
// the code itself so an unknown code still renders.
func StationName(code string) string {
	if name, ok := registry.Stations[code]; ok {
		return name
	}

	return code
}

// StationsFor resolves a route code to its ordered station sequence.
//
// A stored forward segment is returned verbatim. A code of the form X-NS
// where NS-X is stored is derived by reversing the forward sequence -
// return workings are never stored separately. Any other code returns nil,
// which callers must treat as "topology unknown" rather than an error:
// counting can still proceed on a manually supplied station list.
//
// The returned slice is always a copy; the underlying tables never mutate.
func StationsFor(routeCode string) []string {
	if sequence, ok := registry.Sequences[routeCode]; ok {
		stations := make([]string, len(sequence))
		copy(stations, sequence)

		return stations
	}

	parts := strings.SplitN(routeCode, "-", 2)
	if len(parts) == 2 {
		forward := parts[1] + "-" + parts[0]

		if sequence, ok := registry.Sequences[forward]; ok {
			stations := make([]string, len(sequence))
			for i, code := range sequence {
				stations[len(sequence)-1-i] = code
			}

			return stations
		}
	}

	return nil
}
