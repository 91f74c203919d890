package partials

// Select picks the overload a reference resolves to. Overloads are scanned
// from the most recently registered to the oldest and the first eligible one
// wins. A candidate is eligible when it declares no parameters, when its
// parameter count equals the argument count, or when every parameter it
// declares is either supplied by args or has a default. The returned index
// points into overloads.
func Select(overloads []Definition, args []Param) (Definition, int, bool) {
	supplied := make(map[string]struct{}, len(args))
	for _, arg := range args {
		supplied[arg.Name] = struct{}{}
	}

	for idx := len(overloads) - 1; idx >= 0; idx-- {
		candidate := overloads[idx]
		if len(candidate.Params) == 0 || len(candidate.Params) == len(args) {
			return candidate, idx, true
		}
		if len(freeParams(candidate.Params, supplied)) == 0 {
			return candidate, idx, true
		}
	}
	return Definition{}, -1, false
}

// freeParams returns the parameters that have no default and are not named
// by the call.
func freeParams(params []Param, supplied map[string]struct{}) []Param {
	var free []Param
	for _, p := range params {
		if p.HasValue() {
			continue
		}
		if _, ok := supplied[p.Name]; ok {
			continue
		}
		free = append(free, p)
	}
	return free
}
