package analysis

import (
	"fmt"
	"sort"

	"vrpbench/internal/model"
)

// ValidateFeasibility checks a solution against its instance and returns
// whether it is feasible plus a list of human-readable issues. The issue
// order is deterministic: per-route problems in route order, then customer
// coverage problems in ascending id order.
//
// A failure sentinel is never feasible and short-circuits all other checks.
func ValidateFeasibility(inst *model.VRPInstance, sol *model.VRPSolution) (bool, []string) {
	if inst == nil {
		return false, []string{"no instance to validate against"}
	}
	if sol == nil {
		return false, []string{"no solution to validate"}
	}
	if sol.IsError() {
		return false, []string{fmt.Sprintf("solution has %s status", model.StatusError)}
	}

	known := make(map[int]bool, len(inst.Locations))
	demand := make(map[int]int, len(inst.Locations))
	for _, loc := range inst.Locations {
		known[loc.ID] = true
		demand[loc.ID] = loc.Demand
	}

	var issues []string
	visits := make(map[int]int)

	for i, route := range sol.Routes {
		label := i + 1

		if !route.IsValidRoute() {
			issues = append(issues, fmt.Sprintf("route %d does not start and end at the depot", label))
		}

		veh, ok := inst.VehicleByID(route.VehicleID)
		if !ok {
			issues = append(issues, fmt.Sprintf("route %d uses unknown vehicle %d", label, route.VehicleID))
		}

		load := 0
		inRoute := make(map[int]int)
		for _, id := range route.CustomerSequence() {
			if !known[id] {
				issues = append(issues, fmt.Sprintf("route %d visits unknown location %d", label, id))
				continue
			}
			visits[id]++
			inRoute[id]++
			load += demand[id]
		}

		var repeated []int
		for id, n := range inRoute {
			if n > 1 {
				repeated = append(repeated, id)
			}
		}
		sort.Ints(repeated)
		for _, id := range repeated {
			issues = append(issues, fmt.Sprintf("route %d visits customer %d %d times", label, id, inRoute[id]))
		}

		if ok && route.TotalDemand > veh.Capacity {
			issues = append(issues, fmt.Sprintf("route %d demand %d exceeds vehicle %d capacity %d",
				label, route.TotalDemand, veh.ID, veh.Capacity))
		}
		// The declared demand is authoritative; the recomputed load catches
		// routes whose declared figure understates what they actually carry.
		if ok && load > veh.Capacity && load != route.TotalDemand {
			issues = append(issues, fmt.Sprintf("route %d load %d exceeds vehicle %d capacity %d",
				label, load, veh.ID, veh.Capacity))
		}
	}

	var missing, duplicated []int
	for _, loc := range inst.Locations {
		if loc.IsDepot() {
			continue
		}
		switch n := visits[loc.ID]; {
		case n == 0:
			missing = append(missing, loc.ID)
		case n > 1:
			duplicated = append(duplicated, loc.ID)
		}
	}
	sort.Ints(missing)
	sort.Ints(duplicated)
	for _, id := range missing {
		issues = append(issues, fmt.Sprintf("customer %d is not visited", id))
	}
	for _, id := range duplicated {
		issues = append(issues, fmt.Sprintf("customer %d is visited %d times", id, visits[id]))
	}

	return len(issues) == 0, issues
}
