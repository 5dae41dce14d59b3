package model

import (
	"vrpbench/pkg/apperror"
)

// Route is one vehicle's itinerary: an ordered sequence of location ids with
// accumulated distance, demand and time totals.
type Route struct {
	VehicleID     int     `json:"vehicle_id"`
	Locations     []int   `json:"locations"`
	TotalDistance float64 `json:"total_distance"`
	TotalDemand   int     `json:"total_demand"`
	TotalTime     float64 `json:"total_time"`
}

// NewRoute creates a Route and validates its invariants: at least one stop
// and non-negative totals.
func NewRoute(vehicleID int, locations []int, distance float64, demand int, totalTime float64) (Route, error) {
	if len(locations) == 0 {
		return Route{}, apperror.New(apperror.CodeEmptyRoute, "route must visit at least one location")
	}
	if distance < 0 {
		return Route{}, apperror.NewWithField(apperror.CodeNegativeDistance, "total distance cannot be negative", "total_distance")
	}
	if demand < 0 {
		return Route{}, apperror.NewWithField(apperror.CodeNegativeDemand, "total demand cannot be negative", "total_demand")
	}
	if totalTime < 0 {
		return Route{}, apperror.NewWithField(apperror.CodeNegativeTime, "total time cannot be negative", "total_time")
	}
	return Route{
		VehicleID:     vehicleID,
		Locations:     locations,
		TotalDistance: distance,
		TotalDemand:   demand,
		TotalTime:     totalTime,
	}, nil
}

// IsValidRoute reports whether the route is structurally valid: at least two
// stops with the first and last both at the depot.
func (r Route) IsValidRoute() bool {
	return len(r.Locations) >= 2 &&
		r.Locations[0] == DepotID &&
		r.Locations[len(r.Locations)-1] == DepotID
}

// CustomerSequence returns the visit order with all depot stops removed.
// This is the sequence used for coverage checks.
func (r Route) CustomerSequence() []int {
	seq := make([]int, 0, len(r.Locations))
	for _, id := range r.Locations {
		if id != DepotID {
			seq = append(seq, id)
		}
	}
	return seq
}
