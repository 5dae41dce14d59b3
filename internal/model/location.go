// Package model defines the value types shared by every part of the
// benchmarking harness: problem instances (locations, vehicles, distance
// matrices) and solver output (routes, solutions).
//
// All types are immutable by convention: they are fully initialised by their
// constructor and never modified afterwards. Constructors enforce the
// structural invariants and return an *apperror.Error when a caller passes
// malformed data — an invariant violation is a caller bug, not a runtime
// condition to recover from.
package model

import (
	"vrpbench/pkg/apperror"
)

// DepotID is the conventional identifier of the depot location. Every route
// starts and ends at the depot.
const DepotID = 0

// DefaultHorizon is the default planning horizon in time units (24 hours in
// seconds), used for open time windows and unbounded route durations.
const DefaultHorizon = 86400

// Location is a point to visit: the depot (id 0) or a customer.
type Location struct {
	ID              int     `json:"id"`
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	Demand          int     `json:"demand"`
	ServiceTime     int     `json:"service_time"`
	TimeWindowStart int     `json:"time_window_start"`
	TimeWindowEnd   int     `json:"time_window_end"`
}

// NewLocation creates a Location and validates its invariants: non-negative
// demand and service time, and a time window that ends after it starts.
func NewLocation(id int, x, y float64, demand, serviceTime, twStart, twEnd int) (Location, error) {
	loc := Location{
		ID:              id,
		X:               x,
		Y:               y,
		Demand:          demand,
		ServiceTime:     serviceTime,
		TimeWindowStart: twStart,
		TimeWindowEnd:   twEnd,
	}
	if err := loc.validate(); err != nil {
		return Location{}, err
	}
	return loc, nil
}

// NewCustomer creates a customer location with an open time window.
func NewCustomer(id int, x, y float64, demand, serviceTime int) (Location, error) {
	return NewLocation(id, x, y, demand, serviceTime, 0, DefaultHorizon)
}

// NewDepot creates the depot location (id 0, zero demand, open window).
func NewDepot(x, y float64) Location {
	return Location{ID: DepotID, X: x, Y: y, TimeWindowEnd: DefaultHorizon}
}

func (l Location) validate() error {
	if l.Demand < 0 {
		return apperror.NewWithField(apperror.CodeNegativeDemand, "demand cannot be negative", "demand")
	}
	if l.ServiceTime < 0 {
		return apperror.NewWithField(apperror.CodeNegativeServiceTime, "service time cannot be negative", "service_time")
	}
	if l.TimeWindowStart < 0 {
		return apperror.NewWithField(apperror.CodeInvalidTimeWindow, "time window start cannot be negative", "time_window_start")
	}
	if l.TimeWindowEnd <= l.TimeWindowStart {
		return apperror.NewWithField(apperror.CodeInvalidTimeWindow, "time window end must be after start", "time_window_end")
	}
	return nil
}

// IsDepot reports whether the location is the depot.
func (l Location) IsDepot() bool {
	return l.ID == DepotID
}

// Vehicle describes one vehicle of the fleet.
type Vehicle struct {
	ID       int `json:"id"`
	Capacity int `json:"capacity"`
	DepotID  int `json:"depot_id"`
	MaxTime  int `json:"max_time"`
}

// NewVehicle creates a Vehicle with positive capacity and route-duration
// budget. The vehicle is stationed at the default depot.
func NewVehicle(id, capacity int) (Vehicle, error) {
	return NewVehicleAt(id, capacity, DepotID, DefaultHorizon)
}

// NewVehicleAt creates a Vehicle with an explicit depot and max route time.
func NewVehicleAt(id, capacity, depotID, maxTime int) (Vehicle, error) {
	if capacity <= 0 {
		return Vehicle{}, apperror.NewWithField(apperror.CodeInvalidCapacity, "vehicle capacity must be positive", "capacity")
	}
	if maxTime <= 0 {
		return Vehicle{}, apperror.NewWithField(apperror.CodeInvalidMaxTime, "max time must be positive", "max_time")
	}
	return Vehicle{ID: id, Capacity: capacity, DepotID: depotID, MaxTime: maxTime}, nil
}
