package model

import (
	"math"

	"vrpbench/pkg/apperror"
)

// Problem type tags. The vocabulary is open: solvers declare which tags they
// support and the registry filters on exact (case-insensitive) match.
const (
	ProblemCVRP  = "CVRP"  // capacitated VRP
	ProblemVRPTW = "VRPTW" // capacitated VRP with time windows
)

// VRPInstance is a complete, named problem definition. The instance name is
// its identity within a harness session: loading a second instance under the
// same name replaces the first.
//
// Instances are shared read-only across all solvers invoked on them and must
// not be mutated after construction.
type VRPInstance struct {
	Name           string      `json:"name"`
	Locations      []Location  `json:"locations"`
	Vehicles       []Vehicle   `json:"vehicles"`
	DistanceMatrix [][]float64 `json:"distance_matrix"`
	ProblemType    string      `json:"problem_type"`
}

// NewInstance creates a VRPInstance and validates the structural invariants:
// non-empty locations and vehicles, a square distance matrix whose size
// matches the location count, and a zero diagonal.
func NewInstance(name string, locations []Location, vehicles []Vehicle, matrix [][]float64, problemType string) (*VRPInstance, error) {
	if len(locations) == 0 {
		return nil, apperror.ErrEmptyInstance
	}
	if len(vehicles) == 0 {
		return nil, apperror.ErrNoVehicles
	}

	n := len(locations)
	if len(matrix) != n {
		return nil, apperror.Newf(apperror.CodeMatrixSizeMismatch,
			"distance matrix size %d does not match number of locations %d", len(matrix), n)
	}
	for i, row := range matrix {
		if len(row) != n {
			return nil, apperror.Newf(apperror.CodeMatrixSizeMismatch,
				"distance matrix row %d has size %d, want %d", i, len(row), n)
		}
		if row[i] != 0 {
			return nil, apperror.Newf(apperror.CodeNonZeroDiagonal,
				"distance from location %d to itself must be 0, got %v", i, row[i])
		}
	}

	if problemType == "" {
		problemType = ProblemCVRP
	}

	return &VRPInstance{
		Name:           name,
		Locations:      locations,
		Vehicles:       vehicles,
		DistanceMatrix: matrix,
		ProblemType:    problemType,
	}, nil
}

// NumCustomers returns the number of customers (locations excluding the depot).
func (in *VRPInstance) NumCustomers() int {
	return len(in.Locations) - 1
}

// TotalDemand returns the summed demand of all customer locations.
func (in *VRPInstance) TotalDemand() int {
	total := 0
	for _, loc := range in.Locations {
		if !loc.IsDepot() {
			total += loc.Demand
		}
	}
	return total
}

// FleetCapacity returns the summed capacity of all vehicles.
func (in *VRPInstance) FleetCapacity() int {
	total := 0
	for _, v := range in.Vehicles {
		total += v.Capacity
	}
	return total
}

// HasDepot reports whether a location with the depot id is present.
func (in *VRPInstance) HasDepot() bool {
	for _, loc := range in.Locations {
		if loc.IsDepot() {
			return true
		}
	}
	return false
}

// VehicleByID returns the vehicle with the given id, or false when the fleet
// does not contain it.
func (in *VRPInstance) VehicleByID(id int) (Vehicle, bool) {
	for _, v := range in.Vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return Vehicle{}, false
}

// EuclideanDistance returns the straight-line distance between two locations.
func EuclideanDistance(a, b Location) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// BuildDistanceMatrix computes the full Euclidean distance matrix for a set
// of locations. The diagonal is zero by construction.
func BuildDistanceMatrix(locations []Location) [][]float64 {
	n := len(locations)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
		for j := range matrix[i] {
			if i != j {
				matrix[i][j] = EuclideanDistance(locations[i], locations[j])
			}
		}
	}
	return matrix
}

// RouteDistance sums the matrix distances along a visit sequence.
// Sequences with fewer than two stops have zero distance.
func RouteDistance(stops []int, matrix [][]float64) float64 {
	if len(stops) < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < len(stops)-1; i++ {
		total += matrix[stops[i]][stops[i+1]]
	}
	return total
}
