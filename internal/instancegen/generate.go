// Package instancegen builds synthetic VRP instances for benchmarking and
// tests. All generators are seeded, so the same seed always reproduces the
// same instance.
package instancegen

import (
	"fmt"
	"math"
	"math/rand"

	"vrpbench/internal/model"
)

// Params tunes the generators. Zero values fall back to the defaults set by
// DefaultParams.
type Params struct {
	AreaSize        float64
	NumVehicles     int
	VehicleCapacity int
	DemandMin       int
	DemandMax       int
	ServiceTimeMin  int
	ServiceTimeMax  int
}

// DefaultParams returns the generator defaults: a 100x100 area served by
// three vehicles of capacity 50, with customer demands of 1..20 and service
// times of 5..15.
func DefaultParams() Params {
	return Params{
		AreaSize:        100,
		NumVehicles:     3,
		VehicleCapacity: 50,
		DemandMin:       1,
		DemandMax:       20,
		ServiceTimeMin:  5,
		ServiceTimeMax:  15,
	}
}

func (p *Params) applyDefaults() {
	def := DefaultParams()
	if p.AreaSize <= 0 {
		p.AreaSize = def.AreaSize
	}
	if p.NumVehicles <= 0 {
		p.NumVehicles = def.NumVehicles
	}
	if p.VehicleCapacity <= 0 {
		p.VehicleCapacity = def.VehicleCapacity
	}
	if p.DemandMin <= 0 {
		p.DemandMin = def.DemandMin
	}
	if p.DemandMax < p.DemandMin {
		p.DemandMax = def.DemandMax
	}
	if p.ServiceTimeMin <= 0 {
		p.ServiceTimeMin = def.ServiceTimeMin
	}
	if p.ServiceTimeMax < p.ServiceTimeMin {
		p.ServiceTimeMax = def.ServiceTimeMax
	}
}

// intBetween returns a value in [lo, hi].
func intBetween(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// Sample generates a CVRP instance with customers spread uniformly over the
// area and the depot at its center.
func Sample(name string, numCustomers int, seed int64, params Params) (*model.VRPInstance, error) {
	params.applyDefaults()
	rng := rand.New(rand.NewSource(seed))

	locations := []model.Location{model.NewDepot(params.AreaSize/2, params.AreaSize/2)}
	for i := 1; i <= numCustomers; i++ {
		c, err := model.NewCustomer(i,
			rng.Float64()*params.AreaSize,
			rng.Float64()*params.AreaSize,
			intBetween(rng, params.DemandMin, params.DemandMax),
			intBetween(rng, params.ServiceTimeMin, params.ServiceTimeMax))
		if err != nil {
			return nil, err
		}
		locations = append(locations, c)
	}

	vehicles, err := fleet(params.NumVehicles, params.VehicleCapacity)
	if err != nil {
		return nil, err
	}

	return model.NewInstance(name, locations, vehicles,
		model.BuildDistanceMatrix(locations), model.ProblemCVRP)
}

// Clustered generates a CVRP instance whose customers form numClusters
// groups around random centers. Cluster sizes differ by at most one; the
// first clusters absorb the remainder.
func Clustered(name string, numCustomers, numClusters int, seed int64, params Params) (*model.VRPInstance, error) {
	if numClusters <= 0 {
		return nil, fmt.Errorf("number of clusters must be positive, got %d", numClusters)
	}
	params.applyDefaults()
	rng := rand.New(rand.NewSource(seed))

	const clusterRadius = 15.0

	locations := []model.Location{model.NewDepot(params.AreaSize/2, params.AreaSize/2)}

	centers := make([][2]float64, numClusters)
	for i := range centers {
		centers[i] = [2]float64{
			clusterRadius + rng.Float64()*(params.AreaSize-2*clusterRadius),
			clusterRadius + rng.Float64()*(params.AreaSize-2*clusterRadius),
		}
	}

	perCluster := numCustomers / numClusters
	remainder := numCustomers % numClusters

	id := 1
	for ci, center := range centers {
		size := perCluster
		if ci < remainder {
			size++
		}
		for range size {
			angle := rng.Float64() * 2 * math.Pi
			dist := rng.Float64() * clusterRadius
			x := math.Max(0, math.Min(params.AreaSize, center[0]+dist*math.Cos(angle)))
			y := math.Max(0, math.Min(params.AreaSize, center[1]+dist*math.Sin(angle)))

			c, err := model.NewCustomer(id, x, y,
				intBetween(rng, params.DemandMin, params.DemandMax),
				intBetween(rng, params.ServiceTimeMin, params.ServiceTimeMax))
			if err != nil {
				return nil, err
			}
			locations = append(locations, c)
			id++
		}
	}

	vehicles, err := fleet(params.NumVehicles, params.VehicleCapacity)
	if err != nil {
		return nil, err
	}

	return model.NewInstance(name, locations, vehicles,
		model.BuildDistanceMatrix(locations), model.ProblemCVRP)
}

// Working day bounds in minutes, 08:00 to 18:00.
const (
	dayStart = 480
	dayEnd   = 1080
)

// TimeWindows generates a VRPTW instance: the uniform layout of Sample with
// a one hour service window assigned to every customer, placed randomly
// inside the working day. The depot is open for the whole day.
func TimeWindows(name string, numCustomers int, seed int64, params Params) (*model.VRPInstance, error) {
	params.applyDefaults()
	base, err := Sample(name, numCustomers, seed, params)
	if err != nil {
		return nil, err
	}

	const windowSize = 60
	rng := rand.New(rand.NewSource(seed))

	locations := make([]model.Location, 0, len(base.Locations))
	for _, loc := range base.Locations {
		if loc.ID == model.DepotID {
			loc.TimeWindowStart = dayStart
			loc.TimeWindowEnd = dayEnd
			locations = append(locations, loc)
			continue
		}
		latestStart := dayEnd - windowSize - loc.ServiceTime
		start := intBetween(rng, dayStart, latestStart)
		updated, err := model.NewLocation(loc.ID, loc.X, loc.Y, loc.Demand,
			loc.ServiceTime, start, start+windowSize)
		if err != nil {
			return nil, err
		}
		locations = append(locations, updated)
	}

	return model.NewInstance(name, locations, base.Vehicles,
		base.DistanceMatrix, model.ProblemVRPTW)
}

func fleet(numVehicles, capacity int) ([]model.Vehicle, error) {
	vehicles := make([]model.Vehicle, 0, numVehicles)
	for i := range numVehicles {
		v, err := model.NewVehicle(i+1, capacity)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, nil
}
