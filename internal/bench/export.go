package bench

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strconv"
	"time"

	"vrpbench/internal/model"
	"vrpbench/pkg/apperror"
)

// exportMetadata describes the state of the harness at export time.
type exportMetadata struct {
	ExportTime       float64  `json:"export_time"`
	NumResults       int      `json:"num_results"`
	NumInstances     int      `json:"num_instances"`
	AvailableSolvers []string `json:"available_solvers"`
}

// exportFile is the on-disk shape of an export. Instances are optional;
// results carry their own JSON encoding, so infinite sentinel distances
// survive the round trip as the string "Infinity".
type exportFile struct {
	Metadata  exportMetadata                `json:"metadata"`
	Results   []*model.VRPSolution          `json:"results"`
	Instances map[string]*model.VRPInstance `json:"instances,omitempty"`
}

// ExportResults writes the accumulated result log, and optionally the
// instance catalog, to path as JSON.
func (h *Harness) ExportResults(path string, includeInstances bool) error {
	h.mu.Lock()
	results := make([]*model.VRPSolution, len(h.results))
	copy(results, h.results)
	var instances map[string]*model.VRPInstance
	if includeInstances {
		instances = make(map[string]*model.VRPInstance, len(h.instances))
		for name, inst := range h.instances {
			instances[name] = inst
		}
	}
	numInstances := len(h.instances)
	h.mu.Unlock()

	file := exportFile{
		Metadata: exportMetadata{
			ExportTime:       float64(time.Now().UnixMilli()) / 1000,
			NumResults:       len(results),
			NumInstances:     numInstances,
			AvailableSolvers: h.registry.Available(),
		},
		Results:   results,
		Instances: instances,
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternal, "failed to encode results")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperror.Wrap(err, apperror.CodeIOError, "failed to write export file")
	}

	h.log.Info("results exported",
		"path", path,
		"results", len(results),
		"instances", numInstances,
		"include_instances", includeInstances)
	return nil
}

// ImportResults reads a file written by ExportResults and appends its
// contents to the harness: results are appended to the log, instances are
// merged into the catalog last-write-wins. It returns the number of imported
// results.
func (h *Harness) ImportResults(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, apperror.Wrap(err, apperror.CodeIOError, "failed to read import file")
	}

	var file exportFile
	if err := json.Unmarshal(data, &file); err != nil {
		return 0, apperror.Wrap(err, apperror.CodeBadFormat, "failed to parse import file")
	}

	h.mu.Lock()
	h.results = append(h.results, file.Results...)
	for name, inst := range file.Instances {
		h.instances[name] = inst
	}
	h.mu.Unlock()

	h.log.Info("results imported",
		"path", path,
		"results", len(file.Results),
		"instances", len(file.Instances))
	return len(file.Results), nil
}

// ExportCSV writes one row per accumulated solution. Infinite sentinel
// distances come out as "+Inf", which is what strconv produces and what the
// import side of the CSV tooling accepts.
func (h *Harness) ExportCSV(path string) error {
	results := h.Results()

	f, err := os.Create(path)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeIOError, "failed to create csv file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"solver_name", "instance_name", "total_distance", "num_routes", "solve_time", "status", "objective_value"}
	if err := w.Write(header); err != nil {
		return apperror.Wrap(err, apperror.CodeIOError, "failed to write csv header")
	}
	for _, sol := range results {
		row := []string{
			sol.SolverName,
			sol.InstanceName,
			strconv.FormatFloat(sol.TotalDistance, 'f', -1, 64),
			strconv.Itoa(len(sol.Routes)),
			strconv.FormatFloat(sol.SolveTime, 'f', -1, 64),
			sol.Status,
			strconv.FormatFloat(sol.ObjectiveValue, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return apperror.Wrap(err, apperror.CodeIOError, "failed to write csv row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return apperror.Wrap(err, apperror.CodeIOError, "failed to flush csv file")
	}

	h.log.Info("results exported to csv", "path", path, "rows", len(results))
	return nil
}
