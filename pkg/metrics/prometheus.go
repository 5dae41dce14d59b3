package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics глобальный контейнер метрик бенчмарка
type Metrics struct {
	// Метрики решений
	SolveTotal       *prometheus.CounterVec
	SolveDuration    *prometheus.HistogramVec
	SolutionDistance *prometheus.GaugeVec

	// Метрики прогонов
	BenchmarkRunsTotal prometheus.Counter
	InstanceCustomers  *prometheus.HistogramVec

	// Метрики кэша решений
	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter

	// Информация о приложении
	BuildInfo *prometheus.GaugeVec
}

var defaultMetrics *Metrics

// InitMetrics инициализирует метрики в глобальном регистре
func InitMetrics(namespace, subsystem string) *Metrics {
	defaultMetrics = InitMetricsWith(prometheus.DefaultRegisterer, namespace, subsystem)
	return defaultMetrics
}

// InitMetricsWith инициализирует метрики в переданном регистре
func InitMetricsWith(reg prometheus.Registerer, namespace, subsystem string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		SolveTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solve_total",
				Help:      "Total number of solve attempts",
			},
			[]string{"solver", "status"},
		),

		SolveDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solve_duration_seconds",
				Help:      "Duration of solve attempts",
				Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 300},
			},
			[]string{"solver"},
		),

		SolutionDistance: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solution_distance",
				Help:      "Total distance of the last solution per solver and instance",
			},
			[]string{"solver", "instance"},
		),

		BenchmarkRunsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "benchmark_runs_total",
				Help:      "Total number of benchmark runs",
			},
		),

		InstanceCustomers: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "instance_customers",
				Help:      "Number of customers in benchmarked instances",
				Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000},
			},
			[]string{"problem_type"},
		),

		CacheHitsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cache_hits_total",
				Help:      "Total number of solution cache hits",
			},
		),

		CacheMissesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cache_misses_total",
				Help:      "Total number of solution cache misses",
			},
		),

		BuildInfo: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "build_info",
				Help:      "Application build information",
			},
			[]string{"version", "environment"},
		),
	}
}

// Get возвращает глобальные метрики
func Get() *Metrics {
	if defaultMetrics == nil {
		return InitMetrics("vrpbench", "")
	}
	return defaultMetrics
}

// RecordSolve записывает результат одной попытки решения
func (m *Metrics) RecordSolve(solverName string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "error"
	}

	m.SolveTotal.WithLabelValues(solverName, status).Inc()
	m.SolveDuration.WithLabelValues(solverName).Observe(duration.Seconds())
}

// RecordSolution записывает качество решения
func (m *Metrics) RecordSolution(solverName, instanceName string, distance float64) {
	m.SolutionDistance.WithLabelValues(solverName, instanceName).Set(distance)
}

// RecordInstance записывает размер экземпляра
func (m *Metrics) RecordInstance(problemType string, customers int) {
	m.InstanceCustomers.WithLabelValues(problemType).Observe(float64(customers))
}

// RecordCacheLookup записывает обращение к кэшу решений
func (m *Metrics) RecordCacheLookup(hit bool) {
	if hit {
		m.CacheHitsTotal.Inc()
	} else {
		m.CacheMissesTotal.Inc()
	}
}

// SetBuildInfo устанавливает информацию о сборке
func (m *Metrics) SetBuildInfo(version, environment string) {
	m.BuildInfo.WithLabelValues(version, environment).Set(1)
}
