package cmd

import (
	"github.com/prometheus/client_golang/prometheus"
)

// runMetrics holds the per-configuration gauges exported after a run.
type runMetrics struct {
	makespan       *prometheus.GaugeVec
	avgTurnaround  *prometheus.GaugeVec
	avgWaiting     *prometheus.GaugeVec
	idleTicks      *prometheus.GaugeVec
	cpuUtilization *prometheus.GaugeVec
	jobTurnaround  *prometheus.GaugeVec
	jobWaiting     *prometheus.GaugeVec
	failedRuns     prometheus.Counter
}

func newRunMetrics() *runMetrics {
	byQuanta := []string{"quanta"}
	byJob := []string{"quanta", "job"}
	return &runMetrics{
		makespan: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "mlfq_makespan_ticks",
			Help: "Final simulated clock value",
		}, byQuanta),
		avgTurnaround: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "mlfq_avg_turnaround_ticks",
			Help: "Mean job turnaround time",
		}, byQuanta),
		avgWaiting: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "mlfq_avg_waiting_ticks",
			Help: "Mean job waiting time",
		}, byQuanta),
		idleTicks: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "mlfq_idle_ticks",
			Help: "Ticks with no runnable job",
		}, byQuanta),
		cpuUtilization: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "mlfq_cpu_utilization_ratio",
			Help: "Busy ticks divided by makespan",
		}, byQuanta),
		jobTurnaround: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "mlfq_job_turnaround_ticks",
			Help: "Turnaround time per job",
		}, byJob),
		jobWaiting: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "mlfq_job_waiting_ticks",
			Help: "Waiting time per job",
		}, byJob),
		failedRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mlfq_failed_runs_total",
			Help: "Configurations that ended in an error",
		}),
	}
}

func (m *runMetrics) register(reg prometheus.Registerer) {
	reg.MustRegister(
		m.makespan,
		m.avgTurnaround,
		m.avgWaiting,
		m.idleTicks,
		m.cpuUtilization,
		m.jobTurnaround,
		m.jobWaiting,
		m.failedRuns,
	)
}

func (m *runMetrics) observe(rep runReport) {
	if rep.Err != nil {
		m.failedRuns.Inc()
		return
	}
	q := rep.Quanta.String()
	s := rep.Result.Summary
	m.makespan.WithLabelValues(q).Set(float64(s.Makespan))
	m.avgTurnaround.WithLabelValues(q).Set(s.AvgTurnaround)
	m.avgWaiting.WithLabelValues(q).Set(s.AvgWaiting)
	m.idleTicks.WithLabelValues(q).Set(float64(s.IdleTicks))
	m.cpuUtilization.WithLabelValues(q).Set(s.CPUUtilization)
	for _, st := range rep.Result.Stats {
		m.jobTurnaround.WithLabelValues(q, st.ID).Set(float64(st.TurnaroundTime))
		m.jobWaiting.WithLabelValues(q, st.ID).Set(float64(st.WaitingTime))
	}
}

// newMetricsRegistry builds a dedicated registry populated from reports.
func newMetricsRegistry(reports []runReport) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	m := newRunMetrics()
	m.register(reg)
	for _, rep := range reports {
		m.observe(rep)
	}
	return reg
}

// writeMetricsTextfile writes reports in the Prometheus text exposition
// format, suitable for the node_exporter textfile collector.
func writeMetricsTextfile(path string, reports []runReport) error {
	return prometheus.WriteToTextfile(path, newMetricsRegistry(reports))
}
