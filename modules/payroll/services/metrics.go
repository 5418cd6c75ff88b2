package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/lioratech/mvp-web-sub001/modules/payroll/domain/payroll"
)

var (
	importDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "payroll_import_duration_seconds",
		Help:    "Time spent ingesting one payroll submission, flattening included.",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
	})
	importRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payroll_import_rows_total",
		Help: "Rows inserted by payroll imports, per table.",
	}, []string{"table"})
	deleteRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payroll_delete_rows_total",
		Help: "Rows removed by payroll run deletes, per table.",
	}, []string{"table"})
)

func observeImport(report *payroll.ImportReport) {
	importDuration.Observe(float64(report.DurationMs) / 1000)
	for table, n := range report.InsertedCounts {
		importRows.WithLabelValues(table).Add(float64(n))
	}
}

func observeDelete(report *payroll.DeleteReport) {
	for table, n := range report.DeletedCounts {
		deleteRows.WithLabelValues(table).Add(float64(n))
	}
}
