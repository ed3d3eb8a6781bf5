package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	postgresRepositoryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "postgres_repository",
		Name:      "operations_total",
		Help:      "Count of rule, watch and callback repository operations.",
	}, []string{"operation", "status"})
	postgresRepositoryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "postgres_repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of rule, watch and callback repository operations.",
		Buckets:   repositoryBuckets,
	}, []string{"operation", "status"})
)

// PostgresRepository tracks metrics for the PostgreSQL repositories.
type PostgresRepository struct{}

func NewPostgresRepository() *PostgresRepository {
	return &PostgresRepository{}
}

func (m PostgresRepository) Observe(operation string, err error, started time.Time) {
	s := status(err)
	postgresRepositoryRequestsTotal.WithLabelValues(operation, s).Inc()
	postgresRepositoryRequestDuration.WithLabelValues(operation, s).Observe(time.Since(started).Seconds())
}
