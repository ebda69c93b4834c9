package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency distribution",
		Buckets: prometheus.DefBuckets,
	}, []string{"path", "method"})
	RequestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"path", "method", "status"})
	Inflight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "http_inflight_requests",
		Help: "In-flight HTTP requests",
	})
	DBUp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "db_up",
		Help: "Database connectivity (1=up,0=down)",
	})
	RedisUp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "redis_up",
		Help: "Redis connectivity (1=up,0=down)",
	})
	KafkaUp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "kafka_up",
		Help: "Kafka connectivity (1=up,0=down)",
	})
	EtcdUp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "etcd_up",
		Help: "Etcd connectivity (1=up,0=down)",
	})
	DependencyCheckDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dependency_check_duration_seconds",
		Help:    "Latency of dependency health checks",
		Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.2, 0.4, 0.8, 1},
	}, []string{"dep"})
	AuthRejectTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_reject_total",
		Help: "Requests rejected by auth/permission gates",
	}, []string{"reason"}) // not_authenticated / not_authorized / role_not_permitted
	PermissionInvalidateTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "permission_invalidate_total",
		Help: "Permission cache invalidations",
	}, []string{"scope"}) // single / role / all
	CacheNilHit = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cache_nil_sentinel_hit_total",
		Help: "Cache hits on nil sentinel entries",
	})
	OpLogKafkaEnqueue = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "oplog_kafka_enqueue_total",
		Help: "Operation log entries enqueued to the async sender",
	}, []string{"result"}) // ok / dropped
	OpLogKafkaQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "oplog_kafka_queue_depth",
		Help: "Pending operation log entries in the async queue",
	})
	OpLogKafkaBatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "oplog_kafka_batch_size",
		Help:    "Operation log batch sizes at flush time",
		Buckets: []float64{1, 5, 10, 25, 50, 100},
	})
	OpLogKafkaFlushTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "oplog_kafka_flush_total",
		Help: "Operation log batch flushes",
	}, []string{"reason"}) // size / timeout / shutdown
	OpLogKafkaErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "oplog_kafka_errors_total",
		Help: "Operation log entries that failed the batched write",
	})
)
