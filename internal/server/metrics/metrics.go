// Package metrics exports engine instrumentation to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "voxelworld"

// Metrics holds the engine collectors on a private registry. It implements
// the world and simulator recorder interfaces.
type Metrics struct {
	registry *prometheus.Registry

	chunksGenerated prometheus.Counter
	meshesBuilt     prometheus.Counter
	meshSeconds     prometheus.Histogram
	meshQuads       prometheus.Histogram
	edits           prometheus.Counter
	editsDropped    prometheus.Counter
	chunksLoaded    prometheus.Gauge
	chunksActive    prometheus.Gauge

	gravityProcessed prometheus.Counter
	liquidProcessed  prometheus.Counter
	gravityQueue     prometheus.Gauge
	liquidQueue      prometheus.Gauge
	falling          prometheus.Gauge
	fallingLost      prometheus.Counter
}

// New creates the collectors and registers them, together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		chunksGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunks_generated_total",
			Help:      "Chunks filled by the generator.",
		}),
		meshesBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunk_meshes_built_total",
			Help:      "Chunk render and collision meshes built.",
		}),
		meshSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chunk_mesh_seconds",
			Help:      "Time spent building one chunk mesh.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
		meshQuads: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chunk_mesh_quads",
			Help:      "Render quads per chunk mesh.",
			Buckets:   prometheus.ExponentialBuckets(16, 2, 10),
		}),
		edits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "block_edits_total",
			Help:      "Block edits applied to loaded chunks.",
		}),
		editsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "block_edits_dropped_total",
			Help:      "Block edits rejected as out of range or unloaded.",
		}),
		chunksLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "chunks_loaded",
			Help:      "Chunks held in memory.",
		}),
		chunksActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "chunks_active",
			Help:      "Chunks inside the view region.",
		}),
		gravityProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sim",
			Name:      "gravity_processed_total",
			Help:      "Gravity queue entries handled.",
		}),
		liquidProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sim",
			Name:      "liquid_processed_total",
			Help:      "Liquid queue entries handled.",
		}),
		gravityQueue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "sim",
			Name:      "gravity_queue_depth",
			Help:      "Positions waiting for a gravity check.",
		}),
		liquidQueue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "sim",
			Name:      "liquid_queue_depth",
			Help:      "Positions waiting for a liquid update.",
		}),
		falling: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "sim",
			Name:      "falling_blocks",
			Help:      "Granular blocks currently in flight.",
		}),
		fallingLost: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sim",
			Name:      "falling_blocks_lost_total",
			Help:      "Falling blocks dropped without landing.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.chunksGenerated, m.meshesBuilt, m.meshSeconds, m.meshQuads,
		m.edits, m.editsDropped, m.chunksLoaded, m.chunksActive,
		m.gravityProcessed, m.liquidProcessed, m.gravityQueue, m.liquidQueue,
		m.falling, m.fallingLost,
	)
	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ChunkGenerated() { m.chunksGenerated.Inc() }

func (m *Metrics) ChunkMeshed(d time.Duration, quads int) {
	m.meshesBuilt.Inc()
	m.meshSeconds.Observe(d.Seconds())
	m.meshQuads.Observe(float64(quads))
}

func (m *Metrics) BlockEdited(applied bool) {
	if applied {
		m.edits.Inc()
		return
	}
	m.editsDropped.Inc()
}

func (m *Metrics) ChunksLoaded(loaded, active int) {
	m.chunksLoaded.Set(float64(loaded))
	m.chunksActive.Set(float64(active))
}

func (m *Metrics) GravityProcessed(n int) { m.gravityProcessed.Add(float64(n)) }
func (m *Metrics) LiquidProcessed(n int)  { m.liquidProcessed.Add(float64(n)) }

func (m *Metrics) QueueDepth(gravity, liquid int) {
	m.gravityQueue.Set(float64(gravity))
	m.liquidQueue.Set(float64(liquid))
}

func (m *Metrics) FallingBlocks(active int) { m.falling.Set(float64(active)) }
func (m *Metrics) FallingLost()             { m.fallingLost.Inc() }
