package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"time"

	"github.com/OCharnyshevich/voxelworld/internal/server/config"
	"github.com/OCharnyshevich/voxelworld/internal/server/metrics"
	"github.com/OCharnyshevich/voxelworld/internal/server/sim"
	"github.com/OCharnyshevich/voxelworld/internal/server/world"
	"github.com/OCharnyshevich/voxelworld/pkg/world/gen"
	"github.com/OCharnyshevich/voxelworld/pkg/world/mesh"
	"github.com/OCharnyshevich/voxelworld/pkg/world/voxel"
	"github.com/go-gl/mathgl/mgl64"
)

// Server hosts a world, its simulator and the metrics endpoint, and drives
// them from a single tick loop.
type Server struct {
	cfg     *config.Config
	log     *slog.Logger
	world   *world.World
	sim     *sim.Simulator
	metrics *metrics.Metrics

	viewer mgl64.Vec3
	ticks  uint64
}

// New creates a new Server with the given config and logger. sink receives
// chunk geometry and may be nil.
func New(cfg *config.Config, log *slog.Logger, sink world.Sink) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	meshOpts := mesh.DefaultOptions()
	meshOpts.Greedy = cfg.Greedy

	var generator gen.Generator
	switch cfg.GeneratorType {
	case "flat":
		generator = gen.NewFlatGenerator(cfg.Generation.Height)
	default:
		g := gen.NewDefaultGenerator(cfg.GenerationParams())
		meshOpts.Tint = world.BiomeTint(g.Column())
		generator = g
	}

	m := metrics.New()
	w := world.NewWorld(generator, world.Options{
		ChunkBudget: cfg.ChunkBudget,
		Mesh:        meshOpts,
		Logger:      log.With("component", "world"),
		Recorder:    m,
		Sink:        sink,
	})
	s := sim.New(w, sim.Options{
		GravityBudget: cfg.GravityBudget,
		LiquidBudget:  cfg.LiquidBudget,
		LiquidSpread:  cfg.LiquidSpread,
		MaxFallTicks:  30 * cfg.TickRate,
		Logger:        log.With("component", "sim"),
		Recorder:      m,
	})
	w.Subscribe(s)

	srv := &Server{
		cfg:     cfg,
		log:     log,
		world:   w,
		sim:     s,
		metrics: m,
	}
	srv.viewer = mgl64.Vec3{8.5, float64(w.SpawnHeight(8, 8)) + 1.6, 8.5}
	return srv, nil
}

func (s *Server) World() *world.World         { return s.world }
func (s *Server) Simulator() *sim.Simulator   { return s.sim }
func (s *Server) Metrics() *metrics.Metrics   { return s.metrics }
func (s *Server) Viewer() mgl64.Vec3          { return s.viewer }
func (s *Server) SetViewer(pos mgl64.Vec3)    { s.viewer = pos }
func (s *Server) Ticks() uint64               { return s.ticks }
func (s *Server) ViewerChunk() voxel.ChunkPos { return chunkAt(s.viewer) }

func chunkAt(p mgl64.Vec3) voxel.ChunkPos {
	return voxel.ChunkOf(int(math.Floor(p.X())), int(math.Floor(p.Z())))
}

// Tick runs one frame: stream chunks around the viewer, then advance the
// simulation. The first frame loads the whole view region at once so the
// viewer never starts in a hole.
func (s *Server) Tick() {
	force := s.ticks == 0
	created := s.world.EnsureChunksNear(s.ViewerChunk(), s.cfg.ViewRadius, force)
	if force {
		s.log.Info("initial region loaded", "chunks", created, "center", s.ViewerChunk())
	}
	s.sim.Tick(s.cfg.TickInterval().Seconds())
	s.ticks++
}

// Start ticks until the context is cancelled. When a metrics address is
// configured the Prometheus endpoint is served alongside.
func (s *Server) Start(ctx context.Context) error {
	errc := make(chan error, 1)
	if s.cfg.MetricsAddr != "" {
		stop, err := s.serveMetrics(ctx, errc)
		if err != nil {
			return err
		}
		defer stop()
	}

	s.log.Info("server started",
		"generator", s.cfg.GeneratorType,
		"seed", s.cfg.Seed,
		"viewRadius", s.cfg.ViewRadius,
		"tickRate", s.cfg.TickRate,
		"metrics", s.cfg.MetricsAddr,
	)

	ticker := time.NewTicker(s.cfg.TickInterval())
	defer ticker.Stop()

	s.Tick()
	for {
		select {
		case <-ctx.Done():
			s.log.Info("server shutting down", "ticks", s.ticks, "chunks", s.world.Loaded())
			return nil
		case err := <-errc:
			return err
		case <-ticker.C:
			s.Tick()
		}
	}
}

func (s *Server) serveMetrics(ctx context.Context, errc chan<- error) (func(), error) {
	lc := net.ListenConfig{}
	listener, err := lc.Listen(ctx, "tcp", s.cfg.MetricsAddr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", s.cfg.MetricsAddr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", s.metrics.Handler())
	hs := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := hs.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- fmt.Errorf("metrics endpoint: %w", err)
		}
	}()
	s.log.Info("metrics endpoint listening", "addr", listener.Addr().String())

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			s.log.Warn("metrics endpoint shutdown", "error", err)
		}
	}, nil
}
