package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/OCharnyshevich/voxelworld/internal/server"
	"github.com/OCharnyshevich/voxelworld/internal/server/config"
	"github.com/OCharnyshevich/voxelworld/pkg/world/mesh"
)

func main() {
	cfg := config.DefaultConfig()

	var (
		configSrc = flag.String("config", "", "config file path or go-getter source (git::, https://, s3::)")
		ticks     = flag.Int("ticks", 0, "run this many ticks and exit (0 = run until interrupted)")
		export    = flag.String("export", "", "write active chunk meshes to this OBJ file before exiting")
	)
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "world seed")
	flag.StringVar(&cfg.GeneratorType, "generator", cfg.GeneratorType, "world generator: default or flat")
	flag.IntVar(&cfg.ViewRadius, "view-radius", cfg.ViewRadius, "view radius in chunks")
	flag.IntVar(&cfg.ChunkBudget, "chunk-budget", cfg.ChunkBudget, "chunks created per tick")
	flag.IntVar(&cfg.GravityBudget, "gravity-budget", cfg.GravityBudget, "gravity checks per tick")
	flag.IntVar(&cfg.LiquidBudget, "liquid-budget", cfg.LiquidBudget, "liquid updates per tick")
	flag.IntVar(&cfg.LiquidSpread, "liquid-spread", cfg.LiquidSpread, "sideways liquid reach (0 = unlimited)")
	flag.IntVar(&cfg.TickRate, "tick-rate", cfg.TickRate, "ticks per second")
	flag.BoolVar(&cfg.Greedy, "greedy", cfg.Greedy, "greedy meshing")
	flag.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "Prometheus listen address (empty disables)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *configSrc != "" {
		fromFile, err := loadConfig(ctx, *configSrc)
		if err != nil {
			slog.Error("load config", "error", err)
			os.Exit(1)
		}
		explicit := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		config.Merge(cfg, fromFile, explicit)
	}

	level, err := cfg.Level()
	if err != nil {
		slog.Warn("unknown log level, using info", "level", cfg.LogLevel)
		level = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	srv, err := server.New(cfg, log, nil)
	if err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(1)
	}

	if *ticks > 0 {
		for i := 0; i < *ticks && ctx.Err() == nil; i++ {
			srv.Tick()
		}
		log.Info("ticks done", "ticks", srv.Ticks(), "chunks", srv.World().Loaded())
	} else if err := srv.Start(ctx); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}

	if *export != "" {
		if err := exportOBJ(srv, *export); err != nil {
			log.Error("export mesh", "error", err)
			os.Exit(1)
		}
		log.Info("mesh exported", "path", *export)
	}
}

// loadConfig reads a local file directly and fetches anything else first.
func loadConfig(ctx context.Context, src string) (*config.Config, error) {
	remote := strings.Contains(src, "::") || strings.Contains(src, "://")
	if _, err := os.Stat(src); err == nil || !remote {
		return config.Load(src)
	}
	dir, err := os.MkdirTemp("", "voxelworld-config")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path, err := config.Fetch(ctx, src, dir)
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

func exportOBJ(srv *server.Server, path string) error {
	var meshes []*mesh.Mesh
	for _, c := range srv.World().ActiveChunks() {
		if m := c.Mesh(); m != nil {
			meshes = append(meshes, m)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := mesh.WriteOBJ(f, meshes...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
