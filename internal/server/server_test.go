package server

import (
	"context"
	"testing"
	"time"

	"github.com/OCharnyshevich/voxelworld/internal/server/config"
	"github.com/OCharnyshevich/voxelworld/pkg/world/block"
	"github.com/OCharnyshevich/voxelworld/pkg/world/voxel"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.GeneratorType = "flat"
	cfg.ViewRadius = 1
	cfg.ChunkBudget = 2
	return cfg
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := flatConfig()
	cfg.Generation.Height = 50
	_, err := New(cfg, nil, nil)
	require.ErrorIs(t, err, config.ErrInvalid)
}

func TestFirstTickLoadsWholeRegion(t *testing.T) {
	srv, err := New(flatConfig(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, voxel.ChunkPos{}, srv.ViewerChunk())
	assert.InDelta(t, 6.6, srv.Viewer().Y(), 1e-9)

	srv.Tick()
	assert.Equal(t, 9, srv.World().Loaded())
	assert.Len(t, srv.World().ActiveChunks(), 9)
}

func TestViewerMovementIsBudgeted(t *testing.T) {
	srv, err := New(flatConfig(), nil, nil)
	require.NoError(t, err)
	srv.Tick()

	srv.SetViewer(mgl64.Vec3{16*10 + 3, 20, 5})
	assert.Equal(t, voxel.ChunkPos{X: 10}, srv.ViewerChunk())

	srv.Tick()
	assert.Equal(t, 11, srv.World().Loaded())
	for range 4 {
		srv.Tick()
	}
	assert.Equal(t, 18, srv.World().Loaded())
	assert.Len(t, srv.World().ActiveChunks(), 9)
}

func TestTickRunsSimulation(t *testing.T) {
	srv, err := New(flatConfig(), nil, nil)
	require.NoError(t, err)
	srv.Tick()

	w := srv.World()
	require.True(t, w.SetBlock(4, 20, 4, block.Sand))
	for range 100 {
		srv.Tick()
		if srv.Simulator().Idle() {
			break
		}
	}
	assert.Equal(t, block.Sand, w.GetBlock(4, 5, 4))
	assert.Equal(t, block.Air, w.GetBlock(4, 20, 4))
}

func TestStartStopsOnCancel(t *testing.T) {
	cfg := flatConfig()
	cfg.MetricsAddr = "127.0.0.1:0"
	cfg.TickRate = 100
	srv, err := New(cfg, nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}
