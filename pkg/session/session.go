// Package session owns the mutable state of one analysis session: the
// current mesh and the current occupancy grid. Components never share
// ambient globals; a host passes the Session explicitly to whatever needs
// the current state.
//
// One grid is materialized at a time. Starting a new voxelization cancels
// any in-flight build; a canceled or failed build never replaces the
// previously computed grid, and its partial result is discarded.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/chazu/voxl/pkg/mesh"
	"github.com/chazu/voxl/pkg/voxel"
)

// ErrNoMesh is returned by Voxelize before any mesh has been loaded.
var ErrNoMesh = errors.New("session: no mesh loaded")

// ErrSuperseded is returned by a Voxelize call whose build was abandoned
// because a newer request replaced it.
var ErrSuperseded = errors.New("session: voxelization superseded by a newer request")

// Session holds the current mesh and grid. Safe for concurrent use.
type Session struct {
	Voxelizer voxel.Voxelizer

	mu     sync.Mutex
	gen    uint64
	mesh   *mesh.Model
	grid   *voxel.Grid
	cancel context.CancelFunc
}

// New returns an empty session.
func New() *Session {
	return &Session{}
}

// LoadMesh decodes STL bytes and installs the result as the current mesh.
// Any in-flight voxelization is canceled and the current grid is dropped,
// since it no longer corresponds to the mesh. On decode failure the
// session is left unchanged.
func (s *Session) LoadMesh(data []byte) (*mesh.Model, error) {
	m, err := mesh.Decode(data)
	if err != nil {
		return nil, err
	}
	s.SetMesh(m)
	return m, nil
}

// SetMesh installs an already-constructed model, cancelling any in-flight
// voxelization and dropping the current grid.
func (s *Session) SetMesh(m *mesh.Model) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.supersedeLocked()
	s.mesh = m
	s.grid = nil
}

// Mesh returns the current mesh, or nil.
func (s *Session) Mesh() *mesh.Model {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mesh
}

// Grid returns the most recently completed grid, or nil.
func (s *Session) Grid() *voxel.Grid {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid
}

// supersedeLocked cancels the in-flight build, if any, and bumps the
// generation so its result is discarded when it completes.
func (s *Session) supersedeLocked() {
	s.gen++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Voxelize builds a grid for the current mesh and installs it as the
// session grid. If another Voxelize (or LoadMesh) starts while this one is
// running, this build is canceled and ErrSuperseded is returned. On any
// failure the previous grid remains installed and valid.
func (s *Session) Voxelize(ctx context.Context, resolution int, mode voxel.FillMode) (*voxel.Grid, error) {
	s.mu.Lock()
	m := s.mesh
	if m == nil {
		s.mu.Unlock()
		return nil, ErrNoMesh
	}
	s.supersedeLocked()
	myGen := s.gen
	buildCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()
	defer cancel()

	g, err := s.Voxelizer.Voxelize(buildCtx, m, resolution, mode)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != myGen {
		// A newer request took over; drop this result whether it
		// succeeded or not.
		return nil, ErrSuperseded
	}
	s.cancel = nil
	if err != nil {
		return nil, err
	}
	s.grid = g
	return g, nil
}
