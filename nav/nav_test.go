package nav

import (
	"math"
	"testing"

	"github.com/pthm-cable/gadots/geom"
	"github.com/pthm-cable/gadots/sim"
)

func TestGridBlocksObstacleCells(t *testing.T) {
	g := NewGrid(100, 100, 10, []sim.Circle{{Center: geom.New(50, 50), Radius: 12}}, 0)

	if w, h := g.Size(); w != 10 || h != 10 {
		t.Fatalf("size = %dx%d, want 10x10", w, h)
	}
	if !g.IsBlockedWorld(geom.New(50, 50)) {
		t.Error("obstacle centre should be blocked")
	}
	if g.IsBlockedWorld(geom.New(5, 5)) {
		t.Error("far corner should be open")
	}
	if !g.IsBlocked(-1, 0) || !g.IsBlocked(0, 10) {
		t.Error("cells off the grid should be blocked")
	}
}

func TestGridInflation(t *testing.T) {
	obs := []sim.Circle{{Center: geom.New(50, 50), Radius: 5}}
	// Cell (6, 4) has centre (65, 45), about 15.8 from the obstacle.
	if NewGrid(100, 100, 10, obs, 0).IsBlocked(6, 4) {
		t.Error("cell should be open without inflation")
	}
	if !NewGrid(100, 100, 10, obs, 12).IsBlocked(6, 4) {
		t.Error("cell should be blocked with inflation")
	}
}

func TestFindPathStraight(t *testing.T) {
	g := NewGrid(200, 200, 10, nil, 0)
	start, goal := geom.New(20, 20), geom.New(20, 180)

	path := NewPlanner(g).FindPath(start, goal)
	if len(path) != 2 {
		t.Fatalf("open field path should simplify to 2 points, got %v", path)
	}
	if path[0] != start || path[1] != goal {
		t.Errorf("endpoints = %v, %v", path[0], path[1])
	}
}

func TestFindPathAroundWall(t *testing.T) {
	// A wall of circles across the middle with a gap at the right edge.
	var wall []sim.Circle
	for x := 10.0; x <= 150; x += 10 {
		wall = append(wall, sim.Circle{Center: geom.New(x, 100), Radius: 8})
	}
	g := NewGrid(200, 200, 5, wall, 0)
	start, goal := geom.New(50, 20), geom.New(50, 180)

	path := NewPlanner(g).FindPath(start, goal)
	if path == nil {
		t.Fatal("expected a path through the gap")
	}
	length := PathLength(path)
	if length <= 160 {
		t.Errorf("path length %v should exceed the blocked straight line", length)
	}
	for i := 1; i < len(path)-1; i++ {
		if g.IsBlockedWorld(path[i]) {
			t.Errorf("waypoint %v is blocked", path[i])
		}
	}
}

func TestFindPathNoRoute(t *testing.T) {
	var wall []sim.Circle
	for x := 0.0; x <= 200; x += 10 {
		wall = append(wall, sim.Circle{Center: geom.New(x, 100), Radius: 20})
	}
	g := NewGrid(200, 200, 5, wall, 0)
	if path := NewPlanner(g).FindPath(geom.New(50, 20), geom.New(50, 180)); path != nil {
		t.Errorf("expected no path, got %v", path)
	}
	if _, ok := MinSteps(g, geom.New(50, 20), geom.New(50, 180), 10); ok {
		t.Error("MinSteps should report no path")
	}
}

func TestMinSteps(t *testing.T) {
	g := NewGrid(400, 400, 8, nil, 0)
	steps, ok := MinSteps(g, geom.New(100, 100), geom.New(100, 175), 15)
	if !ok || steps != 5 {
		t.Errorf("MinSteps = %d, %v; want 5, true", steps, ok)
	}
}

func TestPathLength(t *testing.T) {
	path := []geom.Vec2{geom.New(0, 0), geom.New(3, 4), geom.New(3, 10)}
	if got := PathLength(path); math.Abs(got-11) > 1e-12 {
		t.Errorf("PathLength = %v, want 11", got)
	}
	if PathLength(nil) != 0 {
		t.Error("empty path should have zero length")
	}
}
