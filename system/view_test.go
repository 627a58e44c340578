package system

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/lane-siege/component"
	"github.com/lixenwraith/lane-siege/level"
)

func newViewHarness(t *testing.T) *harness {
	return newHarness(t, level.Params{}, nil, NewViewSyncSystem, NewViewCleanupSystem)
}

func TestViewSyncBindsAndCopiesTransform(t *testing.T) {
	h := newViewHarness(t)
	e := h.place(component.TeamAttacker, 0, 3, 10)
	c := &h.world.Components
	c.ViewBinding.SetComponent(e, component.ViewBindingComponent{AssetPath: "actors/walker"})

	h.tick(0)
	vb, _ := c.ViewBinding.GetComponent(e)
	inst, ok := vb.Instance.(*fakeInstance)
	if !ok || !inst.active {
		t.Fatalf("Expected an active bound instance, got %+v", vb.Instance)
	}

	tr, _ := c.Transform.GetComponent(e)
	tr.Position = mgl64.Vec3{7, 1, 0}
	c.Transform.SetComponent(e, tr)
	h.tick(0)
	if inst.pos != tr.Position {
		t.Errorf("Expected instance at %v, got %v", tr.Position, inst.pos)
	}

	// Writes on the instance never flow back
	inst.pos = mgl64.Vec3{-1, -1, -1}
	if got, _ := c.Transform.GetComponent(e); got.Position != tr.Position {
		t.Error("Expected simulation transform unaffected by the instance")
	}
}

func TestViewUnresolvedAssetLeavesInstanceAbsent(t *testing.T) {
	h := newViewHarness(t)
	e := h.place(component.TeamAttacker, 0, 3, 10)
	c := &h.world.Components
	c.ViewBinding.SetComponent(e, component.ViewBindingComponent{AssetPath: "fx/hit"})

	for range 3 {
		h.tick(0)
	}
	vb, ok := c.ViewBinding.GetComponent(e)
	if !ok || vb.Instance != nil {
		t.Errorf("Expected binding kept without instance, got %+v (ok=%v)", vb, ok)
	}
	if !h.world.Exists(e) {
		t.Error("Expected entity to continue without presentation")
	}
	if n := strings.Count(h.logs.String(), "template not resolved"); n != 1 {
		t.Errorf("Expected a single unresolved warning, got %d", n)
	}
}

func TestViewCleanupReleasesExactlyOnce(t *testing.T) {
	h := newViewHarness(t)
	e := h.place(component.TeamAttacker, 0, 3, 10)
	c := &h.world.Components
	c.ViewBinding.SetComponent(e, component.ViewBindingComponent{AssetPath: "actors/walker"})
	c.PrefabPath.SetComponent(e, component.PrefabPathComponent{Path: "actors/walker"})
	h.tick(0)
	vb, _ := c.ViewBinding.GetComponent(e)
	inst := vb.Instance.(*fakeInstance)

	h.world.Commands.Destroy(e)
	h.tick(0)

	if inst.active || inst.released != 1 {
		t.Fatalf("Expected one release, got active=%v released=%d", inst.active, inst.released)
	}
	if c.ViewBinding.HasEntity(e) || c.PrefabPath.HasEntity(e) || c.PendingRelease.HasEntity(e) {
		t.Error("Expected view link stripped after release")
	}

	h.tick(0)
	h.tick(0)
	if inst.released != 1 {
		t.Errorf("Expected no further releases, got %d", inst.released)
	}
	if h.pool.Idle("actors/walker") != 1 {
		t.Errorf("Expected instance back in the pool, got %d idle", h.pool.Idle("actors/walker"))
	}

	// A new entity of the same asset reuses the instance
	next := h.place(component.TeamAttacker, 1, 3, 10)
	c.ViewBinding.SetComponent(next, component.ViewBindingComponent{AssetPath: "actors/walker"})
	h.tick(0)
	if vb, _ := c.ViewBinding.GetComponent(next); vb.Instance != inst {
		t.Error("Expected pooled instance reused")
	}
}

func TestViewCleanupWithoutInstance(t *testing.T) {
	h := newViewHarness(t)
	e := h.place(component.TeamAttacker, 0, 3, 10)
	c := &h.world.Components
	c.ViewBinding.SetComponent(e, component.ViewBindingComponent{AssetPath: "fx/hit"})

	h.world.Commands.Destroy(e)
	h.tick(0)
	if c.ViewBinding.HasEntity(e) {
		t.Error("Expected binding without instance stripped on cleanup")
	}
}
