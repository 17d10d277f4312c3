package ecs

import (
	"testing"
	"time"
)

type statsPosition struct{ X, Y float64 }
type statsLabel string

var (
	statsPositionType = Define[statsPosition]("statsPosition")
	statsLabelType    = Define[statsLabel]("statsLabel")
)

func TestWorldStats(t *testing.T) {
	w := NewWorld()

	stats := w.CollectStats()
	if stats.AliveEntityCount != 0 {
		t.Errorf("expected 0 entities, got %d", stats.AliveEntityCount)
	}
	if stats.StoreCount != 0 {
		t.Errorf("expected 0 stores, got %d", stats.StoreCount)
	}

	a := w.CreateEntity()
	b := w.CreateEntity()
	w.CreateEntity()
	Must(AddComponent(w, a, statsPositionType, statsPosition{}))
	Must(AddComponent(w, b, statsPositionType, statsPosition{}))
	Must(AddComponent(w, b, statsLabelType, "b"))

	stats = w.CollectStats()
	if stats.AliveEntityCount != 3 {
		t.Errorf("expected 3 entities, got %d", stats.AliveEntityCount)
	}
	if stats.StoreCount != 2 {
		t.Errorf("expected 2 stores, got %d", stats.StoreCount)
	}
	if stats.TotalRowCount != 3 {
		t.Errorf("expected 3 rows, got %d", stats.TotalRowCount)
	}
	if len(stats.StoreBreakdown) != 2 {
		t.Fatalf("expected 2 store entries, got %d", len(stats.StoreBreakdown))
	}
	if got := stats.StoreBreakdown[0]; got.Name != "statsPosition" || got.RowCount != 2 {
		t.Errorf("unexpected first store entry %+v", got)
	}
	if got := stats.StoreBreakdown[1]; got.Name != "statsLabel" || got.RowCount != 1 {
		t.Errorf("unexpected second store entry %+v", got)
	}

	w.DestroyEntity(b)
	stats = w.CollectStats()
	if stats.TotalRowCount != 1 {
		t.Errorf("expected 1 row after destroy, got %d", stats.TotalRowCount)
	}
	if stats.StoreCount != 2 {
		t.Errorf("stores should outlive their rows, got %d", stats.StoreCount)
	}
}

func TestSchedulerStatsInternal(t *testing.T) {
	s := newScheduler()
	w := NewWorld()

	entry := s.add(NewSystem("tick", func(*World, float64) {
		time.Sleep(100 * time.Microsecond)
	}))
	if entry.handle != 1 {
		t.Errorf("expected first handle to be 1, got %d", entry.handle)
	}

	s.once(w, 0)
	s.once(w, 0)

	stats := s.getStats()
	if stats.TotalExecutions != 2 {
		t.Errorf("expected 2 executions, got %d", stats.TotalExecutions)
	}
	sys := stats.Systems[0]
	if sys.MinDuration > sys.MaxDuration {
		t.Errorf("min %v exceeds max %v", sys.MinDuration, sys.MaxDuration)
	}
	if sys.TotalDuration < 200*time.Microsecond {
		t.Errorf("expected total >= 200µs, got %v", sys.TotalDuration)
	}

	if removed := s.remove(entry.handle); removed != entry {
		t.Error("remove should return the removed entry")
	}
	if s.remove(entry.handle) != nil {
		t.Error("second remove should return nil")
	}
}

func TestStoreSwapRemove(t *testing.T) {
	store := statsPositionType.newStore(4).(*componentStore[statsPosition])

	for i := EntityId(1); i <= 4; i++ {
		store.Set(i, statsPosition{X: float64(i)})
	}
	store.Delete(2)
	store.Delete(2)

	if store.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", store.Len())
	}
	for _, id := range []EntityId{1, 3, 4} {
		v, ok := store.Get(id)
		if !ok || v.X != float64(id) {
			t.Errorf("row %d corrupted: %+v ok=%v", id, v, ok)
		}
	}
	if store.Has(2) {
		t.Error("deleted row still present")
	}
}

func TestEntityRegistrySnapshot(t *testing.T) {
	r := newEntityRegistry(4)
	a := r.create()
	b := r.create()
	c := r.create()

	r.destroy(b)
	snap := r.snapshot()
	r.destroy(a)

	if len(snap) != 2 || snap[0] != a || snap[1] != c {
		t.Errorf("unexpected snapshot %v", snap)
	}
	if r.count() != 1 {
		t.Errorf("expected 1 alive, got %d", r.count())
	}
}

func TestComponentRegistryDefine(t *testing.T) {
	r := newComponentRegistry()
	first := r.define(func(id ComponentId) AnyComponentType {
		return ComponentType[statsPosition]{id: id, name: "a"}
	})
	second := r.define(func(id ComponentId) AnyComponentType {
		return ComponentType[statsPosition]{id: id, name: "a"}
	})

	if first.Id() == second.Id() || first.Id() == 0 {
		t.Errorf("expected distinct non-zero ids, got %d and %d", first.Id(), second.Id())
	}
	if got, ok := r.Lookup(second.Id()); !ok || got != second {
		t.Errorf("lookup returned %v, %v", got, ok)
	}
	if len(r.Types()) != 2 {
		t.Errorf("expected 2 types, got %d", len(r.Types()))
	}
	if DefaultRegistry() == r {
		t.Error("a fresh registry must not be the default one")
	}
}
