package ecs

// WorldStats is a point-in-time summary of a World's contents.
type WorldStats struct {
	AliveEntityCount int
	StoreCount       int
	TotalRowCount    int
	SystemCount      int
	StoreBreakdown   []StoreStats
}

// StoreStats describes a single component store.
type StoreStats struct {
	Id       ComponentId
	Name     string
	RowCount int
}

// CollectStats gathers WorldStats. It walks every store once.
func (w *World) CollectStats() WorldStats {
	stats := WorldStats{
		AliveEntityCount: w.entities.count(),
		StoreCount:       len(w.stores),
		SystemCount:      len(w.systems.systems),
		StoreBreakdown:   make([]StoreStats, 0, len(w.stores)),
	}

	for _, store := range w.stores {
		ct := store.Type()
		stats.StoreBreakdown = append(stats.StoreBreakdown, StoreStats{
			Id:       ct.Id(),
			Name:     ct.Name(),
			RowCount: store.Len(),
		})
		stats.TotalRowCount += store.Len()
	}

	return stats
}
