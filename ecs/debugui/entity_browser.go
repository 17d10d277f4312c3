package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/orbit/ecs"
)

type EntityInfo struct {
	ID             ecs.EntityId
	ComponentTypes []string
	ComponentCount int
}

type EntityBrowserCache struct {
	entities      []EntityInfo
	lastAlive     int
	lastRows      int
	sortColumn    int
	sortAscending bool
}

// EntityBrowser lists alive entities with the components they hold.
type EntityBrowser struct {
	cache              *EntityBrowserCache
	selectedEntityId   ecs.EntityId
	filterText         string
	maxEntitiesPerPage int
	currentPage        int
}

func NewEntityBrowser(maxEntitiesPerPage int) *EntityBrowser {
	return &EntityBrowser{
		cache: &EntityBrowserCache{
			lastAlive:     -1,
			sortAscending: true,
		},
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowser) Title() string {
	return "Entity Browser"
}

func (eb *EntityBrowser) Render(w *ecs.World, _ float64) {
	if !imgui.BeginV(eb.Title(), nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.Refresh(w)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.SetFilter("")
	}

	filteredEntities := eb.Filtered()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.SortBy(int(spec.ColumnIndex()), spec.SortDirection() == imgui.SortDirectionAscending)
			sortSpecs.SetSpecsDirty(false)
			filteredEntities = eb.Filtered()
		}

		for _, entity := range eb.Page(filteredEntities) {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selectedEntityId == entity.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.Select(entity.ID)
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entity.ComponentCount))
		}

		imgui.EndTable()
	}

	if totalPages := eb.PageCount(len(filteredEntities)); totalPages > 1 {
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filteredEntities)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filteredEntities)))
	}

	imgui.End()
}

// Refresh rebuilds the cached entity list when the alive count or total row
// count changed since the last call.
func (eb *EntityBrowser) Refresh(w *ecs.World) {
	stats := w.CollectStats()
	if eb.cache.entities != nil && eb.cache.lastAlive == stats.AliveEntityCount && eb.cache.lastRows == stats.TotalRowCount {
		return
	}
	eb.cache.lastAlive = stats.AliveEntityCount
	eb.cache.lastRows = stats.TotalRowCount
	eb.rebuildCache(w)

	if eb.selectedEntityId != ecs.NoEntity && !w.IsAlive(eb.selectedEntityId) {
		eb.selectedEntityId = ecs.NoEntity
	}
}

func (eb *EntityBrowser) rebuildCache(w *ecs.World) {
	ids := w.QueryEntities()
	eb.cache.entities = make([]EntityInfo, 0, len(ids))

	for _, id := range ids {
		types := w.ComponentTypesOf(id)
		names := make([]string, len(types))
		for i, ct := range types {
			names[i] = ct.Name()
		}

		eb.cache.entities = append(eb.cache.entities, EntityInfo{
			ID:             id,
			ComponentTypes: names,
			ComponentCount: len(names),
		})
	}

	eb.sortEntities()
}

func (eb *EntityBrowser) SortBy(column int, ascending bool) {
	eb.cache.sortColumn = column
	eb.cache.sortAscending = ascending
	eb.sortEntities()
}

func (eb *EntityBrowser) sortEntities() {
	sort.SliceStable(eb.cache.entities, func(i, j int) bool {
		a, b := eb.cache.entities[i], eb.cache.entities[j]
		var less bool

		switch eb.cache.sortColumn {
		case 1:
			less = strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case 2:
			less = a.ComponentCount < b.ComponentCount
		default:
			less = a.ID < b.ID
		}

		if !eb.cache.sortAscending {
			return !less
		}
		return less
	})
}

func (eb *EntityBrowser) SetFilter(text string) {
	eb.filterText = text
	eb.currentPage = 0
}

// Filtered returns cached entities whose id or component names contain the
// filter text, case-insensitively.
func (eb *EntityBrowser) Filtered() []EntityInfo {
	if eb.filterText == "" {
		return eb.cache.entities
	}

	filtered := make([]EntityInfo, 0, len(eb.cache.entities))
	filterLower := strings.ToLower(eb.filterText)

	for _, entity := range eb.cache.entities {
		idStr := fmt.Sprintf("%d", entity.ID)
		componentsStr := strings.ToLower(strings.Join(entity.ComponentTypes, " "))

		if !strings.Contains(idStr, filterLower) && !strings.Contains(componentsStr, filterLower) {
			continue
		}
		filtered = append(filtered, entity)
	}

	return filtered
}

func (eb *EntityBrowser) PageCount(total int) int {
	if total == 0 {
		return 1
	}
	return (total + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
}

// Page returns the slice of entities shown on the current page. The page is
// pulled back in range if the list shrank.
func (eb *EntityBrowser) Page(entities []EntityInfo) []EntityInfo {
	if last := eb.PageCount(len(entities)) - 1; eb.currentPage > last {
		eb.currentPage = last
	}

	startIdx := eb.currentPage * eb.maxEntitiesPerPage
	endIdx := min(startIdx+eb.maxEntitiesPerPage, len(entities))
	return entities[startIdx:endIdx]
}

func (eb *EntityBrowser) SetPage(page int) {
	eb.currentPage = max(page, 0)
}

func (eb *EntityBrowser) Select(id ecs.EntityId) {
	eb.selectedEntityId = id
}

func (eb *EntityBrowser) GetSelectedEntity() ecs.EntityId {
	return eb.selectedEntityId
}
