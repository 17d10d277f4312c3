package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/orbit/ecs"
)

type StoreInfo struct {
	ID       ecs.ComponentId
	Name     string
	RowCount int
}

// StoreViewer shows one row per component store with its row count.
type StoreViewer struct {
	stores        []StoreInfo
	selectedStore *ecs.ComponentId
	sortColumn    int
	sortAscending bool
}

func NewStoreViewer() *StoreViewer {
	return &StoreViewer{
		sortColumn:    2,
		sortAscending: false,
	}
}

func (sv *StoreViewer) Title() string {
	return "Store Viewer"
}

func (sv *StoreViewer) Render(w *ecs.World, _ float64) {
	if !imgui.BeginV(sv.Title(), nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	sv.Refresh(w)

	maxRowCount := 0
	for _, store := range sv.stores {
		maxRowCount = max(maxRowCount, store.RowCount)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("StoreTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Component ID")
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Rows")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			sv.SortBy(int(spec.ColumnIndex()), spec.SortDirection() == imgui.SortDirectionAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		for _, store := range sv.stores {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := sv.selectedStore != nil && *sv.selectedStore == store.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", store.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				id := store.ID
				sv.selectedStore = &id
			}

			imgui.TableNextColumn()
			imgui.Text(store.Name)

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", store.RowCount))

			if maxRowCount > 0 {
				barWidth := float32(store.RowCount) / float32(maxRowCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
}

// Refresh re-reads row counts from the World. Stores never disappear, so the
// list only grows.
func (sv *StoreViewer) Refresh(w *ecs.World) {
	breakdown := w.CollectStats().StoreBreakdown
	sv.stores = sv.stores[:0]
	for _, store := range breakdown {
		sv.stores = append(sv.stores, StoreInfo{
			ID:       store.Id,
			Name:     store.Name,
			RowCount: store.RowCount,
		})
	}
	sv.sortStores()
}

func (sv *StoreViewer) Stores() []StoreInfo {
	return sv.stores
}

func (sv *StoreViewer) SortBy(column int, ascending bool) {
	sv.sortColumn = column
	sv.sortAscending = ascending
	sv.sortStores()
}

func (sv *StoreViewer) sortStores() {
	sort.SliceStable(sv.stores, func(i, j int) bool {
		a, b := sv.stores[i], sv.stores[j]
		var less bool

		switch sv.sortColumn {
		case 0:
			less = a.ID < b.ID
		case 1:
			less = a.Name < b.Name
		default:
			less = a.RowCount < b.RowCount
		}

		if !sv.sortAscending {
			return !less
		}
		return less
	})
}
