package components

// CellKey 瓦片格子坐标
type CellKey struct {
	X int
	Y int
}

// TileGridComponent 标识瓦片地图实体
//
// Cells 记录已访问格子的外观索引，格子首次被查询时惰性生成，之后不再改变。
// OffsetX/OffsetY 为镜头偏移（屏幕左上角对应的世界坐标）。
type TileGridComponent struct {
	Cells   map[CellKey]int
	OffsetX float64
	OffsetY float64

	// Obstacles 障碍物外观索引集合，构造时确定
	Obstacles map[int]struct{}
	Variants  int
}
