package components

// PlayerComponent 玩家状态
type PlayerComponent struct {
	CharacterID int // 选择的角色（从 1 开始）
	Kills       int
	Score       int

	// 行走动画
	Moving      bool
	WalkFrame   int
	LastFrameAt int64
}
