package components

import "github.com/decker502/zombieshot/pkg/types"

// ZombieComponent 僵尸通用属性
type ZombieComponent struct {
	Kind types.ZombieKind

	Damage        int
	BaseSpeed     float64 // 未乘难度系数的速度
	Speed         float64 // 当前速度（已乘难度系数）
	AttackRange   float64
	AttackDelayMs int64
	LastAttackAt  int64
	HasAttacked   bool
	Score         int
	BlastRadius   float64 // 死亡爆炸半径，0 表示不爆炸
}

// ReptileJumpState 爬行僵尸跳跃状态
type ReptileJumpState int

const (
	// ReptileChasing 追击
	ReptileChasing ReptileJumpState = iota
	// ReptileJumping 跳跃冲刺中
	ReptileJumping
)

// ReptileJumpComponent 爬行僵尸的跳跃状态机
type ReptileJumpComponent struct {
	State      ReptileJumpState
	DirX       float64
	DirY       float64
	Traveled   float64
	LastJumpAt int64

	CooldownMs int64
	Range      float64
	SpeedMult  float64
	Trigger    float64
}
