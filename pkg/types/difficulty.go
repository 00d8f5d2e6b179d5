package types

import "strings"

// Difficulty 游戏难度
type Difficulty int

const (
	// DifficultyNormal 普通难度
	DifficultyNormal Difficulty = iota
	// DifficultyHard 困难难度：刷怪更快、僵尸更多更快、弹药掉落翻倍
	DifficultyHard
)

// String 返回难度的配置字符串
func (d Difficulty) String() string {
	switch d {
	case DifficultyNormal:
		return "normal"
	case DifficultyHard:
		return "hard"
	default:
		return "unknown"
	}
}

// DifficultyFromString 解析难度字符串（不区分大小写）
// 无法识别时返回 DifficultyNormal 和 false
func DifficultyFromString(s string) (Difficulty, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal", "":
		return DifficultyNormal, true
	case "hard":
		return DifficultyHard, true
	default:
		return DifficultyNormal, false
	}
}
