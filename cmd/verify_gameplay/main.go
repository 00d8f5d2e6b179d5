// verify_gameplay 无窗口运行一局游戏，用简单的自动玩家验证模拟流程
//
// 自动玩家瞄准最近的僵尸开火、绕圈移动，弹匣打空后换下一把有子弹的武器。
// 可选在中途存档并读档，验证读档后的状态与存档时一致。
//
// 用法：
//
//	go run ./cmd/verify_gameplay -ticks 36000 -difficulty hard -verify-save
package main

import (
	"flag"
	"log"
	"math"
	"os"
	"reflect"
	"time"

	"github.com/decker502/zombieshot/pkg/components"
	"github.com/decker502/zombieshot/pkg/config"
	"github.com/decker502/zombieshot/pkg/ecs"
	"github.com/decker502/zombieshot/pkg/game"
	"github.com/decker502/zombieshot/pkg/persistence"
	"github.com/decker502/zombieshot/pkg/simulation"
	"github.com/decker502/zombieshot/pkg/systems"
	"github.com/decker502/zombieshot/pkg/types"
)

var (
	verbose     = flag.Bool("verbose", false, "显示详细调试信息")
	configPath  = flag.String("config", "data/game_config.yaml", "游戏配置文件路径")
	ticks       = flag.Int("ticks", 60*60*5, "最多运行的 tick 数")
	seed        = flag.Int64("seed", 1, "随机种子")
	difficulty  = flag.String("difficulty", "normal", "难度：normal 或 hard")
	reportEvery = flag.Int("report", 600, "每隔多少 tick 输出一次状态")
	verifySave  = flag.Bool("verify-save", false, "中途存档并读档，校验状态一致")
)

// strafeTicks 自动玩家每个移动方向持续的 tick 数
const strafeTicks = 90

var strafeDirections = []systems.MoveIntent{
	{Right: true},
	{Down: true},
	{Left: true},
	{Up: true},
}

func main() {
	flag.Parse()
	log.SetFlags(log.Ltime | log.Lmicroseconds)
	if !*verbose {
		log.SetOutput(os.Stdout)
	}

	cfg, err := config.LoadGameConfig(*configPath)
	if err != nil {
		log.Printf("⚠️ 使用默认配置: %v", err)
		cfg = config.DefaultGameConfig()
	}
	d, ok := types.DifficultyFromString(*difficulty)
	if !ok {
		log.Fatalf("未知难度: %s", *difficulty)
	}

	sim, err := simulation.New(simulation.Options{
		Config:     cfg,
		Difficulty: d,
		Seed:       *seed,
		Store:      persistence.NewMemoryStore(),
	})
	if err != nil {
		log.Fatalf("Failed to create simulation: %v", err)
	}

	start := time.Now()
	saveAt := *ticks / 2
	for tick := 0; tick < *ticks; tick++ {
		if *verifySave && tick == saveAt {
			checkSaveRoundTrip(sim)
		}

		sim.Tick(botInput(sim, tick))

		if *reportEvery > 0 && tick%*reportEvery == 0 {
			report(sim, tick)
		}
		if sim.GameState().IsGameOver {
			log.Printf("💀 对局结束于 tick %d", tick)
			break
		}
	}

	report(sim, *ticks)
	hud := sim.HUD()
	log.Printf("✅ 完成：波次 %d，击杀 %d，分数 %d，名次 %d，耗时 %v",
		hud.Wave, hud.Kills, hud.Score, hud.Rank, time.Since(start))
}

// botInput 自动玩家：瞄准最近的僵尸，绕圈移动
func botInput(sim *simulation.Simulation, tick int) simulation.InputState {
	input := simulation.InputState{
		Move: strafeDirections[(tick/strafeTicks)%len(strafeDirections)],
	}

	px, py := sim.PlayerCenter()
	if zx, zy, ok := nearestZombie(sim, px, py); ok {
		input.AimDeg = simulation.AimAngle(px, py, zx, zy)
		input.Fire = true
	}

	if w := sim.CurrentWeapon(); w != nil && w.CurrentAmmo == 0 && !w.Reloading {
		if w.Reserve > 0 || w.InfiniteReserve {
			input.Reload = true
		} else {
			input.SelectWeapon = 1
		}
	}
	return input
}

func nearestZombie(sim *simulation.Simulation, px, py float64) (float64, float64, bool) {
	em := sim.EntityManager()
	best := math.MaxFloat64
	var bx, by float64
	for _, id := range ecs.GetEntitiesWith3[*components.ZombieComponent, *components.PositionComponent, *components.CollisionComponent](em) {
		if em.IsMarkedForDestroy(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		col, _ := ecs.GetComponent[*components.CollisionComponent](em, id)
		zx, zy := col.Center(pos)
		if dist := math.Hypot(zx-px, zy-py); dist < best {
			best, bx, by = dist, zx, zy
		}
	}
	return bx, by, best < math.MaxFloat64
}

func report(sim *simulation.Simulation, tick int) {
	hud := sim.HUD()
	log.Printf("[tick %6d] t=%6dms 波次 %2d 剩余 %3d 生命 %3d/%d 击杀 %4d 分数 %6d 武器 %-15s %d/%d 存活僵尸 %d",
		tick, sim.Clock().Now(), hud.Wave, hud.ZombiesRemaining, hud.Health, hud.MaxHealth,
		hud.Kills, hud.Score, hud.Weapon, hud.Ammo, hud.Reserve, systems.LiveZombies(sim.EntityManager()))
}

// checkSaveRoundTrip 存档后继续运行一段时间，再读档并比较快照
func checkSaveRoundTrip(sim *simulation.Simulation) {
	before := sim.Snapshot()
	if before == nil || !sim.SaveGame() {
		log.Fatalf("❌ 存档失败")
	}
	for i := 0; i < 120; i++ {
		sim.Tick(simulation.InputState{Fire: true})
	}
	if !sim.LoadGame() {
		log.Fatalf("❌ 读档失败")
	}
	after := sim.Snapshot()
	if !sameSnapshot(before, after) {
		log.Fatalf("❌ 读档后状态与存档不一致")
	}
	log.Printf("✅ 存档/读档一致：僵尸 %d，子弹 %d，掉落物 %d，格子 %d",
		len(after.Zombies), len(after.Bullets), len(after.Drops), len(after.Grid.Cells))
}

func sameSnapshot(a, b *game.BattleSaveData) bool {
	ac, bc := *a, *b
	ac.SaveTime, bc.SaveTime = time.Time{}, time.Time{}
	return reflect.DeepEqual(ac, bc)
}
