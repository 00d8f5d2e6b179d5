package ecs

import "testing"

type benchPosition struct {
	X, Y float64
}

type benchVelocity struct {
	DX, DY float64
}

type benchHealth struct {
	Current int
}

// setupBenchmarkEntities 创建 count 个实体，其中一半带速度组件
func setupBenchmarkEntities(count int) *EntityManager {
	em := NewEntityManager()
	for i := 0; i < count; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &benchPosition{X: float64(i)})
		em.AddComponent(id, &benchHealth{Current: 100})
		if i%2 == 0 {
			em.AddComponent(id, &benchVelocity{DX: 1})
		}
	}
	return em
}

func BenchmarkGetEntitiesWith2(b *testing.B) {
	em := setupBenchmarkEntities(500)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GetEntitiesWith2[*benchPosition, *benchVelocity](em)
	}
}

func BenchmarkMoveLoop(b *testing.B) {
	em := setupBenchmarkEntities(500)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, id := range GetEntitiesWith2[*benchPosition, *benchVelocity](em) {
			pos, _ := GetComponent[*benchPosition](em, id)
			vel, _ := GetComponent[*benchVelocity](em, id)
			pos.X += vel.DX
		}
	}
}

func BenchmarkCreateDestroy(b *testing.B) {
	em := NewEntityManager()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &benchPosition{})
		em.DestroyEntity(id)
		em.RemoveMarkedEntities()
	}
}
