package attack

import (
	"sort"

	"github.com/gonewx/survivors/pkg/components"
	"github.com/gonewx/survivors/pkg/ecs"
	"github.com/gonewx/survivors/pkg/utils"
)

// IsTargetable 敌人存活、未死亡且未处于待移除状态
func IsTargetable(em *ecs.EntityManager, id ecs.EntityID) bool {
	if !em.IsAlive(id) {
		return false
	}
	if !ecs.HasComponent[*components.EnemyComponent](em, id) {
		return false
	}
	if ecs.HasComponent[*components.PendingDespawnComponent](em, id) {
		return false
	}
	if health, ok := ecs.GetComponent[*components.HealthComponent](em, id); ok && health.Current <= 0 {
		return false
	}
	return true
}

// LiveEnemies 返回所有可攻击的敌人（按 ID 升序）
func LiveEnemies(em *ecs.EntityManager) []ecs.EntityID {
	all := ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](em)
	out := all[:0]
	for _, id := range all {
		if IsTargetable(em, id) {
			out = append(out, id)
		}
	}
	return out
}

// NearestEnemy 查找距 (x, y) 最近的可攻击敌人
// maxRange <= 0 表示不限距离；skip 返回 true 的敌人被忽略；距离相同取 ID 较小者
func NearestEnemy(em *ecs.EntityManager, x, y, maxRange float64, skip func(ecs.EntityID) bool) (ecs.EntityID, bool) {
	var best ecs.EntityID
	bestDist := -1.0
	limit := maxRange * maxRange

	for _, id := range LiveEnemies(em) {
		if skip != nil && skip(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		d := utils.DistanceSq(x, y, pos.X, pos.Y)
		if maxRange > 0 && d > limit {
			continue
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = id, d
		}
	}
	return best, bestDist >= 0
}

// EnemiesByDistance 返回按距离升序排列的可攻击敌人
func EnemiesByDistance(em *ecs.EntityManager, x, y float64) []ecs.EntityID {
	ids := LiveEnemies(em)
	dist := make(map[ecs.EntityID]float64, len(ids))
	for _, id := range ids {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		dist[id] = utils.DistanceSq(x, y, pos.X, pos.Y)
	}
	sort.SliceStable(ids, func(i, j int) bool {
		return dist[ids[i]] < dist[ids[j]]
	})
	return ids
}

// EnemiesWithin 返回 (x, y) 半径 r 内的可攻击敌人（按 ID 升序）
func EnemiesWithin(em *ecs.EntityManager, x, y, r float64) []ecs.EntityID {
	var out []ecs.EntityID
	r2 := r * r
	for _, id := range LiveEnemies(em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		if utils.DistanceSq(x, y, pos.X, pos.Y) <= r2 {
			out = append(out, id)
		}
	}
	return out
}

// ChainTargets 从 (x, y) 出发计算连锁路径
//
// 每一跳在当前源点 hopRange 范围内寻找最近且本次连锁未访问过的敌人，
// 命中后该敌人成为新的源点；达到 maxHops 或范围内没有候选时停止。
// 返回的目标列表不含重复。
func ChainTargets(em *ecs.EntityManager, x, y, hopRange float64, maxHops int) []ecs.EntityID {
	if hopRange <= 0 || maxHops <= 0 {
		return nil
	}

	visited := make(map[ecs.EntityID]bool, maxHops)
	targets := make([]ecs.EntityID, 0, maxHops)
	sx, sy := x, y

	for hop := 0; hop < maxHops; hop++ {
		next, ok := NearestEnemy(em, sx, sy, hopRange, func(id ecs.EntityID) bool {
			return visited[id]
		})
		if !ok {
			break
		}
		visited[next] = true
		targets = append(targets, next)

		pos, _ := ecs.GetComponent[*components.PositionComponent](em, next)
		sx, sy = pos.X, pos.Y
	}
	return targets
}
