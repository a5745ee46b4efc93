package allocator

import (
	"sort"

	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/domain"
)

// Allocator 多技能坐席分配器
// 把一批坐席分配到各个 (时段, 技能) 的人力需求上，
// 优先满足覆盖率，未被满足的需求以覆盖缺口的形式返回
type Allocator struct {
	agents        []*domain.Agent
	requirements  []*domain.SkillRequirement
	intervalHours float64 // 一个时段折算的工时

	shortfall map[int32]map[string]float64 // {intervalID: {skillID: 未满足的需求}}
	assigned  map[int32]map[string]float64 // {intervalID: {skillID: 已分配的有效人力}}
	usedHours map[int64]float64            // {agentID: 已分配的工时}
	taken     map[int64]map[int32]bool     // {agentID: {intervalID: 是否已被占用}}

	plan domain.AllocationPlan
}

func New(agents []*domain.Agent, requirements []*domain.SkillRequirement, intervalHours float64) *Allocator {
	a := &Allocator{
		agents:        make([]*domain.Agent, len(agents)),
		requirements:  requirements,
		intervalHours: intervalHours,
		shortfall:     make(map[int32]map[string]float64),
		assigned:      make(map[int32]map[string]float64),
		usedHours:     make(map[int64]float64),
		taken:         make(map[int64]map[int32]bool),
	}

	copy(a.agents, agents)

	// 为了结果可复现，坐席按 ID 升序处理
	sort.Slice(a.agents, func(i, j int) bool {
		return a.agents[i].ID < a.agents[j].ID
	})

	for _, req := range requirements {
		if _, exists := a.shortfall[req.IntervalID]; !exists {
			a.shortfall[req.IntervalID] = make(map[string]float64)
			a.assigned[req.IntervalID] = make(map[string]float64)
		}
		a.shortfall[req.IntervalID][req.SkillID] += req.RequiredVolume
	}

	return a
}

// Allocate 执行分配并返回分配方案和覆盖率报告
// 分配顺序：
//  1. 只有一个可用技能的坐席先分配到其唯一技能
//  2. 多技能坐席分配到其主技能（技能列表中的第一个）
//  3. 剩余的多技能坐席补到次技能的缺口上
//  4. 仍然未满足的需求记入覆盖缺口
func (a *Allocator) Allocate() (*domain.AllocationPlan, *domain.CoverageReport) {
	// 第一轮：单技能坐席
	for _, agent := range a.agents {
		if len(agent.Skills) != 1 {
			continue
		}
		a.assignAgentToSkill(agent, agent.Skills[0])
	}

	// 第二轮：多技能坐席的主技能
	for _, agent := range a.agents {
		if len(agent.Skills) < 2 {
			continue
		}
		a.assignAgentToSkill(agent, agent.Skills[0])
	}

	// 第三轮：多技能坐席的次技能
	for _, agent := range a.agents {
		if len(agent.Skills) < 2 {
			continue
		}
		for _, skillID := range agent.Skills[1:] {
			a.assignAgentToSkill(agent, skillID)
		}
	}

	return &a.plan, a.buildReport()
}

// assignAgentToSkill 在坐席可用且还有工时余量的前提下，
// 把坐席分配到该技能还有缺口的时段上
func (a *Allocator) assignAgentToSkill(agent *domain.Agent, skillID string) {
	// 时段按升序遍历，保证相同输入产生相同的方案
	intervals := make([]int32, 0, len(agent.Availability))
	intervals = append(intervals, agent.Availability...)
	sort.Slice(intervals, func(i, j int) bool { return intervals[i] < intervals[j] })

	for _, intervalID := range intervals {
		skills, exists := a.shortfall[intervalID]
		if !exists || skills[skillID] <= 0 {
			continue
		}

		// 每个坐席在每个时段最多承担一个技能
		if a.taken[agent.ID][intervalID] {
			continue
		}

		// 工时上限
		if a.usedHours[agent.ID]+a.intervalHours > agent.MaxHoursPerPeriod {
			continue
		}

		// 坐席贡献的有效人力等于其效率系数
		skills[skillID] -= agent.Efficiency
		a.assigned[intervalID][skillID] += agent.Efficiency
		a.usedHours[agent.ID] += a.intervalHours

		if _, exists := a.taken[agent.ID]; !exists {
			a.taken[agent.ID] = make(map[int32]bool)
		}
		a.taken[agent.ID][intervalID] = true

		a.plan.Assignments = append(a.plan.Assignments, domain.AllocationAssignment{
			AgentID:    agent.ID,
			IntervalID: intervalID,
			SkillID:    skillID,
			Capacity:   agent.Efficiency,
		})
	}
}

// buildReport 按需求的原始顺序汇总每个 (时段, 技能) 的覆盖情况
func (a *Allocator) buildReport() *domain.CoverageReport {
	report := &domain.CoverageReport{
		Items: make([]domain.CoverageItem, 0, len(a.requirements)),
	}

	// 同一个 (时段, 技能) 可能有多条需求记录，先按键聚合
	type key struct {
		intervalID int32
		skillID    string
	}
	requested := make(map[key]float64)
	order := make([]key, 0, len(a.requirements))

	for _, req := range a.requirements {
		k := key{req.IntervalID, req.SkillID}
		if _, exists := requested[k]; !exists {
			order = append(order, k)
		}
		requested[k] += req.RequiredVolume
	}

	for _, k := range order {
		assigned := a.assigned[k.intervalID][k.skillID]
		gap := requested[k] - assigned
		if gap < 0 {
			gap = 0
		}

		report.Items = append(report.Items, domain.CoverageItem{
			IntervalID: k.intervalID,
			SkillID:    k.skillID,
			Requested:  requested[k],
			Assigned:   assigned,
			Gap:        gap,
		})
		report.TotalGap += gap
	}

	return report
}
