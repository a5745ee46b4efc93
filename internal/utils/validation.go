package utils

import (
	"fmt"

	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/domain"
)

// ValidateAllocationPlan 校验分配方案是否满足硬性约束：
// 每个坐席在每个时段最多承担一个技能、只承担自己具备的技能、
// 只在可排班时段被分配、总工时不超过上限
func ValidateAllocationPlan(plan *domain.AllocationPlan, agents []*domain.Agent, intervalHours float64) error {
	agentByID := make(map[int64]*domain.Agent, len(agents))
	for _, agent := range agents {
		agentByID[agent.ID] = agent
	}

	usedIntervals := make(map[int64]map[int32]bool)
	usedHours := make(map[int64]float64)

	for _, assignment := range plan.Assignments {
		agent, exists := agentByID[assignment.AgentID]
		if !exists {
			return fmt.Errorf("分配方案中的坐席 %d 不在传入的坐席列表中", assignment.AgentID)
		}

		if !agent.HasSkill(assignment.SkillID) {
			return fmt.Errorf("坐席 %d 不具备技能 %s", assignment.AgentID, assignment.SkillID)
		}

		if !agent.IsAvailable(assignment.IntervalID) {
			return fmt.Errorf("坐席 %d 在时段 %d 不可排班", assignment.AgentID, assignment.IntervalID)
		}

		if _, exists := usedIntervals[assignment.AgentID]; !exists {
			usedIntervals[assignment.AgentID] = make(map[int32]bool)
		}
		if usedIntervals[assignment.AgentID][assignment.IntervalID] {
			return fmt.Errorf("坐席 %d 在时段 %d 被重复分配", assignment.AgentID, assignment.IntervalID)
		}
		usedIntervals[assignment.AgentID][assignment.IntervalID] = true

		usedHours[assignment.AgentID] += intervalHours
		if usedHours[assignment.AgentID] > agent.MaxHoursPerPeriod {
			return fmt.Errorf("坐席 %d 的总工时超过了上限 %.2f", assignment.AgentID, agent.MaxHoursPerPeriod)
		}
	}

	return nil
}

// ValidateScheduleAssignment 校验排班方案的结构一致性
func ValidateScheduleAssignment(assignment *domain.ScheduleAssignment, agents []*domain.Agent) error {
	agentByID := make(map[int64]*domain.Agent, len(agents))
	for _, agent := range agents {
		agentByID[agent.ID] = agent
	}

	for _, shift := range assignment.Shifts {
		// 检查同一个班次中是否有重复的坐席
		seen := make(map[int64]bool)
		for _, agentID := range shift.AgentIDs {
			if _, exists := agentByID[agentID]; !exists {
				return fmt.Errorf("班次 %d 中的坐席 %d 不在传入的坐席列表中", shift.ShiftID, agentID)
			}
			if seen[agentID] {
				return fmt.Errorf("班次 %d 中存在重复坐席 %d", shift.ShiftID, agentID)
			}
			seen[agentID] = true
		}
	}

	for _, summary := range assignment.Agents {
		if _, exists := agentByID[summary.AgentID]; !exists {
			return fmt.Errorf("排班汇总中的坐席 %d 不在传入的坐席列表中", summary.AgentID)
		}
	}

	return nil
}
