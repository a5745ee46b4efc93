package domain

// Shift: 遗传算法中的一个排班槽位，由 SkillRequirement 推导而来
type Shift struct {
	ID             int64   `json:"id"`
	IntervalID     int32   `json:"intervalID"`
	SkillID        string  `json:"skillID"`
	RequiredAgents int32   `json:"requiredAgents"`
	Hours          float64 `json:"hours"`
}

// FitnessScore: 适应度的三个分量及加权总分
// 每一代都会重新计算，不会脱离产生它的染色体单独持久化
type FitnessScore struct {
	CostComponent       float64 `json:"costComponent"`
	CoverageComponent   float64 `json:"coverageComponent"`
	ConstraintComponent float64 `json:"constraintComponent"`
	Total               float64 `json:"total"`
}

// ScheduleShiftAssignment: 最优解中某个班次的坐席安排
type ScheduleShiftAssignment struct {
	ShiftID    int64   `json:"shiftID"`
	IntervalID int32   `json:"intervalID"`
	SkillID    string  `json:"skillID"`
	AgentIDs   []int64 `json:"agentIDs"`
}

// AgentScheduleSummary: 最优解中单个坐席的排班汇总
type AgentScheduleSummary struct {
	AgentID  int64   `json:"agentID"`
	ShiftIDs []int64 `json:"shiftIDs"`
	Hours    float64 `json:"hours"`
	Cost     float64 `json:"cost"`
}

// ScheduleAssignment: 遗传算法解码后的最终排班方案
type ScheduleAssignment struct {
	Shifts    []ScheduleShiftAssignment `json:"shifts"`
	Agents    []AgentScheduleSummary    `json:"agents"`
	TotalCost float64                   `json:"totalCost"`
	Fitness   FitnessScore              `json:"fitness"`
}

// GenerationStats: 单代的适应度统计，用于诊断
type GenerationStats struct {
	Generation     int32   `json:"generation"`
	BestFitness    float64 `json:"bestFitness"`
	AverageFitness float64 `json:"averageFitness"`
}

// GenerationTrace: 整个演化过程的逐代统计
type GenerationTrace struct {
	Generations []GenerationStats `json:"generations"`
}
