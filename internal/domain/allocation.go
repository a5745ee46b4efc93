package domain

// AllocationAssignment: 分配方案中的一条记录
// 表示某个坐席在某个时段被分配到某个技能上
type AllocationAssignment struct {
	AgentID    int64   `json:"agentID"`
	IntervalID int32   `json:"intervalID"`
	SkillID    string  `json:"skillID"`
	Capacity   float64 `json:"capacity"` // 该坐席贡献的有效人力（即效率系数）
}

// AllocationPlan: 完整的技能分配方案
// 不变量：每个坐席在每个时段最多被分配到一个技能，
// 且每个坐席的总工时不超过 MaxHoursPerPeriod
type AllocationPlan struct {
	Assignments []AllocationAssignment `json:"assignments"`
}

// CoverageItem: 某个 (时段, 技能) 的覆盖情况
type CoverageItem struct {
	IntervalID int32   `json:"intervalID"`
	SkillID    string  `json:"skillID"`
	Requested  float64 `json:"requested"`
	Assigned   float64 `json:"assigned"`
	Gap        float64 `json:"gap"` // 未被满足的需求，是数据而不是错误
}

// CoverageReport: 分配方案的覆盖率报告
type CoverageReport struct {
	Items    []CoverageItem `json:"items"`
	TotalGap float64        `json:"totalGap"`
}
