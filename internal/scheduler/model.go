package scheduler

import "github.com/sysu-ecnc-dev/wfm-engine/backend/internal/domain"

// Chromosome: 一个候选排班方案
// genes 是长度为 |坐席| * |班次| 的位向量，
// genes[e*len(shifts)+s] 为真表示第 e 个坐席承担第 s 个班次
type Chromosome struct {
	genes   []bool
	fitness domain.FitnessScore
}

// 遗传算法参数
type Parameters struct {
	PopulationSize int32   `validate:"gt=0"`        // 种群大小
	MaxGenerations int32   `validate:"gt=0"`        // 最大迭代次数
	CrossoverRate  float64 `validate:"gte=0,lte=1"` // 交叉概率
	MutationRate   float64 `validate:"gte=0,lte=1"` // 每个基因的变异概率
	TournamentSize int32   `validate:"gt=0"`        // 锦标赛选择的规模
	EliteCount     int32   `validate:"gte=0"`       // 每代直接保留的精英数量
	Parallelism    int     `validate:"gte=0"`       // 适应度并行计算的 worker 数量，0 表示使用 CPU 核数

	// 约束惩罚：每超出/不足一小时扣除的分数，是可调参数而不是固定的业务规则
	ConstraintPenaltyPerHour float64 `validate:"gte=0"`

	// 三个优化目标的权重，权重为 0 表示关闭该目标，总和必须大于 0
	CostWeight       float64 `validate:"gte=0"`
	CoverageWeight   float64 `validate:"gte=0"`
	ConstraintWeight float64 `validate:"gte=0"`

	// 随机种子，相同的种子和输入保证产生相同的结果
	Seed int64
}
