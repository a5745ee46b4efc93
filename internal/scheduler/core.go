package scheduler

import (
	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/domain"
)

// randomInitChromosome 随机初始化一个染色体
func (s *Scheduler) randomInitChromosome() *Chromosome {
	genes := make([]bool, len(s.agents)*len(s.shifts))
	for i := range genes {
		genes[i] = s.rng.Intn(2) == 1
	}

	return &Chromosome{
		genes: genes,
	}
}

/**
 * 计算染色体的适应度
 * total = (CostWeight * cost + CoverageWeight * coverage + ConstraintWeight * constraint) / 权重总和
 * 其中:
 * 		1. cost 分量与总人力成本成反比（成本越低分数越高）
 * 		2. coverage 分量按每个班次的 已排/应排 人数比例给分，排满记满分
 * 		3. constraint 分量从满分开始，按超出工时上限、不足工时下限
 * 		   以及同一时段重复排班的小时数线性扣分
 */
func (s *Scheduler) calcFitness(ch *Chromosome) {
	agentHours := make([]float64, len(s.agents))
	shiftHeadcount := make([]int32, len(s.shifts))
	totalCost := 0.0
	overlapHours := 0.0

	for e, agent := range s.agents {
		// 同一时段被排多个班次的部分算作违规工时
		intervalCount := make(map[int32]int)

		for i, shift := range s.shifts {
			idx := e*len(s.shifts) + i
			if !ch.genes[idx] {
				continue
			}

			agentHours[e] += shift.Hours
			totalCost += shift.Hours * agent.HourlyRate

			intervalCount[shift.IntervalID]++
			if intervalCount[shift.IntervalID] > 1 {
				overlapHours += shift.Hours
			}

			// 不具备技能或不在可排班时段的坐席不计入覆盖
			if s.eligible[idx] {
				shiftHeadcount[i]++
			}
		}
	}

	// 成本分量：按全排满时的成本上界归一化
	costComponent := 100.0
	if s.maxCost > 0 {
		costComponent = 100 * (1 - totalCost/s.maxCost)
	}

	// 覆盖分量：排满记满分，不满按比例给分
	coverageSum := 0.0
	for i, shift := range s.shifts {
		if shift.RequiredAgents <= 0 {
			coverageSum += 1
			continue
		}
		ratio := float64(shiftHeadcount[i]) / float64(shift.RequiredAgents)
		if ratio > 1 {
			ratio = 1
		}
		coverageSum += ratio
	}
	coverageComponent := 100 * coverageSum / float64(len(s.shifts))

	// 约束分量：从满分开始按违规小时数线性扣分
	violationHours := overlapHours
	for e, agent := range s.agents {
		if agentHours[e] > agent.MaxHoursPerPeriod {
			violationHours += agentHours[e] - agent.MaxHoursPerPeriod
		}
		if agentHours[e] < agent.MinHoursPerPeriod {
			violationHours += agent.MinHoursPerPeriod - agentHours[e]
		}
	}
	constraintComponent := 100 - s.parameters.ConstraintPenaltyPerHour*violationHours
	if constraintComponent < 0 {
		constraintComponent = 0
	}

	weightSum := s.parameters.CostWeight + s.parameters.CoverageWeight + s.parameters.ConstraintWeight
	ch.fitness = domain.FitnessScore{
		CostComponent:       costComponent,
		CoverageComponent:   coverageComponent,
		ConstraintComponent: constraintComponent,
		Total: (s.parameters.CostWeight*costComponent +
			s.parameters.CoverageWeight*coverageComponent +
			s.parameters.ConstraintWeight*constraintComponent) / weightSum,
	}
}

// 使用锦标赛来进行选择
// 随机抽取固定数量的染色体，适应度最高的一个胜出
func (s *Scheduler) selectByTournament(pop []*Chromosome) *Chromosome {
	best := pop[s.rng.Intn(len(pop))]
	for i := int32(1); i < s.parameters.TournamentSize; i++ {
		candidate := pop[s.rng.Intn(len(pop))]
		if candidate.fitness.Total > best.fitness.Total {
			best = candidate
		}
	}
	return best
}

// 单点交叉
func (s *Scheduler) singlePointCrossover(ch1 *Chromosome, ch2 *Chromosome) {
	length := len(ch1.genes)
	if length != len(ch2.genes) {
		// 按理来说两个染色体的长度应该能保证是相等的
		// 这里只是以防万一
		return
	}

	// 随机选择一个位置
	point := s.rng.Intn(length)

	// 交换两个染色体在 point 位置之后的基因
	for i := point; i < length; i++ {
		ch1.genes[i], ch2.genes[i] = ch2.genes[i], ch1.genes[i]
	}
}

// 变异
// 每个基因都有一定概率被翻转
func (s *Scheduler) mutate(ch *Chromosome) {
	for i := range ch.genes {
		if s.rng.Float64() < s.parameters.MutationRate {
			ch.genes[i] = !ch.genes[i]
		}
	}
}

// clone 深拷贝染色体
func (ch *Chromosome) clone() *Chromosome {
	genes := make([]bool, len(ch.genes))
	copy(genes, ch.genes)

	return &Chromosome{
		genes:   genes,
		fitness: ch.fitness,
	}
}
