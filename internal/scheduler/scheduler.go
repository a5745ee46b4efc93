package scheduler

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sort"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/domain"
)

type Scheduler struct {
	parameters *Parameters
	agents     []*domain.Agent
	shifts     []*domain.Shift

	rng         *rand.Rand
	parallelism int

	eligible []bool  // {agent*len(shifts)+shift: 坐席是否具备该班次的技能且在该时段可排班}
	maxCost  float64 // 所有基因全为真时的总成本，用于归一化成本分量
}

func New(parameters *Parameters, agents []*domain.Agent, shifts []*domain.Shift) (*Scheduler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(parameters); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil, &domain.ConfigurationError{Message: err.Error()}
		}
		return nil, &domain.ConfigurationError{Message: validationErrors[0].Error()}
	}

	if parameters.CostWeight+parameters.CoverageWeight+parameters.ConstraintWeight <= 0 {
		return nil, &domain.ConfigurationError{Message: "三个目标的权重总和必须大于 0"}
	}

	if len(agents) == 0 || len(shifts) == 0 {
		return nil, &domain.ConfigurationError{Message: fmt.Sprintf("染色体长度必须大于 0（坐席数 %d，班次数 %d）", len(agents), len(shifts))}
	}

	s := &Scheduler{
		parameters:  parameters,
		agents:      make([]*domain.Agent, len(agents)),
		shifts:      shifts,
		rng:         rand.New(rand.NewSource(parameters.Seed)),
		parallelism: parameters.Parallelism,
	}

	if s.parallelism == 0 {
		s.parallelism = runtime.NumCPU()
	}

	// 坐席按 ID 升序排列，保证基因位置和结果顺序是确定的
	copy(s.agents, agents)
	sort.Slice(s.agents, func(i, j int) bool {
		return s.agents[i].ID < s.agents[j].ID
	})

	// 预计算每个 (坐席, 班次) 的资格和成本上界
	s.eligible = make([]bool, len(s.agents)*len(s.shifts))
	for e, agent := range s.agents {
		for i, shift := range s.shifts {
			s.eligible[e*len(s.shifts)+i] = agent.HasSkill(shift.SkillID) && agent.IsAvailable(shift.IntervalID)
			s.maxCost += shift.Hours * agent.HourlyRate
		}
	}

	return s, nil
}

// Optimize 演化出最优排班方案
// 返回整个演化过程中见过的最优染色体（而不是最后一代的最优），
// 解码为排班方案，并附带逐代的适应度统计
func (s *Scheduler) Optimize() (*domain.ScheduleAssignment, *domain.GenerationTrace, error) {
	// 生成初始种群
	pop := make([]*Chromosome, s.parameters.PopulationSize)
	for i := range pop {
		pop[i] = s.randomInitChromosome()
	}
	s.evaluatePopulation(pop)

	bestChromosomeEver := &Chromosome{
		genes:   nil,
		fitness: domain.FitnessScore{Total: -math.MaxFloat64},
	}

	trace := &domain.GenerationTrace{
		Generations: make([]domain.GenerationStats, 0, s.parameters.MaxGenerations),
	}

	for gen := int32(0); gen < s.parameters.MaxGenerations; gen++ {
		// 统计本代并更新历史最优
		genBestIndex := 0
		sumFit := 0.0
		for i, ch := range pop {
			sumFit += ch.fitness.Total
			if ch.fitness.Total > pop[genBestIndex].fitness.Total {
				genBestIndex = i
			}
		}

		if pop[genBestIndex].fitness.Total > bestChromosomeEver.fitness.Total {
			// 深拷贝，防止后续繁殖过程修改指向的基因
			bestChromosomeEver = pop[genBestIndex].clone()
		}

		trace.Generations = append(trace.Generations, domain.GenerationStats{
			Generation:     gen,
			BestFitness:    bestChromosomeEver.fitness.Total,
			AverageFitness: sumFit / float64(len(pop)),
		})

		// 繁殖
		newPop := make([]*Chromosome, 0, s.parameters.PopulationSize)

		// 保留精英
		sort.Slice(pop, func(i, j int) bool {
			return pop[i].fitness.Total > pop[j].fitness.Total
		})
		eliteCount := min(int(s.parameters.EliteCount), len(pop))
		for i := 0; i < eliteCount; i++ {
			newPop = append(newPop, pop[i].clone())
		}

		// 在剩余的名额中进行选择、交叉和变异
		for len(newPop) < int(s.parameters.PopulationSize) {
			p1 := s.selectByTournament(pop).clone()
			p2 := s.selectByTournament(pop).clone()

			if s.rng.Float64() < s.parameters.CrossoverRate {
				s.singlePointCrossover(p1, p2)
			}

			s.mutate(p1)
			s.mutate(p2)

			newPop = append(newPop, p1)

			if len(newPop) < int(s.parameters.PopulationSize) {
				newPop = append(newPop, p2)
			}
		}

		pop = newPop
		s.evaluatePopulation(pop)
	}

	// 最后一代也可能产生历史最优
	for _, ch := range pop {
		if ch.fitness.Total > bestChromosomeEver.fitness.Total {
			bestChromosomeEver = ch.clone()
		}
	}

	return s.decode(bestChromosomeEver), trace, nil
}

// evaluatePopulation 并行计算整个种群的适应度
// 每个染色体的适应度只依赖它自己的基因，天然可以并行
func (s *Scheduler) evaluatePopulation(pop []*Chromosome) {
	g := new(errgroup.Group)
	g.SetLimit(s.parallelism)

	for _, ch := range pop {
		ch := ch
		g.Go(func() error {
			s.calcFitness(ch)
			return nil
		})
	}

	// 这里的 goroutine 不会返回错误
	_ = g.Wait()
}

// decode 把染色体解码为排班方案
func (s *Scheduler) decode(ch *Chromosome) *domain.ScheduleAssignment {
	assignment := &domain.ScheduleAssignment{
		Shifts:  make([]domain.ScheduleShiftAssignment, len(s.shifts)),
		Agents:  make([]domain.AgentScheduleSummary, 0, len(s.agents)),
		Fitness: ch.fitness,
	}

	for i, shift := range s.shifts {
		assignment.Shifts[i] = domain.ScheduleShiftAssignment{
			ShiftID:    shift.ID,
			IntervalID: shift.IntervalID,
			SkillID:    shift.SkillID,
			AgentIDs:   make([]int64, 0),
		}
	}

	for e, agent := range s.agents {
		summary := domain.AgentScheduleSummary{
			AgentID:  agent.ID,
			ShiftIDs: make([]int64, 0),
		}

		for i, shift := range s.shifts {
			if !ch.genes[e*len(s.shifts)+i] {
				continue
			}
			assignment.Shifts[i].AgentIDs = append(assignment.Shifts[i].AgentIDs, agent.ID)
			summary.ShiftIDs = append(summary.ShiftIDs, shift.ID)
			summary.Hours += shift.Hours
			summary.Cost += shift.Hours * agent.HourlyRate
		}

		assignment.TotalCost += summary.Cost
		assignment.Agents = append(assignment.Agents, summary)
	}

	return assignment
}
