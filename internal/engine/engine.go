package engine

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"

	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/allocator"
	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/cache"
	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/config"
	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/domain"
	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/metrics"
	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/scheduler"
	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/utils"
)

// StaffingComputer 人力测算器的抽象，便于在测试中统计实际计算次数
type StaffingComputer interface {
	Compute(req *domain.StaffingRequest) (*domain.StaffingResult, error)
}

// Engine 对外暴露的核心入口
// 测算器、缓存、分配器和优化器都通过显式注入组装，不使用全局单例
type Engine struct {
	config     *config.Config
	validate   *validator.Validate
	translator ut.Translator
	computer   StaffingComputer
	cache      cache.Cache
}

func NewEngine(cfg *config.Config, computer StaffingComputer, c cache.Cache) (*Engine, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Engine{
		config:     cfg,
		validate:   validate,
		translator: trans,
		computer:   computer,
		cache:      c,
	}, nil
}

// validateStruct 校验输入并把第一个错误翻译后包装为 InvalidInputError
func (e *Engine) validateStruct(v any) error {
	err := e.validate.Struct(v)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return &domain.InvalidInputError{Message: err.Error()}
	}
	return &domain.InvalidInputError{Message: validationErrors[0].Translate(e.translator)}
}

// ComputeStaffing 直接执行人力测算，不经过缓存
func (e *Engine) ComputeStaffing(req *domain.StaffingRequest) (*domain.StaffingResult, error) {
	if err := e.validateStruct(req); err != nil {
		return nil, err
	}

	metrics.StaffingComputationsTotal.Inc()

	result, err := e.computer.Compute(req)
	if err != nil {
		var unreachableErr *domain.StaffingUnreachableError
		if errors.As(err, &unreachableErr) {
			metrics.StaffingUnreachableTotal.Inc()
		}
		return nil, err
	}

	return result, nil
}

// ComputeStaffingCached 经过缓存的人力测算
// 缓存读写失败只记录日志并降级为直接计算，不会导致测算失败
func (e *Engine) ComputeStaffingCached(ctx context.Context, req *domain.StaffingRequest) (*domain.StaffingResult, error) {
	if err := e.validateStruct(req); err != nil {
		return nil, err
	}

	key := cache.Key(req)

	result, hit, err := e.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("缓存读取失败，降级为直接计算", "key", key, "error", err)
		metrics.CacheErrorsTotal.Inc()
	} else if hit {
		metrics.CacheHitsTotal.Inc()
		return result, nil
	} else {
		metrics.CacheMissesTotal.Inc()
	}

	result, err = e.ComputeStaffing(req)
	if err != nil {
		return nil, err
	}

	if err := e.cache.Set(ctx, key, result); err != nil {
		slog.Warn("缓存写入失败", "key", key, "error", err)
		metrics.CacheErrorsTotal.Inc()
	}

	return result, nil
}

// AllocateSkills 把坐席分配到各 (时段, 技能) 的需求上
// 未被满足的需求以覆盖缺口的形式返回，不是错误
func (e *Engine) AllocateSkills(agents []*domain.Agent, requirements []*domain.SkillRequirement) (*domain.AllocationPlan, *domain.CoverageReport, error) {
	for _, agent := range agents {
		if err := e.validateStruct(agent); err != nil {
			return nil, nil, err
		}
	}
	for _, req := range requirements {
		if err := e.validateStruct(req); err != nil {
			return nil, nil, err
		}
	}

	intervalHours := e.config.Interval.DurationSeconds / 3600

	plan, report := allocator.New(agents, requirements, intervalHours).Allocate()

	// 和排班结果一样，分配方案在返回前做一次约束自检
	if err := utils.ValidateAllocationPlan(plan, agents, intervalHours); err != nil {
		return nil, nil, err
	}

	metrics.AllocationGapTotal.Set(report.TotalGap)

	return plan, report, nil
}

// OptimizeSchedule 用遗传算法搜索坐席到班次的最优指派
func (e *Engine) OptimizeSchedule(agents []*domain.Agent, requirements []*domain.SkillRequirement, parameters *scheduler.Parameters) (*domain.ScheduleAssignment, *domain.GenerationTrace, error) {
	for _, agent := range agents {
		if err := e.validateStruct(agent); err != nil {
			return nil, nil, err
		}
	}
	for _, req := range requirements {
		if err := e.validateStruct(req); err != nil {
			return nil, nil, err
		}
	}

	shifts := e.ShiftsFromRequirements(requirements)

	s, err := scheduler.New(parameters, agents, shifts)
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	assignment, trace, err := s.Optimize()
	if err != nil {
		return nil, nil, err
	}

	// 和分配方案一样，排班结果在返回前做一次结构自检
	if err := utils.ValidateScheduleAssignment(assignment, agents); err != nil {
		return nil, nil, err
	}

	metrics.OptimizerDurationSeconds.Observe(time.Since(start).Seconds())
	metrics.OptimizerBestFitness.Set(assignment.Fitness.Total)

	return assignment, trace, nil
}

// ShiftsFromRequirements 把每条人力需求转换为一个排班槽位
// 应排人数向上取整，班次时长等于时段时长
func (e *Engine) ShiftsFromRequirements(requirements []*domain.SkillRequirement) []*domain.Shift {
	shifts := make([]*domain.Shift, len(requirements))
	for i, req := range requirements {
		shifts[i] = &domain.Shift{
			ID:             int64(i),
			IntervalID:     req.IntervalID,
			SkillID:        req.SkillID,
			RequiredAgents: int32(math.Ceil(req.RequiredVolume)),
			Hours:          e.config.Interval.DurationSeconds / 3600,
		}
	}
	return shifts
}

// DefaultParameters 根据配置构造遗传算法参数
func DefaultParameters(cfg *config.Config) *scheduler.Parameters {
	return &scheduler.Parameters{
		PopulationSize:           cfg.Optimizer.PopulationSize,
		MaxGenerations:           cfg.Optimizer.MaxGenerations,
		CrossoverRate:            cfg.Optimizer.CrossoverRate,
		MutationRate:             cfg.Optimizer.MutationRate,
		TournamentSize:           cfg.Optimizer.TournamentSize,
		EliteCount:               cfg.Optimizer.EliteCount,
		Parallelism:              cfg.Optimizer.Parallelism,
		ConstraintPenaltyPerHour: cfg.Optimizer.ConstraintPenaltyPerHour,
		CostWeight:               cfg.Optimizer.CostWeight,
		CoverageWeight:           cfg.Optimizer.CoverageWeight,
		ConstraintWeight:         cfg.Optimizer.ConstraintWeight,
		Seed:                     cfg.Optimizer.Seed,
	}
}
