package engine_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/cache"
	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/config"
	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/domain"
	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/engine"
	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/erlang"
	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/scheduler"
)

// countingComputer 包装真实的测算器并统计实际计算次数
type countingComputer struct {
	inner *erlang.Calculator
	calls int
}

func (c *countingComputer) Compute(req *domain.StaffingRequest) (*domain.StaffingResult, error) {
	c.calls++
	return c.inner.Compute(req)
}

// failingCache 总是返回错误，用来验证缓存降级
type failingCache struct{}

func (f *failingCache) Get(_ context.Context, _ string) (*domain.StaffingResult, bool, error) {
	return nil, false, errors.New("缓存不可用")
}

func (f *failingCache) Set(_ context.Context, _ string, _ *domain.StaffingResult) error {
	return errors.New("缓存不可用")
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Interval.DurationSeconds = 3600
	cfg.Staffing.MaxAgents = 10000
	return cfg
}

func sampleRequest() *domain.StaffingRequest {
	return &domain.StaffingRequest{
		CallVolume:         180,
		AverageHandleTime:  300,
		TargetServiceLevel: 0.8,
		TargetAnswerTime:   20,
		Shrinkage:          0.3,
		MaxOccupancy:       0.85,
	}
}

func newTestEngine(t *testing.T, c cache.Cache) (*engine.Engine, *countingComputer) {
	t.Helper()

	cfg := testConfig()
	computer := &countingComputer{
		inner: erlang.NewCalculator(cfg.Interval.DurationSeconds, cfg.Staffing.MaxAgents),
	}

	eng, err := engine.NewEngine(cfg, computer, c)
	require.NoError(t, err)
	return eng, computer
}

// 相同请求的第二次调用必须命中缓存，不再触发底层计算
func TestComputeStaffingCachedOnlyComputesOnce(t *testing.T) {
	eng, computer := newTestEngine(t, cache.NewMemoryCache(16, time.Hour))
	ctx := context.Background()

	first, err := eng.ComputeStaffingCached(ctx, sampleRequest())
	require.NoError(t, err)

	second, err := eng.ComputeStaffingCached(ctx, sampleRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, computer.calls)
	assert.Equal(t, *first, *second)
}

// 缓存不可用时降级为直接计算，不影响测算结果
func TestComputeStaffingCachedDegradesOnCacheFailure(t *testing.T) {
	eng, computer := newTestEngine(t, &failingCache{})
	ctx := context.Background()

	first, err := eng.ComputeStaffingCached(ctx, sampleRequest())
	require.NoError(t, err)

	second, err := eng.ComputeStaffingCached(ctx, sampleRequest())
	require.NoError(t, err)

	assert.Equal(t, 2, computer.calls)
	assert.Equal(t, *first, *second)
}

func TestComputeStaffingRejectsInvalidInput(t *testing.T) {
	eng, computer := newTestEngine(t, cache.NewMemoryCache(16, time.Hour))

	tests := map[string]func(req *domain.StaffingRequest){
		"negative_volume":     func(req *domain.StaffingRequest) { req.CallVolume = -1 },
		"zero_handle_time":    func(req *domain.StaffingRequest) { req.AverageHandleTime = 0 },
		"service_level_above": func(req *domain.StaffingRequest) { req.TargetServiceLevel = 1.2 },
		"shrinkage_full":      func(req *domain.StaffingRequest) { req.Shrinkage = 1 },
		"occupancy_zero":      func(req *domain.StaffingRequest) { req.MaxOccupancy = 0 },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			req := sampleRequest()
			mutate(req)

			_, err := eng.ComputeStaffing(req)

			var invalidErr *domain.InvalidInputError
			assert.ErrorAs(t, err, &invalidErr)
		})
	}

	// 非法输入在计算开始前就被拒绝
	assert.Equal(t, 0, computer.calls)
}

func TestAllocateSkillsFullCoverageScenario(t *testing.T) {
	eng, _ := newTestEngine(t, cache.NewMemoryCache(16, time.Hour))

	agents := []*domain.Agent{
		{ID: 1, Skills: []string{"voice"}, Efficiency: 1, Availability: []int32{1}, MaxHoursPerPeriod: 8},
		{ID: 2, Skills: []string{"chat"}, Efficiency: 1, Availability: []int32{1}, MaxHoursPerPeriod: 8},
		{ID: 3, Skills: []string{"email"}, Efficiency: 1, Availability: []int32{1}, MaxHoursPerPeriod: 8},
	}
	requirements := []*domain.SkillRequirement{
		{IntervalID: 1, SkillID: "voice", RequiredVolume: 1},
		{IntervalID: 1, SkillID: "chat", RequiredVolume: 1},
		{IntervalID: 1, SkillID: "email", RequiredVolume: 1},
	}

	plan, report, err := eng.AllocateSkills(agents, requirements)
	require.NoError(t, err)

	assert.Len(t, plan.Assignments, 3)
	assert.Equal(t, 0.0, report.TotalGap)
}

func TestAllocateSkillsRejectsInvalidAgent(t *testing.T) {
	eng, _ := newTestEngine(t, cache.NewMemoryCache(16, time.Hour))

	agents := []*domain.Agent{
		{ID: 1, Skills: []string{"voice"}, Efficiency: 0, Availability: []int32{1}, MaxHoursPerPeriod: 8},
	}

	_, _, err := eng.AllocateSkills(agents, nil)

	var invalidErr *domain.InvalidInputError
	assert.ErrorAs(t, err, &invalidErr)
}

func TestOptimizeScheduleRejectsBadParameters(t *testing.T) {
	eng, _ := newTestEngine(t, cache.NewMemoryCache(16, time.Hour))

	agents := []*domain.Agent{
		{ID: 1, Skills: []string{"voice"}, Efficiency: 1, Availability: []int32{1}, MaxHoursPerPeriod: 8},
	}
	requirements := []*domain.SkillRequirement{
		{IntervalID: 1, SkillID: "voice", RequiredVolume: 1},
	}

	params := &scheduler.Parameters{
		PopulationSize: 0, // 非法
		MaxGenerations: 10,
		TournamentSize: 3,
		CoverageWeight: 1,
	}

	_, _, err := eng.OptimizeSchedule(agents, requirements, params)

	var configErr *domain.ConfigurationError
	assert.ErrorAs(t, err, &configErr)
}

func TestOptimizeScheduleEndToEnd(t *testing.T) {
	eng, _ := newTestEngine(t, cache.NewMemoryCache(16, time.Hour))

	agents := []*domain.Agent{
		{ID: 1, Skills: []string{"voice"}, Efficiency: 1, Availability: []int32{1, 2}, MaxHoursPerPeriod: 8, HourlyRate: 30},
		{ID: 2, Skills: []string{"voice", "chat"}, Efficiency: 1, Availability: []int32{1, 2}, MaxHoursPerPeriod: 8, HourlyRate: 40},
	}
	requirements := []*domain.SkillRequirement{
		{IntervalID: 1, SkillID: "voice", RequiredVolume: 1},
		{IntervalID: 2, SkillID: "chat", RequiredVolume: 1},
	}

	params := &scheduler.Parameters{
		PopulationSize:           20,
		MaxGenerations:           15,
		CrossoverRate:            0.8,
		MutationRate:             0.05,
		TournamentSize:           3,
		EliteCount:               1,
		Parallelism:              2,
		ConstraintPenaltyPerHour: 5,
		CostWeight:               1,
		CoverageWeight:           3,
		ConstraintWeight:         2,
		Seed:                     42,
	}

	assignment, trace, err := eng.OptimizeSchedule(agents, requirements, params)
	require.NoError(t, err)

	assert.Len(t, assignment.Shifts, 2)
	assert.Len(t, trace.Generations, 15)
	assert.GreaterOrEqual(t, assignment.Fitness.Total, 0.0)
}

func TestShiftsFromRequirements(t *testing.T) {
	eng, _ := newTestEngine(t, cache.NewMemoryCache(16, time.Hour))

	shifts := eng.ShiftsFromRequirements([]*domain.SkillRequirement{
		{IntervalID: 3, SkillID: "voice", RequiredVolume: 2.4},
	})

	require.Len(t, shifts, 1)
	assert.Equal(t, int32(3), shifts[0].IntervalID)
	assert.Equal(t, "voice", shifts[0].SkillID)
	assert.Equal(t, int32(3), shifts[0].RequiredAgents) // 向上取整
	assert.Equal(t, 1.0, shifts[0].Hours)
}
