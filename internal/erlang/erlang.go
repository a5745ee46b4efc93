package erlang

import (
	"math"

	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/domain"
)

// Calculator 基于 Erlang-C 排队模型的人力测算器
// 无内部状态，可以被多个 goroutine 并发调用
type Calculator struct {
	intervalSeconds float64 // 测算时段的长度（秒）
	maxAgents       int32   // 搜索上界，防止无限循环
}

func NewCalculator(intervalSeconds float64, maxAgents int32) *Calculator {
	return &Calculator{
		intervalSeconds: intervalSeconds,
		maxAgents:       maxAgents,
	}
}

// Compute 计算满足目标服务水平的最小坐席数，并推导该坐席数下的各项指标
// 调用方需要保证 req 已经通过字段校验
func (c *Calculator) Compute(req *domain.StaffingRequest) (*domain.StaffingResult, error) {
	// 没有来话量就不需要坐席
	if req.CallVolume == 0 {
		return &domain.StaffingResult{
			RequiredAgents:     0,
			ServiceLevel:       1.0,
			AverageWaitTime:    0,
			AverageQueueLength: 0,
			Occupancy:          0,
		}, nil
	}

	// 话务强度（Erlang）= 来话量 * 平均处理时长 / 时段长度
	offeredLoad := req.CallVolume * req.AverageHandleTime / c.intervalSeconds

	// 从理论最小坐席数开始向上搜索
	// 注意必须保证坐席数严格大于话务强度，否则队列不稳定
	agents := int32(math.Ceil(offeredLoad))
	if float64(agents) <= offeredLoad {
		agents++
	}

	bestServiceLevel := 0.0

	for ; agents <= c.maxAgents; agents++ {
		probWait := erlangC(offeredLoad, agents)
		serviceLevel := 1 - probWait*math.Exp(-(float64(agents)-offeredLoad)*req.TargetAnswerTime/req.AverageHandleTime)
		occupancy := offeredLoad / float64(agents)

		if serviceLevel > bestServiceLevel {
			bestServiceLevel = serviceLevel
		}

		if serviceLevel >= req.TargetServiceLevel && occupancy <= req.MaxOccupancy {
			// 按缩减率放大后向上取整
			required := int32(math.Ceil(float64(agents) / (1 - req.Shrinkage)))

			return &domain.StaffingResult{
				RequiredAgents:     required,
				ServiceLevel:       serviceLevel,
				AverageWaitTime:    probWait * req.AverageHandleTime / (float64(agents) - offeredLoad),
				AverageQueueLength: probWait * offeredLoad / (float64(agents) - offeredLoad),
				Occupancy:          occupancy,
			}, nil
		}
	}

	return nil, &domain.StaffingUnreachableError{
		BestServiceLevel: bestServiceLevel,
		MaxAgents:        c.maxAgents,
	}
}

// erlangB 用递推公式计算 Erlang-B 阻塞概率
// 直接按定义算阶乘在话务强度超过 50 Erlang 时会溢出，递推形式数值稳定
func erlangB(offeredLoad float64, agents int32) float64 {
	b := 1.0
	for i := int32(1); i <= agents; i++ {
		b = offeredLoad * b / (float64(i) + offeredLoad*b)
	}
	return b
}

// erlangC 由 Erlang-B 转换得到排队等待概率
func erlangC(offeredLoad float64, agents int32) float64 {
	b := erlangB(offeredLoad, agents)
	n := float64(agents)
	return n * b / (n - offeredLoad*(1-b))
}
