package erlang_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/domain"
	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/erlang"
)

func TestComputeZeroVolume(t *testing.T) {
	calculator := erlang.NewCalculator(3600, 10000)

	result, err := calculator.Compute(&domain.StaffingRequest{
		CallVolume:         0,
		AverageHandleTime:  300,
		TargetServiceLevel: 0.8,
		TargetAnswerTime:   20,
		Shrinkage:          0.3,
		MaxOccupancy:       0.85,
	})

	require.NoError(t, err)
	assert.Equal(t, int32(0), result.RequiredAgents)
	assert.Equal(t, 1.0, result.ServiceLevel)
	assert.Equal(t, 0.0, result.AverageWaitTime)
	assert.Equal(t, 0.0, result.AverageQueueLength)
}

// 180 通/小时、AHT 300 秒约为 15 Erlang，
// 标准 Erlang-C 表给出 19 个坐席，含 30% 缩减率后为 28 人
func TestComputeStandardScenario(t *testing.T) {
	calculator := erlang.NewCalculator(3600, 10000)

	result, err := calculator.Compute(&domain.StaffingRequest{
		CallVolume:         180,
		AverageHandleTime:  300,
		TargetServiceLevel: 0.8,
		TargetAnswerTime:   20,
		Shrinkage:          0.3,
		MaxOccupancy:       0.85,
	})

	require.NoError(t, err)
	assert.Equal(t, int32(28), result.RequiredAgents)
	assert.GreaterOrEqual(t, result.ServiceLevel, 0.8)
	assert.LessOrEqual(t, result.Occupancy, 0.85)
	assert.Greater(t, result.AverageWaitTime, 0.0)
	assert.Greater(t, result.AverageQueueLength, 0.0)
}

// 其他参数不变时，应排坐席数随来话量单调不减
func TestComputeMonotonicInVolume(t *testing.T) {
	calculator := erlang.NewCalculator(3600, 10000)

	previous := int32(0)
	for volume := 10.0; volume <= 500; volume += 10 {
		result, err := calculator.Compute(&domain.StaffingRequest{
			CallVolume:         volume,
			AverageHandleTime:  300,
			TargetServiceLevel: 0.8,
			TargetAnswerTime:   20,
			Shrinkage:          0.3,
			MaxOccupancy:       0.85,
		})

		require.NoError(t, err, "volume=%.0f", volume)
		assert.GreaterOrEqual(t, result.RequiredAgents, previous, "volume=%.0f", volume)
		previous = result.RequiredAgents
	}
}

func TestComputeUnreachable(t *testing.T) {
	// 搜索上界设得比话务强度还低，目标必然无法达成
	calculator := erlang.NewCalculator(3600, 50)

	_, err := calculator.Compute(&domain.StaffingRequest{
		CallVolume:         1200,
		AverageHandleTime:  300,
		TargetServiceLevel: 0.9,
		TargetAnswerTime:   20,
		Shrinkage:          0.3,
		MaxOccupancy:       0.85,
	})

	var unreachableErr *domain.StaffingUnreachableError
	require.ErrorAs(t, err, &unreachableErr)
	assert.Equal(t, int32(50), unreachableErr.MaxAgents)
	assert.LessOrEqual(t, unreachableErr.BestServiceLevel, 1.0)
}

// 话务强度超过 50 Erlang 时直接按定义算阶乘会溢出，
// 递推实现必须仍然给出有限且合理的结果
func TestComputeLargeOfferedLoad(t *testing.T) {
	calculator := erlang.NewCalculator(3600, 10000)

	result, err := calculator.Compute(&domain.StaffingRequest{
		CallVolume:         2400, // 200 Erlang
		AverageHandleTime:  300,
		TargetServiceLevel: 0.8,
		TargetAnswerTime:   20,
		Shrinkage:          0.3,
		MaxOccupancy:       0.85,
	})

	require.NoError(t, err)
	assert.Greater(t, result.RequiredAgents, int32(200))
	assert.GreaterOrEqual(t, result.ServiceLevel, 0.8)
	assert.LessOrEqual(t, result.ServiceLevel, 1.0)
	assert.Greater(t, result.Occupancy, 0.0)
	assert.LessOrEqual(t, result.Occupancy, 0.85)
}
