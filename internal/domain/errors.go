package domain

import "fmt"

// InvalidInputError: 输入字段超出其定义域，在计算开始前被拒绝，不做静默修正
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("输入不合法: %s", e.Message)
}

// StaffingUnreachableError: 在有限的搜索范围内无法同时满足目标服务水平和最大占用率
// BestServiceLevel 为搜索过程中达到过的最高服务水平，供调用方做业务决策
type StaffingUnreachableError struct {
	BestServiceLevel float64
	MaxAgents        int32
}

func (e *StaffingUnreachableError) Error() string {
	return fmt.Sprintf("在 %d 个坐席内无法达到目标服务水平，最高可达 %.4f", e.MaxAgents, e.BestServiceLevel)
}

// ConfigurationError: 遗传算法参数不合法
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("参数配置不合法: %s", e.Message)
}
