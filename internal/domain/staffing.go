package domain

import "time"

// StaffingRequest: 单个 (时段, 技能) 的人力测算请求
// 注意这个结构体是不可变的值类型，同时也是缓存键的来源
type StaffingRequest struct {
	CallVolume         float64 `json:"callVolume" validate:"gte=0"`                // 时段内的来话量
	AverageHandleTime  float64 `json:"averageHandleTime" validate:"gt=0"`          // 平均处理时长（秒）
	TargetServiceLevel float64 `json:"targetServiceLevel" validate:"gt=0,lte=1"`   // 目标服务水平
	TargetAnswerTime   float64 `json:"targetAnswerTime" validate:"gte=0"`          // 目标应答时间（秒）
	Shrinkage          float64 `json:"shrinkage" validate:"gte=0,lt=1"`            // 缩减率（休息、培训等导致的不可用时间占比）
	MaxOccupancy       float64 `json:"maxOccupancy" validate:"gt=0,lte=1"`         // 最大占用率
}

// StaffingResult: 人力测算结果，创建后不再修改
type StaffingResult struct {
	RequiredAgents     int32   `json:"requiredAgents"`     // 含缩减率的应排坐席数
	ServiceLevel       float64 `json:"serviceLevel"`       // 该坐席数下达到的服务水平
	AverageWaitTime    float64 `json:"averageWaitTime"`    // 平均等待时间（秒）
	AverageQueueLength float64 `json:"averageQueueLength"` // 平均排队长度
	Occupancy          float64 `json:"occupancy"`          // 占用率
}

// CacheEntry: 缓存条目，由缓存独占持有
type CacheEntry struct {
	Result    StaffingResult `json:"result"`
	CreatedAt time.Time      `json:"createdAt"`
}
