// Package metrics 提供本引擎的 prometheus 指标
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry 本应用专用的 prometheus registry
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// StaffingComputationsTotal 实际执行的 Erlang-C 测算次数
var StaffingComputationsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "wfm",
	Subsystem: "staffing",
	Name:      "computations_total",
	Help:      "实际执行 Erlang-C 测算的次数",
})

// StaffingUnreachableTotal 无法达到目标服务水平的测算次数
var StaffingUnreachableTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "wfm",
	Subsystem: "staffing",
	Name:      "unreachable_total",
	Help:      "在搜索上界内无法达到目标服务水平的测算次数",
})

// CacheHitsTotal 缓存命中次数
var CacheHitsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "wfm",
	Subsystem: "cache",
	Name:      "hits_total",
	Help:      "测算缓存命中次数",
})

// CacheMissesTotal 缓存未命中次数
var CacheMissesTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "wfm",
	Subsystem: "cache",
	Name:      "misses_total",
	Help:      "测算缓存未命中次数",
})

// CacheErrorsTotal 缓存降级次数，降级后直接计算
var CacheErrorsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "wfm",
	Subsystem: "cache",
	Name:      "errors_total",
	Help:      "缓存读写失败并降级为直接计算的次数",
})

// AllocationGapTotal 最近一次分配的总覆盖缺口
var AllocationGapTotal = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "wfm",
	Subsystem: "allocator",
	Name:      "gap_total",
	Help:      "最近一次技能分配未被满足的总需求",
})

// OptimizerDurationSeconds 单次演化耗时
var OptimizerDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "wfm",
	Subsystem: "optimizer",
	Name:      "duration_seconds",
	Help:      "单次遗传算法演化的耗时",
	Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 120},
})

// OptimizerBestFitness 最近一次演化得到的最优适应度
var OptimizerBestFitness = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "wfm",
	Subsystem: "optimizer",
	Name:      "best_fitness",
	Help:      "最近一次演化得到的最优适应度总分",
})
