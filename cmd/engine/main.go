package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/cache"
	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/config"
	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/dataset"
	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/domain"
	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/engine"
	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/erlang"
	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/metrics"
)

func main() {
	/**********************************************
	 * 创建 logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * 加载配置
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法加载配置文件", "error", err)
		return
	}

	/**********************************************
	 * 创建缓存
	 **********************************************/
	var resultCache cache.Cache

	switch cfg.Cache.Backend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Cache.Redis.Host, cfg.Cache.Redis.Port),
			Password: cfg.Cache.Redis.Password,
			DB:       0,
		})

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Cache.Redis.ConnectTimeout)*time.Second)
		defer cancel()

		// redis 连不上也不影响计算，缓存层会自动降级
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("无法连接到 redis，缓存将降级为直接计算", "error", err)
		}

		resultCache = cache.NewRedisCache(rdb, time.Duration(cfg.Cache.TTL)*time.Second)
	default:
		resultCache = cache.NewMemoryCache(cfg.Cache.ShardCount, time.Duration(cfg.Cache.TTL)*time.Second)
	}

	/**********************************************
	 * 启动指标服务器
	 **********************************************/
	mux := chi.NewRouter()
	mux.Use(middleware.Logger)
	mux.Use(middleware.Recoverer)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Metrics.Port),
		Handler:      mux,
		IdleTimeout:  time.Duration(cfg.Metrics.IdleTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.Metrics.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Metrics.WriteTimeout) * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	go func() {
		logger.Info("正在启动指标服务器...", "port", cfg.Metrics.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("无法启动指标服务器", slog.String("error", err.Error()))
		}
	}()

	/**********************************************
	 * 加载数据集
	 **********************************************/
	forecast, err := dataset.LoadForecast(cfg.Dataset.ForecastPath)
	if err != nil {
		logger.Error("无法加载话务预测", "path", cfg.Dataset.ForecastPath, "error", err)
		return
	}

	roster, err := dataset.LoadRoster(cfg.Dataset.RosterPath)
	if err != nil {
		logger.Error("无法加载坐席花名册", "path", cfg.Dataset.RosterPath, "error", err)
		return
	}

	/**********************************************
	 * 创建引擎
	 **********************************************/
	calculator := erlang.NewCalculator(cfg.Interval.DurationSeconds, cfg.Staffing.MaxAgents)

	eng, err := engine.NewEngine(cfg, calculator, resultCache)
	if err != nil {
		logger.Error("无法创建引擎", "error", err)
		return
	}

	/**********************************************
	 * 逐时段逐技能测算人力需求
	 **********************************************/
	ctx := context.Background()
	requirements := make([]*domain.SkillRequirement, 0, len(forecast.Intervals))

	for _, interval := range forecast.Intervals {
		result, err := eng.ComputeStaffingCached(ctx, interval.Request())
		if err != nil {
			logger.Error("人力测算失败", "intervalID", interval.IntervalID, "skillID", interval.SkillID, "error", err)
			return
		}

		logger.Info("人力测算完成",
			"intervalID", interval.IntervalID,
			"skillID", interval.SkillID,
			"requiredAgents", result.RequiredAgents,
			"serviceLevel", result.ServiceLevel,
			"occupancy", result.Occupancy,
		)

		requirements = append(requirements, &domain.SkillRequirement{
			IntervalID:     interval.IntervalID,
			SkillID:        interval.SkillID,
			RequiredVolume: float64(result.RequiredAgents),
		})
	}

	/**********************************************
	 * 技能分配
	 **********************************************/
	plan, report, err := eng.AllocateSkills(roster.Agents, requirements)
	if err != nil {
		logger.Error("技能分配失败", "error", err)
		return
	}

	logger.Info("技能分配完成", "assignments", len(plan.Assignments), "totalGap", report.TotalGap)
	for _, item := range report.Items {
		if item.Gap > 0 {
			logger.Warn("存在覆盖缺口", "intervalID", item.IntervalID, "skillID", item.SkillID, "requested", item.Requested, "assigned", item.Assigned, "gap", item.Gap)
		}
	}

	/**********************************************
	 * 遗传算法排班
	 **********************************************/
	assignment, trace, err := eng.OptimizeSchedule(roster.Agents, requirements, engine.DefaultParameters(cfg))
	if err != nil {
		logger.Error("排班优化失败", "error", err)
		return
	}

	lastGen := trace.Generations[len(trace.Generations)-1]
	logger.Info("排班优化完成",
		"totalCost", assignment.TotalCost,
		"fitness", assignment.Fitness.Total,
		"generations", len(trace.Generations),
		"lastBestFitness", lastGen.BestFitness,
	)

	/**********************************************
	 * 写出结果
	 **********************************************/
	output := struct {
		Plan       *domain.AllocationPlan     `json:"plan"`
		Report     *domain.CoverageReport     `json:"report"`
		Assignment *domain.ScheduleAssignment `json:"assignment"`
		Trace      *domain.GenerationTrace    `json:"trace"`
	}{plan, report, assignment, trace}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		logger.Error("无法序列化排班结果", "error", err)
		return
	}
	if err := os.WriteFile(cfg.Dataset.OutputPath, data, 0o644); err != nil {
		logger.Error("无法写出排班结果", "path", cfg.Dataset.OutputPath, "error", err)
		return
	}
	logger.Info("排班结果已写出", "path", cfg.Dataset.OutputPath)

	/**********************************************
	 * 关闭指标服务器
	 **********************************************/
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Metrics.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("关闭指标服务器失败", slog.String("error", err.Error()))
	}
}
