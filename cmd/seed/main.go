package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/config"
	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/dataset"
	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/utils"
)

func main() {
	var agentNum int
	var intervalNum int

	flag.IntVar(&agentNum, "agents", 20, "要生成的坐席数量")
	flag.IntVar(&intervalNum, "intervals", 8, "要生成的时段数量")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if agentNum <= 0 || intervalNum <= 0 {
		logger.Error("坐席数量和时段数量都必须大于 0")
		os.Exit(1)
	}

	intervals := make([]int32, intervalNum)
	for i := range intervals {
		intervals[i] = int32(i + 1)
	}
	skills := []string{"voice", "chat", "email"}

	// 生成随机坐席花名册
	roster := &dataset.Roster{
		Agents: utils.GenerateRandomRoster(agentNum, intervals),
	}
	if err := dataset.SaveYAML(cfg.Dataset.RosterPath, roster); err != nil {
		logger.Error("无法写出坐席花名册", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("坐席花名册已生成", "path", cfg.Dataset.RosterPath, "agents", agentNum)

	// 生成随机话务预测
	forecast := &dataset.Forecast{}
	requests := utils.GenerateRandomForecastRequests(intervals, skills)
	for _, intervalID := range intervals {
		for _, skillID := range skills {
			req := requests[intervalID][skillID]
			forecast.Intervals = append(forecast.Intervals, dataset.ForecastInterval{
				IntervalID:         intervalID,
				SkillID:            skillID,
				CallVolume:         req.CallVolume,
				AverageHandleTime:  req.AverageHandleTime,
				TargetServiceLevel: req.TargetServiceLevel,
				TargetAnswerTime:   req.TargetAnswerTime,
				Shrinkage:          req.Shrinkage,
				MaxOccupancy:       req.MaxOccupancy,
			})
		}
	}
	if err := dataset.SaveYAML(cfg.Dataset.ForecastPath, forecast); err != nil {
		logger.Error("无法写出话务预测", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("话务预测已生成", "path", cfg.Dataset.ForecastPath, "intervals", intervalNum, "skills", len(skills))
}
