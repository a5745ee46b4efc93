package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Interval    struct {
		DurationSeconds float64 `env:"DURATION_SECONDS" envDefault:"3600"` // 每个测算时段的长度（秒）
	} `envPrefix:"INTERVAL_"`
	Staffing struct {
		MaxAgents int32 `env:"MAX_AGENTS" envDefault:"10000"` // 人力测算的搜索上界
	} `envPrefix:"STAFFING_"`
	Cache struct {
		Backend    string `env:"BACKEND" envDefault:"memory"` // memory 或 redis
		TTL        int    `env:"TTL" envDefault:"3600"`       // 缓存过期时间（秒）
		ShardCount int    `env:"SHARD_COUNT" envDefault:"16"`
		Redis      struct {
			Host           string `env:"HOST" envDefault:"localhost"`
			Port           int    `env:"PORT" envDefault:"6379"`
			Password       string `env:"PASSWORD" envDefault:""`
			ConnectTimeout int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		} `envPrefix:"REDIS_"`
	} `envPrefix:"CACHE_"`
	Optimizer struct {
		PopulationSize           int32   `env:"POPULATION_SIZE" envDefault:"100"`
		MaxGenerations           int32   `env:"MAX_GENERATIONS" envDefault:"200"`
		CrossoverRate            float64 `env:"CROSSOVER_RATE" envDefault:"0.8"`
		MutationRate             float64 `env:"MUTATION_RATE" envDefault:"0.01"`
		TournamentSize           int32   `env:"TOURNAMENT_SIZE" envDefault:"3"`
		EliteCount               int32   `env:"ELITE_COUNT" envDefault:"2"`
		Parallelism              int     `env:"PARALLELISM" envDefault:"4"` // 适应度并行计算的 worker 数量
		ConstraintPenaltyPerHour float64 `env:"CONSTRAINT_PENALTY_PER_HOUR" envDefault:"5"`
		CostWeight               float64 `env:"COST_WEIGHT" envDefault:"1"`
		CoverageWeight           float64 `env:"COVERAGE_WEIGHT" envDefault:"3"`
		ConstraintWeight         float64 `env:"CONSTRAINT_WEIGHT" envDefault:"2"`
		Seed                     int64   `env:"SEED" envDefault:"42"`
	} `envPrefix:"OPTIMIZER_"`
	Metrics struct {
		Port            string `env:"PORT" envDefault:"9090"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"METRICS_"`
	Dataset struct {
		ForecastPath string `env:"FORECAST_PATH" envDefault:"forecast.yaml"`
		RosterPath   string `env:"ROSTER_PATH" envDefault:"roster.yaml"`
		OutputPath   string `env:"OUTPUT_PATH" envDefault:"schedule.json"`
	} `envPrefix:"DATASET_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// 只返回第一个错误使得日志更清晰
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	return cfg, nil
}
