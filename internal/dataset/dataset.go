// Package dataset 负责读写外部系统交换的数据文件：
// 话务预测（forecast）和坐席花名册（roster）
package dataset

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/domain"
)

// ForecastInterval 某个 (时段, 技能) 的话务预测
type ForecastInterval struct {
	IntervalID         int32   `yaml:"intervalID"`
	SkillID            string  `yaml:"skillID" validate:"required"`
	CallVolume         float64 `yaml:"callVolume" validate:"gte=0"`
	AverageHandleTime  float64 `yaml:"averageHandleTime" validate:"gt=0"`
	TargetServiceLevel float64 `yaml:"targetServiceLevel" validate:"gt=0,lte=1"`
	TargetAnswerTime   float64 `yaml:"targetAnswerTime" validate:"gte=0"`
	Shrinkage          float64 `yaml:"shrinkage" validate:"gte=0,lt=1"`
	MaxOccupancy       float64 `yaml:"maxOccupancy" validate:"gt=0,lte=1"`
}

// Request 转换为测算请求
func (f *ForecastInterval) Request() *domain.StaffingRequest {
	return &domain.StaffingRequest{
		CallVolume:         f.CallVolume,
		AverageHandleTime:  f.AverageHandleTime,
		TargetServiceLevel: f.TargetServiceLevel,
		TargetAnswerTime:   f.TargetAnswerTime,
		Shrinkage:          f.Shrinkage,
		MaxOccupancy:       f.MaxOccupancy,
	}
}

type Forecast struct {
	Intervals []ForecastInterval `yaml:"intervals" validate:"required,dive"`
}

type Roster struct {
	Agents []*domain.Agent `yaml:"agents" validate:"required,dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
}

func LoadForecast(path string) (*Forecast, error) {
	var forecast Forecast
	if err := loadYAML(path, &forecast); err != nil {
		return nil, err
	}
	return &forecast, nil
}

func LoadRoster(path string) (*Roster, error) {
	var roster Roster
	if err := loadYAML(path, &roster); err != nil {
		return nil, err
	}
	return &roster, nil
}

func loadYAML(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("无法读取数据文件: %w", err)
	}

	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("无法解析数据文件: %w", err)
	}

	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("数据文件校验失败: %w", err)
	}

	return nil
}

// SaveYAML 把数据集写入文件，由 seed 工具使用
func SaveYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("无法序列化数据集: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("无法写入数据文件: %w", err)
	}

	return nil
}
