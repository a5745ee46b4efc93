package domain

// Agent: 坐席，来自组织目录，对本核心只读
type Agent struct {
	ID                int64    `json:"id" yaml:"id" validate:"required"`
	FullName          string   `json:"fullName" yaml:"fullName"`
	Code              string   `json:"code" yaml:"code"`
	Skills            []string `json:"skills" yaml:"skills" validate:"min=1"` // 按优先级从高到低排列，第一个为主技能
	Efficiency        float64  `json:"efficiency" yaml:"efficiency" validate:"gt=0"`
	Availability      []int32  `json:"availability" yaml:"availability"` // 可排班的时段 ID 列表
	MaxHoursPerPeriod float64  `json:"maxHoursPerPeriod" yaml:"maxHoursPerPeriod" validate:"gt=0"`
	MinHoursPerPeriod float64  `json:"minHoursPerPeriod" yaml:"minHoursPerPeriod" validate:"gte=0"`
	HourlyRate        float64  `json:"hourlyRate" yaml:"hourlyRate" validate:"gte=0"`
}

// HasSkill 判断坐席是否具备某个技能
func (a *Agent) HasSkill(skillID string) bool {
	for _, s := range a.Skills {
		if s == skillID {
			return true
		}
	}
	return false
}

// IsAvailable 判断坐席在某个时段是否可排班
func (a *Agent) IsAvailable(intervalID int32) bool {
	for _, id := range a.Availability {
		if id == intervalID {
			return true
		}
	}
	return false
}

// SkillRequirement: 某个 (时段, 技能) 的人力需求，由话务预测推导而来
type SkillRequirement struct {
	IntervalID     int32   `json:"intervalID" yaml:"intervalID"`
	SkillID        string  `json:"skillID" yaml:"skillID" validate:"required"`
	RequiredVolume float64 `json:"requiredVolume" yaml:"requiredVolume" validate:"gte=0"`
}
