package utils

import (
	"math/rand"

	"github.com/mozillazg/go-pinyin"

	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/domain"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

// GenerateAgentCodeFromChineseName 根据姓名拼音生成坐席工号
func GenerateAgentCodeFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	code := ""

	for _, py := range pinyinArray {
		code += py[:1]
	}

	for i := 0; i < 4; i++ {
		code += string(digits[rand.Intn(len(digits))])
	}

	return code
}

// 常见的呼叫中心技能队列
var skillPool = []string{"voice", "chat", "email", "vip", "tech"}

// GenerateRandomSkills 随机生成一到三个技能，按优先级排列
func GenerateRandomSkills() []string {
	shuffled := append([]string{}, skillPool...)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	n := rand.Intn(3) + 1
	return shuffled[:n]
}

// GenerateRandomAvailability 从给定的时段中随机选出一个非空子集
func GenerateRandomAvailability(intervals []int32) []int32 {
	shuffled := append([]int32{}, intervals...)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	n := rand.Intn(len(shuffled)) + 1
	return shuffled[:n]
}

// GenerateRandomAgent 随机生成一个坐席
func GenerateRandomAgent(id int64, intervals []int32) *domain.Agent {
	fullName := GenerateRandomChineseName()

	return &domain.Agent{
		ID:                id,
		FullName:          fullName,
		Code:              GenerateAgentCodeFromChineseName(fullName),
		Skills:            GenerateRandomSkills(),
		Efficiency:        0.8 + rand.Float64()*0.4, // 0.8~1.2
		Availability:      GenerateRandomAvailability(intervals),
		MaxHoursPerPeriod: float64(rand.Intn(5) + 6), // 6~10 小时
		MinHoursPerPeriod: float64(rand.Intn(3)),     // 0~2 小时
		HourlyRate:        20 + rand.Float64()*30,    // 时薪 20~50
	}
}

// GenerateRandomRoster 随机生成一批坐席
func GenerateRandomRoster(n int, intervals []int32) []*domain.Agent {
	agents := make([]*domain.Agent, n)
	for i := range agents {
		agents[i] = GenerateRandomAgent(int64(i+1), intervals)
	}
	return agents
}

// GenerateRandomForecastRequests 为每个 (时段, 技能) 随机生成一条话务预测
func GenerateRandomForecastRequests(intervals []int32, skills []string) map[int32]map[string]*domain.StaffingRequest {
	forecast := make(map[int32]map[string]*domain.StaffingRequest)
	for _, intervalID := range intervals {
		forecast[intervalID] = make(map[string]*domain.StaffingRequest)
		for _, skillID := range skills {
			forecast[intervalID][skillID] = &domain.StaffingRequest{
				CallVolume:         float64(rand.Intn(200) + 20),
				AverageHandleTime:  float64(rand.Intn(240) + 120),
				TargetServiceLevel: 0.8,
				TargetAnswerTime:   20,
				Shrinkage:          0.3,
				MaxOccupancy:       0.85,
			}
		}
	}
	return forecast
}
