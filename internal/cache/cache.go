package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/sysu-ecnc-dev/wfm-engine/backend/internal/domain"
)

// Cache 人力测算结果缓存
// 缓存只是优化层：任何实现的失败都不应该阻止计算本身，
// 调用方在 Get/Set 出错时应该降级为直接计算
type Cache interface {
	Get(ctx context.Context, key string) (*domain.StaffingResult, bool, error)
	Set(ctx context.Context, key string, result *domain.StaffingResult) error
}

// Key 根据请求的全部字段生成规范化的缓存键
// 先把所有浮点字段四舍五入到 4 位小数再哈希，
// 避免浮点噪声导致相同参数产生不同的键
func Key(req *domain.StaffingRequest) string {
	canonical := fmt.Sprintf("%.4f|%.4f|%.4f|%.4f|%.4f|%.4f",
		req.CallVolume,
		req.AverageHandleTime,
		req.TargetServiceLevel,
		req.TargetAnswerTime,
		req.Shrinkage,
		req.MaxOccupancy,
	)

	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}
