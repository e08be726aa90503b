package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/catalogkit/internal/constants"
)

// ReferenceListKey 参考数据列表缓存 key
func ReferenceListKey(kind string, page, pageSize int, search string) string {
	return fmt.Sprintf("%s:%s:%d:%d:%s", constants.CacheKeyReference, kind, page, pageSize, strings.ToLower(strings.TrimSpace(search)))
}

// GetReferenceList 读取参考数据列表缓存
func GetReferenceList(ctx context.Context, key string, dest interface{}) (bool, error) {
	return GetJSON(ctx, key, dest)
}

// SetReferenceList 写入参考数据列表缓存
func SetReferenceList(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return SetJSON(ctx, key, value, ttl)
}

// InvalidateReferences 清理指定类型的参考数据缓存
func InvalidateReferences(ctx context.Context, kinds ...string) error {
	for _, kind := range kinds {
		if err := DelByPrefix(ctx, fmt.Sprintf("%s:%s:", constants.CacheKeyReference, kind)); err != nil {
			return err
		}
	}
	return nil
}
