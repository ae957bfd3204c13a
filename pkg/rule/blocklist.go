package rule

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"katydid-common-record/pkg/record"
)

// NewBlocklistFactory 黑名单验证器工厂
// 参数：redis set 的键名；属性值命中集合成员则失败
// 典型用途：封禁用户名、一次性邮箱域名等运营维护的动态黑名单
//
// 注册方式与数据库验证器相同：
//
//	reg.Register("blocklist", rule.NewBlocklistFactory(client))
func NewBlocklistFactory(client redis.UniversalClient) Factory {
	return func(params []string) (Validator, error) {
		if len(params) != 1 {
			return nil, fmt.Errorf("%w: blocklist takes the set key", ErrInvalidParams)
		}
		if client == nil {
			return nil, ErrNilRedis
		}
		setKey := params[0]

		return ValidateFunc(func(r record.Record, attr string) {
			value := r.Attr(attr)
			if isBlank(value) {
				return
			}
			member := fmt.Sprintf("%v", value)
			blocked, err := client.SIsMember(context.Background(), setKey, member).Result()
			if err != nil {
				// redis 不可达按放行处理：黑名单是运营增强，不应阻塞正常提交
				return
			}
			if blocked {
				r.AddError(attr, fmt.Sprintf("%s is not allowed.", r.AttrLabel(attr)))
			}
		}), nil
	}
}
