package rule

import (
	"fmt"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"katydid-common-record/pkg/record"
)

// bcryptHashFactory bcrypt 哈希格式验证器，可选参数为最小 cost
// 用途：校验存储的口令哈希字段确实是合法的 bcrypt 哈希，且强度不低于要求
// 示例：("bcrypthash") 或 ("bcrypthash", "10")
func bcryptHashFactory(params []string) (Validator, error) {
	if len(params) > 1 {
		return nil, fmt.Errorf("%w: bcrypthash takes at most a min cost", ErrInvalidParams)
	}
	minCost := bcrypt.MinCost
	if len(params) == 1 {
		c, err := strconv.Atoi(params[0])
		if err != nil {
			return nil, fmt.Errorf("%w: bcrypthash cost %q: %v", ErrInvalidParams, params[0], err)
		}
		if c < bcrypt.MinCost || c > bcrypt.MaxCost {
			return nil, fmt.Errorf("%w: bcrypthash cost out of range", ErrInvalidParams)
		}
		minCost = c
	}

	return ValidateFunc(func(r record.Record, attr string) {
		value := r.Attr(attr)
		if isBlank(value) {
			return
		}
		s, ok := value.(string)
		if !ok {
			r.AddError(attr, fmt.Sprintf("%s must be a string.", r.AttrLabel(attr)))
			return
		}
		cost, err := bcrypt.Cost([]byte(s))
		if err != nil {
			r.AddError(attr, fmt.Sprintf("%s is not a valid bcrypt hash.", r.AttrLabel(attr)))
			return
		}
		if cost < minCost {
			r.AddError(attr, fmt.Sprintf("%s hash cost %d is below the required minimum %d.", r.AttrLabel(attr), cost, minCost))
		}
	}), nil
}
