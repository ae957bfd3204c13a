package rule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"katydid-common-record/pkg/record"
)

// registerBuiltins 注册全部内置验证器工厂
// 数据库/redis 支撑的验证器（unique/exist/blocklist）需要外部句柄，
// 由嵌入方通过 NewUniqueFactory 等构造器自行注册
func registerBuiltins(r *Registry) {
	r.MustRegister("required", requiredFactory)
	r.MustRegister("length", lengthFactory)
	r.MustRegister("range", rangeFactory)
	r.MustRegister("match", matchFactory)
	r.MustRegister("in", inFactory)
	r.MustRegister("compare", compareFactory)
	r.MustRegister("var", playgroundFactory)
	r.MustRegister("jwt", jwtFactory)
	r.MustRegister("bcrypthash", bcryptHashFactory)
}

// isBlank 判断属性值是否为空：nil、空串、纯空白均视为空
func isBlank(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// requiredFactory 必填验证器，无参数
func requiredFactory(params []string) (Validator, error) {
	if len(params) != 0 {
		return nil, fmt.Errorf("%w: required takes no params", ErrInvalidParams)
	}
	return ValidateFunc(func(r record.Record, attr string) {
		if isBlank(r.Attr(attr)) {
			r.AddError(attr, fmt.Sprintf("%s cannot be blank.", r.AttrLabel(attr)))
		}
	}), nil
}

// lengthFactory 字符串长度验证器，参数 min[,max]
// 长度按 rune 计，空值不校验（组合 required 表达必填）
func lengthFactory(params []string) (Validator, error) {
	if len(params) < 1 || len(params) > 2 {
		return nil, fmt.Errorf("%w: length takes min[,max]", ErrInvalidParams)
	}
	min, err := strconv.Atoi(params[0])
	if err != nil {
		return nil, fmt.Errorf("%w: length min %q: %v", ErrInvalidParams, params[0], err)
	}
	max := -1
	if len(params) == 2 {
		if max, err = strconv.Atoi(params[1]); err != nil {
			return nil, fmt.Errorf("%w: length max %q: %v", ErrInvalidParams, params[1], err)
		}
		if max < min {
			return nil, fmt.Errorf("%w: length max < min", ErrInvalidParams)
		}
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
		n := len([]rune(s))
		if n < min {
			r.AddError(attr, fmt.Sprintf("%s is too short (minimum is %d characters).", r.AttrLabel(attr), min))
		} else if max >= 0 && n > max {
			r.AddError(attr, fmt.Sprintf("%s is too long (maximum is %d characters).", r.AttrLabel(attr), max))
		}
	}), nil
}

// rangeFactory 数值范围验证器，参数 min,max
func rangeFactory(params []string) (Validator, error) {
	if len(params) != 2 {
		return nil, fmt.Errorf("%w: range takes min,max", ErrInvalidParams)
	}
	min, err := strconv.ParseFloat(params[0], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: range min %q: %v", ErrInvalidParams, params[0], err)
	}
	max, err := strconv.ParseFloat(params[1], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: range max %q: %v", ErrInvalidParams, params[1], err)
	}
	if max < min {
		return nil, fmt.Errorf("%w: range max < min", ErrInvalidParams)
	}

	return ValidateFunc(func(r record.Record, attr string) {
		value := r.Attr(attr)
		if value == nil {
			return
		}
		f, ok := toFloat(value)
		if !ok {
			r.AddError(attr, fmt.Sprintf("%s must be a number.", r.AttrLabel(attr)))
			return
		}
		if f < min || f > max {
			r.AddError(attr, fmt.Sprintf("%s must be between %v and %v.", r.AttrLabel(attr), min, max))
		}
	}), nil
}

// toFloat 宽松数值转换，字符串形式的数字同样接受（表单数据常见）
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}
	return 0, false
}

// matchFactory 正则匹配验证器，参数 pattern
func matchFactory(params []string) (Validator, error) {
	if len(params) != 1 {
		return nil, fmt.Errorf("%w: match takes a single pattern", ErrInvalidParams)
	}
	re, err := regexp.Compile(params[0])
	if err != nil {
		return nil, fmt.Errorf("%w: match pattern %q: %v", ErrInvalidParams, params[0], err)
	}

	return ValidateFunc(func(r record.Record, attr string) {
		value := r.Attr(attr)
		if isBlank(value) {
			return
		}
		s, ok := value.(string)
		if !ok || !re.MatchString(s) {
			r.AddError(attr, fmt.Sprintf("%s is invalid.", r.AttrLabel(attr)))
		}
	}), nil
}

// inFactory 枚举验证器，参数为允许值列表
func inFactory(params []string) (Validator, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("%w: in requires at least one allowed value", ErrInvalidParams)
	}
	allowed := make(map[string]struct{}, len(params))
	for _, p := range params {
		allowed[p] = struct{}{}
	}

	return ValidateFunc(func(r record.Record, attr string) {
		value := r.Attr(attr)
		if isBlank(value) {
			return
		}
		if _, ok := allowed[fmt.Sprintf("%v", value)]; !ok {
			r.AddError(attr, fmt.Sprintf("%s is not in the list of allowed values.", r.AttrLabel(attr)))
		}
	}), nil
}

// compareFactory 属性相等比较验证器，参数为另一个属性名
// 典型用途：密码与确认密码一致性
func compareFactory(params []string) (Validator, error) {
	if len(params) != 1 {
		return nil, fmt.Errorf("%w: compare takes the other attribute name", ErrInvalidParams)
	}
	other := params[0]

	return ValidateFunc(func(r record.Record, attr string) {
		a := fmt.Sprintf("%v", r.Attr(attr))
		b := fmt.Sprintf("%v", r.Attr(other))
		if a != b {
			r.AddError(attr, fmt.Sprintf("%s must match %s.", r.AttrLabel(attr), r.AttrLabel(other)))
		}
	}), nil
}
