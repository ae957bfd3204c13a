package rule

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"katydid-common-record/pkg/record"
)

var (
	// playgroundValidate 底层 go-playground 验证器实例（全局单例）
	// 该库内部做了规则编译缓存，共享实例可以复用缓存
	playgroundValidate *validator.Validate

	playgroundOnce sync.Once
)

func playground() *validator.Validate {
	playgroundOnce.Do(func() {
		playgroundValidate = validator.New()
	})
	return playgroundValidate
}

// playgroundFactory go-playground/validator 适配器工厂
// 参数整体作为 tag 字符串交给 validate.Var 执行，例如 ("var", "email") 或 ("var", "min=3", "max=20")
// 用途：内置验证器未覆盖的格式规则（email/url/uuid/ip 等）直接借用成熟规则库
func playgroundFactory(params []string) (Validator, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("%w: var requires a tag string", ErrInvalidParams)
	}
	tag := strings.Join(params, ",")

	// 提前编译探测：对零值跑一次，捕获非法 tag（属于配置错误，必须在构建期暴露）
	if err := validateTag(tag); err != nil {
		return nil, fmt.Errorf("%w: var tag %q: %v", ErrInvalidParams, tag, err)
	}

	return ValidateFunc(func(r record.Record, attr string) {
		value := r.Attr(attr)
		if isBlank(value) {
			return
		}
		if err := playground().Var(value, tag); err != nil {
			r.AddError(attr, fmt.Sprintf("%s is invalid (%s).", r.AttrLabel(attr), tag))
		}
	}), nil
}

// validateTag 探测 tag 合法性
// go-playground 对未知 tag 的反应是 panic，这里转换为普通错误
func validateTag(tag string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	// 空串对绝大多数 tag 要么通过要么产生 ValidationErrors，两者都说明 tag 可被解析
	verr := playground().Var("", tag)
	var invalid *validator.InvalidValidationError
	if ok := asInvalid(verr, &invalid); ok {
		return invalid
	}
	return nil
}

func asInvalid(err error, target **validator.InvalidValidationError) bool {
	if err == nil {
		return false
	}
	v, ok := err.(*validator.InvalidValidationError)
	if ok {
		*target = v
	}
	return ok
}
