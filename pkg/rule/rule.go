package rule

import (
	"strings"

	"katydid-common-record/pkg/record"
)

// Validator 验证器能力接口
// 契约：失败时向记录的错误集合追加一条属性错误，成功时不做任何修改
// 验证器不返回错误值——配置类问题在工厂构建阶段暴露，而不是验证阶段
type Validator interface {
	Validate(r record.Record, attr string)
}

// ValidateFunc 函数式验证器适配器
type ValidateFunc func(r record.Record, attr string)

func (f ValidateFunc) Validate(r record.Record, attr string) {
	f(r, attr)
}

// Factory 验证器工厂，按参数列表构建验证器实例
// 参数非法时返回配置错误（如 ErrInvalidParams 的包装）
type Factory func(params []string) (Validator, error)

// Spec 验证规格，(验证器标识, 参数列表) 二元组
// 示例：{ID: "length", Params: ["3", "20"]}
type Spec struct {
	ID     string   `json:"id" mapstructure:"id"`
	Params []string `json:"params,omitempty" mapstructure:"params"`
}

// NewSpec 创建验证规格
func NewSpec(id string, params ...string) Spec {
	return Spec{ID: id, Params: params}
}

// ParseSpec 解析单行规格字符串
// 格式："required" 或 "length:3,20"（冒号后为逗号分隔的参数，参数两侧空白会被去除）
// 用途：配置文件中以字符串形式声明验证规则
func ParseSpec(s string) Spec {
	s = strings.TrimSpace(s)
	id, rest, found := strings.Cut(s, ":")
	spec := Spec{ID: strings.TrimSpace(id)}
	if !found || rest == "" {
		return spec
	}

	parts := strings.Split(rest, ",")
	spec.Params = make([]string, 0, len(parts))
	for _, p := range parts {
		spec.Params = append(spec.Params, strings.TrimSpace(p))
	}
	return spec
}

// String 规格的单行字符串形式，与 ParseSpec 互逆
func (s Spec) String() string {
	if len(s.Params) == 0 {
		return s.ID
	}
	return s.ID + ":" + strings.Join(s.Params, ",")
}
