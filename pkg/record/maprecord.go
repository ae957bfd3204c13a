package record

import (
	"strings"
	"unicode"
)

// MapRecord 基于属性集合的内存记录实现
// 设计目标：
//   - 提供 Record 契约的参考实现，开箱即用于表单验证和测试
//   - 标签缺省时按属性名自动人性化（shipping_method -> "Shipping Method"）
//   - 关联记录按名称注册，未注册或注册为 nil 均视为关联缺失
//
// 线程安全：非线程安全，同一记录上的并发验证需由调用方串行化
type MapRecord struct {
	attrs   Attributes
	labels  map[string]string
	related map[string]Record
	errs    ErrorList
}

// NewMapRecord 创建内存记录
func NewMapRecord(attrs Attributes) *MapRecord {
	if attrs == nil {
		attrs = NewAttributes(8)
	}
	return &MapRecord{attrs: attrs}
}

// WithLabel 注册属性显示标签，返回自身以支持链式调用
func (r *MapRecord) WithLabel(attr, label string) *MapRecord {
	if r.labels == nil {
		r.labels = make(map[string]string, 4)
	}
	r.labels[attr] = label
	return r
}

// WithRelated 注册关联记录，rel 为 nil 表示显式声明关联缺失
func (r *MapRecord) WithRelated(name string, rel Record) *MapRecord {
	if r.related == nil {
		r.related = make(map[string]Record, 4)
	}
	r.related[name] = rel
	return r
}

func (r *MapRecord) Attr(name string) any {
	value, _ := r.attrs.Get(name)
	return value
}

// SetAttr 设置属性值
func (r *MapRecord) SetAttr(name string, value any) {
	r.attrs.Set(name, value)
}

func (r *MapRecord) AttrLabel(name string) string {
	if label, ok := r.labels[name]; ok {
		return label
	}
	return HumanizeAttr(name)
}

func (r *MapRecord) Related(name string) (Record, bool) {
	rel, ok := r.related[name]
	if !ok || rel == nil {
		return nil, false
	}
	return rel, true
}

// Errors 返回错误集合的副本，调用方修改不会污染记录
func (r *MapRecord) Errors() ErrorList {
	return r.errs.Snapshot()
}

func (r *MapRecord) ClearErrors() {
	r.errs = nil
}

func (r *MapRecord) AddErrors(errs ErrorList) {
	r.errs = append(r.errs, errs...)
}

func (r *MapRecord) Error(attr string) (string, bool) {
	return r.errs.First(attr)
}

func (r *MapRecord) AddError(attr, message string) {
	r.errs = append(r.errs, ErrorItem{Attr: attr, Message: message})
}

// HumanizeAttr 属性名人性化，用于标签缺省值
// 规则：下划线转空格、驼峰边界断词、首字母大写
// 示例：shipping_method -> "Shipping Method"，orderID 保持 "Order ID"
func HumanizeAttr(name string) string {
	if name == "" {
		return ""
	}

	var builder strings.Builder
	builder.Grow(len(name) + 4)

	prevLower := false
	newWord := true
	for _, r := range name {
		switch {
		case r == '_' || r == '-' || r == ' ':
			if builder.Len() > 0 {
				builder.WriteByte(' ')
			}
			newWord = true
			prevLower = false
			continue
		case unicode.IsUpper(r) && prevLower:
			builder.WriteByte(' ')
			newWord = true
		}

		if newWord {
			builder.WriteRune(unicode.ToUpper(r))
			newWord = false
		} else {
			builder.WriteRune(r)
		}
		prevLower = unicode.IsLower(r)
	}

	return builder.String()
}
