package record

import (
	"maps"
	"reflect"
)

// Attributes 动态属性集合，用于存放记录的命名属性
//
// 设计说明：
// - 基于 map[string]any，支持存储任意类型的值
// - 适用于表单数据、动态模型等不依赖固定结构体的场景
// - 键名不能为空字符串，否则会被忽略
//
// 线程安全：
// - map 类型非线程安全，多协程并发读写需要外部加锁
type Attributes map[string]any

// NewAttributes 创建一个新的属性集合
func NewAttributes(capacity int) Attributes {
	return make(Attributes, capacity)
}

func (a Attributes) Set(key string, value any) {
	if len(key) == 0 {
		return
	}
	a[key] = value
}

func (a Attributes) Get(key string) (any, bool) {
	if len(a) == 0 {
		return nil, false
	}
	value, ok := a[key]
	return value, ok
}

func (a Attributes) Del(key string) {
	delete(a, key)
}

func (a Attributes) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// GetString 获取字符串属性，类型不匹配时返回 ("", false)
func (a Attributes) GetString(key string) (string, bool) {
	value, ok := a.Get(key)
	if !ok {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}

// GetInt64 获取整型属性，兼容常见整型宽度
func (a Attributes) GetInt64(key string) (int64, bool) {
	value, ok := a.Get(key)
	if !ok {
		return 0, false
	}
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	}
	return 0, false
}

// GetFloat64 获取浮点属性，整型值自动提升
func (a Attributes) GetFloat64(key string) (float64, bool) {
	value, ok := a.Get(key)
	if !ok {
		return 0, false
	}
	switch v := value.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	if i, ok := a.GetInt64(key); ok {
		return float64(i), true
	}
	return 0, false
}

func (a Attributes) GetBool(key string) (bool, bool) {
	value, ok := a.Get(key)
	if !ok {
		return false, false
	}
	b, ok := value.(bool)
	return b, ok
}

// Keys 返回全部键名（顺序不保证）
func (a Attributes) Keys() []string {
	keys := make([]string, 0, len(a))
	for key := range a {
		keys = append(keys, key)
	}
	return keys
}

// Clone 浅拷贝属性集合
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	return maps.Clone(a)
}

// Equals 深度比较两个属性集合
func (a Attributes) Equals(other Attributes) bool {
	if len(a) != len(other) {
		return false
	}
	for key, value := range a {
		ov, ok := other[key]
		if !ok || !reflect.DeepEqual(value, ov) {
			return false
		}
	}
	return true
}
