package record

// Record 记录契约，验证引擎操作的最小实体抽象
// 设计目标：
//   - 只暴露验证流程需要的能力：属性读取、标签查询、关联查找、错误集合读写
//   - 引擎永远不创建或销毁记录，只读取属性并修改错误集合
//   - 存储、关联加载、国际化由外部实现方负责
//
// 实现方可以是内存记录（MapRecord）、ORM 模型适配器、表单数据包装等
type Record interface {
	// Attr 获取属性值，属性不存在时返回 nil
	Attr(name string) any

	// AttrLabel 获取属性的显示标签（用于错误消息）
	AttrLabel(name string) string

	// Related 按名称查找关联记录
	// 返回 (nil, false) 表示关联不存在或未加载
	Related(name string) (Record, bool)

	// Errors 获取当前错误集合（有序）
	// 返回值必须是副本或不可变视图，调用方修改不影响记录本身
	Errors() ErrorList

	// ClearErrors 清空错误集合
	ClearErrors()

	// AddErrors 按输入顺序批量追加错误
	AddErrors(errs ErrorList)

	// Error 获取指定属性的第一条错误消息
	// 返回 ("", false) 表示该属性没有错误
	Error(attr string) (string, bool)

	// AddError 追加一条属性错误
	AddError(attr, message string)
}

// ErrorItem 单条属性错误，(属性名, 消息) 二元组
type ErrorItem struct {
	Attr    string `json:"attr"`
	Message string `json:"message"`
}

// ErrorList 有序错误集合
// 顺序即追加顺序，验证引擎依赖该顺序做快照/恢复
type ErrorList []ErrorItem

// Snapshot 返回错误集合的值拷贝
// 用途：验证引擎的探测机制需要在执行子验证前保存现场，执行后原样恢复
// 注意：必须是深到元素级的拷贝，禁止与原切片共享底层数组
func (l ErrorList) Snapshot() ErrorList {
	if len(l) == 0 {
		return nil
	}
	out := make(ErrorList, len(l))
	copy(out, l)
	return out
}

// First 获取指定属性的第一条错误消息
func (l ErrorList) First(attr string) (string, bool) {
	for _, item := range l {
		if item.Attr == attr {
			return item.Message, true
		}
	}
	return "", false
}

// ByAttr 获取指定属性的全部错误消息
func (l ErrorList) ByAttr(attr string) []string {
	var msgs []string
	for _, item := range l {
		if item.Attr == attr {
			msgs = append(msgs, item.Message)
		}
	}
	return msgs
}

// HasErrors 检查集合是否非空
func (l ErrorList) HasErrors() bool {
	return len(l) > 0
}

// Equals 逐项比较两个错误集合（顺序敏感）
func (l ErrorList) Equals(other ErrorList) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if l[i] != other[i] {
			return false
		}
	}
	return true
}
