package conditional

import "errors"

var (
	// ErrNilRecord 验证目标记录为nil
	ErrNilRecord = errors.New("record cannot be nil")

	// ErrEmptySpecs 依赖验证条目的规格列表为空
	ErrEmptySpecs = errors.New("dependent entry has empty spec list")

	// ErrEmptyAttrs 依赖验证条目的属性键为空
	ErrEmptyAttrs = errors.New("dependent entry has empty attribute key")

	// ErrInvalidPath 属性路径非法（空段）
	ErrInvalidPath = errors.New("invalid attribute path")

	// ErrPathTooDeep 属性路径超过一层关联跳转
	ErrPathTooDeep = errors.New("attribute path exceeds one relation hop")
)
