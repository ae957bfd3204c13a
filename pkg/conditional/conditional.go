package conditional

import (
	"fmt"
	"strings"

	"katydid-common-record/pkg/record"
	"katydid-common-record/pkg/rule"
)

// Dependent 依赖验证条目
// Attrs 是逗号分隔的依赖属性路径键，每个路径为 "attr" 或 "relation.attr"（最多一层关联）
// 条目内的每个规格会对每个路径逐一执行（全叉积）
type Dependent struct {
	// Attrs 依赖属性路径键，如 "customer.country" 或 "city, zipcode"
	Attrs string `json:"attrs" mapstructure:"attrs"`

	// Specs 验证规格列表，空列表是致命配置错误
	Specs []rule.Spec `json:"specs" mapstructure:"specs"`

	// Message 条目级覆盖消息模板，为空时使用验证器自身消息
	Message string `json:"message,omitempty" mapstructure:"message"`
}

// Config 条件验证器配置
type Config struct {
	// Primary 依赖全部通过后对主属性执行的验证规格，缺省为单条 required
	Primary []rule.Spec `json:"primary,omitempty" mapstructure:"primary"`

	// Dependents 依赖验证条目，按配置顺序执行
	Dependents []Dependent `json:"dependents,omitempty" mapstructure:"dependents"`

	// Message 依赖失败的缺省消息模板（验证器与条目都未提供消息时兜底）
	// 可用占位符见 DefaultMessage
	Message string `json:"message,omitempty" mapstructure:"message"`

	// SkipOnDependencyError 依赖失败时的行为开关：
	//   true  —— 主属性保持原样（不跑主验证、不记依赖错误）
	//   false —— 依赖错误按模板记到主属性上，主验证同样跳过
	SkipOnDependencyError bool `json:"skip_on_dependency_error,omitempty" mapstructure:"skip_on_dependency_error"`
}

// Conditional 条件验证器
// 先对依赖属性（可跨一层关联）执行探测式验证，全部通过才执行主属性验证；
// 依赖失败按配置选择静默跳过或在主属性上记录模板化错误
//
// 线程安全：配置构建后只读，同一实例可并发用于不同记录；
// 同一记录上的并发验证需由调用方串行化（错误集合的快照/恢复非原子）
type Conditional struct {
	cfg Config
	reg *rule.Registry
}

// New 基于默认验证器注册表创建条件验证器
func New(cfg Config) *Conditional {
	return NewWithRegistry(cfg, nil)
}

// NewWithRegistry 基于指定注册表创建条件验证器，reg 为 nil 时使用默认注册表
func NewWithRegistry(cfg Config, reg *rule.Registry) *Conditional {
	if reg == nil {
		reg = rule.Default()
	}
	if len(cfg.Primary) == 0 {
		cfg.Primary = []rule.Spec{rule.NewSpec("required")}
	}
	if cfg.Message == "" {
		cfg.Message = DefaultMessage
	}
	return &Conditional{cfg: cfg, reg: reg}
}

// depError 依赖验证失败的瞬态描述，(目标记录, 目标属性, 消息) 三元组
type depError struct {
	rec     record.Record
	attr    string
	message string
}

// Validate 对记录的主属性执行条件验证
//
// 流程：
//  1. 按配置顺序遍历依赖条目：拆分路径键，对每个 路径×规格 解析目标并探测；
//     关联缺失的路径静默跳过，探测失败记录依赖错误（条目覆盖消息优先）
//  2. 存在依赖错误：SkipOnDependencyError 时直接返回；
//     否则每个依赖错误按模板渲染后追加到主属性，主验证不执行
//  3. 无依赖错误：对主属性正常执行全部主验证规格
//
// 返回值仅表示配置错误（空规格列表、未注册验证器、路径超深等），
// 验证失败一律体现在记录的错误集合上，不通过返回值传递
func (c *Conditional) Validate(r record.Record, attr string) error {
	if r == nil {
		return ErrNilRecord
	}

	var depErrs []depError
	for _, dep := range c.cfg.Dependents {
		// 空规格列表是配置错误，必须中止整个验证过程而不是静默跳过
		if len(dep.Specs) == 0 {
			return fmt.Errorf("%w: entry %q", ErrEmptySpecs, dep.Attrs)
		}

		paths, err := splitPaths(dep.Attrs)
		if err != nil {
			return err
		}

		// 条目内的规格统一提前构建，配置错误（未注册/参数非法）在这里暴露
		validators, err := c.reg.BuildAll(dep.Specs)
		if err != nil {
			return fmt.Errorf("dependent entry %q: %w", dep.Attrs, err)
		}

		for _, path := range paths {
			target, targetAttr, resolved, err := resolvePath(r, path)
			if err != nil {
				return err
			}
			if !resolved {
				// 关联缺失不是验证失败：该路径下所有规格整体跳过
				continue
			}

			for _, v := range validators {
				msg, failed := probe(target, targetAttr, v)
				if !failed {
					continue
				}
				if dep.Message != "" {
					msg = dep.Message
				}
				if msg == "" {
					msg = c.cfg.Message
				}
				depErrs = append(depErrs, depError{rec: target, attr: targetAttr, message: msg})
			}
		}
	}

	if len(depErrs) > 0 {
		if c.cfg.SkipOnDependencyError {
			return nil
		}
		// 每个失败的 (路径, 规格) 对产生一条主属性错误，顺序与遍历顺序一致
		for _, de := range depErrs {
			r.AddError(attr, renderMessage(de.message, r, attr, de.rec, de.attr))
		}
		return nil
	}

	validators, err := c.reg.BuildAll(c.cfg.Primary)
	if err != nil {
		return fmt.Errorf("primary validation: %w", err)
	}
	for _, v := range validators {
		v.Validate(r, attr)
	}
	return nil
}

// splitPaths 拆分逗号分隔的路径键并去除空白
func splitPaths(attrs string) ([]string, error) {
	parts := strings.Split(attrs, ",")
	paths := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyAttrs, attrs)
	}
	return paths, nil
}

// resolvePath 将属性路径解析为 (目标记录, 目标属性)
// 仅支持一层关联跳转："attr" 或 "relation.attr"
// resolved=false 表示关联存在于路径中但未解析到记录（调用方静默跳过）
func resolvePath(r record.Record, path string) (target record.Record, attr string, resolved bool, err error) {
	parts := strings.Split(path, ".")
	for _, p := range parts {
		if p == "" {
			return nil, "", false, fmt.Errorf("%w: %q", ErrInvalidPath, path)
		}
	}

	switch len(parts) {
	case 1:
		return r, parts[0], true, nil
	case 2:
		rel, ok := r.Related(parts[0])
		if !ok {
			return nil, "", false, nil
		}
		return rel, parts[1], true, nil
	}
	return nil, "", false, fmt.Errorf("%w: %q", ErrPathTooDeep, path)
}

// probe 错误保全式执行：在不污染目标记录现有错误的前提下探测规格是否失败
// 实现为显式快照：保存集合 -> 清空 -> 执行 -> 读取结果 -> 清空 -> 原样恢复
// 快照是值拷贝，可重复调用，不会重排或重复既有错误
func probe(target record.Record, attr string, v rule.Validator) (message string, failed bool) {
	saved := target.Errors().Snapshot()

	target.ClearErrors()
	v.Validate(target, attr)
	message, failed = target.Error(attr)

	target.ClearErrors()
	target.AddErrors(saved)
	return message, failed
}
