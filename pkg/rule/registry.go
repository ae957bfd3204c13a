package rule

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"katydid-common-record/pkg/logging"
)

// Registry 验证器工厂注册表
// 设计目标：
//   - 按标识符动态分发验证器（运行时查找 + 参数化构建）
//   - 默认注册表全局唯一，内置验证器开箱即用
//   - 允许嵌入方覆盖内置工厂或追加业务工厂（unique/exist/blocklist 等）
type Registry struct {
	factories map[string]Factory // 工厂映射表
	mu        sync.RWMutex       // 读写锁，保护并发访问
}

var (
	// defaultRegistry 全局默认注册表实例（单例）
	defaultRegistry *Registry

	// registryOnce 确保默认注册表只初始化一次
	registryOnce sync.Once
)

// Default 获取全局默认注册表，已预注册全部内置验证器
// 线程安全，可在多个 goroutine 中并发调用
func Default() *Registry {
	registryOnce.Do(func() {
		defaultRegistry = NewRegistry()
		registerBuiltins(defaultRegistry)
	})
	return defaultRegistry
}

// NewRegistry 创建空注册表
// 适用场景：需要隔离配置的独立注册表（如单元测试）
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory, 16),
	}
}

// Register 注册验证器工厂（允许覆盖已有工厂）
func (r *Registry) Register(id string, factory Factory) error {
	if id == "" {
		return ErrEmptyID
	}
	if factory == nil {
		return ErrNilFactory
	}

	r.mu.Lock()
	_, overridden := r.factories[id]
	r.factories[id] = factory
	r.mu.Unlock()

	logging.Default().Debug("validator factory registered",
		zap.String("id", id),
		zap.Bool("overridden", overridden),
	)
	return nil
}

// MustRegister 注册验证器工厂，失败时 panic
// 仅用于包初始化阶段的内置注册
func (r *Registry) MustRegister(id string, factory Factory) {
	if err := r.Register(id, factory); err != nil {
		panic(fmt.Sprintf("rule: register %q: %v", id, err))
	}
}

// Build 按规格构建验证器实例
// 工厂缺失或参数非法均返回配置错误
func (r *Registry) Build(spec Spec) (Validator, error) {
	r.mu.RLock()
	factory, exists := r.factories[spec.ID]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrFactoryNotFound, spec.ID)
	}

	v, err := factory(spec.Params)
	if err != nil {
		return nil, fmt.Errorf("build validator %q: %w", spec.ID, err)
	}
	return v, nil
}

// BuildAll 批量构建验证器，任一规格失败即整体失败
func (r *Registry) BuildAll(specs []Spec) ([]Validator, error) {
	validators := make([]Validator, 0, len(specs))
	for _, spec := range specs {
		v, err := r.Build(spec)
		if err != nil {
			return nil, err
		}
		validators = append(validators, v)
	}
	return validators, nil
}

// Has 检查工厂是否已注册
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.factories[id]
	return exists
}

// Names 返回全部已注册的验证器标识（字典序）
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.factories))
	for id := range r.factories {
		names = append(names, id)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}
