package conditional

import (
	"fmt"

	"github.com/spf13/viper"

	"katydid-common-record/pkg/rule"
)

// 配置文件加载
// 规则文件（YAML/JSON/TOML，viper 按扩展名识别）结构示例：
//
//	rules:
//	  shipping_method:
//	    primary: ["required"]
//	    skip_on_dependency_error: false
//	    message: "{attribute} cannot be saved."
//	    dependents:
//	      - attrs: "customer.country"
//	        specs: ["required"]
//	        message: "{dependentAttribute} must be filled in first."

// fileDependent 配置文件中的依赖条目形态，规格以单行字符串声明
type fileDependent struct {
	Attrs   string   `mapstructure:"attrs"`
	Specs   []string `mapstructure:"specs"`
	Message string   `mapstructure:"message"`
}

// fileRule 配置文件中单个属性的规则形态
type fileRule struct {
	Primary               []string        `mapstructure:"primary"`
	Dependents            []fileDependent `mapstructure:"dependents"`
	Message               string          `mapstructure:"message"`
	SkipOnDependencyError bool            `mapstructure:"skip_on_dependency_error"`
}

// LoadFile 从规则文件加载条件验证器集合，键为主属性名
// reg 为 nil 时使用默认注册表
//
// 加载即校验：规格字符串立刻解析并试构建，未注册的验证器、非法参数、
// 非列表的 specs 值（解码类型错误）都在加载阶段报错，而不是拖到验证时
func LoadFile(path string, reg *rule.Registry) (map[string]*Conditional, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read rule file %q: %w", path, err)
	}
	return load(v, reg)
}

func load(v *viper.Viper, reg *rule.Registry) (map[string]*Conditional, error) {
	if reg == nil {
		reg = rule.Default()
	}

	var raw map[string]fileRule
	if err := v.UnmarshalKey("rules", &raw); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}

	out := make(map[string]*Conditional, len(raw))
	for attr, fr := range raw {
		cfg, err := buildConfig(attr, fr, reg)
		if err != nil {
			return nil, err
		}
		out[attr] = NewWithRegistry(cfg, reg)
	}
	return out, nil
}

func buildConfig(attr string, fr fileRule, reg *rule.Registry) (Config, error) {
	cfg := Config{
		Message:               fr.Message,
		SkipOnDependencyError: fr.SkipOnDependencyError,
	}

	for _, s := range fr.Primary {
		spec := rule.ParseSpec(s)
		if _, err := reg.Build(spec); err != nil {
			return Config{}, fmt.Errorf("rule %q primary: %w", attr, err)
		}
		cfg.Primary = append(cfg.Primary, spec)
	}

	for _, fd := range fr.Dependents {
		if len(fd.Specs) == 0 {
			return Config{}, fmt.Errorf("rule %q: %w: entry %q", attr, ErrEmptySpecs, fd.Attrs)
		}
		dep := Dependent{Attrs: fd.Attrs, Message: fd.Message}
		for _, s := range fd.Specs {
			spec := rule.ParseSpec(s)
			if _, err := reg.Build(spec); err != nil {
				return Config{}, fmt.Errorf("rule %q dependent %q: %w", attr, fd.Attrs, err)
			}
			dep.Specs = append(dep.Specs, spec)
		}
		cfg.Dependents = append(cfg.Dependents, dep)
	}

	return cfg, nil
}
