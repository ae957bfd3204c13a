package rule

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"katydid-common-record/pkg/record"
)

func TestParseSpec(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Spec
	}{
		{"无参数", "required", NewSpec("required")},
		{"单参数", "match:^[a-z]+$", NewSpec("match", "^[a-z]+$")},
		{"多参数", "length:3,20", NewSpec("length", "3", "20")},
		{"参数空白去除", " length : 3 , 20 ", NewSpec("length", "3", "20")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSpec(tt.in)
			assert.Equal(t, tt.want, got)
			// String 与 ParseSpec 互逆
			assert.Equal(t, got, ParseSpec(got.String()))
		})
	}
}

func TestRegistry_RegisterAndBuild(t *testing.T) {
	reg := NewRegistry()

	// 空注册表无内置验证器
	assert.False(t, reg.Has("required"))
	_, err := reg.Build(NewSpec("required"))
	assert.True(t, errors.Is(err, ErrFactoryNotFound))

	noop := func(params []string) (Validator, error) {
		return ValidateFunc(func(r record.Record, attr string) {}), nil
	}
	require.NoError(t, reg.Register("noop", noop))
	assert.True(t, reg.Has("noop"))

	v, err := reg.Build(NewSpec("noop"))
	require.NoError(t, err)
	assert.NotNil(t, v)

	// 非法注册
	assert.True(t, errors.Is(reg.Register("", noop), ErrEmptyID))
	assert.True(t, errors.Is(reg.Register("nilfactory", nil), ErrNilFactory))
}

func TestRegistry_DefaultBuiltins(t *testing.T) {
	builtins := []string{"required", "length", "range", "match", "in", "compare", "var", "jwt", "bcrypthash"}
	for _, id := range builtins {
		assert.True(t, Default().Has(id), "内置验证器 %q 未注册", id)
	}

	names := Default().Names()
	assert.GreaterOrEqual(t, len(names), len(builtins))
}

func TestRegistry_BuildAll(t *testing.T) {
	_, err := Default().BuildAll([]Spec{
		NewSpec("required"),
		NewSpec("no_such_validator"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFactoryNotFound))
}
