package conditional

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"katydid-common-record/pkg/record"
	"katydid-common-record/pkg/rule"
)

func writeRuleFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile_Valid(t *testing.T) {
	path := writeRuleFile(t, `
rules:
  shipping_method:
    primary: ["required", "length:1,64"]
    message: "{attribute} cannot be saved."
    dependents:
      - attrs: "customer.country"
        specs: ["required"]
        message: "{dependentAttribute} must be filled in first."
  email:
    primary: ["required", "var:email"]
`)

	rules, err := LoadFile(path, nil)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	require.Contains(t, rules, "shipping_method")
	require.Contains(t, rules, "email")

	// 加载结果可直接执行
	customer := record.NewMapRecord(record.Attributes{"country": ""}).WithLabel("country", "Country")
	order := record.NewMapRecord(record.Attributes{"shipping_method": "express"}).
		WithRelated("customer", customer)

	require.NoError(t, rules["shipping_method"].Validate(order, "shipping_method"))
	msg, ok := order.Error("shipping_method")
	require.True(t, ok)
	assert.Equal(t, "Country must be filled in first.", msg)
}

func TestLoadFile_UnknownValidator(t *testing.T) {
	path := writeRuleFile(t, `
rules:
  username:
    primary: ["no_such_validator"]
`)

	_, err := LoadFile(path, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, rule.ErrFactoryNotFound))
}

func TestLoadFile_EmptySpecList(t *testing.T) {
	path := writeRuleFile(t, `
rules:
  username:
    dependents:
      - attrs: "profile.nickname"
        specs: []
`)

	_, err := LoadFile(path, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptySpecs))
}

func TestLoadFile_NonListSpecs(t *testing.T) {
	path := writeRuleFile(t, `
rules:
  username:
    dependents:
      - attrs: "profile.nickname"
        specs: 123
`)

	_, err := LoadFile(path, nil)
	require.Error(t, err)
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
}

func TestLoadFile_InvalidParams(t *testing.T) {
	path := writeRuleFile(t, `
rules:
  username:
    primary: ["length:abc"]
`)

	_, err := LoadFile(path, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, rule.ErrInvalidParams))
}
