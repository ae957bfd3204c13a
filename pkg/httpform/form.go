package httpform

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"katydid-common-record/pkg/conditional"
	"katydid-common-record/pkg/logging"
	"katydid-common-record/pkg/record"
)

// gin 表单验证适配器
// 把请求体绑定为内存记录，按规则集逐属性执行条件验证，失败时渲染字段错误

// RecordKey 验证通过后记录存入 gin 上下文使用的键
const RecordKey = "httpform.record"

// RuleSet 规则集：主属性名 -> 条件验证器
type RuleSet map[string]*conditional.Conditional

// BindRecord 把请求体绑定为内存记录
// application/json 解析为任意键值对；其余按表单解析，重复字段取第一个值
func BindRecord(c *gin.Context) (*record.MapRecord, error) {
	attrs := record.NewAttributes(8)

	if strings.HasPrefix(c.ContentType(), "application/json") {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			return nil, err
		}
		for key, value := range body {
			attrs.Set(key, value)
		}
		return record.NewMapRecord(attrs), nil
	}

	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	for key, values := range c.Request.PostForm {
		if len(values) > 0 {
			attrs.Set(key, values[0])
		}
	}
	return record.NewMapRecord(attrs), nil
}

// Validate 按规则集验证记录
// 属性按字典序遍历，保证错误输出顺序稳定
// 返回的 error 仅表示配置错误，验证失败体现在 ErrorList
func Validate(rs RuleSet, rec record.Record) (record.ErrorList, error) {
	attrs := make([]string, 0, len(rs))
	for attr := range rs {
		attrs = append(attrs, attr)
	}
	sort.Strings(attrs)

	for _, attr := range attrs {
		if err := rs[attr].Validate(rec, attr); err != nil {
			return nil, err
		}
	}
	return rec.Errors(), nil
}

// Middleware 表单验证中间件
// 绑定失败返回 400，验证失败返回 422 及字段错误列表，配置错误返回 500 并记日志；
// 验证通过时记录以 RecordKey 存入上下文供后续 handler 使用
func Middleware(rs RuleSet) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := BindRecord(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
			return
		}

		errs, err := Validate(rs, rec)
		if err != nil {
			logging.Default().Error("form validation misconfigured",
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "validation configuration error"})
			return
		}

		if errs.HasErrors() {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
			return
		}

		c.Set(RecordKey, rec)
		c.Next()
	}
}

// RecordFrom 从 gin 上下文取出验证通过的记录
func RecordFrom(c *gin.Context) (*record.MapRecord, bool) {
	value, ok := c.Get(RecordKey)
	if !ok {
		return nil, false
	}
	rec, ok := value.(*record.MapRecord)
	return rec, ok
}
