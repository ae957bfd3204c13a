package conditional

import (
	"fmt"
	"strings"

	"katydid-common-record/pkg/record"
)

// DefaultMessage 依赖失败的缺省错误消息模板
const DefaultMessage = "{attribute} cannot be validated because {dependentAttribute} is invalid."

// renderMessage 渲染错误消息模板
// 支持的占位符：
//   - {attribute} / {value}：主属性的标签与当前值
//   - {dependentAttribute} / {dependentValue}：依赖属性（在其目标记录上）的标签与当前值
//
// 嵌入方如需本地化，可在配置中提供已翻译的模板，占位符替换逻辑保持不变
func renderMessage(tpl string, primary record.Record, primaryAttr string, dep record.Record, depAttr string) string {
	replacer := strings.NewReplacer(
		"{attribute}", primary.AttrLabel(primaryAttr),
		"{value}", formatValue(primary.Attr(primaryAttr)),
		"{dependentAttribute}", dep.AttrLabel(depAttr),
		"{dependentValue}", formatValue(dep.Attr(depAttr)),
	)
	return replacer.Replace(tpl)
}

// formatValue 占位符的值格式化，nil 渲染为空串
func formatValue(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
