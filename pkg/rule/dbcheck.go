package rule

import (
	"fmt"

	"gorm.io/gorm"

	"katydid-common-record/pkg/record"
)

// 数据库支撑的验证器（unique / exist）
// 需要 *gorm.DB 句柄，因此不在默认注册表中预注册，由嵌入方自行注册：
//
//	reg.Register("unique", rule.NewUniqueFactory(db))
//	reg.Register("exist", rule.NewExistFactory(db))

// NewUniqueFactory 唯一性验证器工厂
// 参数：table[,column]，column 缺省为属性名
// 语义：表中已存在同值行则失败（"已被占用"）
func NewUniqueFactory(db *gorm.DB) Factory {
	return func(params []string) (Validator, error) {
		table, column, err := tableColumn(params)
		if err != nil {
			return nil, err
		}
		if db == nil {
			return nil, ErrNilDB
		}

		return ValidateFunc(func(r record.Record, attr string) {
			value := r.Attr(attr)
			if isBlank(value) {
				return
			}
			col := column
			if col == "" {
				col = attr
			}
			var count int64
			if err := db.Table(table).Where(col+" = ?", value).Count(&count).Error; err != nil {
				r.AddError(attr, fmt.Sprintf("%s could not be checked for uniqueness.", r.AttrLabel(attr)))
				return
			}
			if count > 0 {
				r.AddError(attr, fmt.Sprintf("%s has already been taken.", r.AttrLabel(attr)))
			}
		}), nil
	}
}

// NewExistFactory 存在性验证器工厂
// 参数：table[,column]，column 缺省为属性名
// 语义：表中找不到同值行则失败（外键式引用检查）
func NewExistFactory(db *gorm.DB) Factory {
	return func(params []string) (Validator, error) {
		table, column, err := tableColumn(params)
		if err != nil {
			return nil, err
		}
		if db == nil {
			return nil, ErrNilDB
		}

		return ValidateFunc(func(r record.Record, attr string) {
			value := r.Attr(attr)
			if isBlank(value) {
				return
			}
			col := column
			if col == "" {
				col = attr
			}
			var count int64
			if err := db.Table(table).Where(col+" = ?", value).Count(&count).Error; err != nil {
				r.AddError(attr, fmt.Sprintf("%s could not be checked for existence.", r.AttrLabel(attr)))
				return
			}
			if count == 0 {
				r.AddError(attr, fmt.Sprintf("%s is invalid.", r.AttrLabel(attr)))
			}
		}), nil
	}
}

func tableColumn(params []string) (table, column string, err error) {
	switch len(params) {
	case 1:
		return params[0], "", nil
	case 2:
		return params[0], params[1], nil
	}
	return "", "", fmt.Errorf("%w: expected table[,column]", ErrInvalidParams)
}
