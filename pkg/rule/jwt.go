package rule

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"katydid-common-record/pkg/record"
)

// jwtFactory JWT 结构验证器，无参数
// 只做结构校验（JWS compact 三段式、头与载荷可解码），不验证签名——
// 签名验证需要密钥材料，属于鉴权层职责，不属于字段格式验证
func jwtFactory(params []string) (Validator, error) {
	if len(params) != 0 {
		return nil, fmt.Errorf("%w: jwt takes no params", ErrInvalidParams)
	}
	parser := jwt.NewParser()

	return ValidateFunc(func(r record.Record, attr string) {
		value := r.Attr(attr)
		if isBlank(value) {
			return
		}
		s, ok := value.(string)
		if !ok {
			r.AddError(attr, fmt.Sprintf("%s must be a string.", r.AttrLabel(attr)))
			return
		}
		if _, _, err := parser.ParseUnverified(s, jwt.MapClaims{}); err != nil {
			r.AddError(attr, fmt.Sprintf("%s is not a valid JWT.", r.AttrLabel(attr)))
		}
	}), nil
}
