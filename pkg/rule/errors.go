package rule

import "errors"

var (
	// ErrFactoryNotFound 验证器工厂未注册
	ErrFactoryNotFound = errors.New("validator factory not found")

	// ErrNilFactory 工厂为nil
	ErrNilFactory = errors.New("validator factory cannot be nil")

	// ErrEmptyID 验证器标识为空
	ErrEmptyID = errors.New("validator id cannot be empty")

	// ErrInvalidParams 验证器参数无效
	ErrInvalidParams = errors.New("invalid validator params")

	// ErrNilDB 数据库句柄为nil
	ErrNilDB = errors.New("db handle cannot be nil")

	// ErrNilRedis redis客户端为nil
	ErrNilRedis = errors.New("redis client cannot be nil")
)
