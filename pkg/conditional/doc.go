// Package conditional 提供条件/依赖式的记录属性验证引擎
//
// # 概述
//
// 主属性的验证可以被一个或多个依赖属性（可位于一层关联之外的记录上）的
// 验证结果门控：依赖全部通过才执行主验证；依赖失败时按配置选择静默跳过，
// 或把模板化的错误消息记录到主属性上。
//
// 引擎只做编排，三个协作契约均由外部提供：
//   - 验证器注册表与执行（pkg/rule）
//   - 记录的属性/标签/关联访问（pkg/record 的 Record 契约）
//   - 记录的有序错误集合
//
// 依赖探测采用错误保全式执行：对目标记录的错误集合做值拷贝快照，
// 执行子验证并读取结果后原样恢复，保证探测不污染既有错误。
//
// # 快速开始
//
//	customer := record.NewMapRecord(record.Attributes{"country": ""})
//	order := record.NewMapRecord(record.Attributes{"shipping_method": "express"}).
//	    WithRelated("customer", customer)
//
//	c := conditional.New(conditional.Config{
//	    Primary: []rule.Spec{rule.NewSpec("required")},
//	    Dependents: []conditional.Dependent{
//	        {Attrs: "customer.country", Specs: []rule.Spec{rule.NewSpec("required")}},
//	    },
//	})
//
//	if err := c.Validate(order, "shipping_method"); err != nil {
//	    // 配置错误（空规格列表、未注册验证器等）
//	}
//	// 验证失败体现在 order 的错误集合上
//	for _, e := range order.Errors() {
//	    fmt.Println(e.Attr, e.Message)
//	}
//
// # 并发模型
//
// 验证器实例构建后配置只读，可并发用于不同记录；同一记录上的并发验证
// 需由调用方串行化（错误集合的快照/清空/恢复对并发修改不是原子的）。
package conditional
