package domain

// DefaultPageSize 分页参数缺省的每页条数
const DefaultPageSize int64 = 10

// Page 一次分页请求，由分页中间件从 query 参数解析后放进请求作用域
type Page struct {
	Num  int64
	Size int64
}

func (p Page) Offset() int64 {
	return (p.Num - 1) * p.Size
}
