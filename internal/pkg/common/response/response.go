// Package response 定义 HTTP 接口统一的返回结构.
package response

import (
	"net/url"
	"strconv"
)

// Response 为所有接口共用的响应信封.
// 列表接口填充 Count/Previous/Next/Results, 错误时只填 Detail.
type Response struct {
	Detail   string  `json:"detail,omitempty"`
	Count    *int    `json:"count,omitempty"`
	Previous *string `json:"previous,omitempty"`
	Next     *string `json:"next,omitempty"`
	Results  any     `json:"results,omitempty"`
}

// Count 包装列表结果数, 便于以字面量构造 Response.
func Count(n int) *int { return &n }

// BuildPageLinks 依据当前请求 URL 生成上一页/下一页链接.
// 处于首页时 prev 为 nil, 处于末页时 next 为 nil.
func BuildPageLinks(u *url.URL, page, pageSize, total int) (prev, next *string) {
	if u == nil || pageSize < 1 {
		return nil, nil
	}
	lastPage := (total + pageSize - 1) / pageSize
	if page > 1 {
		s := pageURL(u, page-1, pageSize)
		prev = &s
	}
	if page < lastPage {
		s := pageURL(u, page+1, pageSize)
		next = &s
	}
	return prev, next
}

func pageURL(u *url.URL, page, pageSize int) string {
	link := *u
	q := link.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))
	link.RawQuery = q.Encode()
	return link.String()
}
