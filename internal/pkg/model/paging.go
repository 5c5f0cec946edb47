package model

import (
	"github.com/go-playground/validator/v10"
)

var pagingValidator = validator.New(validator.WithRequiredStructEnabled())

// PagingQuery 列表接口通用的分页参数, 由 Gin 从 query 绑定: page, page_size.
type PagingQuery struct {
	Page     int `form:"page" json:"page" validate:"omitempty,gte=1"`
	PageSize int `form:"page_size" json:"page_size" validate:"omitempty,gte=1,lte=1000"`
}

// SetDefaults fills unset parameters and caps the page size.
func (p *PagingQuery) SetDefaults(defaultPage, defaultSize, maxSize int) {
	if p.Page <= 0 {
		p.Page = defaultPage
	}
	if p.PageSize <= 0 {
		p.PageSize = defaultSize
	}
	if maxSize > 0 && p.PageSize > maxSize {
		p.PageSize = maxSize
	}
}

// Offset returns the row offset of the current page.
func (p PagingQuery) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Limit returns the page size as a row limit.
func (p PagingQuery) Limit() int { return p.PageSize }

// Validate checks the bound parameters against their validate tags.
func (p PagingQuery) Validate() error {
	return pagingValidator.Struct(p)
}
