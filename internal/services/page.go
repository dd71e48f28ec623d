package services

import "math"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	// MaxPage keeps (Page-1)*Size inside int for every allowed size.
	MaxPage = math.MaxInt / MaxPageSize
)

// PageRequest uses a one-based page index everywhere.
type PageRequest struct {
	Page int
	Size int
}

func (r PageRequest) normalize() PageRequest {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Page > MaxPage {
		r.Page = MaxPage
	}
	if r.Size < 1 {
		r.Size = DefaultPageSize
	}
	if r.Size > MaxPageSize {
		r.Size = MaxPageSize
	}
	return r
}

func (r PageRequest) Offset() int {
	n := r.normalize()
	return (n.Page - 1) * n.Size
}

type Pagination struct {
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	CurrentPage   int   `json:"currentPage"`
	PageSize      int   `json:"pageSize"`
	IsFirst       bool  `json:"isFirst"`
	IsLast        bool  `json:"isLast"`
	HasNext       bool  `json:"hasNext"`
	HasPrevious   bool  `json:"hasPrevious"`
}

type Page[T any] struct {
	Content    []T        `json:"content"`
	Pagination Pagination `json:"pagination"`
}

func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	req = req.normalize()
	if content == nil {
		content = []T{}
	}

	totalPages := int((total + int64(req.Size) - 1) / int64(req.Size))
	return Page[T]{
		Content: content,
		Pagination: Pagination{
			TotalElements: total,
			TotalPages:    totalPages,
			CurrentPage:   req.Page,
			PageSize:      req.Size,
			IsFirst:       req.Page == 1,
			IsLast:        req.Page >= totalPages,
			HasNext:       req.Page < totalPages,
			HasPrevious:   req.Page > 1,
		},
	}
}
