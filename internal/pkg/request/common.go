package request

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// PageParams holds the from/size window accepted by list endpoints.
// From is an element index; it is rounded down to the start of its page.
type PageParams struct {
	From int `form:"from,default=0" binding:"min=0"`
	Size int `form:"size,default=10" binding:"min=1"`
}

// Limit returns the page size.
func (p PageParams) Limit() int {
	if p.Size < 1 {
		return 10
	}
	return p.Size
}

// Offset returns the number of rows to skip: the page containing From times the page size.
func (p PageParams) Offset() int {
	size := p.Limit()
	if p.From < 0 {
		return 0
	}
	return (p.From / size) * size
}
