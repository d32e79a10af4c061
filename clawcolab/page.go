package clawcolab

import (
	"net/url"
	"strconv"
)

// ListOptions carries pagination parameters for list endpoints. Set values
// are forwarded verbatim as limit/offset query parameters; zero values are
// treated as unset and omitted.
type ListOptions struct {
	Limit  int
	Offset int
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Offset > 0 {
		q.Set("offset", strconv.Itoa(o.Offset))
	}
	return q
}

// Page carries the server's pagination indicators when present. NextOffset
// is an opaque continuation value: pass it back as ListOptions.Offset to
// fetch the next page, do not interpret it.
type Page struct {
	Total      int `json:"total,omitempty"`
	NextOffset int `json:"next_offset,omitempty"`
}
