package parse

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxPage keeps (page-1)*pageSize within int.
	MaxPage         = math.MaxInt / MaxPageSize
)

// Page holds validated pagination parameters. Page is 1-based.
type Page struct {
	Page     int
	PageSize int
}

// ParsePage reads the raw page and pageSize query values. Empty values take
// the defaults; a pageSize above MaxPageSize is clamped.
func ParsePage(rawPage, rawPageSize string) (Page, error) {
	p := Page{Page: DefaultPage, PageSize: DefaultPageSize}

	if s := strings.TrimSpace(rawPage); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return Page{}, fmt.Errorf("invalid page %q: must be a positive integer", rawPage)
		}
		if n > MaxPage {
			return Page{}, fmt.Errorf("invalid page %q: must not exceed %d", rawPage, MaxPage)
		}
		p.Page = n
	}

	if s := strings.TrimSpace(rawPageSize); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return Page{}, fmt.Errorf("invalid pageSize %q: must be a positive integer", rawPageSize)
		}
		p.PageSize = min(n, MaxPageSize)
	}

	return p, nil
}

// ParseID reads a positive resource id from a path segment.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
