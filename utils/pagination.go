package utils

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
)

const PageQueryParam = "page"

var ErrInvalidPage = errors.New("invalid page")

// Page is a 1-based page number with a fixed size.
type Page struct {
	Number int
	Size   int
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// ParsePage reads ?page=N. A missing page is page 1.
func ParsePage(c *gin.Context, size int) (Page, error) {
	raw := c.Query(PageQueryParam)
	if raw == "" {
		return Page{Number: 1, Size: size}, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return Page{}, ErrInvalidPage
	}
	return Page{Number: n, Size: size}, nil
}

// LastPage is the number of the last page holding total items, at least 1.
func (p Page) LastPage(total int64) int {
	if total <= 0 {
		return 1
	}
	return int((total + int64(p.Size) - 1) / int64(p.Size))
}

// Validate rejects pages past the last one.
func (p Page) Validate(total int64) error {
	if p.Number > p.LastPage(total) {
		return ErrInvalidPage
	}
	return nil
}

// Links builds the absolute next and previous URLs for the page, keeping every
// other query parameter of the request. Either may be nil.
func (p Page) Links(c *gin.Context, total int64) (next, previous *string) {
	if p.Number < p.LastPage(total) {
		u := pageURL(c, p.Number+1)
		next = &u
	}
	if p.Number > 1 {
		u := pageURL(c, p.Number-1)
		previous = &u
	}
	return next, previous
}

func pageURL(c *gin.Context, number int) string {
	u := url.URL{
		Scheme: RequestScheme(c),
		Host:   c.Request.Host,
		Path:   c.Request.URL.Path,
	}
	q := c.Request.URL.Query()
	if number <= 1 {
		q.Del(PageQueryParam)
	} else {
		q.Set(PageQueryParam, strconv.Itoa(number))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// RequestScheme honors X-Forwarded-Proto set by a reverse proxy.
func RequestScheme(c *gin.Context) string {
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if c.Request.TLS != nil {
		return "https"
	}
	return "http"
}

// BaseURL is the scheme and host of the current request.
func BaseURL(c *gin.Context) string {
	return RequestScheme(c) + "://" + c.Request.Host
}
