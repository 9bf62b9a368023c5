package marketdata

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const maxNewsLimit = 50

// NewsRequest fetches a single page. Callers follow NextPageToken themselves
// by copying the request and setting PageToken.
type NewsRequest struct {
	Symbols            []string
	Start              time.Time
	End                time.Time
	Limit              int
	Sort               Sort
	IncludeContent     bool
	ExcludeContentless bool
	PageToken          string
}

func (r NewsRequest) validate() error {
	if r.Limit < 0 || r.Limit > maxNewsLimit {
		return errors.New("news limit must be between 0 and 50")
	}
	switch r.Sort {
	case "", SortAsc, SortDesc:
	default:
		return errors.New("sort must be asc or desc")
	}
	return nil
}

func (r NewsRequest) params() map[string]any {
	p := map[string]any{
		"symbols":    strings.Join(r.Symbols, ","),
		"start":      formatTime(r.Start),
		"end":        formatTime(r.End),
		"sort":       string(r.Sort),
		"page_token": r.PageToken,
	}
	if r.Limit > 0 {
		p["limit"] = r.Limit
	}
	if r.IncludeContent {
		p["include_content"] = true
	}
	if r.ExcludeContentless {
		p["exclude_contentless"] = true
	}
	return p
}

func (c *Client) GetNews(ctx context.Context, req NewsRequest) (*NewsSet, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	var out NewsSet
	if err := c.rest.Get(ctx, "/v1beta1/news", req.params(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
