package rtbhouse

import (
	"context"
	"encoding/json"
	"net/url"
)

// ConversionsParams selects the conversions to stream. Limit is the page
// size used for cursor pagination; zero means MaxCursorRows. CountConvention
// defaults to attributed post-click, matching the panel.
type ConversionsParams struct {
	DayFrom         Date
	DayTo           Date
	CountConvention CountConvention
	Limit           int
}

func (p ConversionsParams) validate() error {
	if err := validateDayRange(p.DayFrom, p.DayTo); err != nil {
		return err
	}
	if p.CountConvention != "" && !p.CountConvention.Valid() {
		return &ParameterError{Param: "countConvention", Reason: "unsupported value " + string(p.CountConvention)}
	}
	if p.Limit < 0 {
		return &ParameterError{Param: "limit", Reason: "must not be negative"}
	}
	return nil
}

// GetRTBConversions streams conversions over a date range as a lazy,
// cursor-paginated sequence. The first request happens on the first Next
// call; a follow-up request is made only once the current page is drained and
// the server reported another cursor. Abandoning the iterator early triggers
// no further network calls. Records arrive in server order.
func (c *Client) GetRTBConversions(ctx context.Context, advHash string, params ConversionsParams) (*ConversionIterator, error) {
	if err := validateAdvHash(advHash); err != nil {
		return nil, err
	}
	if err := params.validate(); err != nil {
		return nil, err
	}

	convention := params.CountConvention
	if convention == "" {
		convention = CountConventionAttributedPostClick
	}
	limit := params.Limit
	if limit == 0 {
		limit = MaxCursorRows
	}
	base, err := queryValuesOf(conversionsQuery{
		DayFrom:         params.DayFrom,
		DayTo:           params.DayTo,
		CountConvention: string(convention),
		Limit:           limit,
	})
	if err != nil {
		return nil, err
	}

	return &ConversionIterator{
		client: c,
		path:   "/advertisers/" + url.PathEscape(advHash) + "/conversions",
		base:   base,
		more:   true,
	}, nil
}

// ConversionIterator walks conversion records one at a time, fetching pages
// on demand. Not safe for concurrent use; run one iteration per goroutine.
type ConversionIterator struct {
	client *Client
	path   string
	base   url.Values

	page   []Conversion
	idx    int
	cursor string
	more   bool
	err    error
	cur    Conversion
}

// Next advances to the next record, fetching the next page from the server if
// needed. It returns false when the sequence is exhausted or an error
// occurred; check Err afterwards.
func (it *ConversionIterator) Next(ctx context.Context) bool {
	if it.err != nil {
		return false
	}
	for it.idx >= len(it.page) {
		if !it.more {
			return false
		}
		if !it.fetchPage(ctx) {
			return false
		}
	}
	it.cur = it.page[it.idx]
	it.idx++
	return true
}

// Record returns the record Next advanced to.
func (it *ConversionIterator) Record() Conversion {
	return it.cur
}

// Err returns the error that stopped iteration, if any.
func (it *ConversionIterator) Err() error {
	return it.err
}

// Close abandons the iteration. The buffered page is dropped and no further
// requests are made. Close is idempotent; Next returns false afterwards.
func (it *ConversionIterator) Close() {
	it.more = false
	it.page = nil
	it.idx = 0
}

// Collect drains the remaining records into a slice.
func (it *ConversionIterator) Collect(ctx context.Context) ([]Conversion, error) {
	var out []Conversion
	for it.Next(ctx) {
		out = append(out, it.Record())
	}
	return out, it.Err()
}

func (it *ConversionIterator) fetchPage(ctx context.Context) bool {
	q := make(url.Values, len(it.base)+1)
	for k, v := range it.base {
		q[k] = v
	}
	if it.cursor != "" {
		q.Set("nextCursor", it.cursor)
	}

	data, err := it.client.get(ctx, it.path, q)
	if err != nil {
		it.err = err
		return false
	}

	var page struct {
		Rows       []json.RawMessage `json:"rows"`
		NextCursor *string           `json:"nextCursor"`
	}
	if err := json.Unmarshal(data, &page); err != nil {
		it.err = err
		return false
	}

	rows := make([]Conversion, 0, len(page.Rows))
	for _, raw := range page.Rows {
		conv, err := decodeRecord[Conversion](raw)
		if err != nil {
			it.err = err
			return false
		}
		rows = append(rows, conv)
	}
	it.page = rows
	it.idx = 0
	if page.NextCursor != nil {
		it.cursor = *page.NextCursor
		it.more = true
	} else {
		it.more = false
	}
	return true
}
