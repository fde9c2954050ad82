package rtbhouse

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
)

// wireDateFormat is the format the API expects for date query parameters.
const wireDateFormat = "02-01-2006"

// jsonDateFormat is the format the API uses for dates in response bodies.
const jsonDateFormat = "2006-01-02"

// Date is a calendar day. Query parameters render it as dd-mm-yyyy, response
// bodies as yyyy-mm-dd.
type Date struct {
	t time.Time
}

// NewDate builds a Date from a year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Time returns the day at midnight UTC.
func (d Date) Time() time.Time { return d.t }

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Before reports whether d falls before other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// AddDays returns the date n days later.
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// String renders the wire form, dd-mm-yyyy.
func (d Date) String() string { return d.t.Format(wireDateFormat) }

// EncodeValues implements query.Encoder.
func (d Date) EncodeValues(key string, v *url.Values) error {
	v.Set(key, d.t.Format(wireDateFormat))
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.t.Format(jsonDateFormat))
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(jsonDateFormat, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.t = t
	return nil
}

// enumList joins multi-valued enum parameters with "-", the separator the API
// uses for repeated values.
type enumList []string

// EncodeValues implements query.Encoder.
func (l enumList) EncodeValues(key string, v *url.Values) error {
	v.Set(key, strings.Join(l, "-"))
	return nil
}

// StatsParams selects the shape of an rtb-stats or summary-stats report.
// DayFrom, DayTo, GroupBy and Metrics are required; the rest narrow the
// report and are omitted from the request when unset.
type StatsParams struct {
	DayFrom Date
	DayTo   Date
	GroupBy []GroupBy
	Metrics []Metric

	CountConvention *CountConvention
	Subcampaigns    []string
	// UserSegments and DeviceTypes are accepted by rtb-stats only.
	UserSegments []UserSegment
	DeviceTypes  []DeviceType
}

type statsQuery struct {
	DayFrom         Date     `url:"dayFrom"`
	DayTo           Date     `url:"dayTo"`
	GroupBy         enumList `url:"groupBy"`
	Metrics         enumList `url:"metrics"`
	CountConvention string   `url:"countConvention,omitempty"`
	Subcampaigns    string   `url:"subcampaigns,omitempty"`
	UserSegments    enumList `url:"userSegments,omitempty"`
	DeviceTypes     enumList `url:"deviceTypes,omitempty"`
}

func (p StatsParams) validate(includeSegments bool) error {
	if p.DayFrom.IsZero() {
		return &ParameterError{Param: "dayFrom", Reason: "must be set"}
	}
	if p.DayTo.IsZero() {
		return &ParameterError{Param: "dayTo", Reason: "must be set"}
	}
	if len(p.GroupBy) == 0 {
		return &ParameterError{Param: "groupBy", Reason: "at least one dimension is required"}
	}
	for _, g := range p.GroupBy {
		if !g.Valid() {
			return &ParameterError{Param: "groupBy", Reason: fmt.Sprintf("unsupported value %q", string(g))}
		}
	}
	if len(p.Metrics) == 0 {
		return &ParameterError{Param: "metrics", Reason: "at least one metric is required"}
	}
	for _, m := range p.Metrics {
		if !m.Valid() {
			return &ParameterError{Param: "metrics", Reason: fmt.Sprintf("unsupported value %q", string(m))}
		}
	}
	if p.CountConvention != nil && !p.CountConvention.Valid() {
		return &ParameterError{Param: "countConvention", Reason: fmt.Sprintf("unsupported value %q", string(*p.CountConvention))}
	}
	for _, s := range p.UserSegments {
		if !includeSegments {
			return &ParameterError{Param: "userSegments", Reason: "not accepted by this endpoint"}
		}
		if !s.Valid() {
			return &ParameterError{Param: "userSegments", Reason: fmt.Sprintf("unsupported value %q", string(s))}
		}
	}
	for _, d := range p.DeviceTypes {
		if !includeSegments {
			return &ParameterError{Param: "deviceTypes", Reason: "not accepted by this endpoint"}
		}
		if !d.Valid() {
			return &ParameterError{Param: "deviceTypes", Reason: fmt.Sprintf("unsupported value %q", string(d))}
		}
	}
	return nil
}

func (p StatsParams) queryValues() (url.Values, error) {
	q := statsQuery{
		DayFrom: p.DayFrom,
		DayTo:   p.DayTo,
		GroupBy: enumStrings(p.GroupBy),
		Metrics: enumStrings(p.Metrics),
	}
	if p.CountConvention != nil {
		q.CountConvention = string(*p.CountConvention)
	}
	if len(p.Subcampaigns) > 0 {
		q.Subcampaigns = strings.Join(p.Subcampaigns, "-")
	}
	if len(p.UserSegments) > 0 {
		q.UserSegments = enumStrings(p.UserSegments)
	}
	if len(p.DeviceTypes) > 0 {
		q.DeviceTypes = enumStrings(p.DeviceTypes)
	}
	return query.Values(q)
}

// RTBCreativesParams narrows the rtb-creatives listing. Subcampaigns and
// SubcampaignsFilter are mutually exclusive.
type RTBCreativesParams struct {
	Subcampaigns       []string
	SubcampaignsFilter *SubcampaignsFilter
	ActiveOnly         *bool
}

type creativesQuery struct {
	Subcampaigns string `url:"subcampaigns,omitempty"`
	ActiveOnly   *bool  `url:"activeOnly,omitempty"`
}

func (p RTBCreativesParams) validate() error {
	if len(p.Subcampaigns) > 0 && p.SubcampaignsFilter != nil {
		return &ParameterError{Param: "subcampaigns", Reason: "hash list and filter are mutually exclusive"}
	}
	if p.SubcampaignsFilter != nil && !p.SubcampaignsFilter.Valid() {
		return &ParameterError{Param: "subcampaigns", Reason: fmt.Sprintf("unsupported filter %q", string(*p.SubcampaignsFilter))}
	}
	return nil
}

func (p RTBCreativesParams) queryValues() (url.Values, error) {
	q := creativesQuery{ActiveOnly: p.ActiveOnly}
	switch {
	case p.SubcampaignsFilter != nil:
		q.Subcampaigns = string(*p.SubcampaignsFilter)
	case len(p.Subcampaigns) > 0:
		q.Subcampaigns = strings.Join(p.Subcampaigns, "-")
	}
	return query.Values(q)
}

type conversionsQuery struct {
	DayFrom         Date   `url:"dayFrom"`
	DayTo           Date   `url:"dayTo"`
	CountConvention string `url:"countConvention"`
	Limit           int    `url:"limit"`
}

type billingQuery struct {
	DayFrom Date `url:"dayFrom"`
	DayTo   Date `url:"dayTo"`
}

func queryValuesOf(v any) (url.Values, error) {
	return query.Values(v)
}

func enumStrings[T ~string](values []T) enumList {
	out := make(enumList, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
