package rtbhouse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the production reporting panel.
	DefaultBaseURL = "https://api.panel.rtbhouse.com"
	// APIVersion is the panel API version this SDK speaks.
	APIVersion = "v5"
	// DefaultTimeout bounds a single call unless overridden.
	DefaultTimeout = 60 * time.Second
	// MaxCursorRows is the page size used for cursor-paginated endpoints.
	MaxCursorRows = 10000

	defaultUserAgent = "rtbhouse-go-sdk/" + Version
)

// Version is the SDK version reported in the User-Agent header.
const Version = "1.0.0"

// Client talks to the RTB House reporting API. One Client owns one HTTP
// session (connection pool plus credentials) and is safe for concurrent use;
// each call is an independent request/response exchange.
type Client struct {
	baseURL    string
	auth       Credentials
	httpClient *http.Client
	userAgent  string
	logger     zerolog.Logger
}

// NewClient creates a client for the given credentials. Credential validation
// happens in NewBasicAuth/NewTokenAuth, so auth here is already known-good;
// a nil auth is still rejected.
func NewClient(auth Credentials, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if auth == nil {
		return nil, &ParameterError{Param: "auth", Reason: "credentials are required"}
	}

	options := clientOptions{
		baseURL:   DefaultBaseURL,
		timeout:   DefaultTimeout,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(&options)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(options.baseURL, "/") + "/" + APIVersion,
		auth:       auth,
		httpClient: httpClient,
		userAgent:  options.userAgent,
		logger:     logger,
	}, nil
}

// Close releases idle pooled connections. It is idempotent and the client
// remains usable afterwards; in-flight calls are unaffected.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// get performs one GET exchange and returns the "data" member of the response
// envelope.
func (c *Client) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	requestURL := c.baseURL + path
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", path, err)
	}
	req.Header.Set("Authorization", c.auth.headerValue())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug().Str("method", http.MethodGet).Str("path", path).Msg("api request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "GET " + path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "GET " + path, Err: err}
	}

	if err := classifyResponse(resp, body); err != nil {
		return nil, err
	}
	c.warnOnStaleVersion(resp)

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Data == nil {
		return nil, fmt.Errorf("invalid response format from %s", path)
	}
	return envelope.Data, nil
}

// classifyResponse maps a non-2xx status to a typed error, carrying the
// server-provided message through unmodified.
func classifyResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var details *ErrorDetails
	var parsed ErrorDetails
	if err := json.Unmarshal(body, &parsed); err == nil {
		details = &parsed
	}

	message := "Unexpected error"
	if details != nil && details.Message != "" {
		message = details.Message
	}

	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    message,
		Details:    details,
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		apiErr.Kind = KindAuthentication
	case resp.StatusCode == http.StatusNotFound:
		apiErr.Kind = KindNotFound
	case resp.StatusCode == http.StatusGone:
		apiErr.Kind = KindVersionMismatch
		newest := resp.Header.Get("X-Current-Api-Version")
		apiErr.Message = fmt.Sprintf(
			"unsupported api version (%s), use newest version (%s) by updating the rtbhouse-go-sdk module",
			APIVersion, newest)
	case resp.StatusCode == http.StatusTooManyRequests:
		apiErr.Kind = KindRateLimited
		apiErr.Message = "resource usage limits reached"
		apiErr.Limits = parseResourceUsage(resp.Header.Get("X-Resource-Usage"))
	case resp.StatusCode >= 500:
		apiErr.Kind = KindServerError
	default:
		apiErr.Kind = KindInvalidRequest
	}
	return apiErr
}

func (c *Client) warnOnStaleVersion(resp *http.Response) {
	current := resp.Header.Get("X-Current-Api-Version")
	if current != "" && current != APIVersion {
		c.logger.Warn().
			Str("used", APIVersion).
			Str("newest", current).
			Msg("api version is outdated, update the rtbhouse-go-sdk module")
	}
}

// GetUserInfo returns details of the authenticated account.
func (c *Client) GetUserInfo(ctx context.Context) (UserInfo, error) {
	data, err := c.get(ctx, "/user/info", nil)
	if err != nil {
		return UserInfo{}, err
	}
	return decodeRecord[UserInfo](data)
}

// GetAdvertisers lists the advertisers the account can report on.
func (c *Client) GetAdvertisers(ctx context.Context) ([]Advertiser, error) {
	data, err := c.get(ctx, "/advertisers", nil)
	if err != nil {
		return nil, err
	}
	return decodeRecords[Advertiser](data)
}

// GetAdvertiser returns a single advertiser by hash.
func (c *Client) GetAdvertiser(ctx context.Context, advHash string) (Advertiser, error) {
	if err := validateAdvHash(advHash); err != nil {
		return Advertiser{}, err
	}
	data, err := c.get(ctx, "/advertisers/"+url.PathEscape(advHash), nil)
	if err != nil {
		return Advertiser{}, err
	}
	return decodeRecord[Advertiser](data)
}

// GetInvoicingData returns the advertiser's invoicing details.
func (c *Client) GetInvoicingData(ctx context.Context, advHash string) (InvoiceData, error) {
	if err := validateAdvHash(advHash); err != nil {
		return InvoiceData{}, err
	}
	data, err := c.get(ctx, "/advertisers/"+url.PathEscape(advHash)+"/client", nil)
	if err != nil {
		return InvoiceData{}, err
	}
	var wrapper struct {
		Invoicing json.RawMessage `json:"invoicing"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil || wrapper.Invoicing == nil {
		return InvoiceData{}, fmt.Errorf("invalid response format from /client")
	}
	return decodeRecord[InvoiceData](wrapper.Invoicing)
}

// GetOfferCategories lists the advertiser's offer categories.
func (c *Client) GetOfferCategories(ctx context.Context, advHash string) ([]Category, error) {
	if err := validateAdvHash(advHash); err != nil {
		return nil, err
	}
	data, err := c.get(ctx, "/advertisers/"+url.PathEscape(advHash)+"/offer-categories", nil)
	if err != nil {
		return nil, err
	}
	return decodeRecords[Category](data)
}

// GetOffers lists the advertiser's feed offers.
func (c *Client) GetOffers(ctx context.Context, advHash string) ([]Offer, error) {
	if err := validateAdvHash(advHash); err != nil {
		return nil, err
	}
	data, err := c.get(ctx, "/advertisers/"+url.PathEscape(advHash)+"/offers", nil)
	if err != nil {
		return nil, err
	}
	return decodeRecords[Offer](data)
}

// GetAdvertiserCampaigns lists the advertiser's campaigns.
func (c *Client) GetAdvertiserCampaigns(ctx context.Context, advHash string) ([]Campaign, error) {
	if err := validateAdvHash(advHash); err != nil {
		return nil, err
	}
	data, err := c.get(ctx, "/advertisers/"+url.PathEscape(advHash)+"/campaigns", nil)
	if err != nil {
		return nil, err
	}
	return decodeRecords[Campaign](data)
}

// GetBilling returns the billing ledger for a date range. The range is sent
// as-is; whether dayFrom may exceed dayTo is the server's call.
func (c *Client) GetBilling(ctx context.Context, advHash string, dayFrom, dayTo Date) (Billing, error) {
	if err := validateAdvHash(advHash); err != nil {
		return Billing{}, err
	}
	if err := validateDayRange(dayFrom, dayTo); err != nil {
		return Billing{}, err
	}
	q, err := queryValuesOf(billingQuery{DayFrom: dayFrom, DayTo: dayTo})
	if err != nil {
		return Billing{}, err
	}
	data, err := c.get(ctx, "/advertisers/"+url.PathEscape(advHash)+"/billing", q)
	if err != nil {
		return Billing{}, err
	}
	return decodeRecord[Billing](data)
}

// GetRTBCreatives lists the advertiser's RTB creatives.
func (c *Client) GetRTBCreatives(ctx context.Context, advHash string, params RTBCreativesParams) ([]Creative, error) {
	if err := validateAdvHash(advHash); err != nil {
		return nil, err
	}
	if err := params.validate(); err != nil {
		return nil, err
	}
	q, err := params.queryValues()
	if err != nil {
		return nil, err
	}
	data, err := c.get(ctx, "/advertisers/"+url.PathEscape(advHash)+"/rtb-creatives", q)
	if err != nil {
		return nil, err
	}
	return decodeRecords[Creative](data)
}

// GetRTBStats returns RTB statistics grouped and filtered per params.
func (c *Client) GetRTBStats(ctx context.Context, advHash string, params StatsParams) ([]Stats, error) {
	return c.getStats(ctx, advHash, "/rtb-stats", params, true)
}

// GetSummaryStats returns summary statistics (RTB plus non-RTB spend).
// UserSegments and DeviceTypes are not accepted here.
func (c *Client) GetSummaryStats(ctx context.Context, advHash string, params StatsParams) ([]Stats, error) {
	return c.getStats(ctx, advHash, "/summary-stats", params, false)
}

func (c *Client) getStats(ctx context.Context, advHash, endpoint string, params StatsParams, includeSegments bool) ([]Stats, error) {
	if err := validateAdvHash(advHash); err != nil {
		return nil, err
	}
	if err := params.validate(includeSegments); err != nil {
		return nil, err
	}
	q, err := params.queryValues()
	if err != nil {
		return nil, err
	}
	data, err := c.get(ctx, "/advertisers/"+url.PathEscape(advHash)+endpoint, q)
	if err != nil {
		return nil, err
	}
	return decodeRecords[Stats](data)
}

func validateAdvHash(advHash string) error {
	if advHash == "" {
		return &ParameterError{Param: "advHash", Reason: "must not be empty"}
	}
	return nil
}

func validateDayRange(dayFrom, dayTo Date) error {
	if dayFrom.IsZero() {
		return &ParameterError{Param: "dayFrom", Reason: "must be set"}
	}
	if dayTo.IsZero() {
		return &ParameterError{Param: "dayTo", Reason: "must be set"}
	}
	return nil
}
