package rtbhouse

import (
	"encoding/json"
	"time"
)

// Number is a nullable numeric metric. The API may serve counts as JSON
// integers or floats; both decode to float64. A JSON null (or absent field)
// leaves Valid false, which is distinct from a decoded 0.
type Number struct {
	Value float64
	Valid bool
}

// NumberOf wraps a concrete value.
func NumberOf(v float64) Number {
	return Number{Value: v, Valid: true}
}

// Float64 returns the value, or 0 when the number is unset. Use Valid to tell
// the two apart.
func (n Number) Float64() float64 { return n.Value }

// Or returns the value, or def when the number is unset.
func (n Number) Or(def float64) float64 {
	if !n.Valid {
		return def
	}
	return n.Value
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*n = Number{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = Number{Value: f, Valid: true}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Extras holds response fields this SDK version does not know about. They are
// preserved under their original wire names so new API fields are never
// silently dropped.
type Extras struct {
	Extra map[string]json.RawMessage `json:"-"`
}

func (e *Extras) setExtra(m map[string]json.RawMessage) { e.Extra = m }

type extraSetter interface {
	setExtra(map[string]json.RawMessage)
}

// UserInfo describes the authenticated account.
type UserInfo struct {
	Extras

	HashID       string   `json:"hashId"`
	Login        string   `json:"login"`
	Email        string   `json:"email"`
	IsClientUser bool     `json:"isClientUser"`
	Permissions  []string `json:"permissions"`
}

// Advertiser is one reporting account.
type Advertiser struct {
	Extras

	Hash       string         `json:"hash"`
	Status     string         `json:"status"`
	Name       string         `json:"name"`
	Currency   string         `json:"currency"`
	URL        string         `json:"url"`
	CreatedAt  time.Time      `json:"createdAt"`
	Properties map[string]any `json:"properties"`
}

// Campaign is one advertiser campaign.
type Campaign struct {
	Extras

	Hash             string            `json:"hash"`
	Name             string            `json:"name"`
	CreativeIDs      []int64           `json:"creativeIds"`
	Status           string            `json:"status"`
	UpdatedAt        *time.Time        `json:"updatedAt"`
	RateCardID       string            `json:"rateCardId"`
	IsEditable       bool              `json:"isEditable"`
	AdvertiserLimits map[string]*int64 `json:"advertiserLimits,omitempty"`
}

// InvoiceData carries the advertiser's invoicing details. This endpoint keeps
// the snake_case field names of the billing backend.
type InvoiceData struct {
	Extras

	VATNumber   string `json:"vat_number"`
	CompanyName string `json:"company_name"`
	Street1     string `json:"street1"`
	Street2     string `json:"street2,omitempty"`
	PostalCode  string `json:"postal_code"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Email       string `json:"email"`
}

// Category is one offer category.
type Category struct {
	Extras

	CategoryID         string `json:"categoryId"`
	Identifier         string `json:"identifier"`
	Name               string `json:"name"`
	ActiveOffersNumber int    `json:"activeOffersNumber"`
}

// Image is one offer image variant.
type Image struct {
	Extras

	Width  string `json:"width"`
	Height string `json:"height"`
	URL    string `json:"url"`
	Added  string `json:"added"`
	Hash   string `json:"hash"`
}

// Offer is one product offer from the advertiser's feed.
type Offer struct {
	Extras

	URL              string            `json:"url"`
	FullName         string            `json:"fullName"`
	Identifier       string            `json:"identifier"`
	ID               string            `json:"id"`
	Images           []Image           `json:"images"`
	Name             string            `json:"name"`
	Price            float64           `json:"price"`
	CategoryName     string            `json:"categoryName"`
	CustomProperties map[string]string `json:"customProperties"`
	UpdatedAt        string            `json:"updatedAt"`
	Status           string            `json:"status"`
}

// Bill is one billing ledger line.
type Bill struct {
	Extras

	Day          Date    `json:"day"`
	Operation    string  `json:"operation"`
	Position     int     `json:"position"`
	Credit       float64 `json:"credit"`
	Debit        float64 `json:"debit"`
	Balance      float64 `json:"balance"`
	RecordNumber int     `json:"recordNumber"`
}

// Billing is the advertiser's ledger over a date range.
type Billing struct {
	Extras

	InitialBalance float64 `json:"initialBalance"`
	Bills          []Bill  `json:"bills"`
}

// CreativePreview is one rendered size of a creative.
type CreativePreview struct {
	Extras

	Width        int    `json:"width"`
	Height       int    `json:"height"`
	OffersNumber int    `json:"offersNumber"`
	PreviewURL   string `json:"previewUrl"`
}

// Creative is one RTB creative with its previews.
type Creative struct {
	Extras

	Hash     string            `json:"hash"`
	Previews []CreativePreview `json:"previews"`
}

// Conversion is one attributed conversion event.
type Conversion struct {
	Extras

	ConversionIdentifier string     `json:"conversionIdentifier"`
	ConversionHash       string     `json:"conversionHash"`
	ConversionClass      *string    `json:"conversionClass"`
	ConversionValue      Number     `json:"conversionValue"`
	CommissionValue      Number     `json:"commissionValue"`
	CookieHash           *string    `json:"cookieHash"`
	ConversionTime       time.Time  `json:"conversionTime"`
	LastClickTime        *time.Time `json:"lastClickTime"`
	LastImpressionTime   *time.Time `json:"lastImpressionTime"`
}

// Stats is one statistics row. Which dimension fields are set depends on the
// requested group-by; which metric fields are set depends on the requested
// metrics. Unset metrics stay Valid=false.
type Stats struct {
	Extras

	Hour            *int    `json:"hour,omitempty"`
	Day             *Date   `json:"day,omitempty"`
	Week            *string `json:"week,omitempty"`
	Month           *string `json:"month,omitempty"`
	Year            *string `json:"year,omitempty"`
	Advertiser      *string `json:"advertiser,omitempty"`
	Subcampaign     *string `json:"subcampaign,omitempty"`
	SubcampaignHash *string `json:"subcampaignHash,omitempty"`
	UserSegment     *string `json:"userSegment,omitempty"`
	DeviceType      *string `json:"deviceType,omitempty"`
	Creative        *string `json:"creative,omitempty"`
	Category        *string `json:"category,omitempty"`
	CategoryName    *string `json:"categoryName,omitempty"`
	Country         *string `json:"country,omitempty"`
	Placement       *string `json:"placement,omitempty"`

	CampaignCost             Number `json:"campaignCost"`
	ImpsCount                Number `json:"impsCount"`
	ECPM                     Number `json:"ecpm"`
	ClicksCount              Number `json:"clicksCount"`
	ECPC                     Number `json:"ecpc"`
	CTR                      Number `json:"ctr"`
	ConversionsCount         Number `json:"conversionsCount"`
	ECPA                     Number `json:"ecpa"`
	CR                       Number `json:"cr"`
	ConversionsValue         Number `json:"conversionsValue"`
	ROAS                     Number `json:"roas"`
	ECPS                     Number `json:"ecps"`
	VideoCompleteViews       Number `json:"videoCompleteViews"`
	ECPV                     Number `json:"ecpv"`
	VCR                      Number `json:"vcr"`
	AudioCompleteListens     Number `json:"audioCompleteListens"`
	ECPL                     Number `json:"ecpl"`
	ACR                      Number `json:"acr"`
	ViewabilityMeasurability Number `json:"viewabilityMeasurability"`
	ViewabilityViewability   Number `json:"viewabilityViewability"`
	EVCPM                    Number `json:"evcpm"`
	SSPViewability           Number `json:"sspViewability"`
	VisitsCount              Number `json:"visitsCount"`
	CPVisit                  Number `json:"cpvisit"`
	UserFrequency            Number `json:"userFrequency"`
	UserReach                Number `json:"userReach"`
}
