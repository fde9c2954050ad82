package rtbhouse

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberAcceptsIntAndFloat(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Number
	}{
		{"integer", `{"clicksCount": 5}`, NumberOf(5.0)},
		{"float", `{"clicksCount": 5.0}`, NumberOf(5.0)},
		{"fractional", `{"clicksCount": 5.5}`, NumberOf(5.5)},
		{"zero", `{"clicksCount": 0}`, NumberOf(0)},
		{"null", `{"clicksCount": null}`, Number{}},
		{"absent", `{}`, Number{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var row Stats
			require.NoError(t, json.Unmarshal([]byte(tt.body), &row))
			assert.Equal(t, tt.want, row.ClicksCount)
		})
	}
}

func TestNumberNullDistinctFromZero(t *testing.T) {
	var fromNull, fromZero Stats
	require.NoError(t, json.Unmarshal([]byte(`{"conversionsCount": null}`), &fromNull))
	require.NoError(t, json.Unmarshal([]byte(`{"conversionsCount": 0}`), &fromZero))

	assert.False(t, fromNull.ConversionsCount.Valid)
	assert.True(t, fromZero.ConversionsCount.Valid)
	assert.NotEqual(t, fromNull.ConversionsCount, fromZero.ConversionsCount)
	assert.Equal(t, 7.0, fromNull.ConversionsCount.Or(7))
	assert.Equal(t, 0.0, fromZero.ConversionsCount.Or(7))
}

func TestNumberRejectsNonNumeric(t *testing.T) {
	var n Number
	assert.Error(t, json.Unmarshal([]byte(`"five"`), &n))
}

func TestDecodeKeepsUnknownFields(t *testing.T) {
	body := json.RawMessage(`{
		"hashId": "usr1",
		"login": "reporter",
		"email": "r@example.com",
		"isClientUser": false,
		"permissions": [],
		"experimentalFlag": true,
		"quota": {"daily": 10}
	}`)

	info, err := decodeRecord[UserInfo](body)
	require.NoError(t, err)
	assert.Equal(t, "usr1", info.HashID)

	require.Len(t, info.Extra, 2)
	assert.JSONEq(t, `true`, string(info.Extra["experimentalFlag"]))
	assert.JSONEq(t, `{"daily": 10}`, string(info.Extra["quota"]))
}

func TestDecodeNoExtrasLeavesBagEmpty(t *testing.T) {
	body := json.RawMessage(`{"hashId": "usr1", "login": "l", "email": "e", "isClientUser": false, "permissions": []}`)
	info, err := decodeRecord[UserInfo](body)
	require.NoError(t, err)
	assert.Nil(t, info.Extra)
}

func TestStatsRoundTrip(t *testing.T) {
	day := NewDate(2026, 8, 15)
	deviceType := "MOBILE"
	row := Stats{
		Day:              &day,
		DeviceType:       &deviceType,
		CampaignCost:     NumberOf(12.5),
		ImpsCount:        NumberOf(1000),
		ClicksCount:      NumberOf(42),
		ConversionsCount: Number{}, // stays null on the wire
	}

	encoded, err := json.Marshal(row)
	require.NoError(t, err)

	var decoded Stats
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, row, decoded)
}

func TestConversionRoundTrip(t *testing.T) {
	class := "purchase"
	clickTime := time.Date(2026, 8, 14, 10, 30, 0, 0, time.UTC)
	conv := Conversion{
		ConversionIdentifier: "order-1",
		ConversionHash:       "h1",
		ConversionClass:      &class,
		ConversionValue:      NumberOf(199.99),
		CommissionValue:      NumberOf(10),
		ConversionTime:       time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC),
		LastClickTime:        &clickTime,
	}

	encoded, err := json.Marshal(conv)
	require.NoError(t, err)

	var decoded Conversion
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, conv, decoded)
}

func TestDateWireFormats(t *testing.T) {
	day := NewDate(2026, 3, 7)

	// Query encoding is day-month-year, zero-padded.
	assert.Equal(t, "07-03-2026", day.String())

	// JSON bodies use year-month-day.
	encoded, err := json.Marshal(day)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-07"`, string(encoded))

	var decoded Date
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, day, decoded)
}

func TestDateOf(t *testing.T) {
	ts := time.Date(2026, 8, 29, 23, 59, 1, 0, time.FixedZone("CET", 3600))
	assert.Equal(t, NewDate(2026, 8, 29), DateOf(ts))
}
