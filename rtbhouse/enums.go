package rtbhouse

// CountConvention selects the attribution policy used when counting
// conversions.
type CountConvention string

const (
	CountConventionAttributedPostClick CountConvention = "ATTRIBUTED"
	CountConventionAttributedPostView  CountConvention = "POST_VIEW"
	CountConventionAllPostClick        CountConvention = "ALL_POST_CLICK"
	CountConventionAllConversions      CountConvention = "ALL_CONVERSIONS"
)

// Valid reports whether the value belongs to the closed set the API accepts.
func (c CountConvention) Valid() bool {
	switch c {
	case CountConventionAttributedPostClick, CountConventionAttributedPostView,
		CountConventionAllPostClick, CountConventionAllConversions:
		return true
	}
	return false
}

// UserSegment narrows statistics to a user segment.
type UserSegment string

const (
	UserSegmentNew      UserSegment = "NEW"
	UserSegmentVisitors UserSegment = "VISITORS"
	UserSegmentShoppers UserSegment = "SHOPPERS"
	UserSegmentBuyers   UserSegment = "BUYERS"
)

// Valid reports whether the value belongs to the closed set the API accepts.
func (s UserSegment) Valid() bool {
	switch s {
	case UserSegmentNew, UserSegmentVisitors, UserSegmentShoppers, UserSegmentBuyers:
		return true
	}
	return false
}

// DeviceType narrows statistics to a device class.
type DeviceType string

const (
	DeviceTypePC          DeviceType = "PC"
	DeviceTypeMobile      DeviceType = "MOBILE"
	DeviceTypePhone       DeviceType = "PHONE"
	DeviceTypeTablet      DeviceType = "TABLET"
	DeviceTypeTV          DeviceType = "TV"
	DeviceTypeGameConsole DeviceType = "GAME_CONSOLE"
	DeviceTypeOther       DeviceType = "OTHER"
	DeviceTypeUnknown     DeviceType = "UNKNOWN"
)

// Valid reports whether the value belongs to the closed set the API accepts.
func (d DeviceType) Valid() bool {
	switch d {
	case DeviceTypePC, DeviceTypeMobile, DeviceTypePhone, DeviceTypeTablet,
		DeviceTypeTV, DeviceTypeGameConsole, DeviceTypeOther, DeviceTypeUnknown:
		return true
	}
	return false
}

// GroupBy is an axis along which statistics are aggregated.
type GroupBy string

const (
	GroupByHour  GroupBy = "hour"
	GroupByDay   GroupBy = "day"
	GroupByWeek  GroupBy = "week"
	GroupByMonth GroupBy = "month"
	GroupByYear  GroupBy = "year"

	GroupByAdvertiser  GroupBy = "advertiser"
	GroupBySubcampaign GroupBy = "subcampaign"
	GroupByUserSegment GroupBy = "userSegment"
	GroupByDeviceType  GroupBy = "deviceType"
	GroupByCreative    GroupBy = "creative"
	GroupByCategory    GroupBy = "category"
	GroupByCountry     GroupBy = "country"
	GroupByPlacement   GroupBy = "placement"
)

// Valid reports whether the value belongs to the closed set the API accepts.
func (g GroupBy) Valid() bool {
	switch g {
	case GroupByHour, GroupByDay, GroupByWeek, GroupByMonth, GroupByYear,
		GroupByAdvertiser, GroupBySubcampaign, GroupByUserSegment,
		GroupByDeviceType, GroupByCreative, GroupByCategory, GroupByCountry,
		GroupByPlacement:
		return true
	}
	return false
}

// Metric is a statistic the API can report.
type Metric string

const (
	MetricCampaignCost             Metric = "campaignCost"
	MetricImpsCount                Metric = "impsCount"
	MetricECPM                     Metric = "ecpm"
	MetricClicksCount              Metric = "clicksCount"
	MetricECPC                     Metric = "ecpc"
	MetricCTR                      Metric = "ctr"
	MetricConversionsCount         Metric = "conversionsCount"
	MetricECPA                     Metric = "ecpa"
	MetricCR                       Metric = "cr"
	MetricConversionsValue         Metric = "conversionsValue"
	MetricROAS                     Metric = "roas"
	MetricECPS                     Metric = "ecps"
	MetricVideoCompleteViews       Metric = "videoCompleteViews"
	MetricECPV                     Metric = "ecpv"
	MetricVCR                      Metric = "vcr"
	MetricAudioCompleteListens     Metric = "audioCompleteListens"
	MetricECPL                     Metric = "ecpl"
	MetricACR                      Metric = "acr"
	MetricViewabilityMeasurability Metric = "viewabilityMeasurability"
	MetricViewabilityViewability   Metric = "viewabilityViewability"
	MetricEVCPM                    Metric = "evcpm"
	MetricSSPViewability           Metric = "sspViewability"
	MetricVisitsCount              Metric = "visitsCount"
	MetricCPVisit                  Metric = "cpvisit"
	MetricUserFrequency            Metric = "userFrequency"
	MetricUserReach                Metric = "userReach"
)

// Valid reports whether the value belongs to the closed set the API accepts.
func (m Metric) Valid() bool {
	switch m {
	case MetricCampaignCost, MetricImpsCount, MetricECPM, MetricClicksCount,
		MetricECPC, MetricCTR, MetricConversionsCount, MetricECPA, MetricCR,
		MetricConversionsValue, MetricROAS, MetricECPS,
		MetricVideoCompleteViews, MetricECPV, MetricVCR,
		MetricAudioCompleteListens, MetricECPL, MetricACR,
		MetricViewabilityMeasurability, MetricViewabilityViewability,
		MetricEVCPM, MetricSSPViewability, MetricVisitsCount, MetricCPVisit,
		MetricUserFrequency, MetricUserReach:
		return true
	}
	return false
}

// SubcampaignsFilter is a shorthand subcampaign selector used instead of an
// explicit hash list.
type SubcampaignsFilter string

const (
	SubcampaignsAny    SubcampaignsFilter = "ANY"
	SubcampaignsActive SubcampaignsFilter = "ACTIVE"
)

// Valid reports whether the value belongs to the closed set the API accepts.
func (f SubcampaignsFilter) Valid() bool {
	return f == SubcampaignsAny || f == SubcampaignsActive
}
