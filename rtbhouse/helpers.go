package rtbhouse

import (
	"sort"
	"strings"
	"unicode"
)

// Billing operation types that make up RTB campaign cost, and their FB DPA
// counterparts. Everything else is reported as its own ledger line.
var (
	rtbCostTypes = []string{"CLICKS", "IMPS", "POST_CLICKS", "POST_VIEWS", "POST_CLICKS_REJECTIONS", "POST_VIEWS_REJECTIONS"}
	dpaCostTypes = []string{"DPA_CLICKS", "DPA_LAST_CLICKS"}
)

// BillingOperation is one raw entry of a billing export, before squashing.
type BillingOperation struct {
	Day         Date
	Type        string
	Description string
	Value       float64
}

// SquashBilling collapses raw billing operations into per-day ledger lines:
// campaign costs and FB DPA costs are aggregated per day, other operations
// stay separate. Lines are ordered by (day, position, operation) and carry a
// running balance starting from initialBalance.
func SquashBilling(operations []BillingOperation, initialBalance float64) []Bill {
	var rtb, dpa, other []BillingOperation
	for _, op := range operations {
		switch {
		case containsType(rtbCostTypes, op.Type):
			rtb = append(rtb, op)
		case containsType(dpaCostTypes, op.Type):
			dpa = append(dpa, op)
		default:
			other = append(other, op)
		}
	}

	bills := groupByDay(rtb, "Cost of campaign", 2)
	bills = append(bills, groupByDay(dpa, "Cost of FB DPA campaign", 3)...)
	for _, op := range other {
		operation := op.Description
		if operation == "" {
			operation = titleCase(op.Type)
		}
		bill := Bill{Day: op.Day, Operation: operation, Position: 1}
		if op.Value > 0 {
			bill.Credit = op.Value
		} else {
			bill.Debit = op.Value
		}
		bills = append(bills, bill)
	}

	bills = combine(bills)

	filtered := bills[:0]
	for _, b := range bills {
		if b.Credit != 0 || b.Debit != 0 {
			filtered = append(filtered, b)
		}
	}
	bills = filtered

	sort.SliceStable(bills, func(i, j int) bool {
		if !bills[i].Day.Time().Equal(bills[j].Day.Time()) {
			return bills[i].Day.Before(bills[j].Day)
		}
		if bills[i].Position != bills[j].Position {
			return bills[i].Position < bills[j].Position
		}
		return bills[i].Operation < bills[j].Operation
	})

	balance := initialBalance
	for i := range bills {
		balance += bills[i].Credit + bills[i].Debit
		bills[i].Balance = balance
		bills[i].RecordNumber = i + 1
	}
	return bills
}

func groupByDay(operations []BillingOperation, operationName string, position int) []Bill {
	byDay := map[Date]*Bill{}
	var order []Date
	for _, op := range operations {
		bill, ok := byDay[op.Day]
		if !ok {
			bill = &Bill{Day: op.Day, Operation: operationName, Position: position}
			byDay[op.Day] = bill
			order = append(order, op.Day)
		}
		if op.Value > 0 {
			bill.Credit += op.Value
		} else {
			bill.Debit += op.Value
		}
	}
	out := make([]Bill, 0, len(order))
	for _, day := range order {
		out = append(out, *byDay[day])
	}
	return out
}

// combine merges lines that share a day and operation.
func combine(bills []Bill) []Bill {
	var result []Bill
	for _, bill := range bills {
		merged := false
		for i := range result {
			if result[i].Day == bill.Day && result[i].Operation == bill.Operation {
				result[i].Credit += bill.Credit
				result[i].Debit += bill.Debit
				merged = true
				break
			}
		}
		if !merged {
			result = append(result, bill)
		}
	}
	return result
}

func containsType(types []string, t string) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range strings.ToLower(s) {
		if !unicode.IsLetter(r) {
			upperNext = true
			b.WriteRune(r)
			continue
		}
		if upperNext {
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// RawStatsRow carries the unaggregated cost and count columns of a raw stats
// export, used to derive convention-dependent metrics client-side.
type RawStatsRow struct {
	ImpsCost                 float64
	ClicksCost               float64
	AttributedPostviewsCost  float64
	AttributedPostclicksCost float64

	ImpsCount   float64
	ClicksCount float64

	AttributedPostviewsCount  float64
	AttributedPostviewsValue  float64
	AttributedPostclicksCount float64
	AttributedPostclicksValue float64
	AllPostclicksCount        float64
	AllPostclicksValue        float64
}

// ConventionMetrics are the derived metrics of one raw stats row under a
// count convention. Ratios with a zero denominator stay unset.
type ConventionMetrics struct {
	TotalCost                  float64
	ClickthroughRate           Number
	CostPerClick               Number
	ConversionsCount           Number
	ConversionsRate            Number
	ConversionsValue           Number
	EffectiveCostOfConversion  Number
	ReturnOnAdvertiserSpending Number
}

// CalculateConventionMetrics derives cost and conversion metrics from a raw
// stats row under the given count convention.
func CalculateConventionMetrics(row RawStatsRow, convention CountConvention) ConventionMetrics {
	m := ConventionMetrics{
		TotalCost: row.ImpsCost + row.ClicksCost + row.AttributedPostviewsCost + row.AttributedPostclicksCost,
	}

	switch convention {
	case CountConventionAttributedPostView:
		m.ConversionsCount = NumberOf(row.AttributedPostviewsCount)
		m.ConversionsValue = NumberOf(row.AttributedPostviewsValue)
	case CountConventionAttributedPostClick:
		m.ConversionsCount = NumberOf(row.AttributedPostclicksCount)
		m.ConversionsValue = NumberOf(row.AttributedPostclicksValue)
	case CountConventionAllPostClick:
		m.ConversionsCount = NumberOf(row.AllPostclicksCount)
		m.ConversionsValue = NumberOf(row.AllPostclicksValue)
	}

	if row.ClicksCount != 0 && m.ConversionsCount.Valid {
		m.ConversionsRate = NumberOf(m.ConversionsCount.Value / row.ClicksCount)
	}
	if m.ConversionsCount.Or(0) != 0 {
		m.EffectiveCostOfConversion = NumberOf(m.TotalCost / m.ConversionsCount.Value)
	}
	if row.ImpsCount != 0 {
		m.ClickthroughRate = NumberOf(row.ClicksCount / row.ImpsCount)
	}
	if row.ClicksCount != 0 {
		m.CostPerClick = NumberOf(m.TotalCost / row.ClicksCount)
	}
	if m.TotalCost > 0 && m.ConversionsValue.Valid {
		m.ReturnOnAdvertiserSpending = NumberOf(m.ConversionsValue.Value / m.TotalCost)
	}
	return m
}

// DeduplicationMetrics describe how much attributed post-click activity
// survives conversion deduplication.
type DeduplicationMetrics struct {
	DeduplicationRate      Number
	DeduplicationValueRate Number
}

// CalculateDeduplicationMetrics derives deduplication rates from a raw stats
// row.
func CalculateDeduplicationMetrics(row RawStatsRow) DeduplicationMetrics {
	var m DeduplicationMetrics
	if row.AllPostclicksCount > 0 {
		m.DeduplicationRate = NumberOf(1 - row.AttributedPostclicksCount/row.AllPostclicksCount)
	}
	if row.AllPostclicksValue > 0 {
		m.DeduplicationValueRate = NumberOf(1 - row.AttributedPostclicksValue/row.AllPostclicksValue)
	}
	return m
}

// FillMissingDays pads a day-grouped stats series so every day between
// dayFrom and dayTo (inclusive) has a row. Missing days get a copy of
// template with Day set. The result is sorted by day. Rows without a Day are
// kept as-is at the front.
func FillMissingDays(stats []Stats, dayFrom, dayTo Date, template Stats) []Stats {
	present := map[Date]bool{}
	for _, row := range stats {
		if row.Day != nil {
			present[*row.Day] = true
		}
	}

	out := append([]Stats(nil), stats...)
	for day := dayFrom; !dayTo.Before(day); day = day.AddDays(1) {
		if present[day] {
			continue
		}
		row := template
		d := day
		row.Day = &d
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].Day, out[j].Day
		switch {
		case di == nil:
			return dj != nil
		case dj == nil:
			return false
		default:
			return di.Before(*dj)
		}
	})
	return out
}
