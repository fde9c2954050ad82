// Package filter compiles user-supplied expressions into predicates over
// stats rows, using the expr language.
//
// Expressions see one stats row at a time: dimension fields as strings
// (day, subcampaign, deviceType, ...), metric fields as floats (clicksCount,
// campaignCost, ...). Metrics the report did not include evaluate to nil.
//
//	clicksCount > 100 && deviceType == "MOBILE"
package filter

import (
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/rtbhouse-apps/rtbhouse-go-sdk/rtbhouse"
)

// Filter is a compiled predicate over a stats row environment. Safe for
// concurrent use.
type Filter struct {
	expression string
	program    *vm.Program
}

// Compile parses and compiles a filter expression.
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{Expression: expression, Reason: "empty expression"}
	}

	program, err := expr.Compile(expression,
		expr.Env(helperFunctions()),
		expr.AllowUndefinedVariables(), // row fields are injected at run time
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	return &Filter{expression: expression, program: program}, nil
}

// Expression returns the original expression.
func (f *Filter) Expression() string {
	return f.expression
}

// MatchStats evaluates the filter against one stats row.
func (f *Filter) MatchStats(row rtbhouse.Stats) (bool, error) {
	env := helperFunctions()
	for name, value := range StatsEnv(row) {
		env[name] = value
	}

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, &EvaluationError{Expression: f.expression, Err: err}
	}
	return result.(bool), nil
}

// Apply returns the rows matching the filter, preserving order.
func (f *Filter) Apply(rows []rtbhouse.Stats) ([]rtbhouse.Stats, error) {
	var out []rtbhouse.Stats
	for _, row := range rows {
		ok, err := f.MatchStats(row)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, row)
		}
	}
	return out, nil
}

// StatsEnv flattens a stats row into the variables an expression can
// reference, under their wire names.
func StatsEnv(row rtbhouse.Stats) map[string]any {
	env := make(map[string]any, 42)

	if row.Hour != nil {
		env["hour"] = *row.Hour
	}
	if row.Day != nil {
		env["day"] = row.Day.Time().Format("2006-01-02")
	}
	putString(env, "week", row.Week)
	putString(env, "month", row.Month)
	putString(env, "year", row.Year)
	putString(env, "advertiser", row.Advertiser)
	putString(env, "subcampaign", row.Subcampaign)
	putString(env, "subcampaignHash", row.SubcampaignHash)
	putString(env, "userSegment", row.UserSegment)
	putString(env, "deviceType", row.DeviceType)
	putString(env, "creative", row.Creative)
	putString(env, "category", row.Category)
	putString(env, "categoryName", row.CategoryName)
	putString(env, "country", row.Country)
	putString(env, "placement", row.Placement)

	putNumber(env, "campaignCost", row.CampaignCost)
	putNumber(env, "impsCount", row.ImpsCount)
	putNumber(env, "ecpm", row.ECPM)
	putNumber(env, "clicksCount", row.ClicksCount)
	putNumber(env, "ecpc", row.ECPC)
	putNumber(env, "ctr", row.CTR)
	putNumber(env, "conversionsCount", row.ConversionsCount)
	putNumber(env, "ecpa", row.ECPA)
	putNumber(env, "cr", row.CR)
	putNumber(env, "conversionsValue", row.ConversionsValue)
	putNumber(env, "roas", row.ROAS)
	putNumber(env, "ecps", row.ECPS)
	putNumber(env, "videoCompleteViews", row.VideoCompleteViews)
	putNumber(env, "ecpv", row.ECPV)
	putNumber(env, "vcr", row.VCR)
	putNumber(env, "audioCompleteListens", row.AudioCompleteListens)
	putNumber(env, "ecpl", row.ECPL)
	putNumber(env, "acr", row.ACR)
	putNumber(env, "viewabilityMeasurability", row.ViewabilityMeasurability)
	putNumber(env, "viewabilityViewability", row.ViewabilityViewability)
	putNumber(env, "evcpm", row.EVCPM)
	putNumber(env, "sspViewability", row.SSPViewability)
	putNumber(env, "visitsCount", row.VisitsCount)
	putNumber(env, "cpvisit", row.CPVisit)
	putNumber(env, "userFrequency", row.UserFrequency)
	putNumber(env, "userReach", row.UserReach)

	return env
}

func putString(env map[string]any, name string, value *string) {
	if value != nil {
		env[name] = *value
	}
}

func putNumber(env map[string]any, name string, value rtbhouse.Number) {
	if value.Valid {
		env[name] = value.Value
	}
}

func helperFunctions() map[string]any {
	return map[string]any{
		"parseDate": func(dateStr string) time.Time {
			t, _ := time.Parse("2006-01-02", dateStr)
			return t
		},
		"contains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		"now":   time.Now,
	}
}
