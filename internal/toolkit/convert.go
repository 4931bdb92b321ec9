// AngelaMos | 2026
// convert.go

package toolkit

import (
	"context"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

var romanTable = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

type RomanRequest struct {
	Number int    `json:"number" validate:"omitempty,min=1,max=3999"`
	Roman  string `json:"roman"  validate:"omitempty,max=20"`
}

func RomanNumeralConverter() Widget {
	return Typed(func(_ context.Context, req RomanRequest) (any, error) {
		switch {
		case req.Number != 0 && req.Roman != "":
			return nil, badInput("give either number or roman, not both")
		case req.Number != 0:
			return map[string]any{"number": req.Number, "roman": ToRoman(req.Number)}, nil
		case req.Roman != "":
			n, err := FromRoman(req.Roman)
			if err != nil {
				return nil, err
			}
			return map[string]any{"number": n, "roman": strings.ToUpper(req.Roman)}, nil
		default:
			return nil, badInput("number or roman is required")
		}
	})
}

func ToRoman(n int) string {
	var b strings.Builder
	for _, r := range romanTable {
		for n >= r.value {
			b.WriteString(r.symbol)
			n -= r.value
		}
	}
	return b.String()
}

// FromRoman accepts only canonical numerals, so "IIII" and "VX" fail.
func FromRoman(s string) (int, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	rest := upper
	total := 0
	for _, r := range romanTable {
		for strings.HasPrefix(rest, r.symbol) {
			total += r.value
			rest = rest[len(r.symbol):]
		}
	}
	if rest != "" || total < 1 || total > 3999 || ToRoman(total) != upper {
		return 0, badInput("%q is not a valid roman numeral", s)
	}
	return total, nil
}

type TemperatureRequest struct {
	Value *float64 `json:"value" validate:"required"`
	From  string   `json:"from"  validate:"required,oneof=celsius fahrenheit kelvin rankine"`
}

func TemperatureConverter() Widget {
	return Typed(func(_ context.Context, req TemperatureRequest) (any, error) {
		var kelvin float64
		v := *req.Value
		switch req.From {
		case "celsius":
			kelvin = v + 273.15
		case "fahrenheit":
			kelvin = (v + 459.67) * 5 / 9
		case "kelvin":
			kelvin = v
		case "rankine":
			kelvin = v * 5 / 9
		}
		if kelvin < 0 {
			return nil, badInput("temperature is below absolute zero")
		}

		return map[string]float64{
			"celsius":    round(kelvin-273.15, 4),
			"fahrenheit": round(kelvin*9/5-459.67, 4),
			"kelvin":     round(kelvin, 4),
			"rankine":    round(kelvin*9/5, 4),
		}, nil
	})
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

type BaseRequest struct {
	Value string `json:"value" validate:"required,max=128"`
	From  int    `json:"from"  validate:"omitempty,min=2,max=36"`
	To    int    `json:"to"    validate:"omitempty,min=2,max=36"`
}

func IntegerBaseConverter() Widget {
	return Typed(func(_ context.Context, req BaseRequest) (any, error) {
		from := req.From
		if from == 0 {
			from = 10
		}

		value := strings.ToLower(strings.TrimSpace(req.Value))
		value = strings.ReplaceAll(value, "_", "")
		n, ok := new(big.Int).SetString(value, from)
		if !ok {
			return nil, badInput("%q is not a valid base %d number", req.Value, from)
		}

		out := map[string]string{
			"binary":      n.Text(2),
			"octal":       n.Text(8),
			"decimal":     n.Text(10),
			"hexadecimal": n.Text(16),
			"base32":      n.Text(32),
			"base36":      n.Text(36),
		}
		if req.To != 0 {
			out["custom"] = n.Text(req.To)
		}
		return out, nil
	})
}

type PercentageRequest struct {
	Mode string   `json:"mode" validate:"required,oneof=of ratio change increase reverse"`
	X    *float64 `json:"x"    validate:"required"`
	Y    *float64 `json:"y"    validate:"required"`
}

// PercentageCalculator modes:
//
//	of:       X% of Y
//	ratio:    X is what percent of Y
//	change:   percent change from X to Y
//	increase: Y raised by X%
//	reverse:  Y is X% of what
func PercentageCalculator() Widget {
	return Typed(func(_ context.Context, req PercentageRequest) (any, error) {
		x, y := *req.X, *req.Y
		var result float64
		switch req.Mode {
		case "of":
			result = x / 100 * y
		case "ratio":
			if y == 0 {
				return nil, badInput("y must not be zero")
			}
			result = x / y * 100
		case "change":
			if x == 0 {
				return nil, badInput("x must not be zero")
			}
			result = (y - x) / math.Abs(x) * 100
		case "increase":
			result = y * (1 + x/100)
		case "reverse":
			if x == 0 {
				return nil, badInput("x must not be zero")
			}
			result = y / (x / 100)
		}
		return map[string]float64{"result": round(result, 6)}, nil
	})
}

var digitsOnly = regexp.MustCompile(`^-?\d+$`)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.DateTime,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

type DateTimeRequest struct {
	Value    string `json:"value"    validate:"max=64"`
	Format   string `json:"format"   validate:"omitempty,oneof=auto unix unix-ms rfc3339 rfc1123 iso-date"`
	Timezone string `json:"timezone" validate:"max=64"`
}

type DateTimeResult struct {
	Unix      int64  `json:"unix"`
	UnixMilli int64  `json:"unix_ms"`
	RFC3339   string `json:"rfc3339"`
	RFC1123   string `json:"rfc1123"`
	ISODate   string `json:"iso_date"`
	ISOWeek   string `json:"iso_week"`
	Weekday   string `json:"weekday"`
	DayOfYear int    `json:"day_of_year"`
	UTC       string `json:"utc"`
	Timezone  string `json:"timezone"`
	Local     string `json:"local"`
}

func DateTimeConverter() Widget {
	return dateTimeConverter(time.Now)
}

func dateTimeConverter(now func() time.Time) Widget {
	return Typed(func(_ context.Context, req DateTimeRequest) (any, error) {
		loc := time.UTC
		if req.Timezone != "" {
			l, err := time.LoadLocation(req.Timezone)
			if err != nil {
				return nil, badInput("unknown timezone %q", req.Timezone)
			}
			loc = l
		}

		t := now()
		if v := strings.TrimSpace(req.Value); v != "" {
			parsed, err := parseDateTime(v, req.Format, loc)
			if err != nil {
				return nil, err
			}
			t = parsed
		}

		year, week := t.ISOWeek()
		local := t.In(loc)
		return DateTimeResult{
			Unix:      t.Unix(),
			UnixMilli: t.UnixMilli(),
			RFC3339:   t.UTC().Format(time.RFC3339),
			RFC1123:   t.UTC().Format(time.RFC1123),
			ISODate:   t.UTC().Format(time.DateOnly),
			ISOWeek:   strconv.Itoa(year) + "-W" + leftPad(strconv.Itoa(week), 2),
			Weekday:   t.UTC().Weekday().String(),
			DayOfYear: t.UTC().YearDay(),
			UTC:       t.UTC().Format(time.DateTime),
			Timezone:  loc.String(),
			Local:     local.Format(time.RFC3339),
		}, nil
	})
}

func parseDateTime(v, format string, loc *time.Location) (time.Time, error) {
	switch format {
	case "unix", "unix-ms":
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return time.Time{}, badInput("%q is not a unix timestamp", v)
		}
		if format == "unix-ms" {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	case "rfc3339":
		return parseLayout(v, time.RFC3339Nano, loc)
	case "rfc1123":
		return parseLayout(v, time.RFC1123, loc)
	case "iso-date":
		return parseLayout(v, time.DateOnly, loc)
	}

	if digitsOnly.MatchString(v) {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return time.Time{}, badInput("%q is out of range", v)
		}
		if len(strings.TrimPrefix(v, "-")) >= 12 {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, v, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, badInput("could not parse %q as a date", v)
}

func parseLayout(v, layout string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(layout, v, loc)
	if err != nil {
		return time.Time{}, badInput("%q does not match the requested format", v)
	}
	return t, nil
}

func leftPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
