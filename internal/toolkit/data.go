// AngelaMos | 2026
// data.go

package toolkit

import (
	"context"
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var ibanLengths = map[string]int{
	"AD": 24, "AE": 23, "AL": 28, "AT": 20, "AZ": 28, "BA": 20, "BE": 16,
	"BG": 22, "BH": 22, "BR": 29, "BY": 28, "CH": 21, "CR": 22, "CY": 28,
	"CZ": 24, "DE": 22, "DK": 18, "DO": 28, "EE": 20, "EG": 29, "ES": 24,
	"FI": 18, "FO": 18, "FR": 27, "GB": 22, "GE": 22, "GI": 23, "GL": 18,
	"GR": 27, "GT": 28, "HR": 21, "HU": 28, "IE": 22, "IL": 23, "IQ": 23,
	"IS": 26, "IT": 27, "JO": 30, "KW": 30, "KZ": 20, "LB": 28, "LC": 32,
	"LI": 21, "LT": 20, "LU": 20, "LV": 21, "MC": 27, "MD": 24, "ME": 22,
	"MK": 19, "MR": 27, "MT": 31, "MU": 30, "NL": 18, "NO": 15, "PK": 24,
	"PL": 28, "PS": 29, "PT": 25, "QA": 29, "RO": 24, "RS": 22, "SA": 24,
	"SC": 31, "SE": 24, "SI": 19, "SK": 24, "SM": 27, "ST": 25, "SV": 28,
	"TL": 23, "TN": 24, "TR": 26, "UA": 29, "VA": 22, "VG": 24, "XK": 20,
}

type IBANRequest struct {
	IBAN string `json:"iban" validate:"required,max=64"`
}

type IBANResult struct {
	Valid       bool     `json:"valid"`
	Errors      []string `json:"errors"`
	Country     string   `json:"country,omitempty"`
	CheckDigits string   `json:"check_digits,omitempty"`
	BBAN        string   `json:"bban,omitempty"`
	Electronic  string   `json:"electronic"`
	Friendly    string   `json:"friendly"`
	QRIBAN      bool     `json:"qr_iban"`
}

func IBANValidator() Widget {
	return Typed(func(_ context.Context, req IBANRequest) (any, error) {
		return ParseIBAN(req.IBAN), nil
	})
}

func ParseIBAN(raw string) IBANResult {
	iban := strings.ToUpper(strings.Join(strings.Fields(raw), ""))
	iban = strings.ReplaceAll(iban, "-", "")

	res := IBANResult{
		Electronic: iban,
		Friendly:   groupBy(iban, 4),
		Errors:     []string{},
	}

	if len(iban) < 5 {
		res.Errors = append(res.Errors, "too short")
		return res
	}
	for _, r := range iban {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			res.Errors = append(res.Errors, "contains invalid characters")
			return res
		}
	}

	res.Country = iban[:2]
	res.CheckDigits = iban[2:4]
	res.BBAN = iban[4:]

	want, known := ibanLengths[res.Country]
	switch {
	case !known:
		res.Errors = append(res.Errors, "unknown country code")
	case len(iban) != want:
		res.Errors = append(res.Errors, "wrong length for country, expected "+strconv.Itoa(want))
	}
	if mod97(iban[4:]+iban[:4]) != 1 {
		res.Errors = append(res.Errors, "checksum mismatch")
	}

	res.Valid = len(res.Errors) == 0
	if res.Valid && (res.Country == "CH" || res.Country == "LI") {
		iid, err := strconv.Atoi(iban[4:9])
		res.QRIBAN = err == nil && iid >= 30000 && iid <= 31999
	}
	return res
}

// mod97 computes the ISO 7064 remainder with letters expanded to 10..35.
func mod97(s string) int {
	rem := 0
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			v := int(r-'A') + 10
			rem = (rem*100 + v) % 97
			continue
		}
		rem = (rem*10 + int(r-'0')) % 97
	}
	return rem
}

func groupBy(s string, n int) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && i%n == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

type PhoneRequest struct {
	Number        string `json:"number"         validate:"required,max=64"`
	DefaultRegion string `json:"default_region" validate:"omitempty,len=2,alpha"`
}

type PhoneResult struct {
	Valid          bool   `json:"valid"`
	Possible       bool   `json:"possible"`
	Type           string `json:"type"`
	Region         string `json:"region"`
	CountryCode    int32  `json:"country_code"`
	NationalNumber uint64 `json:"national_number"`
	E164           string `json:"e164"`
	International  string `json:"international"`
	National       string `json:"national"`
	RFC3966        string `json:"rfc3966"`
}

var phoneTypes = map[phonenumbers.PhoneNumberType]string{
	phonenumbers.FIXED_LINE:           "fixed_line",
	phonenumbers.MOBILE:               "mobile",
	phonenumbers.FIXED_LINE_OR_MOBILE: "fixed_line_or_mobile",
	phonenumbers.TOLL_FREE:            "toll_free",
	phonenumbers.PREMIUM_RATE:         "premium_rate",
	phonenumbers.SHARED_COST:          "shared_cost",
	phonenumbers.VOIP:                 "voip",
	phonenumbers.PERSONAL_NUMBER:      "personal_number",
	phonenumbers.PAGER:                "pager",
	phonenumbers.UAN:                  "uan",
	phonenumbers.VOICEMAIL:            "voicemail",
}

func PhoneParser() Widget {
	return Typed(func(_ context.Context, req PhoneRequest) (any, error) {
		region := strings.ToUpper(req.DefaultRegion)
		if region == "" {
			region = "US"
		}

		num, err := phonenumbers.Parse(req.Number, region)
		if err != nil {
			return nil, badInput("could not parse %q as a phone number", req.Number)
		}

		typ, ok := phoneTypes[phonenumbers.GetNumberType(num)]
		if !ok {
			typ = "unknown"
		}

		return PhoneResult{
			Valid:          phonenumbers.IsValidNumber(num),
			Possible:       phonenumbers.IsPossibleNumber(num),
			Type:           typ,
			Region:         phonenumbers.GetRegionCodeForNumber(num),
			CountryCode:    num.GetCountryCode(),
			NationalNumber: num.GetNationalNumber(),
			E164:           phonenumbers.Format(num, phonenumbers.E164),
			International:  phonenumbers.Format(num, phonenumbers.INTERNATIONAL),
			National:       phonenumbers.Format(num, phonenumbers.NATIONAL),
			RFC3966:        phonenumbers.Format(num, phonenumbers.RFC3966),
		}, nil
	})
}
