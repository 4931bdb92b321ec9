// AngelaMos | 2026
// manifest.go

package toolkit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/ittools/internal/core"
)

type Widget interface {
	Run(ctx context.Context, input json.RawMessage) (any, error)
}

type WidgetFunc func(ctx context.Context, input json.RawMessage) (any, error)

func (f WidgetFunc) Run(ctx context.Context, input json.RawMessage) (any, error) {
	return f(ctx, input)
}

// Manifest maps a tool identifier to its compiled widget.
type Manifest map[string]Widget

// Identifier derives the manifest key from a catalog tool name: every
// whitespace rune removed, then lower-cased. "Date-Time Converter" becomes
// "date-timeconverter".
func Identifier(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

func (m Manifest) Lookup(identifier string) (Widget, bool) {
	w, ok := m[identifier]
	return w, ok
}

func (m Manifest) Has(identifier string) bool {
	_, ok := m[identifier]
	return ok
}

func (m Manifest) Identifiers() []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Unmapped returns the names whose identifier has no widget, in input order.
func (m Manifest) Unmapped(names []string) []string {
	var missing []string
	for _, name := range names {
		if !m.Has(Identifier(name)) {
			missing = append(missing, name)
		}
	}
	return missing
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Typed adapts a function over a request struct into a Widget. The body is
// decoded strictly and validated before fn runs; an empty body decodes as
// the zero request so widgets with defaults need no input.
func Typed[Req any](fn func(ctx context.Context, req Req) (any, error)) Widget {
	return WidgetFunc(func(ctx context.Context, input json.RawMessage) (any, error) {
		var req Req

		trimmed := bytes.TrimSpace(input)
		if len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
			dec := json.NewDecoder(bytes.NewReader(trimmed))
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				return nil, badInput("invalid request body: %s", describeDecodeError(err))
			}
		}

		if err := validate.Struct(req); err != nil {
			var invalid *validator.InvalidValidationError
			if errors.As(err, &invalid) {
				return nil, fmt.Errorf("validate widget request: %w", err)
			}
			return nil, core.ValidationError(core.FormatValidationError(err))
		}

		return fn(ctx, req)
	})
}

func describeDecodeError(err error) string {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		return fmt.Sprintf("field %s must be %s", typeErr.Field, typeErr.Type)
	case errors.Is(err, io.ErrUnexpectedEOF):
		return "truncated JSON"
	default:
		return err.Error()
	}
}

func badInput(format string, args ...any) error {
	return core.ValidationError(fmt.Sprintf(format, args...))
}

// Default is the compiled manifest. Adding a catalog tool means adding its
// widget here.
func Default() Manifest {
	return Manifest{
		"hashtext":                HashText(),
		"bcrypt":                  Bcrypt(),
		"tokengenerator":          TokenGenerator(),
		"stringobfuscator":        StringObfuscator(),
		"romannumeralconverter":   RomanNumeralConverter(),
		"temperatureconverter":    TemperatureConverter(),
		"integerbaseconverter":    IntegerBaseConverter(),
		"percentagecalculator":    PercentageCalculator(),
		"date-timeconverter":      DateTimeConverter(),
		"urlparser":               URLParser(),
		"urlencoderanddecoder":    URLEncoder(),
		"ipv4subnetcalculator":    IPv4SubnetCalculator(),
		"ipv4addressconverter":    IPv4AddressConverter(),
		"ipv4rangeexpander":       IPv4RangeExpander(),
		"randomportgenerator":     RandomPortGenerator(),
		"ibanvalidatorandparser":  IBANValidator(),
		"phoneparserandformatter": PhoneParser(),
		"crontabgenerator":        CrontabGenerator(),
		"mathevaluator":           MathEvaluator(),
		"gitcheatsheet":           GitCheatsheet(),
		"qrcodegenerator":         QRCodeGenerator(),
		"wifiqrcodegenerator":     WifiQRCodeGenerator(),
		"svgplaceholdergenerator": SVGPlaceholderGenerator(),
		"textstatistics":          TextStatistics(),
		"loremipsumgenerator":     LoremIpsumGenerator(),
		"emojipicker":             EmojiPicker(),
		"etacalculator":           ETACalculator(),
		"chronometer":             Chronometer(),
		"benchmarkbuilder":        BenchmarkBuilder(),
	}
}
