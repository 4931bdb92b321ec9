// AngelaMos | 2026
// widgets_test.go

package toolkit

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/ittools/internal/core"
)

func run(t *testing.T, w Widget, body string) any {
	t.Helper()
	out, err := w.Run(context.Background(), json.RawMessage(body))
	require.NoError(t, err)
	return out
}

func runErr(t *testing.T, w Widget, body string) error {
	t.Helper()
	_, err := w.Run(context.Background(), json.RawMessage(body))
	require.Error(t, err)
	return err
}

func TestRoman(t *testing.T) {
	assert.Equal(t, "MCMXCIV", ToRoman(1994))
	assert.Equal(t, "MMMCMXCIX", ToRoman(3999))

	n, err := FromRoman("mcmxciv")
	require.NoError(t, err)
	assert.Equal(t, 1994, n)

	for _, bad := range []string{"IIII", "VX", "ABC", "MMMM"} {
		_, err := FromRoman(bad)
		assert.ErrorIs(t, err, core.ErrInvalidInput, bad)
	}

	out := run(t, RomanNumeralConverter(), `{"number": 1994}`)
	assert.Equal(t, "MCMXCIV", out.(map[string]any)["roman"])
}

func TestHashText(t *testing.T) {
	out := run(t, HashText(), `{"text": "hello", "algorithm": "md5"}`)
	digests := out.([]Digest)
	require.Len(t, digests, 1)
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", digests[0].Digest)

	all := run(t, HashText(), `{"text": "hello"}`).([]Digest)
	require.Len(t, all, len(hashOrder))
	assert.Equal(t, "sha256", all[3].Algorithm)
	assert.Equal(t,
		"2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		all[3].Digest,
	)
}

func TestBcryptRoundTrip(t *testing.T) {
	hashed := run(t, Bcrypt(), `{"text": "s3cret", "cost": 4}`).(BcryptResult)
	require.NotEmpty(t, hashed.Hash)

	body, err := json.Marshal(map[string]string{"text": "s3cret", "hash": hashed.Hash})
	require.NoError(t, err)
	match := run(t, Bcrypt(), string(body)).(BcryptResult)
	require.NotNil(t, match.Match)
	assert.True(t, *match.Match)
}

func TestTokenGenerator(t *testing.T) {
	out := run(t, TokenGenerator(), `{"length": 32, "count": 3, "uppercase": false, "lowercase": false}`)
	tokens := out.(map[string]any)["tokens"].([]string)

	require.Len(t, tokens, 3)
	for _, tok := range tokens {
		assert.Len(t, tok, 32)
		assert.Empty(t, strings.Trim(tok, alphaNumbers))
	}

	err := runErr(t, TokenGenerator(), `{"uppercase": false, "lowercase": false, "numbers": false}`)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestIntegerBaseConverter(t *testing.T) {
	out := run(t, IntegerBaseConverter(), `{"value": "255", "to": 7}`).(map[string]string)

	assert.Equal(t, "11111111", out["binary"])
	assert.Equal(t, "ff", out["hexadecimal"])
	assert.Equal(t, "513", out["custom"])

	err := runErr(t, IntegerBaseConverter(), `{"value": "12", "from": 2}`)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestTemperatureRejectsBelowAbsoluteZero(t *testing.T) {
	out := run(t, TemperatureConverter(), `{"value": 100, "from": "celsius"}`).(map[string]float64)
	assert.InDelta(t, 212, out["fahrenheit"], 1e-9)
	assert.InDelta(t, 373.15, out["kelvin"], 1e-9)

	err := runErr(t, TemperatureConverter(), `{"value": -1, "from": "kelvin"}`)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		body string
		want float64
	}{
		{`{"mode": "of", "x": 20, "y": 50}`, 10},
		{`{"mode": "ratio", "x": 10, "y": 50}`, 20},
		{`{"mode": "change", "x": 50, "y": 75}`, 50},
		{`{"mode": "increase", "x": 10, "y": 200}`, 220},
		{`{"mode": "reverse", "x": 25, "y": 10}`, 40},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			out := run(t, PercentageCalculator(), tt.body).(map[string]float64)
			assert.InDelta(t, tt.want, out["result"], 1e-9)
		})
	}
}

func TestURLParser(t *testing.T) {
	out := run(t, URLParser(), `{"url": "https://me:pw@example.com:8080/a/b?x=1&y=two&x=3#frag"}`).(ParsedURL)

	assert.Equal(t, "https", out.Scheme)
	assert.Equal(t, "me", out.Username)
	assert.Equal(t, "pw", out.Password)
	assert.Equal(t, "example.com", out.Hostname)
	assert.Equal(t, "8080", out.Port)
	assert.Equal(t, "/a/b", out.Path)
	assert.Equal(t, "frag", out.Fragment)
	assert.Equal(t, []QueryParam{{"x", "1"}, {"y", "two"}, {"x", "3"}}, out.Params)

	runErr(t, URLParser(), `{"url": "not a url"}`)
}

func TestDescribeSubnet(t *testing.T) {
	tests := []struct {
		cidr string
		want SubnetInfo
	}{
		{
			cidr: "192.168.1.77/24",
			want: SubnetInfo{
				CIDR: "192.168.1.0/24", Network: "192.168.1.0", Mask: "255.255.255.0",
				Wildcard: "0.0.0.255", PrefixBits: 24, FirstHost: "192.168.1.1",
				LastHost: "192.168.1.254", Broadcast: "192.168.1.255",
				Addresses: 256, UsableHosts: 254, Class: "C",
			},
		},
		{
			cidr: "10.0.0.0/31",
			want: SubnetInfo{
				CIDR: "10.0.0.0/31", Network: "10.0.0.0", Mask: "255.255.255.254",
				Wildcard: "0.0.0.1", PrefixBits: 31, FirstHost: "10.0.0.0",
				LastHost: "10.0.0.1", Broadcast: "10.0.0.1",
				Addresses: 2, UsableHosts: 2, Class: "A",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.cidr, func(t *testing.T) {
			prefix, err := parseIPv4Prefix(tt.cidr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, DescribeSubnet(prefix))
		})
	}

	_, err := parseIPv4Prefix("2001:db8::/32")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestIPv4AddressConverter(t *testing.T) {
	out := run(t, IPv4AddressConverter(), `{"address": "192.168.1.1"}`).(map[string]string)

	assert.Equal(t, "3232235777", out["decimal"])
	assert.Equal(t, "C0A80101", out["hexadecimal"])
	assert.Equal(t, "::ffff:c0a8:0101", out["ipv6"])

	back := run(t, IPv4AddressConverter(), `{"address": "3232235777"}`).(map[string]string)
	assert.Equal(t, "192.168.1.1", back["dotted"])
}

func TestExpandRange(t *testing.T) {
	start, err := parseIPv4Any("192.168.1.1")
	require.NoError(t, err)
	end, err := parseIPv4Any("192.168.6.255")
	require.NoError(t, err)

	got := ExpandRange(start, end)

	assert.Equal(t, "192.168.0.0/21", got.CIDR)
	assert.Equal(t, "192.168.0.0", got.NewStart)
	assert.Equal(t, "192.168.7.255", got.NewEnd)
	assert.Equal(t, uint64(2048), got.NewSize)
	assert.Equal(t, uint64(1535), got.OldSize)
}

func TestRandomPortGenerator(t *testing.T) {
	out := run(t, RandomPortGenerator(), `{"count": 10, "min": 8000, "max": 8009}`).(map[string][]int)
	assert.Equal(t, []int{8000, 8001, 8002, 8003, 8004, 8005, 8006, 8007, 8008, 8009}, out["ports"])

	err := runErr(t, RandomPortGenerator(), `{"count": 5, "min": 10, "max": 12}`)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestParseIBAN(t *testing.T) {
	valid := ParseIBAN("GB82 WEST 1234 5698 7654 32")
	assert.True(t, valid.Valid)
	assert.Empty(t, valid.Errors)
	assert.Equal(t, "GB", valid.Country)
	assert.Equal(t, "82", valid.CheckDigits)
	assert.Equal(t, "GB82WEST12345698765432", valid.Electronic)
	assert.Equal(t, "GB82 WEST 1234 5698 7654 32", valid.Friendly)

	assert.True(t, ParseIBAN("de89370400440532013000").Valid)

	bad := ParseIBAN("GB82WEST12345698765433")
	assert.False(t, bad.Valid)
	assert.Contains(t, bad.Errors, "checksum mismatch")

	unknown := ParseIBAN("ZZ82WEST12345698765432")
	assert.Contains(t, unknown.Errors, "unknown country code")
}

func TestPhoneParser(t *testing.T) {
	out := run(t, PhoneParser(), `{"number": "+1 650-253-0000"}`).(PhoneResult)

	assert.True(t, out.Valid)
	assert.Equal(t, "US", out.Region)
	assert.Equal(t, int32(1), out.CountryCode)
	assert.Equal(t, "+16502530000", out.E164)

	err := runErr(t, PhoneParser(), `{"number": "not a phone"}`)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestCrontabGenerator(t *testing.T) {
	now := func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
	w := crontabGenerator(now)

	out := run(t, w, `{"expression": "0 9 * * 1", "count": 2}`).(CrontabResult)
	require.Len(t, out.NextRuns, 2)
	assert.Equal(t, time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC), out.NextRuns[0])
	assert.Equal(t, time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC), out.NextRuns[1])
	assert.Equal(t, "9", out.Fields["hour"])

	built := run(t, w, `{"minute": "*/15"}`).(CrontabResult)
	assert.Equal(t, "*/15 * * * *", built.Expression)
	assert.Len(t, built.NextRuns, 5)

	err := runErr(t, w, `{"expression": "61 * * * *"}`)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestMathEvaluator(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"2 + 3 * 4", 14},
		{"sqrt(16) + pow(2, 10)", 1028},
		{"abs(-2.5) * 2", 5},
		{"floor(pi)", 3},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			body, err := json.Marshal(MathRequest{Expression: tt.expr})
			require.NoError(t, err)
			out := run(t, MathEvaluator(), string(body)).(MathResult)
			assert.InDelta(t, tt.want, out.Result, 1e-9)
		})
	}

	runErr(t, MathEvaluator(), `{"expression": "2 +"}`)
	runErr(t, MathEvaluator(), `{"expression": "sqrt(-1)"}`)
}

func TestGitCheatsheetSearch(t *testing.T) {
	out := run(t, GitCheatsheet(), `{"query": "stash"}`).([]GitCommand)

	require.NotEmpty(t, out)
	for _, c := range out {
		assert.Equal(t, "Stash", c.Section)
	}
	assert.Len(t, run(t, GitCheatsheet(), ``).([]GitCommand), len(gitCommands))
}

func TestQRCodes(t *testing.T) {
	out := run(t, QRCodeGenerator(), `{"text": "https://example.com", "size": 128, "foreground": "#336699"}`).(QRCodeResult)
	assert.True(t, strings.HasPrefix(out.DataURL, "data:image/png;base64,"))
	assert.Equal(t, 128, out.Size)

	err := runErr(t, QRCodeGenerator(), `{"text": "x", "foreground": "#zzzzzz"}`)
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	assert.Equal(t,
		`WIFI:T:WPA;S:my\;net;P:p\:ss;H:true;;`,
		WifiPayload("my;net", "p:ss", "WPA", true),
	)
	assert.Equal(t, "WIFI:T:nopass;S:open;;", WifiPayload("open", "", "nopass", false))

	err = runErr(t, WifiQRCodeGenerator(), `{"ssid": "home"}`)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestSVGPlaceholder(t *testing.T) {
	out := run(t, SVGPlaceholderGenerator(), `{"width": 200, "height": 100, "text": "<hi>"}`).(SVGPlaceholderResult)

	assert.Contains(t, out.SVG, `width="200" height="100"`)
	assert.Contains(t, out.SVG, "&lt;hi&gt;")
	assert.True(t, strings.HasPrefix(out.DataURL, "data:image/svg+xml;base64,"))
}

func TestAnalyzeText(t *testing.T) {
	got := AnalyzeText("Hello world. How are you?\nFine!")

	assert.Equal(t, 31, got.Characters)
	assert.Equal(t, 6, got.Words)
	assert.Equal(t, 2, got.Lines)
	assert.Equal(t, 3, got.Sentences)
	assert.Equal(t, 1, got.Paragraphs)
	assert.Equal(t, "31 B", got.BytesHuman)
	assert.Equal(t, 2, got.ReadingTimeSeconds)
	assert.Equal(t, 3, got.SpeakingTimeSeconds)

	assert.Zero(t, AnalyzeText("").Lines)
}

func TestLoremIpsum(t *testing.T) {
	out := run(t, LoremIpsumGenerator(), `{"paragraphs": 2, "sentences_per_paragraph": 2, "words_per_sentence": 6}`).(LoremResult)

	require.Len(t, out.Paragraphs, 2)
	assert.True(t, strings.HasPrefix(out.Text, "Lorem ipsum dolor sit amet"))
	assert.Len(t, strings.Fields(out.Paragraphs[1]), 12)
}

func TestEmojiPicker(t *testing.T) {
	out := run(t, EmojiPicker(), `{"query": "deploy"}`).([]Emoji)

	require.Len(t, out, 1)
	assert.Equal(t, "rocket", out[0].Name)
	assert.Equal(t, "U+1F680", out[0].CodePoints)
}

func TestETACalculator(t *testing.T) {
	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	w := etaCalculator(func() time.Time { return start })

	out := run(t, w, `{"distance": 100, "distance_unit": "km", "speed": 50, "speed_unit": "km/h"}`).(ETAResult)

	assert.InDelta(t, 7200, out.DurationSeconds, 1e-6)
	assert.Equal(t, "2h0m0s", out.Duration)
	assert.Equal(t, start.Add(2*time.Hour), out.ETA.Round(time.Second))
}

func TestChronometer(t *testing.T) {
	out := run(t, Chronometer(), `{"laps_ms": [1500, 61000, 500]}`).(ChronometerResult)

	require.Len(t, out.Laps, 3)
	assert.Equal(t, "1st lap", out.Laps[0].Label)
	assert.Equal(t, "00:01:02.500", out.Laps[1].Split)
	assert.Equal(t, "00:01:03.000", out.Total)
	assert.Equal(t, 3, out.Fastest)
	assert.Equal(t, 2, out.Slowest)
	assert.Equal(t, "00:00:21.000", out.Average)
}

func TestBenchmarkBuilder(t *testing.T) {
	body := `{"unit": "ms", "suites": [
		{"name": "slow", "values": [4, 4]},
		{"name": "fast", "values": [1, 2, 3]}
	]}`
	out := run(t, BenchmarkBuilder(), body).([]SuiteStats)

	require.Len(t, out, 2)
	assert.Equal(t, "fast", out[0].Name)
	assert.Equal(t, 1, out[0].Rank)
	assert.Equal(t, "fastest", out[0].Comparison)
	assert.InDelta(t, 2, out[0].Median, 1e-9)
	assert.Equal(t, "2.00x slower", out[1].Comparison)

	runErr(t, BenchmarkBuilder(), `{"suites": [{"name": "empty", "values": []}]}`)
}
