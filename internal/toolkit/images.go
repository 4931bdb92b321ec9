// AngelaMos | 2026
// images.go

package toolkit

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"html"
	"image"
	"image/color"
	"image/png"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

var qrLevels = map[string]qr.ErrorCorrectionLevel{
	"L": qr.L,
	"M": qr.M,
	"Q": qr.Q,
	"H": qr.H,
}

type QRCodeRequest struct {
	Text            string `json:"text"             validate:"required,max=2048"`
	Size            int    `json:"size"             validate:"omitempty,min=64,max=1024"`
	ErrorCorrection string `json:"error_correction" validate:"omitempty,oneof=L M Q H"`
	Foreground      string `json:"foreground"       validate:"omitempty,max=7"`
	Background      string `json:"background"       validate:"omitempty,max=7"`
}

type QRCodeResult struct {
	DataURL string `json:"data_url"`
	Size    int    `json:"size"`
	Content string `json:"content"`
}

func QRCodeGenerator() Widget {
	return Typed(func(_ context.Context, req QRCodeRequest) (any, error) {
		return renderQR(req.Text, qrOptions{
			size:  req.Size,
			level: req.ErrorCorrection,
			fg:    req.Foreground,
			bg:    req.Background,
		})
	})
}

type WifiQRRequest struct {
	SSID       string `json:"ssid"       validate:"required,max=32"`
	Password   string `json:"password"   validate:"max=63"`
	Encryption string `json:"encryption" validate:"omitempty,oneof=WPA WEP nopass"`
	Hidden     bool   `json:"hidden"`
	Size       int    `json:"size"       validate:"omitempty,min=64,max=1024"`
}

func WifiQRCodeGenerator() Widget {
	return Typed(func(_ context.Context, req WifiQRRequest) (any, error) {
		enc := req.Encryption
		if enc == "" {
			enc = "WPA"
		}
		if enc != "nopass" && req.Password == "" {
			return nil, badInput("password is required for %s networks", enc)
		}

		return renderQR(WifiPayload(req.SSID, req.Password, enc, req.Hidden), qrOptions{size: req.Size})
	})
}

// WifiPayload builds the WIFI: URI understood by phone camera apps.
func WifiPayload(ssid, password, encryption string, hidden bool) string {
	var b strings.Builder
	b.WriteString("WIFI:T:")
	b.WriteString(encryption)
	b.WriteString(";S:")
	b.WriteString(escapeWifi(ssid))
	b.WriteString(";")
	if encryption != "nopass" {
		b.WriteString("P:")
		b.WriteString(escapeWifi(password))
		b.WriteString(";")
	}
	if hidden {
		b.WriteString("H:true;")
	}
	b.WriteString(";")
	return b.String()
}

var wifiEscaper = strings.NewReplacer(
	`\`, `\\`,
	`;`, `\;`,
	`,`, `\,`,
	`:`, `\:`,
	`"`, `\"`,
)

func escapeWifi(s string) string {
	return wifiEscaper.Replace(s)
}

type qrOptions struct {
	size   int
	level  string
	fg, bg string
}

func renderQR(content string, opts qrOptions) (QRCodeResult, error) {
	if opts.size == 0 {
		opts.size = 256
	}
	level, ok := qrLevels[opts.level]
	if !ok {
		level = qr.M
	}

	fg, err := parseHexColor(opts.fg, color.RGBA{A: 0xff})
	if err != nil {
		return QRCodeResult{}, err
	}
	bg, err := parseHexColor(opts.bg, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	if err != nil {
		return QRCodeResult{}, err
	}

	code, err := qr.Encode(content, level, qr.Auto)
	if err != nil {
		return QRCodeResult{}, badInput("content cannot be encoded as a QR code: %s", err.Error())
	}
	code, err = barcode.Scale(code, opts.size, opts.size)
	if err != nil {
		return QRCodeResult{}, fmt.Errorf("scale QR code: %w", err)
	}

	bounds := code.Bounds()
	img := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if r, _, _, _ := code.At(x, y).RGBA(); r == 0 {
				img.SetRGBA(x, y, fg)
			} else {
				img.SetRGBA(x, y, bg)
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return QRCodeResult{}, fmt.Errorf("encode QR code as PNG: %w", err)
	}

	return QRCodeResult{
		DataURL: "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
		Size:    opts.size,
		Content: content,
	}, nil
}

func parseHexColor(s string, def color.RGBA) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if s == "" {
		return def, nil
	}
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != 3 {
		return color.RGBA{}, badInput("invalid color %q, expected #rrggbb", s)
	}
	return color.RGBA{R: raw[0], G: raw[1], B: raw[2], A: 0xff}, nil
}

type SVGPlaceholderRequest struct {
	Width      int    `json:"width"      validate:"omitempty,min=1,max=4096"`
	Height     int    `json:"height"     validate:"omitempty,min=1,max=4096"`
	Background string `json:"background" validate:"omitempty,max=7"`
	Foreground string `json:"foreground" validate:"omitempty,max=7"`
	Text       string `json:"text"       validate:"max=256"`
	FontSize   int    `json:"font_size"  validate:"omitempty,min=1,max=512"`
}

type SVGPlaceholderResult struct {
	SVG     string `json:"svg"`
	DataURL string `json:"data_url"`
}

func SVGPlaceholderGenerator() Widget {
	return Typed(func(_ context.Context, req SVGPlaceholderRequest) (any, error) {
		width, height := req.Width, req.Height
		if width == 0 {
			width = 600
		}
		if height == 0 {
			height = 350
		}

		bg, err := parseHexColor(req.Background, color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff})
		if err != nil {
			return nil, err
		}
		fg, err := parseHexColor(req.Foreground, color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff})
		if err != nil {
			return nil, err
		}

		text := req.Text
		if text == "" {
			text = fmt.Sprintf("%dx%d", width, height)
		}
		fontSize := req.FontSize
		if fontSize == 0 {
			fontSize = max(min(width, height)/10, 8)
		}

		svg := fmt.Sprintf(
			`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+
				`<rect width="%d" height="%d" fill="%s"/>`+
				`<text x="50%%" y="50%%" font-family="monospace" font-size="%d" fill="%s" `+
				`dominant-baseline="middle" text-anchor="middle">%s</text></svg>`,
			width, height, width, height,
			width, height, hexColor(bg),
			fontSize, hexColor(fg), html.EscapeString(text),
		)

		return SVGPlaceholderResult{
			SVG:     svg,
			DataURL: "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg)),
		}, nil
	})
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
