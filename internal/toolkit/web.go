// AngelaMos | 2026
// web.go

package toolkit

import (
	"context"
	"net/url"
	"strings"
)

type URLParseRequest struct {
	URL string `json:"url" validate:"required,max=4096"`
}

type QueryParam struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type ParsedURL struct {
	Scheme   string       `json:"scheme"`
	Username string       `json:"username"`
	Password string       `json:"password"`
	Hostname string       `json:"hostname"`
	Port     string       `json:"port"`
	Path     string       `json:"path"`
	RawQuery string       `json:"raw_query"`
	Fragment string       `json:"fragment"`
	Params   []QueryParam `json:"params"`
}

func URLParser() Widget {
	return Typed(func(_ context.Context, req URLParseRequest) (any, error) {
		u, err := url.Parse(req.URL)
		if err != nil || u.Scheme == "" {
			return nil, badInput("%q is not an absolute URL", req.URL)
		}

		out := ParsedURL{
			Scheme:   u.Scheme,
			Hostname: u.Hostname(),
			Port:     u.Port(),
			Path:     u.Path,
			RawQuery: u.RawQuery,
			Fragment: u.Fragment,
			Params:   []QueryParam{},
		}
		if u.User != nil {
			out.Username = u.User.Username()
			out.Password, _ = u.User.Password()
		}

		// Walk the raw query so repeated keys keep their order.
		out.Params = append(out.Params, splitQuery(u.RawQuery)...)
		return out, nil
	})
}

func splitQuery(raw string) []QueryParam {
	var params []QueryParam
	for raw != "" {
		var part string
		part, raw, _ = strings.Cut(raw, "&")
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		k, err := url.QueryUnescape(key)
		if err != nil {
			k = key
		}
		v, err := url.QueryUnescape(value)
		if err != nil {
			v = value
		}
		params = append(params, QueryParam{Key: k, Value: v})
	}
	return params
}

type URLEncodeRequest struct {
	Text string `json:"text" validate:"max=65536"`
	Mode string `json:"mode" validate:"omitempty,oneof=encode decode"`
}

func URLEncoder() Widget {
	return Typed(func(_ context.Context, req URLEncodeRequest) (any, error) {
		if req.Mode == "decode" {
			out, err := url.QueryUnescape(req.Text)
			if err != nil {
				return nil, badInput("text is not valid URL-encoded data")
			}
			return map[string]string{"result": out}, nil
		}
		return map[string]string{"result": url.QueryEscape(req.Text)}, nil
	})
}
