// Package response renders the JSON envelope shared by every endpoint.
package response

import (
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Envelope wraps every response body.
type Envelope struct {
	Code   int                `json:"code"`
	Result interface{}        `json:"result"`
	Client *ClientInformation `json:"client,omitempty"`
}

// ErrorResult is the result of a failed request.
type ErrorResult struct {
	Code        int         `json:"code"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Data        interface{} `json:"data"`
}

// ClientInformation is a snapshot of the request as the server saw it.
type ClientInformation struct {
	HTTPUserAgent  string `json:"http_user_agent"`
	HTTPConnection string `json:"http_connection"`
	HTTPHost       string `json:"http_host"`
	HTTPReferer    string `json:"http_referer"`
	RemoteAddr     string `json:"remote_addr"`
	RemoteHost     string `json:"remote_host"`
	RequestMethod  string `json:"request_method"`
	RequestURI     string `json:"request_uri"`
	Date           string `json:"date,omitempty"`
}

// NewClientInformation captures c's request. withDate stamps the current
// time in RFC 3339.
func NewClientInformation(c echo.Context, withDate bool) *ClientInformation {
	req := c.Request()

	remoteAddr := req.RemoteAddr
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		remoteAddr = host
	}

	info := &ClientInformation{
		HTTPUserAgent:  req.UserAgent(),
		HTTPConnection: req.Header.Get("Connection"),
		HTTPHost:       req.Host,
		HTTPReferer:    req.Referer(),
		RemoteAddr:     remoteAddr,
		RemoteHost:     c.RealIP(),
		RequestMethod:  req.Method,
		RequestURI:     req.RequestURI,
	}
	if withDate {
		info.Date = time.Now().Format(time.RFC3339)
	}
	return info
}

// Responder writes envelopes. In dev mode successful responses carry the
// client snapshot too.
type Responder struct {
	DevMode bool
}

// JSON writes a successful envelope.
func (r Responder) JSON(c echo.Context, code int, result interface{}) error {
	env := Envelope{Code: code, Result: result}
	if r.DevMode {
		env.Client = NewClientInformation(c, false)
	}
	return c.JSON(code, env)
}

// OK writes result with status 200.
func (r Responder) OK(c echo.Context, result interface{}) error {
	return r.JSON(c, http.StatusOK, result)
}

// JSONWithClient writes a successful envelope that always carries the
// client snapshot.
func (r Responder) JSONWithClient(c echo.Context, code int, result interface{}) error {
	return c.JSON(code, Envelope{
		Code:   code,
		Result: result,
		Client: NewClientInformation(c, false),
	})
}

// Error writes an error envelope. It always carries the client snapshot.
func (r Responder) Error(c echo.Context, code int, title, description string, data interface{}) error {
	return c.JSON(code, Envelope{
		Code: code,
		Result: ErrorResult{
			Code:        code,
			Title:       title,
			Description: description,
			Data:        data,
		},
		Client: NewClientInformation(c, true),
	})
}
