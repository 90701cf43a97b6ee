package http

import (
	"net"
	"net/http"

	"github.com/HYKY/hyky-services/internal/infrastructure/http/response"
	"github.com/labstack/echo/v4"
)

const (
	apiAuthor    = "HYKY Team <we@hyky.games>"
	apiLicense   = "MIT"
	apiCopyright = "©2018 HYKY Team"

	welcomeMessage  = "Welcome to the HYKY Services API"
	helloMessage    = "Hello, Computer!"
	deadEndMessage  = "Oops! It is a dead end!"
	fallbackAddress = "::1"
)

// APIInfo describes the running service.
type APIInfo struct {
	Name      string `json:"name"`
	Author    string `json:"author"`
	Version   string `json:"version"`
	License   string `json:"license"`
	Copyright string `json:"copyright"`
}

// InfoHandler serves the informational routes.
type InfoHandler struct {
	responder response.Responder
	name      string
	version   string
}

func NewInfoHandler(responder response.Responder, name, version string) *InfoHandler {
	return &InfoHandler{
		responder: responder,
		name:      name,
		version:   version,
	}
}

// Root handles any method on /
func (h *InfoHandler) Root(c echo.Context) error {
	return h.responder.OK(c, map[string]string{"message": helloMessage})
}

// API handles /api
func (h *InfoHandler) API(c echo.Context) error {
	return h.responder.OK(c, map[string]string{
		"name":    h.displayName(c),
		"version": h.version,
	})
}

// Healthcheck handles any method on /api/v1/healthcheck. The client
// snapshot is always included.
func (h *InfoHandler) Healthcheck(c echo.Context) error {
	return h.responder.JSONWithClient(c, http.StatusOK, map[string]interface{}{
		"info": APIInfo{
			Name:      h.displayName(c),
			Author:    apiAuthor,
			Version:   h.version,
			License:   apiLicense,
			Copyright: apiCopyright,
		},
		"message": welcomeMessage,
	})
}

// DeadEnd handles /api/v2, which exists only to fail.
func (h *InfoHandler) DeadEnd(c echo.Context) error {
	return echo.NewHTTPError(http.StatusBadRequest, deadEndMessage)
}

func (h *InfoHandler) displayName(c echo.Context) string {
	return h.name + " @ " + serverAddress(c.Request())
}

// serverAddress returns the local IP the request arrived on.
func serverAddress(req *http.Request) string {
	addr, ok := req.Context().Value(http.LocalAddrContextKey).(net.Addr)
	if !ok {
		return fallbackAddress
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil || host == "" {
		return fallbackAddress
	}
	return host
}
