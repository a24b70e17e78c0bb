package routes

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/gin-gonic/gin"
)

// SetupProxyRoutes forwards "/api/*" to the configured upstream, keeping the
// path. It does nothing when no target is configured.
func SetupProxyRoutes(r *gin.Engine, d Deps) error {
	raw := d.Config.Server.ProxyTarget
	if raw == "" {
		return nil
	}
	target, err := url.Parse(raw)
	if err != nil || target.Scheme == "" || target.Host == "" {
		return fmt.Errorf("invalid PROXY_TARGET %q", raw)
	}

	proxy := httputil.NewSingleHostReverseProxy(target)
	director := proxy.Director
	proxy.Director = func(req *http.Request) {
		director(req)
		req.Host = target.Host
	}
	proxy.Transport = &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		// dev upstreams run with self-signed certificates
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec
	}
	proxy.ErrorHandler = func(w http.ResponseWriter, req *http.Request, err error) {
		d.Log.Error("proxy", "", "upstream unreachable", err, slog.String("path", req.URL.Path))
		w.WriteHeader(http.StatusBadGateway)
	}

	handler := func(c *gin.Context) {
		d.Log.Debug("proxy", c.GetString("request_id"), "forwarding",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path))
		proxy.ServeHTTP(c.Writer, c.Request)
	}
	r.Any("/api/*path", handler)
	return nil
}
