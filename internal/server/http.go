// Package server assembles the kratos HTTP transport.
package server

import (
	"crypto/subtle"
	nethttp "net/http"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	khttp "github.com/go-kratos/kratos/v2/transport/http"

	"github.com/rocketinsights/market_radar/internal/conf"
	"github.com/rocketinsights/market_radar/internal/service"
)

// NewHTTPServer builds the HTTP server and registers all routes.
func NewHTTPServer(c *conf.Server, auth *conf.Auth, s *service.RadarService, logger log.Logger) *khttp.Server {
	var opts = []khttp.ServerOption{
		khttp.Middleware(
			recovery.Recovery(),
		),
	}
	if c.Http.Addr != "" {
		opts = append(opts, khttp.Address(c.Http.Addr))
	}
	if c.Http.Timeout != "" {
		if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
			opts = append(opts, khttp.Timeout(d))
		}
	}

	srv := khttp.NewServer(opts...)

	api := srv.Route("/api/v1")
	api.GET("/briefing", s.Briefing)
	api.GET("/ooh", s.OOH)
	api.POST("/scan", s.Scan)
	api.GET("/scan/latest", s.LatestScan)
	api.POST("/leadership", s.Leadership)
	api.POST("/master", s.Master)
	api.GET("/history/{category}", s.History)
	api.DELETE("/history", s.ClearHistory)
	api.POST("/subscribe", s.Subscribe)
	api.POST("/unsubscribe", s.Unsubscribe)
	api.GET("/subscriber", s.Profile)
	api.GET("/sources", s.Sources)
	api.GET("/options", s.Options)

	admin := srv.Route("/api/v1/admin", adminKeyFilter(auth.AdminKey, logger))
	admin.GET("/subscribers", s.ListSubscribers)
	admin.PUT("/subscribers/{email}/role", s.SetRole)
	admin.DELETE("/subscribers/{email}", s.DeleteSubscriber)
	admin.GET("/scans", s.ScanLog)

	srv.HandleFunc("/healthz", func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		w.WriteHeader(nethttp.StatusOK)
		w.Write([]byte("ok"))
	})

	return srv
}

// adminKeyFilter guards the admin console routes with a shared key carried in
// the X-Admin-Key header. An empty configured key disables the console.
func adminKeyFilter(key string, logger log.Logger) khttp.FilterFunc {
	helper := log.NewHelper(logger)
	return func(next nethttp.Handler) nethttp.Handler {
		return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			presented := r.Header.Get("X-Admin-Key")
			if key == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(key)) != 1 {
				helper.Warnf("rejected admin request to %s from %s", r.URL.Path, r.RemoteAddr)
				nethttp.Error(w, "forbidden", nethttp.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
