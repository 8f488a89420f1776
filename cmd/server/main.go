package main

import (
	"context"
	"flag"
	"os"

	"github.com/go-kratos/kratos/v2"
	kconfig "github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/go-kratos/kratos/v2/log"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"golang.org/x/time/rate"

	"github.com/rocketinsights/market_radar/internal/conf"
	"github.com/rocketinsights/market_radar/internal/data"
	"github.com/rocketinsights/market_radar/internal/gen"
	"github.com/rocketinsights/market_radar/internal/history"
	"github.com/rocketinsights/market_radar/internal/intel"
	"github.com/rocketinsights/market_radar/internal/logger"
	"github.com/rocketinsights/market_radar/internal/mailchimp"
	"github.com/rocketinsights/market_radar/internal/search"
	"github.com/rocketinsights/market_radar/internal/server"
	"github.com/rocketinsights/market_radar/internal/service"
	"github.com/rocketinsights/market_radar/internal/tavily"
	"github.com/rocketinsights/market_radar/internal/usecase"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name is the service name.
	Name string = "market_radar"
	// Version is the service version.
	Version string
	// flagconf is the config file path flag.
	flagconf string

	id, _ = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", "configs/config.yaml", "config path, eg: -conf config.yaml")
}

func newApp(hs *khttp.Server, logger log.Logger) *kratos.App {
	return kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Logger(logger),
		kratos.Server(hs),
	)
}

func main() {
	flag.Parse()
	klogger := log.With(log.NewStdLogger(os.Stdout),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
		"service.id", id,
		"service.name", Name,
		"service.version", Version,
	)

	c := kconfig.New(
		kconfig.WithSource(
			file.NewSource(flagconf),
		),
	)
	defer c.Close()

	if err := c.Load(); err != nil {
		panic(err)
	}

	var bc conf.Bootstrap
	if err := c.Scan(&bc); err != nil {
		panic(err)
	}

	app, cleanup, err := initApp(&bc, klogger)
	if err != nil {
		panic(err)
	}
	defer cleanup()

	if err := app.Run(); err != nil {
		panic(err)
	}
}

// initApp assembles the application from the bootstrap config.
func initApp(bc *conf.Bootstrap, klogger log.Logger) (*kratos.App, func(), error) {
	ctx := context.Background()

	engineLog, err := logger.New(bc.Radar.Log.Level, bc.Radar.Log.File)
	if err != nil {
		return nil, nil, err
	}

	d, dataCleanup, err := data.NewData(bc.Data.Database.Driver, bc.Data.Database.Source, klogger)
	if err != nil {
		return nil, nil, err
	}

	rdb, err := history.NewRedisClient(ctx, bc.Data.Redis.Addr, bc.Data.Redis.Password, int(bc.Data.Redis.Db))
	if err != nil {
		dataCleanup()
		return nil, nil, err
	}
	histories := history.NewStore(rdb, klogger)

	var searcher search.Searcher
	if bc.Radar.Search != nil && bc.Radar.Search.Tavily != nil && bc.Radar.Search.Tavily.ApiKey != "" {
		searcher = tavily.NewClient(bc.Radar.Search.Tavily.ApiKey)
	}

	generator, err := gen.NewOpenAIGenerator(ctx, gen.ModelConfig{
		BaseURL: bc.Radar.Llm.BaseUrl,
		APIKey:  bc.Radar.Llm.ApiKey,
		Model:   bc.Radar.Llm.Model,
	}, searcher, newLimiter(bc.Radar.Concurrency), engineLog)
	if err != nil {
		dataCleanup()
		rdb.Close()
		return nil, nil, err
	}

	scanner := intel.NewService(generator, engineLog)

	mailer := mailchimp.NewClient(mailchimpActionURL(bc.Radar), klogger)
	subscriberUC := usecase.NewSubscriberUseCase(data.NewSubscriberRepo(d, klogger), mailer, bc.Auth.PrimaryAdminEmail, klogger)
	intelUC := usecase.NewIntelUseCase(scanner, histories, data.NewScanLogRepo(d, klogger), data.NewBriefingRepo(d, klogger), klogger)

	svc := service.NewRadarService(intelUC, subscriberUC, klogger)
	hs := server.NewHTTPServer(bc.Server, bc.Auth, svc, klogger)

	cleanup := func() {
		dataCleanup()
		if err := rdb.Close(); err != nil {
			log.NewHelper(klogger).Errorf("close redis: %v", err)
		}
	}
	return newApp(hs, klogger), cleanup, nil
}

// newLimiter derives the model-call rate limit. RPM wins over QPS when both
// are set; neither set means no limiting.
func newLimiter(c *conf.Concurrency) *rate.Limiter {
	if c == nil {
		return nil
	}
	if c.Rpm > 0 {
		return rate.NewLimiter(rate.Limit(float64(c.Rpm)/60.0), 1)
	}
	if c.Qps > 0 {
		return rate.NewLimiter(rate.Limit(c.Qps), int(c.Qps))
	}
	return nil
}

func mailchimpActionURL(r *conf.Radar) string {
	if r == nil || r.Mailchimp == nil {
		return ""
	}
	return r.Mailchimp.ActionUrl
}
