// The digest command builds the daily briefing for each configured region
// and renders them into a single HTML digest page.
package main

import (
	"context"
	"flag"
	"html/template"
	stdlog "log"
	"os"
	"sync"
	"time"

	klog "github.com/go-kratos/kratos/v2/log"
	"golang.org/x/time/rate"

	"github.com/rocketinsights/market_radar/internal/config"
	"github.com/rocketinsights/market_radar/internal/data"
	"github.com/rocketinsights/market_radar/internal/gen"
	"github.com/rocketinsights/market_radar/internal/intel"
	"github.com/rocketinsights/market_radar/internal/logger"
	"github.com/rocketinsights/market_radar/internal/search"
	"github.com/rocketinsights/market_radar/internal/tavily"
	"github.com/rocketinsights/market_radar/internal/usecase"
)

type regionBriefing struct {
	Region string
	News   []intel.NewsItem
}

func main() {
	confPath := flag.String("conf", "config.yaml", "config path, eg: -conf config.yaml")
	flag.Parse()

	cfg, err := config.Load(*confPath)
	if err != nil {
		stdlog.Fatalf("load config: %v", err)
	}
	if cfg.LLM.APIKey == "" {
		stdlog.Fatal("config error: llm.api_key is not set")
	}
	regions := cfg.Regions
	if len(regions) == 0 {
		regions = []string{"APAC"}
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		stdlog.Fatalf("init logger: %v", err)
	}
	log.Info("starting digest build...")

	ctx := context.Background()

	var searcher search.Searcher
	if cfg.Search.Tavily.APIKey != "" {
		searcher = tavily.NewClient(cfg.Search.Tavily.APIKey)
	} else {
		log.Warn("no search api key configured, briefings will be ungrounded")
	}

	var limiter *rate.Limiter
	if cfg.Concurrency.RPM > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.Concurrency.RPM)/60.0), max(cfg.Concurrency.QPS, 1))
		log.Infof("rate limiter configured: %.2f req/s", float64(cfg.Concurrency.RPM)/60.0)
	}

	generator, err := gen.NewOpenAIGenerator(ctx, gen.ModelConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
	}, searcher, limiter, log)
	if err != nil {
		log.Fatalf("init generator: %v", err)
	}
	scanner := intel.NewService(generator, log)

	// The briefing cache is optional for a one-shot digest run; without a
	// database every region is fetched fresh.
	var briefings usecase.BriefingRepo
	if cfg.DB.Source != "" {
		d, cleanup, err := data.NewData(cfg.DB.Driver, cfg.DB.Source, klog.DefaultLogger)
		if err != nil {
			log.Fatalf("init database: %v", err)
		}
		defer cleanup()
		briefings = data.NewBriefingRepo(d, klog.DefaultLogger)
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make([]regionBriefing, len(regions))
	)
	for i, region := range regions {
		wg.Add(1)
		go func(i int, region string) {
			defer wg.Done()
			log.Infof("building briefing for %s", region)

			var items []intel.NewsItem
			if briefings != nil {
				if cached, err := briefings.FreshBriefing(ctx, region); err == nil && cached != nil {
					log.Infof("reusing same-day briefing for %s", region)
					items = cached
				}
			}
			if items == nil {
				items = scanner.DailyBriefing(ctx, region)
				if briefings != nil && len(items) > 0 {
					if err := briefings.SaveBriefing(ctx, region, items); err != nil {
						log.Warnf("briefing cache write failed for %s: %v", region, err)
					}
				}
			}

			mu.Lock()
			results[i] = regionBriefing{Region: region, News: items}
			mu.Unlock()
			log.Infof("briefing for %s done: %d stories", region, len(items))
		}(i, region)
	}
	wg.Wait()

	output := cfg.Output
	if output == "" {
		output = "digest.html"
	}
	if err := renderDigest(output, results); err != nil {
		log.Fatalf("render digest: %v", err)
	}
	log.Infof("digest written to %s", output)
}

func renderDigest(path string, briefings []regionBriefing) error {
	const htmlTpl = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Market Radar Daily Digest</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; line-height: 1.6; color: #333; }
        .story { border-bottom: 1px solid #eee; padding-bottom: 20px; margin-bottom: 20px; }
        .headline { font-size: 1.2em; font-weight: bold; color: #2c3e50; }
        .meta { font-size: 0.9em; color: #7f8c8d; margin-bottom: 10px; }
        .summary { background-color: #f9f9f9; padding: 15px; border-radius: 5px; border-left: 4px solid #3498db; }
        .tag { display: inline-block; padding: 2px 8px; border-radius: 12px; font-size: 0.8em; margin-right: 5px; color: white; background-color: #3498db; }
        h1 { text-align: center; color: #2c3e50; }
        h2 { color: #2c3e50; border-bottom: 2px solid #3498db; padding-bottom: 5px; }
    </style>
</head>
<body>
    <h1>📡 Market Radar Daily Digest</h1>
    <p style="text-align:center; color:#666;">{{ .Date }}</p>

    {{range .Briefings}}
    <h2>{{.Region}}</h2>
    {{if .News}}
    {{range .News}}
    <div class="story">
        <div class="headline">{{.Headline}}</div>
        <div class="meta">
            <span class="tag">{{.Category}}</span>
            Source: {{.Source}}{{if .Audience}} | Audience: {{.Audience}}{{end}}
        </div>
        <div class="summary">{{.Summary}}</div>
    </div>
    {{end}}
    {{else}}
    <p style="color:#999;">No stories surfaced today.</p>
    {{end}}
    {{end}}
</body>
</html>`

	t, err := template.New("digest").Parse(htmlTpl)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	payload := struct {
		Date      string
		Briefings []regionBriefing
	}{
		Date:      time.Now().Format("2006-01-02"),
		Briefings: briefings,
	}
	return t.Execute(f, payload)
}
