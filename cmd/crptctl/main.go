package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"crpt-gateway/crpt"
	"crpt-gateway/crpt/domain"
	"crpt-gateway/crpt/infra"
	"crpt-gateway/internal/logger"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sourcegraph/conc/pool"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("crptctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "config file (default ./crptctl.yaml if present)")
	sigExt := fs.String("sig-ext", ".sig", "extension of the detached signature next to each document")
	workers := fs.Int("workers", 4, "concurrent submissions (all share one rate gate)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: crptctl [-config path] [-sig-ext .sig] [-workers n] doc.json [doc.json ...]\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	files := fs.Args()
	if len(files) == 0 || *workers <= 0 {
		fs.Usage()
		return 2
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "config error: %v\n", err)
		return 2
	}

	log, err := logger.NewLogger(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(stderr, "logger error: %v\n", err)
		return 2
	}
	defer func() { _ = log.Sync() }()

	var stats domain.StatsStore
	if cfg.Stats.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Stats.RedisAddr,
			Password: cfg.Stats.RedisPassword,
			DB:       cfg.Stats.RedisDB,
		})
		defer func() { _ = rdb.Close() }()

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		cancel()
		if err != nil {
			// estatística é best-effort: segue sem ela
			log.Warnw("redis stats unavailable", "addr", cfg.Stats.RedisAddr, "error", err)
		} else {
			stats = infra.NewRedisStatsStore(rdb,
				infra.WithStatsPrefix(cfg.Stats.Prefix),
				infra.WithStatsTTL(cfg.Stats.TTL),
			)
		}
	}

	codec := infra.NewJSONCodec()
	client, err := crpt.NewClient(crpt.Options{
		Endpoint:       cfg.Registry.Endpoint,
		Token:          cfg.Registry.Token,
		TimeUnit:       cfg.Quota.TimeUnit,
		RequestLimit:   cfg.Quota.RequestLimit,
		AcquireTimeout: cfg.Quota.AcquireTimeout,
		HTTPTimeout:    cfg.Registry.HTTPTimeout,
		Codec:          codec,
		Stats:          stats,
		Logger:         log,
	})
	if err != nil {
		log.Errorw("client setup failed", "error", err)
		return 2
	}
	defer client.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Infow("submitting documents",
		"files", len(files),
		"workers", *workers,
		"request_limit", cfg.Quota.RequestLimit,
		"time_unit", cfg.Quota.TimeUnit,
	)

	failed := 0
	for _, res := range submitAll(ctx, client, codec, files, *sigExt, *workers) {
		if res.err != nil {
			failed++
			fmt.Fprintf(stdout, "%s\tERROR\t%v\n", res.file, res.err)
			continue
		}
		fmt.Fprintf(stdout, "%s\t%s\t%s\n", res.file, res.id, domain.MoscowTimestamp(res.at))
	}
	if failed > 0 {
		log.Warnw("some submissions failed", "failed", failed, "total", len(files))
		return 1
	}
	return 0
}

type submitter interface {
	CreateDocument(ctx context.Context, doc *domain.Document, signature []byte) (string, error)
}

type result struct {
	index int
	file  string
	id    string
	at    time.Time
	err   error
}

// submitAll envia os arquivos com no máximo `workers` goroutines e devolve os
// resultados na ordem dos arquivos.
func submitAll(ctx context.Context, s submitter, codec domain.Codec, files []string, sigExt string, workers int) []result {
	p := pool.NewWithResults[result]().WithMaxGoroutines(workers)
	for i, file := range files {
		p.Go(func() result {
			res := result{index: i, file: file}
			res.id, res.err = submitFile(ctx, s, codec, file, sigExt)
			res.at = time.Now()
			return res
		})
	}
	results := p.Wait()
	sort.Slice(results, func(a, b int) bool { return results[a].index < results[b].index })
	return results
}

func submitFile(ctx context.Context, s submitter, codec domain.Codec, file, sigExt string) (string, error) {
	doc, err := loadDocument(codec, file)
	if err != nil {
		return "", err
	}
	signature, err := os.ReadFile(file + sigExt)
	if err != nil {
		return "", errors.Wrap(err, "read signature")
	}
	return s.CreateDocument(ctx, doc, signature)
}

func loadDocument(codec domain.Codec, file string) (*domain.Document, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrap(err, "read document")
	}
	var doc domain.Document
	if err := codec.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if doc.ProductionDate() != "" {
		if _, err := domain.NormalizeDate(doc.ProductionDate()); err != nil {
			return nil, errors.Wrap(err, "production_date")
		}
	}
	for i, p := range doc.Products() {
		if p.ProductionDate == "" {
			continue
		}
		if _, err := domain.NormalizeDate(p.ProductionDate); err != nil {
			return nil, errors.Wrapf(err, "products[%d].production_date", i)
		}
	}
	return &doc, nil
}
