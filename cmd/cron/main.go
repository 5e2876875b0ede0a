package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"cotacao-api/internal/cli"
	"cotacao-api/internal/config"
	"cotacao-api/internal/recon"
	"cotacao-api/internal/svc"
	"cotacao-api/pkg/indicators"
)

const (
	quotesInterval  = 2 * time.Minute  // Quote refresh interval
	barsInterval    = 15 * time.Minute // Daily bar refresh interval
	cycleTimeout    = 30 * time.Second // Timeout for one reconcile cycle
	shutdownTimeout = 10 * time.Second // Grace period for shutdown
)

var configFile = flag.String("f", "etc/cotacao.yaml", "the config file")

func main() {
	flag.Parse()
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	log.Println("[main] Starting refresh worker...")

	appCfg := config.MustLoad(*configFile)

	log.Printf("[main] Configuration loaded:")
	for _, line := range cli.ConfigSummaryLines(appCfg) {
		log.Printf("  - %s", line)
	}
	log.Printf("  - Refresh Intervals: quotes=%s, bars=%s", quotesInterval, barsInterval)

	svcCtx := svc.NewServiceContext(*appCfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		runQuotesRefresh(ctx, svcCtx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		runBarsRefresh(ctx, svcCtx)
	}()

	log.Println("[main] Refresh worker started. Press Ctrl+C to stop.")

	<-ctx.Done()
	log.Println("[main] Shutdown signal received, stopping tasks...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("[main] All tasks stopped cleanly")
	case <-shutdownCtx.Done():
		log.Println("[main] Shutdown timeout exceeded, forcing exit")
	}

	log.Println("[main] Refresh worker stopped")
}

// runQuotesRefresh reconciles quote data on a schedule.
func runQuotesRefresh(ctx context.Context, svcCtx *svc.ServiceContext) {
	ticker := time.NewTicker(quotesInterval)
	defer ticker.Stop()

	// Run once immediately on startup
	refreshQuotes(ctx, svcCtx)

	for {
		select {
		case <-ctx.Done():
			log.Println("[quotes] Stopping quote refresh")
			return
		case <-ticker.C:
			refreshQuotes(ctx, svcCtx)
		}
	}
}

// runBarsRefresh reconciles daily bars on a schedule.
func runBarsRefresh(ctx context.Context, svcCtx *svc.ServiceContext) {
	ticker := time.NewTicker(barsInterval)
	defer ticker.Stop()

	// Run once immediately on startup
	refreshBars(ctx, svcCtx)

	for {
		select {
		case <-ctx.Done():
			log.Println("[bars] Stopping bar refresh")
			return
		case <-ticker.C:
			refreshBars(ctx, svcCtx)
		}
	}
}

func refreshQuotes(parentCtx context.Context, svcCtx *svc.ServiceContext) {
	if parentCtx.Err() != nil {
		return
	}
	ctx, cancel := context.WithTimeout(parentCtx, cycleTimeout)
	defer cancel()

	start := time.Now()
	result, err := svcCtx.Engine.QuotesWindow(ctx, "", svcCtx.Config.Sync.Window)
	elapsed := time.Since(start)
	if err != nil {
		log.Printf("[quotes] [ERROR] %v, took %dms", err, elapsed.Milliseconds())
		return
	}
	log.Printf("[quotes] [OK] source=%s records=%d, took %dms",
		result.Outcome, len(result.Records), elapsed.Milliseconds())
}

func refreshBars(parentCtx context.Context, svcCtx *svc.ServiceContext) {
	if parentCtx.Err() != nil {
		return
	}
	ctx, cancel := context.WithTimeout(parentCtx, cycleTimeout)
	defer cancel()

	start := time.Now()
	result, err := svcCtx.Engine.BarsWindow(ctx, svcCtx.Config.Sync.Window)
	elapsed := time.Since(start)
	if err != nil {
		log.Printf("[bars] [ERROR] %v, took %dms", err, elapsed.Milliseconds())
		return
	}
	log.Printf("[bars] [OK] source=%s records=%d, took %dms",
		result.Outcome, len(result.Records), elapsed.Milliseconds())
	logBarIndicators(result.Records)
}

// logBarIndicators summarizes the refreshed window. Records arrive newest
// first; the indicator math wants ascending dates.
func logBarIndicators(records []recon.BarRecord) {
	if len(records) < 2 {
		return
	}
	bars := make([]indicators.Bar, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		bars = append(bars, indicators.Bar{High: rec.High, Low: rec.Low, Close: rec.Close})
	}
	s := indicators.Summarize(bars, 5)
	log.Printf("[bars] close sma=%.4f rsi=%.2f atr=%.4f", s.SMA, s.RSI, s.ATR)
}
