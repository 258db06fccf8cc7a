// Package main provides a one-shot CLI that prints today's recommendations.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/betting-optimizer/internal/apifootball"
	"github.com/yourusername/betting-optimizer/internal/config"
	"github.com/yourusername/betting-optimizer/internal/engine"
	"github.com/yourusername/betting-optimizer/internal/logger"
	"github.com/yourusername/betting-optimizer/internal/service"
)

var (
	configFile string
	stake      float64
	verbose    bool

	cfg    *config.Config
	appLog *logrus.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().Float64VarP(&stake, "stake", "s", 0, "Stake used for accumulator return figures (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

var rootCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run one analysis of today's fixtures",
	Long:  `Fetches today's fixtures, odds, and predictions, scores them, and prints the recommended singles and accumulators.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadWithDefaults(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if cfg.Provider.APIKey == "" {
			cfg.Provider.APIKey = os.Getenv("API_FOOTBALL_KEY")
		}
		if cfg.Provider.APIKey == "" {
			return fmt.Errorf("no API key configured: set provider.api_key or API_FOOTBALL_KEY")
		}
		if stake <= 0 {
			stake = cfg.Engine.DefaultStake
		}

		level := cfg.App.LogLevel
		if verbose {
			level = "debug"
		}
		appLog = logger.NewLogger(level, cfg.App.Environment)
		if !verbose {
			appLog.SetLevel(logrus.WarnLevel)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalysis(cmd.Context())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runAnalysis(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	httpCfg := apifootball.DefaultHTTPClientConfig()
	httpCfg.Timeout = cfg.ProviderTimeout()
	httpCfg.MaxRetries = cfg.Provider.MaxRetries
	httpCfg.RateLimit = cfg.Provider.RateLimitPerSecond
	httpClient := apifootball.NewRateLimitedHTTPClient(httpCfg, appLog)
	defer httpClient.Close()

	client := apifootball.NewClient(apifootball.ClientConfig{
		BaseURL:       cfg.Provider.BaseURL,
		APIKey:        cfg.Provider.APIKey,
		Host:          cfg.Provider.Host,
		BookmakerID:   cfg.Provider.BookmakerID,
		BookmakerName: cfg.Provider.BookmakerName,
	}, httpClient, appLog)

	pipeline := engine.NewPipeline(engine.BuilderOptions{
		MaxEligibleSingles: cfg.Engine.MaxEligibleSingles,
		MaxAccumulators:    cfg.Engine.MaxAccumulators,
	}, appLog)

	analyzer := service.NewAnalyzer(client, pipeline, cfg.ProviderCacheTTL(), appLog)

	snapshot, err := analyzer.Analyze(ctx)
	if err != nil {
		return err
	}

	printSnapshot(snapshot)
	return nil
}

func printSnapshot(s *service.Snapshot) {
	fmt.Printf("\nAnalysis for %s (%d upcoming fixtures)\n", s.Date, s.TotalFixtures)
	fmt.Println("══════════════════════════════════════════════════")

	if len(s.Singles) == 0 {
		fmt.Println("\nNo recommendations met the confidence threshold today.")
		return
	}

	fmt.Printf("\nSingles (%d):\n", len(s.Singles))
	for i, single := range s.Singles {
		fmt.Printf("%2d. %s — %s @ %.2f (%s)\n", i+1, single.MatchLabel(), single.Selection, single.Odds, single.Bookmaker)
		fmt.Printf("    confidence %.1f | ev %+.3f | prob %.0f%% | market avg %.2f (%+.1f%%)\n",
			single.Confidence, single.ExpectedValue, single.Probability*100, single.AvgMarketOdds, single.OddsValuePct)
		if single.Advice != "" {
			fmt.Printf("    advice: %s\n", single.Advice)
		}
	}

	if len(s.Accumulators) == 0 {
		fmt.Println("\nNo accumulators qualified.")
		return
	}

	stakeDec := decimal.NewFromFloat(stake)
	fmt.Printf("\nAccumulators (%d), stake %.2f:\n", len(s.Accumulators), stake)
	for i, acc := range s.Accumulators {
		ret := stakeDec.Mul(decimal.NewFromFloat(acc.CombinedOdds)).Round(2)
		fmt.Printf("%2d. %d legs @ %.2f | win %.1f%% | confidence %.1f | risk %s | returns %s\n",
			i+1, acc.LegCount(), acc.CombinedOdds, acc.RealisticWinPct, acc.AvgConfidence, acc.Risk, ret.StringFixed(2))
		for _, leg := range acc.Legs {
			fmt.Printf("      - %s: %s @ %.2f\n", leg.MatchLabel(), leg.Selection, leg.Odds)
		}
	}
}
