package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rankforge/standings/internal/config"
	"github.com/rankforge/standings/internal/model"
	"github.com/rankforge/standings/internal/pipeline"
	"github.com/rankforge/standings/internal/region"
	"github.com/rankforge/standings/internal/report"
)

var (
	dataPath     string
	configPath   string
	outDir       string
	regionNames  []string
	dateOverride string
	logLevel     string
	windowEnd    int64
)

// rootCmd is the base command for the standings CLI
var rootCmd = &cobra.Command{
	Use:   "standings",
	Short: "Compute roster skill ratings and regional standings",
	Long: `standings is a batch ranking pipeline: it reads a historical match and
event dataset, resolves team identities into stable rosters, seeds each
roster from its historical prestige, runs a Glicko-style rating update over
every match in chronological order, and writes ranked standings tables.`,
	RunE: runStandings,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&dataPath, "data", "", "Path to the match dataset JSON file")
	flags.StringVar(&configPath, "config", "", "Path to a YAML pipeline config (defaults apply when omitted)")
	flags.StringVar(&outDir, "out", "", "Directory to write standings files into (stdout when omitted)")
	flags.StringSliceVar(&regionNames, "regions", nil, "Regions to generate standings for: Europe, Americas, Asia")
	flags.StringVar(&dateOverride, "date", "", "Standings date (YYYY-MM-DD); defaults to the latest match date")
	flags.StringVar(&logLevel, "log-level", "info", "Log level: trace, debug, info, warn, error")
	flags.Int64Var(&windowEnd, "window-end", -1, "End of the data window as epoch seconds; -1 uses the latest match")

	cobra.CheckErr(rootCmd.MarkFlagRequired("data"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runStandings(cmd *cobra.Command, args []string) error {
	if err := setupLogging(logLevel); err != nil {
		return err
	}

	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}

	regions, err := parseRegions(regionNames)
	if err != nil {
		return err
	}

	raw, err := loadDataset(dataPath)
	if err != nil {
		return err
	}

	result, err := pipeline.ComputeRankings(raw, cfg)
	if err != nil {
		return fmt.Errorf("ranking failed: %w", err)
	}

	date := dateOverride
	if date == "" {
		date = report.DateOfLatest(latestMatchTime(result.Matches))
	}

	if outDir != "" {
		return report.WriteFiles(outDir, result.Standings, regions, date)
	}

	if len(regions) == 0 {
		return report.WriteGlobal(os.Stdout, result.Standings, date)
	}
	for _, reg := range regions {
		if err := report.WriteRegional(os.Stdout, result.Standings, reg, date); err != nil {
			return err
		}
		fmt.Println()
	}
	return nil
}

func setupLogging(level string) error {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(parsed)
	return nil
}

// loadConfig layers the flag overrides on top of the file (or default)
// config.
func loadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if flags.Changed("window-end") {
		cfg.TimeWindowEnd = windowEnd
	}
	return cfg, nil
}

func parseRegions(names []string) ([]region.Region, error) {
	regions := make([]region.Region, 0, len(names))
	for _, name := range names {
		reg, ok := region.FromName(name)
		if !ok {
			return nil, fmt.Errorf("unknown region %q (want Europe, Americas or Asia)", name)
		}
		regions = append(regions, reg)
	}
	return regions, nil
}

// loadDataset reads and unmarshals the dataset file. Malformed input is
// fatal: no partial ranking is ever produced.
func loadDataset(path string) (*model.RawDataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	var raw model.RawDataset
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse dataset JSON: %w", err)
	}
	return &raw, nil
}

func latestMatchTime(matches []model.Match) int64 {
	latest := int64(-1)
	for _, m := range matches {
		if m.StartTime > latest {
			latest = m.StartTime
		}
	}
	return latest
}
