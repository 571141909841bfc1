package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/JaimeV365/job-seeker-cheater/internal/export"
	"github.com/JaimeV365/job-seeker-cheater/internal/job"
	"github.com/JaimeV365/job-seeker-cheater/internal/logger"
	"github.com/JaimeV365/job-seeker-cheater/internal/matching"
	"github.com/JaimeV365/job-seeker-cheater/internal/prefs"
	"github.com/JaimeV365/job-seeker-cheater/internal/profile"
	"github.com/JaimeV365/job-seeker-cheater/internal/secrets"
	"github.com/JaimeV365/job-seeker-cheater/internal/sources"
	"github.com/JaimeV365/job-seeker-cheater/internal/store"
	"github.com/JaimeV365/job-seeker-cheater/internal/textproc"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptExportCSV      = "Export matches to CSV"
	PromptReportBySource = "Report by source"
	PromptQuit           = "Quit"

	defaultTopN       = 20
	defaultExportFile = "matches.csv"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptExportCSV, PromptReportBySource, PromptQuit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch listings, match them against your CV and rank the results",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-approve", "y", false, "export the matches to CSV without prompting")
	runCmd.Flags().StringP("export-file", "e", "", "CSV file for exported matches. Default is matches.csv.")

	viper.BindPFlag("export-file", runCmd.Flags().Lookup("export-file"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the job-seeker-cheater", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	if config.CVFile == "" {
		logger.Fatal("a CV file is required under cv-file to build the matching profile")
	}

	rawCV, err := extractText(config.CVFile)
	if err != nil {
		logger.Fatal("reading the CV", zap.Error(err))
	}

	prof := buildProfile(rawCV, config, logger)
	preferences, err := prefs.FromMap(config.Preferences)
	if err != nil {
		logger.Fatal("parsing preferences", zap.Error(err))
	}

	if config.ProfileFile != "" {
		if err := store.NewProfileStore(config.ProfileFile).Save(prof, preferences); err != nil {
			logger.Warn("saving the profile", zap.Error(err))
		}
	}

	listings, err := fetchListings(ctx, rawCV, config, logger)
	if err != nil {
		logger.Fatal("fetching listings", zap.Error(err))
	}

	if len(listings) == 0 {
		logger.Info("exiting", zap.String("reason", "no listings fetched"))
		return
	}

	matches := matching.NewPipeline(logger).Run(listings, prof, preferences)
	if len(matches) == 0 {
		logger.Info("exiting", zap.String("reason", "no listings left after filters"))
		return
	}

	topN := config.TopN
	if topN <= 0 {
		topN = defaultTopN
	}
	renderMatches(matches, topN)

	action := PromptExportCSV
	for {
		var err error
		if cmd.Flag("auto-approve").Value.String() == "false" {
			_, action, err = prompt.Run()
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
		}

		if err := handleAction(action, logger, matches); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}

		if cmd.Flag("auto-approve").Value.String() == "true" {
			return
		}
	}
}

func handleAction(action string, logger *zap.Logger, matches []matching.Match) error {
	switch action {
	case PromptExportCSV:
		filename := viper.GetString("export-file")
		if filename == "" {
			filename = defaultExportFile
		}
		if err := export.WriteCSVFile(filename, matches); err != nil {
			return fmt.Errorf("exporting matches: %w", err)
		}
		logger.Info("exported matches", zap.String("filename", filename), zap.Int("count", len(matches)))
		return nil
	case PromptReportBySource:
		pretty, _ := json.MarshalIndent(reportBySource(matches), "", "  ")
		logger.Info(string(pretty), zap.Int("matches count", len(matches)))
		return nil
	case PromptQuit:
		logger.Info("exiting", zap.String("reason", "got quit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// extractText reads the CV file and strips markup when the file is HTML.
// Plain text and markdown pass through untouched.
func extractText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		return string(data), nil
	case ".html", ".htm":
		return textproc.CleanHTML(string(data)), nil
	default:
		return "", fmt.Errorf("unsupported CV file type %q (want .txt, .md, .html or .htm)", filepath.Ext(path))
	}
}

func buildProfile(rawCV string, config *Config, logger *zap.Logger) *profile.Profile {
	var (
		dict map[string][]string
		err  error
	)
	if config.SkillsFile != "" {
		dict, err = profile.LoadSkillsDict(config.SkillsFile)
	} else {
		dict, err = profile.DefaultSkillsDict()
	}
	if err != nil {
		logger.Fatal("loading the skills dictionary", zap.Error(err))
	}

	prof := profile.NewBuilder(dict).Build(rawCV)
	logger.Info("built the profile",
		zap.Int("skills", len(prof.Skills)),
		zap.Strings("role_hints", prof.RoleHints),
	)

	return prof
}

// fetchListings builds the connectors from the config and runs them, going
// through the listing cache when one is configured.
func fetchListings(ctx context.Context, rawCV string, config *Config, logger *zap.Logger) ([]*job.Listing, error) {
	client := sources.NewClient(logger, sources.NewGuard(rawCV))

	registry, err := buildRegistry(client, config.Sources, logger)
	if err != nil {
		return nil, err
	}

	var enabled []string
	if config.Sources != nil {
		enabled = config.Sources.Enabled
	}
	connectors := registry.Select(enabled)
	if len(connectors) == 0 {
		return nil, errors.New("no sources enabled")
	}

	cache := openCache(config, logger)
	if cache != nil {
		defer cache.Close()
	}

	var (
		all     []*job.Listing
		toFetch []sources.Connector
	)
	for _, c := range connectors {
		if cache == nil {
			toFetch = append(toFetch, c)
			continue
		}
		cached, err := cache.GetJobs(ctx, c.Name())
		if err != nil {
			logger.Warn("reading the cache", zap.String("source", c.Name()), zap.Error(err))
		}
		if len(cached) > 0 {
			logger.Info("using cached listings", zap.String("source", c.Name()), zap.Int("listings", len(cached)))
			all = append(all, cached...)
			continue
		}
		toFetch = append(toFetch, c)
	}

	fetched, srcErrs := sources.FetchAll(ctx, toFetch, logger)
	if len(srcErrs) > 0 {
		logger.Warn("some sources failed",
			zap.Int("succeeded", len(toFetch)-len(srcErrs)),
			zap.Int("total", len(toFetch)),
		)
	}

	if cache != nil && len(fetched) > 0 {
		if err := cache.StoreJobs(ctx, fetched); err != nil {
			logger.Warn("writing the cache", zap.Error(err))
		}
	}

	all = append(all, fetched...)

	collection := &job.Jobs{Items: all}
	logger.Info("fetched listings",
		zap.Int("count", collection.Len()),
		zap.Strings("sources", collection.SourceNames()),
	)

	return all, nil
}

func openCache(config *Config, logger *zap.Logger) *store.Cache {
	if config.Cache == nil || config.Cache.Path == "" {
		return nil
	}

	ttl := time.Duration(config.Cache.TTLMinutes) * time.Minute
	cache, err := store.OpenCache(config.Cache.Path, ttl)
	if err != nil {
		logger.Warn("opening the listing cache, continuing without it", zap.Error(err))
		return nil
	}

	return cache
}

func buildRegistry(client *sources.Client, cfg *SourcesConfig, logger *zap.Logger) (*sources.Registry, error) {
	registry := sources.NewRegistry()

	search := ""
	if cfg != nil && cfg.Remotive != nil {
		search = cfg.Remotive.Search
	}
	registry.Register(sources.NewRemotive(client, search))
	registry.Register(sources.NewArbeitnow(client))

	if cfg != nil && cfg.Greenhouse != nil && len(cfg.Greenhouse.Companies) > 0 {
		registry.Register(sources.NewGreenhouse(client, cfg.Greenhouse.Companies))
	}

	if cfg != nil && cfg.Lever != nil && len(cfg.Lever.Companies) > 0 {
		registry.Register(sources.NewLever(client, cfg.Lever.Companies))
	}

	appID, err := secrets.LoadOptional(secrets.Source{Name: "adzuna app id", Env: "ADZUNA_APP_ID"})
	if err != nil {
		return nil, fmt.Errorf("loading the adzuna app id: %w", err)
	}
	appKey, err := secrets.LoadOptional(secrets.Source{Name: "adzuna app key", Env: "ADZUNA_APP_KEY"})
	if err != nil {
		return nil, fmt.Errorf("loading the adzuna app key: %w", err)
	}
	if appID == "" || appKey == "" {
		logger.Info("skipping the adzuna source", zap.String("reason", "no credentials configured"))
	} else {
		keywords, location, country := "", "", ""
		if cfg != nil && cfg.Adzuna != nil {
			keywords, location, country = cfg.Adzuna.Keywords, cfg.Adzuna.Location, cfg.Adzuna.Country
		}
		registry.Register(sources.NewAdzuna(client, appID, appKey, keywords, location, country))
	}

	if cfg != nil && cfg.Reed != nil {
		apiKey, err := secrets.LoadOptional(secrets.Source{
			Name: "reed api key",
			File: cfg.Reed.APIKeyFile,
			Env:  "REED_API_KEY",
		})
		if err != nil {
			return nil, fmt.Errorf("loading the reed api key: %w", err)
		}
		if apiKey == "" {
			logger.Info("skipping the reed source", zap.String("reason", "no api key configured"))
		} else {
			registry.Register(sources.NewReed(client, apiKey, cfg.Reed.Keywords, cfg.Reed.Location))
		}
	}

	return registry, nil
}

func renderMatches(matches []matching.Match, topN int) {
	if topN > len(matches) {
		topN = len(matches)
	}

	fmt.Printf("Top %d of %d matches:\n\n", topN, len(matches))
	for i, m := range matches[:topN] {
		fmt.Printf("%2d. [%.2f] %s / %s\n", i+1, m.Score, m.Listing.Title, m.Listing.Company)
		if m.Listing.Location != "" || m.Listing.DisplaySalary() != "" {
			fmt.Printf("    %s  %s\n", m.Listing.Location, m.Listing.DisplaySalary())
		}
		for _, reason := range m.Explanation.Reasons {
			fmt.Printf("    + %s\n", reason)
		}
		for _, gap := range m.Explanation.Gaps {
			fmt.Printf("    - %s\n", gap)
		}
		fmt.Printf("    %s\n\n", m.Listing.URL)
	}
}

func reportBySource(matches []matching.Match) map[string]int {
	report := make(map[string]int)
	for _, m := range matches {
		report[m.Listing.Source]++
	}
	return report
}
