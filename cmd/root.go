package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "job-seeker-cheater"
)

type Config struct {
	CVFile      string         `mapstructure:"cv-file"`
	SkillsFile  string         `mapstructure:"skills-file"`
	ProfileFile string         `mapstructure:"profile-file"`
	ExportFile  string         `mapstructure:"export-file"`
	TopN        int            `mapstructure:"top-n"`
	Preferences map[string]any `mapstructure:"preferences"`
	Sources     *SourcesConfig `mapstructure:"sources"`
	Cache       *CacheConfig   `mapstructure:"cache"`
}

type SourcesConfig struct {
	Enabled    []string          `mapstructure:"enabled"`
	Remotive   *RemotiveConfig   `mapstructure:"remotive"`
	Greenhouse *GreenhouseConfig `mapstructure:"greenhouse"`
	Lever      *LeverConfig      `mapstructure:"lever"`
	Reed       *ReedConfig       `mapstructure:"reed"`
	Adzuna     *AdzunaConfig     `mapstructure:"adzuna"`
}

type RemotiveConfig struct {
	Search string `mapstructure:"search"`
}

type GreenhouseConfig struct {
	Companies []string `mapstructure:"companies"`
}

type LeverConfig struct {
	Companies []string `mapstructure:"companies"`
}

type ReedConfig struct {
	Keywords   string `mapstructure:"keywords"`
	Location   string `mapstructure:"location"`
	APIKeyFile string `mapstructure:"api-key-file"`
}

type AdzunaConfig struct {
	Keywords string `mapstructure:"keywords"`
	Location string `mapstructure:"location"`
	Country  string `mapstructure:"country"`
}

type CacheConfig struct {
	Path       string `mapstructure:"path"`
	TTLMinutes int    `mapstructure:"ttl-minutes"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "job-seeker-cheater matches your CV against public job boards and explains every score",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("sources.reed.api-key-file", "REED_API_KEY_FILE"); err != nil {
		log.Fatalf("binding REED_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is job-seeker-cheater.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for the run command. If there is no config, we can skip initialization
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
