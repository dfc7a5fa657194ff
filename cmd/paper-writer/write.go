// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-writer/internal/aggregate"
	"github.com/pdiddy/paper-writer/internal/ai"
	"github.com/pdiddy/paper-writer/internal/archive"
	"github.com/pdiddy/paper-writer/internal/compose"
	"github.com/pdiddy/paper-writer/internal/draft"
	"github.com/pdiddy/paper-writer/internal/httputil"
	"github.com/pdiddy/paper-writer/internal/scrape"
	"github.com/pdiddy/paper-writer/internal/secrets"
	"github.com/pdiddy/paper-writer/internal/websearch"
	"github.com/pdiddy/paper-writer/pkg/types"
)

var writeCmd = &cobra.Command{
	Use:   "write [topic...]",
	Short: "Generate a research document for a topic",
	Long: `Write runs the full pipeline for a research topic: per section it
generates search queries, discovers and scrapes result pages,
synthesizes the findings into academic prose, and enforces the
per-section length cap. Arguments are joined as the topic; with no
arguments the topic is read interactively.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, err := resolveTopic(args)
		if err != nil {
			return err
		}

		cfg := pipelineConfig(cmd)

		apiKey := secrets.Resolve(loadedSecrets, "anthropic-api-key", "CLAUDE_API")
		if apiKey == "" {
			apiKey = secrets.Resolve(loadedSecrets, "anthropic-api-key", "ANTHROPIC_API_KEY")
		}
		if apiKey == "" {
			return fmt.Errorf("Claude API key not set: provide .secrets/anthropic-api-key or the CLAUDE_API environment variable")
		}
		cfg.AI.APIKey = apiKey

		cfg.Search.APIKey = secrets.Resolve(loadedSecrets, cfg.Search.Provider+"-api-key",
			strings.ToUpper(cfg.Search.Provider)+"_API_KEY")
		if cfg.Search.APIKey == "" {
			return fmt.Errorf("%s API key not set: provide .secrets/%s-api-key or the %s_API_KEY environment variable",
				cfg.Search.Provider, cfg.Search.Provider, strings.ToUpper(cfg.Search.Provider))
		}
		backend, err := websearch.New(cfg.Search.Provider, cfg.Search.APIKey, &http.Client{Timeout: cfg.Search.Timeout})
		if err != nil {
			return err
		}

		outline := draft.DefaultOutline()
		if outlinePath, _ := cmd.Flags().GetString("outline"); outlinePath != "" {
			outline, err = draft.LoadOutline(outlinePath)
			if err != nil {
				return err
			}
		}

		pipeline := &draft.Pipeline{
			Aggregator: &aggregate.Aggregator{
				Search:    backend,
				Fetcher:   &scrape.Fetcher{Config: cfg.Scrape},
				SearchCfg: cfg.Search,
				MinLength: cfg.Scrape.MinLength,
				FetchGate: httputil.NewGate(cfg.Scrape.FetchInterval),
			},
			Composer: &compose.Composer{
				Client: &ai.Client{APIKey: cfg.AI.APIKey, Model: cfg.AI.Model},
				Config: cfg.AI,
			},
			Config:      cfg.Draft,
			QueryGate:   httputil.NewGate(cfg.Draft.QueryInterval),
			SectionGate: httputil.NewGate(cfg.Draft.SectionInterval),
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Research topic: %s\n", topic)

		started := time.Now()
		doc, err := pipeline.Run(cmd.Context(), topic, outline, out)
		if err != nil {
			return err
		}

		if err := draft.Write(doc, cfg.Draft.OutputPath); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nResearch document generated and stored in %q.\n", cfg.Draft.OutputPath)

		if err := recordRun(cmd, cfg, topic, started, doc); err != nil {
			// The document is already on disk; a failed archive write
			// is a warning, not a run failure.
			fmt.Fprintf(os.Stderr, "warning: could not archive run: %v\n", err)
		}
		return nil
	},
}

// resolveTopic joins the arguments as the topic, or prompts for one.
func resolveTopic(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	fmt.Print("Enter your research topic: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading topic: %w", err)
	}
	topic := strings.TrimSpace(line)
	if topic == "" {
		return "", fmt.Errorf("no research topic supplied")
	}
	return topic, nil
}

// recordRun stores the completed run in the archive.
func recordRun(cmd *cobra.Command, cfg types.PipelineConfig, topic string, started time.Time, doc *types.Document) error {
	store, err := archive.Open(cfg.Archive)
	if err != nil {
		return err
	}
	defer store.Close()

	model := cfg.AI.Model
	if model == "" {
		model = ai.DefaultModel
	}

	sections := make([]types.RunSection, len(doc.Sections))
	for i, sec := range doc.Sections {
		sections[i] = types.RunSection{Position: i, Name: sec.Section.Name, Chars: len(sec.Text)}
	}

	_, err = store.Record(cmd.Context(), types.Run{
		Topic:      topic,
		Model:      model,
		OutputPath: cfg.Draft.OutputPath,
		Started:    started,
		Finished:   time.Now(),
	}, sections)
	return err
}

// pipelineConfig assembles the stage configurations from viper (config
// file and environment) with command-line flags taking precedence.
func pipelineConfig(cmd *cobra.Command) types.PipelineConfig {
	cfg := types.PipelineConfig{
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viperDuration("search.timeout", 10*time.Second),
				UserAgent: viper.GetString("search.user_agent"),
			},
			Provider: viperString("search.provider", websearch.ProviderBrave),
			NumURLs:  viperInt("search.num_urls", 3),
		},
		Scrape: types.ScrapeConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout: viperDuration("scrape.timeout", 10*time.Second),
			},
			Mode:          viperString("scrape.mode", scrape.ModeElements),
			Selector:      viper.GetString("scrape.selector"),
			MinLength:     viperInt("scrape.min_length", 100),
			FetchInterval: viperDuration("scrape.fetch_interval", time.Second),
		},
		AI: types.AIConfig{
			Model:         viperString("ai.model", ai.DefaultModel),
			QueryTimeout:  viperDuration("ai.query_timeout", 15*time.Second),
			FormatTimeout: viperDuration("ai.format_timeout", 20*time.Second),
			LimitTimeout:  viperDuration("ai.limit_timeout", 25*time.Second),
		},
		Draft: types.DraftConfig{
			OutputPath:      viperString("draft.output_path", "research_paper.txt"),
			SectionLimit:    viperInt("draft.section_limit", draft.DefaultSectionLimit),
			QueryInterval:   viperDuration("draft.query_interval", time.Second),
			SectionInterval: viperDuration("draft.section_interval", 2*time.Second),
			ContinueOnEmpty: viperBool("draft.continue_on_empty", true),
		},
		Archive: types.ArchiveConfig{
			Dir: viperString("archive.dir", ".paper-writer"),
		},
	}

	if v, _ := cmd.Flags().GetString("provider"); v != "" {
		cfg.Search.Provider = v
	}
	if v, _ := cmd.Flags().GetString("model"); v != "" {
		cfg.AI.Model = v
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.Draft.OutputPath = v
	}
	if v, _ := cmd.Flags().GetString("selector"); v != "" {
		cfg.Scrape.Selector = v
	}
	if cmd.Flags().Changed("continue-on-empty") {
		cfg.Draft.ContinueOnEmpty, _ = cmd.Flags().GetBool("continue-on-empty")
	}
	return cfg
}

func viperString(key, def string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return def
}

func viperInt(key string, def int) int {
	if v := viper.GetInt(key); v != 0 {
		return v
	}
	return def
}

func viperDuration(key string, def time.Duration) time.Duration {
	if v := viper.GetDuration(key); v != 0 {
		return v
	}
	return def
}

func viperBool(key string, def bool) bool {
	if viper.IsSet(key) {
		return viper.GetBool(key)
	}
	return def
}

func init() {
	writeCmd.Flags().String("provider", "", "search provider: brave or serper")
	writeCmd.Flags().String("model", "", "generative model identifier")
	writeCmd.Flags().String("output", "", "output file path")
	writeCmd.Flags().String("outline", "", "YAML outline file overriding the default sections")
	writeCmd.Flags().String("selector", "", "CSS selector restricting page text extraction")
	writeCmd.Flags().Bool("continue-on-empty", true, "keep going when a section gathers no usable content")

	rootCmd.AddCommand(writeCmd)
}
