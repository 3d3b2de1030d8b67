package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kavach-labs/kavach/internal/logging"
	"github.com/kavach-labs/kavach/internal/model"
	"github.com/kavach-labs/kavach/internal/pipeline"
	"github.com/kavach-labs/kavach/internal/transcribe"
)

var (
	analyzeText  string
	analyzeFile  string
	analyzeAudio string
	jsonOut      string
	mdOut        string
	timeout      time.Duration
	maxTurns     int
	noFooter     bool
	noStore      bool
	storeDir     string

	llmEnabled  bool
	llmProvider string
	llmModel    string

	familyContact string
	policeStation string
	seniorName    string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Triage one call transcript or recording",
	Long: `Runs the full triage pipeline on one call:
- Score the transcript against the multilingual scam keyword lexicon
- Classify the threat level (SAFE / SUSPICIOUS / HIGH_RISK / CRITICAL)
- Extract the structured verdict
- Dispatch escalation alerts for HIGH_RISK and CRITICAL calls

Input is one of --text, --file, or --audio. Audio input requires
OPENAI_API_KEY for Whisper transcription.

Example:
  kavach analyze --text "this is CBI, you are under digital arrest"
  kavach analyze --file call.txt --json report.json --md report.md
  kavach analyze --audio call.mp3 --llm --llm-provider openai`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeText, "text", "", "transcript text to analyze")
	analyzeCmd.Flags().StringVar(&analyzeFile, "file", "", "transcript file to analyze")
	analyzeCmd.Flags().StringVar(&analyzeAudio, "audio", "", "audio recording to transcribe and analyze")
	analyzeCmd.Flags().StringVar(&jsonOut, "json", "", "write the call record as JSON to this path")
	analyzeCmd.Flags().StringVar(&mdOut, "md", "", "write a Markdown report to this path")
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "timeout for one triage run")
	analyzeCmd.Flags().IntVar(&maxTurns, "max-turns", 8, "stage turn ceiling per run")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	analyzeCmd.Flags().BoolVar(&noStore, "no-store", false, "disable result archiving and deduplication")
	analyzeCmd.Flags().StringVar(&storeDir, "store-dir", "", "archive records to this directory (default: in-memory)")

	analyzeCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM reasoning and decision stages")
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default if empty)")

	analyzeCmd.Flags().StringVar(&familyContact, "family-contact", "", "family phone number for escalation alerts")
	analyzeCmd.Flags().StringVar(&policeStation, "police-station", "local cybercrime cell", "police desk for CRITICAL escalations")
	analyzeCmd.Flags().StringVar(&seniorName, "senior-name", "the senior citizen", "name used in family alerts")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	inputs := 0
	for _, v := range []string{analyzeText, analyzeFile, analyzeAudio} {
		if v != "" {
			inputs++
		}
	}
	if inputs != 1 {
		return fmt.Errorf("exactly one of --text, --file, or --audio is required")
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	logger := logging.Must(verbose)
	defer func() { _ = logger.Sync() }()

	p, err := pipeline.NewPipeline(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout+30*time.Second)
	defer cancel()

	var record *model.CallRecord
	switch {
	case analyzeAudio != "":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set (required for audio input)")
		}
		tr, err := transcribe.NewWhisperTranscriber(transcribe.Config{APIKey: apiKey})
		if err != nil {
			return err
		}
		p.SetTranscriber(tr)
		record, err = p.AnalyzeAudio(ctx, analyzeAudio)
		if err != nil {
			return err
		}

	case analyzeFile != "":
		data, err := os.ReadFile(analyzeFile)
		if err != nil {
			return fmt.Errorf("read transcript: %w", err)
		}
		record, err = p.Analyze(ctx, string(data))
		if err != nil {
			return err
		}

	default:
		record, err = p.Analyze(ctx, analyzeText)
		if err != nil {
			return err
		}
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	if jsonOut != "" {
		if err := renderer.RenderJSON(record, jsonOut); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote JSON: %s\n", jsonOut)
		}
	}
	if mdOut != "" {
		if err := renderer.RenderMarkdown(record, mdOut); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote Markdown: %s\n", mdOut)
		}
	}
	renderer.RenderSummary(record)

	return nil
}

// buildConfig assembles the runtime configuration from defaults, flags
// and environment variables
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Pipeline.Timeout = timeout
	cfg.Pipeline.MaxTurns = maxTurns
	cfg.Store.Enabled = !noStore
	cfg.Store.Dir = storeDir
	cfg.Alert.FamilyContact = familyContact
	cfg.Alert.PoliceStation = policeStation
	cfg.Alert.SeniorName = seniorName
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if !llmEnabled {
		return cfg, nil
	}

	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel

	switch strings.ToLower(llmProvider) {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", llmProvider)
	}

	return cfg, nil
}
