// Command drill runs a practice call in the terminal: type rep turns, read
// prospect replies, and get a scored report when the call ends.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	openai "github.com/sashabaranov/go-openai"

	appconfig "github.com/pitchlab/salestrainer/internal/config"
	"github.com/pitchlab/salestrainer/internal/persona"
	"github.com/pitchlab/salestrainer/internal/scenario"
	"github.com/pitchlab/salestrainer/internal/scoring"
	"github.com/pitchlab/salestrainer/internal/simulation"
	"github.com/pitchlab/salestrainer/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	var (
		name       = flag.String("name", "Jordan Reese", "prospect name")
		level      = flag.String("level", "manager", "prospect role level: junior|manager|director|vp|c-level")
		archetype  = flag.String("archetype", "generic", "prospect archetype")
		callType   = flag.String("call", "discovery-outbound", "call type")
		difficulty = flag.Int("difficulty", 2, "difficulty tier 1-5")
		company    = flag.String("company", "Northwind Logistics", "prospect company")
		product    = flag.String("product", "RouteIQ", "product being sold")
	)
	flag.Parse()

	cfg := appconfig.Load()
	logger := logging.New("error")

	if cfg.OpenAIAPIKey == "" {
		fmt.Fprintln(os.Stderr, "OPENAI_API_KEY is not set; replies will use canned lines")
	}

	registry := persona.NewRegistry()
	engine := simulation.NewEngine(registry, drillLLMClient(cfg), logger,
		simulation.WithLLMTimeout(cfg.LLMTimeout),
		simulation.WithGenerationParams(simulation.GenerationParams{
			Model:       drillModel(cfg),
			MaxTokens:   int32(cfg.LLMMaxTokens),
			Temperature: float32(cfg.LLMTemperature),
		}),
	)
	scorer := scoring.NewEngine(registry, logger)

	ctx := context.Background()
	start, err := engine.StartSession(ctx, simulation.StartRequest{
		Persona: persona.Config{
			Name:      *name,
			Level:     persona.RoleLevel(*level),
			Archetype: persona.Archetype(*archetype),
		},
		Business: scenario.BusinessContext{
			CompanyName: *company,
			Industry:    "logistics",
		},
		Product: scenario.ProductContext{
			Name:     *product,
			Category: "software",
		},
		CallType:   persona.CallType(*callType),
		Difficulty: persona.DifficultyLevel(*difficulty),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start session: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Session %s started (%s, tier %d). Type your turns; /end finishes the call.\n\n",
		start.SessionID, *callType, *difficulty)
	if start.Greeting != "" {
		fmt.Printf("%s: %s\n", *name, start.Greeting)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you: ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/end" {
			break
		}

		resp, err := engine.ProcessTurn(ctx, simulation.TurnRequest{
			SessionID: start.SessionID,
			Message:   line,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "turn failed: %v\n", err)
			break
		}

		fmt.Printf("%s: %s\n", *name, resp.Reply)
		if resp.Status == simulation.StatusHungUp {
			fmt.Printf("\n*click* The prospect hung up (%s).\n", resp.HangupReason)
			break
		}
	}

	end, err := engine.EndSession(ctx, start.SessionID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to end session: %v\n", err)
		os.Exit(1)
	}

	printReport(ctx, scorer, end, persona.CallType(*callType))
}

func printReport(ctx context.Context, scorer *scoring.Engine, end *simulation.EndResponse, callType persona.CallType) {
	turns := make([]scoring.Turn, 0, len(end.Transcript))
	for _, t := range end.Transcript {
		turns = append(turns, scoring.Turn{
			Speaker:   string(t.Speaker),
			Message:   t.Message,
			Timestamp: t.Timestamp,
		})
	}

	score, err := scorer.Score(ctx, turns, callType)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scoring failed: %v\n", err)
		return
	}

	fmt.Printf("\n==== Call report (%s) ====\n", end.Status)
	fmt.Printf("Overall: %.0f/100\n", score.Overall)
	for _, m := range score.Metrics {
		fmt.Printf("  %-18s %5.0f  (weight %.2f)  %s\n", m.Name, m.Score, m.Weight, m.Detail)
	}
	fmt.Printf("\n%s\n", score.Coaching.Summary)
	for _, imp := range score.Coaching.Improvements {
		fmt.Printf("- [%s] %s: %s\n", imp.Priority, imp.Issue, imp.Suggestion)
	}
}

func drillLLMClient(cfg *appconfig.Config) simulation.LLMClient {
	return simulation.NewOpenAILLMClient(openai.NewClient(cfg.OpenAIAPIKey))
}

func drillModel(cfg *appconfig.Config) string {
	if cfg.LLMModel != "" {
		return cfg.LLMModel
	}
	return openai.GPT4oMini
}
