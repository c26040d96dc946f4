package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	assistantx "github.com/panuwat-dev/storefront-agent/agent/assistant"
	catalogx "github.com/panuwat-dev/storefront-agent/agent/catalog"
	classifierx "github.com/panuwat-dev/storefront-agent/agent/classifier"
	datasetx "github.com/panuwat-dev/storefront-agent/agent/dataset"
	faqx "github.com/panuwat-dev/storefront-agent/agent/faq"
	routerx "github.com/panuwat-dev/storefront-agent/agent/router"
	toolx "github.com/panuwat-dev/storefront-agent/agent/tool"
	configx "github.com/panuwat-dev/storefront-agent/pkg/config"
	llmx "github.com/panuwat-dev/storefront-agent/pkg/llm"
	_ "github.com/panuwat-dev/storefront-agent/pkg/logger/autoload"
)

type AppConfig struct {
	DatasetSource string        `envconfig:"DATASET_SOURCE" split_words:"true" default:"csv"`
	RouteTimeout  time.Duration `envconfig:"ROUTE_TIMEOUT" split_words:"true" default:"15s"`
	FaqThreshold  int           `envconfig:"FAQ_THRESHOLD" split_words:"true" default:"2"`
}

func main() {
	ctx := context.Background()

	appCfg := configx.MustNew[AppConfig]("")
	llmCfg := configx.MustNew[llmx.Config]("LLM")

	snap, err := loadSnapshot(ctx, appCfg.DatasetSource)
	if err != nil {
		log.Fatal().Err(err).Str("source", appCfg.DatasetSource).Msg("failed to load dataset")
	}
	log.Info().
		Int("products", len(snap.Products)).
		Int("faq_entries", len(snap.Faqs)).
		Str("source", appCfg.DatasetSource).
		Msg("dataset loaded")

	catalog := catalogx.New(snap.Products)
	faqIndex := faqx.New(snap.Faqs, faqx.WithThreshold(appCfg.FaqThreshold))

	registry, err := toolx.DefaultRegistry()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build tool registry")
	}

	chatModel, err := llmCfg.NewChatModel(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build chat model")
	}
	classifier, err := classifierx.New(ctx, chatModel, registry.Infos())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build classifier")
	}

	router, err := routerx.New(registry, classifier, routerx.WithTimeout(appCfg.RouteTimeout))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	assistant, err := assistantx.New(router, registry, toolx.Sources{
		Catalog: catalog,
		Faq:     faqIndex,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build assistant")
	}

	if err := llmx.Probe(ctx, llmCfg.NewClient(), llmCfg.Timeout); err != nil {
		log.Warn().Err(err).Msg("model provider unreachable, expect degraded answers")
	}

	runREPL(ctx, assistant)
}

func loadSnapshot(ctx context.Context, source string) (datasetx.Snapshot, error) {
	switch source {
	case "csv":
		cfg := configx.MustNew[datasetx.CSVConfig]("DATASET")
		return datasetx.LoadCSV(*cfg)
	case "feed":
		cfg := configx.MustNew[datasetx.FeedConfig]("FEED")
		client, err := datasetx.NewFeedClient(*cfg)
		if err != nil {
			return datasetx.Snapshot{}, err
		}
		return client.FetchSnapshot(ctx)
	case "postgres":
		cfg := configx.MustNew[datasetx.PostgresConfig]("POSTGRES")
		return datasetx.LoadPostgres(ctx, *cfg)
	default:
		return datasetx.Snapshot{}, fmt.Errorf("unknown dataset source %q", source)
	}
}

func runREPL(ctx context.Context, assistant *assistantx.Assistant) {
	fmt.Println("Storefront assistant ready. Type 'exit' to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			fmt.Println("Goodbye!")
			return
		}

		result, err := assistant.Answer(ctx, line)
		if err != nil {
			log.Error().Err(err).Msg("answer pipeline error")
		}
		fmt.Printf("agent> %s\n\n", result.Message)
	}
}
