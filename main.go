package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/csds-labs/resolutions-pipeline/agent/agents/llmagent"
	"github.com/csds-labs/resolutions-pipeline/agent/agents/pipeline"
	llmx "github.com/csds-labs/resolutions-pipeline/agent/llm"
	orderx "github.com/csds-labs/resolutions-pipeline/agent/order"
	resolvex "github.com/csds-labs/resolutions-pipeline/agent/resolve"
	statex "github.com/csds-labs/resolutions-pipeline/agent/state"
	toolx "github.com/csds-labs/resolutions-pipeline/agent/tool"
	configx "github.com/csds-labs/resolutions-pipeline/pkg/config"
	_ "github.com/csds-labs/resolutions-pipeline/pkg/logger/autoload"
	openrouterx "github.com/csds-labs/resolutions-pipeline/pkg/openrouter"
	retrievalx "github.com/csds-labs/resolutions-pipeline/pkg/retrieval"
)

func main() {
	ctx := context.Background()

	llmCfg := configx.MustNew[llmx.Config]("OPENROUTER")
	retrievalCfg := configx.MustNew[retrievalx.Config]("RETRIEVAL")

	retriever := retrievalx.MustNew(*retrievalCfg)

	summaryClient := openrouterx.NewClient(llmCfg.OpenRouterClient())
	if summaryClient == nil {
		panic("failed to initialize openrouter client")
	}
	summarizer, err := llmx.NewChatSummarizer(summaryClient, llmCfg.SummaryModelName())
	if err != nil {
		panic(err)
	}

	resolver, err := resolvex.NewResolver(retriever, summarizer)
	if err != nil {
		panic(err)
	}

	gateway, err := toolx.NewGateway(resolver, orderx.NewRegistry(nil))
	if err != nil {
		panic(err)
	}

	agents, err := llmagent.NewRegistry(ctx, *llmCfg)
	if err != nil {
		panic(err)
	}

	orchestrator, err := pipeline.New(statex.NewMemoryStore(), agents, gateway, pipeline.Config{})
	if err != nil {
		panic(err)
	}

	sessionID := uuid.NewString()
	log.Info().Str("session_id", sessionID).Msg("resolutions pipeline ready")
	fmt.Println("Type a message (ctrl-d to quit):")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		reply, err := orchestrator.HandleMessage(ctx, sessionID, text)
		if err != nil {
			log.Error().Err(err).Msg("handle message")
			continue
		}
		fmt.Println(reply)
	}

	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("read stdin")
	}
}
