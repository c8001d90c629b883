package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/carpickhq/carpick-agent/agent/collab"
	contractx "github.com/carpickhq/carpick-agent/agent/contract"
	"github.com/carpickhq/carpick-agent/agent/inventory"
	"github.com/carpickhq/carpick-agent/agent/llm"
	"github.com/carpickhq/carpick-agent/agent/state"
	configx "github.com/carpickhq/carpick-agent/pkg/config"
	_ "github.com/carpickhq/carpick-agent/pkg/logger/autoload"
	notifyx "github.com/carpickhq/carpick-agent/pkg/notify"
	openrouterx "github.com/carpickhq/carpick-agent/pkg/openrouter"
)

type AppConfig struct {
	UserID string `envconfig:"USER_ID" split_words:"true" default:"local"`
}

func main() {
	query := strings.TrimSpace(strings.Join(os.Args[1:], " "))
	if query == "" {
		log.Fatal().Msg("usage: carpick-agent <상담 요청 문장>")
	}

	appCfg := configx.MustNew[AppConfig]("CARPICK")
	llmCfg := configx.MustNew[llm.Config]("OPENROUTER")
	invCfg := configx.MustNew[inventory.Config]("INVENTORY")
	collabCfg := configx.MustNew[collab.Config]("COLLAB")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if openrouterx.NewClient(llmCfg.OpenRouterFor(contractx.AgentCoordinator)) == nil {
		log.Fatal().Msg("initialize openrouter client")
	}

	models, err := llm.NewRegistry(ctx, *llmCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("build model registry")
	}

	searcher, err := inventory.NewPostgresSearcher(*invCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open inventory")
	}
	defer searcher.Close()

	var opts []collab.Option
	if redisCfg, err := configx.New[state.UpstashRedisConfig]("UPSTASH_REDIS"); err == nil {
		store, err := state.NewUpstashRedisStore(*redisCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("build session store")
		}
		opts = append(opts, collab.WithSessionCache(store))
	} else {
		log.Info().Msg("no session store configured; sessions stay in-process")
	}
	if webhookCfg, err := configx.New[notifyx.Config]("WEBHOOK"); err == nil {
		opts = append(opts, collab.WithNotifier(notifyx.MustNew(*webhookCfg)))
	}

	orchestrator, err := collab.New(searcher, models, nil, *collabCfg, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("build orchestrator")
	}

	events, err := orchestrator.Collaborate(ctx, collab.Request{
		UserID: appCfg.UserID,
		Text:   query,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("start collaboration")
	}

	enc := json.NewEncoder(os.Stdout)
	for ev := range events {
		if err := enc.Encode(ev); err != nil {
			log.Error().Err(err).Msg("encode event")
		}
	}
}
