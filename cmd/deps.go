package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/masteryloop/internal/cards"
	"github.com/abhisek/masteryloop/internal/curriculum"
	"github.com/abhisek/masteryloop/internal/llm"
	"github.com/abhisek/masteryloop/internal/profile"
	"github.com/abhisek/masteryloop/internal/progress"
	"github.com/abhisek/masteryloop/internal/questions"
	"github.com/abhisek/masteryloop/internal/review"
	"github.com/abhisek/masteryloop/internal/screens/home"
	"github.com/abhisek/masteryloop/internal/store"
)

// deps holds everything a learning command needs.
type deps struct {
	store    *store.Store
	catalog  *curriculum.Catalog
	progress *progress.Progress
	reviews  *review.Service
	cards    *cards.Service
	profiles *profile.SessionStore
	source   *questions.FallbackSource
}

func (d *deps) Close() error {
	return d.store.Close()
}

func (d *deps) home() home.Deps {
	return home.Deps{
		Catalog:  d.catalog,
		Reviews:  d.reviews,
		Cards:    d.cards,
		Profiles: d.profiles,
		Events:   d.store.EventRepo(),
	}
}

// openDeps opens the store, loads the catalog and saved progress, and
// builds the question and card services from the loaded config.
func openDeps(ctx context.Context, cmd *cobra.Command, log *zap.Logger) (*deps, error) {
	catalog, err := curriculum.Load()
	if err != nil {
		return nil, fmt.Errorf("load curriculum: %w", err)
	}

	st, err := openStore(cmd)
	if err != nil {
		return nil, err
	}
	events := st.EventRepo()

	progStore := progress.NewStore(st.SnapshotRepo(), events)
	prog, err := progStore.Load(ctx, catalog)
	if err != nil {
		st.Close()
		return nil, err
	}

	llmCfg := appConfig.LLM
	if !appConfig.LLMAvailable {
		log.Info("no LLM credentials found; using offline questions and cards")
		llmCfg.Provider, llmCfg.Alternate = "", ""
	}

	source := questions.NewSourceFromConfig(ctx, llmCfg, appConfig.Questions, catalog, events, log)
	providers := llm.NewProviders(ctx, llmCfg, events, log)

	return &deps{
		store:    st,
		catalog:  catalog,
		progress: prog,
		reviews: review.NewService(source, prog,
			review.WithRecorder(events),
			review.WithProgressSaver(progStore),
			review.WithLogger(log),
		),
		cards:    cards.NewService(providers, appConfig.Cards, log),
		profiles: profile.NewSessionStore(st.ProfileRepo()),
		source:   source,
	}, nil
}
