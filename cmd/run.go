package cmd

import (
	"fmt"

	"github.com/abhisek/aprende/internal/content"
	"github.com/abhisek/aprende/internal/question"
	"github.com/abhisek/aprende/internal/session"
	"github.com/abhisek/aprende/internal/store"
	"github.com/abhisek/aprende/internal/strategy"
)

// catalog holds the build-time registries.
type catalog struct {
	factory    *question.Factory
	loader     *content.Loader
	strategies *strategy.Registry
}

func newCatalog() (*catalog, error) {
	types, err := question.NewTypeRegistry(question.DefaultProviders()...)
	if err != nil {
		return nil, fmt.Errorf("register question types: %w", err)
	}
	factory := question.NewFactory(types)
	return &catalog{
		factory:    factory,
		loader:     content.NewLoader(factory),
		strategies: strategy.DefaultRegistry(),
	}, nil
}

// app is everything a session command needs.
type app struct {
	*catalog
	store    *store.Store
	sessions *session.Service
}

// openApp opens the store and wires the session service.
func openApp() (*app, error) {
	cat, err := newCatalog()
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath, store.WithLogger(appLog))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	svc := session.NewService(st.Sessions(), cat.strategies, appLog, session.WithEventLog(st.Events()))
	return &app{catalog: cat, store: st, sessions: svc}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}
