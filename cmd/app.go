package cmd

import (
	"net/url"

	"go.uber.org/zap"

	"github.com/arcanaland/flashdeck/internal/card"
	"github.com/arcanaland/flashdeck/internal/config"
	"github.com/arcanaland/flashdeck/internal/deck"
	"github.com/arcanaland/flashdeck/internal/fetch"
	"github.com/arcanaland/flashdeck/internal/logging"
	"github.com/arcanaland/flashdeck/internal/store"
)

// app holds the collaborators shared by every command.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	client *fetch.Client
	root   *url.URL
	loader *deck.Loader
	store  store.KV
}

func newApp() (*app, error) {
	logger, err := logging.New(verboseFlag)
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	card.DefaultImage = card.Image{Src: cfg.DefaultImage.Src, Alt: cfg.DefaultImage.Alt}

	site := cfg.SiteURL
	if siteFlag != "" {
		site = siteFlag
	}
	root, err := config.SiteRoot(site)
	if err != nil {
		return nil, err
	}
	catalogURL, err := cfg.CatalogURL(root)
	if err != nil {
		return nil, err
	}

	var kv store.KV = store.NewFile(cfg.StateFile)
	if ephemeralFlag {
		kv = store.NewMemory()
	}

	client := fetch.NewClient(nil, logger.Named("fetch"))
	logger.Debug("configured",
		zap.String("site", root.String()),
		zap.String("catalog", catalogURL.String()),
		zap.String("state", cfg.StateFile),
		zap.Bool("ephemeral", ephemeralFlag))

	return &app{
		cfg:    cfg,
		logger: logger,
		client: client,
		root:   root,
		loader: deck.NewLoader(client, catalogURL),
		store:  kv,
	}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}
