package di

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-docmark/exporter"
	"github.com/goliatone/go-docmark/history"
	"github.com/goliatone/go-docmark/internal/fetch"
	"github.com/goliatone/go-docmark/internal/logging"
	"github.com/goliatone/go-docmark/internal/logging/gologger"
	"github.com/goliatone/go-docmark/internal/runtimeconfig"
	"github.com/goliatone/go-docmark/pkg/interfaces"
	"github.com/goliatone/go-docmark/preview"
	"github.com/goliatone/go-docmark/render"
)

// Container wires module dependencies. Feature flags gate which collaborators
// get built; options let host applications swap any of them out.
type Container struct {
	config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	renderSvc      render.Service
	source         interfaces.BlockSource
	images         exporter.ImageResolver
	bunDB          *bun.DB
	ownsDB         bool
	historyStore   *history.Store
	exportSvc      interfaces.ExportService
	previewSvc     *preview.Renderer
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the default logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithBlockSource overrides the default fetch client.
func WithBlockSource(source interfaces.BlockSource) Option {
	return func(c *Container) {
		c.source = source
	}
}

// WithImageResolver overrides the resolver used to fill image download URLs.
func WithImageResolver(resolver exporter.ImageResolver) Option {
	return func(c *Container) {
		c.images = resolver
	}
}

// WithRenderer overrides the default markdown render service.
func WithRenderer(svc render.Service) Option {
	return func(c *Container) {
		c.renderSvc = svc
	}
}

// WithBunDB supplies an existing database handle for the history store. The
// container will not close handles it did not open.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithHistoryStore overrides the default export history store.
func WithHistoryStore(store *history.Store) Option {
	return func(c *Container) {
		c.historyStore = store
	}
}

// WithExportService overrides the fully assembled export pipeline.
func WithExportService(svc interfaces.ExportService) Option {
	return func(c *Container) {
		c.exportSvc = svc
	}
}

// NewContainer validates the configuration and builds every enabled
// collaborator. Construction is eager so misconfiguration surfaces here
// rather than on first use.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.init(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) init() error {
	if err := c.initLogging(); err != nil {
		return err
	}
	c.initRenderer()
	if err := c.initFetch(); err != nil {
		return err
	}
	if err := c.initHistory(); err != nil {
		return err
	}
	if err := c.initExporter(); err != nil {
		return err
	}
	c.initPreview()
	return nil
}

func (c *Container) initLogging() error {
	if c.loggerProvider != nil {
		return nil
	}
	if !c.config.Features.Logger {
		return nil
	}
	if c.config.Logging.Provider == "noop" {
		return nil
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Level:     c.config.Logging.Level,
		Format:    c.config.Logging.Format,
		AddSource: c.config.Logging.AddSource,
		Focus:     c.config.Logging.Focus,
	})
	if err != nil {
		return fmt.Errorf("di: build logger provider: %w", err)
	}
	c.loggerProvider = provider
	return nil
}

func (c *Container) initRenderer() {
	if c.renderSvc != nil {
		return
	}
	c.renderSvc = render.NewService(render.ServiceConfig{
		Options: render.Options{
			UnknownBlockPolicy: render.UnknownBlockPolicy(c.config.Render.UnknownBlockPolicy),
			UnderlineRendering: render.UnderlineRendering(c.config.Render.UnderlineRendering),
			ListIndentWidth:    c.config.Render.ListIndentWidth,
			LanguageOverrides:  c.config.Render.LanguageOverrides,
		},
		Logger: logging.RenderLogger(c.loggerProvider),
	})
}

func (c *Container) initFetch() error {
	if c.source != nil {
		return nil
	}
	if !c.config.Features.Fetch || !c.config.Fetch.Enabled {
		return nil
	}

	client, err := fetch.NewClient(fetch.Config{
		BaseURL:     c.config.Fetch.BaseURL,
		AccessToken: c.config.Fetch.AccessToken,
		PageSize:    c.config.Fetch.PageSize,
		Timeout:     c.config.Fetch.Timeout,
		MaxRetries:  c.config.Fetch.MaxRetries,
		RetryDelay:  c.config.Fetch.RetryDelay,
		Logger:      logging.FetchLogger(c.loggerProvider),
	})
	if err != nil {
		return fmt.Errorf("di: build fetch client: %w", err)
	}
	c.source = client
	if c.images == nil {
		c.images = client
	}
	return nil
}

func (c *Container) initHistory() error {
	if c.historyStore != nil {
		return nil
	}
	if !c.config.Features.History || !c.config.History.Enabled {
		return nil
	}

	if c.bunDB == nil {
		sqlDB, err := sql.Open("sqlite3", c.config.History.DSN)
		if err != nil {
			return fmt.Errorf("di: open history database: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
		c.bunDB = bun.NewDB(sqlDB, sqlitedialect.New())
		c.ownsDB = true
	}

	store := history.NewStore(c.bunDB, history.StoreConfig{
		Retention: c.config.History.Retention,
		Logger:    logging.HistoryLogger(c.loggerProvider),
	})
	if err := store.Init(context.Background()); err != nil {
		return fmt.Errorf("di: initialise history store: %w", err)
	}
	c.historyStore = store
	return nil
}

func (c *Container) initExporter() error {
	if c.exportSvc != nil {
		return nil
	}
	if c.source == nil {
		// No block source means nothing to export. Export stays nil and
		// command handlers report the feature as disabled.
		return nil
	}

	svc, err := exporter.NewService(exporter.ServiceConfig{
		Source:             c.source,
		Renderer:           c.renderSvc,
		Images:             c.images,
		History:            c.historyStore,
		Logger:             logging.ExporterLogger(c.loggerProvider),
		OutputDir:          c.config.Exporter.OutputDir,
		TimestampSuffix:    c.config.Exporter.TimestampSuffix,
		IncludeFrontmatter: c.config.Exporter.IncludeFrontmatter,
		Overwrite:          c.config.Exporter.Overwrite,
	})
	if err != nil {
		return fmt.Errorf("di: build export service: %w", err)
	}
	c.exportSvc = svc
	return nil
}

func (c *Container) initPreview() {
	if c.previewSvc != nil || !c.config.Features.Preview {
		return
	}
	c.previewSvc = preview.NewRenderer(preview.Options{
		Unsafe: c.config.Render.UnderlineRendering != string(render.UnderlineDrop),
	})
}

// Config returns the validated configuration the container was built from.
func (c *Container) Config() runtimeconfig.Config {
	return c.config
}

// LoggerProvider returns the configured logger provider, which may be nil
// when logging is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Renderer returns the markdown render service.
func (c *Container) Renderer() render.Service {
	return c.renderSvc
}

// BlockSource returns the configured block source, nil when fetch is off.
func (c *Container) BlockSource() interfaces.BlockSource {
	return c.source
}

// HistoryStore returns the export history store, nil when history is off.
func (c *Container) HistoryStore() *history.Store {
	return c.historyStore
}

// ExportService returns the export pipeline, nil when no block source exists.
func (c *Container) ExportService() interfaces.ExportService {
	return c.exportSvc
}

// Preview returns the HTML preview renderer, nil when previews are off.
func (c *Container) Preview() *preview.Renderer {
	return c.previewSvc
}

// FetchEnabled reports whether a block source is available for exports.
func (c *Container) FetchEnabled() bool {
	return c.source != nil
}

// Close releases resources the container opened itself.
func (c *Container) Close() error {
	if c.ownsDB && c.bunDB != nil {
		err := c.bunDB.Close()
		c.bunDB = nil
		c.ownsDB = false
		return err
	}
	return nil
}
