// Package frostline is a caching Discord client layer: it keeps a normalized
// in-memory view of remote entities fed by the gateway, and exposes reads
// through pluggable entity suppliers (cache, REST, or cache with REST
// fallback).
package frostline

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"pkg.frost.gg/frostline/cache"
	"pkg.frost.gg/frostline/dispatch"
	"pkg.frost.gg/frostline/model"
	"pkg.frost.gg/frostline/supplier"
)

// SupplyStrategy selects which supplier a client hands out as its default.
// The strategy is resolved once during New; changing a client's strategy
// afterwards is not supported, construct suppliers explicitly instead.
type SupplyStrategy func(*Client) supplier.EntitySupplier

var (
	// SupplyCache serves reads from the local entity store only.
	SupplyCache SupplyStrategy = func(c *Client) supplier.EntitySupplier { return c.cacheSupplier }

	// SupplyRest serves every read with a remote request.
	SupplyRest SupplyStrategy = func(c *Client) supplier.EntitySupplier { return c.restSupplier }

	// SupplyCacheWithRestFallback serves reads from the local store and
	// falls back to the remote service on absence. This is the default.
	SupplyCacheWithRestFallback SupplyStrategy = func(c *Client) supplier.EntitySupplier {
		return supplier.WithFallback(c.cacheSupplier, c.restSupplier)
	}
)

// Client owns a gateway session, the entity store fed by it, and the
// suppliers reading from both.
type Client struct {
	logger  *zap.Logger
	session *discordgo.Session

	cache         *cache.Cache
	cacheSupplier *supplier.CacheSupplier
	restSupplier  *supplier.RestSupplier
	supplier      supplier.EntitySupplier

	dispatcher *dispatch.Dispatcher
}

type options struct {
	logger   *zap.Logger
	builder  *cache.Builder
	strategy SupplyStrategy
}

// Option configures a Client during construction.
type Option func(*options)

// WithLogger sets the client's logger. Defaults to zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithCacheBuilder sets the storage strategy bindings for the entity store.
func WithCacheBuilder(b *cache.Builder) Option {
	return func(o *options) { o.builder = b }
}

// WithSupplyStrategy sets the default supplier handed out by Supplier.
func WithSupplyStrategy(s SupplyStrategy) Option {
	return func(o *options) { o.strategy = s }
}

// New creates a Client for the given authentication token. The token is
// passed to the transport as-is, so bot tokens need their "Bot " prefix.
func New(token string, opts ...Option) (*Client, error) {
	o := options{
		logger:   zap.NewNop(),
		builder:  cache.NewBuilder(),
		strategy: SupplyCacheWithRestFallback,
	}
	for _, opt := range opts {
		opt(&o)
	}

	session, err := discordgo.New(token)
	if err != nil {
		return nil, fmt.Errorf("couldn't create session: %w", err)
	}

	c := &Client{
		logger:  o.logger,
		session: session,
		cache:   o.builder.Build(),
	}
	c.cacheSupplier = supplier.NewCacheSupplier(c.cache)
	c.restSupplier = supplier.NewRestSupplier(session)
	c.supplier = o.strategy(c)
	c.dispatcher = dispatch.NewDispatcher(o.logger, c.cache)

	return c, nil
}

// Connect registers the gateway handlers and opens the websocket session.
func (c *Client) Connect() error {
	c.dispatcher.Register(c.session)
	c.session.AddHandlerOnce(c.onReady)
	return c.session.Open()
}

// Close closes the gateway session.
func (c *Client) Close() error {
	return c.session.Close()
}

func (c *Client) onReady(_ *discordgo.Session, e *discordgo.Ready) {
	if e.User != nil {
		c.cacheSupplier.SetSelfID(model.MustParseSnowflake(e.User.ID))
		c.logger.Sugar().Infof("Logged in Discord API as %s.", e.User)
	}
}

// Supplier returns the client's default entity supplier, chosen by the
// supply strategy at construction time.
func (c *Client) Supplier() supplier.EntitySupplier {
	return c.supplier
}

// Supply builds a supplier for this client from an explicit strategy,
// independent of the configured default.
func (c *Client) Supply(s SupplyStrategy) supplier.EntitySupplier {
	return s(c)
}

// Cache returns the client's entity store. Put and Remove on it are safe
// to call concurrently with any in-flight read.
func (c *Client) Cache() *cache.Cache {
	return c.cache
}

// Session exposes the underlying gateway session.
func (c *Client) Session() *discordgo.Session {
	return c.session
}
