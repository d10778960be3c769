package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pkg.frost.gg/frostline/supplier"
)

type Config struct {
	Port uint16
}

func NewConfig(port uint16) *Config {
	return &Config{Port: port}
}

// API serves entity reads over HTTP, resolving every request through the
// configured entity supplier.
type API struct {
	ctx      context.Context
	logger   *zap.SugaredLogger
	supplier supplier.EntitySupplier
	router   *gin.Engine
	serv     *http.Server
}

func NewAPI(ctx context.Context, logger *zap.SugaredLogger, sup supplier.EntitySupplier, config *Config) *API {
	a := &API{
		ctx:      ctx,
		logger:   logger,
		supplier: sup,
		router:   gin.New(),
	}
	a.serv = &http.Server{Addr: fmt.Sprintf(":%d", config.Port), Handler: a.router}
	return a
}

func (a *API) Listen() {
	a.registerGetGuild()
	a.registerGetGuildMembers()
	a.registerGetChannelMessages()
	go func() {
		if err := a.serv.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				a.logger.Errorf("Server returned with error: %s.", err)
			}
		}
	}()
}

func (a *API) Close() error {
	return a.serv.Close()
}
