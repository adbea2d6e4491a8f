// Package httpserver manages server creation and api routing.
package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/accountdelivery"
	"github.com/go-petr/pet-ledger/internal/middleware"
	"github.com/go-petr/pet-ledger/internal/transferdelivery"
	"github.com/go-petr/pet-ledger/pkg/configpkg"
)

// Server holds handlers router and configuration.
type Server struct {
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with the ledger routes.
func New(
	accounts accountdelivery.Registrar,
	transfers transferdelivery.Service,
	reports accountdelivery.Service,
	logger zerolog.Logger,
	config configpkg.Config,
) *Server {
	accountHandler := accountdelivery.NewHandler(reports, accounts)
	transferHandler := transferdelivery.NewHandler(transfers)

	if config.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/accounts", accountHandler.Create)
	engine.GET("/accounts", accountHandler.List)
	engine.GET("/accounts/:id", accountHandler.Get)
	engine.GET("/accounts/:id/transactions", accountHandler.Transactions)

	engine.POST("/transfers", transferHandler.Create)

	return &Server{
		Engine: engine,
		Config: config,
	}
}
