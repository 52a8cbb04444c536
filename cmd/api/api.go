package api

import (
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pulsefeed/pulse-server/cmd/utils"
	"github.com/pulsefeed/pulse-server/service/content"
	"github.com/pulsefeed/pulse-server/service/engagement"
	"github.com/pulsefeed/pulse-server/service/feed"
	"github.com/pulsefeed/pulse-server/service/social"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type APIServer struct {
	address string
	db      *gorm.DB
}

func NewApiServer(address string, db *gorm.DB) *APIServer {
	return &APIServer{
		address: address,
		db:      db,
	}
}

func (s *APIServer) Run() error {
	router := mux.NewRouter()
	subrouter := router.PathPrefix("/api/v1").Subrouter()

	contentHandler := content.NewHandler(s.db)
	contentHandler.RegisterRoutes(subrouter)

	engagementHandler := engagement.NewHandler(s.db)
	engagementHandler.RegisterRoutes(subrouter)

	feedHandler := feed.NewHandler(s.db)
	feedHandler.RegisterRoutes(subrouter)

	socialHandler := social.NewHandler(s.db)
	socialHandler.RegisterRoutes(subrouter)

	wrapped := handlers.RecoveryHandler()(handlers.CombinedLoggingHandler(os.Stdout, router))

	utils.Logger.Info("server running", zap.String("address", s.address))
	return http.ListenAndServe(s.address, wrapped)
}
