package handler

import (
	"net/http"

	"lendflow/core"
	"lendflow/handler/hc"
	"lendflow/handler/rest"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/rs/cors"
)

// Server status api of one network
type Server struct {
	Version  string
	Profile  *core.NetworkProfile
	Pools    core.ILendingPoolService
	Accounts core.IAccountService
	// Runs optional run journal
	Runs core.IRunStore
}

// Handler mux serving /hc and the rest api
func (s Server) Handler() http.Handler {
	mux := chi.NewMux()
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(cors.AllowAll().Handler)
	mux.Use(middleware.RequestID)
	mux.Use(middleware.Logger)

	mux.Mount("/hc", hc.Handle(s.Version, s.Profile.Name))
	mux.Mount("/", rest.Handle(s.Profile.LendingPoolAddressesProvider, s.Pools, s.Accounts, s.Runs))

	return mux
}
