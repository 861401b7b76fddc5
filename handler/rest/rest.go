package rest

import (
	"errors"
	"net/http"

	"lendflow/core"
	"lendflow/handler/render"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi"
)

// Handle handle rest api request, runs may be nil when the journal is disabled
func Handle(registry common.Address, pools core.ILendingPoolService, accounts core.IAccountService, runs core.IRunStore) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/positions/{account}", positionHandler(registry, pools, accounts))
	if runs != nil {
		router.Get("/runs", runsHandler(runs))
		router.Get("/runs/{id}", runHandler(runs))
	}

	return router
}
