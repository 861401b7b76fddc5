package rest

import (
	"errors"
	"fmt"
	"net/http"

	"lendflow/core"
	"lendflow/handler/render"
	"lendflow/handler/views"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi"
	"github.com/gorilla/schema"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

func runsHandler(runs core.IRunStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Account string `schema:"account"`
			Limit   int    `schema:"limit"`
		}

		if err := decoder.Decode(&params, r.URL.Query()); err != nil {
			render.BadRequest(w, err)
			return
		}

		// journal rows carry checksummed addresses
		if params.Account != "" {
			if !common.IsHexAddress(params.Account) {
				render.BadRequest(w, fmt.Errorf("invalid account %q", params.Account))
				return
			}
			params.Account = common.HexToAddress(params.Account).Hex()
		}

		list, err := runs.List(r.Context(), params.Account, params.Limit)
		if err != nil {
			render.Error(w, http.StatusInternalServerError, -1, err)
			return
		}

		render.JSON(w, views.RunsView(list))
	}
}

func runHandler(runs core.IRunStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, err := runs.FindByRunID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			render.Error(w, http.StatusInternalServerError, -1, err)
			return
		}

		if run.ID == 0 {
			render.NotFoundRequest(w, errors.New("run not found"))
			return
		}

		render.JSON(w, views.RunView(run))
	}
}
