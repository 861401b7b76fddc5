package rest

import (
	"fmt"
	"net/http"

	"lendflow/core"
	"lendflow/handler/render"
	"lendflow/handler/views"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi"
)

func positionHandler(registry common.Address, pools core.ILendingPoolService, accounts core.IAccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		account := chi.URLParam(r, "account")
		if !common.IsHexAddress(account) {
			render.BadRequest(w, fmt.Errorf("invalid account %q", account))
			return
		}

		pool, err := pools.PoolAddress(ctx, registry)
		if err != nil {
			render.Error(w, http.StatusBadGateway, int(core.CodeOf(err)), err)
			return
		}

		position, err := accounts.GetPosition(ctx, pool, common.HexToAddress(account))
		if err != nil {
			render.Error(w, http.StatusBadGateway, int(core.CodeOf(err)), err)
			return
		}

		render.JSON(w, views.PositionView(position))
	}
}
