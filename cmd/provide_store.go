package cmd

import (
	"lendflow/core"
	"lendflow/store/run"

	"github.com/fox-one/pkg/store/db"
)

func provideRunStore(db *db.DB) core.IRunStore {
	return run.New(db)
}
