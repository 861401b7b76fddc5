package run

import (
	"context"

	"lendflow/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type runStore struct {
	db *db.DB
}

// New new run journal store
func New(db *db.DB) core.IRunStore {
	return &runStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Run{})

		if err := tx.AutoMigrate(core.Run{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *runStore) Create(ctx context.Context, run *core.Run) error {
	return s.db.Update().Where("run_id=?", run.RunID).FirstOrCreate(run).Error
}

func (s *runStore) FindByRunID(ctx context.Context, runID string) (*core.Run, error) {
	var run core.Run
	if err := s.db.View().Where("run_id=?", runID).First(&run).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &run, nil
		}
		return nil, err
	}

	return &run, nil
}

func (s *runStore) List(ctx context.Context, account string, limit int) ([]*core.Run, error) {
	if limit <= 0 {
		limit = 50
	}

	tx := s.db.View()
	if account != "" {
		tx = tx.Where("account=?", account)
	}

	var runs []*core.Run
	if err := tx.Order("id DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, err
	}

	return runs, nil
}
