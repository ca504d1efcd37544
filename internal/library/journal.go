package bot

import (
	"sync"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/adapter"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/logger"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/storage"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/types"
)

var dbMutex sync.Mutex

func SetFeeEvent(event *types.FeeEvent) error {
	db, err := adapter.GetMySQLClient()
	if err != nil {
		logger.Get().Error().Err(err).Msg("failed to get mysql instance")
		return err
	}

	dbMutex.Lock()
	defer dbMutex.Unlock()

	if err := storage.NewFeeEventStorage(db).Set(event); err != nil {
		logger.Get().Error().Err(err).Str("signature", event.Signature).Msg("failed to set fee event")
		return err
	}

	return nil
}

// MySQLJournal writes fee events through the shared MySQL client.
type MySQLJournal struct{}

func (MySQLJournal) Set(event *types.FeeEvent) error {
	return SetFeeEvent(event)
}
