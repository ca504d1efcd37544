package pool

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/logger"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/types"
)

// Journal persists fee events.
type Journal interface {
	Set(event *types.FeeEvent) error
}

type JournalPool struct {
	journal Journal
	taskCh  chan *types.FeeEvent
	wg      sync.WaitGroup
	logger  zerolog.Logger
}

func NewJournalPool(journal Journal, numWorkers int) *JournalPool {
	if numWorkers < 1 {
		numWorkers = 1
	}

	pool := &JournalPool{
		journal: journal,
		taskCh:  make(chan *types.FeeEvent, 100),
		logger:  logger.GetForComponent("journal"),
	}

	for i := 0; i < numWorkers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}

	return pool
}

func (p *JournalPool) worker() {
	defer p.wg.Done()
	for event := range p.taskCh {
		if err := p.journal.Set(event); err != nil {
			p.logger.Error().Err(err).Str("signature", event.Signature).Msg("failed to journal fee event")
		}
	}
}

func (p *JournalPool) Submit(event *types.FeeEvent) {
	p.taskCh <- event
}

// Close waits for every submitted event to be written.
func (p *JournalPool) Close() {
	close(p.taskCh)
	p.wg.Wait()
}
