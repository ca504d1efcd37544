package pool

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/types"
)

type memoryJournal struct {
	mu     sync.Mutex
	events map[string]*types.FeeEvent
	fail   string
}

func (j *memoryJournal) Set(event *types.FeeEvent) error {
	if event.Signature == j.fail {
		return errors.New("boom")
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events[event.Signature] = event
	return nil
}

func TestJournalPoolDrainsOnClose(t *testing.T) {
	journal := &memoryJournal{events: map[string]*types.FeeEvent{}, fail: "sig-3"}
	p := NewJournalPool(journal, 4)

	for i := 0; i < 250; i++ {
		p.Submit(&types.FeeEvent{Signature: fmt.Sprintf("sig-%d", i), Amount: uint64(i)})
	}
	p.Close()

	assert.Len(t, journal.events, 249)
	assert.NotContains(t, journal.events, "sig-3")
	assert.Equal(t, uint64(42), journal.events["sig-42"].Amount)
}

func TestJournalPoolNeedsOneWorker(t *testing.T) {
	journal := &memoryJournal{events: map[string]*types.FeeEvent{}}
	p := NewJournalPool(journal, 0)
	p.Submit(&types.FeeEvent{Signature: "only"})
	p.Close()

	assert.Contains(t, journal.events, "only")
}
