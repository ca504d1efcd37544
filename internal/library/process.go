package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/hook"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/logger"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/rpc"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/types"
)

const programLogPrefix = "Program log: "

type Submitter interface {
	Submit(event *types.FeeEvent)
}

// ParseFeeEvents extracts every fee line the hook logged in one transaction.
func ParseFeeEvents(signature string, slot uint64, logs []string) []*types.FeeEvent {
	var events []*types.FeeEvent

	for _, line := range logs {
		msg, ok := strings.CutPrefix(line, programLogPrefix)
		if !ok || !strings.HasPrefix(msg, "fee: ") {
			continue
		}

		var (
			mint  string
			event = &types.FeeEvent{Signature: signature, Slot: slot}
		)
		_, err := fmt.Sscanf(msg, hook.FeeLogFormat,
			&mint, &event.Amount, &event.Fee, &event.Burn, &event.Swap, &event.Deposit)
		if err != nil {
			continue
		}

		key, err := solana.PublicKeyFromBase58(mint)
		if err != nil {
			continue
		}
		event.Mint = key.ToPointer()
		events = append(events, event)
	}

	return events
}

func ProcessResponse(response rpc.LogsNotification, journal Submitter) int {
	if response.Failed {
		return 0
	}

	events := ParseFeeEvents(response.Signature, response.Slot, response.Logs)
	for _, event := range events {
		event.Timestamp = time.Now().Unix()

		logger.Get().Info().
			Str("signature", event.Signature).
			Str("mint", event.Mint.String()).
			Uint64("fee", event.Fee).
			Uint64("burn", event.Burn).
			Uint64("swap", event.Swap).
			Uint64("deposit", event.Deposit).
			Msg("fee routed")

		journal.Submit(event)
	}

	return len(events)
}
