package rpc

import (
	"encoding/json"

	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/generators"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/logger"
)

type LogsNotification struct {
	Signature string
	Slot      uint64
	Failed    bool
	Logs      []string
}

type logsMessage struct {
	Method string `json:"method"`
	Params struct {
		Result struct {
			Context struct {
				Slot uint64 `json:"slot"`
			} `json:"context"`
			Value struct {
				Signature string          `json:"signature"`
				Err       json.RawMessage `json:"err"`
				Logs      []string        `json:"logs"`
			} `json:"value"`
		} `json:"result"`
	} `json:"params"`
}

type WsRpc struct {
	wsClient *generators.WSClient
	logger   zerolog.Logger
}

func NewWsRpc(url string) (*WsRpc, error) {
	wsClient, err := generators.NewWSClient(url, "")
	if err != nil {
		return nil, err
	}

	return &WsRpc{
		wsClient: wsClient,
		logger:   logger.GetForComponent("wsrpc"),
	}, nil
}

// SubscribeToLogs streams every transaction that mentions programId. The
// subscription survives reconnects; logsChan is closed when the connection
// ends for good.
func (w *WsRpc) SubscribeToLogs(programId solana.PublicKey, logsChan chan<- LogsNotification) error {
	subscriptionRequest := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "logsSubscribe",
		"params": []interface{}{
			map[string]interface{}{"mentions": []string{programId.String()}},
			map[string]interface{}{"commitment": string(commitment)},
		},
	}

	requestData, err := json.Marshal(subscriptionRequest)
	if err != nil {
		return err
	}

	if err := w.wsClient.Subscribe(requestData); err != nil {
		return err
	}

	messageChan := make(chan []byte)
	go w.wsClient.ReadMessages(messageChan)

	go func() {
		defer close(logsChan)

		for message := range messageChan {
			var response logsMessage
			if err := json.Unmarshal(message, &response); err != nil {
				w.logger.Warn().Err(err).Msg("failed to unmarshal message")
				continue
			}

			if response.Method != "logsNotification" {
				continue
			}

			value := response.Params.Result.Value
			logsChan <- LogsNotification{
				Signature: value.Signature,
				Slot:      response.Params.Result.Context.Slot,
				Failed:    len(value.Err) > 0 && string(value.Err) != "null",
				Logs:      value.Logs,
			}
		}
	}()

	return nil
}

func (w *WsRpc) Close() error {
	return w.wsClient.Close()
}
