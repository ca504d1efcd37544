package rpc

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/config"
)

func TestSubscribeToLogs(t *testing.T) {
	received := make(chan []byte, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := (&websocket.Upgrader{}).Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		_, request, err := conn.ReadMessage()
		if err != nil {
			return
		}
		received <- request

		frames := []string{
			`{"jsonrpc":"2.0","result":7,"id":1}`,
			`not json`,
			`{"jsonrpc":"2.0","method":"logsNotification","params":{"result":{"context":{"slot":5},"value":{"signature":"sigA","err":null,"logs":["Program log: hello"]}},"subscription":7}}`,
			`{"jsonrpc":"2.0","method":"logsNotification","params":{"result":{"context":{"slot":6},"value":{"signature":"sigB","err":{"InstructionError":[0,"Custom"]},"logs":[]}},"subscription":7}}`,
		}
		for _, frame := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
				return
			}
		}
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}))
	defer server.Close()

	ws, err := NewWsRpc("ws" + strings.TrimPrefix(server.URL, "http"))
	require.NoError(t, err)

	logsChan := make(chan LogsNotification)
	require.NoError(t, ws.SubscribeToLogs(config.HOOK_PROGRAM_ID, logsChan))

	var got []LogsNotification
	for n := range logsChan {
		got = append(got, n)
	}

	request := string(<-received)
	assert.Contains(t, request, `"logsSubscribe"`)
	assert.Contains(t, request, config.HOOK_PROGRAM_ID.String())

	require.Len(t, got, 2)
	assert.Equal(t, LogsNotification{Signature: "sigA", Slot: 5, Logs: []string{"Program log: hello"}}, got[0])
	assert.Equal(t, "sigB", got[1].Signature)
	assert.True(t, got[1].Failed)
}

func TestSubscribeToLogsAfterReconnect(t *testing.T) {
	var connections atomic.Int32
	requests := make(chan []byte, 2)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := (&websocket.Upgrader{}).Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		n := connections.Add(1)

		_, request, err := conn.ReadMessage()
		if err != nil {
			return
		}
		requests <- request

		notification := fmt.Sprintf(`{"jsonrpc":"2.0","method":"logsNotification","params":{"result":{"context":{"slot":%d},"value":{"signature":"sig%d","err":null,"logs":[]}},"subscription":7}}`, n, n)
		if err := conn.WriteMessage(websocket.TextMessage, []byte(notification)); err != nil {
			return
		}
		if n == 1 {
			// drop without a close frame
			return
		}
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}))
	defer server.Close()

	ws, err := NewWsRpc("ws" + strings.TrimPrefix(server.URL, "http"))
	require.NoError(t, err)

	logsChan := make(chan LogsNotification)
	require.NoError(t, ws.SubscribeToLogs(config.HOOK_PROGRAM_ID, logsChan))

	var got []string
	for n := range logsChan {
		got = append(got, n.Signature)
	}

	assert.Equal(t, []string{"sig1", "sig2"}, got)
	assert.Equal(t, int32(2), connections.Load())
	require.Len(t, requests, 2)
	first, second := <-requests, <-requests
	assert.Equal(t, first, second)
	assert.Contains(t, string(second), `"logsSubscribe"`)
}
