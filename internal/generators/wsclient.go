package generators

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/logger"
)

const reconnectAttempts = 5

var reconnectDelay = 500 * time.Millisecond

type WSClient struct {
	conn   *websocket.Conn
	url    string
	auth   string
	mutex  sync.Mutex
	done   chan struct{}
	logger zerolog.Logger

	// subscriptions are sent again on every new connection.
	subscriptions [][]byte
	closed        bool
}

func dial(url string, auth string) (*websocket.Conn, error) {
	header := http.Header{}
	if auth != "" {
		header.Set("Authorization", auth)
	}

	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	return conn, err
}

func NewWSClient(url string, auth string) (*WSClient, error) {
	conn, err := dial(url, auth)
	if err != nil {
		return nil, err
	}

	return &WSClient{
		conn:   conn,
		url:    url,
		auth:   auth,
		done:   make(chan struct{}),
		logger: logger.GetForComponent("ws"),
	}, nil
}

func (c *WSClient) current() *websocket.Conn {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.conn
}

// reconnect swaps in a fresh connection with every subscription replayed.
// The caller holds the mutex.
func (c *WSClient) reconnect() error {
	conn, err := dial(c.url, c.auth)
	if err != nil {
		return err
	}

	for _, message := range c.subscriptions {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			conn.Close()
			return err
		}
	}

	c.conn.Close()
	c.conn = conn
	c.logger.Info().Int("subscriptions", len(c.subscriptions)).Msg("reconnected")
	return nil
}

// send writes message, reconnecting once on failure. The caller holds the
// mutex.
func (c *WSClient) send(message []byte) error {
	err := c.conn.WriteMessage(websocket.TextMessage, message)
	if err != nil {
		c.logger.Warn().Err(err).Msg("write failed, reconnecting")
		if err := c.reconnect(); err != nil {
			return err
		}

		// Retry sending the message after reconnecting
		return c.conn.WriteMessage(websocket.TextMessage, message)
	}
	return nil
}

func (c *WSClient) SendMessage(message []byte) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.send(message)
}

// Subscribe sends message now and again after every reconnect.
func (c *WSClient) Subscribe(message []byte) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if err := c.send(message); err != nil {
		return err
	}
	c.subscriptions = append(c.subscriptions, message)
	return nil
}

// redial replaces failed unless another caller already has.
func (c *WSClient) redial(failed *websocket.Conn) error {
	var err error
	for attempt := 0; attempt < reconnectAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(reconnectDelay)
		}

		c.mutex.Lock()
		switch {
		case c.closed:
			err = net.ErrClosed
		case c.conn != failed:
			err = nil
		default:
			err = c.reconnect()
		}
		c.mutex.Unlock()

		if err == nil || err == net.ErrClosed {
			return err
		}
		c.logger.Warn().Err(err).Int("attempt", attempt+1).Msg("reconnect")
	}
	return err
}

// ReadMessages forwards every frame to ch, reconnecting when the connection
// drops. It closes ch once the server closes normally, Close is called or
// reconnecting gives up.
func (c *WSClient) ReadMessages(ch chan<- []byte) {
	defer close(c.done)
	defer close(ch)

	for {
		conn := c.current()
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return
			}
			if err := c.redial(conn); err != nil {
				if err != net.ErrClosed {
					c.logger.Error().Err(err).Msg("read")
				}
				return
			}
			continue
		}
		ch <- message
	}
}

func (c *WSClient) Close() error {
	c.mutex.Lock()
	c.closed = true
	conn := c.conn
	err := conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.mutex.Unlock()
	if err != nil {
		return conn.Close()
	}

	select {
	case <-c.done:
	case <-time.After(time.Second):
	}
	return conn.Close()
}
