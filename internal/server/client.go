package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"rotten-soup/internal/domain"
	"rotten-soup/pkg/api"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

var (
	ErrUnknownAction   = errors.New("unknown action")
	ErrReservedAction  = errors.New("action is reserved for the engine")
	ErrMalformedAction = errors.New("malformed payload")
)

// Client - посредник между Websocket и сессией. Все клиенты смотрят
// одну игру и пишут в одну очередь команд.
type Client struct {
	ID     string
	server *Server
	Conn   *websocket.Conn
	Send   chan []byte
	logger *logrus.Entry
}

func NewClient(s *Server, conn *websocket.Conn) *Client {
	id := uuid.NewString()
	return &Client{
		ID:     id,
		server: s,
		Conn:   conn,
		Send:   s.Hub.Register(id),
		logger: s.logger.WithField("client", id),
	}
}

// ToCommand проверяет сообщение клиента и переводит его в команду движка
func ToCommand(msg api.ClientCommand) (domain.Command, error) {
	if err := msg.Validate(); err != nil {
		return domain.Command{}, fmt.Errorf("%w: %w", ErrUnknownAction, err)
	}
	action := domain.ParseAction(msg.Action)
	switch action {
	case domain.ActionUnknown:
		return domain.Command{}, ErrUnknownAction
	case domain.ActionInit:
		return domain.Command{}, ErrReservedAction
	}

	payload := msg.Payload
	if len(payload) > 0 && !json.Valid(payload) {
		return domain.Command{}, ErrMalformedAction
	}
	if string(payload) == "null" {
		payload = nil
	}
	return domain.Command{Action: action, Payload: payload}, nil
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	defer func() {
		c.server.Hub.Unregister(c.ID)
		if err := c.Conn.Close(); err != nil {
			c.logger.WithError(err).Debug("failed to close websocket connection")
		}
		c.logger.Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			c.logger.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	c.logger.Info("Client connected")

	// Новый клиент сразу получает последний кадр
	if frame := c.server.Frames.LastFrame(); frame != nil {
		c.server.Hub.SendTo(c.ID, frame)
	}

	for {
		var msg api.ClientCommand
		if err := c.Conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.WithError(err).Error("WS Error")
			}
			break
		}

		cmd, err := ToCommand(msg)
		if err != nil {
			c.logger.WithError(err).WithField("action", msg.Action).Warn("Rejected command")
			continue
		}
		if !c.server.Input.Push(cmd) {
			c.logger.WithField("action", cmd.Action).Warn("Input queue full, command dropped")
		}
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			c.logger.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.logger.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.WithError(err).Debug("write message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
