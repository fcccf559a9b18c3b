package server

import (
	"context"
	"errors"
	"net/http"
	"tactics-server/internal/engine"
	"tactics-server/pkg/api"
	"tactics-server/pkg/logger"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
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

// Client - посредник между Websocket и GameService.
// Одно соединение - одна сессия - один матч.
type Client struct {
	Game    *engine.GameService
	Conn    *websocket.Conn
	Send    chan api.ServerResponse
	Session string

	done chan struct{} // закрывается, когда writePump вышел
}

func NewClient(game *engine.GameService, conn *websocket.Conn) *Client {
	return &Client{
		Game: game,
		Conn: conn,
		Send: make(chan api.ServerResponse, 256),
		done: make(chan struct{}),
	}
}

// readPump читает команды от клиента
func (c *Client) readPump(ctx context.Context) {
	defer func() {
		if c.Session != "" {
			if err := c.Game.CloseMatch(c.Session); err != nil {
				logger.Log.WithError(err).WithField("session", c.Session).Warn("failed to close match")
			}
			c.Game.Hub.Unregister(c.Session)
			logger.Log.WithField("session", c.Session).Info("Client disconnected")
		}
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection")
		}
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	// 1. HANDSHAKE: первое сообщение - INIT, токен можно не передавать
	var hello api.ClientCommand
	if err := c.Conn.ReadJSON(&hello); err != nil {
		logger.Log.WithError(err).Warn("Handshake failed")
		close(c.Send)
		return
	}

	session := hello.Token
	if session == "" {
		session = uuid.NewString()
	}

	// 2. ПОДПИСКА ДО СОЗДАНИЯ МАТЧА, чтобы не пропустить первый снимок
	updates, ok := c.Game.Hub.RegisterIfAbsent(session)
	if !ok {
		logger.Log.WithField("session", session).Warn("Session is already connected")
		close(c.Send)
		return
	}
	go c.forward(updates)

	inst, err := c.Game.CreateMatch(ctx, session)
	if err != nil {
		logger.Log.WithError(err).WithField("session", session).Warn("Cannot create match")
		c.Game.Hub.Unregister(session)
		return
	}
	c.Session = session

	logger.Log.WithFields(logrus.Fields{
		"session":  session,
		"match_id": inst.ID,
		"clients":  c.Game.Hub.SubscriberCount(),
	}).Info("Client logged in")

	if err := c.Game.ProcessCommand(api.ClientCommand{Action: "INIT", Token: session}); err != nil {
		logger.Log.WithError(err).WithField("session", session).Warn("INIT failed")
	}

	// 3. ЦИКЛ ЧТЕНИЯ КОМАНД
	for {
		var cmd api.ClientCommand
		err := c.Conn.ReadJSON(&cmd)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.WithError(err).Error("WS error")
			}
			break
		}

		// Токен всегда берется из сессии соединения
		cmd.Token = session
		if err := cmd.Validate(); err != nil {
			logger.Log.WithError(err).WithField("session", session).Debug("Invalid command")
			continue
		}
		if err := c.Game.ProcessCommand(cmd); err != nil {
			if errors.Is(err, engine.ErrNoMatch) {
				break
			}
			logger.Log.WithError(err).WithField("session", session).Debug("Command dropped")
		}
	}
}

// forward перекладывает снимки из хаба в Send, пока writePump жив.
// Send закрывается, когда хаб закрыл канал сессии.
func (c *Client) forward(updates <-chan api.ServerResponse) {
	for msg := range updates {
		select {
		case c.Send <- msg:
		case <-c.done:
			return
		}
	}
	close(c.Send)
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		close(c.done)
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				logger.Log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
