package server

import (
	"net/http"
	"time"

	"armory-server/internal/domain"
	"armory-server/internal/engine"
	"armory-server/internal/version"
	"armory-server/pkg/api"
	"armory-server/pkg/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и GameService
type Client struct {
	Game       *engine.GameService
	Conn       *websocket.Conn
	Send       chan api.ServerResponse // канал хаба
	PlayerID   domain.PlayerID
	SessionID  uuid.UUID // id подключения, для логов
	constraint string
	log        *logrus.Entry
}

func NewClient(game *engine.GameService, conn *websocket.Conn, constraint string) *Client {
	sid := uuid.New()
	return &Client{
		Game:       game,
		Conn:       conn,
		SessionID:  sid,
		constraint: constraint,
		log:        logger.WithComponent("client").WithField("session", sid),
	}
}

// Run: рукопожатие, затем пампы. Блокирует до разрыва соединения.
func (c *Client) Run() {
	if !c.handshake() {
		c.close()
		return
	}
	go c.writePump()
	c.readPump()
}

// handshake читает первое сообщение: версию протокола и токен.
// Пишет в сокет напрямую, так как writePump еще не запущен.
func (c *Client) handshake() bool {
	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))

	var login api.ClientCommand
	if err := c.Conn.ReadJSON(&login); err != nil {
		c.log.WithError(err).Warn("Handshake failed")
		return false
	}

	if err := login.Validate(); err != nil {
		c.log.WithError(err).Warn("Handshake rejected: bad token")
		c.writeDirect(api.ServerResponse{
			Type:     api.TypeError,
			Protocol: version.Protocol,
			Error:    "bad token: " + err.Error(),
		})
		return false
	}

	if err := version.Compatible(login.Version, c.constraint); err != nil {
		c.log.WithError(err).WithField("client_version", login.Version).Warn("Handshake rejected")
		c.writeDirect(api.ServerResponse{
			Type:     api.TypeError,
			Protocol: version.Protocol,
			Error:    err.Error(),
		})
		return false
	}

	c.PlayerID = domain.PlayerID(login.Token)
	if c.PlayerID == "" {
		c.PlayerID = domain.PlayerID(uuid.NewString())
	}
	c.log = c.log.WithField("player", c.PlayerID)

	// Подписка до входа в движок, чтобы не пропустить первый HUD
	c.Send = c.Game.Hub.Register(c.PlayerID)
	if !c.writeDirect(api.ServerResponse{
		Type:     api.TypeWelcome,
		PlayerID: c.PlayerID.String(),
		Protocol: version.Protocol,
	}) {
		c.Game.Hub.Unregister(c.PlayerID, c.Send)
		return false
	}

	c.Game.Join(c.PlayerID)
	if err := c.Game.ProcessCommand(api.ClientCommand{Action: "INIT", Token: c.PlayerID.String()}); err != nil {
		c.log.WithError(err).Error("INIT rejected")
	}
	c.log.WithField("client_version", login.Version).Info("Client logged in")
	return true
}

func (c *Client) writeDirect(msg api.ServerResponse) bool {
	_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.Conn.WriteJSON(msg); err != nil {
		c.log.WithError(err).Debug("write json message failed")
		return false
	}
	return true
}

func (c *Client) close() {
	if err := c.Conn.Close(); err != nil {
		c.log.WithError(err).Debug("failed to close websocket connection")
	}
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	defer func() {
		// Если тот же игрок уже переподключился, хаб отдал канал новому
		// соединению, и выходить из игры не нужно.
		if c.Game.Hub.Unregister(c.PlayerID, c.Send) {
			c.Game.Leave(c.PlayerID)
		}
		c.close()
		c.log.Info("Client disconnected")
	}()

	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var cmd api.ClientCommand
		if err := c.Conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Warn("WS error")
			}
			return
		}
		cmd.Token = c.PlayerID.String()
		if err := c.Game.ProcessCommand(cmd); err != nil {
			c.Game.Hub.SendTo(c.PlayerID, api.ServerResponse{
				Type:     api.TypeError,
				PlayerID: c.PlayerID.String(),
				Error:    err.Error(),
			})
		}
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Хаб закрыл канал: переподключение или остановка сервера
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				c.log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
