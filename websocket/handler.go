package websocket

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// origins are checked by the CORS layer and the token
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket upgrades an authenticated admin request and keeps the
// connection registered until the peer goes away.
func HandleWebSocket(c echo.Context, hub *Hub, userID string) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := &Client{UserID: userID, Conn: conn}
	if !hub.join(client) {
		conn.Close()
		return nil
	}

	_ = client.send(Notification{
		Type:    NotificationTypeConnected,
		Message: "Lead feed connected",
		UserID:  userID,
	})

	go func() {
		defer hub.leave(client)
		// admins never send anything meaningful; reading only detects close
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	return nil
}
