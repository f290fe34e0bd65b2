package protocol

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"bossgym/internal/episode"
	"bossgym/internal/logging"
)

// Factory builds a fresh environment for one websocket connection.
type Factory func() (Env, error)

// NewRouter serves the same request/response protocol over websockets, one
// environment per connection, plus health and space endpoints.
func NewRouter(factory Factory, space episode.Space) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/space", func(c *gin.Context) {
		c.JSON(http.StatusOK, space)
	})
	router.GET("/ws", func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logging.Error("websocket upgrade failed", err, logging.Fields{"remote": c.ClientIP()})
			return
		}
		serveConn(conn, factory)
	})
	return router
}

func serveConn(conn *websocket.Conn, factory Factory) {
	defer conn.Close()
	remote := conn.RemoteAddr().String()

	env, err := factory()
	if err != nil {
		logging.Error("environment construction failed", err, logging.Fields{"remote": remote})
		_ = conn.WriteJSON(errorResponse(err))
		return
	}
	h := NewHandler(env)
	logging.Info("websocket client connected", logging.Fields{"remote": remote})

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Error("websocket read failed", err, logging.Fields{"remote": remote})
			}
			return
		}
		resp, done := h.Handle(msg)
		if err := conn.WriteJSON(resp); err != nil {
			logging.Error("websocket write failed", err, logging.Fields{"remote": remote})
			return
		}
		if done {
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "closed"))
			logging.Info("websocket client closed", logging.Fields{"remote": remote})
			return
		}
	}
}
