package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"stayBack/internal/models"
)

const (
	readLimit          = 1 << 20
	readDeadline       = 120 * time.Second
	writeDeadline      = 5 * time.Second
	pingInterval       = 15 * time.Second
	firstHelloDeadline = 30 * time.Second
)

type directMsg struct {
	userID int
	msg    models.Message
}

type unreg struct {
	userID int
	conn   *websocket.Conn
}

type wsClient struct {
	ID     int
	Socket *websocket.Conn
}

// TalkManager fans stored talk messages out to connected users. Messages are
// created over the REST endpoint; the socket is delivery-only.
type TalkManager struct {
	clients    map[int]*websocket.Conn
	direct     chan directMsg
	register   chan wsClient
	unregister chan unreg
}

func NewTalkManager() *TalkManager {
	return &TalkManager{
		clients:    make(map[int]*websocket.Conn),
		direct:     make(chan directMsg),
		register:   make(chan wsClient),
		unregister: make(chan unreg),
	}
}

// Deliver hands a message to the run loop for the given user. Offline users
// are skipped; they will see the message on the next talk fetch.
func (ws *TalkManager) Deliver(userID int, msg models.Message) {
	ws.direct <- directMsg{userID: userID, msg: msg}
}

// All access to clients happens on this goroutine.
func (ws *TalkManager) Run() {
	for {
		select {
		case client := <-ws.register:
			if old, ok := ws.clients[client.ID]; ok && old != nil && old != client.Socket {
				_ = old.Close()
			}
			ws.clients[client.ID] = client.Socket
			log.Printf("WS register user=%d", client.ID)

		case u := <-ws.unregister:
			if cur, ok := ws.clients[u.userID]; ok && cur == u.conn {
				_ = cur.Close()
				delete(ws.clients, u.userID)
				log.Printf("WS unregister user=%d", u.userID)
			}

		case dm := <-ws.direct:
			if conn, ok := ws.clients[dm.userID]; ok {
				_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := conn.WriteJSON(dm.msg); err != nil {
					log.Printf("direct send error to=%d: %v", dm.userID, err)
					_ = conn.Close()
					delete(ws.clients, dm.userID)
				}
			} else {
				log.Printf("direct skip: user=%d offline", dm.userID)
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin:       func(r *http.Request) bool { return true },
	ReadBufferSize:    1024,
	WriteBufferSize:   1024,
	EnableCompression: true,
}

// The first frame from the client must be { "userId": <int> }.
func (app *application) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}

	conn.SetReadLimit(readLimit)
	conn.SetReadDeadline(time.Now().Add(firstHelloDeadline))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readDeadline))
		return nil
	})

	var hello struct {
		UserID int `json:"userId"`
	}
	if err := conn.ReadJSON(&hello); err != nil || hello.UserID == 0 {
		log.Println("invalid hello payload:", err)
		_ = writeClose(conn, websocket.ClosePolicyViolation, "hello required")
		_ = conn.Close()
		return
	}
	conn.SetReadDeadline(time.Now().Add(readDeadline))

	app.wsManager.register <- wsClient{ID: hello.UserID, Socket: conn}

	go pingLoop(app.wsManager, conn, hello.UserID)
	go drainSocket(conn, hello.UserID, app.wsManager)
}

func pingLoop(ws *TalkManager, conn *websocket.Conn, uid int) {
	t := time.NewTicker(pingInterval)
	defer t.Stop()
	for range t.C {
		_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
		if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			_ = writeClose(conn, websocket.CloseGoingAway, "ping error")
			ws.unregister <- unreg{userID: uid, conn: conn}
			return
		}
	}
}

// drainSocket keeps the read side alive for pongs and close frames. Client
// frames other than the hello are ignored, messages go through POST
// /talks/message.
func drainSocket(conn *websocket.Conn, userID int, wsManager *TalkManager) {
	defer func() {
		wsManager.unregister <- unreg{userID: userID, conn: conn}
		_ = conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writeClose(conn *websocket.Conn, code int, reason string) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
	return conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(writeDeadline),
	)
}
