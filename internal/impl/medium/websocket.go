package medium

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/avalon-project/avalon/internal/batch"
	"github.com/avalon-project/avalon/internal/bundle"
	"github.com/avalon-project/avalon/internal/component/medium"
	"github.com/avalon-project/avalon/internal/docs"
)

func init() {
	must(bundle.AllMediums.Add(bundle.MediumSpec{
		Meta: bundle.Meta{
			Title: "websocket",
			Args: docs.ArgSpecs{
				{Dest: "websocket_listen", Type: docs.FieldString, Description: "address the websocket server listens on", Default: ":8088"},
				{Dest: "websocket_path", Type: docs.FieldString, Description: "upgrade path", Default: "/"},
			},
		},
		AutoSelectFlag: "websocket_listen",
		Constructor:    newWebsocket,
	}))
}

var websocketUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// websocketMedium runs its own HTTP server and pushes each batch to every
// currently connected client; clients that connect after a batch was sent
// simply miss it, matching the "push to connected clients" sink semantics.
type websocketMedium struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	server  *http.Server
}

func newWebsocket(attrs map[string]any) (medium.Type, error) {
	listen, _ := attrs["listen"].(string)
	if listen == "" {
		listen = ":8088"
	}
	path, _ := attrs["path"].(string)
	if path == "" {
		path = "/"
	}

	m := &websocketMedium{clients: map[*websocket.Conn]struct{}{}}
	mux := http.NewServeMux()
	mux.HandleFunc(path, m.handleUpgrade)
	m.server = &http.Server{Addr: listen, Handler: mux}
	go func() {
		if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("websocket medium: server stopped")
		}
	}()
	return m, nil
}

func (m *websocketMedium) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	conn, err := websocketUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	m.mu.Lock()
	m.clients[conn] = struct{}{}
	m.mu.Unlock()
}

func (m *websocketMedium) Write(ctx context.Context, b batch.Batch) error {
	if b.Empty() {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for conn := range m.clients {
		if err := conn.WriteMessage(websocket.TextMessage, b.Payload); err != nil {
			conn.Close()
			delete(m.clients, conn)
		}
	}
	return nil
}

func (m *websocketMedium) Close(ctx context.Context) error {
	m.mu.Lock()
	for conn := range m.clients {
		conn.Close()
	}
	m.mu.Unlock()
	return m.server.Shutdown(ctx)
}
