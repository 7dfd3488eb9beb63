package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rogerio-castellano/storefront-api/internal/apperr"
	"github.com/rogerio-castellano/storefront-api/internal/auth"
	"github.com/rogerio-castellano/storefront-api/internal/catalog"
	"github.com/rogerio-castellano/storefront-api/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendBuffer     = 16
)

// Catalog is the part of the catalog service the hub needs to serve client
// commands.
type Catalog interface {
	All(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, p models.Product) (models.Product, error)
	Delete(ctx context.Context, id string) error
}

type client struct {
	conn     *websocket.Conn
	send     chan []byte
	// canWrite allows addProduct and deleteProduct.
	canWrite bool
}

// Hub keeps the connected websocket clients and broadcasts product updates
// to all of them.
type Hub struct {
	catalog  Catalog
	upgrader websocket.Upgrader
	log      *slog.Logger
	// onChange is told about changes made through websocket commands.
	onChange Notifier
	// issuer, when set, limits write commands to admin tokens.
	issuer   *auth.Issuer

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

type HubOption func(*Hub)

// WithIssuer makes product commands require an admin access token, sent as
// a bearer header or the access_token query parameter of the handshake.
// Connections without a token only receive updates.
func WithIssuer(issuer *auth.Issuer) HubOption {
	return func(h *Hub) { h.issuer = issuer }
}

func NewHub(cat Catalog, log *slog.Logger, opts ...HubOption) *Hub {
	if log == nil {
		log = slog.Default()
	}
	h := &Hub{
		catalog: cat,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		log:     log,
		clients: map[*client]struct{}{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// OnChange registers a notifier for writes made by websocket clients, e.g.
// the Kafka publisher.
func (h *Hub) OnChange(n Notifier) {
	h.onChange = n
}

// ProductsChanged broadcasts the product list to every client.
func (h *Hub) ProductsChanged(_ context.Context, products []models.Product) error {
	msg, err := newProductsEvent(products)
	if err != nil {
		return err
	}
	h.broadcast(msg)
	return nil
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) broadcast(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			// Slow consumer; drop it rather than block the writer.
			h.removeLocked(c)
		}
	}
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Run blocks until ctx is done and then disconnects every client.
func (h *Hub) Run(ctx context.Context) error {
	<-ctx.Done()
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		h.removeLocked(c)
	}
	return nil
}

// ServeHTTP upgrades the request, sends the current product list and then
// serves the client's commands until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	canWrite, ok := h.authorize(r)
	if !ok {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer), canWrite: canWrite}
	if !h.register(c) {
		conn.Close()
		return
	}
	h.log.Info("websocket client connected", "remote", r.RemoteAddr)

	go h.writePump(c)

	ctx := context.WithoutCancel(r.Context())
	if products, err := h.catalog.All(ctx); err != nil {
		h.reply(c, newErrorEvent(apperr.Message(err)))
	} else if msg, err := newProductsEvent(products); err == nil {
		h.reply(c, msg)
	}

	h.readPump(ctx, c)
	h.log.Info("websocket client disconnected", "remote", r.RemoteAddr)
}

// authorize reports whether the connection may send write commands. ok is
// false when a token is present but does not verify.
func (h *Hub) authorize(r *http.Request) (canWrite, ok bool) {
	if h.issuer == nil {
		return true, true
	}
	token := auth.BearerToken(r, true)
	if token == "" {
		return false, true
	}
	claims, err := h.issuer.ParseToken(token)
	if err != nil {
		return false, false
	}
	return claims.Role == models.RoleAdmin, true
}

func (h *Hub) reply(c *client, msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	select {
	case c.send <- msg:
	default:
		h.removeLocked(c)
	}
}

func (h *Hub) readPump(ctx context.Context, c *client) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn("websocket read failed", "error", err)
			}
			return
		}
		h.handle(ctx, c, data)
	}
}

func (h *Hub) handle(ctx context.Context, c *client, data []byte) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		h.reply(c, newErrorEvent("malformed message"))
		return
	}

	if (ev.Type == EventAddProduct || ev.Type == EventDeleteProduct) && !c.canWrite {
		h.reply(c, newErrorEvent("admin role required"))
		return
	}

	var err error
	switch ev.Type {
	case EventAddProduct:
		var in catalog.ProductInput
		if err = json.Unmarshal(ev.Payload, &in); err != nil {
			h.reply(c, newErrorEvent("malformed product"))
			return
		}
		_, err = h.catalog.Create(ctx, in.Product())
	case EventDeleteProduct:
		var id string
		if err = json.Unmarshal(ev.Payload, &id); err != nil {
			h.reply(c, newErrorEvent("malformed product id"))
			return
		}
		err = h.catalog.Delete(ctx, id)
	default:
		h.reply(c, newErrorEvent("unknown message type "+ev.Type))
		return
	}
	if err != nil {
		h.reply(c, newErrorEvent(apperr.Message(err)))
		return
	}

	products, err := h.catalog.All(ctx)
	if err != nil {
		h.reply(c, newErrorEvent(apperr.Message(err)))
		return
	}
	_ = h.ProductsChanged(ctx, products)
	if h.onChange != nil {
		if err := h.onChange.ProductsChanged(ctx, products); err != nil {
			h.log.Warn("product change notification failed", "error", err)
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
