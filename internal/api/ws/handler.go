package ws

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/termhost/internal/api/middleware"
	"github.com/GriffinCanCode/termhost/internal/events"
	"github.com/GriffinCanCode/termhost/internal/infrastructure/logging"
	"github.com/GriffinCanCode/termhost/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/termhost/internal/service"
	"github.com/GriffinCanCode/termhost/internal/shared/id"
	"github.com/GriffinCanCode/termhost/internal/shared/types"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 1 << 20
)

// Executor runs tools; satisfied by *service.Registry.
type Executor interface {
	Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error)
}

var _ Executor = (*service.Registry)(nil)

// Handler manages WebSocket connections
type Handler struct {
	executor Executor
	hub      *events.Hub
	logger   *logging.Logger
	metrics  *monitoring.Metrics
	upgrader websocket.Upgrader
}

// NewHandler creates a new WebSocket handler. Until WithOrigins is called
// only same-host pages and non-browser clients may connect.
func NewHandler(executor Executor, hub *events.Hub, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{
		executor: executor,
		hub:      hub,
		logger:   logger.Component("ws"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     middleware.NewOriginPolicy(nil).CheckRequest,
		},
	}
}

// WithOrigins sets which browser origins may open a connection. Others are
// refused with 403 before the upgrade.
func (h *Handler) WithOrigins(policy *middleware.OriginPolicy) *Handler {
	h.upgrader.CheckOrigin = policy.CheckRequest
	return h
}

// WithMetrics attaches a metrics collector
func (h *Handler) WithMetrics(metrics *monitoring.Metrics) *Handler {
	h.metrics = metrics
	return h
}

// HandleConnection upgrades the request and serves the connection until
// the client goes away.
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed",
			zap.String("origin", c.GetHeader("Origin")),
			zap.Error(err),
		)
		return
	}

	cl := newClient(conn, h)
	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}

	cl.log.Info("Client connected", zap.String("remote", conn.RemoteAddr().String()))
	defer cl.log.Info("Client disconnected")

	cl.serve(c.Request.Context())
}

// client is one websocket connection. Replies and events share the socket,
// so every write goes through writeMu.
type client struct {
	id      id.ConnectionID
	conn    *websocket.Conn
	handler *Handler
	log     *logging.Logger

	writeMu sync.Mutex

	subsMu sync.Mutex
	subs   map[string]*events.Subscription
	wg     sync.WaitGroup
}

func newClient(conn *websocket.Conn, h *Handler) *client {
	connID := id.NewConnectionID()
	return &client{
		id:      connID,
		conn:    conn,
		handler: h,
		log:     &logging.Logger{Logger: h.logger.With(zap.String("connection_id", connID.String()))},
		subs:    make(map[string]*events.Subscription),
	}
}

func (cl *client) serve(ctx context.Context) {
	defer cl.shutdown()

	cl.conn.SetReadLimit(maxMessageSize)

	cl.send(types.WSReply{
		Type:    types.WSSystem,
		Message: "Connected to terminal host",
		Data:    map[string]interface{}{"connection_id": cl.id.String()},
	})

	for {
		_, raw, err := cl.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				cl.log.Warn("WebSocket read error", zap.Error(err))
			}
			return
		}

		var msg types.WSMessage
		if err := sonic.Unmarshal(raw, &msg); err != nil {
			cl.record("in", "invalid")
			cl.sendError("", "invalid message: "+err.Error())
			continue
		}
		cl.record("in", msg.Type)

		// Handled inline so one client's invocations keep their order.
		switch msg.Type {
		case types.WSInvoke:
			cl.invoke(ctx, msg)
		case types.WSListen:
			cl.listen(msg)
		case types.WSUnlisten:
			cl.unlisten(msg)
		case types.WSPing:
			cl.send(types.WSReply{Type: types.WSPong})
		default:
			cl.sendError(msg.ID, "unknown message type: "+msg.Type)
		}
	}
}

func (cl *client) invoke(ctx context.Context, msg types.WSMessage) {
	if msg.Tool == "" {
		cl.sendError(msg.ID, "tool is required")
		return
	}

	connID := cl.id.String()
	appCtx := &types.Context{ConnectionID: &connID}
	if msg.ID != "" {
		reqID := msg.ID
		appCtx.RequestID = &reqID
	}

	result, err := cl.handler.executor.Execute(ctx, msg.Tool, msg.Params, appCtx)
	ok := err == nil && result != nil && result.Success

	reply := types.WSReply{Type: types.WSResult, ID: msg.ID, Success: &ok}
	switch {
	case err != nil:
		reply.Error = err.Error()
	case result == nil:
		reply.Error = "tool returned no result"
	default:
		reply.Data = result.Data
		if result.Error != nil {
			reply.Error = *result.Error
		}
	}
	cl.send(reply)
}

func (cl *client) listen(msg types.WSMessage) {
	if msg.Topic == "" {
		cl.sendError(msg.ID, "topic is required")
		return
	}

	cl.subsMu.Lock()
	if _, exists := cl.subs[msg.Topic]; exists {
		cl.subsMu.Unlock()
		return
	}
	sub := cl.handler.hub.Subscribe(msg.Topic)
	cl.subs[msg.Topic] = sub
	cl.subsMu.Unlock()

	cl.wg.Add(1)
	go cl.forward(sub)

	cl.log.Debug("Listening", zap.String("topic", msg.Topic))
}

func (cl *client) unlisten(msg types.WSMessage) {
	cl.subsMu.Lock()
	sub, ok := cl.subs[msg.Topic]
	delete(cl.subs, msg.Topic)
	cl.subsMu.Unlock()

	if ok {
		sub.Close()
		cl.log.Debug("Stopped listening", zap.String("topic", msg.Topic))
	}
}

// forward relays one subscription to the socket until it is closed.
func (cl *client) forward(sub *events.Subscription) {
	defer cl.wg.Done()
	for ev := range sub.Events() {
		if err := cl.send(types.WSReply{Type: types.WSEvent, Topic: ev.Topic, Payload: ev.Payload}); err != nil {
			return
		}
	}
}

// shutdown ends every subscription and waits for the forwarders.
func (cl *client) shutdown() {
	cl.subsMu.Lock()
	subs := cl.subs
	cl.subs = make(map[string]*events.Subscription)
	cl.subsMu.Unlock()

	for _, sub := range subs {
		sub.Close()
	}
	cl.conn.Close()
	cl.wg.Wait()
}

func (cl *client) send(reply types.WSReply) error {
	data, err := sonic.Marshal(reply)
	if err != nil {
		cl.log.Error("Failed to encode reply", zap.String("type", reply.Type), zap.Error(err))
		return err
	}

	cl.writeMu.Lock()
	defer cl.writeMu.Unlock()

	cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := cl.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		if !errors.Is(err, websocket.ErrCloseSent) {
			cl.log.Debug("WebSocket write failed", zap.Error(err))
		}
		return err
	}

	cl.record("out", reply.Type)
	return nil
}

func (cl *client) sendError(requestID, message string) {
	cl.send(types.WSReply{Type: types.WSError, ID: requestID, Message: message})
}

func (cl *client) record(direction, msgType string) {
	if cl.handler.metrics != nil {
		cl.handler.metrics.RecordWSMessage(direction, msgType)
	}
}
