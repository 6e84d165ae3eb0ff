package stream

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"weather-screen/internal/domain/usecase/screen"
	"weather-screen/pkg/log"
)

// Config controls keepalive of stream connections
type Config struct {
	PingInterval time.Duration
	WriteTimeout time.Duration
}

// ScreenStream pushes every view state change to websocket readers
type ScreenStream struct {
	api      *echo.Group
	useCase  screen.UseCase
	upgrader websocket.Upgrader
	config   Config
}

func NewScreenStream(api *echo.Group, useCase screen.UseCase, config Config) *ScreenStream {
	if config.PingInterval <= 0 {
		config.PingInterval = 30 * time.Second
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = 10 * time.Second
	}

	return &ScreenStream{
		api:     api,
		useCase: useCase,
		config:  config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// InitStreamRoutes initializes the stream route
func (s *ScreenStream) InitStreamRoutes() {
	s.api.GET("/screen/stream", s.Stream)
}

// Stream godoc
// @Summary Stream screen states
// @Description Websocket sending the current view state on connect and then every change
// @Tags screen
// @Success 101 {object} model.ViewState "Switching protocols"
// @Router /screen/stream [get]
func (s *ScreenStream) Stream(c echo.Context) error {
	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// The upgrader has already answered the client.
		log.Warn("Websocket upgrade failed", zap.Error(err))
		return nil
	}
	defer func() { _ = conn.Close() }()

	updates, unsubscribe := s.useCase.Subscribe()
	defer unsubscribe()

	closed := make(chan struct{})
	go s.readLoop(conn, closed)

	if err := s.write(conn, s.useCase.State()); err != nil {
		return nil
	}

	ticker := time.NewTicker(s.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case state, ok := <-updates:
			if !ok {
				s.closeNormally(conn)
				return nil
			}
			if err := s.write(conn, state); err != nil {
				log.Debug("Websocket write failed", zap.Error(err))
				return nil
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(s.config.WriteTimeout)); err != nil {
				return nil
			}
		case <-closed:
			return nil
		}
	}
}

// readLoop drains client frames so control messages are processed, and reports disconnects
func (s *ScreenStream) readLoop(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)
	conn.SetReadLimit(512)
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

func (s *ScreenStream) write(conn *websocket.Conn, value any) error {
	if err := conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(value)
}

func (s *ScreenStream) closeNormally(conn *websocket.Conn) {
	message := websocket.FormatCloseMessage(websocket.CloseGoingAway, "screen closed")
	_ = conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(s.config.WriteTimeout))
}
