package live

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"harvestsim/internal/model"
	"harvestsim/internal/popdyn"
	"harvestsim/internal/protocol"
)

const (
	handshakeTimeout = 5 * time.Second
	writeTimeout     = 10 * time.Second
)

// Server exposes a Loop over websocket: a subscribe handshake, a stream of
// per-step state frames, and control frames for harvest, run state, and beat
// rate.
type Server struct {
	loop *Loop
	log  *log.Logger

	upgrader websocket.Upgrader
}

func NewServer(loop *Loop, logger *log.Logger) *Server {
	return &Server{
		loop: loop,
		log:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // local monitor
		},
	}
}

func (s *Server) WSHandler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		// Handshake: the first frame must be a subscribe.
		_ = conn.SetReadDeadline(time.Now().Add(handshakeTimeout))
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if err := protocol.ValidateSubscribe(raw); err != nil {
			s.closePolicy(conn, "bad subscribe")
			return
		}
		_ = conn.SetReadDeadline(time.Time{})

		sid := uuid.NewString()
		points := make(chan model.Point, 256)
		acks := make(chan any, 16)

		s.loop.Attach(sid, points)
		defer s.loop.Detach(sid)
		s.log.Printf("session %s subscribed", sid)

		hello := protocol.HelloMsg{
			Type:            protocol.TypeHello,
			ProtocolVersion: protocol.Version,
			SessionID:       sid,
			Specs:           popdyn.Specs(),
			History:         s.loop.Runner().History(),
			Status:          s.status(),
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(hello); err != nil {
			return
		}

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// Single writer: state frames and control acks share one goroutine.
		writeDone := make(chan struct{})
		go func() {
			defer close(writeDone)
			for {
				select {
				case <-ctx.Done():
					return
				case pt := <-points:
					state := protocol.StateMsg{
						Type:   protocol.TypeState,
						Year:   pt.Year,
						Stages: pt.Stages,
						Total:  pt.Stages.Total(),
					}
					_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
					if err := conn.WriteJSON(state); err != nil {
						return
					}
				case msg := <-acks:
					_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
					if err := conn.WriteJSON(msg); err != nil {
						return
					}
				}
			}
		}()

		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				cancel()
				<-writeDone
				s.log.Printf("session %s closed: %v", sid, err)
				return
			}
			s.handleControl(raw, acks)
		}
	}
}

func (s *Server) handleControl(raw []byte, acks chan<- any) {
	if err := protocol.ValidateControl(raw); err != nil {
		s.ack(acks, protocol.NewError(err.Error()))
		return
	}
	var msg protocol.ControlMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		s.ack(acks, protocol.NewError(err.Error()))
		return
	}

	switch msg.Type {
	case protocol.TypeSetMode:
		mode, err := popdyn.ParseMode(msg.Mode)
		if err == nil {
			err = s.loop.SetMode(mode)
		}
		if err != nil {
			s.ack(acks, protocol.NewError(err.Error()))
			return
		}
	case protocol.TypeSetHarvest:
		s.loop.SetParams(popdyn.Params(msg.Harvest))
	case protocol.TypeToggleRun:
		s.loop.Runner().ToggleRun()
	case protocol.TypeReset:
		s.loop.Runner().Reset()
	case protocol.TypeSetRate:
		if err := s.loop.SetRate(msg.RateHz); err != nil {
			s.ack(acks, protocol.NewError(err.Error()))
			return
		}
	}
	s.ack(acks, s.status())
}

func (s *Server) ack(acks chan<- any, msg any) {
	select {
	case acks <- msg:
	default:
	}
}

func (s *Server) status() protocol.StatusMsg {
	h := s.loop.Harvest()
	snap := s.loop.Runner().Snapshot()
	return protocol.StatusMsg{
		Type:    protocol.TypeStatus,
		Running: snap.Running,
		Year:    snap.Year,
		Mode:    h.Mode.String(),
		Harvest: [3]float64(h.Params),
		RateHz:  s.loop.RateHz(),
	}
}

func (s *Server) closePolicy(conn *websocket.Conn, reason string) {
	deadline := time.Now().Add(time.Second)
	_ = conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason),
		deadline,
	)
}
