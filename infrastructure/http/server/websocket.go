package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"qkd-ledger/domain"
	"qkd-ledger/domain/event"
	"qkd-ledger/sink"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	frameHistory     = "history"
	frameNewMessage  = "new_message"
	frameSendMessage = "send_message"
	frameError       = "error"
)

// Frame is the envelope of every websocket message, both ways.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func newFrame(name string, data any) (Frame, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Frame{}, err
	}
	return Frame{Event: name, Data: raw}, nil
}

// connect upgrades the request and keeps the peer registered until it leaves.
// The peer first receives the history, then one new_message frame per append.
// Inbound send_message frames are submitted like POST /send.
func (s *ChatServer) connect(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("Websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	if s.observer != nil {
		s.observer.PeerConnected()
		defer s.observer.PeerDisconnected()
	}
	peerID := uuid.NewString()
	peerSink := sink.NewPeerSink(s.connectionBufferSize)
	s.chatService.JoinPeer(peerID, peerSink)
	defer s.chatService.LeavePeer(peerID)
	s.log.Debug(fmt.Sprintf("Peer %s connected", peerID))

	if err := s.writeFrame(conn, frameHistory, s.chatService.Messages()); err != nil {
		s.log.Warn("Failed to send history", "peer_id", peerID, "error", err)
		return
	}

	// Only this goroutine writes to conn, the reader hands rejections over
	rejections := make(chan string, s.connectionBufferSize)
	closed := make(chan struct{})
	go s.readFrames(conn, peerID, rejections, closed)

	for {
		select {
		case <-r.Context().Done():
			return
		case <-closed:
			s.log.Debug(fmt.Sprintf("Peer %s disconnected", peerID))
			return
		case reason := <-rejections:
			if err := s.writeFrame(conn, frameError, errorResponse{Error: reason}); err != nil {
				return
			}
		case evt := <-peerSink.Events:
			appended, ok := evt.(event.TransactionAppended)
			if !ok {
				continue
			}
			if err := s.writeFrame(conn, frameNewMessage, appended.Record().ToMessage()); err != nil {
				s.log.Error("failed to push event to peer", "peer_id", peerID, "error", err)
				return
			}
		}
	}
}

func (s *ChatServer) readFrames(conn *websocket.Conn, peerID string, rejections chan<- string, closed chan<- struct{}) {
	defer close(closed)
	for {
		var frame Frame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Warn("Websocket read failed", "peer_id", peerID, "error", err)
			}
			return
		}
		if frame.Event != frameSendMessage {
			continue
		}
		var cmd domain.SendMessageCommand
		if err := json.Unmarshal(frame.Data, &cmd); err != nil {
			s.reject(rejections, "malformed send_message payload")
			continue
		}
		if _, err := s.chatService.SendMessage(cmd); err != nil {
			s.reject(rejections, err.Error())
		}
	}
}

func (s *ChatServer) reject(rejections chan<- string, reason string) {
	select {
	case rejections <- reason:
	default:
	}
}

func (s *ChatServer) writeFrame(conn *websocket.Conn, name string, data any) error {
	frame, err := newFrame(name, data)
	if err != nil {
		return err
	}
	return conn.WriteJSON(frame)
}
