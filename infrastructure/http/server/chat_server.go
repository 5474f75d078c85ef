package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"qkd-ledger/domain"
	"qkd-ledger/errors"
	"qkd-ledger/services"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
)

// PeerObserver is told when websocket peers come and go.
type PeerObserver interface {
	PeerConnected()
	PeerDisconnected()
}

type ChatServer struct {
	chatService          services.IChatService
	log                  *slog.Logger
	connectionBufferSize int
	metrics              http.Handler
	observer             PeerObserver
	upgrader             websocket.Upgrader
}

func NewChatServer(log *slog.Logger, chatService services.IChatService, connectionBufferSize int,
	metrics http.Handler, observer PeerObserver) *ChatServer {
	return &ChatServer{
		chatService:          chatService,
		log:                  log,
		connectionBufferSize: connectionBufferSize,
		metrics:              metrics,
		observer:             observer,
		upgrader: websocket.Upgrader{
			// Origins are enforced by the CORS layer
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (s *ChatServer) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/", s.status).Methods(http.MethodGet)
	router.HandleFunc("/messages", s.messages).Methods(http.MethodGet)
	router.HandleFunc("/send", s.send).Methods(http.MethodPost)
	router.HandleFunc("/transactions", s.transactions).Methods(http.MethodGet)
	router.HandleFunc("/transactions/{index:[0-9]+}", s.transaction).Methods(http.MethodGet)
	router.HandleFunc("/transactions/{index:[0-9]+}/audit", s.audit).Methods(http.MethodGet)
	router.HandleFunc("/rekey", s.rekey).Methods(http.MethodPost)
	router.HandleFunc("/blockchain/graph", s.graph).Methods(http.MethodGet)
	router.HandleFunc("/blockchain/log", s.exportLog).Methods(http.MethodGet)
	router.HandleFunc("/search", s.search).Methods(http.MethodGet)
	router.HandleFunc("/ws", s.connect)
	if s.metrics != nil {
		router.Handle("/metrics", s.metrics).Methods(http.MethodGet)
	}
	return router
}

// Handler wraps the router with CORS for the given origins.
func (s *ChatServer) Handler(allowedOrigins []string) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(s.Router())
}

func (s *ChatServer) status(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.chatService.Status())
}

func (s *ChatServer) messages(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.chatService.Messages())
}

type sendResponse struct {
	Status      string                   `json:"status"`
	Transaction domain.TransactionRecord `json:"transaction"`
}

func (s *ChatServer) send(w http.ResponseWriter, r *http.Request) {
	var cmd domain.SendMessageCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}
	record, err := s.chatService.SendMessage(cmd)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sendResponse{Status: "success", Transaction: record})
}

func (s *ChatServer) transactions(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.chatService.Transactions())
}

func (s *ChatServer) transaction(w http.ResponseWriter, r *http.Request) {
	index, _ := strconv.Atoi(mux.Vars(r)["index"])
	record, err := s.chatService.Transaction(index)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, record)
}

func (s *ChatServer) audit(w http.ResponseWriter, r *http.Request) {
	index, _ := strconv.Atoi(mux.Vars(r)["index"])
	audit, err := s.chatService.Audit(index)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, audit)
}

type rekeyRequest struct {
	Bits int `json:"bits"`
}

type rekeyResponse struct {
	SecretLength int `json:"secret_length"`
}

func (s *ChatServer) rekey(w http.ResponseWriter, r *http.Request) {
	var request rekeyRequest
	// An empty body keeps the configured number of bits
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil && err != io.EOF {
		s.writeError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}
	length, err := s.chatService.Rekey(request.Bits)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rekeyResponse{SecretLength: length})
}

func (s *ChatServer) graph(w http.ResponseWriter, _ *http.Request) {
	graph := s.chatService.Graph()
	if graph == "" {
		s.writeError(w, http.StatusNotFound, "No visualization yet")
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	_, _ = io.WriteString(w, graph)
}

func (s *ChatServer) exportLog(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, s.chatService.Log())
}

func (s *ChatServer) search(w http.ResponseWriter, r *http.Request) {
	records, err := s.chatService.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, records)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *ChatServer) fail(w http.ResponseWriter, err error) {
	status := errors.MapToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.log.Error("Request failed", "error", err)
	}
	s.writeError(w, status, err.Error())
}

func (s *ChatServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}

func (s *ChatServer) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Warn("Failed to encode response", "error", err)
	}
}
