// Command server hosts a small collaborative-editing demo: one
// Document[rune] per named session, driven over HTTP and WebSocket. It
// exercises LocalInsert, LocalDelete, Integrate (via MergeInto) and
// GetContent end to end, the same role the teacher's cmd/server plays for
// its single hardcoded oplog.
package main

import (
	"encoding/json"
	"flag"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/textloom/seqcrdt/internal/config"
	"github.com/textloom/seqcrdt/internal/logging"
	"github.com/textloom/seqcrdt/seq"
	"github.com/textloom/seqcrdt/seq/algorithm"
)

// session is one collaborative document. primary is the authoritative
// replica that every LocalInsert/LocalDelete lands on; each connected
// client gets its own mirror replica that only ever advances via
// MergeInto, so every broadcast genuinely exercises remote Integrate
// rather than just re-serving the primary's content.
type session struct {
	mu      sync.Mutex
	algo    seq.Algorithm[rune]
	primary *seq.Document[rune]
	mirrors map[*websocket.Conn]*seq.Document[rune]
}

func newSession(algo seq.Algorithm[rune]) *session {
	return &session{
		algo:    algo,
		primary: seq.NewDoc[rune](),
		mirrors: make(map[*websocket.Conn]*seq.Document[rune]),
	}
}

func (s *session) content() string {
	return string(seq.GetContent(s.primary))
}

func (s *session) insert(agent string, pos int, text string) error {
	for _, r := range text {
		if _, err := s.algo.LocalInsert(s.primary, agent, pos, r); err != nil {
			return err
		}
		pos++
	}
	return nil
}

func (s *session) delete(pos, n int) error {
	for i := 0; i < n; i++ {
		if err := seq.LocalDelete(s.primary, pos); err != nil {
			return err
		}
	}
	return nil
}

// syncMirrors folds the primary's latest state into every connected
// client's mirror and returns, per connection, the resulting content.
func (s *session) syncMirrors() map[*websocket.Conn]string {
	out := make(map[*websocket.Conn]string, len(s.mirrors))
	for conn, mirror := range s.mirrors {
		if err := seq.MergeInto(mirror, s.primary, s.algo); err != nil {
			slog.Error("mirror merge failed", "error", err)
			continue
		}
		out[conn] = string(seq.GetContent(mirror))
	}
	return out
}

type Server struct {
	mu       sync.Mutex
	sessions map[string]*session
	upgrader websocket.Upgrader
	algoName string
}

func NewServer(algoName string) *Server {
	return &Server{
		sessions: make(map[string]*session),
		algoName: algoName,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (s *Server) getSession(id string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		return sess
	}
	algo, ok := algorithm.Resolve[rune](s.algoName)
	if !ok {
		algo = algorithm.YjsMod[rune]()
	}
	sess := newSession(algo)
	s.sessions[id] = sess
	return sess
}

type editRequest struct {
	Agent string `json:"agent"`
	Pos   int    `json:"pos"`
	Text  string `json:"text,omitempty"`
	Len   int    `json:"len,omitempty"`
}

type contentResponse struct {
	Content string `json:"content"`
}

func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	docID := mux.Vars(r)["id"]
	sess := s.getSession(docID)

	sess.mu.Lock()
	err := sess.insert(req.Agent, req.Pos, req.Text)
	text := sess.content()
	sess.mu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}

	json.NewEncoder(w).Encode(contentResponse{Content: text})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	docID := mux.Vars(r)["id"]
	sess := s.getSession(docID)

	sess.mu.Lock()
	err := sess.delete(req.Pos, req.Len)
	text := sess.content()
	sess.mu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}

	json.NewEncoder(w).Encode(contentResponse{Content: text})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	docID := mux.Vars(r)["id"]
	sess := s.getSession(docID)
	sess.mu.Lock()
	text := sess.content()
	sess.mu.Unlock()
	json.NewEncoder(w).Encode(contentResponse{Content: text})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	kind, _ := seq.KindOf(err)
	slog.Error("edit failed", "kind", kind, "error", err)
	http.Error(w, err.Error(), http.StatusUnprocessableEntity)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	docID := mux.Vars(r)["id"]
	sess := s.getSession(docID)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	clientID := uuid.NewString()

	sess.mu.Lock()
	sess.mirrors[conn] = seq.NewDoc[rune]()
	sess.mu.Unlock()

	slog.Info("client connected", "doc", docID, "client", clientID)

	for {
		var req editRequest
		if err := conn.ReadJSON(&req); err != nil {
			break
		}
		if req.Agent == "" {
			req.Agent = clientID
		}

		sess.mu.Lock()
		var applyErr error
		if req.Text != "" {
			applyErr = sess.insert(req.Agent, req.Pos, req.Text)
		} else {
			applyErr = sess.delete(req.Pos, req.Len)
		}
		var results map[*websocket.Conn]string
		if applyErr == nil {
			results = sess.syncMirrors()
		}
		sess.mu.Unlock()

		if applyErr != nil {
			kind, _ := seq.KindOf(applyErr)
			conn.WriteJSON(map[string]string{"error": string(kind)})
			continue
		}
		for c, content := range results {
			c.WriteJSON(contentResponse{Content: content})
		}
	}

	sess.mu.Lock()
	delete(sess.mirrors, conn)
	sess.mu.Unlock()
	slog.Info("client disconnected", "doc", docID, "client", clientID)
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	addr := flag.String("addr", ":8080", "listen address")
	algoName := flag.String("algorithm", "yjsMod", "yjsMod, yjs, automerge or sync9")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Read(*configPath)
		if err != nil {
			panic(err)
		}
		cfg = loaded
	}
	if *algoName != "yjsMod" {
		cfg.Algorithm = *algoName
	}

	logging.InitDefault(cfg.Node.ID)

	server := NewServer(cfg.Algorithm)

	r := mux.NewRouter()
	r.HandleFunc("/healthz", server.handleHealthz).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{id}", server.handleGet).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{id}/insert", server.handleInsert).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{id}/delete", server.handleDelete).Methods(http.MethodPost)
	r.HandleFunc("/ws/{id}", server.handleWebSocket)

	slog.Info("server starting", "addr", *addr, "algorithm", cfg.Algorithm)
	if err := http.ListenAndServe(*addr, r); err != nil {
		slog.Error("server exited", "error", err)
	}
}
