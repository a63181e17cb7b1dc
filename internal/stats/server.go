package stats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"runtime/pprof"
	"time"

	// Enable profiling endpoints when the caller opts in.
	_ "net/http/pprof"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"

	"github.com/filberthamijoyo/cachesim/internal/cache"
)

// LevelSnapshot is one level's statistics as served by the HTTP
// endpoint, identical in content to the stdout statistics block.
type LevelSnapshot struct {
	Name        string `json:"name"`
	NumRead     uint32 `json:"numRead"`
	NumWrite    uint32 `json:"numWrite"`
	NumHit      uint32 `json:"numHit"`
	NumMiss     uint32 `json:"numMiss"`
	TotalCycles uint64 `json:"totalCycles"`
}

// Snapshot walks the chain from top down and captures every level's
// counters.
func Snapshot(top *cache.Level) []LevelSnapshot {
	var snaps []LevelSnapshot

	for level := top; level != nil; level = level.Lower() {
		s := level.Stats()
		snaps = append(snaps, LevelSnapshot{
			Name:        level.Name,
			NumRead:     s.NumRead,
			NumWrite:    s.NumWrite,
			NumHit:      s.NumHit,
			NumMiss:     s.NumMiss,
			TotalCycles: s.TotalCycles,
		})
	}

	return snaps
}

// Server exposes a completed run's statistics over HTTP. It reads the
// chain only after the trace has been fully consumed, so it never
// contends with the single-threaded simulation core.
type Server struct {
	top       *cache.Level
	profiling bool
}

// NewServer wraps top for serving. profiling additionally exposes the
// standard Go pprof endpoints under /debug/pprof/.
func NewServer(top *cache.Level, profiling bool) *Server {
	return &Server{top: top, profiling: profiling}
}

// Handler returns the server's route table.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/stats", s.stats)

	if s.profiling {
		r.HandleFunc("/profile", s.collectProfile)
		r.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)
	}

	return r
}

// Start listens on addr (":0" picks a random port) and serves in the
// background, returning the URL the listener actually bound.
func (s *Server) Start(addr string) (string, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("stats: listening on %q: %w", addr, err)
	}

	go func() {
		_ = http.Serve(listener, s.Handler())
	}()

	return fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port), nil
}

// collectProfile samples the process for one second and returns the
// parsed CPU profile as JSON.
func (s *Server) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	if err := pprof.StartCPUProfile(buf); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	time.Sleep(time.Second)
	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(prof); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) stats(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(Snapshot(s.top)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
