package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/mlfq-sim/sim"
	"github.com/inference-sim/mlfq-sim/sim/trace"
)

var serveAddr string // Listen address for the websocket server

var serveLimitFlags = defaultServeLimits()

// serveLimits caps the work a single websocket request may ask for.
type serveLimits struct {
	MaxMessageBytes int64 // largest client frame accepted
	MaxJobs         int
	MaxTimeline     int64 // worst-case interval count, see sim.MaxIntervals
}

func defaultServeLimits() serveLimits {
	return serveLimits{
		MaxMessageBytes: 1 << 20,
		MaxJobs:         1000,
		MaxTimeline:     100_000,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client message types
type ClientMessage struct {
	Type   string    `json:"type"` // "simulate"
	Jobs   []sim.Job `json:"jobs"`
	Quanta []int64   `json:"quanta"`
}

// Server message types
type ServerMessage struct {
	Type   string             `json:"type"` // "result" or "error"
	Error  string             `json:"error,omitempty"`
	Result *sim.MetricsOutput `json:"result,omitempty"`
}

// simulateMessage runs one simulation for a client request.
// Every request gets its own registry copy and Simulator. Requests whose
// timeline could exceed limits are rejected before any simulation work.
func simulateMessage(msg ClientMessage, limits serveLimits) ServerMessage {
	if msg.Type != "simulate" {
		return ServerMessage{Type: "error", Error: fmt.Sprintf("unknown message type %q", msg.Type)}
	}
	if len(msg.Jobs) > limits.MaxJobs {
		return ServerMessage{Type: "error", Error: fmt.Sprintf("%d jobs exceeds the limit of %d", len(msg.Jobs), limits.MaxJobs)}
	}
	quanta := sim.QuantumConfig(msg.Quanta)
	if err := quanta.Validate(); err != nil {
		return ServerMessage{Type: "error", Error: err.Error()}
	}
	if n := sim.MaxIntervals(msg.Jobs, quanta); n > limits.MaxTimeline {
		return ServerMessage{Type: "error", Error: fmt.Sprintf("request may produce %d timeline intervals, limit is %d", n, limits.MaxTimeline)}
	}
	registry, err := sim.NewJobRegistry(msg.Jobs)
	if err != nil {
		return ServerMessage{Type: "error", Error: err.Error()}
	}
	res, err := sim.Simulate(registry, quanta, trace.TraceConfig{})
	if err != nil {
		return ServerMessage{Type: "error", Error: err.Error()}
	}
	out := sim.NewMetricsOutput("", res)
	return ServerMessage{Type: "result", Result: &out}
}

// handleWebSocket answers each simulate message on the connection until the
// client disconnects or sends a frame larger than limits.MaxMessageBytes.
func handleWebSocket(w http.ResponseWriter, r *http.Request, limits serveLimits) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.Warnf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(limits.MaxMessageBytes)

	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logrus.Warnf("websocket read error: %v", err)
			}
			return
		}
		reply := simulateMessage(msg, limits)
		if reply.Type == "error" {
			logrus.Debugf("rejected request from %s: %s", r.RemoteAddr, reply.Error)
		}
		if err := conn.WriteJSON(reply); err != nil {
			logrus.Warnf("websocket write error: %v", err)
			return
		}
	}
}

func newServeMux(limits serveLimits) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, limits)
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// serveCmd exposes the simulator over a websocket endpoint
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve simulations over a websocket at /ws",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(logLevel)
		srv := &http.Server{
			Addr:              serveAddr,
			Handler:           newServeMux(serveLimitFlags),
			ReadHeaderTimeout: 10 * time.Second,
		}
		logrus.Infof("Listening on %s (max jobs %d, max timeline %d)", serveAddr, serveLimitFlags.MaxJobs, serveLimitFlags.MaxTimeline)
		if err := srv.ListenAndServe(); err != nil {
			logrus.Fatalf("server stopped: %v", err)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().IntVar(&serveLimitFlags.MaxJobs, "max-jobs", serveLimitFlags.MaxJobs, "Maximum jobs per simulate request")
	serveCmd.Flags().Int64Var(&serveLimitFlags.MaxTimeline, "max-timeline", serveLimitFlags.MaxTimeline, "Maximum worst-case timeline intervals per simulate request")
	serveCmd.Flags().Int64Var(&serveLimitFlags.MaxMessageBytes, "max-message-bytes", serveLimitFlags.MaxMessageBytes, "Maximum size of a client websocket message")
	rootCmd.AddCommand(serveCmd)
}
