package cmd

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/inference-sim/mlfq-sim/sim"
)

func dialTestServer(t *testing.T, limits serveLimits) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(newServeMux(limits))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestServe_Simulate_ReturnsTimelineAndStats(t *testing.T) {
	// GIVEN a connected client
	conn := dialTestServer(t, defaultServeLimits())

	// WHEN it requests a simulation
	require.NoError(t, conn.WriteJSON(ClientMessage{
		Type: "simulate",
		Jobs: []sim.Job{
			{ID: "A", ArrivalTime: 0, BurstTime: 10},
			{ID: "B", ArrivalTime: 1, BurstTime: 5},
			{ID: "C", ArrivalTime: 2, BurstTime: 8},
		},
		Quanta: []int64{5, 10, 20},
	}))

	// THEN the reply carries the result
	var reply ServerMessage
	require.NoError(t, conn.ReadJSON(&reply))
	require.Equal(t, "result", reply.Type, reply.Error)
	require.NotNil(t, reply.Result)
	assert.Equal(t, "0-5: A (Level 0)", reply.Result.Timeline[0])
	assert.Equal(t, int64(9), reply.Result.Stats[1].TurnaroundTime)
}

func TestServe_InvalidRequests_ReturnErrorsAndKeepConnection(t *testing.T) {
	conn := dialTestServer(t, defaultServeLimits())
	jobs := []sim.Job{{ID: "A", ArrivalTime: 0, BurstTime: 2}}

	for _, msg := range []ClientMessage{
		{Type: "simulate", Jobs: jobs, Quanta: nil},
		{Type: "simulate", Jobs: nil, Quanta: []int64{1}},
		{Type: "bogus"},
	} {
		require.NoError(t, conn.WriteJSON(msg))
		var reply ServerMessage
		require.NoError(t, conn.ReadJSON(&reply))
		assert.Equal(t, "error", reply.Type)
		assert.NotEmpty(t, reply.Error)
	}

	// AND a valid request on the same connection still succeeds
	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "simulate", Jobs: jobs, Quanta: []int64{1}}))
	var reply ServerMessage
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "result", reply.Type)
	assert.Equal(t, []string{"0-1: A (Level 0)", "1-2: A (Level 0)"}, reply.Result.Timeline)
}

func TestServe_Healthz(t *testing.T) {
	srv := httptest.NewServer(newServeMux(defaultServeLimits()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServe_OversizedRequest_Rejected(t *testing.T) {
	// GIVEN a connected client
	conn := dialTestServer(t, defaultServeLimits())

	// WHEN it asks for a run whose timeline would hold millions of intervals
	require.NoError(t, conn.WriteJSON(ClientMessage{
		Type:   "simulate",
		Jobs:   []sim.Job{{ID: "A", ArrivalTime: 5_000_000, BurstTime: 5_000_000}},
		Quanta: []int64{1},
	}))

	// THEN it is refused without simulating
	var reply ServerMessage
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "error", reply.Type)
	assert.Contains(t, reply.Error, "timeline intervals")
	assert.Nil(t, reply.Result)
}

func TestSimulateMessage_Limits(t *testing.T) {
	limits := serveLimits{MaxMessageBytes: 1 << 10, MaxJobs: 2, MaxTimeline: 10}
	three := []sim.Job{
		{ID: "A", ArrivalTime: 0, BurstTime: 1},
		{ID: "B", ArrivalTime: 0, BurstTime: 1},
		{ID: "C", ArrivalTime: 0, BurstTime: 1},
	}

	tests := []struct {
		name     string
		msg      ClientMessage
		wantType string
	}{
		{"too many jobs", ClientMessage{Type: "simulate", Jobs: three, Quanta: []int64{1}}, "error"},
		{"single job within limits", ClientMessage{Type: "simulate", Jobs: three[:1], Quanta: []int64{1}}, "result"},
		{"timeline exactly at limit", ClientMessage{Type: "simulate", Jobs: []sim.Job{{ID: "A", BurstTime: 10}}, Quanta: []int64{1}}, "result"},
		{"timeline one over limit", ClientMessage{Type: "simulate", Jobs: []sim.Job{{ID: "A", BurstTime: 11}}, Quanta: []int64{1}}, "error"},
		{"bound uses smallest quantum", ClientMessage{Type: "simulate", Jobs: []sim.Job{{ID: "A", BurstTime: 11}}, Quanta: []int64{1, 100}}, "error"},
		{"idle ticks count", ClientMessage{Type: "simulate", Jobs: []sim.Job{{ID: "A", ArrivalTime: 10, BurstTime: 1}}, Quanta: []int64{5}}, "error"},
		{"clock overflow", ClientMessage{Type: "simulate", Jobs: []sim.Job{
			{ID: "A", BurstTime: 1 << 62},
			{ID: "B", BurstTime: 1 << 62},
		}, Quanta: []int64{1 << 62}}, "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := simulateMessage(tt.msg, limits)
			assert.Equal(t, tt.wantType, reply.Type, reply.Error)
		})
	}
}

func TestServe_FrameOverReadLimit_ClosesConnection(t *testing.T) {
	conn := dialTestServer(t, serveLimits{MaxMessageBytes: 64, MaxJobs: 10, MaxTimeline: 100})

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "simulate", Jobs: []sim.Job{
		{ID: strings.Repeat("x", 128), BurstTime: 1},
	}, Quanta: []int64{1}}))

	var reply ServerMessage
	assert.Error(t, conn.ReadJSON(&reply))
}
