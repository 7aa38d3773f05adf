// Package integration runs the HTTP, WebSocket and SSE surfaces against a
// real simulation.
package integration

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apirest "github.com/kasuganosora/topdownrpg/sim/api/rest"
	"github.com/kasuganosora/topdownrpg/sim/api/sse"
	apows "github.com/kasuganosora/topdownrpg/sim/api/ws"
	"github.com/kasuganosora/topdownrpg/sim/broadcast"
	"github.com/kasuganosora/topdownrpg/sim/cache"
	"github.com/kasuganosora/topdownrpg/sim/config"
	"github.com/kasuganosora/topdownrpg/sim/game/world"
	"github.com/kasuganosora/topdownrpg/sim/journal"
	mw "github.com/kasuganosora/topdownrpg/sim/middleware"
	"github.com/kasuganosora/topdownrpg/sim/resource"
	"github.com/kasuganosora/topdownrpg/sim/scheduler"
	"github.com/kasuganosora/topdownrpg/sim/testutil"
)

// TestServer wraps a real HTTP server with every subsystem wired the way
// main.go wires them. The room is not stepped by the scheduler: tests call
// Step so every run is identical.
type TestServer struct {
	Room      *world.Room
	Cache     cache.Cache
	PubSub    cache.PubSub
	Publisher *broadcast.Publisher
	Journal   *journal.Service
	Hub       *apows.Hub
	Sched     *scheduler.Scheduler
	Server    *httptest.Server
	URL       string // http://127.0.0.1:<port>
	WSURL     string // ws://127.0.0.1:<port>/ws
}

// NewTestServer creates a fully wired server around content.
func NewTestServer(t *testing.T, content *resource.Content) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	sim, err := world.New(content, world.DefaultOptions(), logger)
	require.NoError(t, err)
	room := world.NewRoom(sim, 1, logger)

	c, pubsub := testutil.SetupTestCache(t)
	pub := broadcast.New(c, pubsub, 50, logger)
	room.OnSnapshot(pub.Snapshot)
	room.OnEvents(pub.Events)

	db := testutil.SetupTestDB(t)
	j := journal.New(db, config.JournalConfig{FlushEvery: 20 * time.Millisecond}, logger)
	room.OnEvents(j.Record)

	sched := scheduler.New(logger)

	ctx, cancel := context.WithCancel(context.Background())
	hub := apows.NewHub(logger)
	require.NoError(t, hub.Relay(ctx, pubsub, map[string]string{
		broadcast.SnapshotChannel: apows.TypeSnapshot,
		broadcast.QuestChannel:    apows.TypeQuest,
	}))
	wsRouter := apows.NewRouter(logger)
	apows.RegisterHandlers(wsRouter, room)

	r := gin.New()
	r.Use(mw.TraceID(), mw.Recovery(logger))
	worldH := apirest.NewWorldHandler(room, c, logger)
	adminH := apirest.NewAdminHandler(room, sched, hub, logger)
	questH := apirest.NewQuestHandler(pub, j, logger)
	api := r.Group("/api")
	api.Use(mw.RateLimit(1000, 2000))
	{
		api.GET("/health", adminH.Health)
		api.GET("/snapshot", worldH.Snapshot)
		api.GET("/grid", worldH.Grid)
		api.GET("/path", worldH.Path)
		api.GET("/quests/log", questH.Log)
		api.GET("/journal", questH.Journal)
		api.GET("/admin/metrics", adminH.Metrics)
	}
	r.GET("/ws", apows.NewHandler(hub, wsRouter, nil, logger).ServeWS)
	r.GET("/sse/quests", sse.NewHandler(pubsub, broadcast.QuestChannel, logger).ServeSSE)

	server := httptest.NewServer(r)
	ts := &TestServer{
		Room:      room,
		Cache:     c,
		PubSub:    pubsub,
		Publisher: pub,
		Journal:   j,
		Hub:       hub,
		Sched:     sched,
		Server:    server,
		URL:       server.URL,
		WSURL:     "ws" + strings.TrimPrefix(server.URL, "http") + "/ws",
	}
	t.Cleanup(func() {
		cancel()
		server.Close()
		sched.Stop()
		pub.Stop()
		j.Stop(context.Background())
	})
	return ts
}

// Step advances the room n times by dt.
func (ts *TestServer) Step(n int, dt time.Duration) {
	for i := 0; i < n; i++ {
		ts.Room.Tick(dt)
	}
}

// --- HTTP helpers ---

// Get sends a GET request.
func (ts *TestServer) Get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	return resp
}

// ReadJSON reads and decodes a JSON response body into the given target.
func ReadJSON(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, target), "body: %s", string(data))
}

// --- WebSocket client ---

// WSClient is a test WebSocket connection.
type WSClient struct {
	Conn   *websocket.Conn
	t      *testing.T
	seq    uint64
	readCh chan readResult
}

type readResult struct {
	data []byte
	err  error
}

// ConnectWS dials the test server's WS endpoint.
func (ts *TestServer) ConnectWS(t *testing.T) *WSClient {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(ts.WSURL, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	require.NoError(t, err, "WS dial failed")
	wc := &WSClient{Conn: conn, t: t, readCh: make(chan readResult, 1024)}
	go wc.readLoop()
	t.Cleanup(wc.Close)
	return wc
}

// readLoop continuously reads from the websocket in a dedicated goroutine.
func (wc *WSClient) readLoop() {
	for {
		_, data, err := wc.Conn.ReadMessage()
		wc.readCh <- readResult{data, err}
		if err != nil {
			return
		}
	}
}

// Send writes a packet with the next sequence number.
func (wc *WSClient) Send(msgType string, payload interface{}) {
	wc.t.Helper()
	seq := atomic.AddUint64(&wc.seq, 1)
	payloadJSON, err := json.Marshal(payload)
	require.NoError(wc.t, err)
	data, err := json.Marshal(apows.Packet{Seq: seq, Type: msgType, Payload: payloadJSON})
	require.NoError(wc.t, err)
	require.NoError(wc.t, wc.Conn.WriteMessage(websocket.TextMessage, data))
}

// RecvType reads packets until one with the given type arrives.
func (wc *WSClient) RecvType(msgType string, timeout time.Duration) apows.Packet {
	wc.t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case res := <-wc.readCh:
			require.NoError(wc.t, res.err, "WS recv failed while waiting for %q", msgType)
			var pkt apows.Packet
			require.NoError(wc.t, json.Unmarshal(res.data, &pkt))
			if pkt.Type == msgType {
				return pkt
			}
		case <-deadline:
			wc.t.Fatalf("timed out waiting for message type %q", msgType)
			return apows.Packet{}
		}
	}
}

// Input sends an intent and waits until the server has dispatched it. The
// server handles a connection's packets in order, so the pong proves the
// input reached the room's queue.
func (wc *WSClient) Input(intent map[string]interface{}) {
	wc.t.Helper()
	wc.Send(apows.TypeInput, intent)
	wc.Send(apows.TypePing, nil)
	wc.RecvType(apows.TypePong, 2*time.Second)
}

// Close closes the WebSocket connection.
func (wc *WSClient) Close() {
	_ = wc.Conn.Close()
}
