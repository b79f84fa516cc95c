package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"armory-server/internal/config"
	"armory-server/internal/engine"
	"armory-server/internal/metrics"
	"armory-server/internal/network"
	"armory-server/internal/version"
	"armory-server/pkg/api"
	"armory-server/pkg/loadout"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*engine.GameService, *httptest.Server) {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	factory, err := loadout.NewFactory(cfg)
	require.NoError(t, err)

	m := metrics.New()
	svc := engine.NewService(engine.NewConfig(cfg), factory, network.NewBroadcaster(), m)
	ctx, cancel := context.WithCancel(context.Background())
	go svc.Run(ctx)

	srv := New(svc, Options{ClientConstraint: cfg.Server.ClientConstraint, Debug: true, Metrics: m.Handler()})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		cancel()
	})
	return svc, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) api.ServerResponse {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	var msg api.ServerResponse
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHandshake_WelcomeThenHUD(t *testing.T) {
	svc, ts := newTestServer(t)
	conn := dial(t, ts)

	require.NoError(t, conn.WriteJSON(api.ClientCommand{Token: "alice", Version: "1.0.0", Action: "INIT"}))

	welcome := read(t, conn)
	assert.Equal(t, api.TypeWelcome, welcome.Type)
	assert.Equal(t, "alice", welcome.PlayerID)
	assert.Equal(t, version.Protocol, welcome.Protocol)

	// Вход и INIT могут попасть в разные тики - ждем HUD с приветствием
	var hud api.ServerResponse
	for i := 0; i < 3 && len(hud.Logs) == 0; i++ {
		hud = read(t, conn)
		assert.Equal(t, api.TypeHUD, hud.Type)
		require.NotNil(t, hud.Inventory)
		assert.Equal(t, "IDLE", hud.Inventory.State)
	}
	require.NotEmpty(t, hud.Logs, "INIT greets the player")

	require.Eventually(t, func() bool { return len(svc.Players()) == 1 }, 2*time.Second, 10*time.Millisecond)

	// Неизвестная команда - ERROR через тот же канал
	require.NoError(t, conn.WriteJSON(api.ClientCommand{Action: "DANCE"}))
	errMsg := read(t, conn)
	assert.Equal(t, api.TypeError, errMsg.Type)
	assert.Contains(t, errMsg.Error, "unknown action")
}

func TestHandshake_GeneratesPlayerID(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)

	require.NoError(t, conn.WriteJSON(api.ClientCommand{Version: "1.4"}))
	welcome := read(t, conn)
	assert.Equal(t, api.TypeWelcome, welcome.Type)
	assert.Len(t, welcome.PlayerID, 36, "uuid")
}

func TestHandshake_RejectsOldClient(t *testing.T) {
	svc, ts := newTestServer(t)
	conn := dial(t, ts)

	require.NoError(t, conn.WriteJSON(api.ClientCommand{Token: "bob", Version: "0.3.0"}))
	msg := read(t, conn)
	assert.Equal(t, api.TypeError, msg.Type)
	assert.Equal(t, version.Protocol, msg.Protocol)
	assert.NotEmpty(t, msg.Error)

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, svc.Players())
}

func TestHandshake_RejectsLongToken(t *testing.T) {
	svc, ts := newTestServer(t)
	conn := dial(t, ts)

	require.NoError(t, conn.WriteJSON(api.ClientCommand{Token: strings.Repeat("t", 300), Version: "1.0.0"}))
	msg := read(t, conn)
	assert.Equal(t, api.TypeError, msg.Type)
	assert.Contains(t, msg.Error, "bad token")

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, svc.Players())
	assert.Empty(t, svc.ReplaySnapshot().Actions, "nothing recorded for a rejected client")
}

func TestHandshake_FrameSizeLimited(t *testing.T) {
	svc, ts := newTestServer(t)
	conn := dial(t, ts)

	require.NoError(t, conn.WriteJSON(api.ClientCommand{Token: "dave", Version: "1.0.0", Action: strings.Repeat("A", 4096)}))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	var msg api.ServerResponse
	assert.Error(t, conn.ReadJSON(&msg), "server closes the socket")
	assert.Empty(t, svc.Players())
}

func TestDisconnect_LeavesGame(t *testing.T) {
	svc, ts := newTestServer(t)
	conn := dial(t, ts)
	require.NoError(t, conn.WriteJSON(api.ClientCommand{Token: "carol", Version: "1.0"}))
	read(t, conn)
	require.Eventually(t, func() bool { return len(svc.Players()) == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return len(svc.Players()) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHTTPRoutes(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/version")
	require.NoError(t, err)
	var info version.Build
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	resp.Body.Close()
	assert.Equal(t, version.Protocol, info.Protocol)

	for _, path := range []string{"/debug/players", "/debug/queue", "/debug/drops"} {
		resp, err = http.Get(ts.URL + path)
		require.NoError(t, err)
		var list []json.RawMessage
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&list), path)
		resp.Body.Close()
		assert.Empty(t, list, path)
	}

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "armory_hub_subscribers 0")
}
