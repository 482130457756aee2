package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/seipan/bstviz/bst"
)

func testServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv := New(Config{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return srv, ts
}

func post(t *testing.T, ts *httptest.Server, op, body string) (int, OpResponse) {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/"+op, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out OpResponse
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp.StatusCode, out
}

func TestHandleOp(t *testing.T) {
	_, ts := testServer(t)

	for _, k := range []string{"5", "3", "8", "1", "4"} {
		code, out := post(t, ts, "insert", `{"key":"`+k+`"}`)
		require.Equal(t, http.StatusOK, code)
		require.True(t, out.Changed)
		require.Nil(t, out.Found)
	}

	code, out := post(t, ts, "insert", `{"key":"3"}`)
	require.Equal(t, http.StatusOK, code)
	require.False(t, out.Changed)
	require.Equal(t, 2, out.Frames)

	code, out = post(t, ts, "delete", `{"key":"5"}`)
	require.Equal(t, http.StatusOK, code)
	require.True(t, out.Changed)
	require.Equal(t, 5, out.Frames)

	code, out = post(t, ts, "search", `{"key":"4"}`)
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, out.Found)
	require.True(t, *out.Found)
	require.Equal(t, 4, out.Frames)

	code, out = post(t, ts, "search", `{"key":"42"}`)
	require.Equal(t, http.StatusOK, code)
	require.False(t, *out.Found)

	resp, err := http.Get(ts.URL + "/api/tree")
	require.NoError(t, err)
	defer resp.Body.Close()
	var scene struct {
		Circles []struct {
			Label string `json:"label"`
		} `json:"circles"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&scene))
	require.Len(t, scene.Circles, 4)
}

func TestHandleOpRejects(t *testing.T) {
	srv, ts := testServer(t)

	code, _ := post(t, ts, "insert", `{"key":"five"}`)
	require.Equal(t, http.StatusBadRequest, code)

	code, _ = post(t, ts, "rotate", `{"key":"5"}`)
	require.Equal(t, http.StatusNotFound, code)

	srv.busy.Store(true)
	code, _ = post(t, ts, "insert", `{"key":"5"}`)
	require.Equal(t, http.StatusConflict, code)
	srv.busy.Store(false)

	require.Zero(t, srv.anim.Tree().Len())
}

func TestRunBusy(t *testing.T) {
	srv, _ := testServer(t)
	srv.busy.Store(true)
	_, _, err := srv.Run(bst.OpInsert, bst.Int(1))
	require.ErrorIs(t, err, ErrBusy)
}

func TestHealthAndStatic(t *testing.T) {
	_, ts := testServer(t)

	resp, err := http.Get(ts.URL + "/_health")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/")
	require.NoError(t, err)
	b, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Contains(t, string(b), "tree-canvas")

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func readMessage(t *testing.T, c *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, c.SetReadDeadline(time.Now().Add(5*time.Second)))
	var m Message
	require.NoError(t, c.ReadJSON(&m))
	return m
}

func TestListen(t *testing.T) {
	_, ts := testServer(t)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer c.Close()

	m := readMessage(t, c)
	require.Empty(t, m.Scene.Circles)
	require.Equal(t, 1.0, m.View.Scale)

	code, _ := post(t, ts, "insert", `{"key":"5"}`)
	require.Equal(t, http.StatusOK, code)
	m = readMessage(t, c)
	require.Equal(t, "insert", m.Scene.Op)
	require.Len(t, m.Scene.Circles, 1)

	// visit 5, then the redraw with the new leaf.
	code, _ = post(t, ts, "insert", `{"key":"3"}`)
	require.Equal(t, http.StatusOK, code)
	m = readMessage(t, c)
	require.Equal(t, 1, m.Scene.Seq)
	require.NotZero(t, m.Scene.Highlight)
	m = readMessage(t, c)
	require.Equal(t, 2, m.Scene.Seq)
	require.Zero(t, m.Scene.Highlight)
	require.Len(t, m.Scene.Circles, 2)

	require.NoError(t, c.WriteJSON(ViewEvent{Type: "key", Key: "]"}))
	m = readMessage(t, c)
	require.InDelta(t, 1.1, m.View.Scale, 1e-9)
	require.Len(t, m.Scene.Circles, 2)

	require.NoError(t, c.WriteJSON(ViewEvent{Type: "pan", DX: 11}))
	m = readMessage(t, c)
	require.InDelta(t, 10, m.View.TranslateX, 1e-9)

	require.NoError(t, c.WriteJSON(ViewEvent{Type: "reset"}))
	m = readMessage(t, c)
	require.Equal(t, 1.0, m.View.Scale)
	require.Zero(t, m.View.TranslateX)
}
