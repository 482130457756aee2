package server

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/seipan/bstviz/bst"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type OpRequest struct {
	Key string `json:"key" form:"key"`
}

type OpResponse struct {
	Op      string `json:"op"`
	Key     string `json:"key"`
	Changed bool   `json:"changed"`
	Found   *bool  `json:"found,omitempty"`
	Frames  int    `json:"frames"`
}

// e.POST("/api/:op", srv.HandleOp)
//
// The response is written once the whole animation has played out.
func (srv *Server) HandleOp(c echo.Context) error {
	op, err := bst.ParseOp(c.Param("op"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	var req OpRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	key, err := bst.ParseInt(req.Key)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, found, err := srv.Run(op, key)
	if errors.Is(err, ErrBusy) {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	} else if err != nil {
		return err
	}

	out := OpResponse{
		Op:      op.String(),
		Key:     fmt.Sprint(key),
		Changed: res.Changed,
		Frames:  res.Frames,
	}
	if op == bst.OpSearch {
		out.Found = &found
	}
	return c.JSON(http.StatusOK, out)
}

// HandleTree returns the most recent frame.
func (srv *Server) HandleTree(c echo.Context) error {
	return c.JSON(http.StatusOK, srv.lastScene())
}

func (srv *Server) HandleConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, srv.render)
}

func (srv *Server) HandleListen(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	l := newListener(ws, srv.logger)
	srv.logger.Info("websocket connected", "remote", ws.RemoteAddr().String())
	go l.writeLoop()
	srv.addListener(l)
	defer func() {
		srv.removeListener(l)
		l.close()
		srv.logger.Info("websocket disconnected", "remote", ws.RemoteAddr().String())
	}()

	l.readLoop()
	return nil
}
