package main

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ubfsw/digitpad/classify"
	"github.com/ubfsw/digitpad/drawing"
	"github.com/ubfsw/digitpad/log"
	"github.com/ubfsw/digitpad/pad"
	"github.com/ubfsw/digitpad/session"
)

type ApiServer struct {
	pad     *pad.Pad
	session *session.Store
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewApiServer(p *pad.Pad, store *session.Store) *ApiServer {
	return &ApiServer{pad: p, session: store}
}

func (s *ApiServer) writeError(c *gin.Context, status int, err error) {
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

func (s *ApiServer) writeSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{Data: data})
}

// POST /api/pointer {"type": "down|move|up|cancel", "pointer": 1, "x": 10, "y": 20}
func (s *ApiServer) handlePointer(c *gin.Context) {
	var req struct {
		Type    string  `json:"type" binding:"required"`
		Pointer int     `json:"pointer"`
		X       float64 `json:"x"`
		Y       float64 `json:"y"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, http.StatusBadRequest, err)
		return
	}

	switch req.Type {
	case "down":
		if err := s.pad.PointerDown(req.Pointer, req.X, req.Y); err != nil {
			s.writeError(c, http.StatusConflict, err)
			return
		}
	case "move":
		s.pad.PointerMove(req.Pointer, req.X, req.Y)
	case "up":
		s.pad.PointerUp(req.Pointer)
	case "cancel":
		s.pad.PointerCancel(req.Pointer)
	default:
		s.writeError(c, http.StatusBadRequest, fmt.Errorf("unknown pointer event %q", req.Type))
		return
	}
	s.writeSuccess(c, s.pad.Status())
}

// POST /api/undo
func (s *ApiServer) handleUndo(c *gin.Context) {
	s.pad.Undo()
	s.writeSuccess(c, s.pad.Status())
}

// POST /api/clear
func (s *ApiServer) handleClear(c *gin.Context) {
	s.pad.Clear()
	s.writeSuccess(c, s.pad.Status())
}

// POST /api/label {"digit": 7}
func (s *ApiServer) handleLabel(c *gin.Context) {
	var req struct {
		Digit *int `json:"digit" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, http.StatusBadRequest, err)
		return
	}
	if err := s.pad.SetGroundTruth(*req.Digit); err != nil {
		s.writeError(c, http.StatusBadRequest, err)
		return
	}
	s.writeSuccess(c, s.pad.Status())
}

// POST /api/predict
func (s *ApiServer) handlePredict(c *gin.Context) {
	_, err := s.pad.Predict(c.Request.Context())
	switch {
	case err == classify.ErrBusy:
		s.writeError(c, http.StatusConflict, err)
	case err != nil:
		s.writeError(c, http.StatusBadGateway, err)
	default:
		s.writeSuccess(c, s.pad.Prediction())
	}
}

// GET /api/status
func (s *ApiServer) handleStatus(c *gin.Context) {
	st := s.pad.Status()
	data := map[string]interface{}{"pad": st}
	if s.session != nil {
		sess := s.session.Session()
		data["username"] = sess.Username
		data["device_id"] = sess.DeviceID
	}
	s.writeSuccess(c, data)
}

type jsonStroke struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

func strokesToJSON(strokes []drawing.Stroke) []jsonStroke {
	out := make([]jsonStroke, 0, len(strokes))
	for _, st := range strokes {
		js := jsonStroke{
			X: make([]float64, 0, len(st)),
			Y: make([]float64, 0, len(st)),
		}
		for _, p := range st {
			js.X = append(js.X, p.X)
			js.Y = append(js.Y, p.Y)
		}
		out = append(out, js)
	}
	return out
}

// GET /api/strokes
func (s *ApiServer) handleStrokes(c *gin.Context) {
	s.writeSuccess(c, map[string]interface{}{
		"size":    s.pad.Size(),
		"strokes": strokesToJSON(s.pad.Strokes()),
	})
}

// GET /api/canvas.png
func (s *ApiServer) handleCanvas(c *gin.Context) {
	var buf bytes.Buffer
	if err := s.pad.EncodePNG(&buf); err != nil {
		s.writeError(c, http.StatusInternalServerError, fmt.Errorf("failed to encode canvas: %v", err))
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// GET /api/raster.png
func (s *ApiServer) handleRaster(c *gin.Context) {
	r, err := s.pad.Raster()
	if err != nil {
		s.writeError(c, http.StatusInternalServerError, err)
		return
	}
	c.Data(http.StatusOK, "image/png", r.PNG)
}

const indexPage = `<!DOCTYPE html>
<html>
<head>
	<title>digitpad REST API</title>
</head>
<body>
	<h1>digitpad REST API</h1>
	<h2>Endpoints:</h2>
	<ul>
		<li>POST /api/pointer - Pointer down/move/up/cancel</li>
		<li>POST /api/undo - Remove the last stroke</li>
		<li>POST /api/clear - Clear the drawing</li>
		<li>POST /api/label - Set the actual digit</li>
		<li>POST /api/predict - Submit the drawing</li>
		<li>GET /api/status - Drawing and prediction state</li>
		<li>GET /api/strokes - Stroke coordinates</li>
		<li>GET /api/canvas.png - Full canvas</li>
		<li>GET /api/raster.png - Submitted raster</li>
	</ul>
</body>
</html>
`

func (s *ApiServer) router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api")
	api.POST("/pointer", s.handlePointer)
	api.POST("/undo", s.handleUndo)
	api.POST("/clear", s.handleClear)
	api.POST("/label", s.handleLabel)
	api.POST("/predict", s.handlePredict)
	api.GET("/status", s.handleStatus)
	api.GET("/strokes", s.handleStrokes)
	api.GET("/canvas.png", s.handleCanvas)
	api.GET("/raster.png", s.handleRaster)

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexPage))
	})
	return router
}

func runServerMode(addr string, p *pad.Pad, store *session.Store) error {
	gin.SetMode(gin.ReleaseMode)
	server := NewApiServer(p, store)

	log.Info.Printf("Starting HTTP server on %s", addr)
	if err := server.router().Run(addr); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
