// Vizx
// Copyright (C) 2013-2024+ James Shubin and the project contributors
// Written by James Shubin <james@shubin.ca> and the project contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package server serves the diagram pipeline over http, for renderers which
// can't link it in directly.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/purpleidea/vizx/lang"
	"github.com/purpleidea/vizx/lang/interfaces"
	"github.com/purpleidea/vizx/lang/lexer"
	"github.com/purpleidea/vizx/layout"
	"github.com/purpleidea/vizx/util"
	"github.com/purpleidea/vizx/util/errwrap"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// DefaultListen is the address the api is served on by default.
	DefaultListen = "127.0.0.1:9234"

	// RequestIDHeader carries the id that every response is tagged with.
	RequestIDHeader = "X-Request-Id"

	// MaxInputSize is the largest request body that is accepted.
	MaxInputSize = 64 * 1024
)

// Server is the struct that contains the api server. Run Init() on it.
type Server struct {
	Listen string

	// Config is the default layout config. A request may ask for another
	// scale.
	Config *layout.Config

	// Metrics, if set, is told about every render and served on /metrics.
	Metrics interface {
		lang.Metrics
		Handler() http.Handler
	}

	Debug bool
	Logf  func(format string, v ...interface{})

	router *gin.Engine
	server *http.Server
	wg     *sync.WaitGroup
}

// RenderRequest is the body of a render or lex request.
type RenderRequest struct {
	Input string `json:"input" binding:"required"`

	// Goal strips any leading binders before rendering.
	Goal bool `json:"goal"`

	// Scale overrides the default scale if it is set.
	Scale float64 `json:"scale"`
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`

	// Stage is the pipeline stage which failed, if any.
	Stage string `json:"stage,omitempty"`

	// Row and Col point at the offending text, if it is known. They are
	// zero-based.
	Row      *int     `json:"row,omitempty"`
	Col      *int     `json:"col,omitempty"`
	Expected []string `json:"expected,omitempty"`
}

// TokenResponse is a single token of a lex response.
type TokenResponse struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
}

// Init builds the router.
func (obj *Server) Init() error {
	if obj.Listen == "" {
		obj.Listen = DefaultListen
	}
	if obj.Config == nil {
		obj.Config = layout.Default()
	}
	if obj.Logf == nil {
		obj.Logf = func(format string, v ...interface{}) {} // noop
	}
	obj.wg = &sync.WaitGroup{}

	if obj.Debug {
		gin.DefaultWriter = &util.LogWriter{Prefix: "gin: ", Logf: obj.Logf}
	} else {
		gin.SetMode(gin.ReleaseMode) // for production
	}
	router := gin.New()
	router.Use(obj.requestID(), obj.ginLogger(), gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	router.POST("/render", obj.render)
	router.POST("/lex", obj.lex)
	if obj.Metrics != nil {
		router.GET("/metrics", gin.WrapH(obj.Metrics.Handler()))
	}

	obj.router = router
	return nil
}

// Handler returns the http handler of the api.
func (obj *Server) Handler() http.Handler {
	return obj.router
}

// Run serves the api until the context closes.
func (obj *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", obj.Listen)
	if err != nil {
		return errwrap.Wrapf(err, "can't listen on %s", obj.Listen)
	}
	obj.server = &http.Server{
		Handler:           obj.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	obj.wg.Add(1)
	go func() {
		defer obj.wg.Done()
		<-ctx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := obj.server.Shutdown(ctx); err != nil {
			obj.Logf("shutdown: %+v", err)
		}
	}()

	obj.Logf("serving on: %s", listener.Addr())
	err = obj.server.Serve(listener)
	obj.wg.Wait()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// requestID tags every request with a unique id.
func (obj *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String() // panic's if it can't generate one :P
		}
		c.Set(RequestIDHeader, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// ginLogger is a helper to get structured logs out of gin.
func (obj *Server) ginLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		method := c.Request.Method
		path := c.Request.URL.Path
		status := c.Writer.Status()
		clientIP := c.ClientIP()
		id := c.GetString(RequestIDHeader)
		obj.Logf("%s %v %s %s (%d) %v", id, clientIP, method, path, status, duration)
	}
}

// bind reads a request. It responds and returns nil if the request is bad.
func (obj *Server) bind(c *gin.Context) *RenderRequest {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxInputSize)
	req := &RenderRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, &ErrorResponse{Error: err.Error()})
		return nil
	}
	return req
}

// failure builds the response for a failed render.
func failure(err error) *ErrorResponse {
	resp := &ErrorResponse{Error: errwrap.String(err)}
	var se *lang.StageErr
	if errors.As(err, &se) {
		resp.Stage = se.Stage
	}
	var lpe *interfaces.LexParseErr
	if errors.As(err, &lpe) {
		row, col := lpe.Row, lpe.Col
		resp.Row, resp.Col = &row, &col
		resp.Expected = lpe.Expected
	}
	return resp
}

func (obj *Server) render(c *gin.Context) {
	req := obj.bind(c)
	if req == nil {
		return
	}

	config := obj.Config
	if req.Scale != 0 {
		var err error
		if config, err = layout.NewConfig(req.Scale); err != nil {
			c.JSON(http.StatusBadRequest, failure(err))
			return
		}
	}
	l := &lang.Lang{
		Config:  config,
		Goal:    req.Goal,
		Metrics: obj.Metrics,
		Debug:   obj.Debug,
		Logf: func(format string, v ...interface{}) {
			obj.Logf(c.GetString(RequestIDHeader)+": "+format, v...)
		},
	}
	result, err := l.Render(req.Input)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, failure(err))
		return
	}
	c.JSON(http.StatusOK, result)
}

func (obj *Server) lex(c *gin.Context) {
	req := obj.bind(c)
	if req == nil {
		return
	}

	input := req.Input
	if req.Goal {
		_, input = lang.StripQualifiers(input)
	}
	tokens, err := lexer.Lex(input)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, failure(&lang.StageErr{Stage: lang.StageLex, Err: err}))
		return
	}
	resp := []*TokenResponse{}
	for _, tok := range tokens {
		row, col := tok.Pos()
		resp = append(resp, &TokenResponse{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Row:  row,
			Col:  col,
		})
	}
	c.JSON(http.StatusOK, resp)
}
