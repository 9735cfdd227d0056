package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/benjaminjkraft/wordlebot/internal/engine"
)

type HealthResponse struct {
	Status string `json:"status"`
	Words  int    `json:"words"`
}

type AnalyzeRequest struct {
	Guess    string          `json:"guess" binding:"required"`
	Feedback engine.Feedback `json:"feedback" binding:"required"`
}

type AnalyzeResponse struct {
	Constraints engine.Snapshot `json:"constraints"`
}

// GameRequest carries the history of a game so far. Pool, if set, replaces
// the engine's word list as the set of possible answers.
type GameRequest struct {
	Turns []engine.Turn `json:"turns"`
	Pool  []string      `json:"pool,omitempty"`
}

type FilterResponse struct {
	Candidates []string `json:"candidates"`
	Count      int      `json:"count"`
}

type NextGuessResponse struct {
	Guess      string          `json:"guess"`
	Candidates int             `json:"candidates"`
	Known      engine.Snapshot `json:"constraints"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Words: len(s.engine.Words())})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	known, err := s.engine.AnalyzeResult(req.Guess, req.Feedback)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, AnalyzeResponse{Constraints: known.Snapshot()})
}

func (s *Server) handleFilter(c *gin.Context) {
	req, known, ok := s.bindGame(c)
	if !ok {
		return
	}
	pool := req.Pool
	if pool == nil {
		pool = s.engine.Words()
	}
	candidates := s.engine.FilterCandidates(known, pool)
	c.JSON(http.StatusOK, FilterResponse{Candidates: candidates, Count: len(candidates)})
}

func (s *Server) handleNextGuess(c *gin.Context) {
	req, known, ok := s.bindGame(c)
	if !ok {
		return
	}
	previous := make([]string, 0, len(req.Turns))
	for _, t := range req.Turns {
		previous = append(previous, t.Guess)
	}
	guess, err := s.engine.NextGuess(c.Request.Context(), known, previous, req.Pool)
	if err != nil {
		s.fail(c, err)
		return
	}
	pool := req.Pool
	if pool == nil {
		pool = s.engine.Words()
	}
	c.JSON(http.StatusOK, NextGuessResponse{
		Guess:      guess,
		Candidates: len(s.engine.FilterCandidates(known, pool)),
		Known:      known.Snapshot(),
	})
}

func (s *Server) bindGame(c *gin.Context) (GameRequest, *engine.Constraints, bool) {
	var req GameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return req, nil, false
	}
	known, err := s.engine.Replay(req.Turns)
	if err != nil {
		s.fail(c, err)
		return req, nil, false
	}
	return req, known, true
}

func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, engine.ErrInvalidWord), errors.Is(err, engine.ErrInvalidFeedback):
		status = http.StatusBadRequest
	case errors.Is(err, engine.ErrConstraintConflict):
		status = http.StatusConflict
	case errors.Is(err, c.Request.Context().Err()):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}
