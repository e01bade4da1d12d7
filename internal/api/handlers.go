package api

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleListRuns(c *gin.Context) {
	runs, err := s.repo.ListRuns()
	if err != nil {
		s.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs, "count": len(runs)})
}

func (s *Server) handleGetRun(c *gin.Context) {
	run, err := s.repo.GetRun(c.Param("id"))
	if err != nil {
		s.notFoundOrError(c, err)
		return
	}
	c.JSON(http.StatusOK, run)
}

func (s *Server) handleListRoster(c *gin.Context) {
	records, err := s.repo.ListRoster(c.Param("id"))
	if err != nil {
		s.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": records, "count": len(records)})
}

func (s *Server) handleListResults(c *gin.Context) {
	status := c.Query("status")
	if status != "" && status != "matched" && status != "unmatched" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be matched or unmatched"})
		return
	}

	records, err := s.repo.ListResults(c.Param("id"), status)
	if err != nil {
		s.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": records, "count": len(records)})
}

func (s *Server) handleGetStats(c *gin.Context) {
	stats, err := s.repo.GetStats(c.Param("id"))
	if err != nil {
		s.notFoundOrError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) serverError(c *gin.Context, err error) {
	s.logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func (s *Server) notFoundOrError(c *gin.Context, err error) {
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	s.serverError(c, err)
}
