package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/avinashb/quizmind/internal/quiz"
	"github.com/avinashb/quizmind/internal/session"
)

// questionView is the client-facing question shape. The correct answer
// and explanation are withheld until the answer is submitted.
type questionView struct {
	ID               string   `json:"id"`
	Subject          string   `json:"subject"`
	Topic            string   `json:"topic"`
	Text             string   `json:"text"`
	Kind             string   `json:"kind"`
	Difficulty       string   `json:"difficulty"`
	Options          []string `json:"options,omitempty"`
	Hints            []string `json:"hints,omitempty"`
	EstimatedSeconds int      `json:"estimated_seconds"`
	Source           string   `json:"source"`
}

func viewOf(q *quiz.Question) questionView {
	return questionView{
		ID:               q.ID,
		Subject:          q.Subject,
		Topic:            q.Topic,
		Text:             q.Text,
		Kind:             string(q.Kind),
		Difficulty:       q.Difficulty.String(),
		Options:          q.Options,
		Hints:            q.Hints,
		EstimatedSeconds: q.EstimatedSeconds,
		Source:           string(q.Source),
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listSubjects(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"subjects": s.bank.Subjects()})
}

type createSessionRequest struct {
	UserID     string `json:"user_id" binding:"required"`
	Subject    string `json:"subject" binding:"required"`
	Difficulty string `json:"difficulty"`
}

func (s *Server) createSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var difficulty quiz.Difficulty
	if req.Difficulty != "" {
		d, err := quiz.ParseDifficulty(req.Difficulty)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		difficulty = d
	}

	id, err := s.manager.Start(req.UserID, req.Subject, difficulty)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session_id": id})
}

func (s *Server) nextQuestion(c *gin.Context) {
	q, err := s.manager.NextQuestion(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	if q == nil {
		// Both sources exhausted: the session is complete.
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, viewOf(q))
}

type submitRequest struct {
	QuestionID string `json:"question_id" binding:"required"`
	Answer     string `json:"answer"`
	TimeTaken  int    `json:"time_taken"`
	Confidence int    `json:"confidence"`
	HintsUsed  int    `json:"hints_used"`
}

func (s *Server) submitAnswer(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := s.manager.Submit(c.Request.Context(), c.Param("id"),
		req.QuestionID, req.Answer, req.TimeTaken, req.Confidence, req.HintsUsed)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) summary(c *gin.Context) {
	sum, err := s.manager.Summary(c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (s *Server) endSession(c *gin.Context) {
	sum, err := s.manager.End(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (s *Server) writeError(c *gin.Context, err error) {
	var nf *session.NotFoundError
	if errors.As(err, &nf) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	var verr *session.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.logger.Error("request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
