package web

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Veraticus/sector-sift/internal/batch"
	"github.com/Veraticus/sector-sift/internal/common"
	"github.com/Veraticus/sector-sift/internal/dataset"
	"github.com/Veraticus/sector-sift/internal/model"
)

const defaultRunsLimit = 20

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "methods": s.methods})
}

// Index handles GET /.
func (s *Server) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index", formData{Methods: s.methods, Method: s.defaultMethod})
}

// ClassifyForm handles POST /classify from the HTML form.
func (s *Server) ClassifyForm(c *gin.Context) {
	data := formData{
		Methods:     s.methods,
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Method:      c.PostForm("method"),
	}
	if data.Method == "" {
		data.Method = s.defaultMethod
	}

	clf, err := s.classifier(data.Method)
	if err != nil {
		data.Error = err.Error()
		c.HTML(http.StatusBadRequest, "index", data)
		return
	}

	result, err := clf.Classify(c.Request.Context(), model.ClassificationInput{
		Name:        data.Name,
		Description: data.Description,
	})
	if err != nil {
		s.logger.Error("form classification failed", "method", clf.Name(), "error", err)
		data.Error = "Classification failed: " + err.Error()
		c.HTML(http.StatusBadGateway, "index", data)
		return
	}

	data.Result = &result
	c.HTML(http.StatusOK, "index", data)
}

// Classify handles POST /api/v1/classify.
func (s *Server) Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Warn("invalid classification request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	clf, err := s.classifier(req.Method)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := clf.Classify(c.Request.Context(), model.ClassificationInput{
		Name:          req.Name,
		Description:   req.Description,
		KnownIndustry: req.KnownIndustry,
	})
	if err != nil {
		s.logger.Error("classification failed", "method", clf.Name(), "company", req.Name, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Batch handles POST /api/v1/batch with a multipart "file" field.
func (s *Server) Batch(c *gin.Context) {
	clf, err := s.classifier(c.PostForm("method"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer func() { _ = file.Close() }()

	records, err := dataset.Read(file, filepath.Ext(header.Filename))
	if err != nil {
		s.logger.Warn("invalid batch upload", "file", header.Filename, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	started := time.Now()
	runner := &batch.Runner{Classifier: clf, Concurrency: s.concurrency, Logger: s.logger}
	outcomes, err := runner.Run(c.Request.Context(), records)
	if err != nil {
		s.logger.Warn("batch run aborted", "file", header.Filename, "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	s.metrics.AddBatchRecords(clf.Name(), len(outcomes))

	run := batch.NewRun(clf.Name(), header.Filename, started, outcomes)
	resp := BatchResponse{
		Classifier: run.Classifier,
		Source:     run.Source,
		Results:    run.Results,
		Report:     batch.Accuracy(outcomes),
		Total:      run.Total,
		Failed:     run.Failed,
	}

	if save, _ := strconv.ParseBool(c.PostForm("save")); save {
		if s.storage == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "run history is not configured"})
			return
		}
		if err := s.storage.SaveRun(c.Request.Context(), run); err != nil {
			s.logger.Error("failed to save run", "run_id", run.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		resp.RunID = run.ID
	}

	s.logger.Info("batch classified",
		"file", header.Filename,
		"method", run.Classifier,
		"records", run.Total,
		"accuracy", resp.Report.Accuracy)

	c.JSON(http.StatusOK, resp)
}

// ListRules handles GET /api/v1/rules.
func (s *Server) ListRules(c *gin.Context) {
	c.JSON(http.StatusOK, RulesListResponse{Rules: s.rules, Total: len(s.rules)})
}

// ListRuns handles GET /api/v1/runs.
func (s *Server) ListRuns(c *gin.Context) {
	if !s.requireStorage(c) {
		return
	}

	limit := defaultRunsLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	runs, err := s.storage.ListRuns(c.Request.Context(), limit)
	if err != nil {
		s.logger.Error("failed to list runs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	summaries := make([]RunSummary, 0, len(runs))
	for _, run := range runs {
		summaries = append(summaries, summarize(run))
	}
	c.JSON(http.StatusOK, RunsListResponse{Runs: summaries, Total: len(summaries)})
}

// GetRun handles GET /api/v1/runs/:id.
func (s *Server) GetRun(c *gin.Context) {
	if !s.requireStorage(c) {
		return
	}

	run, err := s.storage.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, summarize(*run))
}

// DeleteRun handles DELETE /api/v1/runs/:id.
func (s *Server) DeleteRun(c *gin.Context) {
	if !s.requireStorage(c) {
		return
	}

	if err := s.storage.DeleteRun(c.Request.Context(), c.Param("id")); err != nil {
		s.storageError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) requireStorage(c *gin.Context) bool {
	if s.storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "run history is not configured"})
		return false
	}
	return true
}

func (s *Server) storageError(c *gin.Context, err error) {
	if errors.Is(err, common.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	s.logger.Error("storage request failed", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
