package web

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/Veraticus/the-profit-must-flow/internal/common"
	"github.com/Veraticus/the-profit-must-flow/internal/metrics"
	"github.com/Veraticus/the-profit-must-flow/internal/model"
	"github.com/Veraticus/the-profit-must-flow/internal/profit"
	"github.com/Veraticus/the-profit-must-flow/internal/statement"
	"github.com/gin-gonic/gin"
)

const (
	formField    = "file"
	pageTemplate = "index.html"
)

var errNoFile = errors.New("no file uploaded")

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, pageTemplate, newPageView())
}

func (s *Server) handleUpload(c *gin.Context) {
	view := newPageView()

	rows, filename, err := s.ingest(c)
	if errors.Is(err, errNoFile) {
		c.HTML(http.StatusOK, pageTemplate, view)
		return
	}
	view.Info = ""
	view.Filename = filename
	if err != nil {
		view.Error = err.Error()
		c.HTML(http.StatusBadRequest, pageTemplate, view)
		return
	}

	view.setRows(rows)
	view.setResult(s.calculate(rows))
	c.HTML(http.StatusOK, pageTemplate, view)
}

func (s *Server) handleCalculate(c *gin.Context) {
	rows, _, err := s.ingest(c)
	if errors.Is(err, errNoFile) {
		c.JSON(http.StatusBadRequest, gin.H{"error": uploadPrompt})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, s.calculate(rows))
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ingest reads the uploaded export. Failures other than errNoFile are
// wrapped as "Error processing file: ...".
func (s *Server) ingest(c *gin.Context) (model.TransactionSet, string, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxUploadBytes)

	header, err := c.FormFile(formField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, "", errNoFile
		}
		return nil, "", s.ingestFailed(uploadError(err))
	}

	contents, err := readUpload(header, s.cfg.MaxUploadBytes)
	if err != nil {
		return nil, header.Filename, s.ingestFailed(err)
	}

	contentType := statement.DetectContentType(contents, header.Filename)
	if !statement.IsCSV(contentType) {
		return nil, header.Filename, s.ingestFailed(
			fmt.Errorf("%w: %s", common.ErrUnsupportedType, contentType))
	}

	rows, err := s.parser.Parse(c.Request.Context(), bytes.NewReader(contents))
	if err != nil {
		return nil, header.Filename, s.ingestFailed(err)
	}
	return rows, header.Filename, nil
}

func (s *Server) ingestFailed(err error) error {
	s.metrics.ObserveCalculation(metrics.OutcomeIngestError)
	slog.Warn("Failed to ingest upload", "error", err)
	return common.NewProcessingError(err)
}

func (s *Server) calculate(rows model.TransactionSet) profit.Result {
	result := profit.Calculate(rows)

	switch {
	case result.OK():
		s.metrics.ObserveCalculation(metrics.OutcomeSuccess)
		common.LogInfo("Calculated profit", common.Fields{
			"deposits":    result.Summary.DepositCount,
			"withdrawals": result.Summary.WithdrawalCount,
			"profit":      result.Summary.Profit,
		})
	case errors.Is(result.Err, profit.ErrNoDepositsOrWithdrawals):
		s.metrics.ObserveCalculation(metrics.OutcomeNoMatches)
	default:
		s.metrics.ObserveCalculation(metrics.OutcomeError)
		common.LogError(result.Err, "Profit calculation failed", nil)
	}

	return result
}

func readUpload(header *multipart.FileHeader, limit int64) ([]byte, error) {
	if header.Size > limit {
		return nil, common.ErrFileTooLarge
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	contents, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(contents)) > limit {
		return nil, common.ErrFileTooLarge
	}
	return contents, nil
}

func uploadError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return common.ErrFileTooLarge
	}
	return err
}
