package ui

import (
	"fmt"
	"net/http"

	"zencat/adapters/excel"
	"zencat/app"
	"zencat/internal/errors"
	"zencat/models"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) handleImportSessions(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a spreadsheet file is required"})
		return
	}
	defer file.Close()

	req := app.SessionImportRequest{
		File:           file,
		Filename:       header.Filename,
		ProfessionalID: c.PostForm("professional_id"),
		LocalID:        c.PostForm("local_id"),
		IsVirtual:      c.PostForm("is_virtual") == "true",
		SessionLink:    c.PostForm("session_link"),
	}

	outcome, err := s.imports.ImportSessions(c.Request.Context(), req)
	s.respond(c, outcome, err)
}

func (s *Server) handleImportCommunities(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a spreadsheet file is required"})
		return
	}
	defer file.Close()

	outcome, err := s.imports.ImportCommunities(c.Request.Context(), app.CommunityImportRequest{
		File:     file,
		Filename: header.Filename,
	})
	s.respond(c, outcome, err)
}

// respond maps an import outcome to HTTP. Validation rejections are 422 with
// the full diagnostics; downstream API failures are 502 with the upstream
// message intact; everything else accepted.
func (s *Server) respond(c *gin.Context, outcome app.Outcome, err error) {
	if err != nil {
		status := http.StatusInternalServerError
		switch errors.GetCode(err) {
		case errors.CodeExternalService:
			status = http.StatusBadGateway
		case errors.CodeInvalidInput:
			status = http.StatusBadRequest
		}
		s.log.Error().Err(err).Str("import_id", outcome.ImportID).Msg("import failed")
		c.JSON(status, gin.H{"import_id": outcome.ImportID, "error": err.Error()})
		return
	}
	if !outcome.Accepted {
		c.JSON(http.StatusUnprocessableEntity, outcome)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

func (s *Server) handleTemplate(c *gin.Context) {
	entity := c.Param("entity")
	spec, ok := models.ColumnsFor(entity)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no import template for %q", entity)})
		return
	}
	buf, err := excel.BuildTemplate(spec)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-template.xlsx"`, entity))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (s *Server) handleGuide(c *gin.Context) {
	src, err := embeddedFiles.ReadFile("guide.md")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "guide unavailable"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", markdown.ToHTML(src, nil, nil))
}

func (s *Server) handleHealth(c *gin.Context) {
	dbStatus := "ok"
	if s.db != nil {
		if err := s.db.PingContext(c.Request.Context()); err != nil {
			dbStatus = err.Error()
		}
	} else {
		dbStatus = "not configured"
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": dbStatus})
}
