package importer

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/pandiaraajan-hub/workerprolite/internal/shared/apperror"
	"github.com/pandiaraajan-hub/workerprolite/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// maxUploadBytes bounds the spreadsheet we are willing to parse in
// memory.
const maxUploadBytes = 10 << 20

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("importer.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("importer.handler")
	}
	return &Handler{service: service, logger: l}
}

// ImportExcel accepts a multipart upload under the "file" field, parses
// the first sheet, and hands the rows to the import service. A sheet
// that produces zero usable rows comes back as 400 with diagnostics
// describing what the parser saw.
func (h *Handler) ImportExcel(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput,
			"Upload an Excel file under the 'file' field", nil)
		return
	}
	if fileHeader.Size > maxUploadBytes {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput,
			"File exceeds the 10MB upload limit", nil)
		return
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".xlsx" && ext != ".xlsm" && ext != ".xls" {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput,
			"Only Excel files (.xlsx, .xlsm, .xls) are supported", nil)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("import open upload failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput,
			"Could not read the uploaded file", nil)
		return
	}
	defer f.Close()

	book, err := excelize.OpenReader(f)
	if err != nil {
		h.logger.Warn("import parse workbook failed",
			zap.String("filename", fileHeader.Filename),
			zap.Error(err),
		)
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput,
			"File is not a valid Excel workbook", nil)
		return
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput,
			"Workbook has no sheets", nil)
		return
	}

	rows, err := book.GetRows(sheets[0])
	if err != nil {
		h.logger.Error("import read sheet failed",
			zap.String("sheet", sheets[0]),
			zap.Error(err),
		)
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput,
			"Could not read rows from the first sheet", nil)
		return
	}
	if len(rows) < 2 {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput,
			"Sheet needs a header row and at least one data row", nil)
		return
	}

	headers := make([]string, len(rows[0]))
	for i, hdr := range rows[0] {
		headers[i] = strings.TrimSpace(hdr)
	}

	summary, diagnostics, err := h.service.ImportRows(c.Request.Context(), headers, rows[1:])
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("import request failed",
			zap.String("filename", fileHeader.Filename),
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}
	if diagnostics != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput,
			"No valid worker rows found in the uploaded file", diagnostics)
		return
	}

	response.Success(c, http.StatusOK, summary, nil)
}
