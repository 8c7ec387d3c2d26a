package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EthanNaitwe/SchoolReportMaster/internal/dto"
	"github.com/EthanNaitwe/SchoolReportMaster/internal/service"
	"github.com/EthanNaitwe/SchoolReportMaster/pkg/response"
)

// ReportHandler 成绩单模块 HTTP 处理器
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler 创建 ReportHandler
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// ListReportCards 获取成绩单留档列表（按生成时间倒序）
// GET /api/v1/report-cards
func (h *ReportHandler) ListReportCards(c *gin.Context) {
	cards, err := h.reportSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": cards})
}

// GenerateReportCard 为单个学生生成并下发 PDF 成绩单
// POST /api/v1/report-cards/generate
func (h *ReportHandler) GenerateReportCard(c *gin.Context) {
	var req dto.GenerateReportCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	file, err := h.reportSvc.Generate(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, "application/pdf", file.Content)
}

// BulkGenerateReportCards 为一个批次的全部学生留档成绩单
// POST /api/v1/report-cards/bulk
func (h *ReportHandler) BulkGenerateReportCards(c *gin.Context) {
	var req dto.BulkGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	cards, err := h.reportSvc.BulkGenerate(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	response.Created(c, gin.H{"list": cards})
}

// handleReportError 统一处理成绩单模块业务错误
func (h *ReportHandler) handleReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUploadNotFound):
		response.NotFound(c, 13001, "上传批次不存在")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 13002, "该批次中不存在此学生的有效成绩")
	case errors.Is(err, service.ErrUploadNotApproved):
		response.Conflict(c, 13003, "上传尚未批准，不可生成成绩单")
	default:
		response.InternalError(c)
	}
}

