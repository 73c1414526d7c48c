package controllers

import (
	"bytes"
	"errors"
	"io"
	"time"

	"Backend-ShiftFilter/src/jobs"
	"Backend-ShiftFilter/src/services/timeclock"
	"Backend-ShiftFilter/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ShiftController struct {
	Options        timeclock.Options
	OutputFilename string
	Audit          jobs.Enqueuer // nil เมื่อไม่มี Redis
}

func NewShiftController(opts timeclock.Options, outputFilename string, audit jobs.Enqueuer) *ShiftController {
	if outputFilename == "" {
		outputFilename = "filtered_shift_data.xlsx"
	}
	return &ShiftController{Options: opts, OutputFilename: outputFilename, Audit: audit}
}

// FilterShifts godoc
// @Summary      Filter timeclock exports into shifts
// @Description  Merges the uploaded timeclock exports and keeps the first "In" and last "Out" punch of every shift per employee. An unusable upload yields an empty workbook.
// @Tags         shifts
// @Accept       multipart/form-data
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        files  formData  file  true  "Timeclock export (.xlsx), repeatable"
// @Success      200    {file}    file
// @Failure      400    {object}  models.ErrorResponse
// @Router       /shifts/filter [post]
func (h *ShiftController) FilterShifts(c *fiber.Ctx) error {
	batchID := uuid.NewString()
	log := zap.L().With(zap.String("batchId", batchID))

	files, names, err := readUploads(c)
	if err != nil {
		log.Warn("cannot read upload", zap.Error(err))
		return utils.HandleError(c, fiber.StatusBadRequest, "Cannot read uploaded files")
	}

	started := time.Now()
	res, err := h.Options.Process(files)
	if err != nil {
		log.Warn("❌ Cannot parse timeclock export", zap.Error(err))
		return utils.HandleError(c, fiber.StatusBadRequest, "Cannot parse spreadsheet: "+err.Error())
	}
	log.Info("shifts filtered",
		zap.Int("files", res.Files),
		zap.Int("inputRows", res.InputRows),
		zap.Int("outputRows", res.OutputRows),
		zap.Int("employees", res.Employees),
		zap.Duration("took", time.Since(started)))

	var buf bytes.Buffer
	if err := timeclock.WriteWorkbook(&buf, res.Sheet); err != nil {
		log.Error("cannot write workbook", zap.Error(err))
		return utils.HandleError(c, fiber.StatusInternalServerError, "Cannot build spreadsheet")
	}

	email, _ := c.Locals("email").(string)
	if err := jobs.EnqueueUploadAudit(h.Audit, jobs.UploadAuditPayload{
		BatchID:    batchID,
		UserEmail:  email,
		FileNames:  names,
		InputRows:  res.InputRows,
		OutputRows: res.OutputRows,
		Employees:  res.Employees,
		At:         started,
	}); err != nil {
		// audit ไม่ควรทำให้ผู้ใช้ไม่ได้ไฟล์
		log.Warn("⚠️ Cannot enqueue upload audit", zap.Error(err))
	}

	c.Attachment(h.OutputFilename)
	c.Set(fiber.HeaderContentType, xlsxContentType)
	return c.Send(buf.Bytes())
}

// readUploads อ่านไฟล์ทั้งหมดจาก field "files" ตามลำดับที่ส่งมา
func readUploads(c *fiber.Ctx) ([]timeclock.Upload, []string, error) {
	form, err := c.MultipartForm()
	if errors.Is(err, fasthttp.ErrNoMultipartForm) {
		return nil, []string{}, nil
	}
	if err != nil {
		return nil, nil, err
	}

	headers := form.File["files"]
	files := make([]timeclock.Upload, 0, len(headers))
	names := make([]string, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, nil, err
		}
		content, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, nil, err
		}
		files = append(files, timeclock.Upload{Name: fh.Filename, Content: content})
		names = append(names, fh.Filename)
	}
	return files, names, nil
}
