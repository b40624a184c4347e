package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"lostfound/internal/service"

	"github.com/gin-gonic/gin"
)

type createReportRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Location string `json:"location" binding:"required"`
	Status   string `json:"status" binding:"required"`
}

type updateReportRequest struct {
	Content *string `json:"content"`
	Status  *string `json:"status"`
}

// @Summary      Create a report
// @Description  Accepts JSON, or multipart/form-data with an optional "image" file part.
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        body  body  createReportRequest  true  "Report fields"
// @Success      201  {object}  apiResponse
// @Failure      400  {object}  apiResponse
// @Failure      401  {object}  apiResponse
// @Router       /report/ [post]
// @Security     BearerAuth
func (h *Handler) createReport(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		abortWithEnvelope(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	in, ok := h.bindCreateReport(c)
	if !ok {
		return
	}

	report, err := h.services.Reports.Create(c.Request.Context(), userID, in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, report, "report created successfully")
}

// bindCreateReport reads the creation fields from either a JSON body or a
// multipart form; only the multipart shape can carry an image.
func (h *Handler) bindCreateReport(c *gin.Context) (service.CreateReportInput, bool) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		var req createReportRequest
		if ok := h.bindJSONOrBadRequest(c, &req); !ok {
			return service.CreateReportInput{}, false
		}
		return service.CreateReportInput{
			Title:    req.Title,
			Content:  req.Content,
			Location: req.Location,
			Status:   req.Status,
		}, true
	}

	in := service.CreateReportInput{
		Title:    c.PostForm("title"),
		Content:  c.PostForm("content"),
		Location: c.PostForm("location"),
		Status:   c.PostForm("status"),
	}

	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		up, err := readImagePart(fh)
		if err != nil {
			abortWithEnvelope(c, http.StatusBadRequest, "invalid image part: "+err.Error())
			return service.CreateReportInput{}, false
		}
		in.Image = &up
	}
	return in, true
}

// @Summary      List all reports
// @Description  Newest-first, with each owner's public identity embedded.
// @Tags         reports
// @Produce      json
// @Success      200  {object}  apiResponse
// @Failure      404  {object}  apiResponse
// @Router       /report/ [get]
// @Security     BearerAuth
func (h *Handler) listAllReports(c *gin.Context) {
	reports, err := h.services.Reports.ListAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, reports, "successfully fetched reports")
}

// @Summary      List a user's reports
// @Tags         reports
// @Produce      json
// @Param        userId  path  int  true  "User ID"
// @Success      200  {object}  apiResponse
// @Failure      404  {object}  apiResponse
// @Router       /report/user/{userId} [get]
// @Security     BearerAuth
func (h *Handler) listUserReports(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	reports, err := h.services.Reports.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, reports, "successfully fetched reports")
}

// @Summary      Update a report
// @Description  Owner-only. Supplied fields change; omitted fields stay untouched.
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        reportId  path  int  true  "Report ID"
// @Param        body  body  updateReportRequest  true  "content and/or status"
// @Success      200  {object}  apiResponse
// @Failure      400  {object}  apiResponse
// @Failure      404  {object}  apiResponse
// @Router       /report/{reportId} [put]
// @Security     BearerAuth
func (h *Handler) updateReport(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		abortWithEnvelope(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	reportID, ok := pathID(c, "reportId")
	if !ok {
		return
	}

	var req updateReportRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	report, err := h.services.Reports.Update(c.Request.Context(), userID, reportID, req.Content, req.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, report, "successfully updated the report")
}

// @Summary      Delete a report
// @Description  Owner-only. Removes the record, then its stored image.
// @Tags         reports
// @Produce      json
// @Param        reportId  path  int  true  "Report ID"
// @Success      200  {object}  apiResponse
// @Failure      404  {object}  apiResponse
// @Router       /report/{reportId} [delete]
// @Security     BearerAuth
func (h *Handler) deleteReport(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		abortWithEnvelope(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	reportID, ok := pathID(c, "reportId")
	if !ok {
		return
	}

	if err := h.services.Reports.Delete(c.Request.Context(), userID, reportID); err != nil {
		h.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "successfully deleted the report")
}

// @Summary      Attach or replace a report image
// @Tags         reports
// @Accept       multipart/form-data
// @Produce      json
// @Param        reportId  path  int  true  "Report ID"
// @Param        image  formData  file  true  "Image file"
// @Success      200  {object}  apiResponse
// @Failure      400  {object}  apiResponse
// @Failure      404  {object}  apiResponse
// @Router       /report/{reportId}/image [post]
// @Security     BearerAuth
func (h *Handler) attachReportImage(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		abortWithEnvelope(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	reportID, ok := pathID(c, "reportId")
	if !ok {
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		abortWithEnvelope(c, http.StatusBadRequest, "image file part is required")
		return
	}
	up, err := readImagePart(fh)
	if err != nil {
		abortWithEnvelope(c, http.StatusBadRequest, "invalid image part: "+err.Error())
		return
	}

	report, err := h.services.Reports.AttachImage(c.Request.Context(), userID, reportID, up)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, report, "image attached successfully")
}

// pathID parses a numeric path parameter, rendering a 400 envelope on failure.
func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		abortWithEnvelope(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

func readImagePart(fh *multipart.FileHeader) (service.ImageUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return service.ImageUpload{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return service.ImageUpload{}, err
	}
	return service.ImageUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
