package handler

import (
	"encoding/base64"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/XZHHHHHH/NearUliveS/pkg/response"
)

const maxUploadSize = 5 << 20 // 5MB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadImage 图片上传：校验类型/大小后转成 base64 data URL 返回
// @Summary 上传图片
// @Tags 上传
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "图片文件"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/upload [post]
func (h *Handler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "no file uploaded")
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		response.BadRequest(c, "invalid file type, only images are allowed")
		return
	}
	if fileHeader.Size > maxUploadSize {
		response.BadRequest(c, "file too large, maximum size is 5MB")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadSize))
	if err != nil {
		response.InternalError(c, err)
		return
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
	response.Success(c, gin.H{
		"success":  true,
		"imageUrl": dataURL,
		"fileName": fileHeader.Filename,
		"fileSize": fileHeader.Size,
		"fileType": contentType,
	})
}
