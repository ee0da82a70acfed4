package handler

import (
	"io"

	"agriconnect/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// readImage pulls an uploaded file out of the multipart form. A missing
// field returns (nil, nil); size and content-type checks belong to the
// service layer.
func readImage(c *gin.Context, field string) (*service.ImageUpload, error) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		return nil, nil
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &service.ImageUpload{
		Data:        data,
		ContentType: header.Header.Get("Content-Type"),
	}, nil
}
