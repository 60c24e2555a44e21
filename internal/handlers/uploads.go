package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/laskin-api/internal/services"
	"github.com/harentsoaR/laskin-api/internal/utils"
)

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// formFileDataURL converts an optional multipart file into a data URL. A
// missing file yields nil.
func formFileDataURL(c *gin.Context, field string, allowed ...string) (*services.Upload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dataURL, err := utils.ToDataURL(f, allowed...)
	if err != nil {
		if errors.Is(err, utils.ErrUnsupportedMediaType) || errors.Is(err, utils.ErrUploadTooLarge) {
			return nil, &services.ValidationError{Fields: map[string]string{field: err.Error()}}
		}
		return nil, err
	}
	return &services.Upload{Name: fh.Filename, DataURL: dataURL}, nil
}
