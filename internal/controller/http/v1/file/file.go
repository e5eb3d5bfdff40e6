package file

import (
	"net/http"

	"fitura/backend/foundation/web"
	"fitura/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type Controller struct {
	*web.App
	fileServerBasePath string
}

func NewController(app *web.App, fileServerBasePath string) *Controller {
	return &Controller{app, fileServerBasePath}
}

// File serves stored media (member photos, QR codes, receipts). Directory
// listings are refused; only exact files are served.
func (cf Controller) File(c *gin.Context) {
	fs := gin.Dir(cf.fileServerBasePath, false)

	file := c.Param("filepath")

	f, err := fs.Open(file)
	if err != nil {
		c.JSON(http.StatusNotFound, map[string]any{
			"error":  "file not found",
			"status": false,
		})
		return
	}
	f.Close()

	http.ServeFile(c.Writer, c.Request, cf.fileServerBasePath+file)
}

// Upload stores a member photo and returns its path for the client record.
func (cf Controller) Upload(c *web.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "file form field is required"), http.StatusBadRequest))
	}

	path, err := service.Upload(fileHeader, "photos")
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusBadRequest))
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]string{
			"path": path,
		},
		"status": true,
	}, http.StatusOK)
}
