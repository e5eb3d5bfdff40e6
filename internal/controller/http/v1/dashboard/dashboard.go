package dashboard

import (
	"net/http"

	"fitura/backend/foundation/web"
)

type Controller struct {
	dashboard Dashboard
}

func NewController(dashboard Dashboard) *Controller {
	return &Controller{dashboard}
}

func (uc Controller) GetStats(c *web.Context) error {
	stats, err := uc.dashboard.GetStats(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   stats,
		"status": true,
	}, http.StatusOK)
}
