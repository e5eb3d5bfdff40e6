package gyminfo

import (
	"net/http"
	"reflect"

	"fitura/backend/foundation/web"
	"fitura/backend/internal/repository/postgres/gyminfo"
)

type Controller struct {
	gymInfo GymInfo
}

func NewController(gymInfo GymInfo) *Controller {
	return &Controller{gymInfo}
}

func (uc Controller) GetList(c *web.Context) error {
	list, err := uc.gymInfo.GetList(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   list,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) UpdateColumns(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request gyminfo.UpdateRequest

	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	request.ID = id

	err := uc.gymInfo.UpdateColumns(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}
