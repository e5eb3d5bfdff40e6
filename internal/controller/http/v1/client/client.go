package client

import (
	"net/http"
	"reflect"

	"fitura/backend/foundation/web"
	"fitura/backend/internal/repository/postgres/client"
	"fitura/backend/internal/service"
	"fitura/backend/internal/service/importer"

	"github.com/pkg/errors"
)

type Controller struct {
	client Client
}

func NewController(client Client) *Controller {
	return &Controller{client}
}

func (uc Controller) GetList(c *web.Context) error {
	var filter client.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if search, ok := c.GetQueryFunc(reflect.String, "search").(*string); ok {
		filter.Search = search
	}
	if planID, ok := c.GetQueryFunc(reflect.Int, "plan_id").(*int); ok {
		filter.PlanID = planID
	}

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.client.GetList(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   count,
		},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetExpiring(c *web.Context) error {
	list, err := uc.client.GetExpiring(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   list,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetDetailByNumber(c *web.Context) error {
	number := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.client.GetDetailByNumber(c.Ctx, number)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Create(c *web.Context) error {
	var request client.CreateRequest

	if err := c.BindFunc(&request, "FirstName", "Phone"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.client.Create(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) UpdateColumns(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request client.UpdateRequest

	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	request.ID = id

	err := uc.client.UpdateColumns(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Delete(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	err := uc.client.Delete(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) FixNumbers(c *web.Context) error {
	response, err := uc.client.FixNumbers(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetQrCode(c *web.Context) error {
	number, ok := c.GetQueryFunc(reflect.Int, "client_id").(*int)
	if !ok || number == nil {
		return c.RespondError(web.NewRequestError(errors.New("client_id query parameter is required"), http.StatusBadRequest))
	}

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	path, err := uc.client.GenerateQr(c.Ctx, *number)
	if err != nil {
		return c.RespondError(err)
	}

	c.File(path)
	return nil
}

func (uc Controller) GetQrCodeList(c *web.Context) error {
	path, err := uc.client.QrRosterPdf(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	c.FileAttachment(path, "members_qr.pdf")
	return nil
}

func (uc Controller) Export(c *web.Context) error {
	fileName, err := uc.client.ExportXlsx(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	c.FileAttachment(fileName, fileName)
	return nil
}

func (uc Controller) Receipt(c *web.Context) error {
	number := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	data, err := uc.client.GetReceiptData(c.Ctx, number)
	if err != nil {
		return c.RespondError(err)
	}

	path, err := service.BuildReceipt(data)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "rendering receipt"), http.StatusInternalServerError))
	}

	c.FileAttachment(path, "receipt.pdf")
	return nil
}

func (uc Controller) ImportCsv(c *web.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "file form field is required"), http.StatusBadRequest))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "opening uploaded file"), http.StatusBadRequest))
	}
	defer src.Close()

	records, err := importer.Parse(src)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusBadRequest))
	}

	response, err := uc.client.ImportCsv(c.Ctx, records)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}
