package attendance

import (
	"net/http"
	"reflect"
	"time"

	"fitura/backend/foundation/web"
	"fitura/backend/internal/repository/postgres/attendance"
	"fitura/backend/internal/service/ledger"
	"fitura/backend/internal/service/timesheet"

	"github.com/pkg/errors"
)

type Controller struct {
	attendance Attendance
	ledger     *ledger.Service
	settings   Settings
}

func NewController(attendance Attendance, ledger *ledger.Service, settings Settings) *Controller {
	return &Controller{attendance: attendance, ledger: ledger, settings: settings}
}

func (uc Controller) GetList(c *web.Context) error {
	// Close yesterday's stragglers before reporting on today.
	if _, err := uc.ledger.Sweep(c.Ctx, uc.settings.GetCutoff(c.Ctx)); err != nil {
		return c.RespondError(err)
	}

	var filter attendance.Filter

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
	if clientID, ok := c.GetQueryFunc(reflect.Int, "client_id").(*int); ok {
		filter.ClientID = clientID
	}
	if status, ok := c.GetQueryFunc(reflect.String, "status").(*string); ok {
		filter.Status = status
	}
	if date, ok := c.GetQueryFunc(reflect.String, "date").(*string); ok {
		filter.Date = date
	}

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.attendance.GetList(c.Ctx, filter)
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

// CheckIn records a check-in event. The same endpoint checks a member out:
// the second scan of the day flips the record to OUT, a third flips it back.
func (uc Controller) CheckIn(c *web.Context) error {
	var request attendance.CheckInRequest

	if err := c.BindFunc(&request, "ClientID"); err != nil {
		return c.RespondError(err)
	}

	now := time.Now()

	day := now
	if request.Date != "" {
		parsed, err := time.Parse("2006-01-02", request.Date)
		if err != nil {
			return c.RespondError(web.NewRequestError(errors.Wrap(err, "parsing date"), http.StatusBadRequest))
		}
		day = parsed
	}

	at := now.Format("15:04")
	if request.Time != "" {
		if _, err := timesheet.ParseClock(request.Time); err != nil {
			return c.RespondError(web.NewRequestError(err, http.StatusBadRequest))
		}
		at = request.Time
	}

	result, err := uc.ledger.CheckIn(c.Ctx, request.ClientID, day, at)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": attendance.CheckInResponse{
			ID:       result.ID,
			ClientID: result.ClientRef,
			Date:     result.Day.Format("2006-01-02"),
			InTime:   result.InTime,
			OutTime:  result.OutTime,
			Status:   result.Status,
			Duration: result.Duration,
		},
		"status": true,
	}, http.StatusOK)
}

// AutoCheckout runs the end-of-day sweep on demand, with an optional cutoff
// override. The nightly cron calls this.
func (uc Controller) AutoCheckout(c *web.Context) error {
	cutoff := uc.settings.GetCutoff(c.Ctx)

	if endTime, ok := c.GetQueryFunc(reflect.String, "end_time").(*string); ok && endTime != nil {
		cutoff = *endTime
	}

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	closed, err := uc.ledger.Sweep(c.Ctx, cutoff)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusBadRequest))
	}

	return c.Respond(map[string]interface{}{
		"data":   attendance.AutoCheckoutResponse{Closed: closed},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Delete(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	err := uc.attendance.Delete(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}
