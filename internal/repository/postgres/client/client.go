package client

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fitura/backend/foundation/web"
	"fitura/backend/internal/auth"
	"fitura/backend/internal/pkg/repository/postgresql"
	"fitura/backend/internal/repository/postgres"
	"fitura/backend/internal/service"
	"fitura/backend/internal/service/importer"
	"fitura/backend/internal/service/ledger"
	"fitura/backend/internal/service/sequence"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// Client numbers are allocated densely from 1 and never get near this bound.
// A larger value in a check-in request is treated as an internal row id, which
// keeps old QR cards that encoded the internal id working.
const internalIDThreshold = 100000

type Repository struct {
	*postgresql.Database

	allocator *sequence.Allocator
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{
		Database:  database,
		allocator: sequence.NewAllocator(database),
	}
}

// Resolve maps a scanned client reference to the internal row id.
func (r Repository) Resolve(ctx context.Context, clientID string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(clientID))
	if err != nil || n < 1 {
		return 0, web.NewRequestError(ledger.ErrClientNotFound, http.StatusNotFound)
	}

	column := "client_number"
	if n >= internalIDThreshold {
		column = "id"
	}

	var id int
	query := fmt.Sprintf(`SELECT id FROM clients WHERE deleted_at IS NULL AND %s = $1`, column)

	err = r.QueryRowContext(ctx, query, n).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, web.NewRequestError(ledger.ErrClientNotFound, http.StatusNotFound)
	}
	if err != nil {
		return 0, web.NewRequestError(errors.Wrap(err, "resolving client"), http.StatusInternalServerError)
	}

	return id, nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
		WHERE
			c.deleted_at IS NULL
	`

	if filter.Search != nil {
		search := strings.Replace(*filter.Search, "'", "''", -1)

		whereQuery += fmt.Sprintf(` AND
		(c.first_name ilike '%s' OR c.last_name ilike '%s' OR c.phone ilike '%s' OR c.client_number::text = '%s')`,
			"%"+search+"%", "%"+search+"%", "%"+search+"%", search)
	}
	if filter.PlanID != nil {
		whereQuery += fmt.Sprintf(" AND m.plan_number = %d", *filter.PlanID)
	}

	orderQuery := "ORDER BY c.client_number asc"

	var limitQuery, offsetQuery string

	if filter.Page != nil && filter.Limit != nil {
		offset := (*filter.Page - 1) * (*filter.Limit)
		filter.Offset = &offset
	}

	if filter.Limit != nil {
		limitQuery += fmt.Sprintf(" LIMIT %d", *filter.Limit)
	}

	if filter.Offset != nil {
		offsetQuery += fmt.Sprintf(" OFFSET %d", *filter.Offset)
	}

	query := fmt.Sprintf(`
		SELECT
			c.id,
			c.client_number,
			c.first_name,
			c.last_name,
			c.phone,
			c.email,
			c.photo_url,
			m.plan_number,
			m.name,
			c.joining_date,
			c.expiry_date
		FROM clients c
		LEFT JOIN membership_plans m ON c.membership_plan_id = m.id
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	list, err := r.scanList(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(c.id)
		FROM clients c
		LEFT JOIN membership_plans m ON c.membership_plan_id = m.id
		%s
	`, whereQuery)

	count := 0

	if err := r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "counting clients"), http.StatusInternalServerError)
	}

	return list, count, nil
}

// GetExpiring lists memberships running out between today and the Sunday
// after next, the window the front desk calls members about renewals in.
func (r Repository) GetExpiring(ctx context.Context) ([]GetListResponse, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, err
	}

	today := time.Now()
	daysUntilSunday := (7 - int(today.Weekday())) % 7
	windowEnd := today.AddDate(0, 0, daysUntilSunday+7)

	query := fmt.Sprintf(`
		SELECT
			c.id,
			c.client_number,
			c.first_name,
			c.last_name,
			c.phone,
			c.email,
			c.photo_url,
			m.plan_number,
			m.name,
			c.joining_date,
			c.expiry_date
		FROM clients c
		LEFT JOIN membership_plans m ON c.membership_plan_id = m.id
		WHERE
			c.deleted_at IS NULL
			AND c.expiry_date IS NOT NULL
			AND c.expiry_date BETWEEN '%s' AND '%s'
		ORDER BY c.expiry_date asc
	`, today.Format("2006-01-02"), windowEnd.Format("2006-01-02"))

	return r.scanList(ctx, query)
}

func (r Repository) scanList(ctx context.Context, query string) ([]GetListResponse, error) {
	rows, err := r.QueryContext(ctx, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting clients"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse

	for rows.Next() {
		var (
			detail        GetListResponse
			joiningString *string
			expiryString  *string
		)

		if err = rows.Scan(
			&detail.ID,
			&detail.ClientNumber,
			&detail.FirstName,
			&detail.LastName,
			&detail.Phone,
			&detail.Email,
			&detail.PhotoUrl,
			&detail.PlanNumber,
			&detail.MembershipName,
			&joiningString,
			&expiryString); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning client list"), http.StatusBadRequest)
		}

		if detail.JoiningDate, err = parseDate(joiningString); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "converting joining_date"), http.StatusBadRequest)
		}
		if detail.ExpiryDate, err = parseDate(expiryString); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "converting expiry_date"), http.StatusBadRequest)
		}

		list = append(list, detail)
	}

	return list, rows.Err()
}

func (r Repository) GetDetailByNumber(ctx context.Context, number int) (GetDetailByNumberResponse, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return GetDetailByNumberResponse{}, err
	}

	query := fmt.Sprintf(`
		SELECT
			c.id,
			c.client_number,
			c.first_name,
			c.last_name,
			c.email,
			c.phone,
			c.date_of_birth,
			c.gender,
			c.height,
			c.weight,
			c.photo_url,
			c.address,
			m.plan_number,
			m.name,
			c.joining_date,
			c.expiry_date,
			c.membership_fee,
			c.discount,
			c.paid_amount,
			c.payment_date,
			c.payment_mode,
			c.transaction_id,
			c.fitness_goals
		FROM clients c
		LEFT JOIN membership_plans m ON c.membership_plan_id = m.id
		WHERE c.deleted_at IS NULL AND c.client_number = %d
	`, number)

	var (
		detail        GetDetailByNumberResponse
		birthString   *string
		joiningString *string
		expiryString  *string
		paymentString *string
	)

	err = r.QueryRowContext(ctx, query).Scan(
		&detail.ID,
		&detail.ClientNumber,
		&detail.FirstName,
		&detail.LastName,
		&detail.Email,
		&detail.Phone,
		&birthString,
		&detail.Gender,
		&detail.Height,
		&detail.Weight,
		&detail.PhotoUrl,
		&detail.Address,
		&detail.PlanNumber,
		&detail.MembershipName,
		&joiningString,
		&expiryString,
		&detail.MembershipFee,
		&detail.Discount,
		&detail.PaidAmount,
		&paymentString,
		&detail.PaymentMode,
		&detail.TransactionID,
		&detail.FitnessGoals,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByNumberResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByNumberResponse{}, web.NewRequestError(errors.Wrap(err, "selecting client detail"), http.StatusInternalServerError)
	}

	if detail.DateOfBirth, err = parseDate(birthString); err != nil {
		return GetDetailByNumberResponse{}, web.NewRequestError(errors.Wrap(err, "converting date_of_birth"), http.StatusBadRequest)
	}
	if detail.JoiningDate, err = parseDate(joiningString); err != nil {
		return GetDetailByNumberResponse{}, web.NewRequestError(errors.Wrap(err, "converting joining_date"), http.StatusBadRequest)
	}
	if detail.ExpiryDate, err = parseDate(expiryString); err != nil {
		return GetDetailByNumberResponse{}, web.NewRequestError(errors.Wrap(err, "converting expiry_date"), http.StatusBadRequest)
	}
	if detail.PaymentDate, err = parseDate(paymentString); err != nil {
		return GetDetailByNumberResponse{}, web.NewRequestError(errors.Wrap(err, "converting payment_date"), http.StatusBadRequest)
	}

	return detail, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin, auth.RoleReception)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "FirstName", "Phone"); err != nil {
		return CreateResponse{}, err
	}

	var response CreateResponse

	response.FirstName = request.FirstName
	response.LastName = request.LastName
	response.Email = request.Email
	response.Phone = request.Phone
	response.Gender = request.Gender
	response.Height = request.Height
	response.Weight = request.Weight
	response.PhotoUrl = request.PhotoUrl
	response.Address = request.Address
	response.MembershipFee = request.MembershipFee
	response.Discount = request.Discount
	response.PaidAmount = request.PaidAmount
	response.PaymentMode = request.PaymentMode
	response.TransactionID = request.TransactionID
	response.FitnessGoals = request.FitnessGoals
	response.CreatedAt = time.Now()
	response.CreatedBy = claims.UserId

	if response.DateOfBirth, err = parseDay(request.DateOfBirth); err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "parsing date_of_birth"), http.StatusBadRequest)
	}
	if response.JoiningDate, err = parseDay(request.JoiningDate); err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "parsing joining_date"), http.StatusBadRequest)
	}
	if response.ExpiryDate, err = parseDay(request.ExpiryDate); err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "parsing expiry_date"), http.StatusBadRequest)
	}
	if response.PaymentDate, err = parseDay(request.PaymentDate); err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "parsing payment_date"), http.StatusBadRequest)
	}

	if response.JoiningDate == nil {
		now := time.Now()
		response.JoiningDate = &now
	}

	if request.PlanNumber != nil {
		planID, durationDays, err := r.planByNumber(ctx, *request.PlanNumber)
		if err != nil {
			return CreateResponse{}, err
		}
		response.MembershipPlanID = &planID

		if response.ExpiryDate == nil {
			expiry := response.JoiningDate.AddDate(0, 0, durationDays)
			response.ExpiryDate = &expiry
		}
	}

	// Two concurrent creates can pick the same number; the unique index
	// rejects the loser, who re-reads and tries the next free number once.
	for attempt := 0; ; attempt++ {
		number, err := r.allocator.Allocate(ctx, sequence.KindClient)
		if err != nil {
			return CreateResponse{}, err
		}
		response.ClientNumber = number

		_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
		if err == nil {
			return response, nil
		}
		if postgresql.IsUniqueViolation(err) && attempt == 0 {
			continue
		}
		if postgresql.IsUniqueViolation(err) {
			return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "client number conflict"), http.StatusConflict)
		}
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating client"), http.StatusBadRequest)
	}
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin, auth.RoleReception)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	q := r.NewUpdate().Table("clients").Where("deleted_at IS NULL AND id = ?", request.ID)

	if request.FirstName != nil {
		q.Set("first_name = ?", request.FirstName)
	}
	if request.LastName != nil {
		q.Set("last_name = ?", request.LastName)
	}
	if request.Email != nil {
		q.Set("email = ?", request.Email)
	}
	if request.Phone != nil {
		q.Set("phone = ?", request.Phone)
	}
	if request.Gender != nil {
		q.Set("gender = ?", request.Gender)
	}
	if request.Height != nil {
		q.Set("height = ?", request.Height)
	}
	if request.Weight != nil {
		q.Set("weight = ?", request.Weight)
	}
	if request.PhotoUrl != nil {
		q.Set("photo_url = ?", request.PhotoUrl)
	}
	if request.Address != nil {
		q.Set("address = ?", request.Address)
	}
	if request.MembershipFee != nil {
		q.Set("membership_fee = ?", request.MembershipFee)
	}
	if request.Discount != nil {
		q.Set("discount = ?", request.Discount)
	}
	if request.PaidAmount != nil {
		q.Set("paid_amount = ?", request.PaidAmount)
	}
	if request.PaymentMode != nil {
		q.Set("payment_mode = ?", request.PaymentMode)
	}
	if request.TransactionID != nil {
		q.Set("transaction_id = ?", request.TransactionID)
	}
	if request.FitnessGoals != nil {
		q.Set("fitness_goals = ?", request.FitnessGoals)
	}

	for column, value := range map[string]*string{
		"date_of_birth": request.DateOfBirth,
		"joining_date":  request.JoiningDate,
		"expiry_date":   request.ExpiryDate,
		"payment_date":  request.PaymentDate,
	} {
		if value == nil {
			continue
		}
		day, err := parseDay(*value)
		if err != nil {
			return web.NewRequestError(errors.Wrapf(err, "parsing %s", column), http.StatusBadRequest)
		}
		q.Set(column+" = ?", day)
	}

	if request.PlanNumber != nil {
		planID, _, err := r.planByNumber(ctx, *request.PlanNumber)
		if err != nil {
			return err
		}
		q.Set("membership_plan_id = ?", planID)
	}

	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	_, err = q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating client"), http.StatusBadRequest)
	}

	return nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	return r.DeleteRow(ctx, "clients", id)
}

// FixNumbers reassigns client numbers that are missing, non-positive or
// duplicated. Older imports produced all three.
func (r Repository) FixNumbers(ctx context.Context) (FixNumbersResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return FixNumbersResponse{}, err
	}

	query := `
		SELECT id FROM clients c
		WHERE c.deleted_at IS NULL AND (
			c.client_number IS NULL
			OR c.client_number < 1
			OR EXISTS (
				SELECT 1 FROM clients o
				WHERE o.deleted_at IS NULL
					AND o.client_number = c.client_number
					AND o.id < c.id
			)
		)
		ORDER BY c.id
	`

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return FixNumbersResponse{}, web.NewRequestError(errors.Wrap(err, "selecting broken client numbers"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return FixNumbersResponse{}, web.NewRequestError(errors.Wrap(err, "scanning broken client numbers"), http.StatusInternalServerError)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return FixNumbersResponse{}, web.NewRequestError(errors.Wrap(err, "scanning broken client numbers"), http.StatusInternalServerError)
	}

	var response FixNumbersResponse

	for _, id := range ids {
		number, err := r.allocator.Allocate(ctx, sequence.KindClient)
		if err != nil {
			return FixNumbersResponse{}, err
		}

		q := r.NewUpdate().Table("clients").Where("deleted_at IS NULL AND id = ?", id)
		q.Set("client_number = ?", number)
		q.Set("updated_at = ?", time.Now())
		q.Set("updated_by = ?", claims.UserId)

		if _, err := q.Exec(ctx); err != nil {
			return FixNumbersResponse{}, web.NewRequestError(errors.Wrapf(err, "fixing client %d", id), http.StatusInternalServerError)
		}

		response.Fixed++
		response.Numbers = append(response.Numbers, number)
	}

	return response, nil
}

// GenerateQr writes the check-in QR PNG for a client and returns its path.
func (r Repository) GenerateQr(ctx context.Context, number int) (string, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return "", err
	}

	var exists bool
	if err := r.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM clients WHERE deleted_at IS NULL AND client_number = $1)`, number).Scan(&exists); err != nil {
		return "", web.NewRequestError(errors.Wrap(err, "checking client"), http.StatusInternalServerError)
	}
	if !exists {
		return "", web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	return service.MemberQr(number)
}

// QrRosterPdf renders the printable QR sheet for every active member.
func (r Repository) QrRosterPdf(ctx context.Context) (string, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return "", err
	}

	query := `
		SELECT client_number, first_name, last_name
		FROM clients
		WHERE deleted_at IS NULL AND client_number IS NOT NULL
		ORDER BY client_number
	`

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return "", web.NewRequestError(errors.Wrap(err, "selecting clients for qr roster"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var members []service.QrMember

	for rows.Next() {
		var (
			number    int
			firstName *string
			lastName  *string
		)
		if err := rows.Scan(&number, &firstName, &lastName); err != nil {
			return "", web.NewRequestError(errors.Wrap(err, "scanning qr roster"), http.StatusInternalServerError)
		}
		members = append(members, service.QrMember{
			ClientNumber: number,
			FullName:     strings.TrimSpace(deref(firstName) + " " + deref(lastName)),
		})
	}
	if err := rows.Err(); err != nil {
		return "", web.NewRequestError(errors.Wrap(err, "scanning qr roster"), http.StatusInternalServerError)
	}

	path, err := service.QrRoster(members)
	if err != nil {
		return "", web.NewRequestError(errors.Wrap(err, "rendering qr roster"), http.StatusInternalServerError)
	}

	return path, nil
}

// ExportXlsx writes the roster to an xlsx file and returns its name.
func (r Repository) ExportXlsx(ctx context.Context) (string, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return "", err
	}

	query := `
		SELECT
			c.client_number,
			c.first_name,
			c.last_name,
			c.phone,
			c.email,
			m.name,
			c.joining_date,
			c.expiry_date
		FROM clients c
		LEFT JOIN membership_plans m ON c.membership_plan_id = m.id
		WHERE c.deleted_at IS NULL AND c.client_number IS NOT NULL
		ORDER BY c.client_number
	`

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return "", web.NewRequestError(errors.Wrap(err, "selecting clients for export"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var export []service.ClientRow

	for rows.Next() {
		var (
			row           service.ClientRow
			firstName     *string
			lastName      *string
			phone         *string
			email         *string
			membership    *string
			joiningString *string
			expiryString  *string
		)
		if err := rows.Scan(&row.ClientNumber, &firstName, &lastName, &phone, &email, &membership, &joiningString, &expiryString); err != nil {
			return "", web.NewRequestError(errors.Wrap(err, "scanning export row"), http.StatusInternalServerError)
		}
		row.FirstName = deref(firstName)
		row.LastName = deref(lastName)
		row.Phone = deref(phone)
		row.Email = deref(email)
		row.Membership = deref(membership)
		row.JoiningDate = deref(joiningString)
		row.ExpiryDate = deref(expiryString)

		export = append(export, row)
	}
	if err := rows.Err(); err != nil {
		return "", web.NewRequestError(errors.Wrap(err, "scanning export rows"), http.StatusInternalServerError)
	}

	fileName := fmt.Sprintf("clients_%s.xlsx", time.Now().Format("20060102T150405"))
	if err := service.AddClientsToExcel(export, fileName); err != nil {
		return "", web.NewRequestError(errors.Wrap(err, "writing export file"), http.StatusInternalServerError)
	}

	return fileName, nil
}

// GetReceiptData gathers everything the receipt PDF needs for one client.
func (r Repository) GetReceiptData(ctx context.Context, number int) (service.ReceiptData, error) {
	detail, err := r.GetDetailByNumber(ctx, number)
	if err != nil {
		return service.ReceiptData{}, err
	}

	data := service.ReceiptData{
		GymName:      "Fitura",
		Currency:     "INR",
		ClientNumber: number,
		ClientName:   strings.TrimSpace(deref(detail.FirstName) + " " + deref(detail.LastName)),
		Membership:   deref(detail.MembershipName),
	}

	if detail.JoiningDate != nil {
		data.JoiningDate = detail.JoiningDate.String()
	}
	if detail.ExpiryDate != nil {
		data.ExpiryDate = detail.ExpiryDate.String()
	}
	if detail.PaymentDate != nil {
		data.PaymentDate = detail.PaymentDate.String()
	}
	if detail.MembershipFee != nil {
		data.MembershipFee = *detail.MembershipFee
	}
	if detail.Discount != nil {
		data.Discount = *detail.Discount
	}
	if detail.PaidAmount != nil {
		data.PaidAmount = *detail.PaidAmount
	}
	data.PaymentMode = deref(detail.PaymentMode)
	data.TransactionID = deref(detail.TransactionID)

	// Branding comes from the single gym_info row when it is set up.
	var gymName, currency *string
	err = r.QueryRowContext(ctx, `SELECT gym_name, currency FROM gym_info WHERE deleted_at IS NULL LIMIT 1`).Scan(&gymName, &currency)
	if err == nil {
		if deref(gymName) != "" {
			data.GymName = *gymName
		}
		if deref(currency) != "" {
			data.Currency = *currency
		}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return service.ReceiptData{}, web.NewRequestError(errors.Wrap(err, "selecting gym info"), http.StatusInternalServerError)
	}

	return data, nil
}

// ImportCsv creates clients from parsed legacy roster rows, creating the
// membership plans they reference on demand.
func (r Repository) ImportCsv(ctx context.Context, records []importer.Row) (ImportResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return ImportResponse{}, err
	}

	var response ImportResponse

	for i, record := range records {
		months := importer.MonthsFromText(record.SubscriptionMonths)
		days := importer.DurationDays(months)

		planID, created, err := r.planForDuration(ctx, months, days, record.SubscriptionAmount, claims.UserId)
		if err != nil {
			return response, err
		}
		if created {
			response.PlansCreated++
		}

		joining := parseLegacyDay(record.JoinedDate)
		if record.RenewedDate != "" {
			if renewed := parseLegacyDay(record.RenewedDate); renewed != nil {
				joining = renewed
			}
		}
		if joining == nil {
			now := time.Now()
			joining = &now
		}

		expiry := parseLegacyDay(record.ExpiryDate)
		if expiry == nil {
			e := joining.AddDate(0, 0, days)
			expiry = &e
		}

		row := CreateResponse{
			FirstName:        &record.FirstName,
			LastName:         &record.LastName,
			Phone:            &record.Mobile,
			MembershipPlanID: &planID,
			JoiningDate:      joining,
			ExpiryDate:       expiry,
			MembershipFee:    &record.SubscriptionAmount,
			PaidAmount:       &record.PaidAmount,
			CreatedAt:        time.Now(),
			CreatedBy:        claims.UserId,
		}
		if record.Email != "" {
			row.Email = &record.Email
		}
		if record.Gender != "" {
			row.Gender = &record.Gender
		}
		if record.Address != "" {
			row.Address = &record.Address
		}
		if record.GymGoal != "" {
			row.FitnessGoals = &record.GymGoal
		}
		if h, err := strconv.ParseFloat(record.Height, 64); err == nil {
			row.Height = &h
		}
		if w, err := strconv.ParseFloat(record.Weight, 64); err == nil {
			row.Weight = &w
		}
		if dob := parseLegacyDay(record.DateOfBirth); dob != nil {
			row.DateOfBirth = dob
		}
		if paid := parseLegacyDay(record.RecentPaidDate); paid != nil {
			row.PaymentDate = paid
		}

		inserted := false
		for attempt := 0; attempt < 2; attempt++ {
			number, err := r.allocator.Allocate(ctx, sequence.KindClient)
			if err != nil {
				return response, err
			}
			row.ClientNumber = number

			if _, err = r.NewInsert().Model(&row).Returning("id").Exec(ctx, &row.ID); err == nil {
				inserted = true
				break
			}
			if !postgresql.IsUniqueViolation(err) {
				return response, web.NewRequestError(errors.Wrapf(err, "importing row %d", i+2), http.StatusBadRequest)
			}
		}
		if !inserted {
			response.Skipped = append(response.Skipped, fmt.Sprintf("row %d: client number conflict", i+2))
			continue
		}

		response.Created++
	}

	return response, nil
}

func (r Repository) planByNumber(ctx context.Context, number int) (int, int, error) {
	var (
		id           int
		durationDays int
	)

	err := r.QueryRowContext(ctx,
		`SELECT id, duration_days FROM membership_plans WHERE deleted_at IS NULL AND plan_number = $1`, number).
		Scan(&id, &durationDays)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, web.NewRequestError(errors.New("membership plan not found"), http.StatusBadRequest)
	}
	if err != nil {
		return 0, 0, web.NewRequestError(errors.Wrap(err, "selecting membership plan"), http.StatusInternalServerError)
	}

	return id, durationDays, nil
}

func (r Repository) planForDuration(ctx context.Context, months, days int, price float64, userID int) (int, bool, error) {
	var id int

	err := r.QueryRowContext(ctx,
		`SELECT id FROM membership_plans WHERE deleted_at IS NULL AND duration_days = $1 ORDER BY id LIMIT 1`, days).
		Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, false, web.NewRequestError(errors.Wrap(err, "selecting plan by duration"), http.StatusInternalServerError)
	}

	name := fmt.Sprintf("%d Months", months)
	if months == 1 {
		name = "1 Month"
	}

	for attempt := 0; ; attempt++ {
		number, err := r.allocator.Allocate(ctx, sequence.KindMembershipPlan)
		if err != nil {
			return 0, false, err
		}

		row := struct {
			bun.BaseModel `bun:"table:membership_plans"`

			ID           int       `bun:"-"`
			PlanNumber   int       `bun:"plan_number"`
			Name         string    `bun:"name"`
			DurationDays int       `bun:"duration_days"`
			Price        float64   `bun:"price"`
			IsActive     bool      `bun:"is_active"`
			CreatedAt    time.Time `bun:"created_at"`
			CreatedBy    int       `bun:"created_by"`
		}{
			PlanNumber:   number,
			Name:         name,
			DurationDays: days,
			Price:        price,
			IsActive:     true,
			CreatedAt:    time.Now(),
			CreatedBy:    userID,
		}

		if _, err = r.NewInsert().Model(&row).Returning("id").Exec(ctx, &row.ID); err == nil {
			return row.ID, true, nil
		}
		if postgresql.IsUniqueViolation(err) && attempt == 0 {
			continue
		}
		return 0, false, web.NewRequestError(errors.Wrap(err, "creating plan during import"), http.StatusBadRequest)
	}
}

func parseDate(s *string) (*date.Date, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := date.ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func parseDay(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseLegacyDay accepts the date shapes seen in old roster exports and
// gives up quietly on anything else.
func parseLegacyDay(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", "02/01/2006", "02-01-2006", "Jan 2, 2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
