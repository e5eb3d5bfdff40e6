// Package postgresql owns the bun database handle and the cross-repository
// helpers: claims lookup, request validation and soft deletes.
package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"reflect"
	"strings"
	"time"

	"fitura/backend/foundation/web"
	"fitura/backend/internal/auth"
	"fitura/backend/internal/service/sequence"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
)

type Config struct {
	Username   string
	Password   string
	Host       string
	Port       string
	Name       string
	DisableTLS bool
}

type Database struct {
	*bun.DB
}

func NewDatabase(cfg Config) *Database {
	sslMode := "require"
	if cfg.DisableTLS {
		sslMode = "disable"
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Name, sslMode)

	sqlDB := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqlDB, pgdialect.New())

	if os.Getenv("DEBUG") == "true" {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	return &Database{DB: db}
}

// CheckClaims pulls the authenticated claims from the context and, when roles
// are given, checks the caller holds one of them.
func (d Database) CheckClaims(ctx context.Context, roles ...string) (auth.Claims, error) {
	claims, ok := ctx.Value(auth.Key).(auth.Claims)
	if !ok {
		return auth.Claims{}, web.NewRequestError(errors.New("claims missing from context"), http.StatusUnauthorized)
	}

	if len(roles) > 0 && !claims.Authorized(roles...) {
		return auth.Claims{}, web.NewRequestError(errors.New("attempted action is not allowed"), http.StatusUnauthorized)
	}

	return claims, nil
}

// ValidateStruct checks that the named fields of a request struct are set.
// Rejected before any storage call.
func (d Database) ValidateStruct(s interface{}, requiredFields ...string) error {
	rv := reflect.ValueOf(s)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}

	var missing []string
	for _, name := range requiredFields {
		field := rv.FieldByName(name)
		if !field.IsValid() || field.IsZero() {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return web.NewRequestError(errors.Errorf("required fields missing: %s", strings.Join(missing, ", ")), http.StatusBadRequest)
	}

	return nil
}

// DeleteRow soft deletes a row, stamping who removed it.
func (d Database) DeleteRow(ctx context.Context, table string, id int) error {
	claims, err := d.CheckClaims(ctx)
	if err != nil {
		return err
	}

	q := d.NewUpdate().Table(table).Where("deleted_at IS NULL AND id = ?", id)
	q.Set("deleted_at = ?", time.Now())
	q.Set("deleted_by = ?", claims.UserId)

	res, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrapf(err, "deleting from %s", table), http.StatusInternalServerError)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return web.NewRequestError(errors.Errorf("%s row not found", table), http.StatusNotFound)
	}

	return nil
}

// ListIdentifiers reports the numbers currently assigned in one of the
// human-facing number namespaces. Soft-deleted rows free their number.
func (d Database) ListIdentifiers(ctx context.Context, kind sequence.Kind) ([]int, error) {
	var table, column string
	switch kind {
	case sequence.KindClient:
		table, column = "clients", "client_number"
	case sequence.KindMembershipPlan:
		table, column = "membership_plans", "plan_number"
	default:
		return nil, errors.Errorf("unknown number namespace %q", kind)
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE deleted_at IS NULL AND %s IS NOT NULL`, column, table, column)

	rows, err := d.QueryContext(ctx, query)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrapf(err, "selecting %s numbers", kind), http.StatusInternalServerError)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, web.NewRequestError(errors.Wrapf(err, "scanning %s number", kind), http.StatusInternalServerError)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// IsUniqueViolation reports whether the error is a Postgres unique-constraint
// violation (SQLSTATE 23505). The identifier allocator relies on this to tell
// a collided insert apart from other failures.
func IsUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == "23505"
	}
	return false
}
