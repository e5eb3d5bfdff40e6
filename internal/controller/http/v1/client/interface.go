package client

import (
	"context"

	"fitura/backend/internal/repository/postgres/client"
	"fitura/backend/internal/service"
	"fitura/backend/internal/service/importer"
)

type Client interface {
	GetList(ctx context.Context, filter client.Filter) ([]client.GetListResponse, int, error)
	GetExpiring(ctx context.Context) ([]client.GetListResponse, error)
	GetDetailByNumber(ctx context.Context, number int) (client.GetDetailByNumberResponse, error)
	Create(ctx context.Context, request client.CreateRequest) (client.CreateResponse, error)
	UpdateColumns(ctx context.Context, request client.UpdateRequest) error
	Delete(ctx context.Context, id int) error
	FixNumbers(ctx context.Context) (client.FixNumbersResponse, error)
	GenerateQr(ctx context.Context, number int) (string, error)
	QrRosterPdf(ctx context.Context) (string, error)
	ExportXlsx(ctx context.Context) (string, error)
	GetReceiptData(ctx context.Context, number int) (service.ReceiptData, error)
	ImportCsv(ctx context.Context, records []importer.Row) (client.ImportResponse, error)
}
