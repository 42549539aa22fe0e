package service

import (
	"context"

	"github.com/Michelteixeiradev/sistema-loja/internal/dto"
	"github.com/Michelteixeiradev/sistema-loja/internal/repository"

	"github.com/shopspring/decimal"
)

const topProductsLimit = 10

// ReportService serves the read-only period queries consumed by the report
// viewer and by the PDF/Excel exporters. It never mutates anything.
type ReportService interface {
	SalesReport(ctx context.Context, filter dto.ReportFilter) (*dto.SalesReportResponse, error)
	TopProducts(ctx context.Context, filter dto.ReportFilter) (*dto.TopProductsResponse, error)
}

type reportService struct {
	saleRepo repository.SaleRepository
}

func NewReportService(saleRepo repository.SaleRepository) ReportService {
	return &reportService{saleRepo: saleRepo}
}

func (s *reportService) SalesReport(ctx context.Context, filter dto.ReportFilter) (*dto.SalesReportResponse, error) {
	from, to, err := parsePeriod(filter.From, filter.To)
	if err != nil {
		return nil, err
	}

	// Reports are unpaginated: the whole period feeds one document.
	sales, total, err := s.saleRepo.ListByPeriod(ctx, from, to, dto.SaleFilter{Page: 1, Limit: 10000})
	if err != nil {
		return nil, err
	}

	resp := &dto.SalesReportResponse{
		From:       filter.From,
		To:         filter.To,
		TotalCount: int(total),
		Revenue:    decimal.Zero,
	}
	for i := range sales {
		resp.Sales = append(resp.Sales, *saleToResponse(&sales[i]))
		resp.Revenue = resp.Revenue.Add(sales[i].Total)
	}
	return resp, nil
}

func (s *reportService) TopProducts(ctx context.Context, filter dto.ReportFilter) (*dto.TopProductsResponse, error) {
	from, to, err := parsePeriod(filter.From, filter.To)
	if err != nil {
		return nil, err
	}

	rows, err := s.saleRepo.TopProducts(ctx, from, to, topProductsLimit)
	if err != nil {
		return nil, err
	}

	resp := &dto.TopProductsResponse{From: filter.From, To: filter.To}
	for _, row := range rows {
		resp.Data = append(resp.Data, dto.TopProductEntry{Name: row.Name, TotalSold: row.TotalSold})
	}
	return resp, nil
}
