package services

import (
	"context"
	"time"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/ports"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/repositories"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/valueobjects"
)

// PerformanceLimit é o número de linhas do relatório de desempenho
const PerformanceLimit = 10

// ReportService monta os relatórios do painel do operador
type ReportService struct {
	reportRepo repositories.ReportRepository
	logger     ports.Logger
	now        func() time.Time
}

// NewReportService cria um novo ReportService
func NewReportService(reportRepo repositories.ReportRepository, logger ports.Logger) *ReportService {
	return &ReportService{reportRepo: reportRepo, logger: logger, now: time.Now}
}

// Revenue agrupa a receita conforme o período pedido (day, month ou year; outros valores viram month)
func (s *ReportService) Revenue(ctx context.Context, scope *string, rawPeriod string) ([]repositories.RevenueBucket, valueobjects.ReportPeriod, error) {
	period := valueobjects.ParseReportPeriod(rawPeriod)

	buckets, err := s.reportRepo.Revenue(ctx, scope, period.Bucketing())
	if err != nil {
		s.logger.Error("revenue report failed", "period", period, "error", err)
		return nil, period, err
	}
	return buckets, period, nil
}

// Performance retorna as 10 linhas com maior receita
func (s *ReportService) Performance(ctx context.Context, scope *string) ([]repositories.LinePerformance, error) {
	lines, err := s.reportRepo.Performance(ctx, scope, PerformanceLimit)
	if err != nil {
		s.logger.Error("performance report failed", "error", err)
		return nil, err
	}
	return lines, nil
}

// Dashboard retorna os indicadores do dia
func (s *ReportService) Dashboard(ctx context.Context, scope *string) (*repositories.DashboardSummary, error) {
	summary, err := s.reportRepo.Dashboard(ctx, scope, s.now())
	if err != nil {
		s.logger.Error("dashboard summary failed", "error", err)
		return nil, err
	}
	return summary, nil
}
