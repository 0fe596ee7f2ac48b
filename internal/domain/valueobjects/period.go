package valueobjects

import (
	"strings"
	"time"
)

// ReportPeriod é o seletor de período dos relatórios de receita
type ReportPeriod string

const (
	PeriodDay   ReportPeriod = "day"
	PeriodMonth ReportPeriod = "month"
	PeriodYear  ReportPeriod = "year"
)

// ParseReportPeriod aceita day, month e year; qualquer outro valor vira month
func ParseReportPeriod(raw string) ReportPeriod {
	switch ReportPeriod(strings.ToLower(strings.TrimSpace(raw))) {
	case PeriodDay:
		return PeriodDay
	case PeriodYear:
		return PeriodYear
	default:
		return PeriodMonth
	}
}

// Bucketing descreve como agrupar um período: unidade de date_trunc e janela retroativa
type Bucketing struct {
	Unit     string        // hour, week ou month
	Step     string        // intervalo postgres entre buckets ("1 hour")
	Window   string        // intervalo postgres da janela ("1 day")
	Duration time.Duration // a mesma janela em Go
}

// Bucketing retorna o agrupamento do período.
// day: buckets por hora em 1 dia; year: por mês em 365 dias; month: por semana em 7 dias.
func (p ReportPeriod) Bucketing() Bucketing {
	switch p {
	case PeriodDay:
		return Bucketing{Unit: "hour", Step: "1 hour", Window: "1 day", Duration: 24 * time.Hour}
	case PeriodYear:
		return Bucketing{Unit: "month", Step: "1 month", Window: "365 days", Duration: 365 * 24 * time.Hour}
	default:
		return Bucketing{Unit: "week", Step: "1 week", Window: "7 days", Duration: 7 * 24 * time.Hour}
	}
}
