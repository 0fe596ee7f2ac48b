package services

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/domain/valueobjects"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/infrastructure/logging"
)

var _ = Describe("ReportService", func() {
	var (
		repo    *stubReportRepo
		service *ReportService
		scope   string
	)

	BeforeEach(func() {
		repo = &stubReportRepo{}
		service = NewReportService(repo, logging.NewNopLogger())
		scope = "org-onatra"
	})

	DescribeTable("mapeia o período para o agrupamento",
		func(raw string, period valueobjects.ReportPeriod, unit, window string) {
			_, got, err := service.Revenue(context.Background(), &scope, raw)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(period))
			Expect(repo.bucketing.Unit).To(Equal(unit))
			Expect(repo.bucketing.Window).To(Equal(window))
			Expect(*repo.scope).To(Equal(scope))
		},
		Entry("day", "day", valueobjects.PeriodDay, "hour", "1 day"),
		Entry("month", "month", valueobjects.PeriodMonth, "week", "7 days"),
		Entry("year", "YEAR", valueobjects.PeriodYear, "month", "365 days"),
		Entry("vazio vira month", "", valueobjects.PeriodMonth, "week", "7 days"),
		Entry("desconhecido vira month", "decade", valueobjects.PeriodMonth, "week", "7 days"),
	)

	It("desempenho pede as 10 primeiras linhas no escopo global", func() {
		_, err := service.Performance(context.Background(), nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(repo.limit).To(Equal(PerformanceLimit))
		Expect(repo.scope).To(BeNil())
	})

	It("propaga falhas do banco", func() {
		repo.err = errors.New("relation \"trips\" does not exist")
		_, _, err := service.Revenue(context.Background(), &scope, "day")
		Expect(err).To(MatchError(repo.err))

		_, err = service.Dashboard(context.Background(), &scope)
		Expect(err).To(HaveOccurred())
	})
})
