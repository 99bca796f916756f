package services_test

import (
	"bytes"
	"testing"

	"github.com/SscSPs/commission_app/internal/apperrors"
	"github.com/SscSPs/commission_app/internal/core/domain"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
)

type AuditServiceTestSuite struct {
	lifecycleSuite
}

func TestAuditService(t *testing.T) {
	suite.Run(t, new(AuditServiceTestSuite))
}

func (s *AuditServiceTestSuite) TestOverviewPartitionsPopulation() {
	a := s.readyCommission("A")
	b := s.readyCommission("B")
	c := s.readyCommission("C")
	s.createCommission("Draft", stockItem(screwsID, 1))

	_, err := s.svc.Audit.RecordScan(s.ctx, domain.QRPayload(a.CommissionID), actorID)
	s.Require().NoError(err)
	_, err = s.svc.Transition.MarkMissing(s.ctx, c.CommissionID, actorID)
	s.Require().NoError(err)

	report, err := s.svc.Audit.Overview(s.ctx, warehouseID)

	s.Require().NoError(err)
	s.Require().Len(report.Verified, 1)
	s.Equal(a.CommissionID, report.Verified[0].CommissionID)
	s.Require().Len(report.Open, 1)
	s.Equal(b.CommissionID, report.Open[0].CommissionID)
	s.Require().Len(report.Missing, 1)
	s.Equal(c.CommissionID, report.Missing[0].CommissionID)
	s.Equal("50", report.Progress.String())
}

func (s *AuditServiceTestSuite) TestResetAuditReopensVerified() {
	a := s.readyCommission("A")
	b := s.readyCommission("B")
	c := s.readyCommission("C")
	for _, id := range []string{a.CommissionID, b.CommissionID} {
		_, err := s.svc.Audit.RecordScan(s.ctx, id, actorID)
		s.Require().NoError(err)
	}
	_, err := s.svc.Transition.MarkMissing(s.ctx, c.CommissionID, actorID)
	s.Require().NoError(err)

	n, err := s.svc.Audit.ResetAudit(s.ctx, warehouseID, actorID)

	s.Require().NoError(err)
	s.Equal(2, n)
	report, err := s.svc.Audit.Overview(s.ctx, warehouseID)
	s.Require().NoError(err)
	s.Empty(report.Verified)
	s.Len(report.Open, 2)
	s.Len(report.Missing, 1)
	s.Equal("0", report.Progress.String())
	s.Equal(1, countAction(s.events(a.CommissionID), domain.ActionAuditReset))
	s.Equal(0, countAction(s.events(c.CommissionID), domain.ActionAuditReset))
}

func (s *AuditServiceTestSuite) TestRecordScan_Rules() {
	draft := s.createCommission("Draft", stockItem(screwsID, 1))
	_, err := s.svc.Audit.RecordScan(s.ctx, domain.QRPayload(draft.CommissionID), actorID)
	s.ErrorIs(err, domain.ErrNotScannable)

	missing := s.readyCommission("Missing")
	_, err = s.svc.Audit.RecordScan(s.ctx, missing.CommissionID, actorID)
	s.Require().NoError(err)
	_, err = s.svc.Transition.MarkMissing(s.ctx, missing.CommissionID, actorID)
	s.Require().NoError(err)
	s.Nil(s.reload(missing.CommissionID).LastScannedAt)
	_, err = s.svc.Audit.RecordScan(s.ctx, missing.CommissionID, actorID)
	s.ErrorIs(err, domain.ErrNotScannable)

	_, err = s.svc.Audit.RecordScan(s.ctx, "  ", actorID)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Audit.RecordScan(s.ctx, "COMM:unknown", actorID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *AuditServiceTestSuite) TestRecordScan_HandTypedPayload() {
	c := s.readyCommission("Getippt")

	scanned, err := s.svc.Audit.RecordScan(s.ctx, "COMM: "+c.CommissionID+" ", actorID)

	s.Require().NoError(err)
	s.Equal(c.CommissionID, scanned.CommissionID)
	s.NotNil(s.reload(c.CommissionID).LastScannedAt)
}

func (s *AuditServiceTestSuite) TestEmptyPopulationIsComplete() {
	report, err := s.svc.Audit.Overview(s.ctx, warehouseID)
	s.Require().NoError(err)
	s.Equal("100", report.Progress.String())
}

func (s *AuditServiceTestSuite) TestExportReport() {
	a := s.readyCommission("A")
	s.readyCommission("B")
	_, err := s.svc.Audit.RecordScan(s.ctx, a.CommissionID, actorID)
	s.Require().NoError(err)

	var buf bytes.Buffer
	s.Require().NoError(s.svc.Audit.ExportReport(s.ctx, warehouseID, &buf))

	f, err := excelize.OpenReader(&buf)
	s.Require().NoError(err)
	defer f.Close()
	verified, err := f.GetRows("Geprüft")
	s.Require().NoError(err)
	s.Len(verified, 2)
	s.Equal("A", verified[1][0])
}
