package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/SscSPs/commission_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteAuditReport(t *testing.T) {
	scanned := time.Date(2024, 5, 2, 8, 30, 0, 0, time.UTC)
	report := domain.AuditReport{
		Open: []domain.Commission{
			{CommissionID: "c-1", Name: "Baustelle Nord", OrderNumber: "A-1", Status: domain.StatusReady},
			{CommissionID: "c-2", Name: "Baustelle Süd", OrderNumber: "A-2", Status: domain.StatusReturnReady},
		},
		Verified: []domain.Commission{
			{CommissionID: "c-3", Name: "Werkstatt", OrderNumber: "A-3", Status: domain.StatusReady, LastScannedAt: &scanned},
		},
		Missing: []domain.Commission{},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAuditReport(&buf, report))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetOpen, SheetVerified, SheetMissing}, f.GetSheetList())

	open, err := f.GetRows(SheetOpen)
	require.NoError(t, err)
	require.Len(t, open, 3)
	assert.Equal(t, "Kommission", open[0][0])
	assert.Equal(t, "Baustelle Süd", open[2][0])
	assert.Equal(t, "Abholbereit", open[2][2])

	verified, err := f.GetRows(SheetVerified)
	require.NoError(t, err)
	require.Len(t, verified, 2)
	assert.Equal(t, "2024-05-02 08:30:00", verified[1][3])

	missing, err := f.GetRows(SheetMissing)
	require.NoError(t, err)
	assert.Len(t, missing, 1)
}
