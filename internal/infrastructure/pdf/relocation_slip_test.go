package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-relocation/internal/application/relocation"
	"github.com/jhoicas/stock-relocation/internal/domain/entity"
	"github.com/jhoicas/stock-relocation/internal/infrastructure/pdf"
)

func TestGenerateSlip(t *testing.T) {
	for _, state := range []string{entity.RelocationStateDraft, entity.RelocationStateDone} {
		t.Run(state, func(t *testing.T) {
			line := relocation.ReportLine{
				Relocation: &entity.Relocation{
					ID: "3f1c6a52-5b7e-4d59-9a55-7c1d2e8f9a10", PlannedDate: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
					State: state, Quantity: decimal.RequireFromString("12.5"), UnitDigits: 3, MoveID: "m1",
				},
				WarehouseName: "Bodega principal", FromName: "Estante A", ToName: "Estante B",
				ProductName: "[RICE] Arroz a granel", UomSymbol: "kg", EmployeeName: "Ana",
			}

			data, err := pdf.NewMarotoSlipGenerator().GenerateSlip(context.Background(), line)

			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "debe ser un PDF")
		})
	}
}

func TestGenerateSlip_SinReubicacion(t *testing.T) {
	_, err := pdf.NewMarotoSlipGenerator().GenerateSlip(context.Background(), relocation.ReportLine{})
	assert.Error(t, err)
}
