package fine_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biblioteca-console/internal/domains/fine"
)

func validFineReq() fine.CreateFineReq {
	return fine.CreateFineReq{
		MemberID: 4,
		LoanID:   9,
		Amount:   decimal.NewFromInt(30),
		Reason:   fine.ReasonLateReturn,
	}
}

func TestCreateFineReq_Valid(t *testing.T) {
	assert.NoError(t, validFineReq().Validate())
}

func TestCreateFineReq_ValidationOrder(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*fine.CreateFineReq)
		message string
	}{
		{
			"missing member wins first",
			func(r *fine.CreateFineReq) { r.MemberID = 0; r.Amount = decimal.Zero; r.LoanID = 0 },
			"Los campos Socio, Monto y Motivo son obligatorios",
		},
		{
			"missing amount",
			func(r *fine.CreateFineReq) { r.Amount = decimal.Zero },
			"Los campos Socio, Monto y Motivo son obligatorios",
		},
		{
			"missing reason",
			func(r *fine.CreateFineReq) { r.Reason = "" },
			"Los campos Socio, Monto y Motivo son obligatorios",
		},
		{
			"missing loan reported after the required trio",
			func(r *fine.CreateFineReq) { r.LoanID = 0 },
			"Debe seleccionar un préstamo para asociar la multa",
		},
		{
			"negative amount",
			func(r *fine.CreateFineReq) { r.Amount = decimal.NewFromInt(-5) },
			"El monto debe ser mayor a 0",
		},
		{
			"unknown reason",
			func(r *fine.CreateFineReq) { r.Reason = "Sanción arbitraria" },
			"motivo inválido",
		},
		{
			"otro requires description",
			func(r *fine.CreateFineReq) { r.Reason = fine.ReasonOther },
			"la descripción es obligatoria para el motivo Otro",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validFineReq()
			tt.mutate(&req)
			err := req.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestCreateFineReq_OtroWithDescription(t *testing.T) {
	req := validFineReq()
	req.Reason = fine.ReasonOther
	req.Description = "Página 42 arrancada"
	assert.NoError(t, req.Validate())
}
