package dto

import (
	"time"

	"github.com/GlebRadaev/gosplit/internal/domain"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequestDTO records a transfer. payerId defaults to the caller.
type RecordPaymentRequestDTO struct {
	PayerID string          `json:"payerId"`
	PayeeID string          `json:"payeeId" validate:"required"`
	Amount  decimal.Decimal `json:"amount" swaggertype:"string" example:"25.00"`
	GroupID string          `json:"groupId"`
}

type PaymentDTO struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string" example:"25.00"`
	PayerID   string          `json:"payerId"`
	PayeeID   string          `json:"payeeId"`
	GroupID   *string         `json:"groupId"`
	CreatedAt time.Time       `json:"createdAt"`
	Payer     MemberDTO       `json:"payer"`
	Payee     MemberDTO       `json:"payee"`
}

func NewPaymentDTO(p domain.Payment) PaymentDTO {
	return PaymentDTO{
		ID:        p.ID,
		Amount:    p.Amount,
		PayerID:   p.PayerID,
		PayeeID:   p.PayeeID,
		GroupID:   p.GroupID,
		CreatedAt: p.CreatedAt,
		Payer:     NewMemberDTO(p.Payer),
		Payee:     NewMemberDTO(p.Payee),
	}
}

func NewPaymentDTOs(payments []domain.Payment) []PaymentDTO {
	out := make([]PaymentDTO, len(payments))
	for i, p := range payments {
		out[i] = NewPaymentDTO(p)
	}
	return out
}
