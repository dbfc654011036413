package dto

import (
	"github.com/GlebRadaev/gosplit/internal/domain"
	"github.com/shopspring/decimal"
)

type OverallBalanceResponseDTO struct {
	TotalPaid        decimal.Decimal `json:"totalPaid" swaggertype:"string" example:"120.50"`
	TotalOwed        decimal.Decimal `json:"totalOwed" swaggertype:"string" example:"60.25"`
	PaymentsMade     decimal.Decimal `json:"paymentsMade" swaggertype:"string" example:"0.00"`
	PaymentsReceived decimal.Decimal `json:"paymentsReceived" swaggertype:"string" example:"0.00"`
	NetBalance       decimal.Decimal `json:"netBalance" swaggertype:"string" example:"60.25"`
}

type CounterpartyBalanceDTO struct {
	UserID   string          `json:"userId"`
	Username string          `json:"username" example:"bob"`
	Balance  decimal.Decimal `json:"balance" swaggertype:"string" example:"60.25"`
}

func NewOverallBalanceDTO(s *domain.Summary) OverallBalanceResponseDTO {
	return OverallBalanceResponseDTO{
		TotalPaid:        s.TotalPaid,
		TotalOwed:        s.TotalOwed,
		PaymentsMade:     s.PaymentsMade,
		PaymentsReceived: s.PaymentsReceived,
		NetBalance:       s.NetBalance,
	}
}

func NewCounterpartyBalanceDTOs(balances []domain.CounterpartyBalance) []CounterpartyBalanceDTO {
	out := make([]CounterpartyBalanceDTO, len(balances))
	for i, b := range balances {
		out[i] = CounterpartyBalanceDTO{UserID: b.UserID, Username: b.Username, Balance: b.Balance}
	}
	return out
}
