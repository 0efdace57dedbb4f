package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/analytics/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	Date        string          `json:"date" binding:"required"`
	Description string          `json:"description" binding:"max=255"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type" binding:"required,oneof=expense income"`
	CategoryID  string          `json:"category_id" binding:"required,uuid"`
	EMI         *EmiRequest     `json:"emi,omitempty"`
}

// ReassignCategoryRequest represents the request body for moving a transaction to another category.
type ReassignCategoryRequest struct {
	CategoryID string `json:"category_id" binding:"required,uuid"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string       `json:"id"`
	Date        string       `json:"date"`
	Description string       `json:"description"`
	Amount      string       `json:"amount"`
	Type        string       `json:"type"`
	CategoryID  string       `json:"category_id"`
	EMI         *EmiResponse `json:"emi,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ToEmiDetail converts the request to a domain EmiDetail, or nil when absent.
func (r *EmiRequest) ToEmiDetail() *entity.EmiDetail {
	if r == nil {
		return nil
	}
	return &entity.EmiDetail{
		LoanAmount:         r.LoanAmount,
		Principal:          r.Principal,
		Interest:           r.Interest,
		CurrentInstallment: r.CurrentInstallment,
		TotalInstallments:  r.TotalInstallments,
	}
}

func toEmiResponse(e *entity.EmiDetail) *EmiResponse {
	if e == nil {
		return nil
	}
	return &EmiResponse{
		LoanAmount:         money(e.LoanAmount),
		Principal:          money(e.Principal),
		Interest:           money(e.Interest),
		CurrentInstallment: e.CurrentInstallment,
		TotalInstallments:  e.TotalInstallments,
	}
}

// ToTransactionResponse converts a domain Transaction entity to a TransactionResponse DTO.
func ToTransactionResponse(tx *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          tx.ID.String(),
		Date:        formatDate(tx.Date),
		Description: tx.Description,
		Amount:      money(tx.Amount),
		Type:        string(tx.Type),
		CategoryID:  tx.CategoryID.String(),
		EMI:         toEmiResponse(tx.EMI),
		CreatedAt:   tx.CreatedAt,
		UpdatedAt:   tx.UpdatedAt,
	}
}

// ToTransactionListResponse converts transactions to a TransactionListResponse DTO.
func ToTransactionListResponse(transactions []*entity.Transaction) TransactionListResponse {
	responses := make([]TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		responses = append(responses, ToTransactionResponse(tx))
	}
	return TransactionListResponse{Transactions: responses}
}
