package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gosar/internal/domain"
	"github.com/iho/gosar/internal/usecase"
)

// APIResponse is the envelope every endpoint returns.
type APIResponse struct {
	Success bool     `json:"success"`
	Data    any      `json:"data,omitempty"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// SarResponse represents a full report in API responses.
type SarResponse struct {
	ID              string               `json:"sarId"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
	Status          string               `json:"status"`
	Customer        CustomerPayload      `json:"customerInformation"`
	Transactions    []TransactionPayload `json:"transactionDetails"`
	Suspicion       SuspicionPayload     `json:"suspicionDetails"`
	FilingReference string               `json:"filingReference,omitempty"`
	FiledAt         *time.Time           `json:"filedAt,omitempty"`
}

// SarFromDomain converts a domain report to its response form.
func SarFromDomain(r *domain.SuspiciousActivityReport) *SarResponse {
	transactions := make([]TransactionPayload, len(r.Transactions))
	for i, tx := range r.Transactions {
		transactions[i] = TransactionPayload{
			TransactionID:       tx.TransactionID,
			TransactionDate:     tx.TransactionDate,
			Amount:              tx.Amount,
			TransactionType:     tx.TransactionType,
			Description:         tx.Description,
			CounterpartyName:    tx.CounterpartyName,
			CounterpartyAccount: tx.CounterpartyAccount,
			CounterpartyBank:    tx.CounterpartyBank,
			Location:            tx.Location,
		}
	}

	additional := make([]string, len(r.Suspicion.AdditionalReasons))
	for i, reason := range r.Suspicion.AdditionalReasons {
		additional[i] = string(reason)
	}

	return &SarResponse{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		Status:    string(r.Status),
		Customer: CustomerPayload{
			FirstName:            r.Customer.FirstName,
			LastName:             r.Customer.LastName,
			MiddleName:           r.Customer.MiddleName,
			DateOfBirth:          r.Customer.DateOfBirth,
			SocialSecurityNumber: r.Customer.SocialSecurityNumber,
			Address: AddressPayload{
				Street:  r.Customer.Address.Street,
				City:    r.Customer.Address.City,
				State:   r.Customer.Address.State,
				ZipCode: r.Customer.Address.ZipCode,
				Country: r.Customer.Address.Country,
			},
			PhoneNumber:   r.Customer.PhoneNumber,
			EmailAddress:  r.Customer.EmailAddress,
			AccountNumber: r.Customer.AccountNumber,
			CustomerType:  r.Customer.CustomerType,
		},
		Transactions: transactions,
		Suspicion: SuspicionPayload{
			PrimaryReason:               string(r.Suspicion.PrimaryReason),
			AdditionalReasons:           additional,
			Description:                 r.Suspicion.Description,
			SuspicionIdentifiedDate:     r.Suspicion.SuspicionIdentifiedDate,
			InvestigationNotes:          r.Suspicion.InvestigationNotes,
			PriorSarsOnCustomer:         r.Suspicion.PriorSarsOnCustomer,
			RegulatoryGuidanceReference: r.Suspicion.RegulatoryGuidanceReference,
		},
		FilingReference: r.FilingReference,
		FiledAt:         r.FiledAt,
	}
}

// SarSummaryResponse represents one report in list responses.
type SarSummaryResponse struct {
	ID               string          `json:"sarId"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
	Status           string          `json:"status"`
	CustomerName     string          `json:"customerName"`
	AccountNumber    string          `json:"accountNumber"`
	PrimaryReason    string          `json:"primarySuspicionReason"`
	TransactionCount int             `json:"transactionCount"`
	TotalAmount      decimal.Decimal `json:"totalTransactionAmount"`
}

// ListSarsResponse is the data payload of the list endpoint.
type ListSarsResponse struct {
	Sars       []SarSummaryResponse `json:"sars"`
	TotalCount int                  `json:"totalCount"`
	NextToken  string               `json:"nextToken,omitempty"`
}

// ListFromResult converts a use case list result to its response form.
func ListFromResult(result *usecase.ListResult) *ListSarsResponse {
	sars := make([]SarSummaryResponse, len(result.Reports))
	for i, s := range result.Reports {
		sars[i] = SarSummaryResponse{
			ID:               s.ID,
			CreatedAt:        s.CreatedAt,
			UpdatedAt:        s.UpdatedAt,
			Status:           string(s.Status),
			CustomerName:     s.CustomerName,
			AccountNumber:    s.AccountNumber,
			PrimaryReason:    string(s.PrimaryReason),
			TransactionCount: s.TransactionCount,
			TotalAmount:      s.TotalAmount,
		}
	}

	return &ListSarsResponse{
		Sars:       sars,
		TotalCount: result.TotalCount,
		NextToken:  result.NextToken,
	}
}
