package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gosar/internal/domain"
	"github.com/iho/gosar/internal/usecase"
)

// CustomerPayload carries customer information on requests.
type CustomerPayload struct {
	FirstName            string         `json:"firstName"`
	LastName             string         `json:"lastName"`
	MiddleName           string         `json:"middleName,omitempty"`
	DateOfBirth          time.Time      `json:"dateOfBirth"`
	SocialSecurityNumber string         `json:"socialSecurityNumber,omitempty"`
	Address              AddressPayload `json:"address"`
	PhoneNumber          string         `json:"phoneNumber,omitempty"`
	EmailAddress         string         `json:"emailAddress,omitempty"`
	AccountNumber        string         `json:"accountNumber"`
	CustomerType         string         `json:"customerType,omitempty"`
}

// AddressPayload carries a postal address on requests.
type AddressPayload struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country,omitempty"`
}

// TransactionPayload carries one transaction on requests.
type TransactionPayload struct {
	TransactionID       string          `json:"transactionId"`
	TransactionDate     time.Time       `json:"transactionDate"`
	Amount              decimal.Decimal `json:"amount"`
	TransactionType     string          `json:"transactionType"`
	Description         string          `json:"description,omitempty"`
	CounterpartyName    string          `json:"counterpartyName,omitempty"`
	CounterpartyAccount string          `json:"counterpartyAccount,omitempty"`
	CounterpartyBank    string          `json:"counterpartyBank,omitempty"`
	Location            string          `json:"location,omitempty"`
}

// SuspicionPayload carries the suspicion details on requests.
type SuspicionPayload struct {
	PrimaryReason               string    `json:"primaryReason"`
	AdditionalReasons           []string  `json:"additionalReasons,omitempty"`
	Description                 string    `json:"description"`
	SuspicionIdentifiedDate     time.Time `json:"suspicionIdentifiedDate"`
	InvestigationNotes          string    `json:"investigationNotes,omitempty"`
	PriorSarsOnCustomer         bool      `json:"priorSarsOnCustomer"`
	RegulatoryGuidanceReference string    `json:"regulatoryGuidanceReference,omitempty"`
}

// CreateSarRequest represents a request to create a report.
type CreateSarRequest struct {
	Customer     CustomerPayload      `json:"customerInformation"`
	Transactions []TransactionPayload `json:"transactionDetails"`
	Suspicion    SuspicionPayload     `json:"suspicionDetails"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateSarRequest) ToUseCaseInput() usecase.CreateReportInput {
	return usecase.CreateReportInput{
		Customer:     r.Customer.ToDomain(),
		Transactions: transactionsToDomain(r.Transactions),
		Suspicion:    r.Suspicion.ToDomain(),
	}
}

// UpdateSarRequest represents a partial update. Omitted sections keep their
// stored values.
type UpdateSarRequest struct {
	Customer     *CustomerPayload     `json:"customerInformation,omitempty"`
	Transactions []TransactionPayload `json:"transactionDetails,omitempty"`
	Suspicion    *SuspicionPayload    `json:"suspicionDetails,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateSarRequest) ToUseCaseInput() usecase.UpdateReportInput {
	input := usecase.UpdateReportInput{}

	if r.Customer != nil {
		c := r.Customer.ToDomain()
		input.Customer = &c
	}
	if r.Transactions != nil {
		input.Transactions = transactionsToDomain(r.Transactions)
	}
	if r.Suspicion != nil {
		s := r.Suspicion.ToDomain()
		input.Suspicion = &s
	}

	return input
}

// FileSarRequest carries the filing reference for the file transition.
type FileSarRequest struct {
	FilingReference string `json:"filingReference"`
}

// ToDomain converts the payload to the domain type.
func (p CustomerPayload) ToDomain() domain.CustomerInformation {
	return domain.CustomerInformation{
		FirstName:            p.FirstName,
		LastName:             p.LastName,
		MiddleName:           p.MiddleName,
		DateOfBirth:          p.DateOfBirth,
		SocialSecurityNumber: p.SocialSecurityNumber,
		Address: domain.Address{
			Street:  p.Address.Street,
			City:    p.Address.City,
			State:   p.Address.State,
			ZipCode: p.Address.ZipCode,
			Country: p.Address.Country,
		},
		PhoneNumber:   p.PhoneNumber,
		EmailAddress:  p.EmailAddress,
		AccountNumber: p.AccountNumber,
		CustomerType:  p.CustomerType,
	}
}

// ToDomain converts the payload to the domain type.
func (p TransactionPayload) ToDomain() domain.TransactionDetail {
	return domain.TransactionDetail{
		TransactionID:       p.TransactionID,
		TransactionDate:     p.TransactionDate,
		Amount:              p.Amount,
		TransactionType:     p.TransactionType,
		Description:         p.Description,
		CounterpartyName:    p.CounterpartyName,
		CounterpartyAccount: p.CounterpartyAccount,
		CounterpartyBank:    p.CounterpartyBank,
		Location:            p.Location,
	}
}

// ToDomain converts the payload to the domain type.
func (p SuspicionPayload) ToDomain() domain.SuspicionDetails {
	additional := make([]domain.SuspicionReason, len(p.AdditionalReasons))
	for i, r := range p.AdditionalReasons {
		additional[i] = domain.SuspicionReason(r)
	}

	return domain.SuspicionDetails{
		PrimaryReason:               domain.SuspicionReason(p.PrimaryReason),
		AdditionalReasons:           additional,
		Description:                 p.Description,
		SuspicionIdentifiedDate:     p.SuspicionIdentifiedDate,
		InvestigationNotes:          p.InvestigationNotes,
		PriorSarsOnCustomer:         p.PriorSarsOnCustomer,
		RegulatoryGuidanceReference: p.RegulatoryGuidanceReference,
	}
}

func transactionsToDomain(payloads []TransactionPayload) []domain.TransactionDetail {
	result := make([]domain.TransactionDetail, len(payloads))
	for i, p := range payloads {
		result[i] = p.ToDomain()
	}
	return result
}
