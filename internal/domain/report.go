package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportStatus is the lifecycle state of a suspicious activity report.
// Transitions are strictly forward: Draft -> Submitted -> Filed.
type ReportStatus string

const (
	StatusDraft     ReportStatus = "Draft"
	StatusSubmitted ReportStatus = "Submitted"
	StatusFiled     ReportStatus = "Filed"
)

// Valid reports whether s is a known report status.
func (s ReportStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusFiled:
		return true
	}
	return false
}

// SuspicionReason categorizes why activity was flagged.
type SuspicionReason string

const (
	ReasonUnusualTransactionPattern  SuspicionReason = "UnusualTransactionPattern"
	ReasonHighValueTransaction       SuspicionReason = "HighValueTransaction"
	ReasonStructuredTransaction      SuspicionReason = "StructuredTransaction"
	ReasonSuspiciousCustomerBehavior SuspicionReason = "SuspiciousCustomerBehavior"
	ReasonKnownSuspiciousEntity      SuspicionReason = "KnownSuspiciousEntity"
	ReasonGeographicRisk             SuspicionReason = "GeographicRisk"
	ReasonOther                      SuspicionReason = "Other"
)

// Valid reports whether r is a known suspicion reason.
func (r SuspicionReason) Valid() bool {
	switch r {
	case ReasonUnusualTransactionPattern, ReasonHighValueTransaction,
		ReasonStructuredTransaction, ReasonSuspiciousCustomerBehavior,
		ReasonKnownSuspiciousEntity, ReasonGeographicRisk, ReasonOther:
		return true
	}
	return false
}

// SuspiciousActivityReport is the aggregate root. The store key is ID.
type SuspiciousActivityReport struct {
	ID              string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Status          ReportStatus
	Customer        CustomerInformation
	Transactions    []TransactionDetail
	Suspicion       SuspicionDetails
	FilingReference string
	FiledAt         *time.Time
}

// CustomerInformation identifies the customer the report concerns.
type CustomerInformation struct {
	FirstName            string
	LastName             string
	MiddleName           string
	DateOfBirth          time.Time
	SocialSecurityNumber string
	Address              Address
	PhoneNumber          string
	EmailAddress         string
	AccountNumber        string
	CustomerType         string
}

// FullName returns "First Last", the form the list filter matches against.
func (c CustomerInformation) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Address is a US-centric postal address.
type Address struct {
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

// TransactionDetail describes one transaction covered by the report.
type TransactionDetail struct {
	TransactionID       string
	TransactionDate     time.Time
	Amount              decimal.Decimal
	TransactionType     string
	Description         string
	CounterpartyName    string
	CounterpartyAccount string
	CounterpartyBank    string
	Location            string
}

// SuspicionDetails explains why the activity is considered suspicious.
type SuspicionDetails struct {
	PrimaryReason               SuspicionReason
	AdditionalReasons           []SuspicionReason
	Description                 string
	SuspicionIdentifiedDate     time.Time
	InvestigationNotes          string
	PriorSarsOnCustomer         bool
	RegulatoryGuidanceReference string
}

// TotalAmount sums the amounts of all transactions on the report.
func (r *SuspiciousActivityReport) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, tx := range r.Transactions {
		total = total.Add(tx.Amount)
	}
	return total
}

// ReportSummary is the bounded list projection of a report.
type ReportSummary struct {
	ID               string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Status           ReportStatus
	CustomerName     string
	AccountNumber    string
	PrimaryReason    SuspicionReason
	TransactionCount int
	TotalAmount      decimal.Decimal
}

// Summarize projects the report onto its list summary.
func (r *SuspiciousActivityReport) Summarize() ReportSummary {
	return ReportSummary{
		ID:               r.ID,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
		Status:           r.Status,
		CustomerName:     r.Customer.FullName(),
		AccountNumber:    r.Customer.AccountNumber,
		PrimaryReason:    r.Suspicion.PrimaryReason,
		TransactionCount: len(r.Transactions),
		TotalAmount:      r.TotalAmount(),
	}
}
