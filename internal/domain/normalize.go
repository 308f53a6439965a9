package domain

import "time"

// Normalization applies defaults to report sub-structures before persistence.
// It never rejects input; rejection is validation's job.

const (
	DefaultCustomerType        = "Individual"
	DefaultCountry             = "US"
	DefaultTransactionLocation = "Unknown"
)

// NormalizeCustomer returns a copy of c with defaults applied.
func NormalizeCustomer(c CustomerInformation) CustomerInformation {
	if c.CustomerType == "" {
		c.CustomerType = DefaultCustomerType
	}
	if c.Address.Country == "" {
		c.Address.Country = DefaultCountry
	}
	return c
}

// NormalizeTransaction returns a copy of tx with defaults applied.
func NormalizeTransaction(tx TransactionDetail) TransactionDetail {
	if tx.Location == "" {
		tx.Location = DefaultTransactionLocation
	}
	return tx
}

// NormalizeTransactions normalizes every transaction in order.
func NormalizeTransactions(txs []TransactionDetail) []TransactionDetail {
	out := make([]TransactionDetail, len(txs))
	for i, tx := range txs {
		out[i] = NormalizeTransaction(tx)
	}
	return out
}

// NormalizeSuspicion returns a copy of s with defaults applied. A zero
// identified date defaults to now.
func NormalizeSuspicion(s SuspicionDetails, now time.Time) SuspicionDetails {
	if s.SuspicionIdentifiedDate.IsZero() {
		s.SuspicionIdentifiedDate = now
	}
	return s
}
