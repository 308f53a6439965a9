package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Validation limits.
const (
	MaxNameLength            = 50
	MaxStreetLength          = 100
	MaxCityLength            = 50
	MaxAccountNumberLength   = 20
	MaxTransactionIDLength   = 50
	MaxTransactionTypeLength = 50
	MinDescriptionLength     = 10
	MaxDescriptionLength     = 2000
)

var (
	ssnRegex   = regexp.MustCompile(`^\d{3}-?\d{2}-?\d{4}$`)
	zipRegex   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	phoneRegex = regexp.MustCompile(`^\+?1?-?\(?[0-9]{3}\)?-?[0-9]{3}-?[0-9]{4}$`)
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// FieldError describes a single invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func fieldErr(field, format string, args ...any) FieldError {
	return FieldError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ValidateCustomer validates customer information, including the embedded
// address. The returned slice is empty when the customer is valid.
func ValidateCustomer(c CustomerInformation, now time.Time) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(c.FirstName) == "" {
		errs = append(errs, fieldErr("customer.firstName", "first name is required"))
	} else if len(c.FirstName) > MaxNameLength {
		errs = append(errs, fieldErr("customer.firstName", "must be %d characters or less", MaxNameLength))
	}

	if strings.TrimSpace(c.LastName) == "" {
		errs = append(errs, fieldErr("customer.lastName", "last name is required"))
	} else if len(c.LastName) > MaxNameLength {
		errs = append(errs, fieldErr("customer.lastName", "must be %d characters or less", MaxNameLength))
	}

	if c.DateOfBirth.IsZero() {
		errs = append(errs, fieldErr("customer.dateOfBirth", "date of birth is required"))
	} else if !c.DateOfBirth.Before(now) {
		errs = append(errs, fieldErr("customer.dateOfBirth", "must be in the past"))
	}

	if !ssnRegex.MatchString(c.SocialSecurityNumber) {
		errs = append(errs, fieldErr("customer.socialSecurityNumber", "must be in format XXX-XX-XXXX or XXXXXXXXX"))
	}

	if strings.TrimSpace(c.AccountNumber) == "" {
		errs = append(errs, fieldErr("customer.accountNumber", "account number is required"))
	} else if len(c.AccountNumber) > MaxAccountNumberLength {
		errs = append(errs, fieldErr("customer.accountNumber", "must be %d characters or less", MaxAccountNumberLength))
	}

	if c.PhoneNumber != "" && !phoneRegex.MatchString(c.PhoneNumber) {
		errs = append(errs, fieldErr("customer.phoneNumber", "must be a valid US phone number"))
	}

	if c.EmailAddress != "" && !emailRegex.MatchString(c.EmailAddress) {
		errs = append(errs, fieldErr("customer.emailAddress", "must be a valid email address"))
	}

	errs = append(errs, ValidateAddress(c.Address)...)

	return errs
}

// ValidateAddress validates a postal address.
func ValidateAddress(a Address) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(a.Street) == "" {
		errs = append(errs, fieldErr("customer.address.street", "street is required"))
	} else if len(a.Street) > MaxStreetLength {
		errs = append(errs, fieldErr("customer.address.street", "must be %d characters or less", MaxStreetLength))
	}

	if strings.TrimSpace(a.City) == "" {
		errs = append(errs, fieldErr("customer.address.city", "city is required"))
	} else if len(a.City) > MaxCityLength {
		errs = append(errs, fieldErr("customer.address.city", "must be %d characters or less", MaxCityLength))
	}

	if len(a.State) != 2 {
		errs = append(errs, fieldErr("customer.address.state", "must be a 2-character state code"))
	}

	if !zipRegex.MatchString(a.ZipCode) {
		errs = append(errs, fieldErr("customer.address.zipCode", "must be in format XXXXX or XXXXX-XXXX"))
	}

	// Country is defaulted to US by normalization; a supplied value must be a
	// 2-character code.
	if a.Country != "" && len(a.Country) != 2 {
		errs = append(errs, fieldErr("customer.address.country", "must be a 2-character country code"))
	}

	return errs
}

// ValidateTransaction validates a single transaction detail.
func ValidateTransaction(tx TransactionDetail, now time.Time) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(tx.TransactionID) == "" {
		errs = append(errs, fieldErr("transaction.transactionId", "transaction ID is required"))
	} else if len(tx.TransactionID) > MaxTransactionIDLength {
		errs = append(errs, fieldErr("transaction.transactionId", "must be %d characters or less", MaxTransactionIDLength))
	}

	if tx.TransactionDate.IsZero() {
		errs = append(errs, fieldErr("transaction.transactionDate", "transaction date is required"))
	} else if tx.TransactionDate.After(now.AddDate(0, 0, 1)) {
		errs = append(errs, fieldErr("transaction.transactionDate", "cannot be in the future"))
	}

	if tx.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, fieldErr("transaction.amount", "must be greater than zero"))
	}

	if strings.TrimSpace(tx.TransactionType) == "" {
		errs = append(errs, fieldErr("transaction.transactionType", "transaction type is required"))
	} else if len(tx.TransactionType) > MaxTransactionTypeLength {
		errs = append(errs, fieldErr("transaction.transactionType", "must be %d characters or less", MaxTransactionTypeLength))
	}

	return errs
}

// ValidateTransactions validates every transaction and requires at least one.
func ValidateTransactions(txs []TransactionDetail, now time.Time) []FieldError {
	if len(txs) == 0 {
		return []FieldError{fieldErr("transactions", "at least one transaction is required")}
	}

	var errs []FieldError
	for i, tx := range txs {
		for _, e := range ValidateTransaction(tx, now) {
			errs = append(errs, fieldErr(fmt.Sprintf("transactions[%d].%s", i, strings.TrimPrefix(e.Field, "transaction.")), "%s", e.Message))
		}
	}

	return errs
}

// ValidateSuspicion validates suspicion details.
func ValidateSuspicion(s SuspicionDetails, now time.Time) []FieldError {
	var errs []FieldError

	if !s.PrimaryReason.Valid() {
		errs = append(errs, fieldErr("suspicion.primaryReason", "must be a valid suspicion reason"))
	}
	for i, r := range s.AdditionalReasons {
		if !r.Valid() {
			errs = append(errs, fieldErr(fmt.Sprintf("suspicion.additionalReasons[%d]", i), "must be a valid suspicion reason"))
		}
	}

	desc := strings.TrimSpace(s.Description)
	if len(desc) < MinDescriptionLength || len(desc) > MaxDescriptionLength {
		errs = append(errs, fieldErr("suspicion.description", "must be between %d and %d characters", MinDescriptionLength, MaxDescriptionLength))
	}

	if !s.SuspicionIdentifiedDate.IsZero() && s.SuspicionIdentifiedDate.After(now.AddDate(0, 0, 1)) {
		errs = append(errs, fieldErr("suspicion.suspicionIdentifiedDate", "cannot be in the future"))
	}

	return errs
}
