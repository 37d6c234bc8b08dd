package domain

import "regexp"

// AccountType distinguishes the two supported bank account kinds.
type AccountType string

const (
	AccountTypeChecking AccountType = "Checking"
	AccountTypeSavings  AccountType = "Savings"
)

// BankAccount holds the destination account for a currency purchase.
// Validity is a derived predicate: invalid instances can exist and must be
// checked before use.
type BankAccount struct {
	AccountNumber     string      `json:"account_number"`
	RoutingNumber     string      `json:"routing_number"`
	AccountHolderName string      `json:"account_holder_name"`
	BankName          string      `json:"bank_name"`
	AccountType       AccountType `json:"account_type"`
}

// HasRequiredFields reports whether the free-form fields are populated.
// Format-level checks are separate (ValidateAccountNumber etc).
func (a BankAccount) HasRequiredFields() bool {
	return a.AccountNumber != "" &&
		a.RoutingNumber != "" &&
		a.AccountHolderName != "" &&
		a.BankName != ""
}

var (
	accountNumberRe = regexp.MustCompile(`^[0-9]{8,17}$`)
	routingNumberRe = regexp.MustCompile(`^[0-9]{9}$`)
	holderNameRe    = regexp.MustCompile(`^[a-zA-Z\s]{2,50}$`)
)

// ValidateAccountNumber accepts 8 to 17 ASCII digits.
func ValidateAccountNumber(s string) bool {
	return accountNumberRe.MatchString(s)
}

// ValidateRoutingNumber accepts exactly 9 ASCII digits passing the ABA
// checksum: 3*(d0+d3+d6) + 7*(d1+d4+d7) + (d2+d5+d8) ≡ 0 (mod 10).
func ValidateRoutingNumber(s string) bool {
	if !routingNumberRe.MatchString(s) {
		return false
	}
	d := make([]int, 9)
	for i := 0; i < 9; i++ {
		d[i] = int(s[i] - '0')
	}
	checksum := 3*(d[0]+d[3]+d[6]) + 7*(d[1]+d[4]+d[7]) + (d[2] + d[5] + d[8])
	return checksum%10 == 0
}

// ValidateAccountHolderName accepts 2 to 50 letters and whitespace.
func ValidateAccountHolderName(s string) bool {
	return holderNameRe.MatchString(s)
}
