package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usdTable() RateTable {
	return RateTable{
		Base: USD,
		Rates: map[CurrencyCode]float64{
			EUR: 0.92,
			GBP: 0.79,
			JPY: 149.50,
		},
		FetchedAt: time.Now(),
	}
}

func TestRateTable_SameCurrency(t *testing.T) {
	table := usdTable()
	for _, c := range SupportedCurrencies() {
		rate, ok := table.Rate(c, c)
		require.True(t, ok)
		assert.Equal(t, 1.0, rate, "same-currency rate must be exactly 1.0 for %s", c)
	}
}

func TestRateTable_DirectFromBase(t *testing.T) {
	rate, ok := usdTable().Rate(USD, EUR)
	require.True(t, ok)
	assert.Equal(t, 0.92, rate)
}

func TestRateTable_InverseToBase(t *testing.T) {
	rate, ok := usdTable().Rate(EUR, USD)
	require.True(t, ok)
	assert.InDelta(t, 1.0/0.92, rate, 1e-9)
}

func TestRateTable_CrossRate(t *testing.T) {
	rate, ok := usdTable().Rate(EUR, GBP)
	require.True(t, ok)
	assert.InDelta(t, 0.79/0.92, rate, 1e-9)
}

func TestRateTable_MissingLeg(t *testing.T) {
	_, ok := usdTable().Rate(EUR, CHF)
	assert.False(t, ok)

	_, ok = usdTable().Rate(CHF, EUR)
	assert.False(t, ok)
}

func TestRateTable_Convert(t *testing.T) {
	out, ok := usdTable().Convert(100, USD, EUR)
	require.True(t, ok)
	assert.InDelta(t, 92.0, out, 1e-9)

	_, ok = usdTable().Convert(100, USD, CHF)
	assert.False(t, ok)
}

func TestRateTable_Valid(t *testing.T) {
	assert.True(t, usdTable().Valid())

	bad := usdTable()
	bad.Rates[EUR] = 0
	assert.False(t, bad.Valid())

	inf := usdTable()
	inf.Rates[GBP] = math.Inf(1)
	assert.False(t, inf.Valid())

	assert.False(t, RateTable{}.Valid())
}

func TestCurrencyCode_IsSupported(t *testing.T) {
	assert.True(t, EUR.IsSupported())
	assert.False(t, CurrencyCode("XXX").IsSupported())
	assert.False(t, CurrencyCode("eur").IsSupported())
}

func TestValidateAccountNumber(t *testing.T) {
	assert.True(t, ValidateAccountNumber("12345678"), "8 digits is the minimum")
	assert.True(t, ValidateAccountNumber("12345678901234567"), "17 digits is the maximum")
	assert.False(t, ValidateAccountNumber("1234567"), "7 digits is too short")
	assert.False(t, ValidateAccountNumber("123456789012345678"), "18 digits is too long")
	assert.False(t, ValidateAccountNumber("1234567a"))
	assert.False(t, ValidateAccountNumber(""))
}

func TestValidateRoutingNumber(t *testing.T) {
	// Known-good ABA numbers.
	assert.True(t, ValidateRoutingNumber("021000021"))
	assert.True(t, ValidateRoutingNumber("011401533"))
	assert.True(t, ValidateRoutingNumber("000000000"), "all zeros trivially satisfies the checksum")

	// Checksum of 123456789 is (3*12 + 7*15 + 18) mod 10 = 9.
	assert.False(t, ValidateRoutingNumber("123456789"))

	assert.False(t, ValidateRoutingNumber("02100002"), "8 digits")
	assert.False(t, ValidateRoutingNumber("0210000211"), "10 digits")
	assert.False(t, ValidateRoutingNumber("02100002a"))
}

func TestValidateAccountHolderName(t *testing.T) {
	assert.True(t, ValidateAccountHolderName("John Doe"))
	assert.True(t, ValidateAccountHolderName("Jo"))
	assert.False(t, ValidateAccountHolderName("J"), "single letter is too short")
	assert.False(t, ValidateAccountHolderName("John Doe 3rd"), "digits are not allowed")
	assert.False(t, ValidateAccountHolderName("O'Brien"), "punctuation is not allowed")
}

func TestBankAccount_HasRequiredFields(t *testing.T) {
	acct := BankAccount{
		AccountNumber:     "12345678",
		RoutingNumber:     "021000021",
		AccountHolderName: "John Doe",
		BankName:          "First National",
		AccountType:       AccountTypeChecking,
	}
	assert.True(t, acct.HasRequiredFields())

	acct.BankName = ""
	assert.False(t, acct.HasRequiredFields())
}

func TestTransactionStatus_StateMachine(t *testing.T) {
	assert.True(t, TransactionStatusPending.CanTransitionTo(TransactionStatusProcessing))
	assert.True(t, TransactionStatusPending.CanTransitionTo(TransactionStatusFailed))
	assert.False(t, TransactionStatusPending.CanTransitionTo(TransactionStatusCompleted))

	assert.True(t, TransactionStatusProcessing.CanTransitionTo(TransactionStatusCompleted))
	assert.True(t, TransactionStatusProcessing.CanTransitionTo(TransactionStatusFailed))
	assert.False(t, TransactionStatusProcessing.CanTransitionTo(TransactionStatusPending))

	// Nothing leaves a terminal state.
	for _, terminal := range []TransactionStatus{TransactionStatusCompleted, TransactionStatusFailed} {
		for _, next := range []TransactionStatus{TransactionStatusPending, TransactionStatusProcessing, TransactionStatusCompleted, TransactionStatusFailed} {
			assert.False(t, terminal.CanTransitionTo(next), "%s -> %s must be rejected", terminal, next)
		}
	}
}

func TestPurchaseTransaction_AccountLast4(t *testing.T) {
	tx := PurchaseTransaction{BankAccount: BankAccount{AccountNumber: "123456789012"}}
	assert.Equal(t, "9012", tx.AccountLast4())

	short := PurchaseTransaction{BankAccount: BankAccount{AccountNumber: "123"}}
	assert.Equal(t, "123", short.AccountLast4())
}

func TestNewTransactionID_Unique(t *testing.T) {
	a := NewTransactionID()
	b := NewTransactionID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
