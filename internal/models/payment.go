package models

import "fmt"

// PaymentMethod is the closed set of payment types understood by the
// HomeBank CSV format. The numeric value of each constant is the wire
// code written to the output file, so the order here must never change.
type PaymentMethod int

const (
	PaymentNone PaymentMethod = iota
	PaymentCreditCard
	PaymentCheck
	PaymentCash
	// HomeBank CSV imports cannot express multi-account transfers, so
	// transfers land as a plain bank transfer.
	PaymentBankTransfer
	PaymentInternalTransfer
	PaymentDebitCard
	PaymentStandingOrder
	PaymentElectronicPayment
	PaymentDeposit
	PaymentFIFee
	PaymentDirectDebit
)

// paymentNames is the single source of truth mapping wire codes to
// display names. Serialization always uses the code, never the name.
var paymentNames = [...]string{
	PaymentNone:              "none",
	PaymentCreditCard:        "credit-card",
	PaymentCheck:             "check",
	PaymentCash:              "cash",
	PaymentBankTransfer:      "bank-transfer",
	PaymentInternalTransfer:  "internal-transfer",
	PaymentDebitCard:         "debit-card",
	PaymentStandingOrder:     "standing-order",
	PaymentElectronicPayment: "electronic-payment",
	PaymentDeposit:           "deposit",
	PaymentFIFee:             "institution-fee",
	PaymentDirectDebit:       "direct-debit",
}

// Code returns the numeric wire representation used by the HomeBank format.
func (p PaymentMethod) Code() int {
	return int(p)
}

// String returns the display name of the payment method.
func (p PaymentMethod) String() string {
	if p < 0 || int(p) >= len(paymentNames) {
		return fmt.Sprintf("payment(%d)", int(p))
	}
	return paymentNames[p]
}

// IsValid reports whether the value is one of the defined payment methods.
func (p PaymentMethod) IsValid() bool {
	return p >= PaymentNone && p <= PaymentDirectDebit
}

// ParsePaymentMethod maps a display name back to its PaymentMethod.
func ParsePaymentMethod(name string) (PaymentMethod, error) {
	for code, n := range paymentNames {
		if n == name {
			return PaymentMethod(code), nil
		}
	}
	return PaymentNone, fmt.Errorf("unknown payment method '%s'", name)
}
