package enum

import "encoding/json"

// PaymentMethod is the closed set of payment methods accepted at the
// terminal. The older billing surfaces used diverging vocabularies
// (cash/card/due/other/part vs cash/card/upi/wallet/split); this is the
// unified set.
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodUPI    PaymentMethod = "upi"
	PaymentMethodWallet PaymentMethod = "wallet"
	PaymentMethodDue    PaymentMethod = "due"
	PaymentMethodSplit  PaymentMethod = "split"
	PaymentMethodOther  PaymentMethod = "other"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodUPI,
		PaymentMethodWallet, PaymentMethodDue, PaymentMethodSplit, PaymentMethodOther:
		return true
	}
	return false
}

func (m PaymentMethod) String() string {
	return string(m)
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*m = PaymentMethod(str)
	return nil
}
