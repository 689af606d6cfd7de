package types

// IBRequest is a pending or decided introducing-broker application, as the
// admin back-office sees it.
type IBRequest struct {
	ID                         string  `json:"_id"`
	Email                      string  `json:"email"`
	ExistingClientBase         string  `json:"existingClientBase"`
	OfferEducation             string  `json:"offerEducation"`
	ExpectedClientsNext3Months string  `json:"expectedClientsNext3Months"`
	ExpectedCommissionDirect   string  `json:"expectedCommissionDirect"`
	ExpectedCommissionSubIB    string  `json:"expectedCommissionSubIB"`
	YourShare                  float64 `json:"yourShare"`
	ClientShare                float64 `json:"clientShare"`
	Status                     string  `json:"status"`
	ReferralCode               string  `json:"referralCode,omitempty"`
	Commission                 float64 `json:"commission,omitempty"`
}

// BalanceSnapshot is the trading platform's view of one account's balance.
type BalanceSnapshot struct {
	AccountNo  int64
	BalanceUSD float64
	DWBalance  string
}

// PayoutResult is the backend's decision on a commission withdrawal. On
// rejection, Message carries the backend's business-rule text and must reach
// the end user verbatim.
type PayoutResult struct {
	Success       bool    `json:"success"`
	OrderID       string  `json:"orderid,omitempty"`
	NewCommission float64 `json:"newCommission,omitempty"`
	Message       string  `json:"message,omitempty"`
}
