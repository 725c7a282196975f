package settlement

import "time"

// BookingOrder is handed back to the client-side payment flow after an
// order was registered with the gateway.
type BookingOrder struct {
	OrderID   string `json:"order_id"`
	PaymentID uint   `json:"payment_id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Seats     int    `json:"seats"`
}

// BankDetails is the payout destination for a withdrawal. The transfer
// itself is delegated to external payout rails.
type BankDetails struct {
	AccountHolder string `json:"account_holder"`
	AccountNumber string `json:"account_number"`
	IFSCCode      string `json:"ifsc_code"`
	BankName      string `json:"bank_name"`
}

// WithdrawalReceipt marks a debited, externally-pending withdrawal.
type WithdrawalReceipt struct {
	Amount  int64  `json:"amount"`
	Status  string `json:"status"`
	EntryID uint   `json:"entry_id"`
}

// Config holds settlement engine configuration.
type Config struct {
	// WebhookSecret is the gateway shared secret used to verify callback
	// signatures.
	WebhookSecret string
	Currency      string
	// GatewayTimeout bounds order-creation and refund calls.
	GatewayTimeout time.Duration
}
