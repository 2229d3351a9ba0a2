package request

// CreateTransactionRequest is the body of POST /api/transaction. Shares is
// always the positive quantity ordered; the type decides the sign the
// ledger stores. The execution price comes from the market, not the client.
type CreateTransactionRequest struct {
	Symbol string `json:"symbol"`
	Type   string `json:"type"`
	Shares int64  `json:"shares"`
}
