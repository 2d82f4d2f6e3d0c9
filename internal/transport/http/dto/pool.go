package dto

// Amounts travel as base-10 strings: they exceed the integer range JSON
// numbers can carry.

// ProvideRequest is the body of POST /provide.
type ProvideRequest struct {
	DepositA       string `json:"deposit_a"`
	DepositB       string `json:"deposit_b"`
	ExpectedShares string `json:"expected_shares"`
	Slippage       string `json:"slippage"`
}

// WithdrawRequest is the body of POST /withdraw.
type WithdrawRequest struct {
	Shares string `json:"shares"`
}

// SwapRequest is the body of POST /swap.
type SwapRequest struct {
	Direction   string `json:"direction"`
	AmountIn    string `json:"amount_in"`
	ExpectedOut string `json:"expected_out"`
	Slippage    string `json:"slippage"`
}

// TransferSharesRequest is the body of POST /shares/transfer.
type TransferSharesRequest struct {
	To     string `json:"to"`
	Amount string `json:"amount"`
}

// ApproveSharesRequest is the body of POST /shares/approve.
type ApproveSharesRequest struct {
	Spender string `json:"spender"`
	Amount  string `json:"amount"`
}

// ApproveAssetRequest is the body of POST /assets/{asset}/approve.
type ApproveAssetRequest struct {
	Spender string `json:"spender"`
	Amount  string `json:"amount"`
}

// TransferSharesFromRequest is the body of POST /shares/transfer-from.
type TransferSharesFromRequest struct {
	Owner  string `json:"owner"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

// SharesResponse reports minted shares.
type SharesResponse struct {
	Shares string `json:"shares"`
}

// AmountsResponse reports an asset A and asset B pair.
type AmountsResponse struct {
	AmountA string `json:"amount_a"`
	AmountB string `json:"amount_b"`
}

// SwapResponse reports an executed swap.
type SwapResponse struct {
	Received string `json:"received"`
	Gross    string `json:"gross"`
	ToCaller string `json:"to_caller"`
	ToVault  string `json:"to_vault"`
}

// AmountResponse reports a single amount.
type AmountResponse struct {
	Amount string `json:"amount"`
}

// TradeCountResponse reports the swap counter.
type TradeCountResponse struct {
	TradeCount int64 `json:"trade_count"`
}

// InfoResponse describes the pool.
type InfoResponse struct {
	Self        string `json:"self"`
	FeeVault    string `json:"fee_vault"`
	AssetA      string `json:"asset_a"`
	AssetB      string `json:"asset_b"`
	BaseFeeRate string `json:"base_fee_rate"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}
