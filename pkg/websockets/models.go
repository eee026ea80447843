package websockets

// MessageType defines the type of a WebSocket message.
type MessageType string

const (
	// MessageTypeWalletUpdate is for messages that update wallet balances.
	MessageTypeWalletUpdate MessageType = "walletUpdate"
	// MessageTypeOrderUpdate is sent when an order is created or changes status.
	MessageTypeOrderUpdate MessageType = "orderUpdate"
)

// Message represents a generic WebSocket message.
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// WalletUpdatePayload is the payload for a walletUpdate message.
type WalletUpdatePayload struct {
	SerialID     string `json:"serialId"`
	Kind         string `json:"kind"`
	Change       string `json:"change"`
	BalanceUSD   string `json:"balanceUSD"`
	BalanceCoins int64  `json:"balanceCoins"`
	Reason       string `json:"reason"`
}

// OrderUpdatePayload is the payload for an orderUpdate message.
type OrderUpdatePayload struct {
	OrderID      string `json:"orderId"`
	UserID       string `json:"userId"`
	Status       string `json:"status"`
	IsRead       bool   `json:"isRead"`
	AdminMessage string `json:"adminMessage,omitempty"`
}
