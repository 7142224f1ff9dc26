package domain

import "time"

// SaleOrder echoes the submitted order back from the sale endpoint.
type SaleOrder struct {
	RoomID    int       `json:"room_id"`
	MemberID  int       `json:"member_id"`
	CreatedOn time.Time `json:"created_on"`
	Items     []string  `json:"items"`
}

// SaleResult is the upstream response to a submitted sale.
type SaleResult struct {
	Order            SaleOrder `json:"order"`
	Promille         float64   `json:"promille"`
	BPPromille       float64   `json:"bp_promille"`
	Caffeine         int       `json:"caffeine"`
	IsCoffeeMaster   bool      `json:"is_coffee_master"`
	ProductContains  []string  `json:"product_contains"`
	Cost             int64     `json:"cost"`
	GiveMultibuyHint bool      `json:"give_multibuy_hint"`
	SaleHints        bool      `json:"sale_hints"`
}

// SaleReceipt is a journal row recording a completed checkout.
type SaleReceipt struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	MemberID  int       `json:"member_id"`
	RoomID    int       `json:"room_id"`
	BuyString string    `json:"buy_string"`
	Cost      int64     `json:"cost"`
	CreatedAt time.Time `json:"created_at"`
}
