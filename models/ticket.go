package models

type Ticket struct {
	ID           uint64 `json:"id"`
	EventID      uint64 `json:"event_id"`
	Owner        string `json:"owner"`
	PurchaseTime int64  `json:"purchase_time"`
	Used         bool   `json:"used"`
	Refunded     bool   `json:"refunded"`
}
