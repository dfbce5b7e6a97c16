package model

import "time"

type TransactionType string

const (
	TransactionIn  TransactionType = "in"
	TransactionOut TransactionType = "out"
)

func (t TransactionType) Valid() bool {
	return t == TransactionIn || t == TransactionOut
}

type StockTransaction struct {
	ID          string
	ProductID   string
	ProductName string
	Type        TransactionType
	Quantity    int64
	CreatedAt   time.Time
}

type TransactionInput struct {
	ProductID string
	Type      TransactionType
	Quantity  int64
}

type TransactionTypeStats struct {
	Type          TransactionType
	Count         int64
	TotalQuantity int64
}

type TransactionStats struct {
	TotalTransactions int64
	TotalIn           int64
	TotalOut          int64
	StockNet          int64
	Details           []TransactionTypeStats
}
