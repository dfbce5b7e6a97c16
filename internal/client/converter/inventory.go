package converter

import (
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/you-humble/colixy-dashboard/internal/client/http/backend/dto"
	"github.com/you-humble/colixy-dashboard/internal/model"
)

func CategoriesToModel(src []dto.Category) []model.Category {
	return lo.Map(src, func(c dto.Category, _ int) model.Category {
		return CategoryToModel(c)
	})
}

func CategoryToModel(c dto.Category) model.Category {
	return model.Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
}

func CategoryInputToDTO(in model.CategoryInput) dto.Category {
	return dto.Category{
		Name:        in.Name,
		Description: in.Description,
	}
}

func ProductsToModel(src []dto.Product) []model.Product {
	return lo.Map(src, func(p dto.Product, _ int) model.Product {
		return ProductToModel(p)
	})
}

func ProductToModel(p dto.Product) model.Product {
	return model.Product{
		ID:            p.ID,
		Name:          p.Name,
		Price:         decimal.NewFromFloat(float64(p.Price)),
		StockQuantity: p.StockQuantity,
		CategoryID:    p.Category,
		Description:   p.Description,
		ImageURL:      p.ImageURL,
	}
}

func ProductToDTO(p model.Product) dto.Product {
	return dto.Product{
		Name:          p.Name,
		Price:         dto.FlexFloat(p.Price.InexactFloat64()),
		StockQuantity: p.StockQuantity,
		Category:      p.CategoryID,
		Description:   p.Description,
		ImageURL:      p.ImageURL,
	}
}

func TransactionsToModel(src []dto.Transaction) []model.StockTransaction {
	return lo.Map(src, func(t dto.Transaction, _ int) model.StockTransaction {
		return TransactionToModel(t)
	})
}

func TransactionToModel(t dto.Transaction) model.StockTransaction {
	return model.StockTransaction{
		ID:          t.ID,
		ProductID:   t.Product.ID,
		ProductName: t.Product.Name,
		Type:        TransactionTypeToModel(t.Type),
		Quantity:    t.Quantity,
		CreatedAt:   timeOrZero(t.CreatedAt),
	}
}

func TransactionInputToDTO(in model.TransactionInput) dto.TransactionWrite {
	return dto.TransactionWrite{
		Product:  in.ProductID,
		Type:     TransactionTypeToDTO(in.Type),
		Quantity: in.Quantity,
	}
}

func TransactionStatsToModel(s dto.TransactionStats) model.TransactionStats {
	return model.TransactionStats{
		TotalTransactions: s.TotalTransactions,
		TotalIn:           s.TotalEntrees,
		TotalOut:          s.TotalSorties,
		StockNet:          s.StockNet,
		Details: lo.Map(s.Details, func(d dto.TransactionTypeStats, _ int) model.TransactionTypeStats {
			return model.TransactionTypeStats{
				Type:          TransactionTypeToModel(d.ID),
				Count:         d.Count,
				TotalQuantity: d.TotalQuantity,
			}
		}),
	}
}

func TransactionTypeToModel(s string) model.TransactionType {
	switch s {
	case dto.TransactionTypeIn:
		return model.TransactionIn
	case dto.TransactionTypeOut:
		return model.TransactionOut
	default:
		return model.TransactionType(s)
	}
}

func TransactionTypeToDTO(t model.TransactionType) string {
	switch t {
	case model.TransactionIn:
		return dto.TransactionTypeIn
	case model.TransactionOut:
		return dto.TransactionTypeOut
	default:
		return string(t)
	}
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
