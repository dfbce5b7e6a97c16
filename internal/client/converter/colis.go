package converter

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/you-humble/colixy-dashboard/internal/client/http/backend/dto"
	"github.com/you-humble/colixy-dashboard/internal/model"
)

func ParcelsToModel(src []dto.Colis) []model.Parcel {
	return lo.Map(src, func(c dto.Colis, _ int) model.Parcel {
		return ParcelToModel(c)
	})
}

func ParcelToModel(c dto.Colis) model.Parcel {
	status := model.ParcelStatus(c.Statut)
	label := c.EtatStr
	if label == "" && status != "" {
		label = status.Label()
	}

	return model.Parcel{
		ID:               c.ID,
		Barcode:          c.CodeBarre,
		RecipientName:    c.NomDestinataire,
		RecipientPhone:   c.TelDestinataire,
		RecipientAddress: c.AdresseDestinataire,
		Designation:      c.Designation,
		PaymentMode:      string(c.PayementMode),
		Amount:           decimal.NewFromFloat(float64(c.MontantReception)),
		Invoice:          c.Facture,
		Cheque:           c.Cheque,
		Motif:            c.Motif,
		Status:           status,
		StatusLabel:      label,
		CreatedAt:        timeOrZero(c.DateCreation),
		Items: lo.Map(c.Prodcuts, func(p dto.ColisProduct, _ int) model.LineItem {
			return model.LineItem{ProductID: p.ProdcutID, Quantity: p.Quantity}
		}),
	}
}

// ParcelConfirmationToDTO keeps the draft's barcode and status as they are.
func ParcelConfirmationToDTO(c model.ParcelConfirmation) dto.ColisConfirm {
	items := make([]dto.ColisProduct, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, dto.ColisProduct{ProdcutID: it.ProductID, Quantity: it.Quantity})
	}

	return dto.ColisConfirm{
		CodeBarre:           c.Barcode,
		NomDestinataire:     c.RecipientName,
		TelDestinataire:     c.RecipientPhone,
		AdresseDestinataire: c.RecipientAddress,
		Designation:         c.Designation,
		PayementMode:        string(c.PaymentMode),
		MontantReception:    c.Amount.InexactFloat64(),
		Facture:             c.Invoice,
		Cheque:              c.Cheque,
		Motif:               c.Motif,
		Statut:              string(c.Status),
		EtatStr:             c.StatusLabel,
		Prodcuts:            items,
	}
}

func ParcelStatsToModel(s dto.ColisStats) model.ParcelStats {
	return model.ParcelStats{
		TotalParcels: s.TotalColis,
		TotalAmount:  decimal.NewFromFloat(float64(s.TotalMontant)),
		ByStatus: lo.Map(s.Stats, func(st dto.ColisStatusStats, _ int) model.ParcelStatusStats {
			return model.ParcelStatusStats{
				Status:      st.ID,
				Count:       st.Count,
				TotalAmount: decimal.NewFromFloat(float64(st.TotalMontant)),
			}
		}),
	}
}
