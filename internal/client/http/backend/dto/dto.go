// Package dto holds the JSON shapes of the Colixy backend. Field names follow the
// backend verbatim, including its French and misspelled keys.
package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

type Envelope[T any] struct {
	Data     T      `json:"data"`
	Message  string `json:"message,omitempty"`
	Page     int    `json:"page,omitempty"`
	PageSize int    `json:"pageSize,omitempty"`
	Total    int    `json:"total,omitempty"`
}

type ErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// FlexString accepts both JSON strings and numbers.
type FlexString string

func (s *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*s = ""
		return nil
	}
	if b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = FlexString(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = FlexString(n.String())
	return nil
}

// FlexFloat accepts both JSON numbers and numeric strings.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" || string(b) == `""` {
		*f = 0
		return nil
	}
	if b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return err
		}
		*f = FlexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

type Category struct {
	ID          string `json:"_id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Product struct {
	ID            string    `json:"_id,omitempty"`
	Name          string    `json:"name"`
	Price         FlexFloat `json:"price"`
	StockQuantity int64     `json:"stockQuantity"`
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	ImageURL      string    `json:"imageUrl,omitempty"`
}

type UploadResult struct {
	URL  string `json:"url"`
	Data *struct {
		URL string `json:"url"`
	} `json:"data,omitempty"`
}

// ProductRef is either a bare product id or a populated product document.
type ProductRef struct {
	ID   string `json:"_id"`
	Name string `json:"name,omitempty"`
}

func (r *ProductRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*r = ProductRef{}
		return nil
	}
	if b[0] == '"' {
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*r = ProductRef{ID: id}
		return nil
	}
	type plain ProductRef
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*r = ProductRef(p)
	return nil
}

const (
	TransactionTypeIn  = "entree"
	TransactionTypeOut = "sortie"
)

type Transaction struct {
	ID        string     `json:"_id,omitempty"`
	Product   ProductRef `json:"product"`
	Type      string     `json:"type"`
	Quantity  int64      `json:"quantity"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

type TransactionWrite struct {
	Product  string `json:"product"`
	Type     string `json:"type"`
	Quantity int64  `json:"quantity"`
}

type TransactionTypeStats struct {
	ID            string `json:"_id"`
	Count         int64  `json:"count"`
	TotalQuantity int64  `json:"totalQuantity"`
}

type TransactionStats struct {
	TotalTransactions int64                  `json:"totalTransactions"`
	TotalEntrees      int64                  `json:"totalEntrees"`
	TotalSorties      int64                  `json:"totalSorties"`
	StockNet          int64                  `json:"stockNet"`
	Details           []TransactionTypeStats `json:"details"`
}

type ColisProduct struct {
	ProdcutID string `json:"prodcut_id"`
	Quantity  int64  `json:"quantity"`
}

type Colis struct {
	ID                  string         `json:"_id,omitempty"`
	CodeBarre           string         `json:"code_barre"`
	NomDestinataire     string         `json:"nom_destinataire,omitempty"`
	TelDestinataire     string         `json:"tel_destinataire,omitempty"`
	AdresseDestinataire string         `json:"adresse_destinataire,omitempty"`
	Designation         string         `json:"designation,omitempty"`
	PayementMode        FlexString     `json:"payement_mode,omitempty"`
	MontantReception    FlexFloat      `json:"montant_reception"`
	Facture             string         `json:"facture,omitempty"`
	Cheque              string         `json:"cheque,omitempty"`
	Motif               string         `json:"motif,omitempty"`
	Statut              string         `json:"statut,omitempty"`
	EtatStr             string         `json:"etat_str,omitempty"`
	DateCreation        *time.Time     `json:"date_creation,omitempty"`
	Prodcuts            []ColisProduct `json:"Prodcuts,omitempty"`
}

type ColisDraftRequest struct {
	CodeBarre string `json:"code_barre"`
}

// ColisConfirm is sent to /colis/confirm. Line items are always present, even when empty.
type ColisConfirm struct {
	CodeBarre           string         `json:"code_barre"`
	NomDestinataire     string         `json:"nom_destinataire"`
	TelDestinataire     string         `json:"tel_destinataire"`
	AdresseDestinataire string         `json:"adresse_destinataire"`
	Designation         string         `json:"designation"`
	PayementMode        string         `json:"payement_mode"`
	MontantReception    float64        `json:"montant_reception"`
	Facture             string         `json:"facture,omitempty"`
	Cheque              string         `json:"cheque,omitempty"`
	Motif               string         `json:"motif,omitempty"`
	Statut              string         `json:"statut"`
	EtatStr             string         `json:"etat_str,omitempty"`
	Prodcuts            []ColisProduct `json:"Prodcuts"`
}

type ColisStatusStats struct {
	ID           string    `json:"_id"`
	Count        int64     `json:"count"`
	TotalMontant FlexFloat `json:"totalMontant"`
}

type ColisStats struct {
	TotalColis   int64              `json:"totalColis"`
	TotalMontant FlexFloat          `json:"totalMontant"`
	Stats        []ColisStatusStats `json:"stats"`
}

type User struct {
	ID        string     `json:"_id,omitempty"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Telephone string     `json:"telephone"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

type UserWrite struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
	Role      string `json:"role"`
	Password  string `json:"password,omitempty"`
}

type Login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Profile struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
}

type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
