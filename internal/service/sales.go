package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/go-ports/bizdesk/internal/api"
	"github.com/go-ports/bizdesk/internal/cache"
	"github.com/go-ports/bizdesk/internal/models"
	"github.com/go-ports/bizdesk/internal/pricing"
	"github.com/go-ports/bizdesk/internal/validate"
)

// SaleQuote is the priced form of a sale. The packaging breakdown is only
// present for ready sales.
type SaleQuote struct {
	ProductType models.ProductType `json:"product_type"`
	Quantity    models.Amount      `json:"quantity"`
	PricePerKg  models.Amount      `json:"price_per_kg"`
	TotalPrice  models.Amount      `json:"total_price"`

	Weight   *models.Amount `json:"weight,omitempty"`
	PerDozen *models.Amount `json:"per_dozen,omitempty"`
	BoxPrice *models.Amount `json:"box_price,omitempty"`
}

func deref(a *models.Amount) decimal.Decimal {
	if a == nil {
		return decimal.Zero
	}
	return a.Decimal
}

func amountPtr(d decimal.Decimal) *models.Amount {
	a := models.NewAmount(d)
	return &a
}

// ParseProductType maps user input to a product type. Empty means loose.
func ParseProductType(s string) (models.ProductType, error) {
	switch t := models.ProductType(strings.ToLower(strings.TrimSpace(s))); t {
	case "", models.ProductLoose:
		return models.ProductLoose, nil
	case models.ProductReady:
		return t, nil
	}
	return "", fmt.Errorf("product type %q must be %q or %q", s, models.ProductLoose, models.ProductReady)
}

// Quote prices in and writes the computed quantity, price per kg and total
// back into it. Loose sales keep their quantity and price; ready sales derive
// both from the packaging inputs, along with the dozen count, grams per dozen,
// price per gram and carton price stored for ready rows.
func Quote(in *models.SaleInput) (*SaleQuote, error) {
	t, err := ParseProductType(string(in.ProductType))
	if err != nil {
		return nil, err
	}
	in.ProductType = t

	q := &SaleQuote{ProductType: t}
	if t == models.ProductLoose {
		in.TotalPrice = models.NewAmount(pricing.LooseTotal(in.Quantity.Decimal, in.PricePerKg.Decimal))
	} else {
		r := pricing.Ready(pricing.ReadyInput{
			Pieces:        deref(in.Pieces),
			GramsPerPiece: deref(in.GramsPerPiece),
			RatePerGram:   deref(in.RatePerGram),
			PackingCost:   deref(in.PackingCost),
			DozensPerBox:  deref(in.DozensPerBox),
			TotalBoxes:    deref(in.TotalBoxes),
		})
		in.Quantity = models.NewAmount(r.Quantity)
		in.PricePerKg = models.NewAmount(r.PricePerKg)
		in.TotalPrice = models.NewAmount(r.TotalPrice)
		in.DozenQuantity = amountPtr(r.DozenQuantity)
		in.GramsPerDozen = amountPtr(decimal.NewFromInt(pricing.GramsPerDozen))
		in.PricePerGram = amountPtr(r.PricePerGram)
		in.PricePerCarton = amountPtr(r.PricePerCarton)
		q.Weight = amountPtr(r.Weight)
		q.PerDozen = amountPtr(r.PerDozen)
		q.BoxPrice = amountPtr(r.BoxPrice)
	}
	q.Quantity = in.Quantity
	q.PricePerKg = in.PricePerKg
	q.TotalPrice = in.TotalPrice
	return q, nil
}

// prepareSale prices, names and validates a sale. Stock is checked against
// a live product listing when checkStock is set.
func (s *Service) prepareSale(ctx context.Context, in *models.SaleInput, checkStock bool) error {
	if _, err := Quote(in); err != nil {
		return &validate.Error{Form: "sale", Problems: []validate.FieldError{{Field: "product_type", Problem: err.Error()}}}
	}

	if in.ClientName == "" {
		if name, ok := s.names(cache.KindClient).lookup(ctx, in.ClientID); ok {
			in.ClientName = name
		}
	}

	var available *models.Amount
	if checkStock && in.ProductID != "" {
		products, err := s.api.ListProducts(ctx)
		if err != nil {
			return err
		}
		for i := range products {
			if products[i].ID == in.ProductID {
				available = &products[i].Quantity
				if in.ProductName == "" {
					in.ProductName = products[i].Name
				}
				break
			}
		}
		s.store(cache.KindProduct, cache.ProductRefs(products))
	}
	if in.ProductName == "" {
		if name, ok := s.names(cache.KindProduct).lookup(ctx, in.ProductID); ok {
			in.ProductName = name
		}
	}

	return validate.Sale(in, available)
}

// ListSales returns the sales in r with missing client and product names
// filled from reference data.
func (s *Service) ListSales(ctx context.Context, r api.DateRange) ([]models.Sale, error) {
	sales, err := s.api.ListSales(ctx, r)
	if err != nil {
		return nil, err
	}
	s.enrichSales(ctx, sales)
	return sales, nil
}

func (s *Service) enrichSales(ctx context.Context, sales []models.Sale) {
	clients, products := s.names(cache.KindClient), s.names(cache.KindProduct)
	for i := range sales {
		sale := &sales[i]
		if strings.TrimSpace(sale.ClientName) == "" {
			sale.ClientName = UnknownClient
			if name, ok := clients.lookup(ctx, sale.ClientID); ok {
				sale.ClientName = name
			}
		}
		if strings.TrimSpace(sale.ProductName) == "" {
			sale.ProductName = UnknownProduct
			if name, ok := products.lookup(ctx, sale.ProductID); ok {
				sale.ProductName = name
			}
		}
	}
}

// AddSale prices, validates and books a sale. The quantity may not exceed
// the product's current stock.
func (s *Service) AddSale(ctx context.Context, in *models.SaleInput) (*api.Ack, error) {
	if err := s.prepareSale(ctx, in, true); err != nil {
		return nil, err
	}
	ack, err := s.api.CreateSale(ctx, in)
	if err != nil {
		return nil, err
	}
	s.touched(ctx, cache.KindProduct)
	return ack, nil
}

// UpdateSale re-prices and replaces the sale identified by in.ID. Unlike the
// sales screen, stock is not rechecked here: the listed stock already
// excludes this sale's own quantity and the backend owns that adjustment.
func (s *Service) UpdateSale(ctx context.Context, in *models.SaleInput) (*api.Ack, error) {
	if err := s.prepareSale(ctx, in, false); err != nil {
		return nil, err
	}
	ack, err := s.api.UpdateSale(ctx, in)
	if err != nil {
		return nil, err
	}
	s.touched(ctx, cache.KindProduct)
	return ack, nil
}

// DeleteSale removes a sale.
func (s *Service) DeleteSale(ctx context.Context, id models.ID) (*api.Ack, error) {
	ack, err := s.api.DeleteSale(ctx, id)
	if err != nil {
		return nil, err
	}
	s.touched(ctx, cache.KindProduct)
	return ack, nil
}
