package orders

import (
	"context"

	"github.com/RedaKaafarani1/ecomwebsite/internal/cart"
	"github.com/RedaKaafarani1/ecomwebsite/internal/promo"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/config"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/db/models"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/email"
	pkgerrors "github.com/RedaKaafarani1/ecomwebsite/pkg/errors"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/logger"
	"github.com/RedaKaafarani1/ecomwebsite/pkg/validation"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams groups dependencies for the order service.
type ServiceParams struct {
	CartRepo   cart.Repository
	PromoRepo  promo.Repository
	OrderRepo  Repository
	Sender     email.Sender
	EmailCfg   config.EmailConfig
	Tx         txRunner
	Logger     *logger.Logger
}

// Service submits orders by email and serves the order history.
type Service interface {
	Submit(ctx context.Context, ownerID string, info validation.CustomerInfo) (*OrderDTO, error)
	History(ctx context.Context, ownerID string, limit int) ([]OrderDTO, error)
}

type service struct {
	cartRepo  cart.Repository
	promoRepo promo.Repository
	orderRepo Repository
	sender    email.Sender
	emailCfg  config.EmailConfig
	tx        txRunner
	logg      *logger.Logger
}

// NewService builds an order service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CartRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	if params.PromoRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "promo repo is required")
	}
	if params.OrderRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order repo is required")
	}
	if params.Sender == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email sender is required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction runner is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &service{
		cartRepo:  params.CartRepo,
		promoRepo: params.PromoRepo,
		orderRepo: params.OrderRepo,
		sender:    params.Sender,
		emailCfg:  params.EmailCfg,
		tx:        params.Tx,
		logg:      params.Logger,
	}, nil
}

// Submit validates the customer info, prices out the cart, hands the order to
// the email service, then records it and clears the cart. The cart is touched
// only after the email send succeeds; a send failure leaves the cart intact.
func (s *service) Submit(ctx context.Context, ownerID string, info validation.CustomerInfo) (*OrderDTO, error) {
	if ownerID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart owner is required")
	}

	info = sanitizeCustomerInfo(info)
	if fieldErrs := validation.ValidateCustomerInfo(info); len(fieldErrs) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer information is invalid").
			WithDetails(fieldErrs)
	}

	lines, err := s.cartRepo.ListLines(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	applied, err := s.promoRepo.ActiveForOwner(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load applied promo")
	}

	totals := priceOut(lines, applied)
	summary := FormatOrderSummary(lines, info, totals)

	send := email.SendRequest{
		TemplateID: s.emailCfg.OrderTemplateID,
		To:         info.Email,
		Params: map[string]string{
			"customer_name": info.FirstName + " " + info.LastName,
			"order_summary": summary,
			"subtotal":      totals.Subtotal.StringFixed(2),
			"discount":      totals.Discount.StringFixed(2),
			"total":         totals.Total.StringFixed(2),
		},
	}
	if s.emailCfg.CopyEmail != "" {
		send.CC = []string{s.emailCfg.CopyEmail}
	}
	if err := s.sender.Send(ctx, send); err != nil {
		s.logg.Error(ctx, "order email send failed", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send order email")
	}

	order := &models.Order{
		OwnerID:       ownerID,
		CustomerEmail: info.Email,
		Subtotal:      totals.Subtotal,
		Discount:      totals.Discount,
		Total:         totals.Total,
		Summary:       summary,
		Items:         make([]models.OrderItem, 0, len(lines)),
	}
	for _, line := range lines {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
		})
	}

	// The applied promo is retired with the order, so its use stays consumed.
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.orderRepo.WithTx(tx).Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record order")
		}
		if err := s.cartRepo.WithTx(tx).Clear(ctx, ownerID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
		}
		if _, err := s.promoRepo.WithTx(tx).DeleteApplied(ctx, ownerID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "retire applied promo")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	dto := NewOrderDTO(*order)
	return &dto, nil
}

// History lists the owner's past orders, newest first.
func (s *service) History(ctx context.Context, ownerID string, limit int) ([]OrderDTO, error) {
	if ownerID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart owner is required")
	}
	rows, err := s.orderRepo.ListForOwner(ctx, ownerID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	dtos := make([]OrderDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, NewOrderDTO(row))
	}
	return dtos, nil
}

func sanitizeCustomerInfo(info validation.CustomerInfo) validation.CustomerInfo {
	return validation.CustomerInfo{
		FirstName: validation.SanitizeText(info.FirstName),
		LastName:  validation.SanitizeText(info.LastName),
		Email:     validation.SanitizeText(info.Email),
		Phone:     validation.SanitizeText(info.Phone),
		Address:   validation.SanitizeText(info.Address),
	}
}

func priceOut(lines []cart.LineRecord, applied *models.AppliedPromo) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2))
	}

	percent := 0
	if applied != nil {
		percent = applied.Percent
	}
	discount, total := promo.ComputeTotals(subtotal, percent)
	return Totals{
		Subtotal:        subtotal.Round(2),
		Discount:        discount,
		Total:           total,
		DiscountPercent: percent,
	}
}
