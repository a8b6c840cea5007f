package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	cartrepo "github.com/rkhandelwal/tradebazaar-backend/internal/cart"
	"github.com/rkhandelwal/tradebazaar-backend/internal/coupons"
	"github.com/rkhandelwal/tradebazaar-backend/internal/pricing"
	productrepo "github.com/rkhandelwal/tradebazaar-backend/internal/products"
	userrepo "github.com/rkhandelwal/tradebazaar-backend/internal/users"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/config"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/db"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/db/models"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/enums"
	pkgerrors "github.com/rkhandelwal/tradebazaar-backend/pkg/errors"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/pagination"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/types"
)

// loyaltyEarnDivisor awards one point per this much spent on a delivered
// order.
var loyaltyEarnDivisor = decimal.NewFromInt(100)

// CheckoutPolicy carries the shipping knobs resolved from configuration.
type CheckoutPolicy struct {
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
}

// PolicyFromConfig parses the checkout configuration strings.
func PolicyFromConfig(cfg config.CheckoutConfig) (CheckoutPolicy, error) {
	threshold, err := decimal.NewFromString(cfg.FreeShippingThreshold)
	if err != nil {
		return CheckoutPolicy{}, fmt.Errorf("parse free shipping threshold: %w", err)
	}
	fee, err := decimal.NewFromString(cfg.FlatShippingFee)
	if err != nil {
		return CheckoutPolicy{}, fmt.Errorf("parse flat shipping fee: %w", err)
	}
	return CheckoutPolicy{FreeShippingThreshold: threshold, FlatShippingFee: fee}, nil
}

// ShippingFor resolves the shipping cost for a subtotal.
func (p CheckoutPolicy) ShippingFor(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(p.FreeShippingThreshold) {
		return decimal.Zero
	}
	return p.FlatShippingFee
}

// PlaceOrderInput is the validated payload to place an order from the cart.
type PlaceOrderInput struct {
	CouponCode      *string
	LoyaltyPoints   int
	ShippingAddress *types.Address
}

// Service exposes order placement and lifecycle operations.
type Service interface {
	Checkout(ctx context.Context, userID uuid.UUID, userType enums.UserType, input PlaceOrderInput) (*OrderDTO, error)
	GetOrder(ctx context.Context, actorID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*OrderDTO, error)
	ListOrders(ctx context.Context, userID uuid.UUID, params pagination.Params) (*OrderPageDTO, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, next enums.OrderStatus) (*OrderDTO, error)
	CancelOrder(ctx context.Context, actorID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*OrderDTO, error)
}

// ServiceParams groups dependencies for the order service. Checkout and
// cancel rebind the repositories onto their transaction, so the concrete
// types are required here.
type ServiceParams struct {
	OrderRepo *Repository
	Products  *productrepo.Repository
	Carts     *cartrepo.Repository
	Coupons   *coupons.Repository
	Users     *userrepo.Repository
	DBClient  *db.Client
	Notifier  notifier
	Policy    CheckoutPolicy
}

type service struct {
	repo     *Repository
	products *productrepo.Repository
	carts    *cartrepo.Repository
	coupons  *coupons.Repository
	users    *userrepo.Repository
	dbClient *db.Client
	notifier notifier
	policy   CheckoutPolicy
}

// NewService builds an order service with the required dependencies. The
// notifier is optional; every other dependency is mandatory.
func NewService(params ServiceParams) (Service, error) {
	if params.OrderRepo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product store required")
	}
	if params.Carts == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if params.Coupons == nil {
		return nil, fmt.Errorf("coupon store required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("user store required")
	}
	if params.DBClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{
		repo:     params.OrderRepo,
		products: params.Products,
		carts:    params.Carts,
		coupons:  params.Coupons,
		users:    params.Users,
		dbClient: params.DBClient,
		notifier: params.Notifier,
		policy:   params.Policy,
	}, nil
}

// Checkout assembles an order from the user's cart: every line is priced
// against the live catalog, stock is reserved conditionally, and the
// computed totals plus line items are snapshotted immutably on the order.
func (s *service) Checkout(ctx context.Context, userID uuid.UUID, userType enums.UserType, input PlaceOrderInput) (*OrderDTO, error) {
	if input.LoyaltyPoints < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "loyalty_points must be non-negative")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if input.LoyaltyPoints > user.LoyaltyPoints {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "not enough loyalty points")
	}

	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if len(cart.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	items, err := s.snapshotLines(ctx, cart.Items, userType)
	if err != nil {
		return nil, err
	}

	subtotal, gst := sumLines(items)

	var coupon *models.Coupon
	discount := decimal.Zero
	if input.CouponCode != nil && strings.TrimSpace(*input.CouponCode) != "" {
		coupon, err = s.coupons.FindByCode(ctx, *input.CouponCode)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load coupon")
		}
		discount, err = coupons.DiscountFor(coupon, subtotal, time.Now().UTC())
		if err != nil {
			return nil, err
		}
	}

	shipping := s.policy.ShippingFor(subtotal)
	appliedPoints := cappedLoyaltyPoints(input.LoyaltyPoints,
		subtotal.Add(gst).Add(shipping).Sub(discount))
	loyaltyValue := decimal.NewFromInt(int64(appliedPoints))
	total := totalAmount(subtotal, gst, shipping, discount.Add(loyaltyValue))

	order := &models.Order{
		UserID:            userID,
		OrderNumber:       newOrderNumber(),
		Items:             items,
		Subtotal:          subtotal,
		GSTAmount:         gst,
		ShippingCost:      shipping,
		DiscountAmount:    discount.Add(loyaltyValue),
		TotalAmount:       total,
		LoyaltyPointsUsed: appliedPoints,
		Status:            enums.OrderStatusPending,
		PaymentStatus:     enums.PaymentStatusPending,
		ShippingAddress:   input.ShippingAddress,
	}
	if coupon != nil {
		order.CouponCode = &coupon.Code
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txOrders := s.repo.WithTx(tx)
		txProducts := s.products.WithTx(tx)
		txCoupons := s.coupons.WithTx(tx)
		txUsers := s.users.WithTx(tx)
		txCarts := s.carts.WithTx(tx)

		for _, item := range items {
			ok, err := txProducts.ReserveStock(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reserve stock")
			}
			if !ok {
				return pkgerrors.New(pkgerrors.CodeConflict,
					fmt.Sprintf("insufficient stock for %s", item.Title))
			}
		}

		if coupon != nil {
			ok, err := txCoupons.ConsumeUse(ctx, coupon.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "consume coupon")
			}
			if !ok {
				return pkgerrors.New(pkgerrors.CodeValidation, "coupon usage limit reached")
			}
		}

		if appliedPoints > 0 {
			if err := txUsers.AdjustLoyaltyPoints(ctx, userID, -appliedPoints); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redeem loyalty points")
			}
		}

		if _, err := txOrders.Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert order")
		}

		for _, item := range items {
			if err := txProducts.AddTotalSold(ctx, item.ProductID, item.Quantity); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "bump total sold")
			}
		}

		return txCarts.Clear(ctx, cart.ID)
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checkout")
	}

	s.notify(ctx, "order.created", order)
	return NewOrderDTO(order), nil
}

// GetOrder loads one order for its owner or an admin.
func (s *service) GetOrder(ctx context.Context, actorID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.UserID != actorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another user")
	}
	return NewOrderDTO(order), nil
}

// ListOrders pages the user's own orders.
func (s *service) ListOrders(ctx context.Context, userID uuid.UUID, params pagination.Params) (*OrderPageDTO, error) {
	rows, page, err := s.repo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	dtos := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *NewOrderDTO(&rows[i]))
	}
	return &OrderPageDTO{Orders: dtos, Pagination: page}, nil
}

// UpdateStatus advances the order through the forward-only state machine.
// Delivered orders award loyalty points to the buyer.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, next enums.OrderStatus) (*OrderDTO, error) {
	if !next.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move order from %s to %s", order.Status, next))
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		moved, err := s.repo.WithTx(tx).TransitionStatus(ctx, orderID, order.Status, next)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "transition status")
		}
		if !moved {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order status changed concurrently")
		}

		if next == enums.OrderStatusDelivered {
			if earned := int(order.TotalAmount.Div(loyaltyEarnDivisor).IntPart()); earned > 0 {
				if err := s.users.WithTx(tx).AdjustLoyaltyPoints(ctx, order.UserID, earned); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "award loyalty points")
				}
			}
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update status")
	}
	order.Status = next

	s.notify(ctx, "order.status_changed", order)
	return NewOrderDTO(order), nil
}

// CancelOrder cancels a not-yet-delivered order, restocks every line, and
// refunds redeemed loyalty points.
func (s *service) CancelOrder(ctx context.Context, actorID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.UserID != actorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another user")
	}
	if !order.Status.CanTransitionTo(enums.OrderStatusCancelled) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot cancel order in status %s", order.Status))
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txOrders := s.repo.WithTx(tx)
		txProducts := s.products.WithTx(tx)
		txUsers := s.users.WithTx(tx)

		moved, err := txOrders.TransitionStatus(ctx, orderID, order.Status, enums.OrderStatusCancelled)
		if err != nil {
			return err
		}
		if !moved {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order status changed concurrently")
		}

		for _, item := range order.Items {
			if err := txProducts.RestockQuantity(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		if order.LoyaltyPointsUsed > 0 {
			if err := txUsers.AdjustLoyaltyPoints(ctx, order.UserID, order.LoyaltyPointsUsed); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel order")
	}

	order.Status = enums.OrderStatusCancelled
	s.notify(ctx, "order.cancelled", order)
	return NewOrderDTO(order), nil
}

// snapshotLines prices every cart line against the live catalog and copies
// the results into immutable order items.
func (s *service) snapshotLines(ctx context.Context, cartItems []models.CartItem, userType enums.UserType) (types.OrderItems, error) {
	items := make(types.OrderItems, 0, len(cartItems))
	for _, cartItem := range cartItems {
		prod, err := s.products.FindDetail(ctx, cartItem.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart references a missing product")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}
		if !prod.IsActive || prod.ApprovalStatus != enums.ApprovalStatusApproved {
			return nil, pkgerrors.New(pkgerrors.CodeConflict,
				fmt.Sprintf("%s is no longer purchasable", prod.Title))
		}

		unit, err := resolveUnitPrice(prod, cartItem, userType)
		if err != nil {
			return nil, err
		}

		lineSubtotal := unit.Mul(decimal.NewFromInt(int64(cartItem.Quantity))).Round(2)
		lineGST := lineSubtotal.Mul(prod.GSTPercentage).Div(decimal.NewFromInt(100)).Round(2)

		items = append(items, types.OrderItem{
			ProductID:     prod.ID,
			VariantID:     cartItem.VariantID,
			Title:         prod.Title,
			Quantity:      cartItem.Quantity,
			UnitPrice:     unit,
			GSTPercentage: prod.GSTPercentage,
			LineSubtotal:  lineSubtotal,
			LineGST:       lineGST,
		})
	}
	return items, nil
}

// resolveUnitPrice mirrors the cart's live pricing: custom dimensions win,
// then variant price overrides, then the tier schedule; bulk tiers apply on
// top in every case.
func resolveUnitPrice(prod *models.Product, item models.CartItem, userType enums.UserType) (decimal.Decimal, error) {
	var unit decimal.Decimal
	switch {
	case item.CustomDimensions != nil && prod.SizeConfiguration != nil:
		price, err := pricing.CustomSizePrice(*prod.SizeConfiguration, *item.CustomDimensions)
		if err != nil {
			return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "dimensions outside allowed range")
		}
		unit = price
	case item.VariantID != nil:
		unit = pricing.UnitPrice(prod.BasePrice, prod.PricingTiers, userType)
		for i := range prod.Variants {
			if prod.Variants[i].ID == *item.VariantID && prod.Variants[i].Price != nil {
				unit = *prod.Variants[i].Price
				break
			}
		}
	default:
		unit = pricing.UnitPrice(prod.BasePrice, prod.PricingTiers, userType)
	}

	unit, err := pricing.ApplyBulkPricing(unit, item.Quantity, prod.BulkPricingTiers, userType)
	if err != nil {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	return unit, nil
}

// sumLines totals the per-line subtotals and GST amounts.
func sumLines(items types.OrderItems) (subtotal, gst decimal.Decimal) {
	subtotal, gst = decimal.Zero, decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineSubtotal)
		gst = gst.Add(item.LineGST)
	}
	return subtotal, gst
}

// cappedLoyaltyPoints limits redemption to what the order can absorb after
// the coupon discount, so excess points are never burned. One point is worth
// one currency unit.
func cappedLoyaltyPoints(requested int, remaining decimal.Decimal) int {
	if requested <= 0 || remaining.IsNegative() {
		return 0
	}
	if limit := int(remaining.IntPart()); requested > limit {
		return limit
	}
	return requested
}

// totalAmount computes subtotal + gst + shipping - discount, floored at
// zero.
func totalAmount(subtotal, gst, shipping, discount decimal.Decimal) decimal.Decimal {
	total := subtotal.Add(gst).Add(shipping).Sub(discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total.Round(2)
}

func (s *service) loadOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) notify(ctx context.Context, eventType string, order *models.Order) {
	if s.notifier == nil {
		return
	}
	s.notifier.PublishOrderEvent(ctx, OrderEvent{
		Type:        eventType,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		Status:      order.Status.String(),
		TotalAmount: order.TotalAmount.String(),
	})
}

func newOrderNumber() string {
	return fmt.Sprintf("TB-%s-%s",
		time.Now().UTC().Format("20060102"),
		strings.ToUpper(uuid.NewString()[:8]))
}
