package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"feast-checkout/internal/domain"
	"feast-checkout/internal/notifier"
	"feast-checkout/internal/repo"

	"go.uber.org/zap"
)

const (
	// Flat GST applied to the recomputed subtotal. The catalog carries a
	// per-product gst_percentage but the integrity check does not read it;
	// changing this constant silently changes which totals are accepted.
	gstRate = 0.05

	// Absolute tolerance absorbing client-side rounding drift.
	priceTolerance = 0.01
)

type OrderService interface {
	ValidateAndCreate(ctx context.Context, sub *domain.OrderSubmission) (*domain.Order, error)
}

type orderService struct {
	products repo.ProductRepo
	orders   repo.OrderRepo
	notifier notifier.Notifier
	log      *zap.SugaredLogger
}

func NewOrderService(
	products repo.ProductRepo,
	orders repo.OrderRepo,
	n notifier.Notifier,
	log *zap.SugaredLogger,
) OrderService {
	return &orderService{
		products: products,
		orders:   orders,
		notifier: n,
		log:      log,
	}
}

// ValidateAndCreate re-prices the submission against the catalog and persists
// it only if the client's arithmetic holds up. Client prices are never
// trusted: the subtotal is rebuilt from catalog prices and the submitted
// figures must agree within tolerance.
func (s *orderService) ValidateAndCreate(ctx context.Context, sub *domain.OrderSubmission) (*domain.Order, error) {
	if verr := validateSubmission(sub); verr != nil {
		return nil, verr
	}

	byID, bySKU, err := s.fetchCatalog(ctx, sub.Items)
	if err != nil {
		return nil, err
	}

	var calculatedSubtotal float64
	for _, item := range sub.Items {
		product, ok := resolveProduct(item, byID, bySKU)
		if !ok {
			return nil, domain.NewValidationError(fmt.Sprintf("unknown product: %s", item.Name))
		}
		if math.Abs(item.Price-product.Price) > priceTolerance {
			return nil, domain.NewValidationError(fmt.Sprintf(
				"price mismatch for %s, please refresh and try again", product.Name))
		}
		calculatedSubtotal += product.Price * item.Quantity
	}

	calculatedGST := calculatedSubtotal * gstRate
	calculatedTotal := calculatedSubtotal + calculatedGST

	if math.Abs(sub.Subtotal-calculatedSubtotal) > priceTolerance ||
		math.Abs(sub.GSTAmount-calculatedGST) > priceTolerance ||
		math.Abs(sub.TotalAmount-calculatedTotal) > priceTolerance {
		return nil, domain.NewValidationError(
			"order totals do not match current pricing, please refresh and try again")
	}

	status := sub.Status
	if status == "" {
		status = domain.OrderReceived
	}

	order := &domain.Order{
		CustomerName:        strings.TrimSpace(sub.CustomerName),
		CustomerEmail:       strings.TrimSpace(sub.CustomerEmail),
		Mobile:              strings.TrimSpace(sub.Mobile),
		Address:             strings.TrimSpace(sub.Address),
		SpecialInstructions: strings.TrimSpace(sub.SpecialInstructions),
		Items:               sub.Items,
		Subtotal:            sub.Subtotal,
		GSTAmount:           sub.GSTAmount,
		TotalAmount:         sub.TotalAmount,
		TotalItems:          sub.TotalItems,
		Status:              status,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.log.Errorw("order insert failed", "error", err, "customer", order.CustomerName)
		return nil, domain.ErrOrderPersistence
	}

	// Fire-and-forget: the order is already committed, a lost email never
	// reverses it or changes the caller's outcome.
	if order.CustomerEmail != "" {
		subject, body := renderOrderConfirmation(order)
		if err := s.notifier.Send(ctx, order.CustomerEmail, subject, body); err != nil {
			s.log.Warnw("order confirmation email failed",
				"error", err, "order_id", order.ID, "email", order.CustomerEmail)
		}
	}

	return order, nil
}

// fetchCatalog partitions item ids into UUID-shaped and SKU-shaped keys,
// loads the union in one query, and indexes the result both ways.
func (s *orderService) fetchCatalog(
	ctx context.Context,
	items []domain.OrderItem,
) (map[string]domain.Product, map[string]domain.Product, error) {
	var ids, skus []string
	for _, item := range items {
		key := domain.ParseProductKey(strings.TrimSpace(item.ID))
		if key.Kind == domain.KeyUUID {
			ids = append(ids, key.Value)
		} else {
			skus = append(skus, key.Value)
		}
	}

	products, err := s.products.FindByKeys(ctx, ids, skus)
	if err != nil {
		s.log.Errorw("catalog lookup failed", "error", err)
		return nil, nil, domain.ErrProductLookup
	}
	if len(products) == 0 {
		return nil, nil, domain.NewValidationError("no matching products found for this order")
	}

	byID := make(map[string]domain.Product, len(products))
	bySKU := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[strings.ToLower(p.ID.String())] = p
		if p.SKU != "" {
			bySKU[p.SKU] = p
		}
	}
	return byID, bySKU, nil
}

// resolveProduct tries the id map first, then falls back to SKU.
func resolveProduct(
	item domain.OrderItem,
	byID, bySKU map[string]domain.Product,
) (domain.Product, bool) {
	id := strings.TrimSpace(item.ID)
	if p, ok := byID[strings.ToLower(id)]; ok {
		return p, true
	}
	p, ok := bySKU[id]
	return p, ok
}

func renderOrderConfirmation(order *domain.Order) (string, string) {
	var lines strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&lines, "<li>%s × %.0f — ₹%.2f</li>", item.Name, item.Quantity, item.Price*item.Quantity)
	}
	subject := "Your order has been received"
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Thank you for your order! We have received it and will be in touch shortly.</p>"+
			"<ul>%s</ul><p>Subtotal: ₹%.2f<br>GST: ₹%.2f<br><b>Total: ₹%.2f</b></p>",
		order.CustomerName, lines.String(), order.Subtotal, order.GSTAmount, order.TotalAmount)
	return subject, body
}
