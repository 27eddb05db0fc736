package order

import (
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	timestampLayout = "2006-01-02 15:04:05"
	dateLayout      = "2006-01-02"
)

var validReturnMethods = []string{"ship", "store", "postal"}

// StatusReport is the full order view returned by CheckOrderStatus.
// Exactly one of EstimatedDelivery and DeliveryDate is set, depending on
// whether the order has been delivered.
type StatusReport struct {
	OrderID           string  `json:"order_id"`
	OrderTimestamp    string  `json:"order_timestamp"`
	Status            Status  `json:"status"`
	PaymentMethod     string  `json:"payment_method"`
	TotalAmount       string  `json:"total_amount"`
	Product           Product `json:"product"`
	EstimatedDelivery *string `json:"estimated_delivery"`
	DeliveryDate      *string `json:"delivery_date"`
	RemorsePeriod     Remorse `json:"remorse_period"`
	CanCancel         bool    `json:"can_cancel"`
	CanReturn         bool    `json:"can_return"`
}

type CancellationReport struct {
	Success             bool    `json:"success"`
	OrderID             string  `json:"order_id"`
	Product             Product `json:"product"`
	Status              Status  `json:"status"`
	CancellationID      *string `json:"cancellation_id"`
	RefundID            *string `json:"refund_id"`
	RefundStatus        *string `json:"refund_status"`
	RefundAmount        *string `json:"refund_amount"`
	PaymentMethod       *string `json:"payment_method"`
	EstimatedRefundDate *string `json:"estimated_refund_date"`
	RefundSpeed         *string `json:"refund_speed"`
	InRemorsePeriod     bool    `json:"in_remorse_period"`
	Message             string  `json:"message"`
}

type ReturnReport struct {
	Success             bool     `json:"success"`
	OrderID             string   `json:"order_id"`
	Product             *Product `json:"product"`
	ReturnID            *string  `json:"return_id"`
	RefundID            *string  `json:"refund_id"`
	Status              Status   `json:"status"`
	Reason              string   `json:"reason"`
	ReturnMethod        *string  `json:"return_method"`
	ReturnInstructions  *string  `json:"return_instructions"`
	RefundAmount        *string  `json:"refund_amount"`
	EstimatedRefundDate *string  `json:"estimated_refund_date"`
	Message             string   `json:"message"`
}

// Tools implements the three order operations over one conversation's
// Store. Business-rule failures come back as structured reports, never as
// errors.
type Tools struct {
	store    *Store
	now      func() time.Time
	newToken func() string
}

type ToolsOption func(*Tools)

func WithToolsClock(now func() time.Time) ToolsOption {
	return func(t *Tools) {
		if now != nil {
			t.now = now
		}
	}
}

func WithTokenSource(fn func() string) ToolsOption {
	return func(t *Tools) {
		if fn != nil {
			t.newToken = fn
		}
	}
}

func NewTools(store *Store, opts ...ToolsOption) *Tools {
	t := &Tools{
		store:    store,
		now:      time.Now,
		newToken: defaultToken,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

func defaultToken() string {
	id := uuid.New()
	return strings.ToUpper(hex.EncodeToString(id[:4]))
}

// CheckOrderStatus always succeeds: unknown orders are synthesized on the
// spot and the cached record is reported together with remorse-window and
// eligibility fields.
func (t *Tools) CheckOrderStatus(orderID string) StatusReport {
	rec := t.store.GetOrCreate(orderID)
	now := t.now()
	remorse := EvaluateRemorse(rec.CreatedAt, now)

	report := StatusReport{
		OrderID:        orderID,
		OrderTimestamp: rec.CreatedAt.Format(timestampLayout),
		Status:         rec.Status,
		PaymentMethod:  rec.PaymentMethod,
		TotalAmount:    rec.Amount,
		Product:        rec.Product,
		RemorsePeriod:  remorse,
		CanCancel:      remorse.InRemorsePeriod,
		CanReturn:      CanReturn(rec.Status),
	}

	delivery := rec.DeliveryDate.Format(dateLayout)
	if rec.Status == StatusDelivered {
		report.DeliveryDate = &delivery
	} else {
		report.EstimatedDelivery = &delivery
	}

	return report
}

// CancelOrder cancels when the order is still inside the remorse window.
// The out-of-remorse success wording is kept even though current
// eligibility never reaches it.
func (t *Tools) CancelOrder(orderID string) CancellationReport {
	status := t.CheckOrderStatus(orderID)

	success := status.CanCancel
	easyCancel := status.RemorsePeriod.InRemorsePeriod

	report := CancellationReport{
		Success:         success,
		OrderID:         orderID,
		Product:         status.Product,
		Status:          StatusCancelled,
		InRemorsePeriod: easyCancel,
	}

	if !success {
		report.Status = "CANCELLATION_FAILED"
		report.Message = fmt.Sprintf(
			"Unable to cancel this order for %s - it may already be shipped or delivered, or outside the remorse period",
			status.Product.Name,
		)
		return report
	}

	cancellationID := "CAN-" + t.newToken()
	refundID := "REF-" + t.newToken()
	refundStatus := string(StatusProcessing)
	refundAmount := status.TotalAmount
	paymentMethod := status.PaymentMethod
	refundDate := t.now().AddDate(0, 0, 3).Format(dateLayout)

	report.CancellationID = &cancellationID
	report.RefundID = &refundID
	report.RefundStatus = &refundStatus
	report.RefundAmount = &refundAmount
	report.PaymentMethod = &paymentMethod
	report.EstimatedRefundDate = &refundDate

	var refundSpeed string
	if easyCancel {
		refundSpeed = "1-2 business days"
		report.Message = fmt.Sprintf(
			"Your order for %s has been instantly cancelled as it's within the 45-minute remorse period. Your refund of %s is being processed.",
			status.Product.Name, refundAmount,
		)
	} else {
		refundSpeed = "3-5 business days"
		report.Message = fmt.Sprintf(
			"Your order for %s has been cancelled. Your refund of %s is being processed.",
			status.Product.Name, refundAmount,
		)
	}
	report.RefundSpeed = &refundSpeed

	t.store.SetStatus(orderID, StatusCancelled)
	return report
}

// InitiateReturn starts a return for a shipped or delivered order. An
// unknown return method fails before any order lookup.
func (t *Tools) InitiateReturn(orderID, reason, returnMethod string) ReturnReport {
	if returnMethod == "" {
		returnMethod = "ship"
	}

	if !isValidReturnMethod(returnMethod) {
		return ReturnReport{
			Success: false,
			OrderID: orderID,
			Status:  "INVALID_RETURN_METHOD",
			Reason:  reason,
			Message: fmt.Sprintf("Invalid return method. Please choose from: %s", strings.Join(validReturnMethods, ", ")),
		}
	}

	status := t.CheckOrderStatus(orderID)
	success := CanReturn(status.Status)

	report := ReturnReport{
		Success: success,
		OrderID: orderID,
		Product: &status.Product,
		Reason:  reason,
	}

	if !success {
		report.Status = "RETURN_FAILED"
		report.Message = fmt.Sprintf(
			"Unable to process return for %s - the order is still being processed. Please try cancelling instead.",
			status.Product.Name,
		)
		return report
	}

	returnID := "RET-" + t.newToken()
	refundID := "REF-" + t.newToken()
	refundAmount := status.TotalAmount
	refundDate := t.now().AddDate(0, 0, 7).Format(dateLayout)

	productName := status.Product.Name
	var returnLocation, instructions string
	switch returnMethod {
	case "ship":
		returnLocation = "using the prepaid shipping label"
		instructions = fmt.Sprintf(
			"We'll email you a prepaid return shipping label to print at home. Package the %s securely and attach the label.",
			productName,
		)
	case "store":
		returnLocation = "at a nearby store"
		instructions = fmt.Sprintf(
			"You can return the %s to any of our stores. Bring your order receipt or ID. The nearest stores can be found on our website or app.",
			productName,
		)
	default: // postal
		returnLocation = "at a nearby postal office"
		instructions = fmt.Sprintf(
			"We'll email you a prepaid return label. Take the packaged %s with the attached label to any USPS, UPS, or FedEx location.",
			productName,
		)
	}

	// The shipped/delivered split only changes the wording; both branches
	// are handled identically afterwards.
	var nextSteps string
	if status.Status == StatusShipped {
		report.Status = StatusReturnInitiatedShipped
		nextSteps = fmt.Sprintf("Please keep the %s when it arrives and return it %s. %s", productName, returnLocation, instructions)
	} else {
		report.Status = StatusReturnInitiatedDelivered
		nextSteps = fmt.Sprintf("Please return the %s %s. %s", productName, returnLocation, instructions)
	}

	report.ReturnID = &returnID
	report.RefundID = &refundID
	report.ReturnMethod = &returnMethod
	report.ReturnInstructions = &instructions
	report.RefundAmount = &refundAmount
	report.EstimatedRefundDate = &refundDate
	report.Message = fmt.Sprintf("Return initiated successfully for %s. %s", productName, nextSteps)

	t.store.SetStatus(orderID, StatusReturnInitiated)
	t.store.SetReturnMethod(orderID, returnMethod)
	return report
}

func isValidReturnMethod(method string) bool {
	for _, m := range validReturnMethods {
		if m == method {
			return true
		}
	}
	return false
}

// Registry hands out one Tools per conversation so simultaneous sessions
// referencing the same order ids never collide.
type Registry struct {
	mu    sync.Mutex
	tools map[string]*Tools
	opts  []ToolsOption
	sopts []StoreOption
}

func NewRegistry(storeOpts []StoreOption, toolOpts ...ToolsOption) *Registry {
	return &Registry{
		tools: make(map[string]*Tools),
		opts:  toolOpts,
		sopts: storeOpts,
	}
}

func (r *Registry) ForSession(sessionID string) *Tools {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.tools[sessionID]; ok {
		return t
	}
	t := NewTools(NewStore(r.sopts...), r.opts...)
	r.tools[sessionID] = t
	return t
}
