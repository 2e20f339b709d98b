package kernel

import (
	"fmt"

	"grocery/internal/pkg/errs"
)

// Money is a value object for a monetary amount expressed in minor currency
// units (e.g., cents). Amounts are never negative; subtraction that would go
// below zero is a validation failure, not a negative value.
//
// Money is immutable. Arithmetic returns new values.
type Money struct {
	amount int64
}

// NewMoney creates a Money value from an amount in minor units.
// Negative amounts are rejected.
func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount is invalid",
			fmt.Errorf("%d is negative", amount))
	}
	return Money{amount: amount}, nil
}

// Amount returns the amount in minor units.
func (m Money) Amount() int64 {
	return m.amount
}

// Add returns the sum of two monetary amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount + other.amount}
}

// Sub returns the difference of two monetary amounts.
// Fails if the result would be negative.
func (m Money) Sub(other Money) (Money, error) {
	return NewMoney(m.amount - other.amount)
}

// IsEqual reports whether two amounts are equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount
}

// String formats the amount as a decimal with two fraction digits.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.amount/100, m.amount%100)
}

// OrderTotals is the monetary snapshot of an order, computed once at checkout
// and never recomputed afterwards. Total must reconcile with its parts:
// subtotal + delivery fee + tax - discount.
type OrderTotals struct {
	subtotal    Money
	deliveryFee Money
	discount    Money
	tax         Money
	total       Money
}

// NewOrderTotals creates a validated monetary snapshot.
// The discount may not exceed the charges it is applied against, and the
// total must equal subtotal + deliveryFee + tax - discount.
func NewOrderTotals(subtotal, deliveryFee, discount, tax, total Money) (OrderTotals, error) {
	gross := subtotal.Add(deliveryFee).Add(tax)

	net, err := gross.Sub(discount)
	if err != nil {
		return OrderTotals{}, errs.NewValueIsInvalidErrorWithCause("discount is invalid",
			fmt.Errorf("discount %s exceeds charges %s", discount, gross))
	}

	if !net.IsEqual(total) {
		return OrderTotals{}, errs.NewValueIsInvalidErrorWithCause("total is invalid",
			fmt.Errorf("total %s does not reconcile, expected %s", total, net))
	}

	return OrderTotals{
		subtotal:    subtotal,
		deliveryFee: deliveryFee,
		discount:    discount,
		tax:         tax,
		total:       total,
	}, nil
}

// Subtotal returns the sum of line items before fees and discounts.
func (t OrderTotals) Subtotal() Money {
	return t.subtotal
}

// DeliveryFee returns the delivery charge.
func (t OrderTotals) DeliveryFee() Money {
	return t.deliveryFee
}

// Discount returns the discount applied at checkout.
func (t OrderTotals) Discount() Money {
	return t.discount
}

// Tax returns the tax charged.
func (t OrderTotals) Tax() Money {
	return t.tax
}

// Total returns the amount charged to the customer.
func (t OrderTotals) Total() Money {
	return t.total
}
