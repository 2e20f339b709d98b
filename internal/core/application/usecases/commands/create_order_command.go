package commands

import (
	"errors"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/errs"
	"grocery/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents the checkout flow handing a freshly paid
// order to the lifecycle manager. It carries the parties and the monetary
// snapshot; the order starts life in "pending" status.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(
//	    kernel.NewUUID(), "GRC-2024-000123",
//	    customerID, storeID,
//	    2000, 500, 300, 150, 2350,
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	number     string
	customerID kernel.UUID
	storeID    kernel.UUID
	totals     kernel.OrderTotals

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new grocery order.
// Validates the identifiers, the order number, and that the monetary
// snapshot reconciles. Amounts are in minor currency units.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	number string,
	customerID, storeID kernel.UUID,
	subtotal, deliveryFee, discount, tax, total int64,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setNumber(number),
		orderCommand.setParties(customerID, storeID),
		orderCommand.setTotals(subtotal, deliveryFee, discount, tax, total),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// OrderID returns the identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Number returns the human-readable order number.
func (c CreateOrderCommand) Number() string {
	return c.number
}

// CustomerID returns the customer placing the order.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// StoreID returns the vendor fulfilling the order.
func (c CreateOrderCommand) StoreID() kernel.UUID {
	return c.storeID
}

// Totals returns the validated monetary snapshot.
func (c CreateOrderCommand) Totals() kernel.OrderTotals {
	return c.totals
}

// Validate ensures the command was created through the constructor.
func (c *CreateOrderCommand) Validate() error {
	return c.guard.Validate(
		ErrCreateOrderCommandIsNotConstructed,
	)
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	c.number = number
	return nil
}

func (c *CreateOrderCommand) setParties(customerID, storeID kernel.UUID) error {
	if err := errors.Join(
		customerID.Validate(),
		storeID.Validate(),
	); err != nil {
		return err
	}
	c.customerID = customerID
	c.storeID = storeID
	return nil
}

func (c *CreateOrderCommand) setTotals(subtotal, deliveryFee, discount, tax, total int64) error {
	amounts := make([]kernel.Money, 0, 5)
	for _, raw := range []int64{subtotal, deliveryFee, discount, tax, total} {
		m, err := kernel.NewMoney(raw)
		if err != nil {
			return err
		}
		amounts = append(amounts, m)
	}

	totals, err := kernel.NewOrderTotals(amounts[0], amounts[1], amounts[2], amounts[3], amounts[4])
	if err != nil {
		return err
	}

	c.totals = totals
	return nil
}
