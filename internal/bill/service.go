package bill

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=bill
type Repository interface {
	CreateBill(ctx context.Context, b *Bill) error
	GetBill(ctx context.Context, id ID) (*Bill, error)
	ListBills(ctx context.Context) ([]*Bill, error)
	UpdateBill(ctx context.Context, b *Bill) error
	DeleteBill(ctx context.Context, id ID) error
	LatestCustomerBill(ctx context.Context, customerName string) (*Bill, error)
}

type Service struct {
	repo     Repository
	validate *validator.Validate
	now      func() time.Time
}

type Option func(*Service)

// WithClock overrides the clock used to default the bill date.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Create validates and prices the form, then inserts it as a new bill.
func (s *Service) Create(ctx context.Context, form Form) (*Bill, error) {
	b, err := s.build(form)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateBill(ctx, b); err != nil {
		return nil, storageError("creating bill", err)
	}

	return b, nil
}

// Update validates and prices the form, then replaces every mutable field of bill id.
func (s *Service) Update(ctx context.Context, id ID, form Form) (*Bill, error) {
	b, err := s.build(form)
	if err != nil {
		return nil, err
	}

	b.ID = id
	if err := s.repo.UpdateBill(ctx, b); err != nil {
		return nil, storageError(fmt.Sprintf("updating bill %d", id), err)
	}

	return b, nil
}

func (s *Service) Get(ctx context.Context, id ID) (*Bill, error) {
	b, err := s.repo.GetBill(ctx, id)
	if err != nil {
		return nil, storageError(fmt.Sprintf("getting bill %d", id), err)
	}

	return b, nil
}

func (s *Service) List(ctx context.Context) ([]*Bill, error) {
	bills, err := s.repo.ListBills(ctx)
	if err != nil {
		return nil, storageError("listing bills", err)
	}

	return bills, nil
}

// Delete removes bill id. Deleting a bill that does not exist is not an error.
func (s *Service) Delete(ctx context.Context, id ID) error {
	if err := s.repo.DeleteBill(ctx, id); err != nil {
		return storageError(fmt.Sprintf("deleting bill %d", id), err)
	}

	return nil
}

// LookupCustomer returns the contact details recorded on the customer's most recent bill.
func (s *Service) LookupCustomer(ctx context.Context, name string) (*Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: customer name is required", ErrValidation)
	}

	b, err := s.repo.LatestCustomerBill(ctx, name)
	if err != nil {
		return nil, storageError("looking up customer", err)
	}

	return &Customer{
		Name:    b.CustomerName,
		Address: b.CustomerAddress,
		Phone:   b.CustomerPhone,
	}, nil
}

// build runs the shared create/update pipeline: validate, parse items and rates, compute totals.
func (s *Service) build(form Form) (*Bill, error) {
	form.CustomerName = strings.TrimSpace(form.CustomerName)
	form.BillDate = strings.TrimSpace(form.BillDate)
	form.DueDate = strings.TrimSpace(form.DueDate)

	if err := s.validate.Struct(form); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, describe(err))
	}

	items, err := form.Items.Parse()
	if err != nil {
		return nil, err
	}

	taxRate, err := ParseRate(form.TaxRate)
	if err != nil {
		return nil, fmt.Errorf("tax: %w", err)
	}

	discountRate, err := ParseRate(form.DiscountRate)
	if err != nil {
		return nil, fmt.Errorf("discount: %w", err)
	}

	totals := ComputeTotals(Subtotal(items), taxRate, discountRate)
	if !totals.Finite() {
		return nil, fmt.Errorf("bill totals are out of range: %w", ErrInvalidNumberFormat)
	}

	billDate := form.BillDate
	if billDate == "" {
		billDate = s.now().Format(time.DateOnly)
	}

	return &Bill{
		CustomerName:    form.CustomerName,
		CustomerAddress: form.CustomerAddress,
		CustomerPhone:   form.CustomerPhone,
		BillDate:        billDate,
		DueDate:         form.DueDate,
		Items:           items,
		Subtotal:        totals.Subtotal,
		Tax:             totals.Tax,
		Discount:        totals.Discount,
		Total:           totals.Total,
		Notes:           form.Notes,
	}, nil
}

func storageError(op string, err error) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrStorage) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

var fieldLabels = map[string]string{
	"CustomerName": "customer name",
	"BillDate":     "bill date",
	"DueDate":      "due date",
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		label, ok := fieldLabels[fe.Field()]
		if !ok {
			label = fe.Field()
		}

		switch fe.Tag() {
		case "required":
			msgs = append(msgs, label+" is required")
		case "datetime":
			msgs = append(msgs, label+" must be a YYYY-MM-DD date")
		default:
			msgs = append(msgs, label+" is invalid")
		}
	}

	return strings.Join(msgs, "; ")
}
