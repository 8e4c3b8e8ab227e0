package bill_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/billbook/internal/bill"
)

var fixedNow = func() time.Time { return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC) }

func widgetForm() bill.Form {
	return bill.Form{
		CustomerName:    "Acme Ltd",
		CustomerAddress: "1 Main St",
		CustomerPhone:   "555-0100",
		BillDate:        "2026-01-31",
		DueDate:         "2026-02-28",
		Items: bill.ItemRows{
			Names:      []string{"Widget", ""},
			Quantities: []string{"2", ""},
			Prices:     []string{"9.99", ""},
		},
		TaxRate:      "8",
		DiscountRate: "0",
		Notes:        "net 30",
	}
}

func TestService_Create(t *testing.T) {
	type args struct {
		form bill.Form
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *bill.MockRepository)
		verify    func(t *testing.T, b *bill.Bill)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{form: widgetForm()},
			setupMock: func(m *bill.MockRepository) {
				m.EXPECT().
					CreateBill(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, b *bill.Bill) error {
						b.ID = 42
						return nil
					})
			},
			verify: func(t *testing.T, b *bill.Bill) {
				assert.Equal(t, bill.ID(42), b.ID)
				assert.Equal(t, "Acme Ltd", b.CustomerName)
				assert.Equal(t, "2026-01-31", b.BillDate)
				require.Len(t, b.Items, 1)
				assert.Equal(t, "Widget", b.Items[0].Name)
				assert.InDelta(t, 19.98, b.Subtotal, 1e-9)
				assert.InDelta(t, 1.5984, b.Tax, 1e-9)
				assert.InDelta(t, 0, b.Discount, 1e-9)
				assert.InDelta(t, 21.5784, b.Total, 1e-9)
			},
		},
		{
			name: "BillDateDefaultsToToday",
			args: args{form: func() bill.Form {
				f := widgetForm()
				f.BillDate = ""
				return f
			}()},
			setupMock: func(m *bill.MockRepository) {
				m.EXPECT().CreateBill(gomock.Any(), gomock.Any()).Return(nil)
			},
			verify: func(t *testing.T, b *bill.Bill) {
				assert.Equal(t, "2026-03-14", b.BillDate)
			},
		},
		{
			name: "MissingCustomerName",
			args: args{form: func() bill.Form {
				f := widgetForm()
				f.CustomerName = "   "
				return f
			}()},
			wantErr: bill.ErrValidation,
		},
		{
			name: "MalformedDueDate",
			args: args{form: func() bill.Form {
				f := widgetForm()
				f.DueDate = "28/02/2026"
				return f
			}()},
			wantErr: bill.ErrValidation,
		},
		{
			name: "InvalidQuantity",
			args: args{form: func() bill.Form {
				f := widgetForm()
				f.Items.Quantities[0] = "abc"
				return f
			}()},
			wantErr: bill.ErrInvalidNumberFormat,
		},
		{
			name: "InvalidTax",
			args: args{form: func() bill.Form {
				f := widgetForm()
				f.TaxRate = "eight"
				return f
			}()},
			wantErr: bill.ErrInvalidNumberFormat,
		},
		{
			name: "InvalidDiscount",
			args: args{form: func() bill.Form {
				f := widgetForm()
				f.DiscountRate = "5%"
				return f
			}()},
			wantErr: bill.ErrInvalidNumberFormat,
		},
		{
			name: "QuantityOverflowsFloat",
			args: args{form: func() bill.Form {
				f := widgetForm()
				f.Items.Quantities[0] = "1e400"
				return f
			}()},
			wantErr: bill.ErrInvalidNumberFormat,
		},
		{
			name: "LineTotalOverflowsFloat",
			args: args{form: func() bill.Form {
				f := widgetForm()
				f.Items.Quantities[0] = "1e200"
				f.Items.Prices[0] = "1e200"
				return f
			}()},
			wantErr: bill.ErrInvalidNumberFormat,
		},
		{
			name: "TaxRateOverflowsFloat",
			args: args{form: func() bill.Form {
				f := widgetForm()
				f.TaxRate = "1e400"
				return f
			}()},
			wantErr: bill.ErrInvalidNumberFormat,
		},
		{
			name: "SubtotalOverflowsFloat",
			args: args{form: func() bill.Form {
				f := widgetForm()
				f.Items = bill.ItemRows{
					Names:      []string{"A", "B"},
					Quantities: []string{"1e308", "1e308"},
					Prices:     []string{"1", "1"},
				}
				return f
			}()},
			wantErr: bill.ErrInvalidNumberFormat,
		},
		{
			name: "TaxAmountOverflowsFloat",
			args: args{form: func() bill.Form {
				f := widgetForm()
				f.Items.Quantities[0] = "1e300"
				f.Items.Prices[0] = "1"
				f.TaxRate = "1e20"
				return f
			}()},
			wantErr: bill.ErrInvalidNumberFormat,
		},
		{
			name: "RepoError",
			args: args{form: widgetForm()},
			setupMock: func(m *bill.MockRepository) {
				m.EXPECT().
					CreateBill(gomock.Any(), gomock.Any()).
					Return(errors.New("disk full"))
			},
			wantErr: bill.ErrStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := bill.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := bill.NewService(repo, bill.WithClock(fixedNow))
			got, err := svc.Create(context.Background(), tt.args.form)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)

			if tt.verify != nil {
				tt.verify(t, got)
			}
		})
	}
}

func TestService_Update(t *testing.T) {
	t.Run("OverflowingQuantityNotStored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		form := widgetForm()
		form.Items.Quantities[0] = "1e400"

		svc := bill.NewService(bill.NewMockRepository(ctrl), bill.WithClock(fixedNow))
		got, err := svc.Update(context.Background(), 7, form)

		assert.ErrorIs(t, err, bill.ErrInvalidNumberFormat)
		assert.Nil(t, got)
	})

	t.Run("ReplacesBill", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := bill.NewMockRepository(ctrl)
		repo.EXPECT().
			UpdateBill(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b *bill.Bill) error {
				assert.Equal(t, bill.ID(7), b.ID)
				assert.InDelta(t, 21.5784, b.Total, 1e-9)
				return nil
			})

		svc := bill.NewService(repo, bill.WithClock(fixedNow))
		got, err := svc.Update(context.Background(), 7, widgetForm())
		require.NoError(t, err)
		assert.Equal(t, bill.ID(7), got.ID)
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := bill.NewMockRepository(ctrl)
		repo.EXPECT().UpdateBill(gomock.Any(), gomock.Any()).Return(bill.ErrNotFound)

		svc := bill.NewService(repo)
		_, err := svc.Update(context.Background(), 99, widgetForm())
		assert.ErrorIs(t, err, bill.ErrNotFound)
		assert.NotErrorIs(t, err, bill.ErrStorage)
	})

	t.Run("ValidationErrorSkipsRepo", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := bill.NewMockRepository(ctrl)

		form := widgetForm()
		form.Items.Prices[0] = "free"

		svc := bill.NewService(repo)
		_, err := svc.Update(context.Background(), 7, form)
		assert.ErrorIs(t, err, bill.ErrInvalidNumberFormat)
	})
}

func TestService_Get(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *bill.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *bill.MockRepository) {
				m.EXPECT().GetBill(gomock.Any(), bill.ID(3)).Return(&bill.Bill{ID: 3}, nil)
			},
		},
		{
			name: "NotFound",
			setupMock: func(m *bill.MockRepository) {
				m.EXPECT().GetBill(gomock.Any(), bill.ID(3)).Return(nil, bill.ErrNotFound)
			},
			wantErr: bill.ErrNotFound,
		},
		{
			name: "StorageError",
			setupMock: func(m *bill.MockRepository) {
				m.EXPECT().GetBill(gomock.Any(), bill.ID(3)).Return(nil, errors.New("connection reset"))
			},
			wantErr: bill.ErrStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := bill.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := bill.NewService(repo).Get(context.Background(), 3)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, bill.ID(3), got.ID)
		})
	}
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := bill.NewMockRepository(ctrl)
	repo.EXPECT().ListBills(gomock.Any()).Return([]*bill.Bill{{ID: 1}, {ID: 2}}, nil)
	repo.EXPECT().ListBills(gomock.Any()).Return(nil, errors.New("boom"))

	svc := bill.NewService(repo)

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = svc.List(context.Background())
	assert.ErrorIs(t, err, bill.ErrStorage)
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := bill.NewMockRepository(ctrl)
	repo.EXPECT().DeleteBill(gomock.Any(), bill.ID(404)).Return(nil)
	repo.EXPECT().DeleteBill(gomock.Any(), bill.ID(5)).Return(errors.New("locked"))

	svc := bill.NewService(repo)

	assert.NoError(t, svc.Delete(context.Background(), 404))
	assert.ErrorIs(t, svc.Delete(context.Background(), 5), bill.ErrStorage)
}

func TestService_LookupCustomer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := bill.NewMockRepository(ctrl)
	repo.EXPECT().
		LatestCustomerBill(gomock.Any(), "Acme Ltd").
		Return(&bill.Bill{CustomerName: "Acme Ltd", CustomerAddress: "1 Main St", CustomerPhone: "555-0100"}, nil)
	repo.EXPECT().
		LatestCustomerBill(gomock.Any(), "Nobody").
		Return(nil, bill.ErrNotFound)

	svc := bill.NewService(repo)

	got, err := svc.LookupCustomer(context.Background(), "  Acme Ltd ")
	require.NoError(t, err)
	assert.Equal(t, &bill.Customer{Name: "Acme Ltd", Address: "1 Main St", Phone: "555-0100"}, got)

	_, err = svc.LookupCustomer(context.Background(), "Nobody")
	assert.ErrorIs(t, err, bill.ErrNotFound)

	_, err = svc.LookupCustomer(context.Background(), "")
	assert.ErrorIs(t, err, bill.ErrValidation)
}
