package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndome/investhub/internal/apperrors"
	"github.com/ndome/investhub/internal/models"
	"github.com/ndome/investhub/internal/repository"
	"github.com/ndome/investhub/internal/testutil"
)

func Test_Storage(t *testing.T) {
	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	withStorage := func(t *testing.T, testFunc func(storage repository.Storage)) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			testFunc(NewStorage(tx))
		})
	}

	createInvestor := func(t *testing.T, storage repository.Storage) models.Investor {
		t.Helper()
		investor, err := storage.Investors().CreateInvestor(t.Context(), "investor-"+uuid.NewString(), "hash", models.RoleInvestor)
		require.NoError(t, err)
		err = storage.Balances().CreateBalance(t.Context(), investor.ID)
		require.NoError(t, err)
		return investor
	}

	t.Run("investors", func(t *testing.T) {
		t.Run("create and get", func(t *testing.T) {
			withStorage(t, func(storage repository.Storage) {
				created, err := storage.Investors().CreateInvestor(t.Context(), "amina", "hash", models.RoleAdmin)
				require.NoError(t, err)
				assert.NotEqual(t, uuid.Nil, created.ID)
				assert.Equal(t, models.RoleAdmin, created.Role)
				assert.WithinDuration(t, time.Now(), created.CreatedAt, time.Second)

				byID, err := storage.Investors().GetInvestorByID(t.Context(), created.ID)
				require.NoError(t, err)
				assert.Equal(t, created.ID, byID.ID)
				assert.Equal(t, created.Username, byID.Username)
				assert.Equal(t, created.Role, byID.Role)

				byName, err := storage.Investors().GetInvestorByUsername(t.Context(), "amina")
				require.NoError(t, err)
				assert.Equal(t, created.ID, byName.ID)
			})
		})

		t.Run("duplicate username", func(t *testing.T) {
			withStorage(t, func(storage repository.Storage) {
				_, err := storage.Investors().CreateInvestor(t.Context(), "amina", "hash", models.RoleInvestor)
				require.NoError(t, err)

				_, err = storage.Investors().CreateInvestor(t.Context(), "amina", "hash", models.RoleInvestor)
				require.ErrorIs(t, err, apperrors.ErrInvestorAlreadyExists)
			})
		})

		t.Run("not found", func(t *testing.T) {
			withStorage(t, func(storage repository.Storage) {
				_, err := storage.Investors().GetInvestorByID(t.Context(), uuid.New())
				require.ErrorIs(t, err, apperrors.ErrInvestorNotFound)
			})
		})
	})

	t.Run("balances", func(t *testing.T) {
		t.Run("buckets are independent", func(t *testing.T) {
			withStorage(t, func(storage repository.Storage) {
				investor := createInvestor(t, storage)

				_, err := storage.Balances().AddToBucket(t.Context(), investor.ID, models.WithdrawalTypeCash, decimal.NewFromInt(1000))
				require.NoError(t, err)
				balance, err := storage.Balances().AddToBucket(t.Context(), investor.ID, models.WithdrawalTypeProfit, decimal.NewFromInt(250))
				require.NoError(t, err)

				assert.True(t, balance.Cash.Equal(decimal.NewFromInt(1000)))
				assert.True(t, balance.Profit.Equal(decimal.NewFromInt(250)))
				assert.True(t, balance.Product.IsZero())
				assert.True(t, balance.EquipmentShare.IsZero())

				// Negative delta debits
				balance, err = storage.Balances().AddToBucket(t.Context(), investor.ID, models.WithdrawalTypeCash, decimal.NewFromInt(-400))
				require.NoError(t, err)
				assert.True(t, balance.Cash.Equal(decimal.NewFromInt(600)))
			})
		})

		t.Run("unknown bucket rejected", func(t *testing.T) {
			withStorage(t, func(storage repository.Storage) {
				investor := createInvestor(t, storage)

				_, err := storage.Balances().AddToBucket(t.Context(), investor.ID, "bonds; DROP TABLE balances", decimal.NewFromInt(1))
				require.Error(t, err)
			})
		})
	})

	t.Run("deposits", func(t *testing.T) {
		t.Run("create assigns id and number", func(t *testing.T) {
			withStorage(t, func(storage repository.Storage) {
				investor := createInvestor(t, storage)

				first, err := storage.Deposits().CreateDeposit(t.Context(), models.Deposit{
					InvestorID:         investor.ID,
					GrossAmount:        decimal.NewFromInt(5000),
					Charges:            decimal.Zero,
					Amount:             decimal.NewFromInt(5000),
					PaymentMethod:      models.PaymentMethodCash,
					ConfirmationStatus: models.DepositAwaitingPayment,
				})
				require.NoError(t, err)
				assert.NotEqual(t, uuid.Nil, first.ID)
				assert.Regexp(t, `^DEP-\d{6}$`, first.DepositNumber)

				second, err := storage.Deposits().CreateDeposit(t.Context(), models.Deposit{
					InvestorID:         investor.ID,
					GrossAmount:        decimal.NewFromInt(6000),
					Charges:            decimal.Zero,
					Amount:             decimal.NewFromInt(6000),
					PaymentMethod:      models.PaymentMethodCash,
					ConfirmationStatus: models.DepositAwaitingPayment,
				})
				require.NoError(t, err)
				assert.Greater(t, second.DepositNumber, first.DepositNumber, "numbers should be monotonic")
			})
		})

		t.Run("update persists mutable fields", func(t *testing.T) {
			withStorage(t, func(storage repository.Storage) {
				investor := createInvestor(t, storage)

				d, err := storage.Deposits().CreateDeposit(t.Context(), models.Deposit{
					InvestorID:         investor.ID,
					GrossAmount:        decimal.NewFromInt(5000),
					Charges:            decimal.Zero,
					Amount:             decimal.NewFromInt(5000),
					PaymentMethod:      models.PaymentMethodMobileMoney,
					ConfirmationStatus: models.DepositAwaitingPayment,
				})
				require.NoError(t, err)

				now := time.Now()
				d.ConfirmationStatus = models.DepositAwaitingAdmin
				d.InvestorReceiptURL = "https://momo.example/rcpt/1"
				d.DepositedAt = &now

				updated, err := storage.Deposits().UpdateDeposit(t.Context(), d)
				require.NoError(t, err)
				assert.Equal(t, models.DepositAwaitingAdmin, updated.ConfirmationStatus)
				assert.Equal(t, "https://momo.example/rcpt/1", updated.InvestorReceiptURL)
				require.NotNil(t, updated.DepositedAt)
			})
		})

		t.Run("not found", func(t *testing.T) {
			withStorage(t, func(storage repository.Storage) {
				_, err := storage.Deposits().GetDeposit(t.Context(), uuid.New(), false)
				require.ErrorIs(t, err, apperrors.ErrDepositNotFound)
			})
		})
	})

	t.Run("withdrawals", func(t *testing.T) {
		t.Run("momo details are immutable on update", func(t *testing.T) {
			withStorage(t, func(storage repository.Storage) {
				investor := createInvestor(t, storage)

				w, err := storage.Withdrawals().CreateWithdrawal(t.Context(), models.WithdrawalRequest{
					InvestorID:   investor.ID,
					Type:         models.WithdrawalTypeCash,
					Amount:       decimal.NewFromInt(1000),
					MomoNumber:   "+237650000001",
					MomoName:     "Test Investor",
					MomoProvider: "mtn",
					Status:       models.WithdrawalPending,
				})
				require.NoError(t, err)
				assert.Regexp(t, `^WDR-\d{6}$`, w.RequestNumber)

				w.MomoNumber = "+237650009999"
				w.Status = models.WithdrawalApproved

				updated, err := storage.Withdrawals().UpdateWithdrawal(t.Context(), w)
				require.NoError(t, err)
				assert.Equal(t, models.WithdrawalApproved, updated.Status)
				assert.Equal(t, "+237650000001", updated.MomoNumber, "destination must not change after creation")
			})
		})

		t.Run("not found", func(t *testing.T) {
			withStorage(t, func(storage repository.Storage) {
				_, err := storage.Withdrawals().GetWithdrawal(t.Context(), uuid.New(), false)
				require.ErrorIs(t, err, apperrors.ErrWithdrawalNotFound)
			})
		})
	})

	t.Run("in tx", func(t *testing.T) {
		t.Run("rolls back on error", func(t *testing.T) {
			withStorage(t, func(storage repository.Storage) {
				boom := errors.New("boom")

				err := storage.InTx(t.Context(), func(txStorage repository.Storage) error {
					_, err := txStorage.Investors().CreateInvestor(t.Context(), "ghost", "hash", models.RoleInvestor)
					require.NoError(t, err)
					return boom
				})
				require.ErrorIs(t, err, boom)

				_, err = storage.Investors().GetInvestorByUsername(t.Context(), "ghost")
				require.ErrorIs(t, err, apperrors.ErrInvestorNotFound)
			})
		})

		t.Run("commits on success", func(t *testing.T) {
			withStorage(t, func(storage repository.Storage) {
				err := storage.InTx(t.Context(), func(txStorage repository.Storage) error {
					_, err := txStorage.Investors().CreateInvestor(t.Context(), "kept", "hash", models.RoleInvestor)
					return err
				})
				require.NoError(t, err)

				investor, err := storage.Investors().GetInvestorByUsername(t.Context(), "kept")
				require.NoError(t, err)
				assert.Equal(t, "kept", investor.Username)
			})
		})
	})
}
