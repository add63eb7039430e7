package services

import (
	"testing"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/testutil"
)

func TestCreateAccount(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		accountType := testutil.CreateTestAccountType(t, db)

		account, err := svc.CreateAccount("Chequing", accountType.ID, dec("1500.00"), "Big Bank", "1234", "CAD")
		testutil.AssertNoError(t, err)

		if account.ID == "" {
			t.Fatal("expected non-empty account ID")
		}
		testutil.AssertDecimalEqual(t, "1500.00", account.Balance)
		if !account.IsActive {
			t.Error("expected account to be active")
		}
	})

	t.Run("default_currency", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		accountType := testutil.CreateTestAccountType(t, db)

		account, err := svc.CreateAccount("Savings", accountType.ID, dec("0"), "", "", "")
		testutil.AssertNoError(t, err)
		if account.Currency != "CAD" {
			t.Errorf("expected default currency CAD, got %s", account.Currency)
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		accountType := testutil.CreateTestAccountType(t, db)

		_, err := svc.CreateAccount("", accountType.ID, dec("0"), "", "", "CAD")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("account_type_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)

		_, err := svc.CreateAccount("Chequing", "00000000-0000-0000-0000-000000000000", dec("0"), "", "", "CAD")
		testutil.AssertAppError(t, err, "ACCOUNT_TYPE_NOT_FOUND")
	})
}

func TestGetAllAccounts(t *testing.T) {
	t.Run("active_only_by_default", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		accountType := testutil.CreateTestAccountType(t, db)
		testutil.CreateTestAccount(t, db, accountType.ID)
		inactive := testutil.CreateTestAccount(t, db, accountType.ID)
		if err := db.Model(inactive).Update("is_active", false).Error; err != nil {
			t.Fatalf("failed to deactivate account: %v", err)
		}

		page := pagination.PageRequest{Page: 1, PageSize: 20}

		result, err := svc.GetAllAccounts(page, false)
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 active account, got %d", result.TotalItems)
		}

		result, err = svc.GetAllAccounts(page, true)
		testutil.AssertNoError(t, err)
		if result.TotalItems != 2 {
			t.Errorf("expected 2 accounts including inactive, got %d", result.TotalItems)
		}
	})
}

func TestUpdateAccount(t *testing.T) {
	t.Run("balance_change_appends_history", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		accountType := testutil.CreateTestAccountType(t, db)
		account := testutil.CreateTestAccountWithBalance(t, db, accountType.ID, dec("100.00"))

		balance := dec("250.00")
		_, err := svc.UpdateAccount(account.ID, AccountPatch{Balance: &balance, BalanceNotes: "monthly reconciliation"})
		testutil.AssertNoError(t, err)

		var history []models.BalanceHistory
		if err := db.Where("account_id = ?", account.ID).Find(&history).Error; err != nil {
			t.Fatalf("failed to load balance history: %v", err)
		}
		if len(history) != 1 {
			t.Fatalf("expected 1 balance history row, got %d", len(history))
		}
		testutil.AssertDecimalEqual(t, "100.00", history[0].PreviousBalance)
		testutil.AssertDecimalEqual(t, "250.00", history[0].NewBalance)
		testutil.AssertDecimalEqual(t, "150.00", history[0].ChangeAmount)
		if history[0].ChangeReason != "manual_update" {
			t.Errorf("expected change reason manual_update, got %s", history[0].ChangeReason)
		}
		if history[0].Notes != "monthly reconciliation" {
			t.Errorf("expected notes to carry through, got %q", history[0].Notes)
		}

		reloaded, err := svc.GetAccountByID(account.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, "250.00", reloaded.Balance)
	})

	t.Run("unchanged_balance_skips_history", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		accountType := testutil.CreateTestAccountType(t, db)
		account := testutil.CreateTestAccountWithBalance(t, db, accountType.ID, dec("100.00"))

		balance := dec("100.00")
		_, err := svc.UpdateAccount(account.ID, AccountPatch{Balance: &balance})
		testutil.AssertNoError(t, err)

		var count int64
		if err := db.Model(&models.BalanceHistory{}).Where("account_id = ?", account.ID).Count(&count).Error; err != nil {
			t.Fatalf("failed to count balance history: %v", err)
		}
		if count != 0 {
			t.Errorf("expected no balance history rows, got %d", count)
		}
	})

	t.Run("account_type_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		accountType := testutil.CreateTestAccountType(t, db)
		account := testutil.CreateTestAccount(t, db, accountType.ID)

		missing := "00000000-0000-0000-0000-000000000000"
		_, err := svc.UpdateAccount(account.ID, AccountPatch{AccountTypeID: &missing})
		testutil.AssertAppError(t, err, "ACCOUNT_TYPE_NOT_FOUND")
	})
}

func TestDeactivateAccount(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		accountType := testutil.CreateTestAccountType(t, db)
		account := testutil.CreateTestAccount(t, db, accountType.ID)

		testutil.AssertNoError(t, svc.DeactivateAccount(account.ID))

		reloaded, err := svc.GetAccountByID(account.ID)
		testutil.AssertNoError(t, err)
		if reloaded.IsActive {
			t.Error("expected account to be inactive")
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)

		err := svc.DeactivateAccount("00000000-0000-0000-0000-000000000000")
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})
}

func TestGetBalanceHistory(t *testing.T) {
	t.Run("newest_first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		accountType := testutil.CreateTestAccountType(t, db)
		account := testutil.CreateTestAccountWithBalance(t, db, accountType.ID, dec("100"))

		for _, target := range []string{"200", "300"} {
			balance := dec(target)
			if _, err := svc.UpdateAccount(account.ID, AccountPatch{Balance: &balance}); err != nil {
				t.Fatalf("failed to update balance: %v", err)
			}
		}

		result, err := svc.GetBalanceHistory(account.ID, pagination.PageRequest{Page: 1, PageSize: 20})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 2 {
			t.Fatalf("expected 2 history rows, got %d", result.TotalItems)
		}
	})

	t.Run("account_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)

		_, err := svc.GetBalanceHistory("00000000-0000-0000-0000-000000000000", pagination.PageRequest{Page: 1, PageSize: 20})
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})
}
