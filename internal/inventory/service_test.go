package inventory_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/stockpile/internal/audit"
	"github.com/roach88/stockpile/internal/inventory"
	"github.com/roach88/stockpile/internal/model"
	"github.com/roach88/stockpile/internal/repo"
	"github.com/roach88/stockpile/internal/session"
	"github.com/roach88/stockpile/internal/store"
	"github.com/roach88/stockpile/internal/testutil"
)

func newTestService(t *testing.T) *inventory.Service {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	db := repo.NewDB(st)
	sess := session.NewManager(st)
	require.NoError(t, sess.Init(context.Background()))

	clock := testutil.NewDeterministicClock()
	ids := testutil.NewSequentialIDs("entry")
	log := audit.New(db, audit.WithClock(clock.Now), audit.WithIDs(ids.Next))

	return inventory.NewService(db, sess, log, inventory.Config{})
}

// loginTestUser registers and logs in a user so mutations have an actor.
func loginTestUser(t *testing.T, s *inventory.Service) model.User {
	t.Helper()
	ctx := context.Background()
	u, err := s.Register(ctx, "Ada", "ada@example.com", "555-0100", "hunter2")
	require.NoError(t, err)
	logged, err := s.Login(ctx, "ada@example.com", "hunter2")
	require.NoError(t, err)
	require.Equal(t, u.ID, logged.ID)
	return logged
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "Ada", "ada@example.com", "", "pw")
	require.NoError(t, err)

	// Same address with different case and spacing is still a duplicate.
	_, err = s.Register(ctx, "Imposter", "  ADA@Example.COM ", "", "pw2")
	require.Error(t, err)
	assert.True(t, repo.IsValidation(err))

	users, _, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestRegister_RequiresCoreFields(t *testing.T) {
	s := newTestService(t)
	_, err := s.Register(context.Background(), "", "ada@example.com", "", "pw")
	assert.True(t, repo.IsValidation(err))

	_, err = s.Register(context.Background(), "Ada", "", "", "pw")
	assert.True(t, repo.IsValidation(err))
}

func TestLogin_InvalidCredentials(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	_, err := s.Register(ctx, "Ada", "ada@example.com", "", "hunter2")
	require.NoError(t, err)

	_, err = s.Login(ctx, "ada@example.com", "wrong")
	assert.True(t, repo.IsNotFound(err))

	_, err = s.Login(ctx, "nobody@example.com", "hunter2")
	assert.True(t, repo.IsNotFound(err))
}

func TestMutationsRequireLogin(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, err := s.AddCategory(ctx, model.Category{Name: "Dairy"})
	assert.True(t, repo.IsValidation(err))

	_, _, err = s.AddProduct(ctx, validProduct("c1"))
	assert.True(t, repo.IsValidation(err))

	err = s.DeleteCategory(ctx, "c1")
	assert.True(t, repo.IsValidation(err))
}

func TestCategoryCRUD_RecordsOneAuditEntryEach(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	actor := loginTestUser(t, s)

	dairy, err := s.AddCategory(ctx, model.Category{Name: "Dairy", Description: "Milk and cheese"})
	require.NoError(t, err)

	_, err = s.UpdateCategory(ctx, dairy.ID, model.Category{Name: "Dairy & Eggs"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteCategory(ctx, dairy.ID))

	entries, _, err := s.History(ctx)
	require.NoError(t, err)

	// Register + login + three category mutations
	require.Len(t, entries, 5)
	want := []string{
		"Registered user: Ada",
		"Logged in: Ada",
		"Added Category: Dairy",
		"Updated Category: Dairy & Eggs",
		"Deleted Category ID: " + dairy.ID,
	}
	for i, action := range want {
		assert.Equal(t, action, entries[i].Action)
		assert.NotEmpty(t, entries[i].Action)
		assert.Equal(t, actor.ID, entries[i].UserID)
		assert.Equal(t, actor.Name, entries[i].UserName)
	}
}

func TestProductCRUD_RecordsAttributedAuditEntries(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	actor := loginTestUser(t, s)

	dairy, err := s.AddCategory(ctx, model.Category{Name: "Dairy"})
	require.NoError(t, err)

	milk, warnings, err := s.AddProduct(ctx, validProduct(dairy.ID))
	require.NoError(t, err)
	assert.Empty(t, warnings)

	updated := validProduct(dairy.ID)
	updated.Quantity = 20
	_, _, err = s.UpdateProduct(ctx, milk.ID, updated)
	require.NoError(t, err)

	require.NoError(t, s.DeleteProduct(ctx, milk.ID))

	entries, _, err := s.History(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 6)

	// Product entries carry the same attribution as category entries -
	// no call path drops the acting user.
	for _, e := range entries[3:] {
		assert.Equal(t, actor.ID, e.UserID)
		assert.Equal(t, actor.Name, e.UserName)
	}
	assert.Equal(t, "Added Product: Milk", entries[3].Action)
	assert.Equal(t, "Updated Product: Milk", entries[4].Action)
	assert.Equal(t, "Deleted Product with ID: "+milk.ID, entries[5].Action)
}

func TestAddProduct_ValidatesRequiredFields(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	loginTestUser(t, s)

	p := validProduct("c1")
	p.SKU = ""
	p.Dimensions = ""
	_, _, err := s.AddProduct(ctx, p)
	require.Error(t, err)
	assert.True(t, repo.IsValidation(err))
	assert.Contains(t, err.Error(), "sku")
	assert.Contains(t, err.Error(), "dimensions")

	p = validProduct("c1")
	p.Quantity = -1
	_, _, err = s.AddProduct(ctx, p)
	assert.True(t, repo.IsValidation(err))
}

func TestDeleteCategory_OrphansProductWithWarningNotCascade(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	loginTestUser(t, s)

	// insert Category {name:"Dairy"} -> C1
	dairy, err := s.AddCategory(ctx, model.Category{Name: "Dairy"})
	require.NoError(t, err)

	// insert Product {name:"Milk", category:C1} -> P1
	milk, warnings, err := s.AddProduct(ctx, validProduct(dairy.ID))
	require.NoError(t, err)
	assert.Empty(t, warnings)

	// delete Category C1
	require.NoError(t, s.DeleteCategory(ctx, dairy.ID))

	// P1 now dangles: the next read flags it but still returns it
	products, warnings, err := s.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, milk, products[0], "no cascading delete, product unchanged")
	require.Len(t, warnings, 1)
	assert.Equal(t, repo.WarnCodeDanglingReference, warnings[0].Code)
	assert.Equal(t, milk.ID, warnings[0].ID)

	// ...and the next write is still allowed, with the same warning
	milk.Quantity = 3
	_, warnings, err = s.UpdateProduct(ctx, milk.ID, milk)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, repo.WarnCodeDanglingReference, warnings[0].Code)
}

func TestLowStockScan_AfterQuantityUpdate(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	loginTestUser(t, s)

	dairy, err := s.AddCategory(ctx, model.Category{Name: "Dairy"})
	require.NoError(t, err)

	p := validProduct(dairy.ID)
	p.Quantity = 10
	milk, _, err := s.AddProduct(ctx, p)
	require.NoError(t, err)

	low, err := s.LowStock(ctx)
	require.NoError(t, err)
	assert.Empty(t, low)

	// update quantity to 1: below the threshold of 2
	p.Quantity = 1
	_, _, err = s.UpdateProduct(ctx, milk.ID, p)
	require.NoError(t, err)

	low, err = s.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, milk.ID, low[0].ID)
}

func TestDashboard_CountsAndStatus(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	loginTestUser(t, s)

	summary, err := s.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, inventory.Summary{
		Users:           1,
		InventoryStatus: inventory.StatusInStock,
	}, summary)

	dairy, err := s.AddCategory(ctx, model.Category{Name: "Dairy"})
	require.NoError(t, err)

	p := validProduct(dairy.ID)
	p.Quantity = 1
	_, _, err = s.AddProduct(ctx, p)
	require.NoError(t, err)

	summary, err = s.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, inventory.Summary{
		Categories:      1,
		Products:        1,
		Users:           1,
		LowStock:        1,
		InventoryStatus: inventory.StatusLowInventory,
	}, summary)
}

func TestLogout_ClearsSessionAndRecords(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	loginTestUser(t, s)

	require.NoError(t, s.Logout(ctx))

	// Mutations are rejected again after logout
	_, err := s.AddCategory(ctx, model.Category{Name: "Dairy"})
	assert.True(t, repo.IsValidation(err))

	entries, _, err := s.History(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "Logged out: Ada", entries[len(entries)-1].Action)
}

// validProduct builds a product passing field validation, referencing
// the given category id.
func validProduct(categoryID string) model.Product {
	return model.Product{
		Name:        "Milk",
		Description: "Whole milk, 1L",
		SKU:         "MLK-001",
		Quantity:    10,
		Weight:      "1kg",
		Dimensions:  "10x10x25cm",
		Images:      []string{"file:///img/milk.jpg"},
		Category:    categoryID,
	}
}
