package inventory

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/stockpile/internal/audit"
	"github.com/roach88/stockpile/internal/model"
	"github.com/roach88/stockpile/internal/repo"
	"github.com/roach88/stockpile/internal/session"
)

// Service composes the collection repositories, the integrity checker,
// the audit log, and the session into the operation surface the screens
// call. One operation = read collection, transform in memory, validate,
// write back, record one audit entry.
type Service struct {
	users      *repo.Collection[model.User]
	categories *repo.Collection[model.Category]
	products   *repo.Collection[model.Product]
	audit      *audit.Log
	session    *session.Manager
	logger     *zap.Logger
	lowStock   int64
}

// Config carries Service tuning. Zero values fall back to defaults.
type Config struct {
	// LowStockThreshold is the quantity below which a product counts as
	// low inventory. Defaults to model.DefaultLowStockThreshold.
	LowStockThreshold int64

	// Logger reports degraded conditions. Defaults to a no-op logger.
	Logger *zap.Logger
}

// NewService wires a Service over shared collections.
func NewService(db *repo.DB, sess *session.Manager, log *audit.Log, cfg Config) *Service {
	if cfg.LowStockThreshold <= 0 {
		cfg.LowStockThreshold = model.DefaultLowStockThreshold
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Service{
		users:      repo.NewCollection[model.User](db, model.KeyUsers),
		categories: repo.NewCollection[model.Category](db, model.KeyCategories),
		products:   repo.NewCollection[model.Product](db, model.KeyProducts),
		audit:      log,
		session:    sess,
		logger:     cfg.Logger,
		lowStock:   cfg.LowStockThreshold,
	}
}

// actor resolves the acting user once per operation. Mutations on
// categories and products require a logged-in user so every audit entry
// carries real attribution.
func (s *Service) actor() (model.User, error) {
	u, ok := s.session.Current()
	if !ok {
		return model.User{}, repo.NewValidationError("no user logged in")
	}
	return u, nil
}

// normalizeEmail folds an email for uniqueness comparison: NFC
// normalization plus lowercase. The stored value keeps the user's
// original spelling.
func normalizeEmail(email string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(email)))
}

// Register creates a user account. Email uniqueness is enforced here,
// at insert time, not deferred to login lookup.
func (s *Service) Register(ctx context.Context, name, email, phone, password string) (model.User, error) {
	if name == "" || email == "" || password == "" {
		return model.User{}, repo.NewValidationError("name, email, and password are required")
	}

	users, _, err := s.users.List(ctx)
	if err != nil {
		return model.User{}, err
	}
	wanted := normalizeEmail(email)
	for _, u := range users {
		if normalizeEmail(u.Email) == wanted {
			return model.User{}, &repo.Error{
				Code:    repo.ErrCodeDuplicateEmail,
				Message: fmt.Sprintf("email %q is already registered", email),
				Key:     model.KeyUsers,
			}
		}
	}

	stored, err := s.users.Insert(ctx, model.User{
		Name:     name,
		Email:    email,
		Phone:    phone,
		Password: password,
	})
	if err != nil {
		return model.User{}, err
	}

	s.audit.Record(ctx, stored, "Registered user: "+stored.Name)
	return stored, nil
}

// Login looks up the user by email and password and opens a session.
// Passwords are compared in plain text against the stored value; that
// weakness is inherited from the persisted format and not redesigned.
func (s *Service) Login(ctx context.Context, email, password string) (model.User, error) {
	users, _, err := s.users.List(ctx)
	if err != nil {
		return model.User{}, err
	}

	wanted := normalizeEmail(email)
	for _, u := range users {
		if normalizeEmail(u.Email) == wanted && u.Password == password {
			if err := s.session.SetUser(ctx, u); err != nil {
				return model.User{}, err
			}
			s.audit.Record(ctx, u, "Logged in: "+u.Name)
			return u, nil
		}
	}

	return model.User{}, &repo.Error{
		Code:    repo.ErrCodeNotFound,
		Message: "invalid credentials",
		Key:     model.KeyUsers,
	}
}

// Logout clears the session. Recording happens before the clear so the
// entry still carries the departing user's attribution.
func (s *Service) Logout(ctx context.Context) error {
	if u, ok := s.session.Current(); ok {
		s.audit.Record(ctx, u, "Logged out: "+u.Name)
	}
	return s.session.Clear(ctx)
}

// ListUsers returns all registered users.
func (s *Service) ListUsers(ctx context.Context) ([]model.User, []repo.Warning, error) {
	return s.users.List(ctx)
}

// AddCategory creates a category and records the action.
func (s *Service) AddCategory(ctx context.Context, c model.Category) (model.Category, error) {
	actor, err := s.actor()
	if err != nil {
		return model.Category{}, err
	}
	if c.Name == "" {
		return model.Category{}, repo.NewValidationError("category name is required")
	}

	stored, err := s.categories.Insert(ctx, c)
	if err != nil {
		return model.Category{}, err
	}

	s.audit.Record(ctx, actor, "Added Category: "+stored.Name)
	return stored, nil
}

// UpdateCategory replaces the category with the given id.
func (s *Service) UpdateCategory(ctx context.Context, id string, c model.Category) (model.Category, error) {
	actor, err := s.actor()
	if err != nil {
		return model.Category{}, err
	}
	if c.Name == "" {
		return model.Category{}, repo.NewValidationError("category name is required")
	}

	stored, err := s.categories.Update(ctx, id, c)
	if err != nil {
		return model.Category{}, err
	}

	s.audit.Record(ctx, actor, "Updated Category: "+stored.Name)
	return stored, nil
}

// DeleteCategory removes a category. Products referencing it are NOT
// touched: the dangling reference is reported by the integrity checker
// on their next read or write instead of cascading the delete.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	actor, err := s.actor()
	if err != nil {
		return err
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, "Deleted Category ID: "+id)
	return nil
}

// ListCategories returns all categories.
func (s *Service) ListCategories(ctx context.Context) ([]model.Category, []repo.Warning, error) {
	return s.categories.List(ctx)
}

// validateProduct checks the required product fields, matching the
// product form's mandatory inputs.
func validateProduct(p model.Product) error {
	var missing []string
	for field, value := range map[string]string{
		"name":        p.Name,
		"description": p.Description,
		"sku":         p.SKU,
		"weight":      p.Weight,
		"dimensions":  p.Dimensions,
		"category":    p.Category,
	} {
		if value == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return repo.NewValidationError("missing required fields: " + strings.Join(missing, ", "))
	}
	if p.Quantity < 0 {
		return repo.NewValidationError("quantity must not be negative")
	}
	return nil
}

// AddProduct creates a product. A dangling category reference is
// surfaced as a warning alongside the successful insert, never blocking
// the write.
func (s *Service) AddProduct(ctx context.Context, p model.Product) (model.Product, []repo.Warning, error) {
	actor, err := s.actor()
	if err != nil {
		return model.Product{}, nil, err
	}
	if err := validateProduct(p); err != nil {
		return model.Product{}, nil, err
	}

	categories, warnings, err := s.categories.List(ctx)
	if err != nil {
		return model.Product{}, nil, err
	}
	warnings = append(warnings, CheckProduct(p, categories)...)

	stored, err := s.products.Insert(ctx, p)
	if err != nil {
		return model.Product{}, nil, err
	}

	s.audit.Record(ctx, actor, "Added Product: "+stored.Name)
	s.warn(warnings)
	return stored, warnings, nil
}

// UpdateProduct replaces the product with the given id, with the same
// integrity checking as AddProduct.
func (s *Service) UpdateProduct(ctx context.Context, id string, p model.Product) (model.Product, []repo.Warning, error) {
	actor, err := s.actor()
	if err != nil {
		return model.Product{}, nil, err
	}
	if err := validateProduct(p); err != nil {
		return model.Product{}, nil, err
	}

	categories, warnings, err := s.categories.List(ctx)
	if err != nil {
		return model.Product{}, nil, err
	}
	warnings = append(warnings, CheckProduct(p.WithEntityID(id), categories)...)

	stored, err := s.products.Update(ctx, id, p)
	if err != nil {
		return model.Product{}, nil, err
	}

	s.audit.Record(ctx, actor, "Updated Product: "+stored.Name)
	s.warn(warnings)
	return stored, warnings, nil
}

// DeleteProduct removes a product.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	actor, err := s.actor()
	if err != nil {
		return err
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, "Deleted Product with ID: "+id)
	return nil
}

// ListProducts returns all products plus integrity warnings for any
// product whose category reference has gone dangling.
func (s *Service) ListProducts(ctx context.Context) ([]model.Product, []repo.Warning, error) {
	products, warnings, err := s.products.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	categories, catWarnings, err := s.categories.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	warnings = append(warnings, catWarnings...)
	warnings = append(warnings, CheckProducts(products, categories)...)

	s.warn(warnings)
	return products, warnings, nil
}

// LowStock returns the products whose quantity is below the threshold.
func (s *Service) LowStock(ctx context.Context) ([]model.Product, error) {
	products, _, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	low := []model.Product{}
	for _, p := range products {
		if p.LowStock(s.lowStock) {
			low = append(low, p)
		}
	}
	return low, nil
}

// History returns the audit log for the history viewer.
func (s *Service) History(ctx context.Context) ([]model.Entry, []repo.Warning, error) {
	return s.audit.List(ctx)
}

// warn logs warnings at warn level; they never affect control flow.
func (s *Service) warn(warnings []repo.Warning) {
	for _, w := range warnings {
		s.logger.Warn("data layer warning",
			zap.String("code", string(w.Code)),
			zap.String("key", w.Key),
			zap.String("id", w.ID),
			zap.String("message", w.Message),
		)
	}
}
