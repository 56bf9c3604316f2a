package model

// Collection document keys. Each collection is stored whole under one key.
const (
	KeyUsers         = "users"
	KeyCategories    = "categories"
	KeyProducts      = "products"
	KeyActionHistory = "actionHistory"
	KeyLoggedInUser  = "loggedInUser"
)

// DefaultLowStockThreshold is the quantity below which a product counts
// as low inventory on the dashboard.
const DefaultLowStockThreshold int64 = 2

// User is an account created by registration.
// Users are never updated or deleted in-app; login reads them.
//
// Passwords are stored and compared in plain text. This mirrors the
// existing persisted data and is out of scope to redesign here.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (u User) EntityID() string { return u.ID }

func (u User) WithEntityID(id string) User {
	u.ID = id
	return u
}

// Category groups products. Image fields hold opaque URI strings
// supplied by picker collaborators; they are never interpreted here.
type Category struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Image            string   `json:"image"`
	AdditionalImages []string `json:"additionalImages"`
}

func (c Category) EntityID() string { return c.ID }

func (c Category) WithEntityID(id string) Category {
	c.ID = id
	return c
}

// Product is a stocked item. Category holds the id of an existing
// Category; deleting that category does not cascade, so the reference
// can dangle (the integrity checker flags this as a warning).
//
// Quantity is the one canonical stock field, always numeric.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	SKU         string   `json:"sku"`
	Quantity    int64    `json:"quantity"`
	Weight      string   `json:"weight"`
	Dimensions  string   `json:"dimensions"`
	Images      []string `json:"images"`
	Category    string   `json:"category"`
}

func (p Product) EntityID() string { return p.ID }

func (p Product) WithEntityID(id string) Product {
	p.ID = id
	return p
}

// LowStock reports whether the product counts as low inventory
// against the given threshold.
func (p Product) LowStock(threshold int64) bool {
	return p.Quantity < threshold
}
