// Package inventory implements the operations the app screens call:
// registration and login, category and product CRUD, the dashboard
// summary, and the history view.
//
// Every mutation follows one control flow: resolve the acting user from
// the session, read the current collection, apply the change, validate
// referential integrity, write the collection back, and record exactly
// one audit entry. Integrity violations are warnings - a product whose
// category was deleted keeps working, it is just flagged.
package inventory
