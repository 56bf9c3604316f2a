package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cliEnv points every command of one test at the same database, so
// state (including the login session) carries across invocations the
// way it does across app launches.
type cliEnv struct {
	db     string
	config string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	return &cliEnv{
		db:     filepath.Join(dir, "test.db"),
		config: filepath.Join(dir, "absent.yaml"),
	}
}

func (e *cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(append(args, "--db", e.db, "--config", e.config))
	err := cmd.Execute()
	return out.String(), err
}

// mustRun fails the test on command error.
func (e *cliEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	require.NoError(t, err, "command %v failed: %s", args, out)
	return out
}

// runJSON executes a command with --format json and decodes the response.
func (e *cliEnv) runJSON(t *testing.T, args ...string) CLIResponse {
	t.Helper()
	out := e.mustRun(t, append(args, "--format", "json")...)
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	return resp
}

// login registers and logs in the default test user.
func (e *cliEnv) login(t *testing.T) {
	t.Helper()
	e.mustRun(t, "register", "--name", "Ada", "--email", "ada@example.com", "--password", "hunter2")
	e.mustRun(t, "login", "--email", "ada@example.com", "--password", "hunter2")
}

// dataField extracts a string field from a JSON response data object.
func dataField(t *testing.T, resp CLIResponse, field string) string {
	t.Helper()
	obj, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "data is not an object: %v", resp.Data)
	value, ok := obj[field].(string)
	require.True(t, ok, "field %q missing in %v", field, obj)
	return value
}

func TestRegisterLoginFlow(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun(t, "register", "--name", "Ada", "--email", "ada@example.com", "--password", "hunter2")
	assert.Contains(t, out, "Registered Ada")

	// Duplicate registration fails with an operation error
	out, err := env.run(t, "register", "--name", "Imposter", "--email", "ada@example.com", "--password", "x")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	out, err = env.run(t, "login", "--email", "ada@example.com", "--password", "wrong")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	out = env.mustRun(t, "login", "--email", "ada@example.com", "--password", "hunter2")
	assert.Contains(t, out, "Logged in as Ada")
}

func TestMutationsRejectedWithoutLogin(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run(t, "category", "add", "--name", "Dairy")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "no user logged in")
}

func TestCategoryProductLifecycle(t *testing.T) {
	env := newCLIEnv(t)
	env.login(t)

	resp := env.runJSON(t, "category", "add", "--name", "Dairy", "--description", "Milk and cheese")
	categoryID := dataField(t, resp, "id")

	resp = env.runJSON(t, "product", "add",
		"--name", "Milk", "--description", "Whole milk, 1L",
		"--sku", "MLK-001", "--quantity", "1",
		"--weight", "1kg", "--dimensions", "10x10x25cm",
		"--category", categoryID,
		"--image", "file:///img/milk.jpg")
	productID := dataField(t, resp, "id")

	out := env.mustRun(t, "product", "list")
	assert.Contains(t, out, "Milk")
	assert.Contains(t, out, "sku=MLK-001")

	// Deleting the category orphans the product: list now warns but
	// still returns it.
	env.mustRun(t, "category", "rm", categoryID)
	out = env.mustRun(t, "product", "list")
	assert.Contains(t, out, "DANGLING_REFERENCE")
	assert.Contains(t, out, "Milk")

	// Low-stock scan sees the quantity-1 product
	out = env.mustRun(t, "low-stock")
	assert.Contains(t, out, productID)

	env.mustRun(t, "product", "rm", productID)
	out = env.mustRun(t, "product", "list")
	assert.Contains(t, out, "No products")

	// Second delete is an operation failure
	_, err := env.run(t, "product", "rm", productID)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestHistoryShowsAttributedActions(t *testing.T) {
	env := newCLIEnv(t)
	env.login(t)
	env.mustRun(t, "category", "add", "--name", "Dairy")

	out := env.mustRun(t, "history")
	assert.Contains(t, out, "Registered user: Ada")
	assert.Contains(t, out, "Logged in: Ada")
	assert.Contains(t, out, "Added Category: Dairy")
	assert.Contains(t, out, "Ada")
}

func TestSeedCommand(t *testing.T) {
	env := newCLIEnv(t)
	env.login(t)

	fixtures := t.TempDir()
	fixture := `
categories: [{name: "Dairy"}]
products: [{
	name:        "Milk"
	description: "Whole milk, 1L"
	sku:         "MLK-001"
	quantity:    10
	weight:      "1kg"
	dimensions:  "10x10x25cm"
	category:    "Dairy"
}]
`
	require.NoError(t, os.WriteFile(filepath.Join(fixtures, "inventory.cue"), []byte(fixture), 0o644))

	out := env.mustRun(t, "seed", fixtures)
	assert.Contains(t, out, "Seeded 1 categories, 1 products")

	out = env.mustRun(t, "product", "list")
	assert.Contains(t, out, "Milk")
	assert.NotContains(t, out, "DANGLING_REFERENCE")
}

func TestSeedCommand_RejectsInvalidFixture(t *testing.T) {
	env := newCLIEnv(t)
	env.login(t)

	fixtures := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(fixtures, "bad.cue"),
		[]byte(`products: [{name: "Milk", quantity: -1}]`), 0o644))

	_, err := env.run(t, "seed", fixtures)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestLogoutEndsSession(t *testing.T) {
	env := newCLIEnv(t)
	env.login(t)
	env.mustRun(t, "logout")

	_, err := env.run(t, "category", "add", "--name", "Dairy")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}
