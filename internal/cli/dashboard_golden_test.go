package cli

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// The dashboard summary carries only counts and a status string, no ids
// or timestamps, so its JSON output is stable across runs.
func TestDashboardJSON_Golden(t *testing.T) {
	env := newCLIEnv(t)
	env.login(t)

	resp := env.runJSON(t, "category", "add", "--name", "Dairy")
	categoryID := dataField(t, resp, "id")

	env.mustRun(t, "product", "add",
		"--name", "Milk", "--description", "Whole milk, 1L",
		"--sku", "MLK-001", "--quantity", "1",
		"--weight", "1kg", "--dimensions", "10x10x25cm",
		"--category", categoryID)

	out := env.mustRun(t, "dashboard", "--format", "json")

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "dashboard", []byte(out))
}
