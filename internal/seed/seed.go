// Package seed imports inventory fixtures declared in CUE.
//
// Fixtures are plain data files validated against an embedded schema
// before anything touches the store; schema violations are reported
// with CUE file positions. Imports run through the inventory service,
// so seeded entities get real ids, audit entries, and integrity checks
// like any other mutation.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/roach88/stockpile/internal/inventory"
	"github.com/roach88/stockpile/internal/model"
	"github.com/roach88/stockpile/internal/repo"
)

//go:embed schema.cue
var schemaCUE string

// Error code constants for fixture loading.
const (
	ErrCodeGeneric    = "S001" // Generic/unknown error
	ErrCodeScanError  = "S002" // Directory scan error
	ErrCodeNoFiles    = "S003" // No CUE files found
	ErrCodeLoadFailed = "S004" // CUE load failed
	ErrCodeNotFound   = "S005" // Path not found
	ErrCodeInvalid    = "S006" // Fixture violates the schema
)

// LoadError represents an error that occurred during fixture loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Fixture is the decoded content of a seed directory.
type Fixture struct {
	Categories []CategoryFixture `json:"categories"`
	Products   []ProductFixture  `json:"products"`
}

// CategoryFixture declares a category to create.
type CategoryFixture struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Image            string   `json:"image"`
	AdditionalImages []string `json:"additionalImages"`
}

// ProductFixture declares a product to create. Category is the NAME of
// a category (from this fixture or already stored), resolved to an id
// during import.
type ProductFixture struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	SKU         string   `json:"sku"`
	Quantity    int64    `json:"quantity"`
	Weight      string   `json:"weight"`
	Dimensions  string   `json:"dimensions"`
	Images      []string `json:"images"`
	Category    string   `json:"category"`
}

// Load reads all CUE files in dir, unifies them with the embedded
// schema, and decodes the result. Schema violations are returned with
// their CUE positions.
func Load(dir string) (*Fixture, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("fixture directory not found: %s", dir)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing fixture directory: %v", err)}
	}
	if !info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	cueFiles, err := findCUEFiles(dir)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	if len(cueFiles) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("compiling embedded schema: %v", err)}
	}

	cfg := &load.Config{Dir: dir}
	instances := load.Instances([]string{"."}, cfg)
	if len(instances) == 0 {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}

	inst := instances[0]
	if inst.Err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("building CUE value: %v", err)}
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, &LoadError{
			Code:    ErrCodeInvalid,
			Message: fmt.Sprintf("fixture violates schema: %v", err),
			Pos:     unified.Pos(),
		}
	}

	var fixture Fixture
	if err := unified.Decode(&fixture); err != nil {
		return nil, &LoadError{Code: ErrCodeInvalid, Message: fmt.Sprintf("decoding fixture: %v", err)}
	}

	return &fixture, nil
}

// Stats summarizes what an import created.
type Stats struct {
	Categories int `json:"categories"`
	Products   int `json:"products"`
}

// Import creates the fixture's entities through the service. Categories
// go first so products can resolve their category names against both
// the fixture and anything already stored. A product naming an unknown
// category fails the import at that point; entities created before the
// failure remain (each insert is its own committed operation).
func Import(ctx context.Context, svc *inventory.Service, fixture *Fixture) (Stats, []repo.Warning, error) {
	var stats Stats
	var warnings []repo.Warning

	existing, listWarnings, err := svc.ListCategories(ctx)
	if err != nil {
		return stats, nil, err
	}
	warnings = append(warnings, listWarnings...)

	idsByName := make(map[string]string, len(existing))
	for _, c := range existing {
		idsByName[c.Name] = c.ID
	}

	for _, cf := range fixture.Categories {
		stored, err := svc.AddCategory(ctx, model.Category{
			Name:             cf.Name,
			Description:      cf.Description,
			Image:            cf.Image,
			AdditionalImages: cf.AdditionalImages,
		})
		if err != nil {
			return stats, warnings, fmt.Errorf("seed category %q: %w", cf.Name, err)
		}
		idsByName[stored.Name] = stored.ID
		stats.Categories++
	}

	for _, pf := range fixture.Products {
		categoryID, ok := idsByName[pf.Category]
		if !ok {
			return stats, warnings, &LoadError{
				Code:    ErrCodeInvalid,
				Message: fmt.Sprintf("product %q references unknown category %q", pf.Name, pf.Category),
			}
		}

		_, productWarnings, err := svc.AddProduct(ctx, model.Product{
			Name:        pf.Name,
			Description: pf.Description,
			SKU:         pf.SKU,
			Quantity:    pf.Quantity,
			Weight:      pf.Weight,
			Dimensions:  pf.Dimensions,
			Images:      pf.Images,
			Category:    categoryID,
		})
		if err != nil {
			return stats, warnings, fmt.Errorf("seed product %q: %w", pf.Name, err)
		}
		warnings = append(warnings, productWarnings...)
		stats.Products++
	}

	return stats, warnings, nil
}

// findCUEFiles walks the directory and returns all .cue file paths.
func findCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
