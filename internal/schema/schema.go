// Package schema validates raw dataset files against embedded CUE
// shapes. It is tooling for the validate command and CI - the store
// itself stays as lenient as the reference loader.
package schema

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"

	"github.com/roach88/grounddb/internal/domain"
	"github.com/roach88/grounddb/internal/store"
)

//go:embed datasets.cue
var datasetsCUE string

// DatasetError reports one dataset file that failed validation.
type DatasetError struct {
	Domain domain.Domain
	Path   string
	Err    error
}

func (e *DatasetError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("dataset %s (%s): %v", e.Domain, e.Path, e.Err)
	}
	return fmt.Sprintf("dataset %s: %v", e.Domain, e.Err)
}

func (e *DatasetError) Unwrap() error {
	return e.Err
}

// definitionFor maps a domain to its CUE definition name.
func definitionFor(d domain.Domain) string {
	switch d {
	case domain.Taxi:
		return "#TaxiDataset"
	case domain.Police, domain.Hospital:
		return "#FacilityDataset"
	default:
		return "#RecordDataset"
	}
}

// ValidateDomain checks one domain's raw dataset bytes against its
// CUE shape.
func ValidateDomain(d domain.Domain, data []byte) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(datasetsCUE)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile dataset schema: %w", err)
	}
	return validateAgainst(ctx, schema, d, "", data)
}

// ValidateDir checks every domain's dataset file under dir, collecting
// one error per failing domain rather than stopping at the first.
// A nil return means all seven files validated.
func ValidateDir(dir string) []error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(datasetsCUE)
	if err := schema.Err(); err != nil {
		return []error{fmt.Errorf("compile dataset schema: %w", err)}
	}

	var errs []error
	for _, d := range domain.All() {
		path := filepath.Join(dir, store.DataFile(d))
		data, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, &DatasetError{Domain: d, Path: path, Err: err})
			continue
		}
		if err := validateAgainst(ctx, schema, d, path, data); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func validateAgainst(ctx *cue.Context, schema cue.Value, d domain.Domain, path string, data []byte) error {
	def := schema.LookupPath(cue.ParsePath(definitionFor(d)))
	if !def.Exists() {
		return fmt.Errorf("dataset schema: missing definition %s", definitionFor(d))
	}

	expr, err := cuejson.Extract(store.DataFile(d), data)
	if err != nil {
		return &DatasetError{Domain: d, Path: path, Err: err}
	}

	value := ctx.BuildExpr(expr)
	if err := value.Err(); err != nil {
		return &DatasetError{Domain: d, Path: path, Err: err}
	}

	unified := def.Unify(value)
	if err := unified.Validate(cue.Final(), cue.Concrete(true)); err != nil {
		return &DatasetError{Domain: d, Path: path, Err: err}
	}
	return nil
}
