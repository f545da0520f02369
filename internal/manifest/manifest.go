// Package manifest loads HCL run manifests. A manifest declares everything
// a run needs besides the compiled-in benchmarks themselves: the suite to
// collect, tag filters, parameter values, context providers, and the
// output destination.
//
// Example:
//
//	run {
//	  suite = "models"
//	  tags  = ["inference"]
//
//	  params {
//	    batch_size = 32
//	    model      = "resnet50"
//	  }
//
//	  context      = ["system", "git"]
//	  output       = "results.json.gz"
//	  context_mode = "inline"
//	}
package manifest

import (
	"context"
	"fmt"
	"math/big"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/aai-institute/mlbench/internal/benchmark"
	"github.com/aai-institute/mlbench/internal/ctxlog"
	"github.com/aai-institute/mlbench/internal/fsutil"
)

// Run is the decoded form of a manifest's run block.
type Run struct {
	Suite       string
	Tags        []string
	Params      benchmark.Params
	Providers   []string
	Output      string
	ContextMode benchmark.ContextMode
}

// HCL decoding targets. The params block is kept as a raw body so its
// attributes can hold arbitrary value shapes.
type manifestFile struct {
	Runs []*runBlock `hcl:"run,block"`
}

type runBlock struct {
	Suite       string     `hcl:"suite"`
	Tags        []string   `hcl:"tags,optional"`
	Params      *paramsBlk `hcl:"params,block"`
	Providers   []string   `hcl:"context,optional"`
	Output      string     `hcl:"output,optional"`
	ContextMode string     `hcl:"context_mode,optional"`
}

type paramsBlk struct {
	Body hcl.Body `hcl:",remain"`
}

// Load parses the manifest at path, which may be a single .hcl file or a
// directory expanded to every contained .hcl file. Exactly one run block
// must be present across all loaded files.
func Load(ctx context.Context, path string) (*Run, error) {
	logger := ctxlog.FromContext(ctx)

	filePaths, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, err
	}
	if len(filePaths) == 0 {
		return nil, fmt.Errorf("no .hcl manifest files found at %q", path)
	}
	logger.Debug("Found manifest files to load.", "files", filePaths)

	parser := hclparse.NewParser()
	var blocks []*runBlock
	for _, filePath := range filePaths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse manifest %s: %w", filePath, diags)
		}

		var mf manifestFile
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &mf); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode manifest %s: %w", filePath, diags)
		}
		blocks = append(blocks, mf.Runs...)
	}

	if len(blocks) == 0 {
		return nil, fmt.Errorf("no run block found in %q", path)
	}
	if len(blocks) > 1 {
		return nil, fmt.Errorf("expected exactly one run block, found %d in %q", len(blocks), path)
	}
	block := blocks[0]

	run := &Run{
		Suite:       block.Suite,
		Tags:        block.Tags,
		Params:      benchmark.Params{},
		Providers:   block.Providers,
		Output:      block.Output,
		ContextMode: benchmark.ModeInline,
	}

	if block.ContextMode != "" {
		mode, err := benchmark.ParseContextMode(block.ContextMode)
		if err != nil {
			return nil, err
		}
		run.ContextMode = mode
	}

	if block.Params != nil {
		attrs, diags := block.Params.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid params block: %w", diags)
		}
		for name, attr := range attrs {
			val, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("invalid value for parameter %q: %w", name, diags)
			}
			native, err := ctyToNative(val)
			if err != nil {
				return nil, fmt.Errorf("parameter %q: %w", name, err)
			}
			run.Params[name] = native
		}
	}

	logger.Debug("Manifest loaded.", "suite", run.Suite, "params", len(run.Params))
	return run, nil
}

// ctyToNative recursively converts a cty.Value into its most natural Go
// counterpart. Whole numbers become int, other numbers float64, so manifest
// values line up with the common Go parameter types.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return int(i), nil
			}
		}
		f, _ := bf.Float64()
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		slice := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, err
			}
			slice = append(slice, native)
		}
		return slice, nil

	case ty.IsObjectType() || ty.IsMapType():
		m := make(map[string]any)
		for it := v.ElementIterator(); it.Next(); {
			key, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, fmt.Errorf("in attribute %q: %w", key.AsString(), err)
			}
			m[key.AsString()] = native
		}
		return m, nil
	}

	return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
}
