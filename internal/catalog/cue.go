package catalog

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	apperrors "github.com/Aashaypariskar/Premade-Assignment-sub001/internal/errors"
)

//go:embed schema.cue
var schemaCUE string

// LoadError reports a catalog file that failed to parse or validate.
type LoadError struct {
	File    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}

// ParseCUE compiles a CUE catalog file, unifies it with the #Catalog schema
// and decodes it. Uses the CUE SDK's Go API directly.
//
// Example file:
//
//	areas: [{
//		id:      "lavatory"
//		modules: ["AMENITY"]
//		items: [{
//			id: "wash-basin"
//			questions: [{id: "Q1", text: "Basin intact?", reasons: ["Cracked"]}]
//		}]
//	}]
func ParseCUE(filename string, data []byte) (Document, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Document{}, fmt.Errorf("compile catalog schema: %w", err)
	}

	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return Document{}, formatCUEError(filename, err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Catalog")).Unify(v)
	if err := unified.Validate(); err != nil {
		return Document{}, formatCUEError(filename, err)
	}

	var doc Document
	if err := unified.Decode(&doc); err != nil {
		return Document{}, formatCUEError(filename, err)
	}
	return doc, nil
}

// formatCUEError keeps the first CUE error and its position, classified as
// a validation failure.
func formatCUEError(filename string, err error) error {
	loadErr := &LoadError{File: filename, Message: err.Error()}

	if errs := cueerrors.Errors(err); len(errs) > 0 {
		first := errs[0]
		loadErr.Message = first.Error()
		if positions := cueerrors.Positions(first); len(positions) > 0 {
			loadErr.Pos = positions[0]
		}
	}
	return apperrors.Wrap(apperrors.CodeValidation, "invalid catalog file", loadErr)
}
