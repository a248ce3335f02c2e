package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/garnizeh/offerdesk/pkg/models"
	"github.com/qri-io/jsonschema"
)

// offerSchemaJSON is the submission contract for a completed draft. The
// completion gate validates the coerced payload against it before calling
// the persistence collaborator.
const offerSchemaJSON = `{
  "type": "object",
  "required": ["name", "role", "salary", "description", "availability", "location"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "role": {"type": "string", "minLength": 1},
    "salary": {"type": "number", "minimum": 0},
    "description": {"type": "string", "minLength": 1},
    "availability": {"type": "string", "enum": ["remote", "hybrid", "on_site"]},
    "location": {"type": "string", "minLength": 1}
  }
}`

var offerSchema = mustLoadOfferSchema()

func mustLoadOfferSchema() *jsonschema.Schema {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(offerSchemaJSON), rs); err != nil {
		panic(fmt.Sprintf("invalid offer schema: %v", err))
	}
	return rs
}

// ValidateOffer checks an offer payload against the submission schema.
func ValidateOffer(ctx context.Context, o *models.WorkOffer) error {
	b, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshal offer: %w", err)
	}

	verrs, err := offerSchema.ValidateBytes(ctx, b)
	if err != nil {
		return fmt.Errorf("schema validate: %w", err)
	}
	if len(verrs) > 0 {
		var sb strings.Builder
		for _, v := range verrs {
			sb.WriteString(v.Message)
			sb.WriteString("; ")
		}
		return fmt.Errorf("offer payload does not match schema: %s", sb.String())
	}
	return nil
}
