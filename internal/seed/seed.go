package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ganot/seller-console/internal/domain/lead"
)

//go:embed leads.json
var leadsJSON []byte

// Source serves the static lead dataset: the embedded one, or a JSON file
// supplied by the operator.
type Source struct {
	// Path optionally points at a JSON file overriding the embedded data.
	Path string
}

func (s Source) FetchLeads(ctx context.Context) ([]lead.Lead, error) {
	data := leadsJSON
	if s.Path != "" {
		var err error
		data, err = os.ReadFile(s.Path)
		if err != nil {
			return nil, fmt.Errorf("reading lead data: %w", err)
		}
	}

	var leads []lead.Lead
	if err := json.Unmarshal(data, &leads); err != nil {
		return nil, fmt.Errorf("decoding lead data: %w", err)
	}
	return leads, nil
}
