package usstates

import (
	"github.com/goliatone/go-intake/pkg/datasource"
	"github.com/goliatone/go-intake/pkg/schema"
)

// SourceName is the data source name templates reference to get the bundled
// state list.
const SourceName = "us-states"

func init() {
	RegisterProvider(datasource.Default)
}

// RegisterProvider registers the embedded state list on reg under
// SourceName. The default registry gets this automatically on import.
func RegisterProvider(reg *datasource.Registry) {
	if reg == nil {
		return
	}
	reg.Register(SourceName, datasource.ProviderFunc(func() []schema.Option {
		states, err := DefaultStates()
		if err != nil {
			return nil
		}
		out := make([]schema.Option, 0, len(states))
		for _, state := range states {
			out = append(out, schema.Option{Value: state.Code, Label: state.Name})
		}
		return out
	}))
}
