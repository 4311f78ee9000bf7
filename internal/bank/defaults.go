// Default banks compiled into the binary. The CSV sources are the static
// tabular files the flat interchange shape was designed around; they are
// parsed on every read rather than cached, since embedded content cannot
// change at run time and default banks carry no catalog entry.
package bank

import (
	"embed"
	"fmt"

	"github.com/mesh-intelligence/keepsake/pkg/types"
)

//go:embed defaults/*.csv
var defaultsFS embed.FS

// defaultBank describes one embedded bank: id doubles as the CSV
// basename.
type defaultBank struct {
	id          string
	name        string
	description string
}

// defaultBanks lists the banks every user starts with.
var defaultBanks = []defaultBank{
	{
		id:          "legacy",
		name:        "Legacy",
		description: "Childhood, school years, and the stories your family tells",
	},
	{
		id:          "milestones",
		name:        "Milestones",
		description: "The turning points of adult life",
	},
}

// loadDefaultBank parses one embedded bank by id.
// Returns types.ErrNotFound for an unknown id.
func loadDefaultBank(id string) (types.Bank, error) {
	for _, db := range defaultBanks {
		if db.id != id {
			continue
		}
		data, err := defaultsFS.ReadFile("defaults/" + db.id + ".csv")
		if err != nil {
			return types.Bank{}, fmt.Errorf("reading embedded bank %s: %w", db.id, err)
		}
		rows, err := ParseFlatCSV(data)
		if err != nil {
			return types.Bank{}, fmt.Errorf("parsing embedded bank %s: %w", db.id, err)
		}
		return types.Bank{
			ID:          db.id,
			Name:        db.name,
			Description: db.description,
			Sessions:    MergeSessions(rows),
		}, nil
	}
	return types.Bank{}, types.ErrNotFound
}

// isDefaultBank reports whether id names an embedded bank.
func isDefaultBank(id string) bool {
	for _, db := range defaultBanks {
		if db.id == id {
			return true
		}
	}
	return false
}
