package seed

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/mergington/activities/internal/domain/model"
)

// FromFile loads a roster from a YAML file. The file maps activity name
// to description/schedule/max_participants/participants, the same shape
// GET /activities serves.
func FromFile(path string) (model.Roster, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadRoster, err)
	}

	roster := model.Roster{}
	if err := k.UnmarshalWithConf("", &roster, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadRoster, err)
	}

	if err := Validate(roster); err != nil {
		return nil, err
	}
	return roster, nil
}

// Validate checks roster invariants: non-empty activity names and no
// duplicate email within one activity's participant list.
func Validate(roster model.Roster) error {
	for name, a := range roster {
		if name == "" {
			return fmt.Errorf("%w: empty activity name", ErrInvalidRoster)
		}
		seen := make(map[string]struct{}, len(a.Participants))
		for _, email := range a.Participants {
			if email == "" {
				return fmt.Errorf("%w: empty participant email in %q", ErrInvalidRoster, name)
			}
			if _, dup := seen[email]; dup {
				return fmt.Errorf("%w: duplicate participant %q in %q", ErrInvalidRoster, email, name)
			}
			seen[email] = struct{}{}
		}
	}
	return nil
}
