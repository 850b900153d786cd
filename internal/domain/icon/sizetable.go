package icon

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	platformerrors "storeicons/internal/platform/errors"
)

//go:embed sizes.yaml
var sizesYAML []byte

// SizeSpec names one output file and its exact pixel dimensions.
type SizeSpec struct {
	Name   string `yaml:"name"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type sizeDocument struct {
	Version  int                   `yaml:"version"`
	Families map[Family][]SizeSpec `yaml:"families"`
}

var (
	tablesOnce sync.Once
	tables     map[Family][]SizeSpec
	tablesErr  error
)

// loadTables parses the embedded table document once. Any defect in the
// embedded data is a programming error, not a runtime condition.
func loadTables() {
	var doc sizeDocument
	if err := yaml.Unmarshal(sizesYAML, &doc); err != nil {
		tablesErr = platformerrors.Wrap(platformerrors.KindConfig,
			"size tables", "parse embedded size tables", err)
		return
	}

	for family, specs := range doc.Families {
		seen := make(map[string]struct{}, len(specs))
		for _, spec := range specs {
			if spec.Name == "" || spec.Width <= 0 || spec.Height <= 0 {
				tablesErr = platformerrors.New(platformerrors.KindConfig,
					"size tables",
					fmt.Sprintf("family %q has malformed entry %+v", family, spec))
				return
			}
			if _, dup := seen[spec.Name]; dup {
				tablesErr = platformerrors.New(platformerrors.KindConfig,
					"size tables",
					fmt.Sprintf("family %q has duplicate output name %q", family, spec.Name))
				return
			}
			seen[spec.Name] = struct{}{}
		}
	}
	tables = doc.Families
}

// SizesFor returns the ordered output specs of a family. The returned slice
// is a copy; callers may not mutate the table through it.
func SizesFor(f Family) ([]SizeSpec, error) {
	tablesOnce.Do(loadTables)
	if tablesErr != nil {
		return nil, tablesErr
	}

	specs, ok := tables[f]
	if !ok {
		return nil, platformerrors.New(platformerrors.KindConfig,
			"size tables", fmt.Sprintf("unknown icon family %q", f))
	}

	out := make([]SizeSpec, len(specs))
	copy(out, specs)
	return out, nil
}
