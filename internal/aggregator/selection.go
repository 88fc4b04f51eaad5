package aggregator

import "slices"

// Selection is the set of asset ids picked in the UI. All ids belong to
// assets of VCType; the zero value is the empty selection.
type Selection struct {
	VCType string   `json:"vcType"`
	IDs    []string `json:"ids"`
}

// Empty reports whether no id is selected.
func (s Selection) Empty() bool {
	return len(s.IDs) == 0
}

// Contains reports whether id is selected.
func (s Selection) Contains(id string) bool {
	return slices.Contains(s.IDs, id)
}

// Toggle returns the selection after clicking asset id of vcType.
// Clicking an asset of another currency starts a fresh selection.
func (s Selection) Toggle(vcType, id string) Selection {
	if s.VCType != vcType {
		return Selection{VCType: vcType, IDs: []string{id}}
	}

	if i := slices.Index(s.IDs, id); i >= 0 {
		return Selection{VCType: vcType, IDs: slices.Delete(slices.Clone(s.IDs), i, i+1)}
	}
	return Selection{VCType: vcType, IDs: append(slices.Clone(s.IDs), id)}
}

// Focus returns the selection after clicking the summary row of vcType.
func (s Selection) Focus(vcType string) Selection {
	if s.VCType == vcType {
		return s.clone()
	}
	return Selection{VCType: vcType, IDs: []string{}}
}

func (s Selection) clone() Selection {
	ids := slices.Clone(s.IDs)
	if ids == nil {
		ids = []string{}
	}
	return Selection{VCType: s.VCType, IDs: ids}
}

func emptySelection() Selection {
	return Selection{VCType: "", IDs: []string{}}
}
