package reconcile

import (
	"sort"

	"github.com/SAP-F-2025/participation-service/internal/models"
)

// HintSolutionEntries pairs a hint with its ordered solution entries.
type HintSolutionEntries struct {
	Hint            *models.ExerciseHint   `json:"hint"`
	SolutionEntries []models.SolutionEntry `json:"solution_entries"`
}

// GroupByHint maps every hint, in input order, to its sorted solution entries.
// The hints and their entry slices are left untouched.
func GroupByHint(hints []models.ExerciseHint) []HintSolutionEntries {
	grouped := make([]HintSolutionEntries, 0, len(hints))
	for i := range hints {
		grouped = append(grouped, HintSolutionEntries{
			Hint:            &hints[i],
			SolutionEntries: SortedSolutionEntries(&hints[i]),
		})
	}
	return grouped
}

// SortedSolutionEntries returns a copy of a code hint's entries ordered by
// file path, then line. Equal positions keep their listed order. Text hints
// have no entries.
func SortedSolutionEntries(hint *models.ExerciseHint) []models.SolutionEntry {
	if hint == nil || hint.Type != models.HintCode {
		return []models.SolutionEntry{}
	}
	entries := make([]models.SolutionEntry, len(hint.SolutionEntries))
	copy(entries, hint.SolutionEntries)
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].FilePath != entries[j].FilePath {
			return entries[i].FilePath < entries[j].FilePath
		}
		return entries[i].Line < entries[j].Line
	})
	return entries
}
