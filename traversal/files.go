package traversal

import (
	"sort"

	"promptkit/model"
)

// sortFiles sorts files per method (§4.E step 8, grounded on sort.rs).
func sortFiles(files []model.FileRecord, method model.SortMethod) {
	if method == model.SortNone {
		return
	}
	sort.SliceStable(files, func(i, j int) bool {
		switch method {
		case model.SortNameAsc:
			return files[i].Path < files[j].Path
		case model.SortNameDesc:
			return files[i].Path > files[j].Path
		case model.SortDateAsc:
			return modTimeOf(files[i]) < modTimeOf(files[j])
		case model.SortDateDesc:
			return modTimeOf(files[i]) > modTimeOf(files[j])
		default:
			return false
		}
	})
}

func modTimeOf(f model.FileRecord) int64 {
	if f.ModTime == nil {
		return 0
	}
	return *f.ModTime
}
