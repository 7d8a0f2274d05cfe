package session

import "promptkit/model"

// templateDataToMap converts the TemplateData contract (§6 "Template data
// schema") into the plain map mustache.Template.Render expects, merging
// in user-defined variables last so they can override nothing reserved
// (a user variable named like a schema key is skipped).
func templateDataToMap(data model.TemplateData) map[string]any {
	out := map[string]any{
		"absolute_code_path": data.AbsoluteCodePath,
		"source_tree":        data.SourceTree,
		"files":              filesToMaps(data.Files),
		"git_diff":           stringOrNil(data.GitDiff),
		"git_diff_branch":    stringOrNil(data.GitDiffBranch),
		"git_log_branch":     stringOrNil(data.GitLogBranch),
	}
	for k, v := range data.UserVars {
		if _, reserved := out[k]; reserved {
			continue
		}
		out[k] = v
	}
	return out
}

func filesToMaps(files []model.FileRecord) []map[string]any {
	out := make([]map[string]any, len(files))
	for i, f := range files {
		entry := map[string]any{
			"path":      f.Path,
			"extension": f.Extension,
			"code":      f.WrappedCode,
			"metadata": map[string]any{
				"is_dir":     f.Metadata.IsDir,
				"is_symlink": f.Metadata.IsSymlink,
			},
		}
		if f.ModTime != nil {
			entry["mod_time"] = *f.ModTime
		}
		if f.TokenCount != nil {
			entry["token_count"] = *f.TokenCount
		}
		out[i] = entry
	}
	return out
}

func stringOrNil(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
