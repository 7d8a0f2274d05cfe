// Package traversal implements the directory walk of §4.E: it consults
// ignore sources and the selection engine, dispatches included files to
// the content processors, wraps their text, and assembles the rendered
// tree and FileRecord list Session caches as CodebaseData.
package traversal

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"promptkit/content"
	"promptkit/ignore"
	"promptkit/model"
	"promptkit/selection"
	"promptkit/tokenizer"
)

// Build walks cfg.RootPath and returns the rendered tree text and the
// included FileRecords (§4.E). A root canonicalization failure is fatal
// and returned as an error; per-file read/processing failures are logged
// and skipped (§7 Propagation policy).
func Build(cfg model.Config, engine *selection.Engine) (string, []model.FileRecord, error) {
	canonicalRoot, err := filepath.EvalSymlinks(cfg.RootPath)
	if err != nil {
		return "", nil, fmt.Errorf("canonicalizing root %q: %w", cfg.RootPath, err)
	}
	canonicalRoot, err = filepath.Abs(canonicalRoot)
	if err != nil {
		return "", nil, fmt.Errorf("resolving absolute root %q: %w", cfg.RootPath, err)
	}

	ignoreSrc := ignore.Load(cfg, canonicalRoot)

	tree := &model.TreeNode{Name: rootLabel(canonicalRoot), IsDir: true}
	var files []model.FileRecord
	visited := map[string]bool{canonicalRoot: true}

	walkErr := filepath.WalkDir(canonicalRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Printf("traversal: read error at %s: %v", path, err)
			return nil
		}
		if path == canonicalRoot {
			return nil
		}

		relPath, relErr := filepath.Rel(canonicalRoot, path)
		if relErr != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		isSymlink := d.Type()&fs.ModeSymlink != 0
		isDir := d.IsDir()

		if isSymlink && isDir {
			if !cfg.FollowSymlinks {
				return filepath.SkipDir
			}
			resolved, err := filepath.EvalSymlinks(path)
			if err != nil || visited[resolved] {
				return filepath.SkipDir
			}
			visited[resolved] = true
		}

		if ignoreSrc.ShouldIgnore(relPath, isDir) {
			if isDir {
				return filepath.SkipDir
			}
			return nil
		}

		entryMatch := engine.Decide(relPath)
		includeInTree := cfg.FullDirectoryTree || entryMatch

		info, infoErr := d.Info()
		var modTime int64
		if infoErr == nil {
			modTime = info.ModTime().Unix()
		}

		if includeInTree {
			insertPath(tree, relPath, isDir, modTime)
		}

		if isDir || !entryMatch {
			return nil
		}

		record, ok := buildFileRecord(cfg, path, relPath, modTime)
		if ok {
			files = append(files, record)
		}
		return nil
	})
	if walkErr != nil {
		return "", nil, fmt.Errorf("walking %q: %w", canonicalRoot, walkErr)
	}

	sortTree(tree, cfg.SortMethod)
	sortFiles(files, cfg.SortMethod)

	return renderTree(tree.Name, tree), files, nil
}

// buildFileRecord reads, BOM-strips, processes, and wraps one file,
// returning (record, true) if it should be included, or (zero, false) if
// it was rejected (binary, read error, empty/invalid processed text —
// §4.C, §4.E steps 4-7).
func buildFileRecord(cfg model.Config, absPath, relPath string, modTime int64) (model.FileRecord, bool) {
	raw, err := os.ReadFile(absPath)
	if err != nil {
		log.Printf("traversal: failed to read file: %s: %v", absPath, err)
		return model.FileRecord{}, false
	}

	if content.IsBinary(raw) {
		return model.FileRecord{}, false
	}

	clean := content.StripBOM(raw)
	extension := strings.TrimPrefix(filepath.Ext(relPath), ".")
	kind := content.KindForExtension(extension)
	processed := content.Process(kind, clean, absPath)

	if strings.TrimSpace(processed) == "" || content.ContainsReplacementChar(processed) {
		return model.FileRecord{}, false
	}

	wrapped := wrapCode(processed, extension, cfg.LineNumbers, !cfg.NoCodeblockWrap)

	path := relPath
	if cfg.AbsolutePath {
		path = absPath
	}

	record := model.FileRecord{
		Path:        path,
		Extension:   extension,
		WrappedCode: wrapped,
		Metadata:    model.Metadata{IsDir: false, IsSymlink: false},
	}

	if cfg.SortMethod == model.SortDateAsc || cfg.SortMethod == model.SortDateDesc {
		mt := modTime
		record.ModTime = &mt
	}

	if cfg.TokenMapEnabled {
		count, err := tokenizer.Count(processed, cfg.TokenizerKind)
		if err != nil {
			log.Printf("traversal: token counting failed for %s: %v", relPath, err)
		} else {
			record.TokenCount = &count
		}
	}

	return record, true
}
