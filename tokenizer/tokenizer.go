// Package tokenizer implements the lazy, process-wide BPE tokenizer
// registry of §4.D: five named encodings, each initialized at most once
// and retained for the process lifetime (§5 "Shared resources", §9 "Global
// mutable state").
package tokenizer

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"

	"promptkit/model"
)

// encodingName is the tiktoken-go encoding identifier for each supported
// kind (SPEC_FULL.md §4.D mapping table).
var encodingName = map[model.TokenizerKind]string{
	model.TokenizerO200K:    "o200k_base",
	model.TokenizerCL100K:   "cl100k_base",
	model.TokenizerP50K:     "p50k_base",
	model.TokenizerP50KEdit: "p50k_edit",
	model.TokenizerR50K:     "r50k_base",
}

// description is the human-readable description exposed for each kind,
// carried verbatim from the upstream tokenizer documentation.
var description = map[model.TokenizerKind]string{
	model.TokenizerO200K:    "GPT-4o models",
	model.TokenizerCL100K:   "ChatGPT models, text-embedding-ada-002",
	model.TokenizerP50K:     "Code models, text-davinci-002, text-davinci-003",
	model.TokenizerP50KEdit: "Edit models like text-davinci-edit-001, code-davinci-edit-001",
	model.TokenizerR50K:     "GPT-3 models like davinci (aliased as gpt2)",
}

var (
	mu       sync.Mutex
	instance = map[model.TokenizerKind]*tiktoken.Tiktoken{}
)

// get lazily initializes and returns the shared *tiktoken.Tiktoken for
// kind. Initialization is idempotent and safe for concurrent callers (§5).
func get(kind model.TokenizerKind) (*tiktoken.Tiktoken, error) {
	mu.Lock()
	defer mu.Unlock()

	if enc, ok := instance[kind]; ok {
		return enc, nil
	}

	name, ok := encodingName[kind]
	if !ok {
		return nil, fmt.Errorf("tokenizer: unknown kind %v", kind)
	}
	enc, err := tiktoken.GetEncoding(name)
	if err != nil {
		return nil, fmt.Errorf("tokenizer: loading encoding %q: %w", name, err)
	}
	instance[kind] = enc
	return enc, nil
}

// Count encodes text with special tokens enabled and returns the resulting
// token count (§4.D).
func Count(text string, kind model.TokenizerKind) (int, error) {
	enc, err := get(kind)
	if err != nil {
		return 0, err
	}
	tokens := enc.Encode(text, []string{"all"}, nil)
	return len(tokens), nil
}

// Description returns the human-readable description of kind (§4.D).
func Description(kind model.TokenizerKind) string {
	return description[kind]
}

// Name returns the wire name of kind (§6 "Tokenizer wire names"), using the
// canonical (non-alias) spelling.
func Name(kind model.TokenizerKind) string {
	switch kind {
	case model.TokenizerO200K:
		return "o200k"
	case model.TokenizerCL100K:
		return "cl100k"
	case model.TokenizerP50K:
		return "p50k"
	case model.TokenizerP50KEdit:
		return "p50k_edit"
	case model.TokenizerR50K:
		return "r50k"
	default:
		return ""
	}
}
