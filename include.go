package tmd

import (
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// IncludeLoader returns the tree of the document an include refers to.
// Paths use forward slashes and are relative to the top document.
type IncludeLoader func(name string) (*Root, error)

// FileLoader loads included documents with ReadFile, relative to dir.
func FileLoader(dir string, conf Conf) IncludeLoader {
	return func(name string) (*Root, error) {
		name = filepath.FromSlash(name)
		if !filepath.IsAbs(name) {
			name = filepath.Join(dir, name)
		}
		return ReadFile(name, conf)
	}
}

// ResolveIncludes replaces every include reference in root with the blocks
// of the referenced document. Includes of included documents are resolved as
// well, relative to the directory of the including document; a document
// including itself, directly or not, is an ErrStructural.
// Front matter of included documents is dropped. root is left unchanged.
func ResolveIncludes(root *Root, load IncludeLoader) (*Root, error) {
	return resolveIncludes(root, load, nil)
}

func resolveIncludes(root *Root, load IncludeLoader, stack []string) (*Root, error) {
	var err error
	resolved := Filter(root, func(ref *IncludeRef) ([]Block, WalkResult) {
		target := ref.Path
		if len(stack) > 0 && !path.IsAbs(target) {
			target = path.Join(path.Dir(stack[len(stack)-1]), target)
		}
		if slices.Contains(stack, target) {
			err = structuralf("include cycle %s -> %s", strings.Join(stack, " -> "), target)
			return nil, WalkStop
		}
		doc, lerr := load(target)
		if lerr != nil {
			err = errors.Wrapf(lerr, "@[%s]", target)
			return nil, WalkStop
		}
		if doc, err = resolveIncludes(doc, load, append(stack[:len(stack):len(stack)], target)); err != nil {
			return nil, WalkStop
		}
		tracer().Debugf("included %s: %d blocks", target, len(doc.Blocks))
		return doc.Blocks, WalkReplace
	})
	if err != nil {
		return nil, err
	}
	return resolved, nil
}
