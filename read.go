package tmd

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"
)

// File extension of TurboMD documents.
const Ext = ".tmd"

// ReadFrom reads a TurboMD document from r and assembles its tree.
func ReadFrom(r io.Reader, conf Conf) (*Root, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading document")
	}
	return read(src, conf)
}

// ReadString assembles the tree of the document src.
func ReadString(src string, conf Conf) (*Root, error) {
	return read([]byte(src), conf)
}

// ReadFile reads the document stored in path. The .tmd extension is added
// when path lacks it.
//
// Example:
//
//	doc, err := tmd.ReadFile("chapter1", tmd.DefaultConf)
//	if err != nil {
//		log.Fatal(err)
//	}
func ReadFile(path string, conf Conf) (*Root, error) {
	if !strings.HasSuffix(path, Ext) {
		path += Ext
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	root, err := read(src, conf)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	tracer().Infof("read %s: %d blocks", path, len(root.Blocks))
	return root, nil
}

func read(src []byte, conf Conf) (*Root, error) {
	if conf.Normalize {
		src = norm.NFC.Bytes(src)
	}
	var meta Meta
	if conf.FrontMatter {
		body, err := frontmatter.Parse(bytes.NewReader(src), &meta)
		if err != nil {
			return nil, errors.Wrap(err, "parsing front matter")
		}
		src = body
	}
	if len(src) > 0 && src[len(src)-1] != '\n' {
		src = append(src[:len(src):len(src)], '\n')
	}
	events, err := Scan(src)
	if err != nil {
		return nil, err
	}
	root, err := Assemble(events, conf)
	if err != nil {
		return nil, err
	}
	if len(meta) > 0 {
		root.Meta = meta
	}
	return root, nil
}
