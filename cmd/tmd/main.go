// Command tmd converts TurboMD documents to HTML and prints their trees.
package main

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"
	"github.com/k0kubun/pp"

	tmd "github.com/growler/go-tmd"
	"github.com/growler/go-tmd/html"
)

type htmlCmd struct {
	File       string `arg:"" help:"TurboMD document, the .tmd extension may be left out."`
	Output     string `short:"o" help:"Output file, defaults to the document name with an .html extension."`
	Standalone bool   `help:"Write a complete HTML document."`
	Title      string `help:"Title of a standalone document."`
	Head       string `help:"File holding an HTML fragment for the head of a standalone document."`
	HeadingIDs bool   `name:"heading-ids" help:"Give headings ids derived from their text."`
}

func (c *htmlCmd) Run(conf tmd.Conf) error {
	root, err := tmd.ReadFile(c.File, conf)
	if err != nil {
		return err
	}
	if root, err = tmd.ResolveIncludes(root, tmd.FileLoader(filepath.Dir(c.File), conf)); err != nil {
		return err
	}
	opts := html.Options{
		Standalone: c.Standalone,
		Title:      c.Title,
		HeadingIDs: c.HeadingIDs,
	}
	if c.Head != "" {
		head, err := os.ReadFile(c.Head)
		if err != nil {
			return err
		}
		opts.Head = string(head)
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, root, opts); err != nil {
		return err
	}
	out := c.Output
	if out == "" {
		out = strings.TrimSuffix(c.File, filepath.Ext(c.File)) + ".html"
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return err
	}
	log.Printf("wrote %s (%s)", out, humanize.Bytes(uint64(buf.Len())))
	return nil
}

type astCmd struct {
	File     string `arg:"" help:"TurboMD document, the .tmd extension may be left out."`
	Raw      bool   `help:"Print the tree as Go values."`
	Includes bool   `help:"Replace include references with the included documents."`
}

func (c *astCmd) Run(conf tmd.Conf) error {
	root, err := tmd.ReadFile(c.File, conf)
	if err != nil {
		return err
	}
	if c.Includes {
		if root, err = tmd.ResolveIncludes(root, tmd.FileLoader(filepath.Dir(c.File), conf)); err != nil {
			return err
		}
	}
	if c.Raw {
		_, err = pp.Println(root)
		return err
	}
	return tmd.Dump(os.Stdout, root)
}

var cli struct {
	Config      string `help:"YAML configuration file." placeholder:"FILE"`
	FrontMatter bool   `help:"Read front matter at the start of documents."`

	HTML htmlCmd `cmd:"" name:"html" help:"Convert a document to HTML."`
	AST  astCmd  `cmd:"" name:"ast" help:"Print the document tree."`
}

func main() {
	log.SetFlags(0)
	ctx := kong.Parse(&cli,
		kong.Name("tmd"),
		kong.Description("TurboMD document converter."),
		kong.UsageOnError(),
	)
	conf := tmd.DefaultConf
	if cli.Config != "" {
		var err error
		if conf, err = tmd.LoadConf(cli.Config); err != nil {
			log.Fatalf("tmd: %v", err)
		}
	}
	if cli.FrontMatter {
		conf = conf.WithFrontMatter(true)
	}
	ctx.FatalIfErrorf(ctx.Run(conf))
}
