package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	typelore "github.com/typelore/typelore"
	"github.com/typelore/typelore/content"
)

func runLint(args []string) error {
	flags := pflag.NewFlagSet("lint", pflag.ContinueOnError)
	contentDir := flags.String("content", "", "content directory to lint (default: embedded corpus)")
	strict := flags.Bool("strict", false, "treat warnings as failures")
	if err := flags.Parse(args); err != nil {
		return err
	}

	fsys := typelore.EmbeddedCorpus()
	if *contentDir != "" {
		fsys = os.DirFS(*contentDir)
	}

	docs, err := content.LoadDir(fsys)
	if err != nil {
		return err
	}

	issues := content.LintAll(docs)
	for _, issue := range issues {
		fmt.Println(issue)
	}

	failed := content.HasErrors(issues) || (*strict && len(issues) > 0)
	if failed {
		return fmt.Errorf("%d problems in %d documents", len(issues), len(docs))
	}
	fmt.Printf("%d documents clean (%d warnings)\n", len(docs), len(issues))
	return nil
}
