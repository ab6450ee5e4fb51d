package main

import (
	"fmt"
	"os"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(os.Args[2:])
	case "lint":
		err = runLint(os.Args[2:])
	case "new":
		err = runNew(os.Args[2:])
	case "version":
		fmt.Printf("typelore %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`typelore - a publishing engine for Markdown posts with front-matter

Usage:
  typelore <command> [flags]

Commands:
  serve         Run the blog server
  lint          Check posts for editorial problems
  new <title>   Scaffold a new post file
  version       Print the typelore version
  help          Show this help message

Examples:
  typelore serve --addr :3000 --content ./posts
  typelore lint --content ./posts
  typelore new "Variance in Scala"`)
}
