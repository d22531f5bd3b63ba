// Command quizapp authors, plays and deletes multiple-choice quizzes from the terminal.
package main

import (
	"context"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/starquake/quizapp/cmd/quizapp/app"
)

func main() {
	ctx := context.Background()
	if err := app.Run(ctx, os.Args[1:], os.Getenv, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
