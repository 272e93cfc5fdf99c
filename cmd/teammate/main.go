// Command teammate forms balanced teams from a participant roster.
package main

import (
	"os"

	"github.com/sanulisiya/20241263TeamMate-sub000/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
