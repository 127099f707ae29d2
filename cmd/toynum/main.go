package main

import (
	"context"
	"os"

	"github.com/edp1096/toy-numeric/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background()))
}
