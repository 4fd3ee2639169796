// Command matrixbench benchmarks naive matrix multiplication against the
// Strassen family of divide-and-conquer algorithms, verifying that the
// products agree and reporting timings, multiplication counts and fitted
// complexity constants.
package main

import (
	"context"
	"os"

	"github.com/SecondBook5/MatrixMultiplication/internal/app"
	apperrors "github.com/SecondBook5/MatrixMultiplication/internal/errors"
)

func main() {
	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		os.Exit(apperrors.ExitErrorConfig)
	}
	os.Exit(application.Run(context.Background(), os.Stdout))
}
