// Package main is the entry point for nimbus, an interactive CLI for
// day-to-day AWS operations (ECS, EC2, API Gateway, S3, cost) built on
// SSO profiles.
package main

import (
	"fmt"
	"os"

	"github.com/nimbuscli/nimbus/cmd"
	"github.com/nimbuscli/nimbus/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, errors.FormatForUser(err))
		os.Exit(errors.ExitCode(err))
	}
}
