// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Support for loading env vars as strings

package cfg

import (
	"os"

	"github.com/pkg/errors"
)

// EnvString looks up a string from the environment.
func EnvString(name string) (string, error) {
	val, ok := os.LookupEnv(name)
	if !ok {
		return "", errors.Errorf("%q environment variable not set", name)
	}
	return val, nil
}
