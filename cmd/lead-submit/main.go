// Command lead-submit sends one lead through the same steps as the landing
// page form: validate, obtain a bot-check token, post to the relay.
//
// Every flag can also be set from the environment with the LEAD_ prefix,
// for example LEAD_ENDPOINT or LEAD_PAGE_URL.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
