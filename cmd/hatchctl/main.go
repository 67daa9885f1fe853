// Command hatchctl drives the Hatch Social admin API from the terminal and
// runs the seeded mock backend for local development.
package main

import "github.com/hatchsocial/hatchclient/cmd/hatchctl/cmd"

func main() {
	cmd.Execute()
}
