// AngelaMos | 2026
// main.go

package main

import "github.com/carterperez-dev/ittools/cmd/ittoolsctl/cmd"

func main() {
	cmd.Execute()
}
