// Command spikenet simulates networks of spiking point-neurons.
package main

import "github.com/sarchlab/spikenet/spikenet/cmd"

func main() {
	cmd.Execute()
}
