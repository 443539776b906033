// The axidma command runs cycle-level simulations of the DMA subsystem.
package main

func main() {
	Execute()
}
