// Command juicery runs one or more simulated orange juice plants for a fixed
// duration and prints what they produced.
//
//	juicery run --plants 3 --duration 10s
//	juicery config init
//	juicery config show
package main
