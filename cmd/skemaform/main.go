package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "describe":
		describeCmd(os.Args[2:])
	case "serve":
		serveCmd(os.Args[2:])
	case "seed":
		seedCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `skemaform CLI

Usage:
  skemaform describe -schema person.yaml [-expr #Person] [-value value.json] [-refs refs.yaml]
  skemaform serve [-config skemaform.yaml] [-addr :8080]
  skemaform seed -sqlite refs.db -refs refs.yaml

Notes:
  - describe prints the rendered form as JSON once its lookups settle.
  - Settings not given as flags come from the config file and SKEMAFORM_* variables.`)
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, "skemaform: "+format+"\n", a...)
	os.Exit(1)
}
