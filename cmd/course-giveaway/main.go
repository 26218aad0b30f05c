package main

import (
	"fmt"
	"os"
)

const (
	AppName    = "Course Giveaway"
	AppID      = "com.coursegiveaway.picker"
	AppVersion = "1.0.0"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
