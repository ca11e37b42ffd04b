package main

import "testing"

func TestBindFlags(t *testing.T) {
	// every persistent flag must bind cleanly; a wiring failure panics
	bindFlags(rootCmd.PersistentFlags())
}
