// Command born-seq runs variable-length token sequences through padded
// sequence layers wrapped in a list adapter.
//
// Usage:
//
//	born-seq run [file]     forward and backward pass, one row per input line
//	born-seq train [file]   fit a small sequence autoencoder
//	born-seq version
package main

import (
	"fmt"
	"os"

	"k8s.io/klog/v2"
)

const version = "v0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		klog.Flush()
		os.Exit(1)
	}
	klog.Flush()
}
