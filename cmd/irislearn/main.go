// Command irislearn runs the iris classification demo: load the bundled
// dataset, assemble a tidy table, cross-validate a random forest and a
// logistic regression, and report the forest's feature importances.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
