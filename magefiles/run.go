//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the testbed with the sample config.
func (Run) Engine() error {
	fmt.Println("Run engine...")
	if _, err := executeCmd("go", withArgs("run", ".", "-config", "tesseract.toml"), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the testbed and records the wireframe to tesseract.gif.
func (Run) Gif() error {
	mg.Deps(Build.Check)
	if _, err := executeCmd("go", withArgs("run", ".", "-config", "tesseract.toml", "-gif", "tesseract.gif"), withStream()); err != nil {
		return err
	}
	return nil
}
